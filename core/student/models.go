package student

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"
	"golang.org/x/crypto/bcrypt"

	"github.com/trezcool/darasa/core"
)

type Student struct {
	ID           int         `json:"id"`
	StudentCode  string      `json:"student_code"`
	Name         string      `json:"name"`
	Username     string      `json:"username"`
	Email        string      `json:"email"`
	DateOfBirth  null.String `json:"date_of_birth"` // YYYY-MM-DD
	PasswordHash []byte      `json:"-"`
	CreatedAt    time.Time   `json:"created_at"` // UTC
	UpdatedAt    time.Time   `json:"updated_at"` // UTC
}

func (s *Student) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	s.PasswordHash = hash
	return nil
}

func (s *Student) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(s.PasswordHash, []byte(pwd))
}

// NewStudent contains information needed to create a new Student.
type NewStudent struct {
	StudentCode     string `json:"student_code" validate:"omitempty,alphanum_"`
	Name            string `json:"name" validate:"required"`
	Username        string `json:"username" validate:"required,min=6,alphanum_"`
	Email           string `json:"email" validate:"required,email"`
	DateOfBirth     string `json:"date_of_birth" validate:"omitempty,dateonly"`
	Password        string `json:"password" validate:"required"`
	PasswordConfirm string `json:"password_confirm" validate:"required,eqfield=Password"`
}

func (ns *NewStudent) Validate(validate *validator.Validate, svc *Service) error {
	ns.StudentCode = core.CleanString(ns.StudentCode)
	ns.Name = core.CleanString(ns.Name)
	ns.Username = core.CleanString(ns.Username, true /* lower */)
	ns.Email = core.CleanString(ns.Email, true /* lower */)

	if err := validate.Struct(ns); err != nil {
		return err
	}
	return svc.checkUniqueness(ns.StudentCode, ns.Username, ns.Email)
}

// UpdateStudent defines what information may be provided to modify an existing Student.
type UpdateStudent struct {
	StudentCode     string `json:"student_code" validate:"omitempty,alphanum_"`
	Name            string `json:"name"`
	Username        string `json:"username" validate:"omitempty,min=6,alphanum_"`
	Email           string `json:"email" validate:"omitempty,email"`
	DateOfBirth     string `json:"date_of_birth" validate:"omitempty,dateonly"`
	Password        string `json:"password" validate:"omitempty"`
	PasswordConfirm string `json:"password_confirm" validate:"required_with=Password,eqfield=Password"`
}

func (us *UpdateStudent) Validate(validate *validator.Validate, svc *Service, origStd Student) error {
	if code := core.CleanString(us.StudentCode); code != "" {
		us.StudentCode = code
	} else {
		us.StudentCode = origStd.StudentCode
	}
	if name := core.CleanString(us.Name); name != "" {
		us.Name = name
	} else {
		us.Name = origStd.Name
	}
	if uname := core.CleanString(us.Username, true); uname != "" {
		us.Username = uname
	} else {
		us.Username = origStd.Username
	}
	if email := core.CleanString(us.Email, true); email != "" {
		us.Email = email
	} else {
		us.Email = origStd.Email
	}

	if err := validate.Struct(us); err != nil {
		return err
	}
	return svc.checkUniqueness(us.StudentCode, us.Username, us.Email, origStd)
}
