package teacher

import (
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"github.com/trezcool/darasa/core"
)

type Teacher struct {
	ID           int       `json:"id"`
	TeacherCode  string    `json:"teacher_code"`
	Name         string    `json:"name"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	Department   string    `json:"department"`
	PasswordHash []byte    `json:"-"`
	CreatedAt    time.Time `json:"created_at"` // UTC
	UpdatedAt    time.Time `json:"updated_at"` // UTC
}

func (t *Teacher) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	t.PasswordHash = hash
	return nil
}

func (t *Teacher) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(t.PasswordHash, []byte(pwd))
}

// NewTeacher contains information needed to create a new Teacher.
type NewTeacher struct {
	TeacherCode     string `json:"teacher_code" validate:"omitempty,alphanum_"`
	Name            string `json:"name" validate:"required"`
	Username        string `json:"username" validate:"required,min=6,alphanum_"`
	Email           string `json:"email" validate:"required,email"`
	Department      string `json:"department"`
	Password        string `json:"password" validate:"required"`
	PasswordConfirm string `json:"password_confirm" validate:"required,eqfield=Password"`
}

func (nt *NewTeacher) Validate(validate *validator.Validate, svc *Service) error {
	nt.TeacherCode = core.CleanString(nt.TeacherCode)
	nt.Name = core.CleanString(nt.Name)
	nt.Username = core.CleanString(nt.Username, true /* lower */)
	nt.Email = core.CleanString(nt.Email, true /* lower */)
	nt.Department = core.CleanString(nt.Department)

	if err := validate.Struct(nt); err != nil {
		return err
	}
	return svc.checkUniqueness(nt.TeacherCode, nt.Username, nt.Email)
}

// UpdateTeacher defines what information may be provided to modify an existing Teacher.
type UpdateTeacher struct {
	TeacherCode     string `json:"teacher_code" validate:"omitempty,alphanum_"`
	Name            string `json:"name"`
	Username        string `json:"username" validate:"omitempty,min=6,alphanum_"`
	Email           string `json:"email" validate:"omitempty,email"`
	Department      string `json:"department"`
	Password        string `json:"password" validate:"omitempty"`
	PasswordConfirm string `json:"password_confirm" validate:"required_with=Password,eqfield=Password"`
}

func (ut *UpdateTeacher) Validate(validate *validator.Validate, svc *Service, origTch Teacher) error {
	if code := core.CleanString(ut.TeacherCode); code != "" {
		ut.TeacherCode = code
	} else {
		ut.TeacherCode = origTch.TeacherCode
	}
	if name := core.CleanString(ut.Name); name != "" {
		ut.Name = name
	} else {
		ut.Name = origTch.Name
	}
	if uname := core.CleanString(ut.Username, true); uname != "" {
		ut.Username = uname
	} else {
		ut.Username = origTch.Username
	}
	if email := core.CleanString(ut.Email, true); email != "" {
		ut.Email = email
	} else {
		ut.Email = origTch.Email
	}
	if dept := core.CleanString(ut.Department); dept != "" {
		ut.Department = dept
	} else {
		ut.Department = origTch.Department
	}

	if err := validate.Struct(ut); err != nil {
		return err
	}
	return svc.checkUniqueness(ut.TeacherCode, ut.Username, ut.Email, origTch)
}
