package student

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/darasa/core"
)

var (
	// errors
	ErrNotFound       = errors.New("student not found")
	ErrEmailExists    = errors.New("a student with this email already exists")
	ErrUsernameExists = errors.New("a student with this username already exists")
	ErrCodeExists     = errors.New("a student with this code already exists")
)

type (
	Repository interface {
		CheckUniqueness(code, username, email string, excludedStudents ...Student) error
		CreateStudent(std Student) (Student, error)
		QueryAllStudents() ([]Student, error)
		GetStudentByID(id int) (Student, error)
		GetStudentByUsername(username string) (Student, error)
		UpdateStudent(std Student) (Student, error)
		DeleteStudentsByID(ids ...int) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) checkUniqueness(code, uname, email string, exclStds ...Student) error {
	if err := svc.repo.CheckUniqueness(code, uname, email, exclStds...); err != nil {
		var field string
		switch err {
		case ErrCodeExists:
			field = "student_code"
		case ErrUsernameExists:
			field = "username"
		case ErrEmailExists:
			field = "email"
		default:
			return err
		}
		return core.NewValidationError(err, core.FieldError{Field: field, Error: err.Error()})
	}
	return nil
}

func (svc *Service) Create(ns NewStudent) (Student, error) {
	now := time.Now().UTC()
	std := Student{
		StudentCode: ns.StudentCode,
		Name:        ns.Name,
		Username:    ns.Username,
		Email:       ns.Email,
		DateOfBirth: null.NewString(ns.DateOfBirth, ns.DateOfBirth != ""),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if std.StudentCode == "" {
		std.StudentCode = generateCode()
	}
	if err := std.SetPassword(ns.Password); err != nil {
		return Student{}, err
	}
	return svc.repo.CreateStudent(std)
}

func (svc *Service) QueryAll() ([]Student, error) {
	return svc.repo.QueryAllStudents()
}

func (svc *Service) GetByID(id int) (Student, error) {
	return svc.repo.GetStudentByID(id)
}

func (svc *Service) GetByUsername(uname string) (Student, error) {
	return svc.repo.GetStudentByUsername(core.CleanString(uname, true /* lower */))
}

func (svc *Service) Update(id int, us UpdateStudent) (Student, error) {
	std := Student{
		ID:          id,
		StudentCode: us.StudentCode,
		Name:        us.Name,
		Username:    us.Username,
		Email:       us.Email,
		DateOfBirth: null.NewString(us.DateOfBirth, us.DateOfBirth != ""),
		UpdatedAt:   time.Now().UTC(),
	}
	if us.Password != "" {
		if err := std.SetPassword(us.Password); err != nil {
			return Student{}, err
		}
	}
	return svc.repo.UpdateStudent(std)
}

func (svc *Service) Delete(ids ...int) error {
	return svc.repo.DeleteStudentsByID(ids...)
}

func generateCode() string {
	return "S-" + strings.ToUpper(strings.SplitN(uuid.New().String(), "-", 2)[0])
}
