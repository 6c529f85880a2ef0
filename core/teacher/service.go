package teacher

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/trezcool/darasa/core"
)

var (
	// errors
	ErrNotFound       = errors.New("teacher not found")
	ErrEmailExists    = errors.New("a teacher with this email already exists")
	ErrUsernameExists = errors.New("a teacher with this username already exists")
	ErrCodeExists     = errors.New("a teacher with this code already exists")
)

type (
	Repository interface {
		CheckUniqueness(code, username, email string, excludedTeachers ...Teacher) error
		CreateTeacher(tch Teacher) (Teacher, error)
		QueryAllTeachers() ([]Teacher, error)
		GetTeacherByID(id int) (Teacher, error)
		GetTeacherByUsername(username string) (Teacher, error)
		UpdateTeacher(tch Teacher) (Teacher, error)
		DeleteTeachersByID(ids ...int) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) checkUniqueness(code, uname, email string, exclTchs ...Teacher) error {
	if err := svc.repo.CheckUniqueness(code, uname, email, exclTchs...); err != nil {
		var field string
		switch err {
		case ErrCodeExists:
			field = "teacher_code"
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

func (svc *Service) Create(nt NewTeacher) (Teacher, error) {
	now := time.Now().UTC()
	tch := Teacher{
		TeacherCode: nt.TeacherCode,
		Name:        nt.Name,
		Username:    nt.Username,
		Email:       nt.Email,
		Department:  nt.Department,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if tch.TeacherCode == "" {
		tch.TeacherCode = generateCode()
	}
	if err := tch.SetPassword(nt.Password); err != nil {
		return Teacher{}, err
	}
	return svc.repo.CreateTeacher(tch)
}

func (svc *Service) QueryAll() ([]Teacher, error) {
	return svc.repo.QueryAllTeachers()
}

func (svc *Service) GetByID(id int) (Teacher, error) {
	return svc.repo.GetTeacherByID(id)
}

func (svc *Service) GetByUsername(uname string) (Teacher, error) {
	return svc.repo.GetTeacherByUsername(core.CleanString(uname, true /* lower */))
}

func (svc *Service) Update(id int, ut UpdateTeacher) (Teacher, error) {
	tch := Teacher{
		ID:          id,
		TeacherCode: ut.TeacherCode,
		Name:        ut.Name,
		Username:    ut.Username,
		Email:       ut.Email,
		Department:  ut.Department,
		UpdatedAt:   time.Now().UTC(),
	}
	if ut.Password != "" {
		if err := tch.SetPassword(ut.Password); err != nil {
			return Teacher{}, err
		}
	}
	return svc.repo.UpdateTeacher(tch)
}

func (svc *Service) Delete(ids ...int) error {
	return svc.repo.DeleteTeachersByID(ids...)
}

func generateCode() string {
	return "T-" + strings.ToUpper(strings.SplitN(uuid.New().String(), "-", 2)[0])
}
