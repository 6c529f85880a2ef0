package course

import (
	"errors"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/teacher"
)

var (
	// errors
	ErrNotFound   = errors.New("course not found")
	ErrCodeExists = errors.New("a course with this code already exists")
)

type (
	Repository interface {
		CheckCodeUniqueness(code string, excludedCourses ...Course) error
		CreateCourse(crs Course) (Course, error)
		QueryAllCourses() ([]Course, error)
		GetCourseByID(id int) (Course, error)
		QueryCoursesByTeacherID(teacherID int) ([]Course, error)
		UpdateCourse(crs Course) (Course, error)
		DeleteCoursesByID(ids ...int) error
	}

	Service struct {
		repo     Repository
		teachers teacher.Repository
	}
)

func NewService(repo Repository, teachers teacher.Repository) *Service {
	return &Service{repo: repo, teachers: teachers}
}

func (svc *Service) checkCodeUniqueness(code string, exclCrs ...Course) error {
	if err := svc.repo.CheckCodeUniqueness(code, exclCrs...); err != nil {
		if err == ErrCodeExists {
			return core.NewValidationError(err, core.FieldError{Field: "code", Error: err.Error()})
		}
		return err
	}
	return nil
}

func (svc *Service) checkTeacher(teacherID int) error {
	if _, err := svc.teachers.GetTeacherByID(teacherID); err != nil {
		if err == teacher.ErrNotFound {
			return core.NewValidationError(err, core.FieldError{Field: "teacher_id", Error: err.Error()})
		}
		return err
	}
	return nil
}

func (svc *Service) Create(nc NewCourse) (Course, error) {
	now := time.Now().UTC()
	crs := Course{
		Code:      nc.Code,
		Name:      nc.Name,
		Schedule:  null.NewString(nc.Schedule, nc.Schedule != ""),
		TeacherID: null.NewInt(nc.TeacherID, nc.TeacherID > 0),
		CreatedAt: now,
		UpdatedAt: now,
	}
	return svc.repo.CreateCourse(crs)
}

func (svc *Service) QueryAll() ([]Course, error) {
	return svc.repo.QueryAllCourses()
}

func (svc *Service) GetByID(id int) (Course, error) {
	return svc.repo.GetCourseByID(id)
}

func (svc *Service) QueryByTeacherID(teacherID int) ([]Course, error) {
	return svc.repo.QueryCoursesByTeacherID(teacherID)
}

// Views returns all courses decorated with their teacher's name,
// ready for filtering and sorting.
func (svc *Service) Views() ([]View, error) {
	courses, err := svc.repo.QueryAllCourses()
	if err != nil {
		return nil, err
	}
	views := make([]View, 0, len(courses))
	for _, crs := range courses {
		view := View{Course: crs}
		if crs.TeacherID.Valid {
			if tch, err := svc.teachers.GetTeacherByID(crs.TeacherID.Int); err == nil {
				view.TeacherName = tch.Name
			}
		}
		views = append(views, view)
	}
	return views, nil
}

func (svc *Service) Update(id int, uc UpdateCourse) (Course, error) {
	crs := Course{
		ID:        id,
		Code:      uc.Code,
		Name:      uc.Name,
		Schedule:  null.NewString(uc.Schedule, uc.Schedule != ""),
		TeacherID: null.NewInt(uc.TeacherID, uc.TeacherID > 0),
		UpdatedAt: time.Now().UTC(),
	}
	return svc.repo.UpdateCourse(crs)
}

func (svc *Service) Delete(ids ...int) error {
	return svc.repo.DeleteCoursesByID(ids...)
}
