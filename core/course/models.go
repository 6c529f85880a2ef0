package course

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/darasa/core"
)

type Course struct {
	ID        int         `json:"id"`
	Code      string      `json:"code"`
	Name      string      `json:"name"`
	Schedule  null.String `json:"schedule"`
	TeacherID null.Int    `json:"teacher_id"`
	CreatedAt time.Time   `json:"created_at"` // UTC
	UpdatedAt time.Time   `json:"updated_at"` // UTC
}

// View is a Course decorated with its teacher's display name; this is
// the shape course listings filter and sort on.
type View struct {
	Course
	TeacherName string `json:"teacher_name"`
}

// NewCourse contains information needed to create a new Course.
type NewCourse struct {
	Code      string `json:"code" validate:"required"`
	Name      string `json:"name" validate:"required"`
	Schedule  string `json:"schedule"`
	TeacherID int    `json:"teacher_id"`
}

func (nc *NewCourse) Validate(validate *validator.Validate, svc *Service) error {
	nc.Code = core.CleanString(nc.Code)
	nc.Name = core.CleanString(nc.Name)
	nc.Schedule = core.CleanString(nc.Schedule)

	if err := validate.Struct(nc); err != nil {
		return err
	}
	if nc.TeacherID > 0 {
		if err := svc.checkTeacher(nc.TeacherID); err != nil {
			return err
		}
	}
	return svc.checkCodeUniqueness(nc.Code)
}

// UpdateCourse defines what information may be provided to modify an existing Course.
type UpdateCourse struct {
	Code      string `json:"code"`
	Name      string `json:"name"`
	Schedule  string `json:"schedule"`
	TeacherID int    `json:"teacher_id"`
}

func (uc *UpdateCourse) Validate(validate *validator.Validate, svc *Service, origCrs Course) error {
	if code := core.CleanString(uc.Code); code != "" {
		uc.Code = code
	} else {
		uc.Code = origCrs.Code
	}
	if name := core.CleanString(uc.Name); name != "" {
		uc.Name = name
	} else {
		uc.Name = origCrs.Name
	}
	if schedule := core.CleanString(uc.Schedule); schedule != "" {
		uc.Schedule = schedule
	} else {
		uc.Schedule = origCrs.Schedule.String
	}
	if uc.TeacherID <= 0 {
		uc.TeacherID = origCrs.TeacherID.Int
	}

	if err := validate.Struct(uc); err != nil {
		return err
	}
	if uc.TeacherID > 0 {
		if err := svc.checkTeacher(uc.TeacherID); err != nil {
			return err
		}
	}
	if uc.Code != origCrs.Code {
		return svc.checkCodeUniqueness(uc.Code)
	}
	return nil
}
