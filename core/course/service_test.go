package course_test

import (
	"testing"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/course"
	"github.com/trezcool/darasa/core/teacher"
	"github.com/trezcool/darasa/storage/database/inmem"
	"github.com/trezcool/darasa/tests"
)

type fixtures struct {
	svc     *course.Service
	crsRepo course.Repository
	tchRepo teacher.Repository
}

func setup(t *testing.T) fixtures {
	t.Helper()

	db := inmemdb.Open()
	crsRepo := inmemdb.NewCourseRepository(db)
	tchRepo := inmemdb.NewTeacherRepository(db)
	return fixtures{
		svc:     course.NewService(crsRepo, tchRepo),
		crsRepo: crsRepo,
		tchRepo: tchRepo,
	}
}

func fieldError(t *testing.T, err error, field string) {
	t.Helper()

	vErr, ok := err.(*core.ValidationError)
	if !ok {
		t.Fatalf("error = %v, want a validation error", err)
	}
	if len(vErr.Fields) == 0 || vErr.Fields[0].Field != field {
		t.Errorf("Fields = %v, want a %s field error", vErr.Fields, field)
	}
}

func TestNewCourse_Validate(t *testing.T) {
	fix := setup(t)
	validate, _ := core.NewValidator()

	tch := testutil.CreateTeacher(t, fix.tchRepo, "Teacher", "mwalimu", "mwl@darasa.cd")
	testutil.CreateCourse(t, fix.crsRepo, "MATH101", "Calculus I")

	t.Run("teacher must exist", func(t *testing.T) {
		nc := course.NewCourse{Code: "PHYS201", Name: "Mechanics", TeacherID: 404}
		fieldError(t, nc.Validate(validate, fix.svc), "teacher_id")
	})

	t.Run("rejects a duplicate code", func(t *testing.T) {
		nc := course.NewCourse{Code: "MATH101", Name: "Calculus II"}
		fieldError(t, nc.Validate(validate, fix.svc), "code")
	})

	t.Run("rejects a duplicate code even with a teacher", func(t *testing.T) {
		nc := course.NewCourse{Code: "MATH101", Name: "Calculus II", TeacherID: tch.ID}
		fieldError(t, nc.Validate(validate, fix.svc), "code")
	})

	t.Run("ok", func(t *testing.T) {
		nc := course.NewCourse{Code: "PHYS201", Name: "Mechanics", TeacherID: tch.ID}
		if err := nc.Validate(validate, fix.svc); err != nil {
			t.Errorf("Validate() error = %v, want nil", err)
		}
	})
}

func TestService_Update(t *testing.T) {
	fix := setup(t)
	validate, _ := core.NewValidator()

	tch := testutil.CreateTeacher(t, fix.tchRepo, "Teacher", "mwalimu", "mwl@darasa.cd")
	crs, err := fix.svc.Create(course.NewCourse{Code: "MATH101", Name: "Calculus I", Schedule: "Mon 08:00", TeacherID: tch.ID})
	if err != nil {
		t.Fatalf("Create() failed, %v", err)
	}

	t.Run("omitted fields keep their value", func(t *testing.T) {
		uc := course.UpdateCourse{Name: "Calculus II"}
		if err := uc.Validate(validate, fix.svc, crs); err != nil {
			t.Fatalf("Validate() failed, %v", err)
		}
		updated, err := fix.svc.Update(crs.ID, uc)
		if err != nil {
			t.Fatalf("Update() failed, %v", err)
		}
		if updated.Name != "Calculus II" {
			t.Errorf("Name = %s, want Calculus II", updated.Name)
		}
		if updated.Code != crs.Code {
			t.Errorf("Code = %s, want %s", updated.Code, crs.Code)
		}
		if updated.Schedule != crs.Schedule {
			t.Errorf("Schedule = %v, want %v", updated.Schedule, crs.Schedule)
		}
		if updated.TeacherID != crs.TeacherID {
			t.Errorf("TeacherID = %v, want %v", updated.TeacherID, crs.TeacherID)
		}
	})

	t.Run("changed code must stay unique", func(t *testing.T) {
		testutil.CreateCourse(t, fix.crsRepo, "PHYS201", "Mechanics")
		uc := course.UpdateCourse{Code: "PHYS201"}
		fieldError(t, uc.Validate(validate, fix.svc, crs), "code")
	})
}
