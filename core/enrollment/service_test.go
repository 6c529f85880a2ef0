package enrollment_test

import (
	"testing"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/assignment"
	"github.com/trezcool/darasa/core/course"
	"github.com/trezcool/darasa/core/enrollment"
	"github.com/trezcool/darasa/core/grade"
	"github.com/trezcool/darasa/core/student"
	"github.com/trezcool/darasa/storage/database/inmem"
	"github.com/trezcool/darasa/tests"
)

type fixtures struct {
	svc     *enrollment.Service
	enrRepo enrollment.Repository
	cmpRepo assignment.CompletionRepository
	grdRepo grade.Repository
	crsRepo course.Repository
	stdRepo student.Repository
	std     student.Student
	crs     course.Course
}

func setup(t *testing.T) fixtures {
	t.Helper()

	db := inmemdb.Open()
	enrRepo := inmemdb.NewEnrollmentRepository(db)
	cmpRepo := inmemdb.NewCompletionRepository(db)
	grdRepo := inmemdb.NewGradeRepository(db)
	crsRepo := inmemdb.NewCourseRepository(db)
	stdRepo := inmemdb.NewStudentRepository(db)
	svc := enrollment.NewService(enrRepo, stdRepo, crsRepo, cmpRepo, grdRepo, testutil.NewLogger())

	std := testutil.CreateStudent(t, stdRepo, "Student", "awesome", "awe@darasa.cd")
	crs := testutil.CreateCourse(t, crsRepo, "MATH101", "Calculus I")

	return fixtures{
		svc:     svc,
		enrRepo: enrRepo,
		cmpRepo: cmpRepo,
		grdRepo: grdRepo,
		crsRepo: crsRepo,
		stdRepo: stdRepo,
		std:     std,
		crs:     crs,
	}
}

func TestService_Enroll(t *testing.T) {
	fix := setup(t)

	t.Run("student must exist", func(t *testing.T) {
		if _, err := fix.svc.Enroll(404, fix.crs.ID); err != student.ErrNotFound {
			t.Errorf("Enroll() error = %v, wantErr %v", err, student.ErrNotFound)
		}
	})

	t.Run("course must exist", func(t *testing.T) {
		if _, err := fix.svc.Enroll(fix.std.ID, 404); err != course.ErrNotFound {
			t.Errorf("Enroll() error = %v, wantErr %v", err, course.ErrNotFound)
		}
	})

	t.Run("enrolls as active", func(t *testing.T) {
		enr, err := fix.svc.Enroll(fix.std.ID, fix.crs.ID)
		if err != nil {
			t.Fatalf("Enroll() failed, %v", err)
		}
		if enr.Status != enrollment.StatusActive {
			t.Errorf("Status = %s, want %s", enr.Status, enrollment.StatusActive)
		}
	})

	t.Run("rejects a second enrollment for the same pair", func(t *testing.T) {
		if _, err := fix.svc.Enroll(fix.std.ID, fix.crs.ID); err != enrollment.ErrAlreadyEnrolled {
			t.Errorf("Enroll() error = %v, wantErr %v", err, enrollment.ErrAlreadyEnrolled)
		}
	})
}

func TestService_Unenroll(t *testing.T) {
	fix := setup(t)

	t.Run("missing enrollment is not an error", func(t *testing.T) {
		if err := fix.svc.Unenroll(fix.std.ID, fix.crs.ID); err != nil {
			t.Errorf("Unenroll() error = %v, want nil", err)
		}
	})

	t.Run("removes completions and grades along the way", func(t *testing.T) {
		enr, err := fix.svc.Enroll(fix.std.ID, fix.crs.ID)
		if err != nil {
			t.Fatalf("Enroll() failed, %v", err)
		}
		if _, err = fix.cmpRepo.CreateCompletion(assignment.Completion{AssignmentID: 1, EnrollmentID: enr.ID}); err != nil {
			t.Fatalf("CreateCompletion() failed, %v", err)
		}
		if _, err = fix.grdRepo.CreateGrade(grade.Grade{StudentID: fix.std.ID, CourseID: fix.crs.ID, AssignmentName: "Quiz 1", Score: 10, MaxScore: 20}); err != nil {
			t.Fatalf("CreateGrade() failed, %v", err)
		}

		if err := fix.svc.Unenroll(fix.std.ID, fix.crs.ID); err != nil {
			t.Fatalf("Unenroll() failed, %v", err)
		}
		if _, err := fix.svc.Get(fix.std.ID, fix.crs.ID); err != enrollment.ErrNotFound {
			t.Errorf("Get() error = %v, wantErr %v", err, enrollment.ErrNotFound)
		}
		cmps, err := fix.cmpRepo.QueryCompletionsByAssignmentID(1)
		if err != nil {
			t.Fatalf("QueryCompletionsByAssignmentID() failed, %v", err)
		}
		if len(cmps) != 0 {
			t.Errorf("len(completions) = %d, want 0", len(cmps))
		}
		grades, err := fix.grdRepo.QueryGradesByStudentAndCourse(fix.std.ID, fix.crs.ID)
		if err != nil {
			t.Fatalf("QueryGradesByStudentAndCourse() failed, %v", err)
		}
		if len(grades) != 0 {
			t.Errorf("len(grades) = %d, want 0", len(grades))
		}
	})
}

func TestService_CoursesForStudent(t *testing.T) {
	fix := setup(t)

	crs2 := testutil.CreateCourse(t, fix.crsRepo, "PHYS201", "Mechanics")
	if _, err := fix.svc.Enroll(fix.std.ID, fix.crs.ID); err != nil {
		t.Fatalf("Enroll() failed, %v", err)
	}
	if _, err := fix.svc.Enroll(fix.std.ID, crs2.ID); err != nil {
		t.Fatalf("Enroll() failed, %v", err)
	}
	if _, err := fix.svc.SetStatus(fix.std.ID, crs2.ID, enrollment.StatusDropped); err != nil {
		t.Fatalf("SetStatus() failed, %v", err)
	}

	courses, err := fix.svc.CoursesForStudent(fix.std.ID)
	if err != nil {
		t.Fatalf("CoursesForStudent() failed, %v", err)
	}
	if len(courses) != 1 {
		t.Fatalf("len(courses) = %d, want 1", len(courses))
	}
	if courses[0].ID != fix.crs.ID {
		t.Errorf("course = %d, want %d", courses[0].ID, fix.crs.ID)
	}
}

func TestService_StudentsForCourse(t *testing.T) {
	fix := setup(t)

	std2 := testutil.CreateStudent(t, fix.stdRepo, "Student Two", "student2", "two@darasa.cd")
	if _, err := fix.svc.Enroll(fix.std.ID, fix.crs.ID); err != nil {
		t.Fatalf("Enroll() failed, %v", err)
	}
	if _, err := fix.svc.Enroll(std2.ID, fix.crs.ID); err != nil {
		t.Fatalf("Enroll() failed, %v", err)
	}

	students, err := fix.svc.StudentsForCourse(fix.crs.ID)
	if err != nil {
		t.Fatalf("StudentsForCourse() failed, %v", err)
	}
	if len(students) != 2 {
		t.Errorf("len(students) = %d, want 2", len(students))
	}
}

func TestService_SetStatus(t *testing.T) {
	fix := setup(t)

	if _, err := fix.svc.Enroll(fix.std.ID, fix.crs.ID); err != nil {
		t.Fatalf("Enroll() failed, %v", err)
	}

	t.Run("rejects an unknown status", func(t *testing.T) {
		_, err := fix.svc.SetStatus(fix.std.ID, fix.crs.ID, "lol")
		vErr, ok := err.(*core.ValidationError)
		if !ok {
			t.Fatalf("SetStatus() error = %v, want a validation error", err)
		}
		if len(vErr.Fields) == 0 || vErr.Fields[0].Field != "status" {
			t.Errorf("Fields = %v, want a status field error", vErr.Fields)
		}
	})

	t.Run("moves the enrollment", func(t *testing.T) {
		enr, err := fix.svc.SetStatus(fix.std.ID, fix.crs.ID, enrollment.StatusCompleted)
		if err != nil {
			t.Fatalf("SetStatus() failed, %v", err)
		}
		if enr.Status != enrollment.StatusCompleted {
			t.Errorf("Status = %s, want %s", enr.Status, enrollment.StatusCompleted)
		}
	})
}
