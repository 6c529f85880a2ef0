package assignment_test

import (
	"testing"
	"time"

	"github.com/trezcool/darasa/core/assignment"
	"github.com/trezcool/darasa/core/course"
	"github.com/trezcool/darasa/core/enrollment"
	"github.com/trezcool/darasa/core/student"
	"github.com/trezcool/darasa/storage/database/inmem"
	"github.com/trezcool/darasa/tests"
)

type fixtures struct {
	svc     *assignment.Service
	cmpRepo assignment.CompletionRepository
	enrRepo enrollment.Repository
	stdRepo student.Repository
	crs     course.Course
	std1    student.Student
	std2    student.Student
	enr1    enrollment.Enrollment
	enr2    enrollment.Enrollment
}

func setup(t *testing.T) fixtures {
	t.Helper()

	db := inmemdb.Open()
	asgRepo := inmemdb.NewAssignmentRepository(db)
	cmpRepo := inmemdb.NewCompletionRepository(db)
	enrRepo := inmemdb.NewEnrollmentRepository(db)
	crsRepo := inmemdb.NewCourseRepository(db)
	stdRepo := inmemdb.NewStudentRepository(db)
	svc := assignment.NewService(asgRepo, cmpRepo, enrRepo, crsRepo, testutil.NewLogger())

	crs := testutil.CreateCourse(t, crsRepo, "MATH101", "Calculus I")
	std1 := testutil.CreateStudent(t, stdRepo, "Student One", "student1", "one@darasa.cd")
	std2 := testutil.CreateStudent(t, stdRepo, "Student Two", "student2", "two@darasa.cd")
	enr1 := testutil.Enroll(t, enrRepo, std1.ID, crs.ID)
	enr2 := testutil.Enroll(t, enrRepo, std2.ID, crs.ID)

	return fixtures{
		svc:     svc,
		cmpRepo: cmpRepo,
		enrRepo: enrRepo,
		stdRepo: stdRepo,
		crs:     crs,
		std1:    std1,
		std2:    std2,
		enr1:    enr1,
		enr2:    enr2,
	}
}

func TestAssignment_DaysRemaining(t *testing.T) {
	asOf := time.Date(2021, 3, 15, 18, 30, 0, 0, time.UTC)

	tests := []struct {
		name    string
		dueDate string
		want    int
	}{
		{name: "due in the future", dueDate: "2021-03-20", want: 5},
		{name: "due today", dueDate: "2021-03-15", want: 0},
		{name: "past due", dueDate: "2021-03-12", want: -3},
		{name: "missing due date", dueDate: "", want: 0},
		{name: "unparsable due date", dueDate: "lol", want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			asg := assignment.Assignment{DueDate: tt.dueDate}
			if got := asg.DaysRemaining(asOf); got != tt.want {
				t.Errorf("DaysRemaining() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestService_Create(t *testing.T) {
	fix := setup(t)

	assignment.NowFunc = func() time.Time { return time.Date(2021, 3, 15, 10, 0, 0, 0, time.UTC) }
	defer func() { assignment.NowFunc = time.Now }()

	t.Run("course must exist", func(t *testing.T) {
		na := assignment.NewAssignment{CourseID: 404, Title: "Quiz 1", DueDate: "2021-03-20"}
		if _, err := fix.svc.Create(na, 1); err != course.ErrNotFound {
			t.Errorf("Create() error = %v, wantErr %v", err, course.ErrNotFound)
		}
	})

	t.Run("rolls out completions to enrolled students", func(t *testing.T) {
		na := assignment.NewAssignment{CourseID: fix.crs.ID, Title: "Quiz 1", DueDate: "2021-03-20"}
		asg, err := fix.svc.Create(na, 7)
		if err != nil {
			t.Fatalf("Create() failed, %v", err)
		}
		if asg.CreatedDate != "2021-03-15" {
			t.Errorf("CreatedDate = %s, want 2021-03-15", asg.CreatedDate)
		}
		if asg.Status != assignment.StatusIncomplete {
			t.Errorf("Status = %s, want %s", asg.Status, assignment.StatusIncomplete)
		}
		if asg.CreatedByTeacherID != 7 {
			t.Errorf("CreatedByTeacherID = %d, want 7", asg.CreatedByTeacherID)
		}

		cmps, err := fix.cmpRepo.QueryCompletionsByAssignmentID(asg.ID)
		if err != nil {
			t.Fatalf("QueryCompletionsByAssignmentID() failed, %v", err)
		}
		if len(cmps) != 2 {
			t.Fatalf("len(completions) = %d, want 2", len(cmps))
		}
		for _, cmp := range cmps {
			if cmp.Done {
				t.Errorf("completion %d rolled out as done", cmp.ID)
			}
		}
	})
}

func TestService_MarkDone_StatusFor(t *testing.T) {
	fix := setup(t)

	asg, err := fix.svc.Create(assignment.NewAssignment{CourseID: fix.crs.ID, Title: "Quiz 1", DueDate: "2021-03-20"}, 7)
	if err != nil {
		t.Fatalf("Create() failed, %v", err)
	}

	t.Run("incomplete after rollout", func(t *testing.T) {
		status, err := fix.svc.StatusFor(asg.ID, fix.std1.ID)
		if err != nil {
			t.Fatalf("StatusFor() failed, %v", err)
		}
		if status != assignment.StatusIncomplete {
			t.Errorf("StatusFor() = %s, want %s", status, assignment.StatusIncomplete)
		}
	})

	t.Run("not assigned when student is not enrolled", func(t *testing.T) {
		std3 := testutil.CreateStudent(t, fix.stdRepo, "Student Three", "student3", "three@darasa.cd")
		status, err := fix.svc.StatusFor(asg.ID, std3.ID)
		if err != nil {
			t.Fatalf("StatusFor() failed, %v", err)
		}
		if status != assignment.StatusNotAssigned {
			t.Errorf("StatusFor() = %s, want %s", status, assignment.StatusNotAssigned)
		}
	})

	t.Run("completed after MarkDone", func(t *testing.T) {
		cmp, err := fix.svc.MarkDone(asg.ID, fix.std1.ID)
		if err != nil {
			t.Fatalf("MarkDone() failed, %v", err)
		}
		if !cmp.Done {
			t.Error("MarkDone() did not flag the completion")
		}
		status, err := fix.svc.StatusFor(asg.ID, fix.std1.ID)
		if err != nil {
			t.Fatalf("StatusFor() failed, %v", err)
		}
		if status != assignment.StatusCompleted {
			t.Errorf("StatusFor() = %s, want %s", status, assignment.StatusCompleted)
		}
	})

	t.Run("incomplete when the rollout missed the enrollment", func(t *testing.T) {
		std4 := testutil.CreateStudent(t, fix.stdRepo, "Student Four", "student4", "four@darasa.cd")
		testutil.Enroll(t, fix.enrRepo, std4.ID, fix.crs.ID)

		status, err := fix.svc.StatusFor(asg.ID, std4.ID)
		if err != nil {
			t.Fatalf("StatusFor() failed, %v", err)
		}
		if status != assignment.StatusIncomplete {
			t.Errorf("StatusFor() = %s, want %s", status, assignment.StatusIncomplete)
		}

		if _, err := fix.svc.MarkDone(asg.ID, std4.ID); err != nil {
			t.Fatalf("MarkDone() failed, %v", err)
		}
		status, err = fix.svc.StatusFor(asg.ID, std4.ID)
		if err != nil {
			t.Fatalf("StatusFor() failed, %v", err)
		}
		if status != assignment.StatusCompleted {
			t.Errorf("StatusFor() = %s, want %s", status, assignment.StatusCompleted)
		}
	})
}

func TestService_Delete(t *testing.T) {
	fix := setup(t)

	asg, err := fix.svc.Create(assignment.NewAssignment{CourseID: fix.crs.ID, Title: "Quiz 1", DueDate: "2021-03-20"}, 7)
	if err != nil {
		t.Fatalf("Create() failed, %v", err)
	}

	if err := fix.svc.Delete(asg.ID); err != nil {
		t.Fatalf("Delete() failed, %v", err)
	}
	if _, err := fix.svc.GetByID(asg.ID); err != assignment.ErrNotFound {
		t.Errorf("GetByID() error = %v, wantErr %v", err, assignment.ErrNotFound)
	}
	cmps, err := fix.cmpRepo.QueryCompletionsByAssignmentID(asg.ID)
	if err != nil {
		t.Fatalf("QueryCompletionsByAssignmentID() failed, %v", err)
	}
	if len(cmps) != 0 {
		t.Errorf("len(completions) = %d, want 0", len(cmps))
	}
}

func TestService_ForStudent(t *testing.T) {
	fix := setup(t)

	asg1, err := fix.svc.Create(assignment.NewAssignment{CourseID: fix.crs.ID, Title: "Quiz 1", DueDate: "2021-03-20"}, 7)
	if err != nil {
		t.Fatalf("Create() failed, %v", err)
	}
	if _, err = fix.svc.Create(assignment.NewAssignment{CourseID: fix.crs.ID, Title: "Quiz 2", DueDate: "2021-03-25"}, 7); err != nil {
		t.Fatalf("Create() failed, %v", err)
	}
	if _, err = fix.svc.MarkDone(asg1.ID, fix.std1.ID); err != nil {
		t.Fatalf("MarkDone() failed, %v", err)
	}

	rows, err := fix.svc.ForStudent(fix.std1.ID)
	if err != nil {
		t.Fatalf("ForStudent() failed, %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2", len(rows))
	}
	for _, row := range rows {
		if row.CourseCode != fix.crs.Code || row.CourseName != fix.crs.Name {
			t.Errorf("row course = %s %s, want %s %s", row.CourseCode, row.CourseName, fix.crs.Code, fix.crs.Name)
		}
		want := assignment.DashboardPending
		if row.Assignment.ID == asg1.ID {
			want = assignment.DashboardCompleted
		}
		if row.Status != want {
			t.Errorf("row %q Status = %s, want %s", row.Title, row.Status, want)
		}
	}
}
