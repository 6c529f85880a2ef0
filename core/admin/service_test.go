package admin_test

import (
	"testing"

	"github.com/trezcool/darasa/core/admin"
	"github.com/trezcool/darasa/core/assignment"
	"github.com/trezcool/darasa/core/course"
	"github.com/trezcool/darasa/core/enrollment"
	"github.com/trezcool/darasa/core/grade"
	"github.com/trezcool/darasa/core/student"
	"github.com/trezcool/darasa/core/teacher"
	"github.com/trezcool/darasa/storage/database/inmem"
	"github.com/trezcool/darasa/tests"
)

type fixtures struct {
	svc     *admin.Service
	stdRepo student.Repository
	tchRepo teacher.Repository
	crsRepo course.Repository
	asgRepo assignment.Repository
	cmpRepo assignment.CompletionRepository
	enrRepo enrollment.Repository
	grdRepo grade.Repository
}

func setup(t *testing.T) fixtures {
	t.Helper()

	db := inmemdb.Open()
	stdRepo := inmemdb.NewStudentRepository(db)
	tchRepo := inmemdb.NewTeacherRepository(db)
	crsRepo := inmemdb.NewCourseRepository(db)
	asgRepo := inmemdb.NewAssignmentRepository(db)
	cmpRepo := inmemdb.NewCompletionRepository(db)
	enrRepo := inmemdb.NewEnrollmentRepository(db)
	grdRepo := inmemdb.NewGradeRepository(db)
	svc := admin.NewService(
		inmemdb.NewAdminRepository(db),
		stdRepo, tchRepo, crsRepo, asgRepo, cmpRepo, enrRepo, grdRepo,
		testutil.NewLogger(),
	)

	return fixtures{
		svc:     svc,
		stdRepo: stdRepo,
		tchRepo: tchRepo,
		crsRepo: crsRepo,
		asgRepo: asgRepo,
		cmpRepo: cmpRepo,
		enrRepo: enrRepo,
		grdRepo: grdRepo,
	}
}

// seed builds a student enrolled in a course with one assignment,
// one completion and one grade.
func seed(t *testing.T, fix fixtures) (student.Student, course.Course, assignment.Assignment, enrollment.Enrollment) {
	t.Helper()

	std := testutil.CreateStudent(t, fix.stdRepo, "Student", "awesome", "awe@darasa.cd")
	crs := testutil.CreateCourse(t, fix.crsRepo, "MATH101", "Calculus I")
	enr := testutil.Enroll(t, fix.enrRepo, std.ID, crs.ID)

	asg, err := fix.asgRepo.CreateAssignment(assignment.Assignment{CourseID: crs.ID, Title: "Quiz 1", DueDate: "2021-03-20"})
	if err != nil {
		t.Fatalf("CreateAssignment() failed, %v", err)
	}
	if _, err = fix.cmpRepo.CreateCompletion(assignment.Completion{AssignmentID: asg.ID, EnrollmentID: enr.ID}); err != nil {
		t.Fatalf("CreateCompletion() failed, %v", err)
	}
	if _, err = fix.grdRepo.CreateGrade(grade.Grade{StudentID: std.ID, CourseID: crs.ID, AssignmentName: "Quiz 1", Score: 10, MaxScore: 20}); err != nil {
		t.Fatalf("CreateGrade() failed, %v", err)
	}
	return std, crs, asg, enr
}

func TestService_DeleteStudent(t *testing.T) {
	fix := setup(t)
	std, crs, asg, enr := seed(t, fix)

	if err := fix.svc.DeleteStudent(std.ID); err != nil {
		t.Fatalf("DeleteStudent() failed, %v", err)
	}

	if _, err := fix.stdRepo.GetStudentByID(std.ID); err != student.ErrNotFound {
		t.Errorf("GetStudentByID() error = %v, wantErr %v", err, student.ErrNotFound)
	}
	if _, err := fix.enrRepo.GetEnrollmentByID(enr.ID); err != enrollment.ErrNotFound {
		t.Errorf("GetEnrollmentByID() error = %v, wantErr %v", err, enrollment.ErrNotFound)
	}
	cmps, err := fix.cmpRepo.QueryCompletionsByAssignmentID(asg.ID)
	if err != nil {
		t.Fatalf("QueryCompletionsByAssignmentID() failed, %v", err)
	}
	if len(cmps) != 0 {
		t.Errorf("len(completions) = %d, want 0", len(cmps))
	}
	grades, err := fix.grdRepo.QueryGradesByStudentAndCourse(std.ID, crs.ID)
	if err != nil {
		t.Fatalf("QueryGradesByStudentAndCourse() failed, %v", err)
	}
	if len(grades) != 0 {
		t.Errorf("len(grades) = %d, want 0", len(grades))
	}

	// the course itself survives
	if _, err := fix.crsRepo.GetCourseByID(crs.ID); err != nil {
		t.Errorf("GetCourseByID() error = %v, want nil", err)
	}
}

func TestService_DeleteTeacher(t *testing.T) {
	fix := setup(t)

	tch := testutil.CreateTeacher(t, fix.tchRepo, "Teacher", "mwalimu", "mwl@darasa.cd")
	crs := testutil.CreateCourse(t, fix.crsRepo, "MATH101", "Calculus I", tch.ID)

	if err := fix.svc.DeleteTeacher(tch.ID); err != nil {
		t.Fatalf("DeleteTeacher() failed, %v", err)
	}

	if _, err := fix.tchRepo.GetTeacherByID(tch.ID); err != teacher.ErrNotFound {
		t.Errorf("GetTeacherByID() error = %v, wantErr %v", err, teacher.ErrNotFound)
	}
	refreshed, err := fix.crsRepo.GetCourseByID(crs.ID)
	if err != nil {
		t.Fatalf("GetCourseByID() failed, %v", err)
	}
	if refreshed.TeacherID.Valid {
		t.Errorf("TeacherID = %v, want null", refreshed.TeacherID)
	}
}

func TestService_DeleteCourse(t *testing.T) {
	fix := setup(t)
	std, crs, asg, enr := seed(t, fix)

	if err := fix.svc.DeleteCourse(crs.ID); err != nil {
		t.Fatalf("DeleteCourse() failed, %v", err)
	}

	if _, err := fix.crsRepo.GetCourseByID(crs.ID); err != course.ErrNotFound {
		t.Errorf("GetCourseByID() error = %v, wantErr %v", err, course.ErrNotFound)
	}
	if _, err := fix.enrRepo.GetEnrollmentByID(enr.ID); err != enrollment.ErrNotFound {
		t.Errorf("GetEnrollmentByID() error = %v, wantErr %v", err, enrollment.ErrNotFound)
	}
	if _, err := fix.asgRepo.GetAssignmentByID(asg.ID); err != assignment.ErrNotFound {
		t.Errorf("GetAssignmentByID() error = %v, wantErr %v", err, assignment.ErrNotFound)
	}
	cmps, err := fix.cmpRepo.QueryCompletionsByAssignmentID(asg.ID)
	if err != nil {
		t.Fatalf("QueryCompletionsByAssignmentID() failed, %v", err)
	}
	if len(cmps) != 0 {
		t.Errorf("len(completions) = %d, want 0", len(cmps))
	}

	// the student itself survives
	if _, err := fix.stdRepo.GetStudentByID(std.ID); err != nil {
		t.Errorf("GetStudentByID() error = %v, want nil", err)
	}
}

func TestService_DeleteAssignment(t *testing.T) {
	fix := setup(t)
	std, crs, asg, _ := seed(t, fix)

	if err := fix.svc.DeleteAssignment(asg.ID); err != nil {
		t.Fatalf("DeleteAssignment() failed, %v", err)
	}

	if _, err := fix.asgRepo.GetAssignmentByID(asg.ID); err != assignment.ErrNotFound {
		t.Errorf("GetAssignmentByID() error = %v, wantErr %v", err, assignment.ErrNotFound)
	}
	cmps, err := fix.cmpRepo.QueryCompletionsByAssignmentID(asg.ID)
	if err != nil {
		t.Fatalf("QueryCompletionsByAssignmentID() failed, %v", err)
	}
	if len(cmps) != 0 {
		t.Errorf("len(completions) = %d, want 0", len(cmps))
	}

	// grades already recorded are kept
	grades, err := fix.grdRepo.QueryGradesByStudentAndCourse(std.ID, crs.ID)
	if err != nil {
		t.Fatalf("QueryGradesByStudentAndCourse() failed, %v", err)
	}
	if len(grades) != 1 {
		t.Errorf("len(grades) = %d, want 1", len(grades))
	}
}
