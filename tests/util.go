package testutil

import (
	"testing"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/course"
	"github.com/trezcool/darasa/core/enrollment"
	"github.com/trezcool/darasa/core/student"
	"github.com/trezcool/darasa/core/teacher"
)

// NewLogger returns a logger that discards everything. Pass it to services
// whose log output is irrelevant to the test.
func NewLogger() core.Logger { return nopLogger{} }

type nopLogger struct{}

func (nopLogger) Enable(bool)                  {}
func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Fatal(string, ...interface{}) {}

func CreateStudent(t *testing.T, repo student.Repository, name, uname, email string) student.Student {
	t.Helper()

	now := time.Now().UTC()
	std := student.Student{
		StudentCode: "S-" + uname,
		Name:        name,
		Username:    uname,
		Email:       email,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := std.SetPassword("mdr"); err != nil {
		t.Fatalf("CreateStudent() failed: %v", err)
	}
	std, err := repo.CreateStudent(std)
	if err != nil {
		t.Fatalf("CreateStudent() failed: %v", err)
	}
	return std
}

func CreateTeacher(t *testing.T, repo teacher.Repository, name, uname, email string) teacher.Teacher {
	t.Helper()

	now := time.Now().UTC()
	tch := teacher.Teacher{
		TeacherCode: "T-" + uname,
		Name:        name,
		Username:    uname,
		Email:       email,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := tch.SetPassword("mdr"); err != nil {
		t.Fatalf("CreateTeacher() failed: %v", err)
	}
	tch, err := repo.CreateTeacher(tch)
	if err != nil {
		t.Fatalf("CreateTeacher() failed: %v", err)
	}
	return tch
}

func CreateCourse(t *testing.T, repo course.Repository, code, name string, teacherID ...int) course.Course {
	t.Helper()

	now := time.Now().UTC()
	crs := course.Course{
		Code:      code,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if len(teacherID) > 0 {
		crs.TeacherID = null.IntFrom(teacherID[0])
	}
	crs, err := repo.CreateCourse(crs)
	if err != nil {
		t.Fatalf("CreateCourse() failed: %v", err)
	}
	return crs
}

func Enroll(t *testing.T, repo enrollment.Repository, studentID, courseID int) enrollment.Enrollment {
	t.Helper()

	enr, err := repo.CreateEnrollment(enrollment.Enrollment{
		StudentID:  studentID,
		CourseID:   courseID,
		Status:     enrollment.StatusActive,
		EnrolledAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("Enroll() failed: %v", err)
	}
	return enr
}
