package enrollment

import (
	"errors"
	"time"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/course"
	"github.com/trezcool/darasa/core/student"
)

var (
	// errors
	ErrNotFound        = errors.New("enrollment not found")
	ErrAlreadyEnrolled = errors.New("student is already enrolled in this course")
)

type (
	Repository interface {
		CreateEnrollment(enr Enrollment) (Enrollment, error)
		GetEnrollment(studentID, courseID int) (Enrollment, error)
		GetEnrollmentByID(id int) (Enrollment, error)
		QueryEnrollmentsByStudentID(studentID int) ([]Enrollment, error)
		QueryEnrollmentsByCourseID(courseID int) ([]Enrollment, error)
		UpdateEnrollment(enr Enrollment) (Enrollment, error)
		DeleteEnrollmentsByID(ids ...int) error
	}

	// CompletionSweeper removes the assignment completions attached to an enrollment.
	CompletionSweeper interface {
		DeleteCompletionsByEnrollmentID(enrollmentID int) error
	}

	// GradeSweeper removes the grades a student holds in a course.
	GradeSweeper interface {
		DeleteGradesByStudentAndCourse(studentID, courseID int) error
	}

	Service struct {
		repo        Repository
		students    student.Repository
		courses     course.Repository
		completions CompletionSweeper
		grades      GradeSweeper
		log         core.Logger
	}
)

func NewService(
	repo Repository,
	students student.Repository,
	courses course.Repository,
	completions CompletionSweeper,
	grades GradeSweeper,
	log core.Logger,
) *Service {
	return &Service{
		repo:        repo,
		students:    students,
		courses:     courses,
		completions: completions,
		grades:      grades,
		log:         log,
	}
}

// Enroll registers a student into a course. The student and course must both
// exist and the pair must not already hold an enrollment in any status.
func (svc *Service) Enroll(studentID, courseID int) (Enrollment, error) {
	if _, err := svc.students.GetStudentByID(studentID); err != nil {
		return Enrollment{}, err
	}
	if _, err := svc.courses.GetCourseByID(courseID); err != nil {
		return Enrollment{}, err
	}
	if _, err := svc.repo.GetEnrollment(studentID, courseID); err == nil {
		return Enrollment{}, ErrAlreadyEnrolled
	} else if err != ErrNotFound {
		return Enrollment{}, err
	}
	enr := Enrollment{
		StudentID:  studentID,
		CourseID:   courseID,
		Status:     StatusActive,
		EnrolledAt: time.Now().UTC(),
	}
	return svc.repo.CreateEnrollment(enr)
}

// Unenroll removes a student from a course along with their assignment
// completions and grades in that course. A missing enrollment is not an error.
func (svc *Service) Unenroll(studentID, courseID int) error {
	enr, err := svc.repo.GetEnrollment(studentID, courseID)
	if err != nil {
		if err == ErrNotFound {
			return nil
		}
		return err
	}
	if err := svc.completions.DeleteCompletionsByEnrollmentID(enr.ID); err != nil {
		svc.log.Error("deleting completions for enrollment", "enrollment", enr.ID, "error", err)
	}
	if err := svc.grades.DeleteGradesByStudentAndCourse(studentID, courseID); err != nil {
		svc.log.Error("deleting grades for enrollment", "enrollment", enr.ID, "error", err)
	}
	return svc.repo.DeleteEnrollmentsByID(enr.ID)
}

func (svc *Service) Get(studentID, courseID int) (Enrollment, error) {
	return svc.repo.GetEnrollment(studentID, courseID)
}

// CoursesForStudent returns the courses a student actively attends.
func (svc *Service) CoursesForStudent(studentID int) ([]course.Course, error) {
	enrs, err := svc.repo.QueryEnrollmentsByStudentID(studentID)
	if err != nil {
		return nil, err
	}
	courses := make([]course.Course, 0, len(enrs))
	for _, enr := range enrs {
		if enr.Status != StatusActive {
			continue
		}
		crs, err := svc.courses.GetCourseByID(enr.CourseID)
		if err != nil {
			if err == course.ErrNotFound {
				svc.log.Warn("enrollment references missing course", "enrollment", enr.ID, "course", enr.CourseID)
				continue
			}
			return nil, err
		}
		courses = append(courses, crs)
	}
	return courses, nil
}

// StudentsForCourse returns the students enrolled in a course.
func (svc *Service) StudentsForCourse(courseID int) ([]student.Student, error) {
	enrs, err := svc.repo.QueryEnrollmentsByCourseID(courseID)
	if err != nil {
		return nil, err
	}
	students := make([]student.Student, 0, len(enrs))
	for _, enr := range enrs {
		std, err := svc.students.GetStudentByID(enr.StudentID)
		if err != nil {
			if err == student.ErrNotFound {
				svc.log.Warn("enrollment references missing student", "enrollment", enr.ID, "student", enr.StudentID)
				continue
			}
			return nil, err
		}
		students = append(students, std)
	}
	return students, nil
}

// SetStatus moves an enrollment to the given status.
func (svc *Service) SetStatus(studentID, courseID int, status string) (Enrollment, error) {
	switch status {
	case StatusActive, StatusCompleted, StatusDropped:
	default:
		return Enrollment{}, core.NewValidationError(
			errors.New("invalid enrollment status"),
			core.FieldError{Field: "status", Error: "must be one of ACTIVE, COMPLETED, DROPPED"},
		)
	}
	enr, err := svc.repo.GetEnrollment(studentID, courseID)
	if err != nil {
		return Enrollment{}, err
	}
	enr.Status = status
	return svc.repo.UpdateEnrollment(enr)
}
