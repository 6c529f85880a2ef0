package grade

import (
	"errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/student"
)

var (
	// errors
	ErrNotFound = errors.New("grade not found")
)

// NowFunc returns the current time; swapped out in tests.
var NowFunc = time.Now

type (
	Repository interface {
		CreateGrade(grd Grade) (Grade, error)
		UpdateGrade(grd Grade) (Grade, error)
		QueryGradesByStudentAndCourse(studentID, courseID int) ([]Grade, error)
		DeleteGradesByStudentAndCourse(studentID, courseID int) error
		DeleteGradesByID(ids ...int) error
	}

	Service struct {
		repo     Repository
		students student.Repository
		mailSvc  core.EmailService
	}
)

func NewService(repo Repository, students student.Repository, mailSvc core.EmailService) *Service {
	return &Service{repo: repo, students: students, mailSvc: mailSvc}
}

// Upsert records a grade for a (student, course, assignment name) triple,
// overwriting any existing grade for the same triple. The assignment name
// matches case-sensitively. The student gets an email notification.
func (svc *Service) Upsert(ng NewGrade, teacherID int) (Grade, error) {
	std, err := svc.students.GetStudentByID(ng.StudentID)
	if err != nil {
		return Grade{}, err
	}

	grd := Grade{
		StudentID:         ng.StudentID,
		CourseID:          ng.CourseID,
		AssignmentID:      null.NewInt(ng.AssignmentID, ng.AssignmentID > 0),
		AssignmentName:    ng.AssignmentName,
		Score:             ng.Score,
		MaxScore:          ng.MaxScore,
		Feedback:          ng.Feedback,
		GradedDate:        NowFunc().UTC().Format(core.DateLayout),
		GradedByTeacherID: teacherID,
	}
	grd.Letter = LetterFor(grd.Percentage())

	existing, err := svc.repo.QueryGradesByStudentAndCourse(ng.StudentID, ng.CourseID)
	if err != nil {
		return Grade{}, err
	}
	for _, old := range existing {
		if old.AssignmentName == ng.AssignmentName {
			grd.ID = old.ID
			grd, err = svc.repo.UpdateGrade(grd)
			if err != nil {
				return Grade{}, err
			}
			svc.notify(std, grd)
			return grd, nil
		}
	}
	grd, err = svc.repo.CreateGrade(grd)
	if err != nil {
		return Grade{}, err
	}
	svc.notify(std, grd)
	return grd, nil
}

// ForStudentCourse returns the grades a student holds in a course.
func (svc *Service) ForStudentCourse(studentID, courseID int) ([]Grade, error) {
	return svc.repo.QueryGradesByStudentAndCourse(studentID, courseID)
}

// ForAssignment returns a student's grade on the named assignment in a course.
func (svc *Service) ForAssignment(studentID, courseID int, assignmentName string) (Grade, error) {
	grades, err := svc.repo.QueryGradesByStudentAndCourse(studentID, courseID)
	if err != nil {
		return Grade{}, err
	}
	for _, grd := range grades {
		if grd.AssignmentName == assignmentName {
			return grd, nil
		}
	}
	return Grade{}, ErrNotFound
}

func (svc *Service) notify(std student.Student, grd Grade) {
	msg := &core.EmailMessage{
		To:      []mail.Address{{Name: std.Name, Address: std.Email}},
		Subject: fmt.Sprintf("New grade posted: %s", grd.AssignmentName),
		BodyStr: fmt.Sprintf(
			"Hi %s,\n\nYou scored %.1f/%.1f (%s) on %q.\n\nFeedback: %s\n",
			std.Name, grd.Score, grd.MaxScore, grd.Letter, grd.AssignmentName, grd.Feedback,
		),
	}
	svc.mailSvc.SendMessages(msg)
}
