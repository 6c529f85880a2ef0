package assignment

import (
	"errors"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/course"
	"github.com/trezcool/darasa/core/enrollment"
)

var (
	// errors
	ErrNotFound           = errors.New("assignment not found")
	ErrCompletionNotFound = errors.New("assignment completion not found")
)

type (
	Repository interface {
		CreateAssignment(asg Assignment) (Assignment, error)
		QueryAllAssignments() ([]Assignment, error)
		GetAssignmentByID(id int) (Assignment, error)
		QueryAssignmentsByCourseID(courseID int) ([]Assignment, error)
		UpdateAssignment(asg Assignment) (Assignment, error)
		DeleteAssignmentsByID(ids ...int) error
	}

	CompletionRepository interface {
		CreateCompletion(cmp Completion) (Completion, error)
		GetCompletion(assignmentID, enrollmentID int) (Completion, error)
		UpdateCompletion(cmp Completion) (Completion, error)
		QueryCompletionsByAssignmentID(assignmentID int) ([]Completion, error)
		DeleteCompletionsByAssignmentID(assignmentID int) error
		DeleteCompletionsByEnrollmentID(enrollmentID int) error
	}

	Service struct {
		repo        Repository
		completions CompletionRepository
		enrollments enrollment.Repository
		courses     course.Repository
		log         core.Logger
	}
)

func NewService(
	repo Repository,
	completions CompletionRepository,
	enrollments enrollment.Repository,
	courses course.Repository,
	log core.Logger,
) *Service {
	return &Service{
		repo:        repo,
		completions: completions,
		enrollments: enrollments,
		courses:     courses,
		log:         log,
	}
}

// Create saves a new assignment and rolls out a pending completion to every
// student currently enrolled in its course.
func (svc *Service) Create(na NewAssignment, teacherID int) (Assignment, error) {
	if _, err := svc.courses.GetCourseByID(na.CourseID); err != nil {
		return Assignment{}, err
	}
	asg := Assignment{
		CourseID:           na.CourseID,
		Title:              na.Title,
		Description:        na.Description,
		DueDate:            na.DueDate,
		CreatedDate:        NowFunc().UTC().Format(core.DateLayout),
		Status:             StatusIncomplete,
		CreatedByTeacherID: teacherID,
	}
	asg, err := svc.repo.CreateAssignment(asg)
	if err != nil {
		return Assignment{}, err
	}

	enrs, err := svc.enrollments.QueryEnrollmentsByCourseID(asg.CourseID)
	if err != nil {
		svc.log.Error("listing enrollments for completion rollout", "assignment", asg.ID, "error", err)
		return asg, nil
	}
	for _, enr := range enrs {
		cmp := Completion{AssignmentID: asg.ID, EnrollmentID: enr.ID}
		if _, err := svc.completions.CreateCompletion(cmp); err != nil {
			// keep going; MarkDone creates missing completions on demand
			svc.log.Error("rolling out completion", "assignment", asg.ID, "enrollment", enr.ID, "error", err)
		}
	}
	return asg, nil
}

func (svc *Service) QueryAll() ([]Assignment, error) {
	return svc.repo.QueryAllAssignments()
}

func (svc *Service) GetByID(id int) (Assignment, error) {
	return svc.repo.GetAssignmentByID(id)
}

func (svc *Service) QueryByCourseID(courseID int) ([]Assignment, error) {
	return svc.repo.QueryAssignmentsByCourseID(courseID)
}

func (svc *Service) Update(id int, ua UpdateAssignment) (Assignment, error) {
	orig, err := svc.repo.GetAssignmentByID(id)
	if err != nil {
		return Assignment{}, err
	}
	orig.Title = ua.Title
	orig.Description = ua.Description
	orig.DueDate = ua.DueDate
	orig.Status = ua.Status
	return svc.repo.UpdateAssignment(orig)
}

// Delete removes assignments along with their completions. Grades survive.
func (svc *Service) Delete(ids ...int) error {
	for _, id := range ids {
		if err := svc.completions.DeleteCompletionsByAssignmentID(id); err != nil {
			svc.log.Error("deleting completions for assignment", "assignment", id, "error", err)
		}
	}
	return svc.repo.DeleteAssignmentsByID(ids...)
}

// MarkDone flags a student's completion of an assignment. A completion row is
// created on the spot when the rollout missed this enrollment.
func (svc *Service) MarkDone(assignmentID, studentID int) (Completion, error) {
	asg, err := svc.repo.GetAssignmentByID(assignmentID)
	if err != nil {
		return Completion{}, err
	}
	enr, err := svc.enrollments.GetEnrollment(studentID, asg.CourseID)
	if err != nil {
		return Completion{}, err
	}
	cmp, err := svc.completions.GetCompletion(assignmentID, enr.ID)
	if err != nil {
		if err != ErrCompletionNotFound {
			return Completion{}, err
		}
		cmp, err = svc.completions.CreateCompletion(Completion{AssignmentID: assignmentID, EnrollmentID: enr.ID})
		if err != nil {
			return Completion{}, err
		}
	}
	cmp.Done = true
	return svc.completions.UpdateCompletion(cmp)
}

// StatusFor reports a student's standing on an assignment: "not assigned"
// when the student holds no enrollment in the assignment's course,
// "incomplete" when enrolled but not done (a missing completion row counts
// as not done), "completed" otherwise.
func (svc *Service) StatusFor(assignmentID, studentID int) (string, error) {
	asg, err := svc.repo.GetAssignmentByID(assignmentID)
	if err != nil {
		return "", err
	}
	enr, err := svc.enrollments.GetEnrollment(studentID, asg.CourseID)
	if err != nil {
		if err == enrollment.ErrNotFound {
			return StatusNotAssigned, nil
		}
		return "", err
	}
	cmp, err := svc.completions.GetCompletion(assignmentID, enr.ID)
	if err != nil {
		if err == ErrCompletionNotFound {
			return StatusIncomplete, nil
		}
		return "", err
	}
	if cmp.Done {
		return StatusCompleted, nil
	}
	return StatusIncomplete, nil
}

// ForStudent builds a student's assignment dashboard across all their active
// course enrollments.
func (svc *Service) ForStudent(studentID int) ([]StudentAssignment, error) {
	enrs, err := svc.enrollments.QueryEnrollmentsByStudentID(studentID)
	if err != nil {
		return nil, err
	}
	rows := make([]StudentAssignment, 0)
	for _, enr := range enrs {
		if enr.Status != enrollment.StatusActive {
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
		asgs, err := svc.repo.QueryAssignmentsByCourseID(enr.CourseID)
		if err != nil {
			return nil, err
		}
		for _, asg := range asgs {
			row := StudentAssignment{
				Assignment:    asg,
				CourseCode:    crs.Code,
				CourseName:    crs.Name,
				DaysRemaining: asg.DaysRemaining(),
				Status:        DashboardPending,
			}
			if cmp, err := svc.completions.GetCompletion(asg.ID, enr.ID); err == nil && cmp.Done {
				row.Status = DashboardCompleted
			}
			rows = append(rows, row)
		}
	}
	return rows, nil
}
