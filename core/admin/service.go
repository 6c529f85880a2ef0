package admin

import (
	"errors"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/assignment"
	"github.com/trezcool/darasa/core/course"
	"github.com/trezcool/darasa/core/enrollment"
	"github.com/trezcool/darasa/core/grade"
	"github.com/trezcool/darasa/core/student"
	"github.com/trezcool/darasa/core/teacher"
)

var (
	// errors
	ErrNotFound       = errors.New("admin not found")
	ErrEmailExists    = errors.New("an admin with this email already exists")
	ErrUsernameExists = errors.New("an admin with this username already exists")
)

type (
	Repository interface {
		CheckUniqueness(username, email string, excludedAdmins ...Admin) error
		CreateAdmin(adm Admin) (Admin, error)
		GetAdminByID(id int) (Admin, error)
		GetAdminByUsername(username string) (Admin, error)
		QueryAllAdmins() ([]Admin, error)
		UpdateAdmin(adm Admin) (Admin, error)
	}

	// Service owns the destructive cross-entity operations: removing a
	// student, teacher, course or assignment and cleaning up everything
	// hanging off it. Cleanup steps log failures and keep going; only the
	// final removal of the target itself propagates its error.
	Service struct {
		repo        Repository
		students    student.Repository
		teachers    teacher.Repository
		courses     course.Repository
		assignments assignment.Repository
		completions assignment.CompletionRepository
		enrollments enrollment.Repository
		grades      grade.Repository
		log         core.Logger
	}
)

func NewService(
	repo Repository,
	students student.Repository,
	teachers teacher.Repository,
	courses course.Repository,
	assignments assignment.Repository,
	completions assignment.CompletionRepository,
	enrollments enrollment.Repository,
	grades grade.Repository,
	log core.Logger,
) *Service {
	return &Service{
		repo:        repo,
		students:    students,
		teachers:    teachers,
		courses:     courses,
		assignments: assignments,
		completions: completions,
		enrollments: enrollments,
		grades:      grades,
		log:         log,
	}
}

func (svc *Service) checkUniqueness(uname, email string, exclAdms ...Admin) error {
	if err := svc.repo.CheckUniqueness(uname, email, exclAdms...); err != nil {
		var field string
		switch err {
		case ErrUsernameExists:
			field = "username"
		case ErrEmailExists:
			field = "email"
		default:
			return err
		}
		return core.NewValidationError(err, core.FieldError{Field: field, Error: err.Error()})
	}
	return nil
}

func (svc *Service) Create(na NewAdmin) (Admin, error) {
	now := time.Now().UTC()
	adm := Admin{
		Name:      na.Name,
		Username:  na.Username,
		Email:     na.Email,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := adm.SetPassword(na.Password); err != nil {
		return Admin{}, err
	}
	return svc.repo.CreateAdmin(adm)
}

func (svc *Service) GetByID(id int) (Admin, error) {
	return svc.repo.GetAdminByID(id)
}

func (svc *Service) GetByUsername(uname string) (Admin, error) {
	return svc.repo.GetAdminByUsername(core.CleanString(uname, true /* lower */))
}

func (svc *Service) QueryAll() ([]Admin, error) {
	return svc.repo.QueryAllAdmins()
}

// DeleteStudent removes a student along with their enrollments, assignment
// completions and grades.
func (svc *Service) DeleteStudent(studentID int) error {
	std, err := svc.students.GetStudentByID(studentID)
	if err != nil {
		return err
	}
	enrs, err := svc.enrollments.QueryEnrollmentsByStudentID(std.ID)
	if err != nil {
		return err
	}
	for _, enr := range enrs {
		if err := svc.grades.DeleteGradesByStudentAndCourse(enr.StudentID, enr.CourseID); err != nil {
			svc.log.Error("deleting grades", "student", enr.StudentID, "course", enr.CourseID, "error", err)
		}
		if err := svc.completions.DeleteCompletionsByEnrollmentID(enr.ID); err != nil {
			svc.log.Error("deleting completions", "enrollment", enr.ID, "error", err)
		}
		if err := svc.enrollments.DeleteEnrollmentsByID(enr.ID); err != nil {
			svc.log.Error("deleting enrollment", "enrollment", enr.ID, "error", err)
		}
	}
	return svc.students.DeleteStudentsByID(std.ID)
}

// DeleteTeacher removes a teacher. Their courses are kept and left without a
// teacher.
func (svc *Service) DeleteTeacher(teacherID int) error {
	tch, err := svc.teachers.GetTeacherByID(teacherID)
	if err != nil {
		return err
	}
	owned, err := svc.courses.QueryCoursesByTeacherID(tch.ID)
	if err != nil {
		return err
	}
	for _, crs := range owned {
		crs.TeacherID = null.Int{}
		crs.UpdatedAt = time.Now().UTC()
		if _, err := svc.courses.UpdateCourse(crs); err != nil {
			svc.log.Error("detaching course from teacher", "course", crs.ID, "teacher", tch.ID, "error", err)
		}
	}
	return svc.teachers.DeleteTeachersByID(tch.ID)
}

// DeleteCourse removes a course along with its enrollments, assignments and
// everything hanging off them.
func (svc *Service) DeleteCourse(courseID int) error {
	crs, err := svc.courses.GetCourseByID(courseID)
	if err != nil {
		return err
	}
	enrs, err := svc.enrollments.QueryEnrollmentsByCourseID(crs.ID)
	if err != nil {
		return err
	}
	for _, enr := range enrs {
		if err := svc.grades.DeleteGradesByStudentAndCourse(enr.StudentID, enr.CourseID); err != nil {
			svc.log.Error("deleting grades", "student", enr.StudentID, "course", enr.CourseID, "error", err)
		}
		if err := svc.completions.DeleteCompletionsByEnrollmentID(enr.ID); err != nil {
			svc.log.Error("deleting completions", "enrollment", enr.ID, "error", err)
		}
		if err := svc.enrollments.DeleteEnrollmentsByID(enr.ID); err != nil {
			svc.log.Error("deleting enrollment", "enrollment", enr.ID, "error", err)
		}
	}
	asgs, err := svc.assignments.QueryAssignmentsByCourseID(crs.ID)
	if err != nil {
		return err
	}
	for _, asg := range asgs {
		if err := svc.completions.DeleteCompletionsByAssignmentID(asg.ID); err != nil {
			svc.log.Error("deleting completions", "assignment", asg.ID, "error", err)
		}
		if err := svc.assignments.DeleteAssignmentsByID(asg.ID); err != nil {
			svc.log.Error("deleting assignment", "assignment", asg.ID, "error", err)
		}
	}
	return svc.courses.DeleteCoursesByID(crs.ID)
}

// DeleteAssignment removes an assignment and its completions. Grades already
// recorded against it are kept.
func (svc *Service) DeleteAssignment(assignmentID int) error {
	asg, err := svc.assignments.GetAssignmentByID(assignmentID)
	if err != nil {
		return err
	}
	if err := svc.completions.DeleteCompletionsByAssignmentID(asg.ID); err != nil {
		svc.log.Error("deleting completions", "assignment", asg.ID, "error", err)
	}
	return svc.assignments.DeleteAssignmentsByID(asg.ID)
}
