package assignment

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/darasa/core"
)

// completion statuses as reported to students
const (
	StatusCompleted   = "completed"
	StatusIncomplete  = "incomplete"
	StatusNotAssigned = "not assigned"
)

// NowFunc returns the current time; swapped out in tests.
var NowFunc = time.Now

type Assignment struct {
	ID                 int    `json:"id"`
	CourseID           int    `json:"course_id"`
	Title              string `json:"title"`
	Description        string `json:"description"`
	DueDate            string `json:"due_date"`     // YYYY-MM-DD
	CreatedDate        string `json:"created_date"` // YYYY-MM-DD
	Status             string `json:"status"`
	CreatedByTeacherID int    `json:"created_by_teacher_id"`
}

// Completion tracks whether one enrolled student is done with one assignment.
type Completion struct {
	ID           int  `json:"id"`
	AssignmentID int  `json:"assignment_id"`
	EnrollmentID int  `json:"enrollment_id"`
	Done         bool `json:"done"`
}

// DaysRemaining returns the number of whole days between `asOf` (now when
// omitted) and the assignment's due date. Past due dates yield a negative
// count; a missing or unparsable due date yields 0.
func (a Assignment) DaysRemaining(asOf ...time.Time) int {
	due, err := time.Parse(core.DateLayout, a.DueDate)
	if err != nil {
		return 0
	}
	now := NowFunc().UTC()
	if len(asOf) > 0 {
		now = asOf[0].UTC()
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return int(due.Sub(today).Hours() / 24)
}

// NewAssignment contains information needed to create a new Assignment.
type NewAssignment struct {
	CourseID    int    `json:"course_id" validate:"required"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	DueDate     string `json:"due_date" validate:"required,dateonly"`
}

func (na *NewAssignment) Validate(validate *validator.Validate) error {
	na.Title = core.CleanString(na.Title)
	na.Description = core.CleanString(na.Description)
	na.DueDate = core.CleanString(na.DueDate)
	return validate.Struct(na)
}

// UpdateAssignment defines what information may be provided to modify an existing Assignment.
type UpdateAssignment struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"due_date" validate:"omitempty,dateonly"`
	Status      string `json:"status"`
}

func (ua *UpdateAssignment) Validate(validate *validator.Validate, origAsg Assignment) error {
	if title := core.CleanString(ua.Title); title != "" {
		ua.Title = title
	} else {
		ua.Title = origAsg.Title
	}
	if desc := core.CleanString(ua.Description); desc != "" {
		ua.Description = desc
	} else {
		ua.Description = origAsg.Description
	}
	if due := core.CleanString(ua.DueDate); due != "" {
		ua.DueDate = due
	} else {
		ua.DueDate = origAsg.DueDate
	}
	if status := core.CleanString(ua.Status); status != "" {
		ua.Status = status
	} else {
		ua.Status = origAsg.Status
	}
	return validate.Struct(ua)
}

// StudentAssignment is one row of a student's assignment dashboard.
type StudentAssignment struct {
	Assignment
	CourseCode    string `json:"course_code"`
	CourseName    string `json:"course_name"`
	DaysRemaining int    `json:"days_remaining"`
	Status        string `json:"status"` // COMPLETED or PENDING
}

// dashboard statuses
const (
	DashboardCompleted = "COMPLETED"
	DashboardPending   = "PENDING"
)
