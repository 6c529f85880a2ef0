package grade

import (
	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/darasa/core"
)

type Grade struct {
	ID                int      `json:"id"`
	StudentID         int      `json:"student_id"`
	CourseID          int      `json:"course_id"`
	AssignmentID      null.Int `json:"assignment_id"`
	AssignmentName    string   `json:"assignment_name"`
	Score             float64  `json:"score"`
	MaxScore          float64  `json:"max_score"`
	Letter            string   `json:"letter"`
	Feedback          string   `json:"feedback"`
	GradedDate        string   `json:"graded_date"` // YYYY-MM-DD
	GradedByTeacherID int      `json:"graded_by_teacher_id"`
}

// Percentage returns the score as a percentage of the maximum,
// or 0 when the maximum is not positive.
func (g Grade) Percentage() float64 {
	if g.MaxScore <= 0 {
		return 0
	}
	return g.Score / g.MaxScore * 100
}

// LetterFor maps a percentage to its letter grade.
func LetterFor(pct float64) string {
	switch {
	case pct >= 90:
		return "A"
	case pct >= 80:
		return "B"
	case pct >= 70:
		return "C"
	case pct >= 60:
		return "D"
	default:
		return "F"
	}
}

// NewGrade contains information needed to record or revise a grade.
type NewGrade struct {
	StudentID      int     `json:"student_id" validate:"required"`
	CourseID       int     `json:"course_id" validate:"required"`
	AssignmentID   int     `json:"assignment_id"`
	AssignmentName string  `json:"assignment_name" validate:"required"`
	Score          float64 `json:"score" validate:"gte=0"`
	MaxScore       float64 `json:"max_score" validate:"gte=0"`
	Feedback       string  `json:"feedback"`
}

func (ng *NewGrade) Validate(validate *validator.Validate) error {
	ng.AssignmentName = core.CleanString(ng.AssignmentName)
	ng.Feedback = core.CleanString(ng.Feedback)
	return validate.Struct(ng)
}
