package sqlxrepos

import (
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/darasa/core/grade"
)

type gradeRow struct {
	ID                int      `db:"id"`
	StudentID         int      `db:"student_id"`
	CourseID          int      `db:"course_id"`
	AssignmentID      null.Int `db:"assignment_id"`
	AssignmentName    string   `db:"assignment_name"`
	Score             float64  `db:"score"`
	MaxScore          float64  `db:"max_score"`
	Letter            string   `db:"letter"`
	Feedback          string   `db:"feedback"`
	GradedDate        string   `db:"graded_date"`
	GradedByTeacherID int      `db:"graded_by_teacher_id"`
}

type gradeRepository struct {
	db *sqlx.DB
}

var _ grade.Repository = (*gradeRepository)(nil) // interface compliance check

func NewGradeRepository(db *sqlx.DB) *gradeRepository {
	return &gradeRepository{db: db}
}

func (repo *gradeRepository) row(grd grade.Grade) gradeRow {
	return gradeRow{
		ID:                grd.ID,
		StudentID:         grd.StudentID,
		CourseID:          grd.CourseID,
		AssignmentID:      grd.AssignmentID,
		AssignmentName:    grd.AssignmentName,
		Score:             grd.Score,
		MaxScore:          grd.MaxScore,
		Letter:            grd.Letter,
		Feedback:          grd.Feedback,
		GradedDate:        grd.GradedDate,
		GradedByTeacherID: grd.GradedByTeacherID,
	}
}

func (repo *gradeRepository) unrow(row gradeRow) grade.Grade {
	return grade.Grade{
		ID:                row.ID,
		StudentID:         row.StudentID,
		CourseID:          row.CourseID,
		AssignmentID:      row.AssignmentID,
		AssignmentName:    row.AssignmentName,
		Score:             row.Score,
		MaxScore:          row.MaxScore,
		Letter:            row.Letter,
		Feedback:          row.Feedback,
		GradedDate:        row.GradedDate,
		GradedByTeacherID: row.GradedByTeacherID,
	}
}

func (repo *gradeRepository) CreateGrade(grd grade.Grade) (grade.Grade, error) {
	row := repo.row(grd)
	query := `INSERT INTO grade (student_id, course_id, assignment_id, assignment_name, score, max_score,
			letter, feedback, graded_date, graded_by_teacher_id)
		VALUES (:student_id, :course_id, :assignment_id, :assignment_name, :score, :max_score,
			:letter, :feedback, :graded_date, :graded_by_teacher_id)
		RETURNING id`
	stmt, err := repo.db.PrepareNamed(query)
	if err != nil {
		return grade.Grade{}, errors.Wrap(err, "inserting grade")
	}
	defer func() { _ = stmt.Close() }()
	if err = stmt.Get(&row.ID, row); err != nil {
		return grade.Grade{}, errors.Wrap(err, "inserting grade")
	}
	return repo.unrow(row), nil
}

func (repo *gradeRepository) UpdateGrade(grd grade.Grade) (grade.Grade, error) {
	row := repo.row(grd)
	query := `UPDATE grade
		SET assignment_id = :assignment_id, assignment_name = :assignment_name, score = :score,
			max_score = :max_score, letter = :letter, feedback = :feedback, graded_date = :graded_date,
			graded_by_teacher_id = :graded_by_teacher_id
		WHERE id = :id`
	res, err := repo.db.NamedExec(query, row)
	if err != nil {
		return grade.Grade{}, errors.Wrap(err, "updating grade")
	}
	if cnt, err := res.RowsAffected(); err == nil && cnt == 0 {
		return grade.Grade{}, grade.ErrNotFound
	}
	return repo.unrow(row), nil
}

func (repo *gradeRepository) QueryGradesByStudentAndCourse(studentID, courseID int) ([]grade.Grade, error) {
	var rows []gradeRow
	err := repo.db.Select(&rows,
		`SELECT * FROM grade WHERE student_id = $1 AND course_id = $2 ORDER BY id`, studentID, courseID)
	if err != nil {
		return nil, errors.Wrap(err, "querying grades")
	}
	grds := make([]grade.Grade, 0, len(rows))
	for _, row := range rows {
		grds = append(grds, repo.unrow(row))
	}
	return grds, nil
}

func (repo *gradeRepository) DeleteGradesByStudentAndCourse(studentID, courseID int) error {
	if _, err := repo.db.Exec(`DELETE FROM grade WHERE student_id = $1 AND course_id = $2`, studentID, courseID); err != nil {
		return errors.Wrap(err, "deleting grades by student and course")
	}
	return nil
}

func (repo *gradeRepository) DeleteGradesByID(ids ...int) error {
	if len(ids) == 0 {
		return nil
	}
	query, args, err := sqlx.In(`DELETE FROM grade WHERE id IN (?)`, ids)
	if err != nil {
		return errors.Wrap(err, "building grade delete query")
	}
	if _, err = repo.db.Exec(repo.db.Rebind(query), args...); err != nil {
		return errors.Wrap(err, "deleting grades")
	}
	return nil
}
