package sqlxrepos

import (
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core/enrollment"
)

type enrollmentRow struct {
	ID         int       `db:"id"`
	StudentID  int       `db:"student_id"`
	CourseID   int       `db:"course_id"`
	Status     string    `db:"status"`
	EnrolledAt time.Time `db:"enrolled_at"`
}

type enrollmentRepository struct {
	db *sqlx.DB
}

var _ enrollment.Repository = (*enrollmentRepository)(nil) // interface compliance check

func NewEnrollmentRepository(db *sqlx.DB) *enrollmentRepository {
	return &enrollmentRepository{db: db}
}

func (repo *enrollmentRepository) unrow(row enrollmentRow) enrollment.Enrollment {
	return enrollment.Enrollment{
		ID:         row.ID,
		StudentID:  row.StudentID,
		CourseID:   row.CourseID,
		Status:     row.Status,
		EnrolledAt: row.EnrolledAt,
	}
}

func (repo *enrollmentRepository) unrowSlice(rows []enrollmentRow) []enrollment.Enrollment {
	enrs := make([]enrollment.Enrollment, 0, len(rows))
	for _, row := range rows {
		enrs = append(enrs, repo.unrow(row))
	}
	return enrs
}

func (repo *enrollmentRepository) CreateEnrollment(enr enrollment.Enrollment) (enrollment.Enrollment, error) {
	row := enrollmentRow{
		StudentID:  enr.StudentID,
		CourseID:   enr.CourseID,
		Status:     enr.Status,
		EnrolledAt: enr.EnrolledAt.UTC(),
	}
	query := `INSERT INTO enrollment (student_id, course_id, status, enrolled_at)
		VALUES (:student_id, :course_id, :status, :enrolled_at)
		RETURNING id`
	stmt, err := repo.db.PrepareNamed(query)
	if err != nil {
		return enrollment.Enrollment{}, errors.Wrap(err, "inserting enrollment")
	}
	defer func() { _ = stmt.Close() }()
	if err = stmt.Get(&row.ID, row); err != nil {
		return enrollment.Enrollment{}, errors.Wrap(err, "inserting enrollment")
	}
	return repo.unrow(row), nil
}

func (repo *enrollmentRepository) GetEnrollment(studentID, courseID int) (enrollment.Enrollment, error) {
	var row enrollmentRow
	err := repo.db.Get(&row, `SELECT * FROM enrollment WHERE student_id = $1 AND course_id = $2`, studentID, courseID)
	if err != nil {
		if err == sql.ErrNoRows {
			return enrollment.Enrollment{}, enrollment.ErrNotFound
		}
		return enrollment.Enrollment{}, errors.Wrap(err, "finding enrollment")
	}
	return repo.unrow(row), nil
}

func (repo *enrollmentRepository) GetEnrollmentByID(id int) (enrollment.Enrollment, error) {
	var row enrollmentRow
	if err := repo.db.Get(&row, `SELECT * FROM enrollment WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return enrollment.Enrollment{}, enrollment.ErrNotFound
		}
		return enrollment.Enrollment{}, errors.Wrap(err, "finding enrollment by ID")
	}
	return repo.unrow(row), nil
}

func (repo *enrollmentRepository) QueryEnrollmentsByStudentID(studentID int) ([]enrollment.Enrollment, error) {
	var rows []enrollmentRow
	if err := repo.db.Select(&rows, `SELECT * FROM enrollment WHERE student_id = $1 ORDER BY id`, studentID); err != nil {
		return nil, errors.Wrap(err, "querying enrollments by student")
	}
	return repo.unrowSlice(rows), nil
}

func (repo *enrollmentRepository) QueryEnrollmentsByCourseID(courseID int) ([]enrollment.Enrollment, error) {
	var rows []enrollmentRow
	if err := repo.db.Select(&rows, `SELECT * FROM enrollment WHERE course_id = $1 ORDER BY id`, courseID); err != nil {
		return nil, errors.Wrap(err, "querying enrollments by course")
	}
	return repo.unrowSlice(rows), nil
}

func (repo *enrollmentRepository) UpdateEnrollment(enr enrollment.Enrollment) (enrollment.Enrollment, error) {
	res, err := repo.db.Exec(`UPDATE enrollment SET status = $1 WHERE id = $2`, enr.Status, enr.ID)
	if err != nil {
		return enrollment.Enrollment{}, errors.Wrap(err, "updating enrollment")
	}
	if cnt, err := res.RowsAffected(); err == nil && cnt == 0 {
		return enrollment.Enrollment{}, enrollment.ErrNotFound
	}
	return repo.GetEnrollmentByID(enr.ID)
}

func (repo *enrollmentRepository) DeleteEnrollmentsByID(ids ...int) error {
	if len(ids) == 0 {
		return nil
	}
	query, args, err := sqlx.In(`DELETE FROM enrollment WHERE id IN (?)`, ids)
	if err != nil {
		return errors.Wrap(err, "building enrollment delete query")
	}
	if _, err = repo.db.Exec(repo.db.Rebind(query), args...); err != nil {
		return errors.Wrap(err, "deleting enrollments")
	}
	return nil
}
