package sqlxrepos

import (
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core/assignment"
)

type assignmentRow struct {
	ID                 int    `db:"id"`
	CourseID           int    `db:"course_id"`
	Title              string `db:"title"`
	Description        string `db:"description"`
	DueDate            string `db:"due_date"`
	CreatedDate        string `db:"created_date"`
	Status             string `db:"status"`
	CreatedByTeacherID int    `db:"created_by_teacher_id"`
}

type assignmentRepository struct {
	db *sqlx.DB
}

var _ assignment.Repository = (*assignmentRepository)(nil) // interface compliance check

func NewAssignmentRepository(db *sqlx.DB) *assignmentRepository {
	return &assignmentRepository{db: db}
}

func (repo *assignmentRepository) row(asg assignment.Assignment) assignmentRow {
	return assignmentRow{
		ID:                 asg.ID,
		CourseID:           asg.CourseID,
		Title:              asg.Title,
		Description:        asg.Description,
		DueDate:            asg.DueDate,
		CreatedDate:        asg.CreatedDate,
		Status:             asg.Status,
		CreatedByTeacherID: asg.CreatedByTeacherID,
	}
}

func (repo *assignmentRepository) unrow(row assignmentRow) assignment.Assignment {
	return assignment.Assignment{
		ID:                 row.ID,
		CourseID:           row.CourseID,
		Title:              row.Title,
		Description:        row.Description,
		DueDate:            row.DueDate,
		CreatedDate:        row.CreatedDate,
		Status:             row.Status,
		CreatedByTeacherID: row.CreatedByTeacherID,
	}
}

func (repo *assignmentRepository) unrowSlice(rows []assignmentRow) []assignment.Assignment {
	asgs := make([]assignment.Assignment, 0, len(rows))
	for _, row := range rows {
		asgs = append(asgs, repo.unrow(row))
	}
	return asgs
}

func (repo *assignmentRepository) CreateAssignment(asg assignment.Assignment) (assignment.Assignment, error) {
	row := repo.row(asg)
	query := `INSERT INTO assignment (course_id, title, description, due_date, created_date, status, created_by_teacher_id)
		VALUES (:course_id, :title, :description, :due_date, :created_date, :status, :created_by_teacher_id)
		RETURNING id`
	stmt, err := repo.db.PrepareNamed(query)
	if err != nil {
		return assignment.Assignment{}, errors.Wrap(err, "inserting assignment")
	}
	defer func() { _ = stmt.Close() }()
	if err = stmt.Get(&row.ID, row); err != nil {
		return assignment.Assignment{}, errors.Wrap(err, "inserting assignment")
	}
	return repo.unrow(row), nil
}

func (repo *assignmentRepository) QueryAllAssignments() ([]assignment.Assignment, error) {
	var rows []assignmentRow
	if err := repo.db.Select(&rows, `SELECT * FROM assignment ORDER BY id`); err != nil {
		return nil, errors.Wrap(err, "querying assignments")
	}
	return repo.unrowSlice(rows), nil
}

func (repo *assignmentRepository) GetAssignmentByID(id int) (assignment.Assignment, error) {
	var row assignmentRow
	if err := repo.db.Get(&row, `SELECT * FROM assignment WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return assignment.Assignment{}, assignment.ErrNotFound
		}
		return assignment.Assignment{}, errors.Wrap(err, "finding assignment by ID")
	}
	return repo.unrow(row), nil
}

func (repo *assignmentRepository) QueryAssignmentsByCourseID(courseID int) ([]assignment.Assignment, error) {
	var rows []assignmentRow
	if err := repo.db.Select(&rows, `SELECT * FROM assignment WHERE course_id = $1 ORDER BY id`, courseID); err != nil {
		return nil, errors.Wrap(err, "querying assignments by course")
	}
	return repo.unrowSlice(rows), nil
}

func (repo *assignmentRepository) UpdateAssignment(asg assignment.Assignment) (assignment.Assignment, error) {
	row := repo.row(asg)
	query := `UPDATE assignment
		SET title = :title, description = :description, due_date = :due_date, status = :status
		WHERE id = :id`
	res, err := repo.db.NamedExec(query, row)
	if err != nil {
		return assignment.Assignment{}, errors.Wrap(err, "updating assignment")
	}
	if cnt, err := res.RowsAffected(); err == nil && cnt == 0 {
		return assignment.Assignment{}, assignment.ErrNotFound
	}
	return repo.GetAssignmentByID(asg.ID)
}

func (repo *assignmentRepository) DeleteAssignmentsByID(ids ...int) error {
	if len(ids) == 0 {
		return nil
	}
	query, args, err := sqlx.In(`DELETE FROM assignment WHERE id IN (?)`, ids)
	if err != nil {
		return errors.Wrap(err, "building assignment delete query")
	}
	if _, err = repo.db.Exec(repo.db.Rebind(query), args...); err != nil {
		return errors.Wrap(err, "deleting assignments")
	}
	return nil
}
