package sqlxrepos

import (
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core/assignment"
)

type completionRow struct {
	ID           int  `db:"id"`
	AssignmentID int  `db:"assignment_id"`
	EnrollmentID int  `db:"enrollment_id"`
	Done         bool `db:"done"`
}

type completionRepository struct {
	db *sqlx.DB
}

var _ assignment.CompletionRepository = (*completionRepository)(nil) // interface compliance check

func NewCompletionRepository(db *sqlx.DB) *completionRepository {
	return &completionRepository{db: db}
}

func (repo *completionRepository) unrow(row completionRow) assignment.Completion {
	return assignment.Completion{
		ID:           row.ID,
		AssignmentID: row.AssignmentID,
		EnrollmentID: row.EnrollmentID,
		Done:         row.Done,
	}
}

func (repo *completionRepository) CreateCompletion(cmp assignment.Completion) (assignment.Completion, error) {
	row := completionRow{
		AssignmentID: cmp.AssignmentID,
		EnrollmentID: cmp.EnrollmentID,
		Done:         cmp.Done,
	}
	query := `INSERT INTO assignment_completion (assignment_id, enrollment_id, done)
		VALUES (:assignment_id, :enrollment_id, :done)
		RETURNING id`
	stmt, err := repo.db.PrepareNamed(query)
	if err != nil {
		return assignment.Completion{}, errors.Wrap(err, "inserting completion")
	}
	defer func() { _ = stmt.Close() }()
	if err = stmt.Get(&row.ID, row); err != nil {
		return assignment.Completion{}, errors.Wrap(err, "inserting completion")
	}
	return repo.unrow(row), nil
}

func (repo *completionRepository) GetCompletion(assignmentID, enrollmentID int) (assignment.Completion, error) {
	var row completionRow
	err := repo.db.Get(&row,
		`SELECT * FROM assignment_completion WHERE assignment_id = $1 AND enrollment_id = $2`,
		assignmentID, enrollmentID)
	if err != nil {
		if err == sql.ErrNoRows {
			return assignment.Completion{}, assignment.ErrCompletionNotFound
		}
		return assignment.Completion{}, errors.Wrap(err, "finding completion")
	}
	return repo.unrow(row), nil
}

func (repo *completionRepository) UpdateCompletion(cmp assignment.Completion) (assignment.Completion, error) {
	res, err := repo.db.Exec(`UPDATE assignment_completion SET done = $1 WHERE id = $2`, cmp.Done, cmp.ID)
	if err != nil {
		return assignment.Completion{}, errors.Wrap(err, "updating completion")
	}
	if cnt, err := res.RowsAffected(); err == nil && cnt == 0 {
		return assignment.Completion{}, assignment.ErrCompletionNotFound
	}
	return cmp, nil
}

func (repo *completionRepository) QueryCompletionsByAssignmentID(assignmentID int) ([]assignment.Completion, error) {
	var rows []completionRow
	err := repo.db.Select(&rows,
		`SELECT * FROM assignment_completion WHERE assignment_id = $1 ORDER BY id`, assignmentID)
	if err != nil {
		return nil, errors.Wrap(err, "querying completions by assignment")
	}
	cmps := make([]assignment.Completion, 0, len(rows))
	for _, row := range rows {
		cmps = append(cmps, repo.unrow(row))
	}
	return cmps, nil
}

func (repo *completionRepository) DeleteCompletionsByAssignmentID(assignmentID int) error {
	if _, err := repo.db.Exec(`DELETE FROM assignment_completion WHERE assignment_id = $1`, assignmentID); err != nil {
		return errors.Wrap(err, "deleting completions by assignment")
	}
	return nil
}

func (repo *completionRepository) DeleteCompletionsByEnrollmentID(enrollmentID int) error {
	if _, err := repo.db.Exec(`DELETE FROM assignment_completion WHERE enrollment_id = $1`, enrollmentID); err != nil {
		return errors.Wrap(err, "deleting completions by enrollment")
	}
	return nil
}
