package sqlxrepos

import (
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/darasa/core/student"
)

type studentRow struct {
	ID           int         `db:"id"`
	StudentCode  string      `db:"student_code"`
	Name         string      `db:"name"`
	Username     string      `db:"username"`
	Email        string      `db:"email"`
	DateOfBirth  null.String `db:"date_of_birth"`
	PasswordHash []byte      `db:"password_hash"`
	CreatedAt    time.Time   `db:"created_at"`
	UpdatedAt    time.Time   `db:"updated_at"`
}

type studentRepository struct {
	db *sqlx.DB
}

var _ student.Repository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(db *sqlx.DB) *studentRepository {
	return &studentRepository{db: db}
}

func (repo *studentRepository) row(std student.Student) studentRow {
	return studentRow{
		ID:           std.ID,
		StudentCode:  std.StudentCode,
		Name:         std.Name,
		Username:     std.Username,
		Email:        std.Email,
		DateOfBirth:  std.DateOfBirth,
		PasswordHash: std.PasswordHash,
		CreatedAt:    std.CreatedAt.UTC(),
		UpdatedAt:    std.UpdatedAt.UTC(),
	}
}

func (repo *studentRepository) unrow(row studentRow) student.Student {
	return student.Student{
		ID:           row.ID,
		StudentCode:  row.StudentCode,
		Name:         row.Name,
		Username:     row.Username,
		Email:        row.Email,
		DateOfBirth:  row.DateOfBirth,
		PasswordHash: row.PasswordHash,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}

func (repo *studentRepository) unrowSlice(rows []studentRow) []student.Student {
	stds := make([]student.Student, 0, len(rows))
	for _, row := range rows {
		stds = append(stds, repo.unrow(row))
	}
	return stds
}

func (repo *studentRepository) CheckUniqueness(code, username, email string, excludedStudents ...student.Student) error {
	query := `SELECT student_code, username, email FROM student WHERE student_code = $1 OR username = $2 OR email = $3`
	args := []interface{}{code, username, email}
	if len(excludedStudents) > 0 {
		ids := make([]int, 0, len(excludedStudents))
		for _, std := range excludedStudents {
			ids = append(ids, std.ID)
		}
		var err error
		query, args, err = sqlx.In(
			`SELECT student_code, username, email FROM student WHERE (student_code = ? OR username = ? OR email = ?) AND id NOT IN (?)`,
			code, username, email, ids,
		)
		if err != nil {
			return errors.Wrap(err, "building student uniqueness query")
		}
		query = repo.db.Rebind(query)
	}

	var rows []studentRow
	if err := repo.db.Select(&rows, query, args...); err != nil {
		return errors.Wrap(err, "checking student uniqueness")
	}
	for _, row := range rows {
		switch {
		case row.StudentCode == code:
			return student.ErrCodeExists
		case row.Username == username:
			return student.ErrUsernameExists
		case row.Email == email:
			return student.ErrEmailExists
		}
	}
	return nil
}

func (repo *studentRepository) CreateStudent(std student.Student) (student.Student, error) {
	row := repo.row(std)
	query := `INSERT INTO student (student_code, name, username, email, date_of_birth, password_hash, created_at, updated_at)
		VALUES (:student_code, :name, :username, :email, :date_of_birth, :password_hash, :created_at, :updated_at)
		RETURNING id`
	stmt, err := repo.db.PrepareNamed(query)
	if err != nil {
		return student.Student{}, errors.Wrap(err, "inserting student")
	}
	defer func() { _ = stmt.Close() }()
	if err = stmt.Get(&row.ID, row); err != nil {
		return student.Student{}, errors.Wrap(err, "inserting student")
	}
	return repo.unrow(row), nil
}

func (repo *studentRepository) QueryAllStudents() ([]student.Student, error) {
	var rows []studentRow
	if err := repo.db.Select(&rows, `SELECT * FROM student ORDER BY id`); err != nil {
		return nil, errors.Wrap(err, "querying students")
	}
	return repo.unrowSlice(rows), nil
}

func (repo *studentRepository) GetStudentByID(id int) (student.Student, error) {
	var row studentRow
	if err := repo.db.Get(&row, `SELECT * FROM student WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return student.Student{}, student.ErrNotFound
		}
		return student.Student{}, errors.Wrap(err, "finding student by ID")
	}
	return repo.unrow(row), nil
}

func (repo *studentRepository) GetStudentByUsername(username string) (student.Student, error) {
	var row studentRow
	if err := repo.db.Get(&row, `SELECT * FROM student WHERE username = $1`, username); err != nil {
		if err == sql.ErrNoRows {
			return student.Student{}, student.ErrNotFound
		}
		return student.Student{}, errors.Wrap(err, "finding student by username")
	}
	return repo.unrow(row), nil
}

func (repo *studentRepository) UpdateStudent(std student.Student) (student.Student, error) {
	orig, err := repo.GetStudentByID(std.ID)
	if err != nil {
		return student.Student{}, err
	}
	// only save set fields
	if std.PasswordHash == nil {
		std.PasswordHash = orig.PasswordHash
	}
	if !std.DateOfBirth.Valid {
		std.DateOfBirth = orig.DateOfBirth
	}
	std.CreatedAt = orig.CreatedAt

	row := repo.row(std)
	query := `UPDATE student
		SET student_code = :student_code, name = :name, username = :username, email = :email,
			date_of_birth = :date_of_birth, password_hash = :password_hash, updated_at = :updated_at
		WHERE id = :id`
	if _, err = repo.db.NamedExec(query, row); err != nil {
		return student.Student{}, errors.Wrap(err, "updating student")
	}
	return repo.unrow(row), nil
}

func (repo *studentRepository) DeleteStudentsByID(ids ...int) error {
	if len(ids) == 0 {
		return nil
	}
	query, args, err := sqlx.In(`DELETE FROM student WHERE id IN (?)`, ids)
	if err != nil {
		return errors.Wrap(err, "building student delete query")
	}
	if _, err = repo.db.Exec(repo.db.Rebind(query), args...); err != nil {
		return errors.Wrap(err, "deleting students")
	}
	return nil
}
