package sqlxrepos

import (
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core/teacher"
)

type teacherRow struct {
	ID           int       `db:"id"`
	TeacherCode  string    `db:"teacher_code"`
	Name         string    `db:"name"`
	Username     string    `db:"username"`
	Email        string    `db:"email"`
	Department   string    `db:"department"`
	PasswordHash []byte    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

type teacherRepository struct {
	db *sqlx.DB
}

var _ teacher.Repository = (*teacherRepository)(nil) // interface compliance check

func NewTeacherRepository(db *sqlx.DB) *teacherRepository {
	return &teacherRepository{db: db}
}

func (repo *teacherRepository) row(tch teacher.Teacher) teacherRow {
	return teacherRow{
		ID:           tch.ID,
		TeacherCode:  tch.TeacherCode,
		Name:         tch.Name,
		Username:     tch.Username,
		Email:        tch.Email,
		Department:   tch.Department,
		PasswordHash: tch.PasswordHash,
		CreatedAt:    tch.CreatedAt.UTC(),
		UpdatedAt:    tch.UpdatedAt.UTC(),
	}
}

func (repo *teacherRepository) unrow(row teacherRow) teacher.Teacher {
	return teacher.Teacher{
		ID:           row.ID,
		TeacherCode:  row.TeacherCode,
		Name:         row.Name,
		Username:     row.Username,
		Email:        row.Email,
		Department:   row.Department,
		PasswordHash: row.PasswordHash,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}

func (repo *teacherRepository) unrowSlice(rows []teacherRow) []teacher.Teacher {
	tchs := make([]teacher.Teacher, 0, len(rows))
	for _, row := range rows {
		tchs = append(tchs, repo.unrow(row))
	}
	return tchs
}

func (repo *teacherRepository) CheckUniqueness(code, username, email string, excludedTeachers ...teacher.Teacher) error {
	query := `SELECT teacher_code, username, email FROM teacher WHERE teacher_code = $1 OR username = $2 OR email = $3`
	args := []interface{}{code, username, email}
	if len(excludedTeachers) > 0 {
		ids := make([]int, 0, len(excludedTeachers))
		for _, tch := range excludedTeachers {
			ids = append(ids, tch.ID)
		}
		var err error
		query, args, err = sqlx.In(
			`SELECT teacher_code, username, email FROM teacher WHERE (teacher_code = ? OR username = ? OR email = ?) AND id NOT IN (?)`,
			code, username, email, ids,
		)
		if err != nil {
			return errors.Wrap(err, "building teacher uniqueness query")
		}
		query = repo.db.Rebind(query)
	}

	var rows []teacherRow
	if err := repo.db.Select(&rows, query, args...); err != nil {
		return errors.Wrap(err, "checking teacher uniqueness")
	}
	for _, row := range rows {
		switch {
		case row.TeacherCode == code:
			return teacher.ErrCodeExists
		case row.Username == username:
			return teacher.ErrUsernameExists
		case row.Email == email:
			return teacher.ErrEmailExists
		}
	}
	return nil
}

func (repo *teacherRepository) CreateTeacher(tch teacher.Teacher) (teacher.Teacher, error) {
	row := repo.row(tch)
	query := `INSERT INTO teacher (teacher_code, name, username, email, department, password_hash, created_at, updated_at)
		VALUES (:teacher_code, :name, :username, :email, :department, :password_hash, :created_at, :updated_at)
		RETURNING id`
	stmt, err := repo.db.PrepareNamed(query)
	if err != nil {
		return teacher.Teacher{}, errors.Wrap(err, "inserting teacher")
	}
	defer func() { _ = stmt.Close() }()
	if err = stmt.Get(&row.ID, row); err != nil {
		return teacher.Teacher{}, errors.Wrap(err, "inserting teacher")
	}
	return repo.unrow(row), nil
}

func (repo *teacherRepository) QueryAllTeachers() ([]teacher.Teacher, error) {
	var rows []teacherRow
	if err := repo.db.Select(&rows, `SELECT * FROM teacher ORDER BY id`); err != nil {
		return nil, errors.Wrap(err, "querying teachers")
	}
	return repo.unrowSlice(rows), nil
}

func (repo *teacherRepository) GetTeacherByID(id int) (teacher.Teacher, error) {
	var row teacherRow
	if err := repo.db.Get(&row, `SELECT * FROM teacher WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return teacher.Teacher{}, teacher.ErrNotFound
		}
		return teacher.Teacher{}, errors.Wrap(err, "finding teacher by ID")
	}
	return repo.unrow(row), nil
}

func (repo *teacherRepository) GetTeacherByUsername(username string) (teacher.Teacher, error) {
	var row teacherRow
	if err := repo.db.Get(&row, `SELECT * FROM teacher WHERE username = $1`, username); err != nil {
		if err == sql.ErrNoRows {
			return teacher.Teacher{}, teacher.ErrNotFound
		}
		return teacher.Teacher{}, errors.Wrap(err, "finding teacher by username")
	}
	return repo.unrow(row), nil
}

func (repo *teacherRepository) UpdateTeacher(tch teacher.Teacher) (teacher.Teacher, error) {
	orig, err := repo.GetTeacherByID(tch.ID)
	if err != nil {
		return teacher.Teacher{}, err
	}
	// only save set fields
	if tch.PasswordHash == nil {
		tch.PasswordHash = orig.PasswordHash
	}
	if tch.Department == "" {
		tch.Department = orig.Department
	}
	tch.CreatedAt = orig.CreatedAt

	row := repo.row(tch)
	query := `UPDATE teacher
		SET teacher_code = :teacher_code, name = :name, username = :username, email = :email,
			department = :department, password_hash = :password_hash, updated_at = :updated_at
		WHERE id = :id`
	if _, err = repo.db.NamedExec(query, row); err != nil {
		return teacher.Teacher{}, errors.Wrap(err, "updating teacher")
	}
	return repo.unrow(row), nil
}

func (repo *teacherRepository) DeleteTeachersByID(ids ...int) error {
	if len(ids) == 0 {
		return nil
	}
	query, args, err := sqlx.In(`DELETE FROM teacher WHERE id IN (?)`, ids)
	if err != nil {
		return errors.Wrap(err, "building teacher delete query")
	}
	if _, err = repo.db.Exec(repo.db.Rebind(query), args...); err != nil {
		return errors.Wrap(err, "deleting teachers")
	}
	return nil
}
