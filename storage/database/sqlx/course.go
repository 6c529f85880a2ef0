package sqlxrepos

import (
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/darasa/core/course"
)

type courseRow struct {
	ID        int         `db:"id"`
	Code      string      `db:"code"`
	Name      string      `db:"name"`
	Schedule  null.String `db:"schedule"`
	TeacherID null.Int    `db:"teacher_id"`
	CreatedAt time.Time   `db:"created_at"`
	UpdatedAt time.Time   `db:"updated_at"`
}

type courseRepository struct {
	db *sqlx.DB
}

var _ course.Repository = (*courseRepository)(nil) // interface compliance check

func NewCourseRepository(db *sqlx.DB) *courseRepository {
	return &courseRepository{db: db}
}

func (repo *courseRepository) row(crs course.Course) courseRow {
	return courseRow{
		ID:        crs.ID,
		Code:      crs.Code,
		Name:      crs.Name,
		Schedule:  crs.Schedule,
		TeacherID: crs.TeacherID,
		CreatedAt: crs.CreatedAt.UTC(),
		UpdatedAt: crs.UpdatedAt.UTC(),
	}
}

func (repo *courseRepository) unrow(row courseRow) course.Course {
	return course.Course{
		ID:        row.ID,
		Code:      row.Code,
		Name:      row.Name,
		Schedule:  row.Schedule,
		TeacherID: row.TeacherID,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

func (repo *courseRepository) unrowSlice(rows []courseRow) []course.Course {
	crss := make([]course.Course, 0, len(rows))
	for _, row := range rows {
		crss = append(crss, repo.unrow(row))
	}
	return crss
}

func (repo *courseRepository) CheckCodeUniqueness(code string, excludedCourses ...course.Course) error {
	query := `SELECT id FROM course WHERE code = $1`
	args := []interface{}{code}
	if len(excludedCourses) > 0 {
		ids := make([]int, 0, len(excludedCourses))
		for _, crs := range excludedCourses {
			ids = append(ids, crs.ID)
		}
		var err error
		query, args, err = sqlx.In(`SELECT id FROM course WHERE code = ? AND id NOT IN (?)`, code, ids)
		if err != nil {
			return errors.Wrap(err, "building course uniqueness query")
		}
		query = repo.db.Rebind(query)
	}

	var ids []int
	if err := repo.db.Select(&ids, query, args...); err != nil {
		return errors.Wrap(err, "checking course code uniqueness")
	}
	if len(ids) > 0 {
		return course.ErrCodeExists
	}
	return nil
}

func (repo *courseRepository) CreateCourse(crs course.Course) (course.Course, error) {
	row := repo.row(crs)
	query := `INSERT INTO course (code, name, schedule, teacher_id, created_at, updated_at)
		VALUES (:code, :name, :schedule, :teacher_id, :created_at, :updated_at)
		RETURNING id`
	stmt, err := repo.db.PrepareNamed(query)
	if err != nil {
		return course.Course{}, errors.Wrap(err, "inserting course")
	}
	defer func() { _ = stmt.Close() }()
	if err = stmt.Get(&row.ID, row); err != nil {
		return course.Course{}, errors.Wrap(err, "inserting course")
	}
	return repo.unrow(row), nil
}

func (repo *courseRepository) QueryAllCourses() ([]course.Course, error) {
	var rows []courseRow
	if err := repo.db.Select(&rows, `SELECT * FROM course ORDER BY id`); err != nil {
		return nil, errors.Wrap(err, "querying courses")
	}
	return repo.unrowSlice(rows), nil
}

func (repo *courseRepository) GetCourseByID(id int) (course.Course, error) {
	var row courseRow
	if err := repo.db.Get(&row, `SELECT * FROM course WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return course.Course{}, course.ErrNotFound
		}
		return course.Course{}, errors.Wrap(err, "finding course by ID")
	}
	return repo.unrow(row), nil
}

func (repo *courseRepository) QueryCoursesByTeacherID(teacherID int) ([]course.Course, error) {
	var rows []courseRow
	if err := repo.db.Select(&rows, `SELECT * FROM course WHERE teacher_id = $1 ORDER BY id`, teacherID); err != nil {
		return nil, errors.Wrap(err, "querying courses by teacher")
	}
	return repo.unrowSlice(rows), nil
}

func (repo *courseRepository) UpdateCourse(crs course.Course) (course.Course, error) {
	orig, err := repo.GetCourseByID(crs.ID)
	if err != nil {
		return course.Course{}, err
	}
	crs.CreatedAt = orig.CreatedAt

	row := repo.row(crs)
	query := `UPDATE course
		SET code = :code, name = :name, schedule = :schedule, teacher_id = :teacher_id, updated_at = :updated_at
		WHERE id = :id`
	if _, err = repo.db.NamedExec(query, row); err != nil {
		return course.Course{}, errors.Wrap(err, "updating course")
	}
	return repo.unrow(row), nil
}

func (repo *courseRepository) DeleteCoursesByID(ids ...int) error {
	if len(ids) == 0 {
		return nil
	}
	query, args, err := sqlx.In(`DELETE FROM course WHERE id IN (?)`, ids)
	if err != nil {
		return errors.Wrap(err, "building course delete query")
	}
	if _, err = repo.db.Exec(repo.db.Rebind(query), args...); err != nil {
		return errors.Wrap(err, "deleting courses")
	}
	return nil
}
