package sqlxrepos

import (
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core/admin"
)

type adminRow struct {
	ID           int       `db:"id"`
	Name         string    `db:"name"`
	Username     string    `db:"username"`
	Email        string    `db:"email"`
	PasswordHash []byte    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

type adminRepository struct {
	db *sqlx.DB
}

var _ admin.Repository = (*adminRepository)(nil) // interface compliance check

func NewAdminRepository(db *sqlx.DB) *adminRepository {
	return &adminRepository{db: db}
}

func (repo *adminRepository) row(adm admin.Admin) adminRow {
	return adminRow{
		ID:           adm.ID,
		Name:         adm.Name,
		Username:     adm.Username,
		Email:        adm.Email,
		PasswordHash: adm.PasswordHash,
		CreatedAt:    adm.CreatedAt.UTC(),
		UpdatedAt:    adm.UpdatedAt.UTC(),
	}
}

func (repo *adminRepository) unrow(row adminRow) admin.Admin {
	return admin.Admin{
		ID:           row.ID,
		Name:         row.Name,
		Username:     row.Username,
		Email:        row.Email,
		PasswordHash: row.PasswordHash,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}

func (repo *adminRepository) CheckUniqueness(username, email string, excludedAdmins ...admin.Admin) error {
	query := `SELECT username, email FROM admin WHERE username = $1 OR email = $2`
	args := []interface{}{username, email}
	if len(excludedAdmins) > 0 {
		ids := make([]int, 0, len(excludedAdmins))
		for _, adm := range excludedAdmins {
			ids = append(ids, adm.ID)
		}
		var err error
		query, args, err = sqlx.In(
			`SELECT username, email FROM admin WHERE (username = ? OR email = ?) AND id NOT IN (?)`,
			username, email, ids,
		)
		if err != nil {
			return errors.Wrap(err, "building admin uniqueness query")
		}
		query = repo.db.Rebind(query)
	}

	var rows []adminRow
	if err := repo.db.Select(&rows, query, args...); err != nil {
		return errors.Wrap(err, "checking admin uniqueness")
	}
	for _, row := range rows {
		if row.Username == username {
			return admin.ErrUsernameExists
		}
		if row.Email == email {
			return admin.ErrEmailExists
		}
	}
	return nil
}

func (repo *adminRepository) CreateAdmin(adm admin.Admin) (admin.Admin, error) {
	row := repo.row(adm)
	query := `INSERT INTO admin (name, username, email, password_hash, created_at, updated_at)
		VALUES (:name, :username, :email, :password_hash, :created_at, :updated_at)
		RETURNING id`
	stmt, err := repo.db.PrepareNamed(query)
	if err != nil {
		return admin.Admin{}, errors.Wrap(err, "inserting admin")
	}
	defer func() { _ = stmt.Close() }()
	if err = stmt.Get(&row.ID, row); err != nil {
		return admin.Admin{}, errors.Wrap(err, "inserting admin")
	}
	return repo.unrow(row), nil
}

func (repo *adminRepository) GetAdminByID(id int) (admin.Admin, error) {
	var row adminRow
	if err := repo.db.Get(&row, `SELECT * FROM admin WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return admin.Admin{}, admin.ErrNotFound
		}
		return admin.Admin{}, errors.Wrap(err, "finding admin by ID")
	}
	return repo.unrow(row), nil
}

func (repo *adminRepository) GetAdminByUsername(username string) (admin.Admin, error) {
	var row adminRow
	if err := repo.db.Get(&row, `SELECT * FROM admin WHERE username = $1`, username); err != nil {
		if err == sql.ErrNoRows {
			return admin.Admin{}, admin.ErrNotFound
		}
		return admin.Admin{}, errors.Wrap(err, "finding admin by username")
	}
	return repo.unrow(row), nil
}

func (repo *adminRepository) UpdateAdmin(adm admin.Admin) (admin.Admin, error) {
	row := repo.row(adm)
	query := `UPDATE admin
		SET name = :name, username = :username, email = :email, password_hash = :password_hash, updated_at = :updated_at
		WHERE id = :id`
	res, err := repo.db.NamedExec(query, row)
	if err != nil {
		return admin.Admin{}, errors.Wrap(err, "updating admin")
	}
	if n, err := res.RowsAffected(); err != nil {
		return admin.Admin{}, errors.Wrap(err, "updating admin")
	} else if n == 0 {
		return admin.Admin{}, admin.ErrNotFound
	}
	return adm, nil
}

func (repo *adminRepository) QueryAllAdmins() ([]admin.Admin, error) {
	var rows []adminRow
	if err := repo.db.Select(&rows, `SELECT * FROM admin ORDER BY id`); err != nil {
		return nil, errors.Wrap(err, "querying admins")
	}
	adms := make([]admin.Admin, 0, len(rows))
	for _, row := range rows {
		adms = append(adms, repo.unrow(row))
	}
	return adms, nil
}
