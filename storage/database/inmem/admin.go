package inmemdb

import (
	"sort"

	"github.com/trezcool/darasa/core/admin"
)

type adminRepository struct {
	db *adminTable
}

var _ admin.Repository = (*adminRepository)(nil) // interface compliance check

func NewAdminRepository(db *DB) *adminRepository {
	return &adminRepository{db: db.admin}
}

func (repo *adminRepository) query() []admin.Admin {
	adms := make([]admin.Admin, 0, len(repo.db.table))
	for _, adm := range repo.db.table {
		adms = append(adms, *adm)
	}
	sort.Slice(adms, func(i, j int) bool { return adms[i].ID < adms[j].ID })
	return adms
}

func (repo *adminRepository) CheckUniqueness(username, email string, excludedAdmins ...admin.Admin) error {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	for _, adm := range repo.query() {
		if isExcludedAdmin(adm.ID, excludedAdmins) {
			continue
		}
		if adm.Username == username {
			return admin.ErrUsernameExists
		}
		if adm.Email == email {
			return admin.ErrEmailExists
		}
	}
	return nil
}

func (repo *adminRepository) CreateAdmin(adm admin.Admin) (admin.Admin, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.pkCount++
	adm.ID = repo.db.pkCount
	repo.db.table[adm.ID] = &adm
	return adm, nil
}

func (repo *adminRepository) GetAdminByID(id int) (admin.Admin, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if adm, ok := repo.db.table[id]; ok {
		return *adm, nil
	}
	return admin.Admin{}, admin.ErrNotFound
}

func (repo *adminRepository) GetAdminByUsername(username string) (admin.Admin, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	for _, adm := range repo.query() {
		if adm.Username == username {
			return adm, nil
		}
	}
	return admin.Admin{}, admin.ErrNotFound
}

func (repo *adminRepository) UpdateAdmin(adm admin.Admin) (admin.Admin, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	orig, ok := repo.db.table[adm.ID]
	if !ok {
		return admin.Admin{}, admin.ErrNotFound
	}
	// only save set fields
	if adm.Name == "" {
		adm.Name = orig.Name
	}
	if adm.Username == "" {
		adm.Username = orig.Username
	}
	if adm.Email == "" {
		adm.Email = orig.Email
	}
	if adm.PasswordHash == nil {
		adm.PasswordHash = orig.PasswordHash
	}
	repo.db.table[adm.ID] = &adm
	return adm, nil
}

func (repo *adminRepository) QueryAllAdmins() ([]admin.Admin, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.query(), nil
}

func isExcludedAdmin(id int, excluded []admin.Admin) bool {
	for _, adm := range excluded {
		if adm.ID == id {
			return true
		}
	}
	return false
}
