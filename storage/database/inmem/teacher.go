package inmemdb

import (
	"sort"

	"github.com/trezcool/darasa/core/teacher"
)

type teacherRepository struct {
	db *teacherTable
}

var _ teacher.Repository = (*teacherRepository)(nil) // interface compliance check

func NewTeacherRepository(db *DB) *teacherRepository {
	return &teacherRepository{db: db.teacher}
}

func (repo *teacherRepository) query() []teacher.Teacher {
	tchs := make([]teacher.Teacher, 0, len(repo.db.table))
	for _, tch := range repo.db.table {
		tchs = append(tchs, *tch)
	}
	sort.Slice(tchs, func(i, j int) bool { return tchs[i].ID < tchs[j].ID })
	return tchs
}

func (repo *teacherRepository) CheckUniqueness(code, username, email string, excludedTeachers ...teacher.Teacher) error {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	for _, tch := range repo.query() {
		if isExcludedTeacher(tch.ID, excludedTeachers) {
			continue
		}
		if tch.TeacherCode == code {
			return teacher.ErrCodeExists
		}
		if tch.Username == username {
			return teacher.ErrUsernameExists
		}
		if tch.Email == email {
			return teacher.ErrEmailExists
		}
	}
	return nil
}

func (repo *teacherRepository) CreateTeacher(tch teacher.Teacher) (teacher.Teacher, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.pkCount++
	tch.ID = repo.db.pkCount
	repo.db.table[tch.ID] = &tch
	return tch, nil
}

func (repo *teacherRepository) QueryAllTeachers() ([]teacher.Teacher, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.query(), nil
}

func (repo *teacherRepository) GetTeacherByID(id int) (teacher.Teacher, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if tch, ok := repo.db.table[id]; ok {
		return *tch, nil
	}
	return teacher.Teacher{}, teacher.ErrNotFound
}

func (repo *teacherRepository) GetTeacherByUsername(username string) (teacher.Teacher, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	for _, tch := range repo.query() {
		if tch.Username == username {
			return tch, nil
		}
	}
	return teacher.Teacher{}, teacher.ErrNotFound
}

func (repo *teacherRepository) UpdateTeacher(tch teacher.Teacher) (teacher.Teacher, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	// only save set fields
	origTch, ok := repo.db.table[tch.ID]
	if !ok {
		return teacher.Teacher{}, teacher.ErrNotFound
	}
	if tch.PasswordHash != nil {
		origTch.PasswordHash = tch.PasswordHash
	}
	if tch.Department != "" {
		origTch.Department = tch.Department
	}
	origTch.TeacherCode = tch.TeacherCode
	origTch.Name = tch.Name
	origTch.Username = tch.Username
	origTch.Email = tch.Email
	origTch.UpdatedAt = tch.UpdatedAt

	repo.db.table[tch.ID] = origTch
	return *origTch, nil
}

func (repo *teacherRepository) DeleteTeachersByID(ids ...int) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	for _, id := range ids {
		delete(repo.db.table, id)
	}
	return nil
}

func isExcludedTeacher(id int, excluded []teacher.Teacher) bool {
	for _, tch := range excluded {
		if tch.ID == id {
			return true
		}
	}
	return false
}
