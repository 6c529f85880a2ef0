package inmemdb

import (
	"sort"

	"github.com/trezcool/darasa/core/grade"
)

type gradeRepository struct {
	db *gradeTable
}

var _ grade.Repository = (*gradeRepository)(nil) // interface compliance check

func NewGradeRepository(db *DB) *gradeRepository {
	return &gradeRepository{db: db.grade}
}

func (repo *gradeRepository) query() []grade.Grade {
	grds := make([]grade.Grade, 0, len(repo.db.table))
	for _, grd := range repo.db.table {
		grds = append(grds, *grd)
	}
	sort.Slice(grds, func(i, j int) bool { return grds[i].ID < grds[j].ID })
	return grds
}

func (repo *gradeRepository) CreateGrade(grd grade.Grade) (grade.Grade, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.pkCount++
	grd.ID = repo.db.pkCount
	repo.db.table[grd.ID] = &grd
	return grd, nil
}

func (repo *gradeRepository) UpdateGrade(grd grade.Grade) (grade.Grade, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.table[grd.ID]; !ok {
		return grade.Grade{}, grade.ErrNotFound
	}
	repo.db.table[grd.ID] = &grd
	return grd, nil
}

func (repo *gradeRepository) QueryGradesByStudentAndCourse(studentID, courseID int) ([]grade.Grade, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	grds := make([]grade.Grade, 0)
	for _, grd := range repo.query() {
		if grd.StudentID == studentID && grd.CourseID == courseID {
			grds = append(grds, grd)
		}
	}
	return grds, nil
}

func (repo *gradeRepository) DeleteGradesByStudentAndCourse(studentID, courseID int) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	for id, grd := range repo.db.table {
		if grd.StudentID == studentID && grd.CourseID == courseID {
			delete(repo.db.table, id)
		}
	}
	return nil
}

func (repo *gradeRepository) DeleteGradesByID(ids ...int) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	for _, id := range ids {
		delete(repo.db.table, id)
	}
	return nil
}
