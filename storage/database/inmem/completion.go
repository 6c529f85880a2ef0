package inmemdb

import (
	"sort"

	"github.com/trezcool/darasa/core/assignment"
)

type completionRepository struct {
	db *completionTable
}

var _ assignment.CompletionRepository = (*completionRepository)(nil) // interface compliance check

func NewCompletionRepository(db *DB) *completionRepository {
	return &completionRepository{db: db.completion}
}

func (repo *completionRepository) query() []assignment.Completion {
	cmps := make([]assignment.Completion, 0, len(repo.db.table))
	for _, cmp := range repo.db.table {
		cmps = append(cmps, *cmp)
	}
	sort.Slice(cmps, func(i, j int) bool { return cmps[i].ID < cmps[j].ID })
	return cmps
}

func (repo *completionRepository) CreateCompletion(cmp assignment.Completion) (assignment.Completion, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.pkCount++
	cmp.ID = repo.db.pkCount
	repo.db.table[cmp.ID] = &cmp
	return cmp, nil
}

func (repo *completionRepository) GetCompletion(assignmentID, enrollmentID int) (assignment.Completion, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	for _, cmp := range repo.query() {
		if cmp.AssignmentID == assignmentID && cmp.EnrollmentID == enrollmentID {
			return cmp, nil
		}
	}
	return assignment.Completion{}, assignment.ErrCompletionNotFound
}

func (repo *completionRepository) UpdateCompletion(cmp assignment.Completion) (assignment.Completion, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	origCmp, ok := repo.db.table[cmp.ID]
	if !ok {
		return assignment.Completion{}, assignment.ErrCompletionNotFound
	}
	origCmp.Done = cmp.Done

	repo.db.table[cmp.ID] = origCmp
	return *origCmp, nil
}

func (repo *completionRepository) QueryCompletionsByAssignmentID(assignmentID int) ([]assignment.Completion, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	cmps := make([]assignment.Completion, 0)
	for _, cmp := range repo.query() {
		if cmp.AssignmentID == assignmentID {
			cmps = append(cmps, cmp)
		}
	}
	return cmps, nil
}

func (repo *completionRepository) DeleteCompletionsByAssignmentID(assignmentID int) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	for id, cmp := range repo.db.table {
		if cmp.AssignmentID == assignmentID {
			delete(repo.db.table, id)
		}
	}
	return nil
}

func (repo *completionRepository) DeleteCompletionsByEnrollmentID(enrollmentID int) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	for id, cmp := range repo.db.table {
		if cmp.EnrollmentID == enrollmentID {
			delete(repo.db.table, id)
		}
	}
	return nil
}
