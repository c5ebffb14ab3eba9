package inmemdb

import (
	"context"
	"sort"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/school"
)

type leaveRepository struct {
	db *DB
}

var _ school.LeaveRepository = (*leaveRepository)(nil) // interface compliance check

func NewLeaveRepository(db *DB) *leaveRepository {
	return &leaveRepository{db: db}
}

func (repo *leaveRepository) query() []school.Leave {
	leaves := make([]school.Leave, 0, len(repo.db.leaves))
	for _, l := range repo.db.leaves {
		leaves = append(leaves, *l)
	}
	return leaves
}

func (repo *leaveRepository) CreateLeave(ctx context.Context, l school.Leave, exec ...core.DBExecutor) (school.Leave, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	repo.db.leaves[l.ID] = &l
	return l, nil
}

func (repo *leaveRepository) GetLeave(ctx context.Context, id string, exec ...core.DBExecutor) (school.Leave, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if l, ok := repo.db.leaves[id]; ok {
		return *l, nil
	}
	return school.Leave{}, school.ErrNotFound
}

func (repo *leaveRepository) QueryLeaves(ctx context.Context, filter *school.LeaveFilter, ordering []core.DBOrdering, exec ...core.DBExecutor) ([]school.Leave, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	var leaves []school.Leave
	for _, l := range repo.query() {
		if matchesLeaveFilter(l, filter) {
			leaves = append(leaves, l)
		}
	}
	sort.Slice(leaves, func(i, j int) bool { return leaves[i].CreatedAt.After(leaves[j].CreatedAt) })
	return leaves, nil
}

func matchesLeaveFilter(l school.Leave, filter *school.LeaveFilter) bool {
	if filter == nil {
		return true
	}
	if filter.StudentID != "" && l.StudentID.String != filter.StudentID {
		return false
	}
	if filter.TeacherID != "" && l.TeacherID.String != filter.TeacherID {
		return false
	}
	if filter.Status != "" && l.Status != filter.Status {
		return false
	}
	return true
}

func (repo *leaveRepository) UpdateLeave(ctx context.Context, l school.Leave, exec ...core.DBExecutor) (school.Leave, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.leaves[l.ID]; !ok {
		return school.Leave{}, school.ErrNotFound
	}
	repo.db.leaves[l.ID] = &l
	return l, nil
}

func (repo *leaveRepository) DeleteLeavesByID(ctx context.Context, ids []string, exec ...core.DBExecutor) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	for _, id := range ids {
		delete(repo.db.leaves, id)
	}
	return nil
}
