package inmemdb

import (
	"context"
	"sort"
	"strings"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/school"
)

type teacherRepository struct {
	db *DB
}

var _ school.TeacherRepository = (*teacherRepository)(nil) // interface compliance check

func NewTeacherRepository(db *DB) *teacherRepository {
	return &teacherRepository{db: db}
}

func (repo *teacherRepository) query() []school.Teacher {
	teachers := make([]school.Teacher, 0, len(repo.db.teachers))
	for _, t := range repo.db.teachers {
		teachers = append(teachers, *t)
	}
	return teachers
}

func (repo *teacherRepository) CheckTeacherUniqueness(ctx context.Context, teacherID, email string, excluded []school.Teacher, exec ...core.DBExecutor) error {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	isExcluded := func(t school.Teacher) bool {
		for _, ex := range excluded {
			if ex.ID == t.ID {
				return true
			}
		}
		return false
	}
	for _, t := range repo.query() {
		if isExcluded(t) {
			continue
		}
		if t.TeacherID == teacherID {
			return school.ErrTeacherIDExists
		}
		if strings.EqualFold(t.Email, email) {
			return school.ErrTeacherEmailExists
		}
	}
	return nil
}

func (repo *teacherRepository) CreateTeacher(ctx context.Context, t school.Teacher, exec ...core.DBExecutor) (school.Teacher, error) {
	if err := repo.CheckTeacherUniqueness(ctx, t.TeacherID, t.Email, nil); err != nil {
		return school.Teacher{}, err
	}

	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	repo.db.teachers[t.ID] = &t
	return t, nil
}

func (repo *teacherRepository) GetTeacher(ctx context.Context, filter school.GetTeacherFilter, exec ...core.DBExecutor) (school.Teacher, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	for _, t := range repo.query() {
		switch {
		case filter.ID != "" && t.ID == filter.ID,
			filter.TeacherID != "" && t.TeacherID == filter.TeacherID,
			filter.UserID != "" && t.UserID.String == filter.UserID:
			return t, nil
		}
	}
	return school.Teacher{}, school.ErrNotFound
}

func (repo *teacherRepository) QueryTeachers(ctx context.Context, filter *school.TeacherFilter, ordering []core.DBOrdering, exec ...core.DBExecutor) ([]school.Teacher, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	var teachers []school.Teacher
	for _, t := range repo.query() {
		if matchesTeacherFilter(t, filter) {
			teachers = append(teachers, t)
		}
	}
	sort.Slice(teachers, func(i, j int) bool { return teachers[i].TeacherID < teachers[j].TeacherID })
	return teachers, nil
}

func matchesTeacherFilter(t school.Teacher, filter *school.TeacherFilter) bool {
	if filter == nil {
		return true
	}
	if filter.Search != "" {
		search := strings.ToLower(filter.Search)
		if !strings.Contains(strings.ToLower(t.FirstName), search) &&
			!strings.Contains(strings.ToLower(t.LastName), search) &&
			!strings.Contains(strings.ToLower(t.TeacherID), search) &&
			!strings.Contains(strings.ToLower(t.Email), search) {
			return false
		}
	}
	if filter.Department != "" && t.Department != filter.Department {
		return false
	}
	if filter.IsActive != nil && t.IsActive != *filter.IsActive {
		return false
	}
	return true
}

func (repo *teacherRepository) UpdateTeacher(ctx context.Context, t school.Teacher, isActive *bool, exec ...core.DBExecutor) (school.Teacher, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	// only save set fields
	orig, ok := repo.db.teachers[t.ID]
	if !ok {
		return school.Teacher{}, school.ErrNotFound
	}
	if t.FirstName != "" {
		orig.FirstName = t.FirstName
	}
	if t.LastName != "" {
		orig.LastName = t.LastName
	}
	if !t.DateOfBirth.IsZero() {
		orig.DateOfBirth = t.DateOfBirth
	}
	if t.Gender != "" {
		orig.Gender = t.Gender
	}
	if t.Address != "" {
		orig.Address = t.Address
	}
	if t.Email != "" {
		orig.Email = t.Email
	}
	if t.Phone != "" {
		orig.Phone = t.Phone
	}
	if t.Department != "" {
		orig.Department = t.Department
	}
	if isActive != nil {
		orig.IsActive = *isActive
	}
	orig.UpdatedAt = t.UpdatedAt
	return *orig, nil
}

func (repo *teacherRepository) DeleteTeachersByID(ctx context.Context, ids []string, exec ...core.DBExecutor) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	for _, id := range ids {
		repo.db.deleteTeacherLocked(id)
	}
	return nil
}
