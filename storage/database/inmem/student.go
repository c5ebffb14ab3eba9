package inmemdb

import (
	"context"
	"sort"
	"strings"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/school"
)

type studentRepository struct {
	db *DB
}

var _ school.StudentRepository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(db *DB) *studentRepository {
	return &studentRepository{db: db}
}

func (repo *studentRepository) query() []school.Student {
	students := make([]school.Student, 0, len(repo.db.students))
	for _, s := range repo.db.students {
		students = append(students, *s)
	}
	return students
}

func (repo *studentRepository) CheckStudentUniqueness(ctx context.Context, studentID, email string, excluded []school.Student, exec ...core.DBExecutor) error {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	isExcluded := func(s school.Student) bool {
		for _, ex := range excluded {
			if ex.ID == s.ID {
				return true
			}
		}
		return false
	}
	for _, s := range repo.query() {
		if isExcluded(s) {
			continue
		}
		if s.StudentID == studentID {
			return school.ErrStudentIDExists
		}
		if email != "" && s.Email.Valid && strings.EqualFold(s.Email.String, email) {
			return school.ErrStudentEmailExists
		}
	}
	return nil
}

func (repo *studentRepository) CreateStudent(ctx context.Context, s school.Student, exec ...core.DBExecutor) (school.Student, error) {
	if err := repo.CheckStudentUniqueness(ctx, s.StudentID, s.Email.String, nil); err != nil {
		return school.Student{}, err
	}

	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	repo.db.students[s.ID] = &s
	return s, nil
}

func (repo *studentRepository) GetStudent(ctx context.Context, filter school.GetStudentFilter, exec ...core.DBExecutor) (school.Student, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	for _, s := range repo.query() {
		switch {
		case filter.ID != "" && s.ID == filter.ID,
			filter.StudentID != "" && s.StudentID == filter.StudentID,
			filter.UserID != "" && s.UserID.String == filter.UserID:
			return s, nil
		}
	}
	return school.Student{}, school.ErrNotFound
}

func (repo *studentRepository) QueryStudents(ctx context.Context, filter *school.StudentFilter, ordering []core.DBOrdering, exec ...core.DBExecutor) ([]school.Student, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	var students []school.Student
	for _, s := range repo.query() {
		if matchesStudentFilter(s, filter) {
			students = append(students, s)
		}
	}
	sort.Slice(students, func(i, j int) bool { return students[i].StudentID < students[j].StudentID })
	return students, nil
}

func matchesStudentFilter(s school.Student, filter *school.StudentFilter) bool {
	if filter == nil {
		return true
	}
	if filter.Search != "" {
		search := strings.ToLower(filter.Search)
		if !strings.Contains(strings.ToLower(s.FirstName), search) &&
			!strings.Contains(strings.ToLower(s.LastName), search) &&
			!strings.Contains(strings.ToLower(s.StudentID), search) &&
			!strings.Contains(strings.ToLower(s.Email.String), search) {
			return false
		}
	}
	if filter.CurrentClass != "" && s.CurrentClass != filter.CurrentClass {
		return false
	}
	if filter.IsActive != nil && s.IsActive != *filter.IsActive {
		return false
	}
	return true
}

func (repo *studentRepository) UpdateStudent(ctx context.Context, s school.Student, isActive *bool, exec ...core.DBExecutor) (school.Student, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	// only save set fields
	orig, ok := repo.db.students[s.ID]
	if !ok {
		return school.Student{}, school.ErrNotFound
	}
	if s.FirstName != "" {
		orig.FirstName = s.FirstName
	}
	if s.LastName != "" {
		orig.LastName = s.LastName
	}
	if !s.DateOfBirth.IsZero() {
		orig.DateOfBirth = s.DateOfBirth
	}
	if s.Gender != "" {
		orig.Gender = s.Gender
	}
	if s.Address != "" {
		orig.Address = s.Address
	}
	if s.Email.Valid {
		orig.Email = s.Email
	}
	if s.Phone.Valid {
		orig.Phone = s.Phone
	}
	if s.CurrentClass != "" {
		orig.CurrentClass = s.CurrentClass
	}
	if isActive != nil {
		orig.IsActive = *isActive
	}
	orig.UpdatedAt = s.UpdatedAt
	return *orig, nil
}

func (repo *studentRepository) DeleteStudentsByID(ctx context.Context, ids []string, exec ...core.DBExecutor) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	for _, id := range ids {
		repo.db.deleteStudentLocked(id)
	}
	return nil
}
