package inmemdb

import (
	"context"
	"sort"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/school"
)

type enrollmentRepository struct {
	db *DB
}

var _ school.EnrollmentRepository = (*enrollmentRepository)(nil) // interface compliance check

func NewEnrollmentRepository(db *DB) *enrollmentRepository {
	return &enrollmentRepository{db: db}
}

func (repo *enrollmentRepository) query() []school.Enrollment {
	enrollments := make([]school.Enrollment, 0, len(repo.db.enrollments))
	for _, e := range repo.db.enrollments {
		enrollments = append(enrollments, *e)
	}
	return enrollments
}

func (repo *enrollmentRepository) CheckEnrollmentUniqueness(ctx context.Context, studentID, courseID string, exec ...core.DBExecutor) error {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	for _, e := range repo.query() {
		if e.StudentID == studentID && e.CourseID == courseID {
			return school.ErrEnrollmentExists
		}
	}
	return nil
}

func (repo *enrollmentRepository) CreateEnrollment(ctx context.Context, e school.Enrollment, exec ...core.DBExecutor) (school.Enrollment, error) {
	if err := repo.CheckEnrollmentUniqueness(ctx, e.StudentID, e.CourseID); err != nil {
		return school.Enrollment{}, err
	}

	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	repo.db.enrollments[e.ID] = &e
	return e, nil
}

func (repo *enrollmentRepository) GetEnrollment(ctx context.Context, id string, exec ...core.DBExecutor) (school.Enrollment, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if e, ok := repo.db.enrollments[id]; ok {
		return *e, nil
	}
	return school.Enrollment{}, school.ErrNotFound
}

func (repo *enrollmentRepository) QueryEnrollments(ctx context.Context, filter *school.EnrollmentFilter, ordering []core.DBOrdering, exec ...core.DBExecutor) ([]school.Enrollment, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	var enrollments []school.Enrollment
	for _, e := range repo.query() {
		if matchesEnrollmentFilter(e, filter) {
			enrollments = append(enrollments, e)
		}
	}
	sort.Slice(enrollments, func(i, j int) bool { return enrollments[i].CreatedAt.After(enrollments[j].CreatedAt) })
	return enrollments, nil
}

func matchesEnrollmentFilter(e school.Enrollment, filter *school.EnrollmentFilter) bool {
	if filter == nil {
		return true
	}
	if filter.StudentID != "" && e.StudentID != filter.StudentID {
		return false
	}
	if filter.CourseID != "" && e.CourseID != filter.CourseID {
		return false
	}
	if filter.IsCompleted != nil && e.IsCompleted != *filter.IsCompleted {
		return false
	}
	return true
}

func (repo *enrollmentRepository) UpdateEnrollment(ctx context.Context, e school.Enrollment, exec ...core.DBExecutor) (school.Enrollment, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.enrollments[e.ID]; !ok {
		return school.Enrollment{}, school.ErrNotFound
	}
	repo.db.enrollments[e.ID] = &e
	return e, nil
}

func (repo *enrollmentRepository) DeleteEnrollmentsByID(ctx context.Context, ids []string, exec ...core.DBExecutor) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	for _, id := range ids {
		delete(repo.db.enrollments, id)
	}
	return nil
}
