package inmemdb

import (
	"context"
	"sort"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/school"
)

type courseRepository struct {
	db *DB
}

var _ school.CourseRepository = (*courseRepository)(nil) // interface compliance check

func NewCourseRepository(db *DB) *courseRepository {
	return &courseRepository{db: db}
}

func (repo *courseRepository) query() []school.Course {
	courses := make([]school.Course, 0, len(repo.db.courses))
	for _, c := range repo.db.courses {
		courses = append(courses, *c)
	}
	return courses
}

func (repo *courseRepository) CheckCourseUniqueness(ctx context.Context, courseCode, academicYear string, excluded []school.Course, exec ...core.DBExecutor) error {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	isExcluded := func(c school.Course) bool {
		for _, ex := range excluded {
			if ex.ID == c.ID {
				return true
			}
		}
		return false
	}
	for _, c := range repo.query() {
		if isExcluded(c) {
			continue
		}
		if c.CourseCode == courseCode && c.AcademicYear == academicYear {
			return school.ErrCourseExists
		}
	}
	return nil
}

func (repo *courseRepository) CreateCourse(ctx context.Context, c school.Course, exec ...core.DBExecutor) (school.Course, error) {
	if err := repo.CheckCourseUniqueness(ctx, c.CourseCode, c.AcademicYear, nil); err != nil {
		return school.Course{}, err
	}

	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	repo.db.courses[c.ID] = &c
	return c, nil
}

func (repo *courseRepository) GetCourse(ctx context.Context, id string, exec ...core.DBExecutor) (school.Course, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if c, ok := repo.db.courses[id]; ok {
		return *c, nil
	}
	return school.Course{}, school.ErrNotFound
}

func (repo *courseRepository) QueryCourses(ctx context.Context, filter *school.CourseFilter, ordering []core.DBOrdering, exec ...core.DBExecutor) ([]school.Course, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	var courses []school.Course
	for _, c := range repo.query() {
		if matchesCourseFilter(c, filter) {
			courses = append(courses, c)
		}
	}
	sort.Slice(courses, func(i, j int) bool { return courses[i].CourseCode < courses[j].CourseCode })
	return courses, nil
}

func matchesCourseFilter(c school.Course, filter *school.CourseFilter) bool {
	if filter == nil {
		return true
	}
	if filter.TeacherID != "" && c.TeacherID != filter.TeacherID {
		return false
	}
	if filter.ClassLevel != "" && c.ClassLevel != filter.ClassLevel {
		return false
	}
	if filter.AcademicYear != "" && c.AcademicYear != filter.AcademicYear {
		return false
	}
	if filter.IsActive != nil && c.IsActive != *filter.IsActive {
		return false
	}
	return true
}

func (repo *courseRepository) UpdateCourse(ctx context.Context, c school.Course, isActive *bool, exec ...core.DBExecutor) (school.Course, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	// only save set fields
	orig, ok := repo.db.courses[c.ID]
	if !ok {
		return school.Course{}, school.ErrNotFound
	}
	if c.CourseName != "" {
		orig.CourseName = c.CourseName
	}
	if c.Description != "" {
		orig.Description = c.Description
	}
	if c.Credits != 0 {
		orig.Credits = c.Credits
	}
	if c.TeacherID != "" {
		orig.TeacherID = c.TeacherID
	}
	if c.ClassLevel != "" {
		orig.ClassLevel = c.ClassLevel
	}
	if c.Semester != "" {
		orig.Semester = c.Semester
	}
	if isActive != nil {
		orig.IsActive = *isActive
	}
	orig.UpdatedAt = c.UpdatedAt
	return *orig, nil
}

func (repo *courseRepository) DeleteCoursesByID(ctx context.Context, ids []string, exec ...core.DBExecutor) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	for _, id := range ids {
		repo.db.deleteCourseLocked(id)
	}
	return nil
}
