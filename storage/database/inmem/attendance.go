package inmemdb

import (
	"context"
	"sort"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/school"
)

type attendanceRepository struct {
	db *DB
}

var _ school.AttendanceRepository = (*attendanceRepository)(nil) // interface compliance check

func NewAttendanceRepository(db *DB) *attendanceRepository {
	return &attendanceRepository{db: db}
}

func (repo *attendanceRepository) query() []school.Attendance {
	attendance := make([]school.Attendance, 0, len(repo.db.attendance))
	for _, a := range repo.db.attendance {
		attendance = append(attendance, *a)
	}
	return attendance
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func (repo *attendanceRepository) CheckAttendanceUniqueness(ctx context.Context, studentID, teacherID null.String, date time.Time, excluded []school.Attendance, exec ...core.DBExecutor) error {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	isExcluded := func(a school.Attendance) bool {
		for _, ex := range excluded {
			if ex.ID == a.ID {
				return true
			}
		}
		return false
	}
	for _, a := range repo.query() {
		if isExcluded(a) || !sameDay(a.Date, date) {
			continue
		}
		if studentID.Valid && a.StudentID.String == studentID.String {
			return school.ErrAttendanceExists
		}
		if teacherID.Valid && a.TeacherID.String == teacherID.String {
			return school.ErrAttendanceExists
		}
	}
	return nil
}

func (repo *attendanceRepository) CreateAttendance(ctx context.Context, a school.Attendance, exec ...core.DBExecutor) (school.Attendance, error) {
	if err := repo.CheckAttendanceUniqueness(ctx, a.StudentID, a.TeacherID, a.Date, nil); err != nil {
		return school.Attendance{}, err
	}

	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	repo.db.attendance[a.ID] = &a
	return a, nil
}

func (repo *attendanceRepository) GetAttendance(ctx context.Context, id string, exec ...core.DBExecutor) (school.Attendance, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if a, ok := repo.db.attendance[id]; ok {
		return *a, nil
	}
	return school.Attendance{}, school.ErrNotFound
}

func (repo *attendanceRepository) QueryAttendance(ctx context.Context, filter *school.AttendanceFilter, ordering []core.DBOrdering, exec ...core.DBExecutor) ([]school.Attendance, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	var attendance []school.Attendance
	for _, a := range repo.query() {
		if matchesAttendanceFilter(a, filter) {
			attendance = append(attendance, a)
		}
	}
	sort.Slice(attendance, func(i, j int) bool { return attendance[i].Date.After(attendance[j].Date) })
	return attendance, nil
}

func matchesAttendanceFilter(a school.Attendance, filter *school.AttendanceFilter) bool {
	if filter == nil {
		return true
	}
	if filter.StudentID != "" && a.StudentID.String != filter.StudentID {
		return false
	}
	if filter.TeacherID != "" && a.TeacherID.String != filter.TeacherID {
		return false
	}
	if filter.Status != "" && a.Status != filter.Status {
		return false
	}
	if !filter.DateFrom.IsZero() && a.Date.Before(filter.DateFrom) {
		return false
	}
	if !filter.DateTo.IsZero() && a.Date.After(filter.DateTo) {
		return false
	}
	return true
}

func (repo *attendanceRepository) UpdateAttendance(ctx context.Context, a school.Attendance, exec ...core.DBExecutor) (school.Attendance, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.attendance[a.ID]; !ok {
		return school.Attendance{}, school.ErrNotFound
	}
	repo.db.attendance[a.ID] = &a
	return a, nil
}

func (repo *attendanceRepository) DeleteAttendanceByID(ctx context.Context, ids []string, exec ...core.DBExecutor) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	for _, id := range ids {
		delete(repo.db.attendance, id)
	}
	return nil
}
