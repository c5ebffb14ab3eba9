package sqlxrepos

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/school"
)

const attendanceColumns = `id, date, status, remarks, student_id, teacher_id, time_in, time_out, created_at, updated_at`

type attendanceRepository struct {
	exec core.DBExecutor
}

var _ school.AttendanceRepository = (*attendanceRepository)(nil) // interface compliance check

func NewAttendanceRepository(exec core.DBExecutor) *attendanceRepository {
	return &attendanceRepository{exec: exec}
}

func trapAttendanceErrs(err error, msg string) error {
	switch violatedConstraint(err) {
	case "attendance_student_date_key", "attendance_teacher_date_key":
		return school.ErrAttendanceExists
	default:
		return errors.Wrap(err, msg)
	}
}

func (repo attendanceRepository) CheckAttendanceUniqueness(ctx context.Context, studentID, teacherID null.String, date time.Time, excluded []school.Attendance, exec ...core.DBExecutor) error {
	var (
		cond string
		args []interface{}
	)
	switch {
	case studentID.Valid:
		cond = `student_id = ?`
		args = append(args, studentID)
	case teacherID.Valid:
		cond = `teacher_id = ?`
		args = append(args, teacherID)
	default:
		return nil
	}

	q := `SELECT EXISTS (SELECT 1 FROM attendance WHERE ` + cond + ` AND date = ?`
	args = append(args, date)
	if len(excluded) > 0 {
		ids := make([]string, 0, len(excluded))
		for _, a := range excluded {
			ids = append(ids, a.ID)
		}
		q += ` AND id NOT IN (?)`
		args = append(args, ids)
	}
	q += `)`

	q, qargs, err := rebind(q, args)
	if err != nil {
		return errors.Wrap(err, "building uniqueness query")
	}
	exists, err := existsCtx(ctx, getExec(repo.exec, exec), q, qargs...)
	if err != nil {
		return errors.Wrap(err, "checking attendance uniqueness")
	}
	if exists {
		return school.ErrAttendanceExists
	}
	return nil
}

func (repo attendanceRepository) CreateAttendance(ctx context.Context, a school.Attendance, exec ...core.DBExecutor) (school.Attendance, error) {
	q := `INSERT INTO attendance (` + attendanceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := getExec(repo.exec, exec).ExecContext(ctx, q,
		a.ID, a.Date, a.Status, a.Remarks, a.StudentID, a.TeacherID, a.TimeIn, a.TimeOut, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return school.Attendance{}, trapAttendanceErrs(err, "inserting attendance")
	}
	return a, nil
}

func (repo attendanceRepository) GetAttendance(ctx context.Context, id string, exec ...core.DBExecutor) (school.Attendance, error) {
	q := `SELECT ` + attendanceColumns + ` FROM attendance WHERE id = $1 LIMIT 1`
	var rows []school.Attendance
	if err := selectCtx(ctx, getExec(repo.exec, exec), &rows, q, id); err != nil {
		return school.Attendance{}, errors.Wrap(err, "getting attendance")
	}
	if len(rows) == 0 {
		return school.Attendance{}, school.ErrNotFound
	}
	return rows[0], nil
}

func (repo attendanceRepository) QueryAttendance(ctx context.Context, filter *school.AttendanceFilter, ordering []core.DBOrdering, exec ...core.DBExecutor) ([]school.Attendance, error) {
	q := `SELECT ` + attendanceColumns + ` FROM attendance`
	var (
		conds []string
		args  []interface{}
	)
	if filter != nil {
		if filter.StudentID != "" {
			conds = append(conds, `student_id = ?`)
			args = append(args, filter.StudentID)
		}
		if filter.TeacherID != "" {
			conds = append(conds, `teacher_id = ?`)
			args = append(args, filter.TeacherID)
		}
		if filter.Status != "" {
			conds = append(conds, `status = ?`)
			args = append(args, filter.Status)
		}
		if !filter.DateFrom.IsZero() {
			conds = append(conds, `date >= ?`)
			args = append(args, filter.DateFrom)
		}
		if !filter.DateTo.IsZero() {
			conds = append(conds, `date <= ?`)
			args = append(args, filter.DateTo)
		}
	}
	if len(conds) > 0 {
		q += ` WHERE ` + strings.Join(conds, " AND ")
	}
	q += orderingClause(ordering, "date DESC")

	q, qargs, err := rebind(q, args)
	if err != nil {
		return nil, errors.Wrap(err, "building attendance query")
	}

	var rows []school.Attendance
	if err := selectCtx(ctx, getExec(repo.exec, exec), &rows, q, qargs...); err != nil {
		return nil, errors.Wrap(err, "querying attendance")
	}
	return rows, nil
}

func (repo attendanceRepository) UpdateAttendance(ctx context.Context, a school.Attendance, exec ...core.DBExecutor) (school.Attendance, error) {
	q := `UPDATE attendance
		SET date = $1, status = $2, remarks = $3, time_in = $4, time_out = $5, updated_at = $6
		WHERE id = $7`
	res, err := getExec(repo.exec, exec).ExecContext(ctx, q,
		a.Date, a.Status, a.Remarks, a.TimeIn, a.TimeOut, a.UpdatedAt, a.ID,
	)
	if err != nil {
		return school.Attendance{}, trapAttendanceErrs(err, "updating attendance")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return school.Attendance{}, school.ErrNotFound
	}
	return a, nil
}

func (repo attendanceRepository) DeleteAttendanceByID(ctx context.Context, ids []string, exec ...core.DBExecutor) error {
	if len(ids) == 0 {
		return nil
	}
	q, args, err := rebind(`DELETE FROM attendance WHERE id IN (?)`, []interface{}{ids})
	if err != nil {
		return errors.Wrap(err, "building attendance delete")
	}
	if _, err := getExec(repo.exec, exec).ExecContext(ctx, q, args...); err != nil {
		return errors.Wrap(err, "deleting attendance")
	}
	return nil
}
