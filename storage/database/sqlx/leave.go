package sqlxrepos

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/school"
)

const leaveColumns = `id, student_id, teacher_id, leave_type, start_date, end_date, reason, status, approved_by, approval_date, approval_remarks, created_at, updated_at`

type leaveRepository struct {
	exec core.DBExecutor
}

var _ school.LeaveRepository = (*leaveRepository)(nil) // interface compliance check

func NewLeaveRepository(exec core.DBExecutor) *leaveRepository {
	return &leaveRepository{exec: exec}
}

func (repo leaveRepository) CreateLeave(ctx context.Context, l school.Leave, exec ...core.DBExecutor) (school.Leave, error) {
	q := `INSERT INTO leave (` + leaveColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := getExec(repo.exec, exec).ExecContext(ctx, q,
		l.ID, l.StudentID, l.TeacherID, l.LeaveType, l.StartDate, l.EndDate, l.Reason, l.Status, l.ApprovedBy, l.ApprovalDate, l.ApprovalRemarks, l.CreatedAt, l.UpdatedAt,
	)
	if err != nil {
		return school.Leave{}, errors.Wrap(err, "inserting leave")
	}
	return l, nil
}

func (repo leaveRepository) GetLeave(ctx context.Context, id string, exec ...core.DBExecutor) (school.Leave, error) {
	q := `SELECT ` + leaveColumns + ` FROM leave WHERE id = $1 LIMIT 1`
	var rows []school.Leave
	if err := selectCtx(ctx, getExec(repo.exec, exec), &rows, q, id); err != nil {
		return school.Leave{}, errors.Wrap(err, "getting leave")
	}
	if len(rows) == 0 {
		return school.Leave{}, school.ErrNotFound
	}
	return rows[0], nil
}

func (repo leaveRepository) QueryLeaves(ctx context.Context, filter *school.LeaveFilter, ordering []core.DBOrdering, exec ...core.DBExecutor) ([]school.Leave, error) {
	q := `SELECT ` + leaveColumns + ` FROM leave`
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
	}
	if len(conds) > 0 {
		q += ` WHERE ` + strings.Join(conds, " AND ")
	}
	q += orderingClause(ordering, "created_at DESC")

	q, qargs, err := rebind(q, args)
	if err != nil {
		return nil, errors.Wrap(err, "building leaves query")
	}

	var rows []school.Leave
	if err := selectCtx(ctx, getExec(repo.exec, exec), &rows, q, qargs...); err != nil {
		return nil, errors.Wrap(err, "querying leaves")
	}
	return rows, nil
}

func (repo leaveRepository) UpdateLeave(ctx context.Context, l school.Leave, exec ...core.DBExecutor) (school.Leave, error) {
	q := `UPDATE leave
		SET leave_type = $1, start_date = $2, end_date = $3, reason = $4, status = $5,
			approved_by = $6, approval_date = $7, approval_remarks = $8, updated_at = $9
		WHERE id = $10`
	res, err := getExec(repo.exec, exec).ExecContext(ctx, q,
		l.LeaveType, l.StartDate, l.EndDate, l.Reason, l.Status, l.ApprovedBy, l.ApprovalDate, l.ApprovalRemarks, l.UpdatedAt, l.ID,
	)
	if err != nil {
		return school.Leave{}, errors.Wrap(err, "updating leave")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return school.Leave{}, school.ErrNotFound
	}
	return l, nil
}

func (repo leaveRepository) DeleteLeavesByID(ctx context.Context, ids []string, exec ...core.DBExecutor) error {
	if len(ids) == 0 {
		return nil
	}
	q, args, err := rebind(`DELETE FROM leave WHERE id IN (?)`, []interface{}{ids})
	if err != nil {
		return errors.Wrap(err, "building leave delete")
	}
	if _, err := getExec(repo.exec, exec).ExecContext(ctx, q, args...); err != nil {
		return errors.Wrap(err, "deleting leaves")
	}
	return nil
}
