package sqlxrepos

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/school"
)

const teacherColumns = `id, user_id, teacher_id, first_name, last_name, date_of_birth, gender, address, email, phone, department, is_active, created_at, updated_at`

type teacherRepository struct {
	exec core.DBExecutor
}

var _ school.TeacherRepository = (*teacherRepository)(nil) // interface compliance check

func NewTeacherRepository(exec core.DBExecutor) *teacherRepository {
	return &teacherRepository{exec: exec}
}

func trapTeacherErrs(err error, msg string) error {
	switch violatedConstraint(err) {
	case "teacher_teacher_id_key":
		return school.ErrTeacherIDExists
	case "teacher_email_key":
		return school.ErrTeacherEmailExists
	default:
		return errors.Wrap(err, msg)
	}
}

func (repo teacherRepository) CheckTeacherUniqueness(ctx context.Context, teacherID, email string, excluded []school.Teacher, exec ...core.DBExecutor) error {
	exclIDs := make([]string, 0, len(excluded))
	for _, t := range excluded {
		exclIDs = append(exclIDs, t.ID)
	}

	check := func(cond string, val interface{}, dupErr error) error {
		q := `SELECT EXISTS (SELECT 1 FROM teacher WHERE ` + cond
		args := []interface{}{val}
		if len(exclIDs) > 0 {
			q += ` AND id NOT IN (?)`
			args = append(args, exclIDs)
		}
		q += `)`

		q, qargs, err := rebind(q, args)
		if err != nil {
			return errors.Wrap(err, "building uniqueness query")
		}
		exists, err := existsCtx(ctx, getExec(repo.exec, exec), q, qargs...)
		if err != nil {
			return errors.Wrap(err, "checking teacher uniqueness")
		}
		if exists {
			return dupErr
		}
		return nil
	}

	if err := check(`teacher_id = ?`, teacherID, school.ErrTeacherIDExists); err != nil {
		return err
	}
	return check(`LOWER(email) = LOWER(?)`, email, school.ErrTeacherEmailExists)
}

func (repo teacherRepository) CreateTeacher(ctx context.Context, t school.Teacher, exec ...core.DBExecutor) (school.Teacher, error) {
	q := `INSERT INTO teacher (` + teacherColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := getExec(repo.exec, exec).ExecContext(ctx, q,
		t.ID, t.UserID, t.TeacherID, t.FirstName, t.LastName, t.DateOfBirth, t.Gender, t.Address, t.Email, t.Phone, t.Department, t.IsActive, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return school.Teacher{}, trapTeacherErrs(err, "inserting teacher")
	}
	return t, nil
}

func (repo teacherRepository) GetTeacher(ctx context.Context, filter school.GetTeacherFilter, exec ...core.DBExecutor) (school.Teacher, error) {
	var (
		conds []string
		args  []interface{}
	)
	if filter.ID != "" {
		conds = append(conds, `id = ?`)
		args = append(args, filter.ID)
	}
	if filter.TeacherID != "" {
		conds = append(conds, `teacher_id = ?`)
		args = append(args, filter.TeacherID)
	}
	if filter.UserID != "" {
		conds = append(conds, `user_id = ?`)
		args = append(args, filter.UserID)
	}
	if len(conds) == 0 {
		return school.Teacher{}, school.ErrNotFound
	}

	q := `SELECT ` + teacherColumns + ` FROM teacher WHERE ` + strings.Join(conds, " AND ") + ` LIMIT 1`
	q, qargs, err := rebind(q, args)
	if err != nil {
		return school.Teacher{}, errors.Wrap(err, "building teacher query")
	}

	var rows []school.Teacher
	if err := selectCtx(ctx, getExec(repo.exec, exec), &rows, q, qargs...); err != nil {
		return school.Teacher{}, errors.Wrap(err, "getting teacher")
	}
	if len(rows) == 0 {
		return school.Teacher{}, school.ErrNotFound
	}
	return rows[0], nil
}

func (repo teacherRepository) QueryTeachers(ctx context.Context, filter *school.TeacherFilter, ordering []core.DBOrdering, exec ...core.DBExecutor) ([]school.Teacher, error) {
	q := `SELECT ` + teacherColumns + ` FROM teacher`
	var (
		conds []string
		args  []interface{}
	)
	if filter != nil {
		if filter.Search != "" {
			conds = append(conds, `(first_name ILIKE ? OR last_name ILIKE ? OR teacher_id ILIKE ? OR email ILIKE ?)`)
			val := "%" + filter.Search + "%"
			args = append(args, val, val, val, val)
		}
		if filter.Department != "" {
			conds = append(conds, `department = ?`)
			args = append(args, filter.Department)
		}
		if filter.IsActive != nil {
			conds = append(conds, `is_active = ?`)
			args = append(args, *filter.IsActive)
		}
	}
	if len(conds) > 0 {
		q += ` WHERE ` + strings.Join(conds, " AND ")
	}
	q += orderingClause(ordering, "teacher_id ASC")

	q, qargs, err := rebind(q, args)
	if err != nil {
		return nil, errors.Wrap(err, "building teachers query")
	}

	var rows []school.Teacher
	if err := selectCtx(ctx, getExec(repo.exec, exec), &rows, q, qargs...); err != nil {
		return nil, errors.Wrap(err, "querying teachers")
	}
	return rows, nil
}

func (repo teacherRepository) UpdateTeacher(ctx context.Context, t school.Teacher, isActive *bool, exec ...core.DBExecutor) (school.Teacher, error) {
	sets := []string{`updated_at = ?`}
	args := []interface{}{t.UpdatedAt}
	if t.FirstName != "" {
		sets = append(sets, `first_name = ?`)
		args = append(args, t.FirstName)
	}
	if t.LastName != "" {
		sets = append(sets, `last_name = ?`)
		args = append(args, t.LastName)
	}
	if !t.DateOfBirth.IsZero() {
		sets = append(sets, `date_of_birth = ?`)
		args = append(args, t.DateOfBirth)
	}
	if t.Gender != "" {
		sets = append(sets, `gender = ?`)
		args = append(args, t.Gender)
	}
	if t.Address != "" {
		sets = append(sets, `address = ?`)
		args = append(args, t.Address)
	}
	if t.Email != "" {
		sets = append(sets, `email = ?`)
		args = append(args, t.Email)
	}
	if t.Phone != "" {
		sets = append(sets, `phone = ?`)
		args = append(args, t.Phone)
	}
	if t.Department != "" {
		sets = append(sets, `department = ?`)
		args = append(args, t.Department)
	}
	if isActive != nil {
		sets = append(sets, `is_active = ?`)
		args = append(args, *isActive)
	}
	args = append(args, t.ID)

	q := `UPDATE teacher SET ` + strings.Join(sets, ", ") + ` WHERE id = ?`
	q, qargs, err := rebind(q, args)
	if err != nil {
		return school.Teacher{}, errors.Wrap(err, "building teacher update")
	}
	res, err := getExec(repo.exec, exec).ExecContext(ctx, q, qargs...)
	if err != nil {
		return school.Teacher{}, trapTeacherErrs(err, "updating teacher")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return school.Teacher{}, school.ErrNotFound
	}
	return repo.GetTeacher(ctx, school.GetTeacherFilter{ID: t.ID}, exec...)
}

func (repo teacherRepository) DeleteTeachersByID(ctx context.Context, ids []string, exec ...core.DBExecutor) error {
	if len(ids) == 0 {
		return nil
	}
	q, args, err := rebind(`DELETE FROM teacher WHERE id IN (?)`, []interface{}{ids})
	if err != nil {
		return errors.Wrap(err, "building teacher delete")
	}
	if _, err := getExec(repo.exec, exec).ExecContext(ctx, q, args...); err != nil {
		return errors.Wrap(err, "deleting teachers")
	}
	return nil
}
