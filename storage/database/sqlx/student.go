package sqlxrepos

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/school"
)

const studentColumns = `id, user_id, student_id, first_name, last_name, date_of_birth, gender, address, email, phone, current_class, is_active, created_at, updated_at`

type studentRepository struct {
	exec core.DBExecutor
}

var _ school.StudentRepository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(exec core.DBExecutor) *studentRepository {
	return &studentRepository{exec: exec}
}

func trapStudentErrs(err error, msg string) error {
	switch violatedConstraint(err) {
	case "student_student_id_key":
		return school.ErrStudentIDExists
	case "student_email_key":
		return school.ErrStudentEmailExists
	default:
		return errors.Wrap(err, msg)
	}
}

func (repo studentRepository) CheckStudentUniqueness(ctx context.Context, studentID, email string, excluded []school.Student, exec ...core.DBExecutor) error {
	exclIDs := make([]string, 0, len(excluded))
	for _, s := range excluded {
		exclIDs = append(exclIDs, s.ID)
	}

	check := func(cond string, val interface{}, dupErr error) error {
		q := `SELECT EXISTS (SELECT 1 FROM student WHERE ` + cond
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
			return errors.Wrap(err, "checking student uniqueness")
		}
		if exists {
			return dupErr
		}
		return nil
	}

	if err := check(`student_id = ?`, studentID, school.ErrStudentIDExists); err != nil {
		return err
	}
	if email == "" { // email is optional for students
		return nil
	}
	return check(`LOWER(email) = LOWER(?)`, email, school.ErrStudentEmailExists)
}

func (repo studentRepository) CreateStudent(ctx context.Context, s school.Student, exec ...core.DBExecutor) (school.Student, error) {
	q := `INSERT INTO student (` + studentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := getExec(repo.exec, exec).ExecContext(ctx, q,
		s.ID, s.UserID, s.StudentID, s.FirstName, s.LastName, s.DateOfBirth, s.Gender, s.Address, s.Email, s.Phone, s.CurrentClass, s.IsActive, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return school.Student{}, trapStudentErrs(err, "inserting student")
	}
	return s, nil
}

func (repo studentRepository) GetStudent(ctx context.Context, filter school.GetStudentFilter, exec ...core.DBExecutor) (school.Student, error) {
	var (
		conds []string
		args  []interface{}
	)
	if filter.ID != "" {
		conds = append(conds, `id = ?`)
		args = append(args, filter.ID)
	}
	if filter.StudentID != "" {
		conds = append(conds, `student_id = ?`)
		args = append(args, filter.StudentID)
	}
	if filter.UserID != "" {
		conds = append(conds, `user_id = ?`)
		args = append(args, filter.UserID)
	}
	if len(conds) == 0 {
		return school.Student{}, school.ErrNotFound
	}

	q := `SELECT ` + studentColumns + ` FROM student WHERE ` + strings.Join(conds, " AND ") + ` LIMIT 1`
	q, qargs, err := rebind(q, args)
	if err != nil {
		return school.Student{}, errors.Wrap(err, "building student query")
	}

	var rows []school.Student
	if err := selectCtx(ctx, getExec(repo.exec, exec), &rows, q, qargs...); err != nil {
		return school.Student{}, errors.Wrap(err, "getting student")
	}
	if len(rows) == 0 {
		return school.Student{}, school.ErrNotFound
	}
	return rows[0], nil
}

func (repo studentRepository) QueryStudents(ctx context.Context, filter *school.StudentFilter, ordering []core.DBOrdering, exec ...core.DBExecutor) ([]school.Student, error) {
	q := `SELECT ` + studentColumns + ` FROM student`
	var (
		conds []string
		args  []interface{}
	)
	if filter != nil {
		if filter.Search != "" {
			conds = append(conds, `(first_name ILIKE ? OR last_name ILIKE ? OR student_id ILIKE ? OR email ILIKE ?)`)
			val := "%" + filter.Search + "%"
			args = append(args, val, val, val, val)
		}
		if filter.CurrentClass != "" {
			conds = append(conds, `current_class = ?`)
			args = append(args, filter.CurrentClass)
		}
		if filter.IsActive != nil {
			conds = append(conds, `is_active = ?`)
			args = append(args, *filter.IsActive)
		}
	}
	if len(conds) > 0 {
		q += ` WHERE ` + strings.Join(conds, " AND ")
	}
	q += orderingClause(ordering, "student_id ASC")

	q, qargs, err := rebind(q, args)
	if err != nil {
		return nil, errors.Wrap(err, "building students query")
	}

	var rows []school.Student
	if err := selectCtx(ctx, getExec(repo.exec, exec), &rows, q, qargs...); err != nil {
		return nil, errors.Wrap(err, "querying students")
	}
	return rows, nil
}

func (repo studentRepository) UpdateStudent(ctx context.Context, s school.Student, isActive *bool, exec ...core.DBExecutor) (school.Student, error) {
	sets := []string{`updated_at = ?`}
	args := []interface{}{s.UpdatedAt}
	if s.FirstName != "" {
		sets = append(sets, `first_name = ?`)
		args = append(args, s.FirstName)
	}
	if s.LastName != "" {
		sets = append(sets, `last_name = ?`)
		args = append(args, s.LastName)
	}
	if !s.DateOfBirth.IsZero() {
		sets = append(sets, `date_of_birth = ?`)
		args = append(args, s.DateOfBirth)
	}
	if s.Gender != "" {
		sets = append(sets, `gender = ?`)
		args = append(args, s.Gender)
	}
	if s.Address != "" {
		sets = append(sets, `address = ?`)
		args = append(args, s.Address)
	}
	if s.Email.Valid {
		sets = append(sets, `email = ?`)
		args = append(args, s.Email)
	}
	if s.Phone.Valid {
		sets = append(sets, `phone = ?`)
		args = append(args, s.Phone)
	}
	if s.CurrentClass != "" {
		sets = append(sets, `current_class = ?`)
		args = append(args, s.CurrentClass)
	}
	if isActive != nil {
		sets = append(sets, `is_active = ?`)
		args = append(args, *isActive)
	}
	args = append(args, s.ID)

	q := `UPDATE student SET ` + strings.Join(sets, ", ") + ` WHERE id = ?`
	q, qargs, err := rebind(q, args)
	if err != nil {
		return school.Student{}, errors.Wrap(err, "building student update")
	}
	res, err := getExec(repo.exec, exec).ExecContext(ctx, q, qargs...)
	if err != nil {
		return school.Student{}, trapStudentErrs(err, "updating student")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return school.Student{}, school.ErrNotFound
	}
	return repo.GetStudent(ctx, school.GetStudentFilter{ID: s.ID}, exec...)
}

func (repo studentRepository) DeleteStudentsByID(ctx context.Context, ids []string, exec ...core.DBExecutor) error {
	if len(ids) == 0 {
		return nil
	}
	q, args, err := rebind(`DELETE FROM student WHERE id IN (?)`, []interface{}{ids})
	if err != nil {
		return errors.Wrap(err, "building student delete")
	}
	if _, err := getExec(repo.exec, exec).ExecContext(ctx, q, args...); err != nil {
		return errors.Wrap(err, "deleting students")
	}
	return nil
}
