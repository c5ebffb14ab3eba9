package sqlxrepos

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/school"
)

const enrollmentColumns = `id, student_id, course_id, marks_obtained, total_marks, grade, is_completed, created_at, updated_at`

type enrollmentRepository struct {
	exec core.DBExecutor
}

var _ school.EnrollmentRepository = (*enrollmentRepository)(nil) // interface compliance check

func NewEnrollmentRepository(exec core.DBExecutor) *enrollmentRepository {
	return &enrollmentRepository{exec: exec}
}

func trapEnrollmentErrs(err error, msg string) error {
	if violatedConstraint(err) == "enrollment_student_course_key" {
		return school.ErrEnrollmentExists
	}
	return errors.Wrap(err, msg)
}

func (repo enrollmentRepository) CheckEnrollmentUniqueness(ctx context.Context, studentID, courseID string, exec ...core.DBExecutor) error {
	q := `SELECT EXISTS (SELECT 1 FROM enrollment WHERE student_id = $1 AND course_id = $2)`
	exists, err := existsCtx(ctx, getExec(repo.exec, exec), q, studentID, courseID)
	if err != nil {
		return errors.Wrap(err, "checking enrollment uniqueness")
	}
	if exists {
		return school.ErrEnrollmentExists
	}
	return nil
}

func (repo enrollmentRepository) CreateEnrollment(ctx context.Context, e school.Enrollment, exec ...core.DBExecutor) (school.Enrollment, error) {
	q := `INSERT INTO enrollment (` + enrollmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := getExec(repo.exec, exec).ExecContext(ctx, q,
		e.ID, e.StudentID, e.CourseID, e.MarksObtained, e.TotalMarks, e.Grade, e.IsCompleted, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		return school.Enrollment{}, trapEnrollmentErrs(err, "inserting enrollment")
	}
	return e, nil
}

func (repo enrollmentRepository) GetEnrollment(ctx context.Context, id string, exec ...core.DBExecutor) (school.Enrollment, error) {
	q := `SELECT ` + enrollmentColumns + ` FROM enrollment WHERE id = $1 LIMIT 1`
	var rows []school.Enrollment
	if err := selectCtx(ctx, getExec(repo.exec, exec), &rows, q, id); err != nil {
		return school.Enrollment{}, errors.Wrap(err, "getting enrollment")
	}
	if len(rows) == 0 {
		return school.Enrollment{}, school.ErrNotFound
	}
	return rows[0], nil
}

func (repo enrollmentRepository) QueryEnrollments(ctx context.Context, filter *school.EnrollmentFilter, ordering []core.DBOrdering, exec ...core.DBExecutor) ([]school.Enrollment, error) {
	q := `SELECT ` + enrollmentColumns + ` FROM enrollment`
	var (
		conds []string
		args  []interface{}
	)
	if filter != nil {
		if filter.StudentID != "" {
			conds = append(conds, `student_id = ?`)
			args = append(args, filter.StudentID)
		}
		if filter.CourseID != "" {
			conds = append(conds, `course_id = ?`)
			args = append(args, filter.CourseID)
		}
		if filter.IsCompleted != nil {
			conds = append(conds, `is_completed = ?`)
			args = append(args, *filter.IsCompleted)
		}
	}
	if len(conds) > 0 {
		q += ` WHERE ` + strings.Join(conds, " AND ")
	}
	q += orderingClause(ordering, "created_at DESC")

	q, qargs, err := rebind(q, args)
	if err != nil {
		return nil, errors.Wrap(err, "building enrollments query")
	}

	var rows []school.Enrollment
	if err := selectCtx(ctx, getExec(repo.exec, exec), &rows, q, qargs...); err != nil {
		return nil, errors.Wrap(err, "querying enrollments")
	}
	return rows, nil
}

func (repo enrollmentRepository) UpdateEnrollment(ctx context.Context, e school.Enrollment, exec ...core.DBExecutor) (school.Enrollment, error) {
	q := `UPDATE enrollment
		SET marks_obtained = $1, total_marks = $2, grade = $3, is_completed = $4, updated_at = $5
		WHERE id = $6`
	res, err := getExec(repo.exec, exec).ExecContext(ctx, q,
		e.MarksObtained, e.TotalMarks, e.Grade, e.IsCompleted, e.UpdatedAt, e.ID,
	)
	if err != nil {
		return school.Enrollment{}, errors.Wrap(err, "updating enrollment")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return school.Enrollment{}, school.ErrNotFound
	}
	return e, nil
}

func (repo enrollmentRepository) DeleteEnrollmentsByID(ctx context.Context, ids []string, exec ...core.DBExecutor) error {
	if len(ids) == 0 {
		return nil
	}
	q, args, err := rebind(`DELETE FROM enrollment WHERE id IN (?)`, []interface{}{ids})
	if err != nil {
		return errors.Wrap(err, "building enrollment delete")
	}
	if _, err := getExec(repo.exec, exec).ExecContext(ctx, q, args...); err != nil {
		return errors.Wrap(err, "deleting enrollments")
	}
	return nil
}
