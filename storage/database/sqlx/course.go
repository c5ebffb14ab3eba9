package sqlxrepos

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/school"
)

const courseColumns = `id, course_code, course_name, description, credits, teacher_id, class_level, academic_year, semester, is_active, created_at, updated_at`

type courseRepository struct {
	exec core.DBExecutor
}

var _ school.CourseRepository = (*courseRepository)(nil) // interface compliance check

func NewCourseRepository(exec core.DBExecutor) *courseRepository {
	return &courseRepository{exec: exec}
}

func trapCourseErrs(err error, msg string) error {
	if violatedConstraint(err) == "course_code_academic_year_key" {
		return school.ErrCourseExists
	}
	return errors.Wrap(err, msg)
}

func (repo courseRepository) CheckCourseUniqueness(ctx context.Context, courseCode, academicYear string, excluded []school.Course, exec ...core.DBExecutor) error {
	q := `SELECT EXISTS (SELECT 1 FROM course WHERE course_code = ? AND academic_year = ?`
	args := []interface{}{courseCode, academicYear}
	if len(excluded) > 0 {
		ids := make([]string, 0, len(excluded))
		for _, c := range excluded {
			ids = append(ids, c.ID)
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
		return errors.Wrap(err, "checking course uniqueness")
	}
	if exists {
		return school.ErrCourseExists
	}
	return nil
}

func (repo courseRepository) CreateCourse(ctx context.Context, c school.Course, exec ...core.DBExecutor) (school.Course, error) {
	q := `INSERT INTO course (` + courseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := getExec(repo.exec, exec).ExecContext(ctx, q,
		c.ID, c.CourseCode, c.CourseName, c.Description, c.Credits, c.TeacherID, c.ClassLevel, c.AcademicYear, c.Semester, c.IsActive, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return school.Course{}, trapCourseErrs(err, "inserting course")
	}
	return c, nil
}

func (repo courseRepository) GetCourse(ctx context.Context, id string, exec ...core.DBExecutor) (school.Course, error) {
	q := `SELECT ` + courseColumns + ` FROM course WHERE id = $1 LIMIT 1`
	var rows []school.Course
	if err := selectCtx(ctx, getExec(repo.exec, exec), &rows, q, id); err != nil {
		return school.Course{}, errors.Wrap(err, "getting course")
	}
	if len(rows) == 0 {
		return school.Course{}, school.ErrNotFound
	}
	return rows[0], nil
}

func (repo courseRepository) QueryCourses(ctx context.Context, filter *school.CourseFilter, ordering []core.DBOrdering, exec ...core.DBExecutor) ([]school.Course, error) {
	q := `SELECT ` + courseColumns + ` FROM course`
	var (
		conds []string
		args  []interface{}
	)
	if filter != nil {
		if filter.TeacherID != "" {
			conds = append(conds, `teacher_id = ?`)
			args = append(args, filter.TeacherID)
		}
		if filter.ClassLevel != "" {
			conds = append(conds, `class_level = ?`)
			args = append(args, filter.ClassLevel)
		}
		if filter.AcademicYear != "" {
			conds = append(conds, `academic_year = ?`)
			args = append(args, filter.AcademicYear)
		}
		if filter.IsActive != nil {
			conds = append(conds, `is_active = ?`)
			args = append(args, *filter.IsActive)
		}
	}
	if len(conds) > 0 {
		q += ` WHERE ` + strings.Join(conds, " AND ")
	}
	q += orderingClause(ordering, "course_code ASC")

	q, qargs, err := rebind(q, args)
	if err != nil {
		return nil, errors.Wrap(err, "building courses query")
	}

	var rows []school.Course
	if err := selectCtx(ctx, getExec(repo.exec, exec), &rows, q, qargs...); err != nil {
		return nil, errors.Wrap(err, "querying courses")
	}
	return rows, nil
}

func (repo courseRepository) UpdateCourse(ctx context.Context, c school.Course, isActive *bool, exec ...core.DBExecutor) (school.Course, error) {
	sets := []string{`updated_at = ?`}
	args := []interface{}{c.UpdatedAt}
	if c.CourseName != "" {
		sets = append(sets, `course_name = ?`)
		args = append(args, c.CourseName)
	}
	if c.Description != "" {
		sets = append(sets, `description = ?`)
		args = append(args, c.Description)
	}
	if c.Credits != 0 {
		sets = append(sets, `credits = ?`)
		args = append(args, c.Credits)
	}
	if c.TeacherID != "" {
		sets = append(sets, `teacher_id = ?`)
		args = append(args, c.TeacherID)
	}
	if c.ClassLevel != "" {
		sets = append(sets, `class_level = ?`)
		args = append(args, c.ClassLevel)
	}
	if c.Semester != "" {
		sets = append(sets, `semester = ?`)
		args = append(args, c.Semester)
	}
	if isActive != nil {
		sets = append(sets, `is_active = ?`)
		args = append(args, *isActive)
	}
	args = append(args, c.ID)

	q := `UPDATE course SET ` + strings.Join(sets, ", ") + ` WHERE id = ?`
	q, qargs, err := rebind(q, args)
	if err != nil {
		return school.Course{}, errors.Wrap(err, "building course update")
	}
	res, err := getExec(repo.exec, exec).ExecContext(ctx, q, qargs...)
	if err != nil {
		return school.Course{}, trapCourseErrs(err, "updating course")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return school.Course{}, school.ErrNotFound
	}
	return repo.GetCourse(ctx, c.ID, exec...)
}

func (repo courseRepository) DeleteCoursesByID(ctx context.Context, ids []string, exec ...core.DBExecutor) error {
	if len(ids) == 0 {
		return nil
	}
	q, args, err := rebind(`DELETE FROM course WHERE id IN (?)`, []interface{}{ids})
	if err != nil {
		return errors.Wrap(err, "building course delete")
	}
	if _, err := getExec(repo.exec, exec).ExecContext(ctx, q, args...); err != nil {
		return errors.Wrap(err, "deleting courses")
	}
	return nil
}
