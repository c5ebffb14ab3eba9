package school

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/shule/core"
)

var (
	// errors
	ErrNotFound           = errors.New("record not found")
	ErrTeacherIDExists    = errors.New("a teacher with this teacher ID already exists")
	ErrTeacherEmailExists = errors.New("a teacher with this email already exists")
	ErrStudentIDExists    = errors.New("a student with this student ID already exists")
	ErrStudentEmailExists = errors.New("a student with this email already exists")
	ErrCourseExists       = errors.New("a course with this course code already exists for this academic year")
	ErrEnrollmentExists   = errors.New("this student is already enrolled in this course")
	ErrAttendanceExists   = errors.New("an attendance record already exists for this person on this date")

	errTeacherNotFound = errors.New("teacher not found")
	errStudentNotFound = errors.New("student not found")
	errCourseNotFound  = errors.New("course not found")
)

// defaults applied on creation when the submission omits them.
const (
	DefaultCredits    = 1
	DefaultTotalMarks = 100
	DefaultSemester   = "First Semester"
)

type (
	GetTeacherFilter struct {
		ID        string
		TeacherID string
		UserID    string
	}

	GetStudentFilter struct {
		ID        string
		StudentID string
		UserID    string
	}

	TeacherFilter struct {
		Search     string `query:"search"`
		Department string `query:"department"`
		IsActive   *bool  `query:"is_active"`
	}

	StudentFilter struct {
		Search       string     `query:"search"`
		CurrentClass ClassLevel `query:"current_class"`
		IsActive     *bool      `query:"is_active"`
	}

	CourseFilter struct {
		TeacherID    string     `query:"teacher_id"`
		ClassLevel   ClassLevel `query:"class_level"`
		AcademicYear string     `query:"academic_year"`
		IsActive     *bool      `query:"is_active"`
	}

	EnrollmentFilter struct {
		StudentID   string `query:"student_id"`
		CourseID    string `query:"course_id"`
		IsCompleted *bool  `query:"is_completed"`
	}

	AttendanceFilter struct {
		StudentID string           `query:"student_id"`
		TeacherID string           `query:"teacher_id"`
		Status    AttendanceStatus `query:"status"`
		DateFrom  time.Time        `query:"date_from"`
		DateTo    time.Time        `query:"date_to"`
	}

	LeaveFilter struct {
		StudentID string      `query:"student_id"`
		TeacherID string      `query:"teacher_id"`
		Status    LeaveStatus `query:"status"`
	}

	TeacherRepository interface {
		CheckTeacherUniqueness(ctx context.Context, teacherID, email string, excluded []Teacher, exec ...core.DBExecutor) error
		CreateTeacher(ctx context.Context, t Teacher, exec ...core.DBExecutor) (Teacher, error)
		GetTeacher(ctx context.Context, filter GetTeacherFilter, exec ...core.DBExecutor) (Teacher, error)
		QueryTeachers(ctx context.Context, filter *TeacherFilter, ordering []core.DBOrdering, exec ...core.DBExecutor) ([]Teacher, error)
		UpdateTeacher(ctx context.Context, t Teacher, isActive *bool, exec ...core.DBExecutor) (Teacher, error)
		DeleteTeachersByID(ctx context.Context, ids []string, exec ...core.DBExecutor) error
	}

	StudentRepository interface {
		CheckStudentUniqueness(ctx context.Context, studentID, email string, excluded []Student, exec ...core.DBExecutor) error
		CreateStudent(ctx context.Context, s Student, exec ...core.DBExecutor) (Student, error)
		GetStudent(ctx context.Context, filter GetStudentFilter, exec ...core.DBExecutor) (Student, error)
		QueryStudents(ctx context.Context, filter *StudentFilter, ordering []core.DBOrdering, exec ...core.DBExecutor) ([]Student, error)
		UpdateStudent(ctx context.Context, s Student, isActive *bool, exec ...core.DBExecutor) (Student, error)
		DeleteStudentsByID(ctx context.Context, ids []string, exec ...core.DBExecutor) error
	}

	CourseRepository interface {
		CheckCourseUniqueness(ctx context.Context, courseCode, academicYear string, excluded []Course, exec ...core.DBExecutor) error
		CreateCourse(ctx context.Context, c Course, exec ...core.DBExecutor) (Course, error)
		GetCourse(ctx context.Context, id string, exec ...core.DBExecutor) (Course, error)
		QueryCourses(ctx context.Context, filter *CourseFilter, ordering []core.DBOrdering, exec ...core.DBExecutor) ([]Course, error)
		UpdateCourse(ctx context.Context, c Course, isActive *bool, exec ...core.DBExecutor) (Course, error)
		DeleteCoursesByID(ctx context.Context, ids []string, exec ...core.DBExecutor) error
	}

	EnrollmentRepository interface {
		CheckEnrollmentUniqueness(ctx context.Context, studentID, courseID string, exec ...core.DBExecutor) error
		CreateEnrollment(ctx context.Context, e Enrollment, exec ...core.DBExecutor) (Enrollment, error)
		GetEnrollment(ctx context.Context, id string, exec ...core.DBExecutor) (Enrollment, error)
		QueryEnrollments(ctx context.Context, filter *EnrollmentFilter, ordering []core.DBOrdering, exec ...core.DBExecutor) ([]Enrollment, error)
		UpdateEnrollment(ctx context.Context, e Enrollment, exec ...core.DBExecutor) (Enrollment, error)
		DeleteEnrollmentsByID(ctx context.Context, ids []string, exec ...core.DBExecutor) error
	}

	AttendanceRepository interface {
		// CheckAttendanceUniqueness enforces one record per person per day.
		CheckAttendanceUniqueness(ctx context.Context, studentID, teacherID null.String, date time.Time, excluded []Attendance, exec ...core.DBExecutor) error
		CreateAttendance(ctx context.Context, a Attendance, exec ...core.DBExecutor) (Attendance, error)
		GetAttendance(ctx context.Context, id string, exec ...core.DBExecutor) (Attendance, error)
		QueryAttendance(ctx context.Context, filter *AttendanceFilter, ordering []core.DBOrdering, exec ...core.DBExecutor) ([]Attendance, error)
		UpdateAttendance(ctx context.Context, a Attendance, exec ...core.DBExecutor) (Attendance, error)
		DeleteAttendanceByID(ctx context.Context, ids []string, exec ...core.DBExecutor) error
	}

	LeaveRepository interface {
		CreateLeave(ctx context.Context, l Leave, exec ...core.DBExecutor) (Leave, error)
		GetLeave(ctx context.Context, id string, exec ...core.DBExecutor) (Leave, error)
		QueryLeaves(ctx context.Context, filter *LeaveFilter, ordering []core.DBOrdering, exec ...core.DBExecutor) ([]Leave, error)
		UpdateLeave(ctx context.Context, l Leave, exec ...core.DBExecutor) (Leave, error)
		DeleteLeavesByID(ctx context.Context, ids []string, exec ...core.DBExecutor) error
	}

	// Repositories bundles the per-entity repositories the Service needs.
	Repositories struct {
		Teacher    TeacherRepository
		Student    StudentRepository
		Course     CourseRepository
		Enrollment EnrollmentRepository
		Attendance AttendanceRepository
		Leave      LeaveRepository
	}

	Service struct {
		db    core.DB
		repos Repositories
	}
)

func NewService(db core.DB, repos Repositories) *Service {
	return &Service{db: db, repos: repos}
}

// Teachers

func (svc *Service) CheckTeacherUniqueness(teacherID, email string, excl ...Teacher) error {
	if err := svc.repos.Teacher.CheckTeacherUniqueness(context.Background(), teacherID, email, excl); err != nil {
		var field string
		switch err {
		case ErrTeacherIDExists:
			field = "teacher_id"
		case ErrTeacherEmailExists:
			field = "email"
		default:
			return err
		}
		return core.NewValidationError(err, core.FieldError{Field: field, Error: err.Error()})
	}
	return nil
}

func (svc *Service) CreateTeacher(ctx context.Context, nt NewTeacher) (Teacher, error) {
	now := time.Now().UTC()
	t := Teacher{
		ID:          uuid.New().String(),
		UserID:      null.NewString(nt.UserID, nt.UserID != ""),
		TeacherID:   nt.TeacherID,
		FirstName:   nt.FirstName,
		LastName:    nt.LastName,
		DateOfBirth: parseDate(nt.DateOfBirth),
		Gender:      nt.Gender,
		Address:     nt.Address,
		Email:       nt.Email,
		Phone:       nt.Phone,
		Department:  nt.Department,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return svc.repos.Teacher.CreateTeacher(ctx, t)
}

func (svc *Service) GetTeacher(ctx context.Context, id string) (Teacher, error) {
	return svc.repos.Teacher.GetTeacher(ctx, GetTeacherFilter{ID: id})
}

func (svc *Service) GetTeacherByTeacherID(ctx context.Context, teacherID string) (Teacher, error) {
	return svc.repos.Teacher.GetTeacher(ctx, GetTeacherFilter{TeacherID: teacherID})
}

func (svc *Service) QueryTeachers(ctx context.Context, filter *TeacherFilter, ordering []core.DBOrdering) ([]Teacher, error) {
	return svc.repos.Teacher.QueryTeachers(ctx, filter, ordering)
}

func (svc *Service) UpdateTeacher(ctx context.Context, id string, ut UpdateTeacher) (Teacher, error) {
	t := Teacher{
		ID:         id,
		FirstName:  ut.FirstName,
		LastName:   ut.LastName,
		Gender:     ut.Gender,
		Address:    ut.Address,
		Email:      ut.Email,
		Phone:      ut.Phone,
		Department: ut.Department,
		UpdatedAt:  time.Now().UTC(),
	}
	if ut.DateOfBirth != "" {
		t.DateOfBirth = parseDate(ut.DateOfBirth)
	}
	return svc.repos.Teacher.UpdateTeacher(ctx, t, ut.IsActive)
}

func (svc *Service) DeleteTeachers(ctx context.Context, ids ...string) error {
	return svc.repos.Teacher.DeleteTeachersByID(ctx, ids)
}

// Students

func (svc *Service) CheckStudentUniqueness(studentID, email string, excl ...Student) error {
	if err := svc.repos.Student.CheckStudentUniqueness(context.Background(), studentID, email, excl); err != nil {
		var field string
		switch err {
		case ErrStudentIDExists:
			field = "student_id"
		case ErrStudentEmailExists:
			field = "email"
		default:
			return err
		}
		return core.NewValidationError(err, core.FieldError{Field: field, Error: err.Error()})
	}
	return nil
}

func (svc *Service) CreateStudent(ctx context.Context, ns NewStudent) (Student, error) {
	now := time.Now().UTC()
	s := Student{
		ID:           uuid.New().String(),
		UserID:       null.NewString(ns.UserID, ns.UserID != ""),
		StudentID:    ns.StudentID,
		FirstName:    ns.FirstName,
		LastName:     ns.LastName,
		DateOfBirth:  parseDate(ns.DateOfBirth),
		Gender:       ns.Gender,
		Address:      ns.Address,
		Email:        null.NewString(ns.Email, ns.Email != ""),
		Phone:        null.NewString(ns.Phone, ns.Phone != ""),
		CurrentClass: ns.CurrentClass,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	return svc.repos.Student.CreateStudent(ctx, s)
}

func (svc *Service) GetStudent(ctx context.Context, id string) (Student, error) {
	return svc.repos.Student.GetStudent(ctx, GetStudentFilter{ID: id})
}

func (svc *Service) GetStudentByStudentID(ctx context.Context, studentID string) (Student, error) {
	return svc.repos.Student.GetStudent(ctx, GetStudentFilter{StudentID: studentID})
}

func (svc *Service) QueryStudents(ctx context.Context, filter *StudentFilter, ordering []core.DBOrdering) ([]Student, error) {
	return svc.repos.Student.QueryStudents(ctx, filter, ordering)
}

func (svc *Service) UpdateStudent(ctx context.Context, id string, us UpdateStudent) (Student, error) {
	s := Student{
		ID:           id,
		FirstName:    us.FirstName,
		LastName:     us.LastName,
		Gender:       us.Gender,
		Address:      us.Address,
		Email:        null.NewString(us.Email, us.Email != ""),
		Phone:        null.NewString(us.Phone, us.Phone != ""),
		CurrentClass: us.CurrentClass,
		UpdatedAt:    time.Now().UTC(),
	}
	if us.DateOfBirth != "" {
		s.DateOfBirth = parseDate(us.DateOfBirth)
	}
	return svc.repos.Student.UpdateStudent(ctx, s, us.IsActive)
}

func (svc *Service) DeleteStudents(ctx context.Context, ids ...string) error {
	return svc.repos.Student.DeleteStudentsByID(ctx, ids)
}

// Courses

func (svc *Service) CheckCourseUniqueness(courseCode, academicYear string, excl ...Course) error {
	if err := svc.repos.Course.CheckCourseUniqueness(context.Background(), courseCode, academicYear, excl); err != nil {
		if err == ErrCourseExists {
			return core.NewValidationError(err, core.FieldError{Field: "course_code", Error: err.Error()})
		}
		return err
	}
	return nil
}

func (svc *Service) CreateCourse(ctx context.Context, nc NewCourse) (Course, error) {
	// owning teacher must exist
	if _, err := svc.repos.Teacher.GetTeacher(ctx, GetTeacherFilter{ID: nc.TeacherID}); err != nil {
		if pkgerrors.Cause(err) == ErrNotFound {
			return Course{}, core.NewValidationError(errTeacherNotFound, core.FieldError{Field: "teacher_id", Error: errTeacherNotFound.Error()})
		}
		return Course{}, pkgerrors.Wrap(err, "finding teacher")
	}

	now := time.Now().UTC()
	c := Course{
		ID:           uuid.New().String(),
		CourseCode:   nc.CourseCode,
		CourseName:   nc.CourseName,
		Description:  nc.Description,
		Credits:      nc.Credits,
		TeacherID:    nc.TeacherID,
		ClassLevel:   nc.ClassLevel,
		AcademicYear: nc.AcademicYear,
		Semester:     nc.Semester,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if c.Credits == 0 {
		c.Credits = DefaultCredits
	}
	if c.Semester == "" {
		c.Semester = DefaultSemester
	}
	return svc.repos.Course.CreateCourse(ctx, c)
}

func (svc *Service) GetCourse(ctx context.Context, id string) (Course, error) {
	return svc.repos.Course.GetCourse(ctx, id)
}

func (svc *Service) QueryCourses(ctx context.Context, filter *CourseFilter, ordering []core.DBOrdering) ([]Course, error) {
	return svc.repos.Course.QueryCourses(ctx, filter, ordering)
}

func (svc *Service) UpdateCourse(ctx context.Context, id string, uc UpdateCourse) (Course, error) {
	if uc.TeacherID != "" {
		if _, err := svc.repos.Teacher.GetTeacher(ctx, GetTeacherFilter{ID: uc.TeacherID}); err != nil {
			if pkgerrors.Cause(err) == ErrNotFound {
				return Course{}, core.NewValidationError(errTeacherNotFound, core.FieldError{Field: "teacher_id", Error: errTeacherNotFound.Error()})
			}
			return Course{}, pkgerrors.Wrap(err, "finding teacher")
		}
	}
	c := Course{
		ID:          id,
		CourseName:  uc.CourseName,
		Description: uc.Description,
		Credits:     uc.Credits,
		TeacherID:   uc.TeacherID,
		ClassLevel:  uc.ClassLevel,
		Semester:    uc.Semester,
		UpdatedAt:   time.Now().UTC(),
	}
	return svc.repos.Course.UpdateCourse(ctx, c, uc.IsActive)
}

func (svc *Service) DeleteCourses(ctx context.Context, ids ...string) error {
	return svc.repos.Course.DeleteCoursesByID(ctx, ids)
}

// Enrollments

func (svc *Service) CheckEnrollmentUniqueness(studentID, courseID string) error {
	if err := svc.repos.Enrollment.CheckEnrollmentUniqueness(context.Background(), studentID, courseID); err != nil {
		if err == ErrEnrollmentExists {
			return core.NewValidationError(err, core.FieldError{Field: "student_id", Error: err.Error()})
		}
		return err
	}
	return nil
}

func (svc *Service) Enroll(ctx context.Context, ne NewEnrollment) (Enrollment, error) {
	if _, err := svc.repos.Student.GetStudent(ctx, GetStudentFilter{ID: ne.StudentID}); err != nil {
		if pkgerrors.Cause(err) == ErrNotFound {
			return Enrollment{}, core.NewValidationError(errStudentNotFound, core.FieldError{Field: "student_id", Error: errStudentNotFound.Error()})
		}
		return Enrollment{}, pkgerrors.Wrap(err, "finding student")
	}
	if _, err := svc.repos.Course.GetCourse(ctx, ne.CourseID); err != nil {
		if pkgerrors.Cause(err) == ErrNotFound {
			return Enrollment{}, core.NewValidationError(errCourseNotFound, core.FieldError{Field: "course_id", Error: errCourseNotFound.Error()})
		}
		return Enrollment{}, pkgerrors.Wrap(err, "finding course")
	}

	now := time.Now().UTC()
	e := Enrollment{
		ID:         uuid.New().String(),
		StudentID:  ne.StudentID,
		CourseID:   ne.CourseID,
		TotalMarks: DefaultTotalMarks,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if ne.TotalMarks != nil {
		e.TotalMarks = *ne.TotalMarks
	}
	return svc.repos.Enrollment.CreateEnrollment(ctx, e)
}

func (svc *Service) GetEnrollment(ctx context.Context, id string) (Enrollment, error) {
	return svc.repos.Enrollment.GetEnrollment(ctx, id)
}

func (svc *Service) QueryEnrollments(ctx context.Context, filter *EnrollmentFilter, ordering []core.DBOrdering) ([]Enrollment, error) {
	return svc.repos.Enrollment.QueryEnrollments(ctx, filter, ordering)
}

// UpdateMarks persists new marks without touching the stored grade; the
// grade goes stale until ComputeGrade is called.
func (svc *Service) UpdateMarks(ctx context.Context, id string, um UpdateMarks) (Enrollment, error) {
	e, err := svc.repos.Enrollment.GetEnrollment(ctx, id)
	if err != nil {
		return Enrollment{}, err
	}
	if um.MarksObtained != nil {
		e.MarksObtained = null.Float64From(*um.MarksObtained)
	}
	if um.TotalMarks != nil {
		e.TotalMarks = *um.TotalMarks
	}
	if um.IsCompleted != nil {
		e.IsCompleted = *um.IsCompleted
	}
	e.UpdatedAt = time.Now().UTC()
	return svc.repos.Enrollment.UpdateEnrollment(ctx, e)
}

// ComputeGrade recomputes and persists the letter grade from the current marks.
func (svc *Service) ComputeGrade(ctx context.Context, id string) (Enrollment, error) {
	e, err := svc.repos.Enrollment.GetEnrollment(ctx, id)
	if err != nil {
		return Enrollment{}, err
	}
	e.Grade = e.CalculateGrade()
	e.UpdatedAt = time.Now().UTC()
	return svc.repos.Enrollment.UpdateEnrollment(ctx, e)
}

func (svc *Service) DeleteEnrollments(ctx context.Context, ids ...string) error {
	return svc.repos.Enrollment.DeleteEnrollmentsByID(ctx, ids)
}

// Attendance

func (svc *Service) checkAttendancePerson(ctx context.Context, studentID, teacherID null.String) error {
	if studentID.Valid {
		if _, err := svc.repos.Student.GetStudent(ctx, GetStudentFilter{ID: studentID.String}); err != nil {
			if pkgerrors.Cause(err) == ErrNotFound {
				return core.NewValidationError(errStudentNotFound, core.FieldError{Field: "student_id", Error: errStudentNotFound.Error()})
			}
			return pkgerrors.Wrap(err, "finding student")
		}
	}
	if teacherID.Valid {
		if _, err := svc.repos.Teacher.GetTeacher(ctx, GetTeacherFilter{ID: teacherID.String}); err != nil {
			if pkgerrors.Cause(err) == ErrNotFound {
				return core.NewValidationError(errTeacherNotFound, core.FieldError{Field: "teacher_id", Error: errTeacherNotFound.Error()})
			}
			return pkgerrors.Wrap(err, "finding teacher")
		}
	}
	return nil
}

func (svc *Service) RecordAttendance(ctx context.Context, na NewAttendance) (Attendance, error) {
	now := time.Now().UTC()
	a := Attendance{
		ID:        uuid.New().String(),
		Date:      now.Truncate(24 * time.Hour),
		Status:    na.Status,
		Remarks:   na.Remarks,
		StudentID: null.NewString(na.StudentID, na.StudentID != ""),
		TeacherID: null.NewString(na.TeacherID, na.TeacherID != ""),
		TimeIn:    null.NewString(na.TimeIn, na.TimeIn != ""),
		TimeOut:   null.NewString(na.TimeOut, na.TimeOut != ""),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if na.Date != "" {
		a.Date = parseDate(na.Date)
	}
	if err := a.Validate(); err != nil {
		return Attendance{}, err
	}
	if err := svc.checkAttendancePerson(ctx, a.StudentID, a.TeacherID); err != nil {
		return Attendance{}, err
	}
	if err := svc.repos.Attendance.CheckAttendanceUniqueness(ctx, a.StudentID, a.TeacherID, a.Date, nil); err != nil {
		if err == ErrAttendanceExists {
			return Attendance{}, core.NewValidationError(err, core.FieldError{Field: "date", Error: err.Error()})
		}
		return Attendance{}, err
	}
	return svc.repos.Attendance.CreateAttendance(ctx, a)
}

func (svc *Service) GetAttendance(ctx context.Context, id string) (Attendance, error) {
	return svc.repos.Attendance.GetAttendance(ctx, id)
}

func (svc *Service) QueryAttendance(ctx context.Context, filter *AttendanceFilter, ordering []core.DBOrdering) ([]Attendance, error) {
	return svc.repos.Attendance.QueryAttendance(ctx, filter, ordering)
}

func (svc *Service) UpdateAttendance(ctx context.Context, id string, ua UpdateAttendance) (Attendance, error) {
	a, err := svc.repos.Attendance.GetAttendance(ctx, id)
	if err != nil {
		return Attendance{}, err
	}
	if ua.Date != "" {
		a.Date = parseDate(ua.Date)
	}
	if ua.Status != "" {
		a.Status = ua.Status
	}
	a.Remarks = ua.Remarks
	if ua.TimeIn != "" {
		a.TimeIn = null.StringFrom(ua.TimeIn)
	}
	if ua.TimeOut != "" {
		a.TimeOut = null.StringFrom(ua.TimeOut)
	}
	a.UpdatedAt = time.Now().UTC()

	if err := a.Validate(); err != nil {
		return Attendance{}, err
	}
	if ua.Date != "" {
		if err := svc.repos.Attendance.CheckAttendanceUniqueness(ctx, a.StudentID, a.TeacherID, a.Date, []Attendance{a}); err != nil {
			if err == ErrAttendanceExists {
				return Attendance{}, core.NewValidationError(err, core.FieldError{Field: "date", Error: err.Error()})
			}
			return Attendance{}, err
		}
	}
	return svc.repos.Attendance.UpdateAttendance(ctx, a)
}

func (svc *Service) DeleteAttendance(ctx context.Context, ids ...string) error {
	return svc.repos.Attendance.DeleteAttendanceByID(ctx, ids)
}

// Leaves

func (svc *Service) RequestLeave(ctx context.Context, nl NewLeave) (Leave, error) {
	now := time.Now().UTC()
	l := Leave{
		ID:        uuid.New().String(),
		StudentID: null.NewString(nl.StudentID, nl.StudentID != ""),
		TeacherID: null.NewString(nl.TeacherID, nl.TeacherID != ""),
		LeaveType: nl.LeaveType,
		StartDate: parseDate(nl.StartDate),
		EndDate:   parseDate(nl.EndDate),
		Reason:    nl.Reason,
		Status:    LeavePending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := l.Validate(); err != nil {
		return Leave{}, err
	}
	if err := svc.checkAttendancePerson(ctx, l.StudentID, l.TeacherID); err != nil {
		return Leave{}, err
	}
	return svc.repos.Leave.CreateLeave(ctx, l)
}

func (svc *Service) GetLeave(ctx context.Context, id string) (Leave, error) {
	return svc.repos.Leave.GetLeave(ctx, id)
}

func (svc *Service) QueryLeaves(ctx context.Context, filter *LeaveFilter, ordering []core.DBOrdering) ([]Leave, error) {
	return svc.repos.Leave.QueryLeaves(ctx, filter, ordering)
}

func (svc *Service) UpdateLeave(ctx context.Context, id string, ul UpdateLeave) (Leave, error) {
	l, err := svc.repos.Leave.GetLeave(ctx, id)
	if err != nil {
		return Leave{}, err
	}
	if ul.LeaveType != "" {
		l.LeaveType = ul.LeaveType
	}
	if ul.StartDate != "" {
		l.StartDate = parseDate(ul.StartDate)
	}
	if ul.EndDate != "" {
		l.EndDate = parseDate(ul.EndDate)
	}
	if ul.Reason != "" {
		l.Reason = ul.Reason
	}
	l.UpdatedAt = time.Now().UTC()

	if err := l.Validate(); err != nil {
		return Leave{}, err
	}
	return svc.repos.Leave.UpdateLeave(ctx, l)
}

func (svc *Service) decideLeave(ctx context.Context, id string, status LeaveStatus, ld LeaveDecision) (Leave, error) {
	l, err := svc.repos.Leave.GetLeave(ctx, id)
	if err != nil {
		return Leave{}, err
	}
	if _, err := svc.repos.Teacher.GetTeacher(ctx, GetTeacherFilter{ID: ld.ApprovedBy}); err != nil {
		if pkgerrors.Cause(err) == ErrNotFound {
			return Leave{}, core.NewValidationError(errTeacherNotFound, core.FieldError{Field: "approved_by", Error: errTeacherNotFound.Error()})
		}
		return Leave{}, pkgerrors.Wrap(err, "finding approver")
	}

	now := time.Now().UTC()
	l.Status = status
	l.ApprovedBy = null.StringFrom(ld.ApprovedBy)
	l.ApprovalDate = null.TimeFrom(now)
	l.ApprovalRemarks = ld.ApprovalRemarks
	l.UpdatedAt = now
	return svc.repos.Leave.UpdateLeave(ctx, l)
}

func (svc *Service) ApproveLeave(ctx context.Context, id string, ld LeaveDecision) (Leave, error) {
	return svc.decideLeave(ctx, id, LeaveApproved, ld)
}

func (svc *Service) RejectLeave(ctx context.Context, id string, ld LeaveDecision) (Leave, error) {
	return svc.decideLeave(ctx, id, LeaveRejected, ld)
}

func (svc *Service) DeleteLeaves(ctx context.Context, ids ...string) error {
	return svc.repos.Leave.DeleteLeavesByID(ctx, ids)
}
