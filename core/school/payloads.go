package school

import (
	"time"

	"github.com/trezcool/shule/core"
)

// NewTeacher contains information needed to create a new Teacher record.
type NewTeacher struct {
	TeacherID   string `json:"teacher_id" validate:"required"`
	FirstName   string `json:"first_name" validate:"required"`
	LastName    string `json:"last_name" validate:"required"`
	DateOfBirth string `json:"date_of_birth" validate:"required,datetime=2006-01-02"`
	Gender      Gender `json:"gender" validate:"required,oneof=M F O"`
	Address     string `json:"address" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone" validate:"omitempty,max=15"`
	Department  string `json:"department" validate:"required"`
	UserID      string `json:"user_id" validate:"omitempty,uuid4"`
}

func (nt *NewTeacher) Validate(svc *Service) error {
	nt.TeacherID = core.CleanString(nt.TeacherID)
	nt.FirstName = core.CleanString(nt.FirstName)
	nt.LastName = core.CleanString(nt.LastName)
	nt.Email = core.CleanString(nt.Email, true /* lower */)

	if err := core.Validate.Struct(nt); err != nil {
		return err
	}
	return svc.CheckTeacherUniqueness(nt.TeacherID, nt.Email)
}

// UpdateTeacher defines what may be modified on an existing Teacher.
type UpdateTeacher struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	DateOfBirth string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	Gender      Gender `json:"gender" validate:"omitempty,oneof=M F O"`
	Address     string `json:"address"`
	Email       string `json:"email" validate:"omitempty,email"`
	Phone       string `json:"phone" validate:"omitempty,max=15"`
	Department  string `json:"department"`
	IsActive    *bool  `json:"is_active"`
}

func (ut *UpdateTeacher) Validate(orig Teacher, svc *Service) error {
	email := core.CleanString(ut.Email, true /* lower */)
	if email != "" {
		ut.Email = email
	} else {
		ut.Email = orig.Email
	}

	if err := core.Validate.Struct(ut); err != nil {
		return err
	}
	return svc.CheckTeacherUniqueness(orig.TeacherID, ut.Email, orig)
}

// NewStudent contains information needed to create a new Student record.
type NewStudent struct {
	StudentID    string     `json:"student_id" validate:"required"`
	FirstName    string     `json:"first_name" validate:"required"`
	LastName     string     `json:"last_name" validate:"required"`
	DateOfBirth  string     `json:"date_of_birth" validate:"required,datetime=2006-01-02"`
	Gender       Gender     `json:"gender" validate:"required,oneof=M F O"`
	Address      string     `json:"address" validate:"required"`
	Email        string     `json:"email" validate:"omitempty,email"`
	Phone        string     `json:"phone" validate:"omitempty,max=15"`
	CurrentClass ClassLevel `json:"current_class" validate:"required,oneof=11 12"`
	UserID       string     `json:"user_id" validate:"omitempty,uuid4"`
}

func (ns *NewStudent) Validate(svc *Service) error {
	ns.StudentID = core.CleanString(ns.StudentID)
	ns.FirstName = core.CleanString(ns.FirstName)
	ns.LastName = core.CleanString(ns.LastName)
	ns.Email = core.CleanString(ns.Email, true /* lower */)

	if err := core.Validate.Struct(ns); err != nil {
		return err
	}
	return svc.CheckStudentUniqueness(ns.StudentID, ns.Email)
}

// UpdateStudent defines what may be modified on an existing Student.
type UpdateStudent struct {
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	DateOfBirth  string     `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	Gender       Gender     `json:"gender" validate:"omitempty,oneof=M F O"`
	Address      string     `json:"address"`
	Email        string     `json:"email" validate:"omitempty,email"`
	Phone        string     `json:"phone" validate:"omitempty,max=15"`
	CurrentClass ClassLevel `json:"current_class" validate:"omitempty,oneof=11 12"`
	IsActive     *bool      `json:"is_active"`
}

func (us *UpdateStudent) Validate(orig Student, svc *Service) error {
	email := core.CleanString(us.Email, true /* lower */)
	if email == "" {
		email = orig.Email.String
	}
	us.Email = email

	if err := core.Validate.Struct(us); err != nil {
		return err
	}
	return svc.CheckStudentUniqueness(orig.StudentID, us.Email, orig)
}

// NewCourse contains information needed to create a new Course.
type NewCourse struct {
	CourseCode   string     `json:"course_code" validate:"required"`
	CourseName   string     `json:"course_name" validate:"required"`
	Description  string     `json:"description"`
	Credits      int        `json:"credits" validate:"omitempty,min=1"`
	TeacherID    string     `json:"teacher_id" validate:"required"`
	ClassLevel   ClassLevel `json:"class_level" validate:"required,oneof=11 12"`
	AcademicYear string     `json:"academic_year" validate:"required,academicyear"`
	Semester     string     `json:"semester"`
}

func (nc *NewCourse) Validate(svc *Service) error {
	nc.CourseCode = core.CleanString(nc.CourseCode)
	nc.CourseName = core.CleanString(nc.CourseName)
	nc.AcademicYear = core.CleanString(nc.AcademicYear)

	if err := core.Validate.Struct(nc); err != nil {
		return err
	}
	return svc.CheckCourseUniqueness(nc.CourseCode, nc.AcademicYear)
}

// UpdateCourse defines what may be modified on an existing Course.
// CourseCode and AcademicYear are fixed at creation.
type UpdateCourse struct {
	CourseName  string     `json:"course_name"`
	Description string     `json:"description"`
	Credits     int        `json:"credits" validate:"omitempty,min=1"`
	TeacherID   string     `json:"teacher_id"`
	ClassLevel  ClassLevel `json:"class_level" validate:"omitempty,oneof=11 12"`
	Semester    string     `json:"semester"`
	IsActive    *bool      `json:"is_active"`
}

func (uc *UpdateCourse) Validate() error {
	uc.CourseName = core.CleanString(uc.CourseName)
	return core.Validate.Struct(uc)
}

// NewEnrollment enrolls a Student into a Course.
type NewEnrollment struct {
	StudentID  string   `json:"student_id" validate:"required"`
	CourseID   string   `json:"course_id" validate:"required"`
	TotalMarks *float64 `json:"total_marks" validate:"omitempty,gt=0"`
}

func (ne *NewEnrollment) Validate(svc *Service) error {
	if err := core.Validate.Struct(ne); err != nil {
		return err
	}
	return svc.CheckEnrollmentUniqueness(ne.StudentID, ne.CourseID)
}

// UpdateMarks updates an Enrollment's marks. The stored grade is left
// untouched; callers must request an explicit grade recompute.
type UpdateMarks struct {
	MarksObtained *float64 `json:"marks_obtained" validate:"omitempty,gte=0"`
	TotalMarks    *float64 `json:"total_marks" validate:"omitempty,gt=0"`
	IsCompleted   *bool    `json:"is_completed"`
}

func (um UpdateMarks) Validate() error { return core.Validate.Struct(um) }

// NewAttendance records attendance for exactly one of a student or teacher.
type NewAttendance struct {
	Date      string           `json:"date" validate:"omitempty,datetime=2006-01-02"` // defaults to today
	Status    AttendanceStatus `json:"status" validate:"required,oneof=P A L"`
	Remarks   string           `json:"remarks"`
	StudentID string           `json:"student_id"`
	TeacherID string           `json:"teacher_id"`
	TimeIn    string           `json:"time_in" validate:"omitempty,datetime=15:04"`
	TimeOut   string           `json:"time_out" validate:"omitempty,datetime=15:04"`
}

func (na *NewAttendance) Validate() error {
	na.StudentID = core.CleanString(na.StudentID)
	na.TeacherID = core.CleanString(na.TeacherID)
	return core.Validate.Struct(na)
}

// UpdateAttendance defines what may be modified on an existing Attendance
// record. The owning person is fixed at creation.
type UpdateAttendance struct {
	Date    string           `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Status  AttendanceStatus `json:"status" validate:"omitempty,oneof=P A L"`
	Remarks string           `json:"remarks"`
	TimeIn  string           `json:"time_in" validate:"omitempty,datetime=15:04"`
	TimeOut string           `json:"time_out" validate:"omitempty,datetime=15:04"`
}

func (ua UpdateAttendance) Validate() error { return core.Validate.Struct(ua) }

// NewLeave files a leave request for exactly one of a student or teacher.
type NewLeave struct {
	StudentID string    `json:"student_id"`
	TeacherID string    `json:"teacher_id"`
	LeaveType LeaveType `json:"leave_type" validate:"required,oneof=SL CL AL ML EL OT"`
	StartDate string    `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string    `json:"end_date" validate:"required,datetime=2006-01-02"`
	Reason    string    `json:"reason" validate:"required"`
}

func (nl *NewLeave) Validate() error {
	nl.StudentID = core.CleanString(nl.StudentID)
	nl.TeacherID = core.CleanString(nl.TeacherID)
	nl.Reason = core.CleanString(nl.Reason)
	return core.Validate.Struct(nl)
}

// UpdateLeave defines what may be modified on an existing Leave request.
// The owning person and the approval trail are fixed.
type UpdateLeave struct {
	LeaveType LeaveType `json:"leave_type" validate:"omitempty,oneof=SL CL AL ML EL OT"`
	StartDate string    `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string    `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	Reason    string    `json:"reason"`
}

func (ul *UpdateLeave) Validate() error {
	ul.Reason = core.CleanString(ul.Reason)
	return core.Validate.Struct(ul)
}

// LeaveDecision approves or rejects a pending leave request.
type LeaveDecision struct {
	ApprovedBy      string `json:"approved_by" validate:"required"`
	ApprovalRemarks string `json:"approval_remarks"`
}

func (ld LeaveDecision) Validate() error { return core.Validate.Struct(ld) }

func parseDate(s string) time.Time {
	t, _ := time.Parse(DateFormat, s)
	return t
}
