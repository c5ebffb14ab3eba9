package school

import (
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/trezcool/shule/core"
)

// DateFormat is the wire format for all date-only fields.
const DateFormat = "2006-01-02"

// Gender choices
type Gender string

const (
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
	GenderOther  Gender = "O"
)

func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	default:
		return false
	}
}

// ClassLevel choices
type ClassLevel string

const (
	Class11 ClassLevel = "11"
	Class12 ClassLevel = "12"
)

func (c ClassLevel) Valid() bool {
	return c == Class11 || c == Class12
}

// AttendanceStatus choices
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "P"
	AttendanceAbsent  AttendanceStatus = "A"
	AttendanceLate    AttendanceStatus = "L"
)

func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendancePresent, AttendanceAbsent, AttendanceLate:
		return true
	default:
		return false
	}
}

// LeaveType choices
type LeaveType string

const (
	LeaveSick      LeaveType = "SL"
	LeaveCasual    LeaveType = "CL"
	LeaveAnnual    LeaveType = "AL"
	LeaveMedical   LeaveType = "ML"
	LeaveEmergency LeaveType = "EL"
	LeaveOther     LeaveType = "OT"
)

func (t LeaveType) Valid() bool {
	switch t {
	case LeaveSick, LeaveCasual, LeaveAnnual, LeaveMedical, LeaveEmergency, LeaveOther:
		return true
	default:
		return false
	}
}

// LeaveStatus choices
type LeaveStatus string

const (
	LeavePending  LeaveStatus = "P"
	LeaveApproved LeaveStatus = "A"
	LeaveRejected LeaveStatus = "R"
)

func (s LeaveStatus) Valid() bool {
	switch s {
	case LeavePending, LeaveApproved, LeaveRejected:
		return true
	default:
		return false
	}
}

// Teacher is a staff record. Deactivation via IsActive is the supported
// lifecycle end-state; hard deletion cascades to owned records.
type Teacher struct {
	ID          string      `db:"id" json:"id"`
	UserID      null.String `db:"user_id" json:"user_id,omitempty"`
	TeacherID   string      `db:"teacher_id" json:"teacher_id"`
	FirstName   string      `db:"first_name" json:"first_name"`
	LastName    string      `db:"last_name" json:"last_name"`
	DateOfBirth time.Time   `db:"date_of_birth" json:"date_of_birth"`
	Gender      Gender      `db:"gender" json:"gender"`
	Address     string      `db:"address" json:"address"`
	Email       string      `db:"email" json:"email"`
	Phone       string      `db:"phone" json:"phone"`
	Department  string      `db:"department" json:"department"`
	IsActive    bool        `db:"is_active" json:"is_active"`
	CreatedAt   time.Time   `db:"created_at" json:"created_at"` // UTC
	UpdatedAt   time.Time   `db:"updated_at" json:"updated_at"` // UTC
}

func (t Teacher) FullName() string {
	return core.CleanString(t.FirstName + " " + t.LastName)
}

type Student struct {
	ID           string      `db:"id" json:"id"`
	UserID       null.String `db:"user_id" json:"user_id,omitempty"`
	StudentID    string      `db:"student_id" json:"student_id"`
	FirstName    string      `db:"first_name" json:"first_name"`
	LastName     string      `db:"last_name" json:"last_name"`
	DateOfBirth  time.Time   `db:"date_of_birth" json:"date_of_birth"`
	Gender       Gender      `db:"gender" json:"gender"`
	Address      string      `db:"address" json:"address"`
	Email        null.String `db:"email" json:"email,omitempty"`
	Phone        null.String `db:"phone" json:"phone,omitempty"`
	CurrentClass ClassLevel  `db:"current_class" json:"current_class"`
	IsActive     bool        `db:"is_active" json:"is_active"`
	CreatedAt    time.Time   `db:"created_at" json:"created_at"` // UTC
	UpdatedAt    time.Time   `db:"updated_at" json:"updated_at"` // UTC
}

func (s Student) FullName() string {
	return core.CleanString(s.FirstName + " " + s.LastName)
}

// Course is owned by its Teacher; (CourseCode, AcademicYear) is unique.
type Course struct {
	ID           string     `db:"id" json:"id"`
	CourseCode   string     `db:"course_code" json:"course_code"`
	CourseName   string     `db:"course_name" json:"course_name"`
	Description  string     `db:"description" json:"description"`
	Credits      int        `db:"credits" json:"credits"`
	TeacherID    string     `db:"teacher_id" json:"teacher_id"`
	ClassLevel   ClassLevel `db:"class_level" json:"class_level"`
	AcademicYear string     `db:"academic_year" json:"academic_year"` // YYYY-YYYY
	Semester     string     `db:"semester" json:"semester"`
	IsActive     bool       `db:"is_active" json:"is_active"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"` // UTC
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"` // UTC
}

// Enrollment joins a Student to a Course and carries marks.
// Grade is only refreshed by an explicit recompute; it may be stale
// relative to the marks until then.
type Enrollment struct {
	ID            string       `db:"id" json:"id"`
	StudentID     string       `db:"student_id" json:"student_id"`
	CourseID      string       `db:"course_id" json:"course_id"`
	MarksObtained null.Float64 `db:"marks_obtained" json:"marks_obtained,omitempty"`
	TotalMarks    float64      `db:"total_marks" json:"total_marks"`
	Grade         string       `db:"grade" json:"grade"`
	IsCompleted   bool         `db:"is_completed" json:"is_completed"`
	CreatedAt     time.Time    `db:"created_at" json:"created_at"` // UTC
	UpdatedAt     time.Time    `db:"updated_at" json:"updated_at"` // UTC
}

// Percentage derives marks obtained over total marks; 0 when marks are
// absent or total is zero.
func (e Enrollment) Percentage() float64 {
	if !e.MarksObtained.Valid || e.TotalMarks == 0 {
		return 0
	}
	return e.MarksObtained.Float64 / e.TotalMarks * 100
}

// CalculateGrade maps the current percentage to a letter grade.
func (e Enrollment) CalculateGrade() string {
	return CalculateGrade(e.Percentage())
}

// Attendance is owned by exactly one of Student or Teacher.
type Attendance struct {
	ID        string           `db:"id" json:"id"`
	Date      time.Time        `db:"date" json:"date"`
	Status    AttendanceStatus `db:"status" json:"status"`
	Remarks   string           `db:"remarks" json:"remarks"`
	StudentID null.String      `db:"student_id" json:"student_id,omitempty"`
	TeacherID null.String      `db:"teacher_id" json:"teacher_id,omitempty"`
	TimeIn    null.String      `db:"time_in" json:"time_in,omitempty"`   // HH:MM
	TimeOut   null.String      `db:"time_out" json:"time_out,omitempty"` // HH:MM
	CreatedAt time.Time        `db:"created_at" json:"created_at"`       // UTC
	UpdatedAt time.Time        `db:"updated_at" json:"updated_at"`       // UTC
}

// Leave is owned by exactly one of Student or Teacher; ApprovedBy is a
// non-owning reference nullified when the approving teacher is deleted.
type Leave struct {
	ID              string      `db:"id" json:"id"`
	StudentID       null.String `db:"student_id" json:"student_id,omitempty"`
	TeacherID       null.String `db:"teacher_id" json:"teacher_id,omitempty"`
	LeaveType       LeaveType   `db:"leave_type" json:"leave_type"`
	StartDate       time.Time   `db:"start_date" json:"start_date"`
	EndDate         time.Time   `db:"end_date" json:"end_date"`
	Reason          string      `db:"reason" json:"reason"`
	Status          LeaveStatus `db:"status" json:"status"`
	ApprovedBy      null.String `db:"approved_by" json:"approved_by,omitempty"`
	ApprovalDate    null.Time   `db:"approval_date" json:"approval_date,omitempty"`
	ApprovalRemarks string      `db:"approval_remarks" json:"approval_remarks"`
	CreatedAt       time.Time   `db:"created_at" json:"created_at"` // UTC
	UpdatedAt       time.Time   `db:"updated_at" json:"updated_at"` // UTC
}

// DurationDays counts leave days inclusive of both bounds.
func (l Leave) DurationDays() int {
	return int(l.EndDate.Sub(l.StartDate).Hours()/24) + 1
}
