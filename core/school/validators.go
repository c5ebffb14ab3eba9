package school

import (
	"errors"
	"regexp"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/shule/core"
)

var (
	academicYearTag   = "academicyear"
	academicYearText  = "academic year must be in YYYY-YYYY format"
	academicYearRegex = regexp.MustCompile(`^\d{4}-\d{4}$`)

	// pre-write validation copy; the same rules exist as storage-level
	// constraints, these just produce readable errors first.
	errAttendanceNoPerson   = errors.New("attendance must be for either a student or teacher")
	errAttendanceBothPeople = errors.New("attendance cannot be for both student and teacher")
	errLeaveNoPerson        = errors.New("leave must be for either a student or teacher")
	errLeaveBothPeople      = errors.New("leave cannot be for both student and teacher")
	errLeaveDatesInverted   = errors.New("start date cannot be after end date")
)

func init() {
	_ = core.Validate.RegisterValidation(academicYearTag, academicYearValidation)
	core.RegisterCustomTranslation(academicYearTag, academicYearText)
}

func academicYearValidation(fl validator.FieldLevel) bool {
	return academicYearRegex.MatchString(fl.Field().String())
}

// Validate enforces the exactly-one-of {student, teacher} invariant on the
// assembled record, before any write reaches storage.
func (a Attendance) Validate() error {
	switch {
	case !a.StudentID.Valid && !a.TeacherID.Valid:
		return core.NewValidationError(errAttendanceNoPerson)
	case a.StudentID.Valid && a.TeacherID.Valid:
		return core.NewValidationError(errAttendanceBothPeople)
	}
	return nil
}

// Validate enforces the exactly-one-of {student, teacher} invariant and the
// start <= end date-range rule on the assembled record.
func (l Leave) Validate() error {
	switch {
	case !l.StudentID.Valid && !l.TeacherID.Valid:
		return core.NewValidationError(errLeaveNoPerson)
	case l.StudentID.Valid && l.TeacherID.Valid:
		return core.NewValidationError(errLeaveBothPeople)
	}
	if l.StartDate.After(l.EndDate) {
		return core.NewValidationError(errLeaveDatesInverted, core.FieldError{Field: "start_date", Error: errLeaveDatesInverted.Error()})
	}
	return nil
}
