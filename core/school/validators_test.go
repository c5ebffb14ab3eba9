package school

import (
	"testing"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/trezcool/shule/core"
)

func wantedValidationError(t *testing.T, err, want error) {
	t.Helper()
	if want == nil {
		if err != nil {
			t.Errorf("Validate() error = %v, want nil", err)
		}
		return
	}
	vErr, ok := err.(*core.ValidationError)
	if !ok {
		t.Fatalf("Validate() error = %v (%T), want *core.ValidationError", err, err)
	}
	if vErr.Err != want {
		t.Errorf("Validate() error = %v, want %v", vErr.Err, want)
	}
}

func TestAttendanceValidate(t *testing.T) {
	tests := []struct {
		name      string
		studentID null.String
		teacherID null.String
		wantErr   error
	}{
		{name: "neither person", wantErr: errAttendanceNoPerson},
		{name: "both people", studentID: null.StringFrom("s1"), teacherID: null.StringFrom("t1"), wantErr: errAttendanceBothPeople},
		{name: "student only", studentID: null.StringFrom("s1")},
		{name: "teacher only", teacherID: null.StringFrom("t1")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Attendance{StudentID: tt.studentID, TeacherID: tt.teacherID, Status: AttendancePresent}
			wantedValidationError(t, a.Validate(), tt.wantErr)
		})
	}
}

func TestLeaveValidate(t *testing.T) {
	day1 := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		studentID null.String
		teacherID null.String
		start     time.Time
		end       time.Time
		wantErr   error
	}{
		{name: "neither person", start: day1, end: day2, wantErr: errLeaveNoPerson},
		{name: "both people", studentID: null.StringFrom("s1"), teacherID: null.StringFrom("t1"), start: day1, end: day2, wantErr: errLeaveBothPeople},
		{name: "end before start", studentID: null.StringFrom("s1"), start: day2, end: day1, wantErr: errLeaveDatesInverted},
		{name: "single day", teacherID: null.StringFrom("t1"), start: day1, end: day1},
		{name: "valid range", studentID: null.StringFrom("s1"), start: day1, end: day2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := Leave{
				StudentID: tt.studentID,
				TeacherID: tt.teacherID,
				LeaveType: LeaveSick,
				StartDate: tt.start,
				EndDate:   tt.end,
			}
			wantedValidationError(t, l.Validate(), tt.wantErr)
		})
	}
}
