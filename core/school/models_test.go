package school

import (
	"testing"
	"time"

	"github.com/volatiletech/null/v8"
)

func TestEnrollmentPercentage(t *testing.T) {
	tests := []struct {
		name          string
		marksObtained null.Float64
		totalMarks    float64
		want          float64
	}{
		{name: "no marks yet", totalMarks: 100, want: 0},
		{name: "zero total marks", marksObtained: null.Float64From(50), want: 0},
		{name: "half marks", marksObtained: null.Float64From(50), totalMarks: 100, want: 50},
		{name: "custom total", marksObtained: null.Float64From(45), totalMarks: 50, want: 90},
		{name: "full marks", marksObtained: null.Float64From(100), totalMarks: 100, want: 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := Enrollment{MarksObtained: tt.marksObtained, TotalMarks: tt.totalMarks}
			if got := e.Percentage(); got != tt.want {
				t.Errorf("Percentage() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEnrollmentCalculateGrade(t *testing.T) {
	e := Enrollment{MarksObtained: null.Float64From(85), TotalMarks: 100}
	if got := e.CalculateGrade(); got != GradeA {
		t.Errorf("CalculateGrade() = %v, want %v", got, GradeA)
	}

	// ungraded enrollments fall through to F
	e = Enrollment{TotalMarks: 100}
	if got := e.CalculateGrade(); got != GradeF {
		t.Errorf("CalculateGrade() = %v, want %v", got, GradeF)
	}
}

func TestLeaveDurationDays(t *testing.T) {
	date := func(s string) time.Time {
		d, err := time.Parse(DateFormat, s)
		if err != nil {
			t.Fatalf("parsing %q: %v", s, err)
		}
		return d
	}

	tests := []struct {
		name  string
		start string
		end   string
		want  int
	}{
		{name: "same day", start: "2025-01-01", end: "2025-01-01", want: 1},
		{name: "five days inclusive", start: "2025-01-01", end: "2025-01-05", want: 5},
		{name: "across month boundary", start: "2025-01-30", end: "2025-02-02", want: 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := Leave{StartDate: date(tt.start), EndDate: date(tt.end)}
			if got := l.DurationDays(); got != tt.want {
				t.Errorf("DurationDays() = %v, want %v", got, tt.want)
			}
		})
	}
}
