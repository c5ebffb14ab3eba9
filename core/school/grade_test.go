package school

import "testing"

func TestCalculateGrade(t *testing.T) {
	tests := []struct {
		name       string
		percentage float64
		want       string
	}{
		{name: "perfect score", percentage: 100, want: GradeAPlus},
		{name: "A+ lower bound", percentage: 90, want: GradeAPlus},
		{name: "just below A+", percentage: 89.99, want: GradeA},
		{name: "A lower bound", percentage: 80, want: GradeA},
		{name: "B+ lower bound", percentage: 70, want: GradeBPlus},
		{name: "B lower bound", percentage: 60, want: GradeB},
		{name: "C lower bound", percentage: 50, want: GradeC},
		{name: "D lower bound", percentage: 40, want: GradeD},
		{name: "just below D", percentage: 39.99, want: GradeF},
		{name: "zero", percentage: 0, want: GradeF},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalculateGrade(tt.percentage); got != tt.want {
				t.Errorf("CalculateGrade(%v) = %v, want %v", tt.percentage, got, tt.want)
			}
		})
	}
}
