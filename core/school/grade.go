package school

// Letter grades, best to worst.
const (
	GradeAPlus = "A+"
	GradeA     = "A"
	GradeBPlus = "B+"
	GradeB     = "B"
	GradeC     = "C"
	GradeD     = "D"
	GradeF     = "F"
)

// CalculateGrade maps a percentage (0-100) to a letter grade. Band lower
// bounds are inclusive: exactly 90.0 is an A+.
func CalculateGrade(percentage float64) string {
	switch {
	case percentage >= 90:
		return GradeAPlus
	case percentage >= 80:
		return GradeA
	case percentage >= 70:
		return GradeBPlus
	case percentage >= 60:
		return GradeB
	case percentage >= 50:
		return GradeC
	case percentage >= 40:
		return GradeD
	default:
		return GradeF
	}
}
