package scorer

// Grade thresholds for converting 0-100 scores to letter grades.
const (
	GradeThresholdAPlus  = 95
	GradeThresholdA      = 90
	GradeThresholdAMinus = 87
	GradeThresholdBPlus  = 83
	GradeThresholdB      = 80
	GradeThresholdBMinus = 77
	GradeThresholdCPlus  = 73
	GradeThresholdC      = 70
	GradeThresholdCMinus = 67
	GradeThresholdDPlus  = 63
	GradeThresholdD      = 60
)

// gradeOrder lists grades from worst to best.
var gradeOrder = []string{"F", "D", "D+", "C-", "C", "C+", "B-", "B", "B+", "A-", "A", "A+"}

// CalculateGrade maps a 0-100 score to a letter grade.
func CalculateGrade(score int) string {
	switch {
	case score >= GradeThresholdAPlus:
		return "A+"
	case score >= GradeThresholdA:
		return "A"
	case score >= GradeThresholdAMinus:
		return "A-"
	case score >= GradeThresholdBPlus:
		return "B+"
	case score >= GradeThresholdB:
		return "B"
	case score >= GradeThresholdBMinus:
		return "B-"
	case score >= GradeThresholdCPlus:
		return "C+"
	case score >= GradeThresholdC:
		return "C"
	case score >= GradeThresholdCMinus:
		return "C-"
	case score >= GradeThresholdDPlus:
		return "D+"
	case score >= GradeThresholdD:
		return "D"
	default:
		return "F"
	}
}

// GradeRank returns the position of grade in the letter ordering (F is 0),
// or -1 for an unknown grade.
func GradeRank(grade string) int {
	for i, g := range gradeOrder {
		if g == grade {
			return i
		}
	}
	return -1
}

// ValidGrade reports whether grade is one of the letter grades.
func ValidGrade(grade string) bool {
	return GradeRank(grade) >= 0
}
