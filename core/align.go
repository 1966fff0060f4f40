package core

// MeasureFunc returns the horizontal caret offset of a column in the line
// being aligned to.
type MeasureFunc func(col int) int

// Align corrects a candidate caret column so it sits as close as possible to
// prevLeft, the caret offset on the line focus came from. Only the columns
// directly left and right of the candidate are considered, so the result is
// always -1, 0 or +1. Ties keep the candidate.
func Align(prevLeft, candidateCol, candidateLeft int, target MeasureFunc) int {
	diff := abs(prevLeft - candidateLeft)
	if diff == 0 {
		return 0
	}

	leftDiff := abs(prevLeft - target(candidateCol-1))
	rightDiff := abs(prevLeft - target(candidateCol+1))

	if leftDiff < rightDiff && leftDiff < diff {
		return -1
	} else if rightDiff < leftDiff && rightDiff < diff {
		return 1
	}
	return 0
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
