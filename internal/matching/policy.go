package matching

// AutoSubmitThreshold is the minimum score that triggers an automatic
// submission. It is the entire decision policy and is shared by both fanout
// orchestrators and every match-quality display, so the score a user sees is
// judged by the same bar that auto-submitted them.
const AutoSubmitThreshold = 85

// ShouldAutoSubmit reports whether a score warrants an automatic submission.
func ShouldAutoSubmit(score int) bool {
	return score >= AutoSubmitThreshold
}
