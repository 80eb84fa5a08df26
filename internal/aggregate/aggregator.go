package aggregate

import "github.com/databanq/dqscore/internal/contracts"

// Summarize groups rejection reasons across the rejected set into a
// histogram of exact message text to the ordered row indices it occurred
// at. A row that failed for several distinct reasons appears under each.
func Summarize(rejected []contracts.RejectedRow) map[string][]int {
	histogram := make(map[string][]int)
	for _, row := range rejected {
		for _, reason := range row.Reasons {
			histogram[reason.Message] = append(histogram[reason.Message], row.RowIndex)
		}
	}
	return histogram
}

// PenaltyScore derives the coarse row-count based score: the policy base
// minus one deduction per failed row, floored at zero. The number of
// distinct reasons within a row does not compound the penalty.
func PenaltyScore(failedRows int, policy contracts.PenaltyPolicy) float64 {
	return policy.Apply(failedRows)
}
