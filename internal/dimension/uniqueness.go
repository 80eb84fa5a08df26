package dimension

import (
	"context"
	"sort"

	"github.com/databanq/dqscore/internal/contracts"
	"github.com/databanq/dqscore/pkg/logger"
)

// UniquenessAgent flags txn_ids that occur more than once in the raw
// input. Every occurrence beyond the first counts as one violation.
type UniquenessAgent struct {
	policy contracts.PenaltyPolicy
	logger *logger.Logger
}

// NewUniquenessAgent creates a uniqueness agent
func NewUniquenessAgent(policy contracts.PenaltyPolicy, log *logger.Logger) *UniquenessAgent {
	return &UniquenessAgent{policy: policy, logger: log}
}

// Name returns the dimension name
func (a *UniquenessAgent) Name() string { return DimUniqueness }

// Run deducts per duplicate occurrence; issues list the duplicated ids in
// sorted order so repeated runs report identically
func (a *UniquenessAgent) Run(ctx context.Context, in contracts.AgentInput) (contracts.DimensionResult, error) {
	var issues []string
	violations := 0
	if in.Metrics != nil {
		for id, indices := range in.Metrics.DuplicateTxnIDs {
			issues = append(issues, id)
			violations += len(indices) - 1
		}
		sort.Strings(issues)
	}

	result := contracts.DimensionResult{
		Dimension: DimUniqueness,
		Score:     a.policy.Apply(violations),
		Issues:    issues,
	}
	if in.Metrics != nil {
		result.Details = map[string]float64{
			"duplicate_rows": float64(in.Metrics.DuplicateRows),
		}
	}
	return result, nil
}
