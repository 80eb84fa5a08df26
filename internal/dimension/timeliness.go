package dimension

import (
	"context"

	"github.com/databanq/dqscore/internal/contracts"
	"github.com/databanq/dqscore/pkg/logger"
)

// TimelinessAgent flags future-dated rows, as detected by the dataset
// metrics pass over the raw input.
type TimelinessAgent struct {
	policy contracts.PenaltyPolicy
	logger *logger.Logger
}

// NewTimelinessAgent creates a timeliness agent
func NewTimelinessAgent(policy contracts.PenaltyPolicy, log *logger.Logger) *TimelinessAgent {
	return &TimelinessAgent{policy: policy, logger: log}
}

// Name returns the dimension name
func (a *TimelinessAgent) Name() string { return DimTimeliness }

// Run deducts per future-dated row
func (a *TimelinessAgent) Run(ctx context.Context, in contracts.AgentInput) (contracts.DimensionResult, error) {
	var issues []string
	if in.Metrics != nil {
		for _, ref := range in.Metrics.FutureDated {
			issues = append(issues, ref.IssueID())
		}
	}

	return contracts.DimensionResult{
		Dimension: DimTimeliness,
		Score:     a.policy.Apply(len(issues)),
		Issues:    issues,
	}, nil
}
