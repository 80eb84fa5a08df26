package dimension

import (
	"context"

	"github.com/databanq/dqscore/internal/contracts"
	"github.com/databanq/dqscore/pkg/logger"
)

// IntegrityAgent flags rows with a missing customer reference, the
// referential-integrity signal from the dataset metrics pass.
type IntegrityAgent struct {
	policy contracts.PenaltyPolicy
	logger *logger.Logger
}

// NewIntegrityAgent creates an integrity agent
func NewIntegrityAgent(policy contracts.PenaltyPolicy, log *logger.Logger) *IntegrityAgent {
	return &IntegrityAgent{policy: policy, logger: log}
}

// Name returns the dimension name
func (a *IntegrityAgent) Name() string { return DimIntegrity }

// Run deducts per row missing its customer_id
func (a *IntegrityAgent) Run(ctx context.Context, in contracts.AgentInput) (contracts.DimensionResult, error) {
	var issues []string
	if in.Metrics != nil {
		for _, ref := range in.Metrics.MissingCustomerID {
			issues = append(issues, ref.IssueID())
		}
	}

	return contracts.DimensionResult{
		Dimension: DimIntegrity,
		Score:     a.policy.Apply(len(issues)),
		Issues:    issues,
	}, nil
}
