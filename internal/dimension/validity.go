package dimension

import (
	"context"

	"github.com/databanq/dqscore/internal/contracts"
	"github.com/databanq/dqscore/pkg/logger"
)

// ValidityAgent flags transactions whose size is implausible relative to
// the customer's declared monthly income.
type ValidityAgent struct {
	policy contracts.PenaltyPolicy
	logger *logger.Logger
}

// NewValidityAgent creates a validity agent
func NewValidityAgent(policy contracts.PenaltyPolicy, log *logger.Logger) *ValidityAgent {
	return &ValidityAgent{policy: policy, logger: log}
}

// Name returns the dimension name
func (a *ValidityAgent) Name() string { return DimValidity }

// Run flags records where amount exceeds three months of declared income
func (a *ValidityAgent) Run(ctx context.Context, in contracts.AgentInput) (contracts.DimensionResult, error) {
	var issues []string
	for _, rec := range in.Valid {
		if rec.Amount > rec.MonthlyIncome*IncomeMultiple {
			issues = append(issues, rec.TxnID)
		}
	}

	return contracts.DimensionResult{
		Dimension: DimValidity,
		Score:     a.policy.Apply(len(issues)),
		Issues:    issues,
	}, nil
}
