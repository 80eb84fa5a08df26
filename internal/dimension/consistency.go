package dimension

import (
	"context"

	"github.com/databanq/dqscore/internal/contracts"
	"github.com/databanq/dqscore/pkg/logger"
)

// ConsistencyAgent flags cross-field combinations that validate
// individually but make no business sense together: a NEFT credit whose
// merchant category is not SALARY.
type ConsistencyAgent struct {
	policy contracts.PenaltyPolicy
	logger *logger.Logger
}

// NewConsistencyAgent creates a consistency agent
func NewConsistencyAgent(policy contracts.PenaltyPolicy, log *logger.Logger) *ConsistencyAgent {
	return &ConsistencyAgent{policy: policy, logger: log}
}

// Name returns the dimension name
func (a *ConsistencyAgent) Name() string { return DimConsistency }

// Run flags NEFT records outside the salary category
func (a *ConsistencyAgent) Run(ctx context.Context, in contracts.AgentInput) (contracts.DimensionResult, error) {
	var issues []string
	for _, rec := range in.Valid {
		if rec.TxnType == contracts.TxnNEFT && rec.MerchantCategory != SalaryCategory {
			issues = append(issues, rec.TxnID)
		}
	}

	return contracts.DimensionResult{
		Dimension: DimConsistency,
		Score:     a.policy.Apply(len(issues)),
		Issues:    issues,
	}, nil
}
