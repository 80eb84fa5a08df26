package dimension

import (
	"context"

	"github.com/databanq/dqscore/internal/contracts"
	"github.com/databanq/dqscore/pkg/logger"
)

// AccuracyAgent reports a fixed perfect score: numeric accuracy is already
// enforced by the record contract's balance-logic rule, so nothing the
// agent could find survives the gatekeeper. It exists as the extension
// point for accuracy heuristics that are not expressible as hard
// validation rules (see the rule agents).
type AccuracyAgent struct {
	policy contracts.PenaltyPolicy
	logger *logger.Logger
}

// NewAccuracyAgent creates an accuracy agent
func NewAccuracyAgent(policy contracts.PenaltyPolicy, log *logger.Logger) *AccuracyAgent {
	return &AccuracyAgent{policy: policy, logger: log}
}

// Name returns the dimension name
func (a *AccuracyAgent) Name() string { return DimAccuracy }

// Run reports the policy base with no issues
func (a *AccuracyAgent) Run(ctx context.Context, in contracts.AgentInput) (contracts.DimensionResult, error) {
	return contracts.DimensionResult{
		Dimension: DimAccuracy,
		Score:     a.policy.Apply(0),
	}, nil
}
