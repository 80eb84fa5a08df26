package dimension

import (
	"context"

	"github.com/databanq/dqscore/internal/contracts"
	"github.com/databanq/dqscore/pkg/logger"
)

// CompletenessAgent scores the fraction of rows that survived the
// gatekeeper. It carries no issues list: the per-row rejection detail
// already lives with the error aggregator.
type CompletenessAgent struct {
	logger *logger.Logger
}

// NewCompletenessAgent creates a completeness agent
func NewCompletenessAgent(log *logger.Logger) *CompletenessAgent {
	return &CompletenessAgent{logger: log}
}

// Name returns the dimension name
func (a *CompletenessAgent) Name() string { return DimCompleteness }

// Run computes valid/total * 100, rounded to two decimals
func (a *CompletenessAgent) Run(ctx context.Context, in contracts.AgentInput) (contracts.DimensionResult, error) {
	score := 100.0
	if in.TotalRows > 0 {
		score = contracts.Round2(float64(len(in.Valid)) / float64(in.TotalRows) * 100)
	}

	return contracts.DimensionResult{
		Dimension: DimCompleteness,
		Score:     score,
		Details: map[string]float64{
			"valid_rows": float64(len(in.Valid)),
			"total_rows": float64(in.TotalRows),
		},
	}, nil
}
