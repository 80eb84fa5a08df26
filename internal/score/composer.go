// Package score folds per-dimension results into the final batch score.
package score

import (
	"github.com/databanq/dqscore/internal/contracts"
	"github.com/databanq/dqscore/pkg/logger"
)

// Composer computes the final data quality score from dimension results.
// Every dimension carries equal weight; the row-level penalty score is a
// separate diagnostic and never enters this average.
type Composer struct {
	logger *logger.Logger
}

// NewComposer creates a score composer
func NewComposer(log *logger.Logger) *Composer {
	return &Composer{logger: log}
}

// Compose returns the unweighted mean of the dimension scores, rounded to
// two decimals. An empty result set scores zero.
func (c *Composer) Compose(results []contracts.DimensionResult) float64 {
	if len(results) == 0 {
		c.logger.Warn("No dimension results to compose, scoring 0")
		return 0
	}

	var sum float64
	for _, r := range results {
		sum += r.Score
	}
	final := contracts.Round2(sum / float64(len(results)))

	c.logger.WithFields(map[string]interface{}{
		"dimensions": len(results),
		"final_dqs":  final,
	}).Info("Composed final quality score")

	return final
}
