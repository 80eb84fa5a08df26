// Package pipeline wires ingestion, validation, metrics and scoring into
// one batch run.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/databanq/dqscore/internal/aggregate"
	"github.com/databanq/dqscore/internal/contract"
	"github.com/databanq/dqscore/internal/contracts"
	"github.com/databanq/dqscore/internal/dimension"
	"github.com/databanq/dqscore/internal/expect"
	"github.com/databanq/dqscore/internal/gate"
	"github.com/databanq/dqscore/internal/metrics"
	"github.com/databanq/dqscore/internal/ruleset"
	"github.com/databanq/dqscore/internal/score"
	"github.com/databanq/dqscore/pkg/config"
	"github.com/databanq/dqscore/pkg/logger"
)

// RunResult pairs the quality report with the column-expectation outcome
// of the same batch. The expectations never influence the report scores;
// they are a parallel diagnostic.
type RunResult struct {
	Report       *contracts.BatchReport `json:"report"`
	Expectations expect.SuiteResult     `json:"expectations"`
}

// Runner executes the full scoring pipeline over one row source per call.
// A Runner is safe for repeated use; each Run is independent.
type Runner struct {
	quality    config.QualityConfig
	policy     contracts.PenaltyPolicy
	gatekeeper *gate.Gatekeeper
	agents     []contracts.Agent
	composer   *score.Composer
	suite      *expect.Suite
	logger     *logger.Logger

	now func() time.Time
}

// New builds a runner from the quality configuration. Rule files are
// loaded and compiled here, so a bad rules file fails startup instead of
// the first batch.
func New(quality config.QualityConfig, log *logger.Logger) (*Runner, error) {
	policy := contracts.PenaltyPolicy{
		Base:         quality.PenaltyBase,
		PerViolation: quality.PenaltyPerViolation,
	}

	validator := contract.NewValidator(contract.Config{BalanceTolerance: quality.BalanceTolerance})
	gatekeeper := gate.New(validator, gate.Config{Workers: quality.GateWorkers}, log)

	agents := []contracts.Agent{
		dimension.NewAccuracyAgent(policy, log),
		dimension.NewCompletenessAgent(log),
		dimension.NewConsistencyAgent(policy, log),
		dimension.NewValidityAgent(policy, log),
		dimension.NewTimelinessAgent(policy, log),
		dimension.NewUniquenessAgent(policy, log),
		dimension.NewIntegrityAgent(policy, log),
	}

	if quality.RulesPath != "" {
		rules, err := ruleset.Load(quality.RulesPath)
		if err != nil {
			return nil, fmt.Errorf("load quality rules: %w", err)
		}
		for dim, group := range rules.ByDimension() {
			agent, err := dimension.NewRuleAgent(dim, group, policy, log)
			if err != nil {
				return nil, fmt.Errorf("compile quality rules: %w", err)
			}
			agents = append(agents, agent)
		}
	}

	return &Runner{
		quality:    quality,
		policy:     policy,
		gatekeeper: gatekeeper,
		agents:     agents,
		composer:   score.NewComposer(log),
		suite:      expect.TransactionSuite(log),
		logger:     log,
		now:        time.Now,
	}, nil
}

// Run scores one batch end to end. Only a fatal input error returns a nil
// report; every row-level problem is folded into the report itself, so a
// batch where everything is rejected still scores.
func (r *Runner) Run(ctx context.Context, source contracts.RowSource, sourceName string) (*RunResult, error) {
	started := r.now()

	rows, err := source.Rows(ctx)
	if err != nil {
		return nil, err
	}

	expectations := r.suite.Run(ctx, rows)

	valid, rejected := r.gatekeeper.Process(ctx, rows)

	calculator := metrics.NewCalculator(r.horizon(), r.logger)
	datasetMetrics := calculator.Compute(ctx, rows)

	input := contracts.AgentInput{
		Valid:     valid,
		TotalRows: len(rows),
		Metrics:   datasetMetrics,
	}

	dimensions := make([]contracts.DimensionResult, 0, len(r.agents))
	for _, agent := range r.agents {
		res, err := agent.Run(ctx, input)
		if err != nil {
			// One broken agent must not take the report down
			r.logger.WithFields(map[string]interface{}{
				"agent": agent.Name(),
				"error": err.Error(),
			}).Error("Dimension agent failed, skipping")
			continue
		}
		dimensions = append(dimensions, res)
	}

	report := &contracts.BatchReport{
		BatchID:         uuid.NewString(),
		Source:          sourceName,
		GeneratedAt:     started.UTC(),
		TotalRows:       len(rows),
		FailedRows:      len(rejected),
		ReasonHistogram: aggregate.Summarize(rejected),
		PenaltyScore:    aggregate.PenaltyScore(len(rejected), r.policy),
		Dimensions:      dimensions,
		FinalDQS:        r.composer.Compose(dimensions),
	}

	r.logger.WithFields(map[string]interface{}{
		"batch_id":    report.BatchID,
		"source":      sourceName,
		"total_rows":  report.TotalRows,
		"failed_rows": report.FailedRows,
		"final_dqs":   report.FinalDQS,
		"duration_ms": r.now().Sub(started).Milliseconds(),
	}).Info("Batch scored")

	return &RunResult{Report: report, Expectations: expectations}, nil
}

// horizon resolves the future-dated cutoff: the configured date, or the
// current time when none is set
func (r *Runner) horizon() time.Time {
	if r.quality.TimelinessHorizon == "" {
		return r.now()
	}
	ts, err := time.Parse("2006-01-02", r.quality.TimelinessHorizon)
	if err != nil {
		// Config validation rejects bad horizons; this is a safety net
		r.logger.WithError(err).Warn("Invalid timeliness horizon, using current time")
		return r.now()
	}
	return ts
}
