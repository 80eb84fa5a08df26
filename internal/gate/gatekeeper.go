package gate

import (
	"context"
	"sync"

	"github.com/databanq/dqscore/internal/contract"
	"github.com/databanq/dqscore/internal/contracts"
	"github.com/databanq/dqscore/pkg/logger"
)

// Config holds gatekeeper options
type Config struct {
	// Workers is the number of concurrent validation workers. Zero or one
	// means a plain sequential pass.
	Workers int
}

// Gatekeeper drives the record contract over an entire batch, partitioning
// rows into the ordered valid and rejected sequences. It owns row-to-record
// transformation exclusively; downstream stages only read its output.
type Gatekeeper struct {
	validator *contract.Validator
	config    Config
	logger    *logger.Logger
}

// New creates a gatekeeper
func New(validator *contract.Validator, config Config, log *logger.Logger) *Gatekeeper {
	return &Gatekeeper{
		validator: validator,
		config:    config,
		logger:    log,
	}
}

type rowResult struct {
	record  *contracts.TransactionRecord
	reasons []contracts.FieldError
}

// Process validates every row and partitions the batch. Row indices are
// 1-based input positions; both output sequences preserve input order even
// when rows are validated concurrently. Row-level failures never abort the
// batch — they are captured into the rejected sequence.
func (g *Gatekeeper) Process(ctx context.Context, rows []contracts.RawRow) ([]contracts.TransactionRecord, []contracts.RejectedRow) {
	results := make([]rowResult, len(rows))

	if g.config.Workers > 1 {
		g.processParallel(ctx, rows, results)
	} else {
		for i, row := range rows {
			rec, reasons := g.validator.Validate(row)
			results[i] = rowResult{record: rec, reasons: reasons}
		}
	}

	// Merge index-tagged results back in input order
	valid := make([]contracts.TransactionRecord, 0, len(rows))
	rejected := make([]contracts.RejectedRow, 0)
	for i, res := range results {
		if res.record != nil {
			valid = append(valid, *res.record)
			continue
		}
		rejected = append(rejected, contracts.RejectedRow{
			RowIndex: i + 1,
			Reasons:  res.reasons,
		})
	}

	g.logger.WithFields(map[string]interface{}{
		"total":    len(rows),
		"valid":    len(valid),
		"rejected": len(rejected),
	}).Info("Batch validation completed")

	return valid, rejected
}

// processParallel fans rows out to workers. Each worker writes only its own
// result slots, so no locking is needed and the merge stays deterministic.
func (g *Gatekeeper) processParallel(ctx context.Context, rows []contracts.RawRow, results []rowResult) {
	indexes := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < g.config.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				rec, reasons := g.validator.Validate(rows[i])
				results[i] = rowResult{record: rec, reasons: reasons}
			}
		}()
	}

	for i := range rows {
		indexes <- i
	}
	close(indexes)
	wg.Wait()
}
