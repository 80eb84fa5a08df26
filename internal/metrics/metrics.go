package metrics

import (
	"context"
	"strings"
	"time"

	"github.com/databanq/dqscore/internal/contract"
	"github.com/databanq/dqscore/internal/contracts"
	"github.com/databanq/dqscore/pkg/logger"
)

// Calculator computes dataset-wide aggregates over the raw rows of a
// batch: missing cells, duplicates, future-dated rows, invalid enum values
// and missing customer ids. It is the in-process stand-in for a columnar
// analytics collaborator and feeds the timeliness, uniqueness and
// integrity agents.
type Calculator struct {
	horizon time.Time
	logger  *logger.Logger
}

// NewCalculator creates a calculator. Rows dated strictly after horizon
// count as future-dated.
func NewCalculator(horizon time.Time, log *logger.Logger) *Calculator {
	return &Calculator{
		horizon: horizon,
		logger:  log,
	}
}

// Compute aggregates the whole batch in two passes over the raw rows: one
// to index duplicate keys, one to collect everything else.
func (c *Calculator) Compute(ctx context.Context, rows []contracts.RawRow) *contracts.DatasetMetrics {
	m := &contracts.DatasetMetrics{
		TotalRows:       len(rows),
		NullCounts:      make(map[string]int),
		DuplicateTxnIDs: make(map[string][]int),
	}

	fields := contracts.RecordFields()

	rowKeys := make(map[string]int, len(rows))
	txnIDRows := make(map[string][]int)
	for i, row := range rows {
		rowKeys[rowKey(row, fields)]++
		if id := strings.TrimSpace(row["txn_id"]); id != "" {
			txnIDRows[id] = append(txnIDRows[id], i+1)
		}
	}

	for i, row := range rows {
		ref := contracts.RowRef{RowIndex: i + 1, TxnID: strings.TrimSpace(row["txn_id"])}

		for _, field := range fields {
			if strings.TrimSpace(row[field]) == "" {
				m.NullCounts[field]++
				m.TotalMissingCells++
			}
		}

		if rowKeys[rowKey(row, fields)] > 1 {
			m.DuplicateRows++
		}

		if raw := strings.TrimSpace(row["txn_datetime"]); raw != "" {
			if ts, err := contract.ParseDatetime(raw); err == nil && ts.After(c.horizon) {
				m.FutureDated = append(m.FutureDated, ref)
			}
		}

		if raw := strings.TrimSpace(row["txn_type"]); raw != "" {
			if !contracts.TxnType(raw).IsValid() {
				m.InvalidTxnTypes = append(m.InvalidTxnTypes, ref)
			}
		}

		if strings.TrimSpace(row["customer_id"]) == "" {
			m.MissingCustomerID = append(m.MissingCustomerID, ref)
		}
	}

	for id, indices := range txnIDRows {
		if len(indices) > 1 {
			m.DuplicateTxnIDs[id] = indices
		}
	}

	c.logger.WithFields(map[string]interface{}{
		"rows":           m.TotalRows,
		"missing_cells":  m.TotalMissingCells,
		"duplicate_rows": m.DuplicateRows,
		"future_dated":   len(m.FutureDated),
	}).Debug("Computed dataset metrics")

	return m
}

// rowKey builds a duplicate-detection key from the canonical fields in a
// fixed order, so row identity does not depend on map iteration
func rowKey(row contracts.RawRow, fields []string) string {
	var b strings.Builder
	for _, f := range fields {
		b.WriteString(strings.TrimSpace(row[f]))
		b.WriteByte('\x1f')
	}
	return b.String()
}
