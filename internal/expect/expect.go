// Package expect runs declarative column expectations over a raw batch.
// It is a coarse, schema-level cross-check that runs beside the record
// contract: the contract judges rows, expectations judge columns.
package expect

import (
	"context"
	"fmt"
	"strconv"

	"github.com/databanq/dqscore/internal/contracts"
	"github.com/databanq/dqscore/pkg/logger"
)

// Expectation is one column-level assertion over a raw batch
type Expectation struct {
	// Name identifies the expectation in results, e.g.
	// "txn_id_not_null"
	Name  string
	Check func(rows []contracts.RawRow) CheckResult
}

// CheckResult is the outcome of one expectation
type CheckResult struct {
	Success      bool    `json:"success"`
	FailedCount  int     `json:"failed_count"`
	ObservedRate float64 `json:"observed_rate"` // share of rows passing, 0..1
}

// SuiteResult collects every expectation outcome for a batch
type SuiteResult struct {
	Results map[string]CheckResult `json:"results"`
	Failed  int                    `json:"failed"`
}

// Suite is an ordered set of expectations
type Suite struct {
	expectations []Expectation
	logger       *logger.Logger
}

// NewSuite creates an empty expectation suite
func NewSuite(log *logger.Logger) *Suite {
	return &Suite{logger: log}
}

// Add appends an expectation
func (s *Suite) Add(e Expectation) *Suite {
	s.expectations = append(s.expectations, e)
	return s
}

// Run evaluates every expectation. Expectations never abort a run; they
// report.
func (s *Suite) Run(ctx context.Context, rows []contracts.RawRow) SuiteResult {
	out := SuiteResult{Results: make(map[string]CheckResult, len(s.expectations))}

	for _, e := range s.expectations {
		res := e.Check(rows)
		out.Results[e.Name] = res
		if !res.Success {
			out.Failed++
			s.logger.WithFields(map[string]interface{}{
				"expectation": e.Name,
				"failed_rows": res.FailedCount,
			}).Warn("Expectation failed")
		}
	}

	return out
}

func result(total, failed int) CheckResult {
	rate := 1.0
	if total > 0 {
		rate = float64(total-failed) / float64(total)
	}
	return CheckResult{Success: failed == 0, FailedCount: failed, ObservedRate: rate}
}

// NotNull expects every row to carry a non-empty value for the column
func NotNull(column string) Expectation {
	return Expectation{
		Name: column + "_not_null",
		Check: func(rows []contracts.RawRow) CheckResult {
			failed := 0
			for _, row := range rows {
				if row[column] == "" {
					failed++
				}
			}
			return result(len(rows), failed)
		},
	}
}

// Unique expects no two rows to share a value for the column. Empty
// values are left to NotNull.
func Unique(column string) Expectation {
	return Expectation{
		Name: column + "_unique",
		Check: func(rows []contracts.RawRow) CheckResult {
			counts := make(map[string]int, len(rows))
			for _, row := range rows {
				if v := row[column]; v != "" {
					counts[v]++
				}
			}
			failed := 0
			for _, row := range rows {
				if v := row[column]; v != "" && counts[v] > 1 {
					failed++
				}
			}
			return result(len(rows), failed)
		},
	}
}

// Between expects the column to parse as a number within [min, max].
// Unparseable values fail.
func Between(column string, min, max float64) Expectation {
	return Expectation{
		Name: fmt.Sprintf("%s_between_%g_%g", column, min, max),
		Check: func(rows []contracts.RawRow) CheckResult {
			failed := 0
			for _, row := range rows {
				v, err := strconv.ParseFloat(row[column], 64)
				if err != nil || v < min || v > max {
					failed++
				}
			}
			return result(len(rows), failed)
		},
	}
}

// InSet expects every value of the column to be one of the allowed
// values
func InSet(column string, allowed ...string) Expectation {
	set := make(map[string]bool, len(allowed))
	for _, v := range allowed {
		set[v] = true
	}
	return Expectation{
		Name: column + "_in_set",
		Check: func(rows []contracts.RawRow) CheckResult {
			failed := 0
			for _, row := range rows {
				if !set[row[column]] {
					failed++
				}
			}
			return result(len(rows), failed)
		},
	}
}

// TransactionSuite is the standard expectation suite for transaction
// batches
func TransactionSuite(log *logger.Logger) *Suite {
	return NewSuite(log).
		Add(NotNull("txn_id")).
		Add(Unique("txn_id")).
		Add(NotNull("customer_id")).
		Add(NotNull("txn_datetime")).
		Add(Between("age", 18, 100)).
		Add(Between("amount", 0.01, 10000000)).
		Add(InSet("txn_type", contracts.AllTxnTypes()...)).
		Add(InSet("gender", "M", "F", "O")).
		Add(InSet("is_fraud", "0", "1"))
}
