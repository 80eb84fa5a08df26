package contracts

import (
	"math"
	"time"
)

// ErrorKind classifies a row-scoped validation failure
type ErrorKind string

const (
	ErrFormat       ErrorKind = "format_error"        // type/shape coercion failure
	ErrRange        ErrorKind = "range_error"         // value outside allowed bounds
	ErrEnum         ErrorKind = "enum_error"          // value not in allowed set
	ErrBalanceLogic ErrorKind = "balance_logic_error" // cross-field arithmetic mismatch
)

// FieldError is one field-scoped validation failure within a row.
// Expected/Actual are only set for balance-logic errors.
type FieldError struct {
	Field    string    `json:"field"`
	Kind     ErrorKind `json:"kind"`
	Message  string    `json:"message"`
	Expected *float64  `json:"expected,omitempty"`
	Actual   *float64  `json:"actual,omitempty"`
}

// RejectedRow records one input row that failed contract validation,
// with its 1-based position in the input and every reason it failed.
type RejectedRow struct {
	RowIndex int          `json:"row_index"`
	Reasons  []FieldError `json:"reasons"`
}

// DimensionResult is the outcome of one dimension agent run
type DimensionResult struct {
	Dimension string             `json:"dimension"`
	Score     float64            `json:"score"` // 0 ~ 100
	Issues    []string           `json:"issues,omitempty"`
	Details   map[string]float64 `json:"details,omitempty"`
}

// PenaltyPolicy is the additive scoring convention shared by the error
// aggregator and every dimension agent: start from Base, deduct
// PerViolation per flagged item, floor at zero. It is passed explicitly
// into each call so tests can vary it without shared state.
type PenaltyPolicy struct {
	Base         float64 `json:"base"`
	PerViolation float64 `json:"per_violation"`
}

// DefaultPenaltyPolicy returns the standard 100-base, 5-per-violation policy
func DefaultPenaltyPolicy() PenaltyPolicy {
	return PenaltyPolicy{Base: 100, PerViolation: 5}
}

// Apply computes the score for the given number of violations
func (p PenaltyPolicy) Apply(violations int) float64 {
	score := p.Base - float64(violations)*p.PerViolation
	if score < 0 {
		return 0
	}
	return score
}

// Round2 rounds a score to two decimal places for reporting
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// BatchReport is the full quality report for one scored batch
type BatchReport struct {
	BatchID     string    `json:"batch_id"`
	Source      string    `json:"source,omitempty"`
	GeneratedAt time.Time `json:"generated_at"`

	TotalRows  int `json:"total_rows"`
	FailedRows int `json:"failed_rows"`

	// ReasonHistogram maps exact rejection message to the ordered row
	// indices it occurred at.
	ReasonHistogram map[string][]int `json:"reason_histogram"`

	// PenaltyScore is the coarse row-count based score from the error
	// aggregator. It is reported alongside FinalDQS, never folded into it.
	PenaltyScore float64 `json:"penalty_score"`

	Dimensions []DimensionResult `json:"dimensions"`
	FinalDQS   float64           `json:"final_dqs"`
}

// Dimension returns the result for a named dimension, if present
func (r *BatchReport) Dimension(name string) (DimensionResult, bool) {
	for _, d := range r.Dimensions {
		if d.Dimension == name {
			return d, true
		}
	}
	return DimensionResult{}, false
}
