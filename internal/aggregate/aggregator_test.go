package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/databanq/dqscore/internal/contracts"
)

func TestSummarize(t *testing.T) {
	rejected := []contracts.RejectedRow{
		{RowIndex: 2, Reasons: []contracts.FieldError{
			{Field: "age", Kind: contracts.ErrRange, Message: "age must be between 18 and 100"},
		}},
		{RowIndex: 5, Reasons: []contracts.FieldError{
			{Field: "age", Kind: contracts.ErrRange, Message: "age must be between 18 and 100"},
			{Field: "amount", Kind: contracts.ErrRange, Message: "amount must be greater than 0"},
		}},
		{RowIndex: 9, Reasons: []contracts.FieldError{
			{Field: "amount", Kind: contracts.ErrRange, Message: "amount must be greater than 0"},
		}},
	}

	histogram := Summarize(rejected)

	assert.Len(t, histogram, 2)
	assert.Equal(t, []int{2, 5}, histogram["age must be between 18 and 100"])
	// Row 5 appears under both of its distinct messages
	assert.Equal(t, []int{5, 9}, histogram["amount must be greater than 0"])
}

func TestSummarize_Empty(t *testing.T) {
	assert.Empty(t, Summarize(nil))
}

func TestPenaltyScore(t *testing.T) {
	policy := contracts.DefaultPenaltyPolicy()

	tests := []struct {
		name   string
		failed int
		policy contracts.PenaltyPolicy
		want   float64
	}{
		{"no failures", 0, policy, 100},
		{"three failures", 3, policy, 85},
		{"floored at zero", 25, policy, 0},
		{"custom policy", 4, contracts.PenaltyPolicy{Base: 50, PerViolation: 10}, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PenaltyScore(tt.failed, tt.policy))
		})
	}
}
