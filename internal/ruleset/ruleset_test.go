package ruleset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRules(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeRules(t, `
rules:
  - name: large_cash_out
    dimension: validity
    expression: 'record.txn_type == "CASH_OUT" && record.amount > 100000.0'
  - name: foreign_salary
    dimension: consistency
    expression: 'record.merchant_category == "SALARY" && record.merchant_country != "IN"'
  - name: round_amount
    dimension: validity
    expression: 'record.amount == 0.0'
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Len(t, cfg.Rules, 3)

	groups := cfg.ByDimension()
	assert.Len(t, groups["validity"], 2)
	assert.Len(t, groups["consistency"], 1)
	assert.Equal(t, "large_cash_out", groups["validity"][0].Name)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown field", "rules:\n  - name: a\n    dimension: validity\n    expr: 'true'\n"},
		{"missing name", "rules:\n  - dimension: validity\n    expression: 'true'\n"},
		{"missing dimension", "rules:\n  - name: a\n    expression: 'true'\n"},
		{"missing expression", "rules:\n  - name: a\n    dimension: validity\n"},
		{"duplicate name", "rules:\n  - name: a\n    dimension: validity\n    expression: 'true'\n  - name: a\n    dimension: validity\n    expression: 'false'\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeRules(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("does-not-exist.yaml")
	assert.Error(t, err)
}
