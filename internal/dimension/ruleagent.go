package dimension

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/cel-go/cel"

	"github.com/databanq/dqscore/internal/contracts"
	"github.com/databanq/dqscore/internal/ruleset"
	"github.com/databanq/dqscore/pkg/logger"
)

// RuleAgent evaluates operator-defined CEL expressions against every valid
// record and scores one dimension from the matches. It lets deployments
// add quality heuristics (including extra dimensions) without code
// changes.
type RuleAgent struct {
	dimension string
	rules     []compiledRule
	policy    contracts.PenaltyPolicy
	logger    *logger.Logger
}

type compiledRule struct {
	name    string
	program cel.Program
}

// NewRuleAgent compiles the rules for one dimension. Compilation failures
// are configuration errors and surface immediately.
func NewRuleAgent(dimension string, rules []ruleset.Rule, policy contracts.PenaltyPolicy, log *logger.Logger) (*RuleAgent, error) {
	env, err := cel.NewEnv(cel.Variable("record", cel.DynType))
	if err != nil {
		return nil, fmt.Errorf("create CEL environment: %w", err)
	}

	compiled := make([]compiledRule, 0, len(rules))
	for _, r := range rules {
		ast, issues := env.Compile(r.Expression)
		if issues != nil && issues.Err() != nil {
			return nil, fmt.Errorf("rule %q: compile error: %w", r.Name, issues.Err())
		}

		// Cost limit guards against runaway expressions from config
		prog, err := env.Program(ast, cel.CostLimit(1000000))
		if err != nil {
			return nil, fmt.Errorf("rule %q: program creation error: %w", r.Name, err)
		}

		compiled = append(compiled, compiledRule{name: r.Name, program: prog})
	}

	return &RuleAgent{
		dimension: dimension,
		rules:     compiled,
		policy:    policy,
		logger:    log,
	}, nil
}

// Name returns the dimension this agent's rules contribute to
func (a *RuleAgent) Name() string { return a.dimension }

// Run evaluates every rule against every valid record. Each match is one
// violation; non-boolean results count as no match, and evaluation errors
// are logged and skipped so one bad record cannot abort the dimension.
func (a *RuleAgent) Run(ctx context.Context, in contracts.AgentInput) (contracts.DimensionResult, error) {
	var issues []string
	violations := 0

	for _, rec := range in.Valid {
		facts := map[string]interface{}{"record": recordFacts(&rec)}

		for _, rule := range a.rules {
			out, _, err := rule.program.Eval(facts)
			if err != nil {
				a.logger.WithFields(map[string]interface{}{
					"rule":   rule.name,
					"txn_id": rec.TxnID,
					"error":  err.Error(),
				}).Warn("Rule evaluation failed")
				continue
			}

			if matched, ok := out.Value().(bool); ok && matched {
				issues = append(issues, rec.TxnID)
				violations++
			}
		}
	}

	return contracts.DimensionResult{
		Dimension: a.dimension,
		Score:     a.policy.Apply(violations),
		Issues:    dedupe(issues),
	}, nil
}

// recordFacts exposes a validated record to CEL under its canonical field
// names
func recordFacts(rec *contracts.TransactionRecord) map[string]interface{} {
	return map[string]interface{}{
		"txn_id":               rec.TxnID,
		"txn_datetime":         rec.TxnDatetime,
		"account_number":       rec.AccountNumber,
		"customer_id":          rec.CustomerID,
		"customer_name":        rec.CustomerName,
		"age":                  rec.Age,
		"gender":               string(rec.Gender),
		"monthly_income":       rec.MonthlyIncome,
		"total_balance_before": rec.TotalBalanceBefore,
		"total_balance_after":  rec.TotalBalanceAfter,
		"txn_type":             string(rec.TxnType),
		"amount":               rec.Amount,
		"merchant_id":          rec.MerchantID,
		"merchant_name":        rec.MerchantName,
		"merchant_category":    rec.MerchantCategory,
		"merchant_city":        rec.MerchantCity,
		"merchant_country":     rec.MerchantCountry,
		"is_fraud":             rec.IsFraud,
	}
}

// dedupe keeps one issue entry per txn_id even when several rules match
// the same record, sorted for stable output
func dedupe(ids []string) []string {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}
