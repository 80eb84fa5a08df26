package contract

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/databanq/dqscore/internal/contracts"
)

// accountPattern is the masked account shape: six mask characters then
// four digits, e.g. XXXXXX9999
var accountPattern = regexp.MustCompile(`^X{6}[0-9]{4}$`)

// datetimeLayouts are the accepted txn_datetime formats, tried in order
var datetimeLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// Config holds record contract parameters
type Config struct {
	// BalanceTolerance is the allowed absolute difference between the
	// reported and the implied post-transaction balance, in currency units.
	BalanceTolerance float64
}

// DefaultConfig returns the standard contract parameters
func DefaultConfig() Config {
	return Config{BalanceTolerance: 1.0}
}

// Validator enforces the full validity envelope of a single raw row.
// Validate is a pure function of the input row: no state, no side effects.
type Validator struct {
	config Config
}

// NewValidator creates a validator with the given parameters
func NewValidator(config Config) *Validator {
	return &Validator{config: config}
}

// Validate coerces and checks every field of a raw row. It returns either a
// fully-typed record, or every field-scoped error the row carries — a row
// with a bad age and a bad balance reports both.
//
// Field rules run independently. The cross-field balance check runs last
// and only when total_balance_before, amount, txn_type and
// total_balance_after all passed their own checks, so a bad prerequisite
// never gets masked by a confusing secondary balance error.
func (v *Validator) Validate(row contracts.RawRow) (*contracts.TransactionRecord, []contracts.FieldError) {
	var rec contracts.TransactionRecord
	var errs []contracts.FieldError

	passed := make(map[string]bool)
	fail := func(e *contracts.FieldError) {
		if e != nil {
			errs = append(errs, *e)
		}
	}

	rec.TxnID, _ = checkString(row, "txn_id", 1, 20, fail)

	if raw, ok := present(row, "txn_datetime"); !ok {
		fail(missingErr("txn_datetime"))
	} else if ts, err := ParseDatetime(raw); err != nil {
		fail(formatErr("txn_datetime", "txn_datetime is not a valid timestamp"))
	} else {
		rec.TxnDatetime = ts
	}

	if raw, ok := present(row, "account_number"); !ok {
		fail(missingErr("account_number"))
	} else if !accountPattern.MatchString(raw) {
		fail(formatErr("account_number", "account_number must match the masked pattern XXXXXX9999"))
	} else {
		rec.AccountNumber = raw
	}

	rec.CustomerID, _ = checkString(row, "customer_id", 1, 20, fail)
	rec.CustomerName, _ = checkString(row, "customer_name", 3, 80, fail)

	if age, ok := checkInt(row, "age", fail); ok {
		if age < 18 || age > 100 {
			fail(rangeErr("age", "age must be between 18 and 100"))
		} else {
			rec.Age = age
		}
	}

	if raw, ok := present(row, "gender"); !ok {
		fail(missingErr("gender"))
	} else if g := contracts.Gender(raw); !g.IsValid() {
		fail(enumErr("gender", "gender must be one of M, F, O"))
	} else {
		rec.Gender = g
	}

	if income, ok := checkFloat(row, "monthly_income", fail); ok {
		if income <= 0 {
			fail(rangeErr("monthly_income", "monthly_income must be greater than 0"))
		} else {
			rec.MonthlyIncome = income
		}
	}

	if before, ok := checkFloat(row, "total_balance_before", fail); ok {
		rec.TotalBalanceBefore = before
		passed["total_balance_before"] = true
	}

	balanceAfterOK := false
	if after, ok := checkFloat(row, "total_balance_after", fail); ok {
		rec.TotalBalanceAfter = after
		balanceAfterOK = true
	}

	if raw, ok := present(row, "txn_type"); !ok {
		fail(missingErr("txn_type"))
	} else if t := contracts.TxnType(raw); !t.IsValid() {
		fail(enumErr("txn_type", "txn_type must be one of "+strings.Join(contracts.AllTxnTypes(), ", ")))
	} else {
		rec.TxnType = t
		passed["txn_type"] = true
	}

	if amount, ok := checkFloat(row, "amount", fail); ok {
		if amount <= 0 {
			fail(rangeErr("amount", "amount must be greater than 0"))
		} else {
			rec.Amount = amount
			passed["amount"] = true
		}
	}

	rec.MerchantID, _ = checkString(row, "merchant_id", 1, 20, fail)
	rec.MerchantName, _ = checkString(row, "merchant_name", 2, 80, fail)
	rec.MerchantCategory, _ = checkString(row, "merchant_category", 2, 40, fail)
	rec.MerchantCity, _ = checkString(row, "merchant_city", 2, 40, fail)

	if raw, ok := present(row, "merchant_country"); !ok {
		fail(missingErr("merchant_country"))
	} else if len(raw) != 2 {
		fail(formatErr("merchant_country", "merchant_country must be a 2-letter code"))
	} else {
		// Normalized as a side effect of successful validation
		rec.MerchantCountry = strings.ToUpper(raw)
	}

	if fraud, ok := checkInt(row, "is_fraud", fail); ok {
		if fraud != 0 && fraud != 1 {
			fail(rangeErr("is_fraud", "is_fraud must be 0 or 1"))
		} else {
			rec.IsFraud = fraud
		}
	}

	// Cross-field balance check, gated on its prerequisites
	if passed["total_balance_before"] && passed["amount"] && passed["txn_type"] && balanceAfterOK {
		expected := rec.ExpectedBalanceAfter()
		if math.Abs(expected-rec.TotalBalanceAfter) > v.config.BalanceTolerance {
			fail(balanceErr(expected, rec.TotalBalanceAfter))
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return &rec, nil
}

// present returns the trimmed raw value and whether the field is non-empty
func present(row contracts.RawRow, field string) (string, bool) {
	raw, ok := row[field]
	raw = strings.TrimSpace(raw)
	return raw, ok && raw != ""
}

func checkString(row contracts.RawRow, field string, minLen, maxLen int, fail func(*contracts.FieldError)) (string, bool) {
	raw, ok := present(row, field)
	if !ok {
		fail(missingErr(field))
		return "", false
	}
	if n := len(raw); n < minLen || n > maxLen {
		fail(formatErr(field, fmt.Sprintf("%s must be %d-%d characters", field, minLen, maxLen)))
		return "", false
	}
	return raw, true
}

func checkInt(row contracts.RawRow, field string, fail func(*contracts.FieldError)) (int, bool) {
	raw, ok := present(row, field)
	if !ok {
		fail(missingErr(field))
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		fail(formatErr(field, field+" is not a valid integer"))
		return 0, false
	}
	return n, true
}

func checkFloat(row contracts.RawRow, field string, fail func(*contracts.FieldError)) (float64, bool) {
	raw, ok := present(row, field)
	if !ok {
		fail(missingErr(field))
		return 0, false
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		fail(formatErr(field, field+" is not a valid number"))
		return 0, false
	}
	return f, true
}

// ParseDatetime parses a raw txn_datetime value, trying each accepted
// layout in order
func ParseDatetime(raw string) (time.Time, error) {
	for _, layout := range datetimeLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", raw)
}
