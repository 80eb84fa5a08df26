package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/databanq/dqscore/internal/contracts"
)

// testRow returns a row that passes every contract rule
func testRow() contracts.RawRow {
	return contracts.RawRow{
		"txn_id":               "TXN0001",
		"txn_datetime":         "2025-12-10 10:00:00",
		"account_number":       "XXXXXX9999",
		"customer_id":          "CUST01",
		"customer_name":        "Test User",
		"age":                  "30",
		"gender":               "M",
		"monthly_income":       "50000",
		"total_balance_before": "80000",
		"total_balance_after":  "75000",
		"txn_type":             "CARD",
		"amount":               "5000",
		"merchant_id":          "MERCH1",
		"merchant_name":        "Test Store",
		"merchant_category":    "GROCERY",
		"merchant_city":        "Mumbai",
		"merchant_country":     "in",
		"is_fraud":             "0",
	}
}

func TestValidator_ValidRow(t *testing.T) {
	v := NewValidator(DefaultConfig())

	rec, errs := v.Validate(testRow())
	require.Empty(t, errs)
	require.NotNil(t, rec)

	assert.Equal(t, "TXN0001", rec.TxnID)
	assert.Equal(t, contracts.TxnCard, rec.TxnType)
	assert.Equal(t, 30, rec.Age)
	assert.Equal(t, contracts.GenderMale, rec.Gender)
	assert.Equal(t, 5000.0, rec.Amount)
	assert.Equal(t, 2025, rec.TxnDatetime.Year())

	// Successful validation normalizes the country code
	assert.Equal(t, "IN", rec.MerchantCountry)
}

func TestValidator_AgeOutOfRange(t *testing.T) {
	v := NewValidator(DefaultConfig())

	row := testRow()
	row["age"] = "15"

	rec, errs := v.Validate(row)
	assert.Nil(t, rec)
	require.Len(t, errs, 1, "only the age error should be reported")
	assert.Equal(t, "age", errs[0].Field)
	assert.Equal(t, contracts.ErrRange, errs[0].Kind)
}

func TestValidator_BalanceLogic(t *testing.T) {
	v := NewValidator(DefaultConfig())

	tests := []struct {
		name    string
		txnType string
		before  string
		amount  string
		after   string
		wantOK  bool
	}{
		{"debit exact match", "CARD", "80000", "5000", "75000", true},
		{"debit within tolerance", "UPI", "80000", "5000", "75001", true},
		{"debit outside tolerance", "CARD", "80000", "5000", "76000", false},
		{"credit exact match", "NEFT", "80000", "5000", "85000", true},
		{"credit outside tolerance", "NEFT", "80000", "5000", "80000", false},
		{"cash out", "CASH_OUT", "1000", "999", "1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := testRow()
			row["txn_type"] = tt.txnType
			row["total_balance_before"] = tt.before
			row["amount"] = tt.amount
			row["total_balance_after"] = tt.after
			if tt.txnType == "NEFT" {
				row["merchant_category"] = "SALARY"
			}

			rec, errs := v.Validate(row)
			if tt.wantOK {
				assert.Empty(t, errs)
				assert.NotNil(t, rec)
				return
			}

			require.Len(t, errs, 1)
			assert.Equal(t, contracts.ErrBalanceLogic, errs[0].Kind)
			assert.Equal(t, "total_balance_after", errs[0].Field)
			require.NotNil(t, errs[0].Expected)
			require.NotNil(t, errs[0].Actual)
		})
	}
}

func TestValidator_BalanceCheckSkippedWhenPrerequisiteFails(t *testing.T) {
	v := NewValidator(DefaultConfig())

	// amount=0 fails its own rule; the cross-field check must defer to it
	// rather than pile on a balance error
	row := testRow()
	row["amount"] = "0"
	row["total_balance_after"] = "-1000"

	rec, errs := v.Validate(row)
	assert.Nil(t, rec)
	require.Len(t, errs, 1)
	assert.Equal(t, "amount", errs[0].Field)
	assert.Equal(t, contracts.ErrRange, errs[0].Kind)
}

func TestValidator_CollectsAllFieldErrors(t *testing.T) {
	v := NewValidator(DefaultConfig())

	row := testRow()
	row["age"] = "15"
	row["gender"] = "X"
	row["total_balance_after"] = "99999"

	rec, errs := v.Validate(row)
	assert.Nil(t, rec)
	require.Len(t, errs, 3)

	fields := make([]string, 0, len(errs))
	for _, e := range errs {
		fields = append(fields, e.Field)
	}
	assert.Equal(t, []string{"age", "gender", "total_balance_after"}, fields)
}

func TestValidator_FieldRules(t *testing.T) {
	v := NewValidator(DefaultConfig())

	tests := []struct {
		name     string
		field    string
		value    string
		wantKind contracts.ErrorKind
	}{
		{"missing txn_id", "txn_id", "", contracts.ErrFormat},
		{"txn_id too long", "txn_id", "AAAAAAAAAAAAAAAAAAAAA", contracts.ErrFormat},
		{"bad datetime", "txn_datetime", "not-a-date", contracts.ErrFormat},
		{"unmasked account", "account_number", "1234567890", contracts.ErrFormat},
		{"short customer name", "customer_name", "ab", contracts.ErrFormat},
		{"age not a number", "age", "thirty", contracts.ErrFormat},
		{"age too high", "age", "101", contracts.ErrRange},
		{"bad gender", "gender", "U", contracts.ErrEnum},
		{"zero income", "monthly_income", "0", contracts.ErrRange},
		{"bad txn type", "txn_type", "RTGS", contracts.ErrEnum},
		{"long country", "merchant_country", "IND", contracts.ErrFormat},
		{"is_fraud out of range", "is_fraud", "2", contracts.ErrRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := testRow()
			row[tt.field] = tt.value

			rec, errs := v.Validate(row)
			assert.Nil(t, rec)
			require.NotEmpty(t, errs)
			assert.Equal(t, tt.field, errs[0].Field)
			assert.Equal(t, tt.wantKind, errs[0].Kind)
		})
	}
}

func TestValidator_ConfigurableTolerance(t *testing.T) {
	v := NewValidator(Config{BalanceTolerance: 100})

	row := testRow()
	row["total_balance_after"] = "75050" // off by 50, within the widened tolerance

	rec, errs := v.Validate(row)
	assert.Empty(t, errs)
	assert.NotNil(t, rec)
}

func TestValidator_Idempotent(t *testing.T) {
	v := NewValidator(DefaultConfig())
	row := testRow()
	row["age"] = "15"

	_, first := v.Validate(row)
	_, second := v.Validate(row)
	assert.Equal(t, first, second)
}
