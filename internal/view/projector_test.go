package view

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/databanq/dqscore/internal/contracts"
)

func testRecord() contracts.TransactionRecord {
	return contracts.TransactionRecord{
		TxnID:              "T1",
		TxnDatetime:        time.Date(2025, 12, 10, 10, 0, 0, 0, time.UTC),
		AccountNumber:      "XXXXXX9999",
		CustomerID:         "CUST01",
		CustomerName:       "Test User",
		Age:                30,
		Gender:             contracts.GenderFemale,
		MonthlyIncome:      50000,
		TotalBalanceBefore: 80000,
		TotalBalanceAfter:  75000,
		TxnType:            contracts.TxnCard,
		Amount:             5000,
		MerchantID:         "MERCH1",
		MerchantName:       "Test Store",
		MerchantCategory:   "GROCERY",
		MerchantCity:       "Mumbai",
		MerchantCountry:    "IN",
		IsFraud:            1,
	}
}

func jsonKeys(t *testing.T, v interface{}) map[string]struct{} {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &m))
	keys := make(map[string]struct{}, len(m))
	for k := range m {
		keys[k] = struct{}{}
	}
	return keys
}

func TestForCustomer(t *testing.T) {
	rec := testRecord()
	cv := ForCustomer(&rec)

	assert.Equal(t, "T1", cv.TxnID)
	assert.Equal(t, 5000.0, cv.Amount)
	assert.Equal(t, "Test Store", cv.MerchantName)
}

func TestForCustomer_AllowListOnly(t *testing.T) {
	rec := testRecord()
	keys := jsonKeys(t, ForCustomer(&rec))

	want := []string{
		"txn_id", "txn_datetime", "account_number", "customer_name",
		"amount", "merchant_name", "merchant_category", "merchant_city",
		"merchant_country",
	}
	assert.Len(t, keys, len(want))
	for _, k := range want {
		assert.Contains(t, keys, k)
	}

	// Sensitive and operational fields must never serialize
	for _, k := range []string{"is_fraud", "monthly_income", "customer_id", "age", "gender", "total_balance_before", "total_balance_after"} {
		assert.NotContains(t, keys, k)
	}
}

func TestForEmployee(t *testing.T) {
	rec := testRecord()
	ev := ForEmployee(&rec, Operational{BranchCode: "BR042", ProductCode: "SAV"})

	assert.Equal(t, "CUST01", ev.CustomerID)
	assert.Equal(t, 1, ev.IsFraud)
	assert.Equal(t, "BR042", ev.BranchCode)
	assert.Equal(t, "SAV", ev.ProductCode)

	keys := jsonKeys(t, ev)
	assert.Contains(t, keys, "is_fraud")
	assert.Contains(t, keys, "monthly_income")
	assert.Contains(t, keys, "branch_code")
}

func TestForEmployee_OmitsEmptyOperationalFields(t *testing.T) {
	rec := testRecord()
	keys := jsonKeys(t, ForEmployee(&rec, Operational{}))

	assert.NotContains(t, keys, "branch_code")
	assert.NotContains(t, keys, "product_code")
}
