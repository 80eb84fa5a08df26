package metrics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/databanq/dqscore/internal/contracts"
	"github.com/databanq/dqscore/pkg/logger"
)

func testRow(txnID string) contracts.RawRow {
	return contracts.RawRow{
		"txn_id":               txnID,
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
		"merchant_country":     "IN",
		"is_fraud":             "0",
	}
}

func testHorizon() time.Time {
	return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
}

func TestCalculator_CleanBatch(t *testing.T) {
	calc := NewCalculator(testHorizon(), logger.NewNop())

	rows := []contracts.RawRow{testRow("T1"), testRow("T2"), testRow("T3")}
	m := calc.Compute(context.Background(), rows)

	assert.Equal(t, 3, m.TotalRows)
	assert.Equal(t, 0, m.TotalMissingCells)
	assert.Equal(t, 0, m.DuplicateRows)
	assert.Empty(t, m.DuplicateTxnIDs)
	assert.Empty(t, m.FutureDated)
	assert.Empty(t, m.InvalidTxnTypes)
	assert.Empty(t, m.MissingCustomerID)
}

func TestCalculator_NullCounts(t *testing.T) {
	calc := NewCalculator(testHorizon(), logger.NewNop())

	r1 := testRow("T1")
	r1["amount"] = ""
	r2 := testRow("T2")
	r2["amount"] = "  "
	r2["customer_id"] = ""

	m := calc.Compute(context.Background(), []contracts.RawRow{r1, r2})

	assert.Equal(t, 3, m.TotalMissingCells)
	assert.Equal(t, 2, m.NullCounts["amount"])
	assert.Equal(t, 1, m.NullCounts["customer_id"])

	require.Len(t, m.MissingCustomerID, 1)
	assert.Equal(t, 2, m.MissingCustomerID[0].RowIndex)
	assert.Equal(t, "T2", m.MissingCustomerID[0].TxnID)
}

func TestCalculator_Duplicates(t *testing.T) {
	calc := NewCalculator(testHorizon(), logger.NewNop())

	rows := []contracts.RawRow{testRow("T1"), testRow("T1"), testRow("T2")}
	m := calc.Compute(context.Background(), rows)

	// Both members of the identical pair count as duplicates
	assert.Equal(t, 2, m.DuplicateRows)
	assert.Equal(t, []int{1, 2}, m.DuplicateTxnIDs["T1"])
	assert.NotContains(t, m.DuplicateTxnIDs, "T2")
}

func TestCalculator_FutureDated(t *testing.T) {
	calc := NewCalculator(testHorizon(), logger.NewNop())

	late := testRow("T9")
	late["txn_datetime"] = "2026-06-01 09:00:00"

	m := calc.Compute(context.Background(), []contracts.RawRow{testRow("T1"), late})

	require.Len(t, m.FutureDated, 1)
	assert.Equal(t, "T9", m.FutureDated[0].TxnID)
	assert.Equal(t, 2, m.FutureDated[0].RowIndex)
}

func TestCalculator_InvalidTxnType(t *testing.T) {
	calc := NewCalculator(testHorizon(), logger.NewNop())

	bad := testRow("T2")
	bad["txn_type"] = "RTGS"

	m := calc.Compute(context.Background(), []contracts.RawRow{testRow("T1"), bad})

	require.Len(t, m.InvalidTxnTypes, 1)
	assert.Equal(t, "T2", m.InvalidTxnTypes[0].TxnID)
}

func TestRowRef_IssueID(t *testing.T) {
	withID := contracts.RowRef{RowIndex: 3, TxnID: "T3"}
	assert.Equal(t, "T3", withID.IssueID())

	withoutID := contracts.RowRef{RowIndex: 7}
	assert.Equal(t, "row:7", withoutID.IssueID())
}
