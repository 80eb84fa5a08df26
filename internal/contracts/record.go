package contracts

import "time"

// RawRow is one input row as parsed from a tabular source, keyed by the
// canonical field names. Values are untyped strings until the record
// contract has coerced them.
type RawRow map[string]string

// Gender is the declared customer gender code
type Gender string

const (
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
	GenderOther  Gender = "O"
)

// IsValid reports whether the gender code is one of the allowed values
func (g Gender) IsValid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// TxnType is the transaction channel/type code
type TxnType string

const (
	TxnUPI      TxnType = "UPI"
	TxnCard     TxnType = "CARD"
	TxnNEFT     TxnType = "NEFT"
	TxnCashOut  TxnType = "CASH_OUT"
	TxnTransfer TxnType = "TRANSFER"
)

// IsValid reports whether the transaction type is one of the allowed values
func (t TxnType) IsValid() bool {
	switch t {
	case TxnUPI, TxnCard, TxnNEFT, TxnCashOut, TxnTransfer:
		return true
	}
	return false
}

// IsDebit reports whether the type debits the account balance
func (t TxnType) IsDebit() bool {
	switch t {
	case TxnUPI, TxnCard, TxnCashOut, TxnTransfer:
		return true
	}
	return false
}

// IsCredit reports whether the type credits the account balance
func (t TxnType) IsCredit() bool {
	return t == TxnNEFT
}

// AllTxnTypes lists every allowed transaction type code
func AllTxnTypes() []string {
	return []string{
		string(TxnUPI),
		string(TxnCard),
		string(TxnNEFT),
		string(TxnCashOut),
		string(TxnTransfer),
	}
}

// TransactionRecord is the canonical validated transaction entity.
// Instances are only produced by the record contract; downstream stages
// treat them as immutable values.
type TransactionRecord struct {
	TxnID       string    `json:"txn_id"`
	TxnDatetime time.Time `json:"txn_datetime"`

	AccountNumber string  `json:"account_number"` // masked: XXXXXX then 4 digits
	CustomerID    string  `json:"customer_id"`
	CustomerName  string  `json:"customer_name"`
	Age           int     `json:"age"`
	Gender        Gender  `json:"gender"`
	MonthlyIncome float64 `json:"monthly_income"`

	TotalBalanceBefore float64 `json:"total_balance_before"`
	TotalBalanceAfter  float64 `json:"total_balance_after"`
	TxnType            TxnType `json:"txn_type"`
	Amount             float64 `json:"amount"`

	MerchantID       string `json:"merchant_id"`
	MerchantName     string `json:"merchant_name"`
	MerchantCategory string `json:"merchant_category"`
	MerchantCity     string `json:"merchant_city"`
	MerchantCountry  string `json:"merchant_country"`

	IsFraud int `json:"is_fraud"`
}

// ExpectedBalanceAfter returns the post-transaction balance implied by the
// transaction type and amount
func (r *TransactionRecord) ExpectedBalanceAfter() float64 {
	if r.TxnType.IsCredit() {
		return r.TotalBalanceBefore + r.Amount
	}
	return r.TotalBalanceBefore - r.Amount
}

// RecordFields lists the canonical field names in input order
func RecordFields() []string {
	return []string{
		"txn_id", "txn_datetime", "account_number", "customer_id",
		"customer_name", "age", "gender", "monthly_income",
		"total_balance_before", "total_balance_after", "txn_type", "amount",
		"merchant_id", "merchant_name", "merchant_category", "merchant_city",
		"merchant_country", "is_fraud",
	}
}
