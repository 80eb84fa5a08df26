package contracts

import "time"

// CustomerView is the customer-facing projection of a validated record.
// Its field set is an enumerated allow-list: anything not listed here must
// never appear, including fields added to TransactionRecord later.
type CustomerView struct {
	TxnID            string    `json:"txn_id"`
	TxnDatetime      time.Time `json:"txn_datetime"`
	AccountNumber    string    `json:"account_number"` // pre-masked upstream
	CustomerName     string    `json:"customer_name"`
	Amount           float64   `json:"amount"`
	MerchantName     string    `json:"merchant_name"`
	MerchantCategory string    `json:"merchant_category"`
	MerchantCity     string    `json:"merchant_city"`
	MerchantCountry  string    `json:"merchant_country"`
}

// EmployeeView is the employee-facing projection: every canonical record
// field plus operational extensions. It is a distinct structure, not a
// subtype of TransactionRecord, so it is never substitutable for one.
type EmployeeView struct {
	TxnID       string    `json:"txn_id"`
	TxnDatetime time.Time `json:"txn_datetime"`

	AccountNumber string  `json:"account_number"`
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

	// Operational extensions, absent from the canonical record
	BranchCode  string `json:"branch_code,omitempty"`
	ProductCode string `json:"product_code,omitempty"`
}
