// Package view projects validated records into audience-specific shapes.
package view

import "github.com/databanq/dqscore/internal/contracts"

// Operational carries the employee-only extension fields that do not
// exist on the canonical record.
type Operational struct {
	BranchCode  string
	ProductCode string
}

// ForCustomer projects a record onto the customer allow-list. Fields are
// copied one by one on purpose: a new record field stays invisible to
// customers until someone adds it here explicitly.
func ForCustomer(rec *contracts.TransactionRecord) contracts.CustomerView {
	return contracts.CustomerView{
		TxnID:            rec.TxnID,
		TxnDatetime:      rec.TxnDatetime,
		AccountNumber:    rec.AccountNumber,
		CustomerName:     rec.CustomerName,
		Amount:           rec.Amount,
		MerchantName:     rec.MerchantName,
		MerchantCategory: rec.MerchantCategory,
		MerchantCity:     rec.MerchantCity,
		MerchantCountry:  rec.MerchantCountry,
	}
}

// ForEmployee projects the full record plus operational extensions
func ForEmployee(rec *contracts.TransactionRecord, ops Operational) contracts.EmployeeView {
	return contracts.EmployeeView{
		TxnID:              rec.TxnID,
		TxnDatetime:        rec.TxnDatetime,
		AccountNumber:      rec.AccountNumber,
		CustomerID:         rec.CustomerID,
		CustomerName:       rec.CustomerName,
		Age:                rec.Age,
		Gender:             rec.Gender,
		MonthlyIncome:      rec.MonthlyIncome,
		TotalBalanceBefore: rec.TotalBalanceBefore,
		TotalBalanceAfter:  rec.TotalBalanceAfter,
		TxnType:            rec.TxnType,
		Amount:             rec.Amount,
		MerchantID:         rec.MerchantID,
		MerchantName:       rec.MerchantName,
		MerchantCategory:   rec.MerchantCategory,
		MerchantCity:       rec.MerchantCity,
		MerchantCountry:    rec.MerchantCountry,
		IsFraud:            rec.IsFraud,
		BranchCode:         ops.BranchCode,
		ProductCode:        ops.ProductCode,
	}
}
