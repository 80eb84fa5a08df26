package contract

import "github.com/databanq/dqscore/internal/contracts"

func missingErr(field string) *contracts.FieldError {
	return &contracts.FieldError{
		Field:   field,
		Kind:    contracts.ErrFormat,
		Message: field + " is required",
	}
}

func formatErr(field, msg string) *contracts.FieldError {
	return &contracts.FieldError{Field: field, Kind: contracts.ErrFormat, Message: msg}
}

func rangeErr(field, msg string) *contracts.FieldError {
	return &contracts.FieldError{Field: field, Kind: contracts.ErrRange, Message: msg}
}

func enumErr(field, msg string) *contracts.FieldError {
	return &contracts.FieldError{Field: field, Kind: contracts.ErrEnum, Message: msg}
}

func balanceErr(expected, actual float64) *contracts.FieldError {
	return &contracts.FieldError{
		Field:    "total_balance_after",
		Kind:     contracts.ErrBalanceLogic,
		Message:  "total_balance_after does not match txn_type and amount",
		Expected: &expected,
		Actual:   &actual,
	}
}
