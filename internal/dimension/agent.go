package dimension

// Baseline dimension names. Rule-driven agents may add more.
const (
	DimAccuracy     = "accuracy"
	DimCompleteness = "completeness"
	DimConsistency  = "consistency"
	DimValidity     = "validity"
	DimTimeliness   = "timeliness"
	DimUniqueness   = "uniqueness"
	DimIntegrity    = "integrity"
)

// SalaryCategory is the merchant category expected on credit transactions
const SalaryCategory = "SALARY"

// IncomeMultiple is the implausibility threshold for the validity agent:
// transactions larger than this multiple of declared monthly income are
// flagged
const IncomeMultiple = 3.0
