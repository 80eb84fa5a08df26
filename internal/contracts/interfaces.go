package contracts

import "context"

// AgentInput is the uniform input handed to every dimension agent once the
// gatekeeper has finalized the valid set.
type AgentInput struct {
	Valid     []TransactionRecord
	TotalRows int
	Metrics   *DatasetMetrics // nil when dataset aggregates were not computed
}

// Agent scores one quality dimension. Implementations must be pure:
// order-independent, side-effect-free, and stable across repeated runs on
// the same input.
type Agent interface {
	Name() string
	Run(ctx context.Context, in AgentInput) (DimensionResult, error)
}

// RowSource yields the raw rows of one batch. A source that cannot be read
// returns a FatalInputError; row-level problems are never its concern.
type RowSource interface {
	Rows(ctx context.Context) ([]RawRow, error)
}

// ReportStore persists batch reports
type ReportStore interface {
	Save(ctx context.Context, report *BatchReport) error
	GetByID(ctx context.Context, batchID string) (*BatchReport, error)
	Latest(ctx context.Context) (*BatchReport, error)
}
