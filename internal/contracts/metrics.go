package contracts

import "fmt"

// RowRef points at one raw input row, by 1-based index and, when the row
// carried one, its txn_id.
type RowRef struct {
	RowIndex int    `json:"row_index"`
	TxnID    string `json:"txn_id,omitempty"`
}

// IssueID returns a stable identifier for issue lists: the txn_id when the
// row has one, otherwise a positional id.
func (r RowRef) IssueID() string {
	if r.TxnID != "" {
		return r.TxnID
	}
	return fmt.Sprintf("row:%d", r.RowIndex)
}

// DatasetMetrics holds dataset-wide aggregates computed over the raw input
// in a single pass. They feed the timeliness, uniqueness and integrity
// agents and are reported for diagnostics.
type DatasetMetrics struct {
	TotalRows         int            `json:"total_rows"`
	TotalMissingCells int            `json:"total_missing_cells"`
	NullCounts        map[string]int `json:"null_counts"`

	DuplicateRows   int              `json:"duplicate_rows"`
	DuplicateTxnIDs map[string][]int `json:"duplicate_txn_ids,omitempty"` // txn_id -> row indices

	FutureDated       []RowRef `json:"future_dated,omitempty"`
	InvalidTxnTypes   []RowRef `json:"invalid_txn_types,omitempty"`
	MissingCustomerID []RowRef `json:"missing_customer_id,omitempty"`
}
