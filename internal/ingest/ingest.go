// Package ingest turns external inputs into raw row batches.
package ingest

import "fmt"

// FatalInputError marks input that cannot be read at all — a missing
// file, an unreadable header, a dead database. It is the only condition
// that aborts a run; anything row-scoped flows through as a rejection.
type FatalInputError struct {
	Source string
	Err    error
}

func (e *FatalInputError) Error() string {
	return fmt.Sprintf("fatal input error reading %s: %v", e.Source, e.Err)
}

func (e *FatalInputError) Unwrap() error { return e.Err }
