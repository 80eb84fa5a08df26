package ingest

import (
	"context"
	"fmt"

	"github.com/databanq/dqscore/internal/contracts"
	"github.com/databanq/dqscore/pkg/database"
	"github.com/databanq/dqscore/pkg/logger"
)

// PostgresSource reads raw rows from the staging table. Columns come back
// as text on purpose — staging data is untrusted until the contract has
// seen it, so the database never gets to coerce types for us.
type PostgresSource struct {
	db     *database.DB
	table  string
	logger *logger.Logger
}

// NewPostgresSource creates a database row source over the given staging
// table
func NewPostgresSource(db *database.DB, table string, log *logger.Logger) *PostgresSource {
	return &PostgresSource{db: db, table: table, logger: log}
}

// Rows loads every staged row. Query failures are fatal: without rows
// there is no batch to score.
func (s *PostgresSource) Rows(ctx context.Context) ([]contracts.RawRow, error) {
	fields := contracts.RecordFields()

	query := "SELECT "
	for i, f := range fields {
		if i > 0 {
			query += ", "
		}
		query += fmt.Sprintf("COALESCE(%s::text, '')", f)
	}
	query += " FROM " + s.table + " ORDER BY ingested_at, txn_id"

	dbRows, err := s.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, &FatalInputError{Source: s.table, Err: err}
	}
	defer dbRows.Close()

	cells := make([]string, len(fields))
	scanDest := make([]interface{}, len(fields))
	for i := range cells {
		scanDest[i] = &cells[i]
	}

	var rows []contracts.RawRow
	for dbRows.Next() {
		if err := dbRows.Scan(scanDest...); err != nil {
			return nil, &FatalInputError{Source: s.table, Err: fmt.Errorf("scan row: %w", err)}
		}
		row := make(contracts.RawRow, len(fields))
		for i, f := range fields {
			row[f] = cells[i]
		}
		rows = append(rows, row)
	}
	if err := dbRows.Err(); err != nil {
		return nil, &FatalInputError{Source: s.table, Err: err}
	}

	s.logger.WithFields(map[string]interface{}{
		"table": s.table,
		"rows":  len(rows),
	}).Info("Staging batch loaded")

	return rows, nil
}
