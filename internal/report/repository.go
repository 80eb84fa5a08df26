// Package report persists batch quality reports.
package report

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/databanq/dqscore/internal/contracts"
)

// ErrNotFound is returned when no report matches the query
var ErrNotFound = errors.New("report not found")

// Repository stores one row per scored batch in
// quality.batch_reports. Histogram and dimension results live in JSONB
// columns; the scalar figures are first-class columns so operators can
// query them directly.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a report repository
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Save inserts a batch report. Re-saving the same batch updates it.
func (r *Repository) Save(ctx context.Context, report *contracts.BatchReport) error {
	histogram, err := json.Marshal(report.ReasonHistogram)
	if err != nil {
		return fmt.Errorf("marshal reason histogram: %w", err)
	}
	dimensions, err := json.Marshal(report.Dimensions)
	if err != nil {
		return fmt.Errorf("marshal dimensions: %w", err)
	}

	query := `
		INSERT INTO quality.batch_reports (
			batch_id, source, generated_at, total_rows, failed_rows,
			reason_histogram, penalty_score, dimensions, final_dqs
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (batch_id) DO UPDATE SET
			source = EXCLUDED.source,
			generated_at = EXCLUDED.generated_at,
			total_rows = EXCLUDED.total_rows,
			failed_rows = EXCLUDED.failed_rows,
			reason_histogram = EXCLUDED.reason_histogram,
			penalty_score = EXCLUDED.penalty_score,
			dimensions = EXCLUDED.dimensions,
			final_dqs = EXCLUDED.final_dqs,
			updated_at = NOW()
	`

	_, err = r.pool.Exec(ctx, query,
		report.BatchID,
		report.Source,
		report.GeneratedAt,
		report.TotalRows,
		report.FailedRows,
		histogram,
		report.PenaltyScore,
		dimensions,
		report.FinalDQS,
	)
	if err != nil {
		return fmt.Errorf("save batch report: %w", err)
	}

	return nil
}

// GetByID retrieves one report by its batch id
func (r *Repository) GetByID(ctx context.Context, batchID string) (*contracts.BatchReport, error) {
	query := `
		SELECT
			batch_id, source, generated_at, total_rows, failed_rows,
			reason_histogram, penalty_score, dimensions, final_dqs
		FROM quality.batch_reports
		WHERE batch_id = $1
	`
	return r.scanOne(r.pool.QueryRow(ctx, query, batchID))
}

// Latest retrieves the most recently generated report
func (r *Repository) Latest(ctx context.Context) (*contracts.BatchReport, error) {
	query := `
		SELECT
			batch_id, source, generated_at, total_rows, failed_rows,
			reason_histogram, penalty_score, dimensions, final_dqs
		FROM quality.batch_reports
		ORDER BY generated_at DESC
		LIMIT 1
	`
	return r.scanOne(r.pool.QueryRow(ctx, query))
}

func (r *Repository) scanOne(row pgx.Row) (*contracts.BatchReport, error) {
	var report contracts.BatchReport
	var histogram, dimensions []byte

	err := row.Scan(
		&report.BatchID,
		&report.Source,
		&report.GeneratedAt,
		&report.TotalRows,
		&report.FailedRows,
		&histogram,
		&report.PenaltyScore,
		&dimensions,
		&report.FinalDQS,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get batch report: %w", err)
	}

	if err := json.Unmarshal(histogram, &report.ReasonHistogram); err != nil {
		return nil, fmt.Errorf("unmarshal reason histogram: %w", err)
	}
	if err := json.Unmarshal(dimensions, &report.Dimensions); err != nil {
		return nil, fmt.Errorf("unmarshal dimensions: %w", err)
	}

	return &report, nil
}
