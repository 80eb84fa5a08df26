package ingest

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/databanq/dqscore/internal/contracts"
	"github.com/databanq/dqscore/pkg/logger"
)

// CSVSource reads a header-keyed CSV file into raw rows. Every cell stays
// a string; typing and validation happen downstream in the record
// contract.
type CSVSource struct {
	path   string
	logger *logger.Logger
}

// NewCSVSource creates a CSV row source for the given file
func NewCSVSource(path string, log *logger.Logger) *CSVSource {
	return &CSVSource{path: path, logger: log}
}

// Rows reads the whole file. An unreadable file or header is fatal; a
// short or ragged data row is not — it becomes a sparse raw row and the
// contract rejects it field by field.
func (s *CSVSource) Rows(ctx context.Context) ([]contracts.RawRow, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, &FatalInputError{Source: s.path, Err: err}
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // ragged rows reach the contract, not an abort

	header, err := reader.Read()
	if err != nil {
		return nil, &FatalInputError{Source: s.path, Err: fmt.Errorf("read header: %w", err)}
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var rows []contracts.RawRow
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		cells, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &FatalInputError{Source: s.path, Err: err}
		}

		row := make(contracts.RawRow, len(header))
		for i, name := range header {
			if i < len(cells) {
				row[name] = cells[i]
			}
		}
		rows = append(rows, row)
	}

	s.logger.WithFields(map[string]interface{}{
		"path": s.path,
		"rows": len(rows),
	}).Info("CSV batch loaded")

	return rows, nil
}
