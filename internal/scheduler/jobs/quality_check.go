// Package jobs contains the scheduled job implementations.
package jobs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/databanq/dqscore/internal/contracts"
	"github.com/databanq/dqscore/internal/ingest"
	"github.com/databanq/dqscore/internal/pipeline"
	"github.com/databanq/dqscore/pkg/logger"
)

// InboxScanJob scores every CSV batch dropped into the inbox directory
// and moves scored files to the processed directory. A file that fails to
// ingest stays in the inbox for the next pass.
type InboxScanJob struct {
	runner       *pipeline.Runner
	store        contracts.ReportStore // nil when persistence is disabled
	inboxDir     string
	processedDir string
	schedule     string
	logger       *logger.Logger
}

// NewInboxScanJob creates an inbox scanning job
func NewInboxScanJob(runner *pipeline.Runner, store contracts.ReportStore, inboxDir, processedDir, schedule string, log *logger.Logger) *InboxScanJob {
	return &InboxScanJob{
		runner:       runner,
		store:        store,
		inboxDir:     inboxDir,
		processedDir: processedDir,
		schedule:     schedule,
		logger:       log,
	}
}

// Name returns the job name
func (j *InboxScanJob) Name() string {
	return "inbox_scan"
}

// Schedule returns the configured cron schedule
func (j *InboxScanJob) Schedule() string {
	return j.schedule
}

// Run scans the inbox and scores every batch found, oldest name first
func (j *InboxScanJob) Run(ctx context.Context) error {
	entries, err := os.ReadDir(j.inboxDir)
	if err != nil {
		return fmt.Errorf("read inbox %s: %w", j.inboxDir, err)
	}

	var batches []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(strings.ToLower(e.Name()), ".csv") {
			batches = append(batches, e.Name())
		}
	}
	sort.Strings(batches)

	if len(batches) == 0 {
		j.logger.Debug("Inbox empty, nothing to score")
		return nil
	}

	if err := os.MkdirAll(j.processedDir, 0o755); err != nil {
		return fmt.Errorf("create processed dir: %w", err)
	}

	var firstErr error
	for _, name := range batches {
		if err := j.processBatch(ctx, name); err != nil {
			j.logger.WithFields(map[string]interface{}{
				"file":  name,
				"error": err.Error(),
			}).Error("Batch processing failed")
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	return firstErr
}

func (j *InboxScanJob) processBatch(ctx context.Context, name string) error {
	path := filepath.Join(j.inboxDir, name)

	source := ingest.NewCSVSource(path, j.logger)
	result, err := j.runner.Run(ctx, source, name)
	if err != nil {
		return err
	}

	if j.store != nil {
		if err := j.store.Save(ctx, result.Report); err != nil {
			return fmt.Errorf("persist report for %s: %w", name, err)
		}
	}

	if err := os.Rename(path, filepath.Join(j.processedDir, name)); err != nil {
		return fmt.Errorf("move %s to processed: %w", name, err)
	}

	j.logger.WithFields(map[string]interface{}{
		"file":      name,
		"batch_id":  result.Report.BatchID,
		"final_dqs": result.Report.FinalDQS,
	}).Info("Inbox batch scored")

	return nil
}
