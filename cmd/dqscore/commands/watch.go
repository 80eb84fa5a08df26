package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/databanq/dqscore/internal/contracts"
	"github.com/databanq/dqscore/internal/pipeline"
	"github.com/databanq/dqscore/internal/report"
	"github.com/databanq/dqscore/internal/scheduler"
	"github.com/databanq/dqscore/internal/scheduler/jobs"
	"github.com/databanq/dqscore/pkg/config"
	"github.com/databanq/dqscore/pkg/database"
	"github.com/databanq/dqscore/pkg/logger"
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the inbox directory for batches",
	Long: `Starts the scheduler and scores every CSV batch dropped into the
inbox directory on the configured cron schedule. Scored files move to
the processed directory.

Example:
  go run ./cmd/dqscore watch
  go run ./cmd/dqscore watch --now`,
	RunE: runWatch,
}

var watchNow bool

func init() {
	rootCmd.AddCommand(watchCmd)

	// Flags
	watchCmd.Flags().BoolVar(&watchNow, "now", false, "scan the inbox once immediately at startup")
}

func runWatch(cmd *cobra.Command, args []string) error {
	fmt.Println("=== dqscore Inbox Watcher ===")

	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Initialize logger
	log := logger.New(cfg)

	// 3. Connect to database (optional)
	var store contracts.ReportStore
	if cfg.Database.Enabled {
		db, err := database.New(cfg)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		defer db.Close()
		store = report.NewRepository(db.Pool)
		log.Info("Connected to database")
	} else {
		log.Warn("DATABASE_URL not set, reports will not be persisted")
	}

	// 4. Build the pipeline
	runner, err := pipeline.New(cfg.Quality, log)
	if err != nil {
		return fmt.Errorf("build pipeline: %w", err)
	}

	// 5. Register the inbox job
	sched := scheduler.New(log)
	job := jobs.NewInboxScanJob(runner, store,
		cfg.Scheduler.InboxDir, cfg.Scheduler.ProcessedDir, cfg.Scheduler.Spec, log)
	if err := sched.AddJob(job); err != nil {
		return fmt.Errorf("register inbox job: %w", err)
	}

	// 6. Start
	sched.Start()
	defer sched.Stop()

	if watchNow {
		if err := sched.RunJob(job.Name()); err != nil {
			return fmt.Errorf("run inbox job: %w", err)
		}
	}

	log.WithFields(map[string]interface{}{
		"inbox":    cfg.Scheduler.InboxDir,
		"schedule": cfg.Scheduler.Spec,
	}).Info("Inbox watcher started")
	fmt.Printf("\nWatching %s (schedule %q)\n", cfg.Scheduler.InboxDir, cfg.Scheduler.Spec)
	fmt.Println("Press Ctrl+C to stop")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down watcher...")
	return nil
}
