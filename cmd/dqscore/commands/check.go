package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/databanq/dqscore/internal/ingest"
	"github.com/databanq/dqscore/internal/pipeline"
	"github.com/databanq/dqscore/internal/report"
	"github.com/databanq/dqscore/pkg/config"
	"github.com/databanq/dqscore/pkg/database"
	"github.com/databanq/dqscore/pkg/logger"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <file.csv>",
	Short: "Score one CSV batch",
	Long: `Validates and scores a single transaction batch from a CSV file.

This command:
- Validates every row against the record contract
- Scores the batch across all quality dimensions
- Prints the full batch report as JSON

Example:
  go run ./cmd/dqscore check batch.csv
  go run ./cmd/dqscore check batch.csv --rules rules.yaml --save`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

var (
	checkRulesPath string
	checkWorkers   int
	checkSave      bool
)

func init() {
	rootCmd.AddCommand(checkCmd)

	// Flags
	checkCmd.Flags().StringVar(&checkRulesPath, "rules", "", "CEL rules file (overrides QUALITY_RULES_PATH)")
	checkCmd.Flags().IntVar(&checkWorkers, "workers", 0, "validation workers (overrides QUALITY_GATE_WORKERS)")
	checkCmd.Flags().BoolVar(&checkSave, "save", false, "persist the report to the database")
}

func runCheck(cmd *cobra.Command, args []string) error {
	path := args[0]

	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if checkRulesPath != "" {
		cfg.Quality.RulesPath = checkRulesPath
	}
	if checkWorkers > 0 {
		cfg.Quality.GateWorkers = checkWorkers
	}

	// 2. Initialize logger
	log := logger.New(cfg)

	// 3. Build the pipeline
	runner, err := pipeline.New(cfg.Quality, log)
	if err != nil {
		return fmt.Errorf("build pipeline: %w", err)
	}

	// 4. Score the batch
	source := ingest.NewCSVSource(path, log)
	result, err := runner.Run(cmd.Context(), source, filepath.Base(path))
	if err != nil {
		return fmt.Errorf("score batch: %w", err)
	}

	// 5. Optionally persist
	if checkSave {
		if !cfg.Database.Enabled {
			return fmt.Errorf("--save requires DATABASE_URL")
		}
		db, err := database.New(cfg)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		defer db.Close()

		store := report.NewRepository(db.Pool)
		if err := store.Save(cmd.Context(), result.Report); err != nil {
			return fmt.Errorf("persist report: %w", err)
		}
		log.WithField("batch_id", result.Report.BatchID).Info("Report persisted")
	}

	// 6. Print the report
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	return nil
}
