package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	configFile string
	env        string
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "dqscore",
	Short: "Data quality scoring for transaction batches",
	Long: `dqscore - transaction batch quality scoring

Validates banking transaction batches against the record contract,
scores them across quality dimensions, and produces a batch report.

Usage:
  go run ./cmd/dqscore [command]

Examples:
  go run ./cmd/dqscore check batch.csv
  go run ./cmd/dqscore serve
  go run ./cmd/dqscore watch
  go run ./cmd/dqscore test-db
  go run ./cmd/dqscore test-logger`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is .env)")
	rootCmd.PersistentFlags().StringVar(&env, "env", "development", "environment (development|staging|production)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
