package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/databanq/dqscore/pkg/config"
	"github.com/databanq/dqscore/pkg/logger"
)

// testLoggerCmd represents the test-logger command
var testLoggerCmd = &cobra.Command{
	Use:   "test-logger",
	Short: "Test structured logging",
	Long: `Exercises the structured logging setup.

This command:
- Tests JSON and console formats
- Tests log levels
- Tests structured field logging
- Tests error context logging

Example:
  go run ./cmd/dqscore test-logger
  go run ./cmd/dqscore test-logger --env production`,
	RunE: runTestLogger,
}

func init() {
	rootCmd.AddCommand(testLoggerCmd)
}

func runTestLogger(cmd *cobra.Command, args []string) error {
	fmt.Println("=== dqscore Logger Test ===")

	// Test 1: JSON Format (Production)
	fmt.Println("1. JSON Format (Production)")
	fmt.Println("--------------------------------")
	testJSONFormat()
	fmt.Println()

	// Test 2: Console Format (Development)
	fmt.Println("2. Console Format (Development)")
	fmt.Println("--------------------------------")
	testConsoleFormat()
	fmt.Println()

	// Test 3: Structured Logging
	fmt.Println("3. Structured Logging with Fields")
	fmt.Println("--------------------------------")
	testStructuredLogging()
	fmt.Println()

	// Test 4: Error Logging
	fmt.Println("4. Error Logging")
	fmt.Println("--------------------------------")
	testErrorLogging()
	fmt.Println()

	fmt.Println("All logger tests completed!")
	return nil
}

func testJSONFormat() {
	cfg := &config.Config{
		Env:       "production",
		LogLevel:  "info",
		LogFormat: "json",
	}

	log := logger.New(cfg)
	log.Info("Service started")
	log.Warn("High rejection rate detected")
	log.Error("Failed to reach report store")
}

func testConsoleFormat() {
	cfg := &config.Config{
		Env:       "development",
		LogLevel:  "debug",
		LogFormat: "console",
	}

	log := logger.New(cfg)
	log.Debug("Debugging batch flow")
	log.Info("Batch received")
	log.Warn("Cache miss, reading report from database")
}

func testStructuredLogging() {
	cfg := &config.Config{
		Env:       "production",
		LogLevel:  "info",
		LogFormat: "json",
	}

	log := logger.New(cfg)

	// Single field
	batchLog := log.WithField("batch_id", "b7f1c2a0")
	batchLog.Info("Batch scoring started")

	// Multiple fields
	scoreLog := log.WithFields(map[string]interface{}{
		"batch_id":    "b7f1c2a0",
		"total_rows":  1200,
		"failed_rows": 37,
		"final_dqs":   92.5,
	})
	scoreLog.Info("Batch scored")

	// Chained fields
	log.WithField("module", "gatekeeper").
		WithField("workers", 4).
		Info("Validation started")
}

func testErrorLogging() {
	cfg := &config.Config{
		Env:       "production",
		LogLevel:  "error",
		LogFormat: "json",
	}

	log := logger.New(cfg)

	// Simple error
	err := errors.New("connection timeout")
	log.WithError(err).Error("Failed to persist batch report")

	// Error with context
	log.WithError(err).
		WithFields(map[string]interface{}{
			"retry_count": 3,
			"timeout_ms":  5000,
			"batch_id":    "b7f1c2a0",
		}).
		Error("Persistence failed after retries")
}
