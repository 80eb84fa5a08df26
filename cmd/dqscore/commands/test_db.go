package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/databanq/dqscore/pkg/config"
	"github.com/databanq/dqscore/pkg/database"
)

// testDBCmd represents the test-db command
var testDBCmd = &cobra.Command{
	Use:   "test-db",
	Short: "Test the PostgreSQL connection",
	Long: `Tests the database connection and shows pool statistics.

This command:
- Loads DATABASE_URL from config
- Creates a database connection
- Runs a ping test
- Shows connection pool statistics

Example:
  go run ./cmd/dqscore test-db
  go run ./cmd/dqscore test-db --env production`,
	RunE: runTestDB,
}

func init() {
	rootCmd.AddCommand(testDBCmd)
}

func runTestDB(cmd *cobra.Command, args []string) error {
	fmt.Println("=== dqscore Database Connection Test ===")

	// Load configuration
	fmt.Println("Loading configuration...")
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if !cfg.Database.Enabled {
		return fmt.Errorf("DATABASE_URL is not set")
	}
	fmt.Printf("Config loaded (ENV: %s)\n", cfg.Env)
	fmt.Printf("   Database URL: %s\n\n", maskPassword(cfg.Database.URL))

	// Create database connection
	fmt.Println("Connecting to database...")
	db, err := database.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()
	fmt.Println("Database connection established")

	// Check connection
	fmt.Println("Testing connection (Ping)...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.Ping(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	fmt.Println("Ping successful")

	// Pool statistics
	stats := db.Stats()
	fmt.Println("\nConnection Pool Statistics:")
	fmt.Printf("   Max Connections: %d\n", stats.MaxConns)
	fmt.Printf("   Total Connections: %d\n", stats.TotalConns)
	fmt.Printf("   Acquired Connections: %d\n", stats.AcquiredConns)
	fmt.Printf("   Idle Connections: %d\n", stats.IdleConns)
	fmt.Printf("   Acquire Count: %d\n", stats.AcquireCount)

	fmt.Println("\nAll tests passed!")
	return nil
}

// maskPassword masks the password in the database URL for display
func maskPassword(url string) string {
	if len(url) < 55 {
		if len(url) < 30 {
			return "***"
		}
		return url[:30] + "***"
	}
	return url[:30] + "***" + url[len(url)-25:]
}
