package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/databanq/dqscore/internal/api"
	"github.com/databanq/dqscore/internal/api/handlers"
	"github.com/databanq/dqscore/internal/contracts"
	"github.com/databanq/dqscore/internal/pipeline"
	"github.com/databanq/dqscore/internal/report"
	"github.com/databanq/dqscore/pkg/config"
	"github.com/databanq/dqscore/pkg/database"
	"github.com/databanq/dqscore/pkg/logger"
	"github.com/databanq/dqscore/pkg/redis"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the quality API server",
	Long: `Starts the REST API server.

Endpoints:
  GET  /health                      - Health check
  POST /api/quality/check           - Score a submitted batch
  GET  /api/quality/reports/latest  - Latest batch report
  GET  /api/quality/reports/{id}    - Batch report by id

Example:
  go run ./cmd/dqscore serve
  go run ./cmd/dqscore serve --port 8080`,
	RunE: runServe,
}

var servePort string

func init() {
	rootCmd.AddCommand(serveCmd)

	// Flags
	serveCmd.Flags().StringVar(&servePort, "port", "", "API server port")
}

func runServe(cmd *cobra.Command, args []string) error {
	fmt.Println("=== dqscore API Server ===")

	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if servePort != "" {
		cfg.Port = servePort
	}

	// 2. Initialize logger
	log := logger.New(cfg)

	log.WithFields(map[string]interface{}{
		"port": cfg.Port,
		"env":  cfg.Env,
	}).Info("Initializing API server")

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

	// 4. Connect to Redis (optional)
	redisClient, err := redis.New(cfg)
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	defer redisClient.Close()
	cache := redis.NewCache(redisClient, "dqscore")

	// 5. Build the pipeline
	runner, err := pipeline.New(cfg.Quality, log)
	if err != nil {
		return fmt.Errorf("build pipeline: %w", err)
	}

	// 6. Create handler and router
	qualityHandler := handlers.NewQualityHandler(runner, store, cache, log)
	router := api.NewRouter(qualityHandler, log)

	// 7. Create server
	server := api.New(cfg, log, router)

	// 8. Start server with graceful shutdown
	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	log.Info("API server started successfully")
	fmt.Printf("\nServer running on http://localhost:%s\n", cfg.Port)
	fmt.Println("\nAvailable endpoints:")
	fmt.Println("  GET  /health")
	fmt.Println("  POST /api/quality/check")
	fmt.Println("  GET  /api/quality/reports/latest")
	fmt.Println("  GET  /api/quality/reports/{id}")
	fmt.Println("\nPress Ctrl+C to stop")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
