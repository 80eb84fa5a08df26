package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application. Environment
// variables are read here and nowhere else.
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Database (optional; persistence is skipped without it)
	Database DatabaseConfig

	// Redis (optional report cache)
	Redis RedisConfig

	// Quality scoring parameters
	Quality QualityConfig

	// Scheduled batch scanning
	Scheduler SchedulerConfig

	// Logging
	LogLevel  string
	LogFormat string
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	URL     string
	Enabled bool

	// Connection pool
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Enabled  bool
}

// QualityConfig holds the scoring parameters. Penalty constants and the
// balance tolerance are configuration, not code constants, so deployments
// and tests can vary them.
type QualityConfig struct {
	PenaltyBase         float64 // starting score for penalty-based figures
	PenaltyPerViolation float64 // flat deduction per violation
	BalanceTolerance    float64 // currency units
	TimelinessHorizon   string  // YYYY-MM-DD cutoff for future-dated rows; empty = run time
	RulesPath           string  // optional CEL rules file
	GateWorkers         int     // concurrent validation workers; <=1 is sequential
}

// SchedulerConfig holds the inbox-scanning job configuration
type SchedulerConfig struct {
	InboxDir     string
	ProcessedDir string
	Spec         string // cron expression with seconds field
}

// Load reads configuration from environment variables. Only this function
// calls os.Getenv.
func Load() (*Config, error) {
	loadEnvFile()

	dbURL := getEnv("DATABASE_URL", "")

	cfg := &Config{
		Port: getEnv("PORT", "8085"),
		Env:  getEnv("ENV", "development"),

		Database: DatabaseConfig{
			URL:             dbURL,
			Enabled:         dbURL != "",
			MaxConns:        getEnvAsInt("DB_MAX_CONNS", 10),
			MinConns:        getEnvAsInt("DB_MIN_CONNS", 2),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", "1h"),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", "30m"),
		},

		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
		},

		Quality: QualityConfig{
			PenaltyBase:         getEnvAsFloat("QUALITY_PENALTY_BASE", 100),
			PenaltyPerViolation: getEnvAsFloat("QUALITY_PENALTY_PER_VIOLATION", 5),
			BalanceTolerance:    getEnvAsFloat("QUALITY_BALANCE_TOLERANCE", 1),
			TimelinessHorizon:   getEnv("QUALITY_TIMELINESS_HORIZON", ""),
			RulesPath:           getEnv("QUALITY_RULES_PATH", ""),
			GateWorkers:         getEnvAsInt("QUALITY_GATE_WORKERS", 1),
		},

		Scheduler: SchedulerConfig{
			InboxDir:     getEnv("SCHEDULER_INBOX_DIR", "inbox"),
			ProcessedDir: getEnv("SCHEDULER_PROCESSED_DIR", "processed"),
			Spec:         getEnv("SCHEDULER_SPEC", "0 0 * * * *"), // hourly
		},

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks configuration invariants
func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if c.Quality.PenaltyBase <= 0 {
		return fmt.Errorf("QUALITY_PENALTY_BASE must be positive")
	}
	if c.Quality.PenaltyPerViolation < 0 {
		return fmt.Errorf("QUALITY_PENALTY_PER_VIOLATION must not be negative")
	}
	if c.Quality.BalanceTolerance < 0 {
		return fmt.Errorf("QUALITY_BALANCE_TOLERANCE must not be negative")
	}

	if c.Quality.TimelinessHorizon != "" {
		if _, err := time.Parse("2006-01-02", c.Quality.TimelinessHorizon); err != nil {
			return fmt.Errorf("QUALITY_TIMELINESS_HORIZON must be YYYY-MM-DD: %w", err)
		}
	}

	return nil
}

// loadEnvFile tries to load .env from a few likely locations
func loadEnvFile() {
	paths := []string{".env"}

	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}
