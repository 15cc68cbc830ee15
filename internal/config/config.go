package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/spec-kit/casegen/pkg/util"
)

// Config aggregates runtime configuration for the generator.
type Config struct {
	App       AppConfig
	Generator GeneratorConfig
	Export    ExportConfig
	Postgres  PostgresConfig
	Redis     RedisConfig
	Logger    LoggerConfig
}

// AppConfig identifies the run in logs.
type AppConfig struct {
	Name string
	Env  string
}

// GeneratorConfig controls record synthesis.
type GeneratorConfig struct {
	CaseCount          int
	Seed               int64
	IDBase             int64
	OutlierProbability float64
}

// ExportConfig controls where the dataset and report go.
type ExportConfig struct {
	CSVPath    string
	XLSXPath   string
	SampleRows int
	TopIssues  int
}

// PostgresConfig holds DB connection values. An empty DSN disables the sink.
type PostgresConfig struct {
	DSN           string
	MaxConns      int32
	MinConns      int32
	RunMigrations bool
	MigrationsDir string
}

// RedisConfig holds Redis connection values. An empty Addr disables the cache.
type RedisConfig struct {
	Addr              string
	Password          string
	DB                int
	SummaryTTLSeconds int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level      string
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, util.NewConfigurationError("invalid REDIS_DB", map[string]any{"error": err.Error()})
	}

	outlierProbability, err := strconv.ParseFloat(getEnv("GEN_OUTLIER_PROBABILITY", "0.05"), 64)
	if err != nil {
		return nil, util.NewConfigurationError("invalid GEN_OUTLIER_PROBABILITY", map[string]any{"error": err.Error()})
	}

	cfg := &Config{
		App: AppConfig{
			Name: getEnv("APP_NAME", "casegen"),
			Env:  getEnv("APP_ENV", "development"),
		},
		Generator: GeneratorConfig{
			CaseCount:          getEnvAsInt("GEN_CASE_COUNT", 1200),
			Seed:               getEnvAsInt64("GEN_SEED", 42),
			IDBase:             getEnvAsInt64("GEN_ID_BASE", 1880000),
			OutlierProbability: outlierProbability,
		},
		Export: ExportConfig{
			CSVPath:    getEnv("EXPORT_CSV_PATH", "data/synthetic_case_data.csv"),
			XLSXPath:   os.Getenv("EXPORT_XLSX_PATH"),
			SampleRows: getEnvAsInt("EXPORT_SAMPLE_ROWS", 5),
			TopIssues:  getEnvAsInt("EXPORT_TOP_ISSUES", 5),
		},
		Postgres: PostgresConfig{
			DSN:           os.Getenv("POSTGRES_DSN"),
			MaxConns:      int32(getEnvAsInt("POSTGRES_MAX_CONNS", 4)),
			MinConns:      int32(getEnvAsInt("POSTGRES_MIN_CONNS", 1)),
			RunMigrations: getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			MigrationsDir: getEnv("POSTGRES_MIGRATIONS_DIR", "migrations"),
		},
		Redis: RedisConfig{
			Addr:              os.Getenv("REDIS_ADDR"),
			Password:          os.Getenv("REDIS_PASSWORD"),
			DB:                redisDB,
			SummaryTTLSeconds: getEnvAsInt("REDIS_SUMMARY_TTL_SECONDS", 86400),
		},
		Logger: LoggerConfig{
			Level:      getEnv("LOG_LEVEL", "info"),
			File:       os.Getenv("LOG_FILE"),
			MaxSizeMB:  getEnvAsInt("LOG_MAX_SIZE_MB", 10),
			MaxBackups: getEnvAsInt("LOG_MAX_BACKUPS", 3),
			MaxAgeDays: getEnvAsInt("LOG_MAX_AGE_DAYS", 7),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the generator cannot run with.
func (c *Config) Validate() error {
	if c.Generator.CaseCount < 0 {
		return util.NewConfigurationError("case count must not be negative",
			map[string]any{"case_count": c.Generator.CaseCount})
	}
	if c.Generator.OutlierProbability < 0 || c.Generator.OutlierProbability > 1 {
		return util.NewConfigurationError("outlier probability must be within [0, 1]",
			map[string]any{"outlier_probability": c.Generator.OutlierProbability})
	}
	if c.Export.CSVPath == "" {
		return util.NewConfigurationError("csv output path cannot be empty", nil)
	}
	if c.Export.SampleRows < 0 || c.Export.TopIssues < 0 {
		return util.NewConfigurationError("report row limits must not be negative",
			map[string]any{"sample_rows": c.Export.SampleRows, "top_issues": c.Export.TopIssues})
	}
	return nil
}

// SummaryTTL returns the Redis expiry for cached summaries; zero means no expiry.
func (r RedisConfig) SummaryTTL() time.Duration {
	if r.SummaryTTLSeconds <= 0 {
		return 0
	}
	return time.Duration(r.SummaryTTLSeconds) * time.Second
}

// String summarizes the config for logs without credentials.
func (c *Config) String() string {
	return fmt.Sprintf("cases=%d seed=%d csv=%s xlsx=%q postgres=%t redis=%t",
		c.Generator.CaseCount, c.Generator.Seed, c.Export.CSVPath, c.Export.XLSXPath,
		c.Postgres.DSN != "", c.Redis.Addr != "")
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsInt64(key string, fallback int64) int64 {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
