package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	// Pricing engine tunables.
	AdjustPer10kKm float64 // price adjustment per 10,000 km vs market average
	MaxComparables int     // query cap for comparable lookups

	// Sale-time simulator tunables.
	BaseSaleDays    float64 // assumed days-to-sell with no data at all
	DaysPerPctOver  float64 // extra days per 1% above market
	DaysPerPctUnder float64 // days removed per 1% below market
	MinSaleDays     float64

	// Batch writes during normalization are chunked to this many rows.
	WriteBatchSize int

	MaxConcurrency int
	MaxRetries     int

	CSVSnapshotPath string
	MetricsAddr     string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "dealer"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "dealer123"),
		PostgresDB:       getEnv("POSTGRES_DB", "dealer_db"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),

		AdjustPer10kKm: getEnvFloat("ADJUST_PER_10K_KM", 50000),
		MaxComparables: getEnvInt("MAX_COMPARABLES", 100),

		BaseSaleDays:    getEnvFloat("BASE_SALE_DAYS", 45),
		DaysPerPctOver:  getEnvFloat("DAYS_PER_PCT_OVER", 1.0),
		DaysPerPctUnder: getEnvFloat("DAYS_PER_PCT_UNDER", 1.5),
		MinSaleDays:     getEnvFloat("MIN_SALE_DAYS", 3),

		WriteBatchSize: getEnvInt("WRITE_BATCH_SIZE", 25),

		MaxConcurrency: getEnvInt("MAX_CONCURRENCY", 3),
		MaxRetries:     getEnvInt("MAX_RETRIES", 3),

		CSVSnapshotPath: getEnv("CSV_SNAPSHOT_PATH", "./output/raw_snapshot.csv"),
		MetricsAddr:     getEnv("METRICS_ADDR", ""),
	}
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if val := os.Getenv(key); val != "" {
		f, err := strconv.ParseFloat(val, 64)
		if err == nil {
			return f
		}
	}
	return fallback
}
