package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"dairy-billing-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const defaultSQLiteDSN = "file:dairyflow?mode=memory&cache=shared"

type Config struct {
	Port        string
	DBDriver    string // sqlite | postgres
	DatabaseURL string
	CORSOrigins []string
	SeedDemo    bool
	DBDebug     bool
}

// Load reads configuration from the environment with defaults.
// Precedence: explicit env var > .env file (loaded by main) > default.
func Load() Config {
	cfg := Config{
		Port:     getEnv("PORT", "8080"),
		DBDriver: strings.ToLower(getEnv("DB_DRIVER", "sqlite")),
		SeedDemo: parseBool("SEED_DEMO", true),
		DBDebug:  parseBool("DB_DEBUG", false),
	}
	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" && cfg.DBDriver == "sqlite" {
		cfg.DatabaseURL = defaultSQLiteDSN
	}
	for _, o := range strings.Split(getEnv("CORS_ORIGINS", "http://localhost:3000"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, o)
		}
	}
	return cfg
}

// InitDB opens the session database. The default is an in-memory sqlite
// database that lives as long as the process.
func InitDB(cfg Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "sqlite":
		dialector = sqlite.Open(cfg.DatabaseURL)
	case "postgres":
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required for the postgres driver")
		}
		dialector = postgres.Open(cfg.DatabaseURL)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	logLevel := logger.Silent
	if cfg.DBDebug {
		logLevel = logger.Info
	}
	db, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logLevel)})
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", cfg.DBDriver, err)
	}
	return db, nil
}

// Migrate creates the tables of the catalog and the ledger.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Product{},
		&models.Customer{},
		&models.Bill{},
		&models.PaymentAmendment{},
	)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			log.Printf("invalid boolean for %s: %s", key, v)
			return def
		}
		return b
	}
	return def
}
