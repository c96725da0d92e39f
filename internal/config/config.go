package config

import (
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type StoreKind string

const (
	StoreSQLite StoreKind = "sqlite"
	StoreRedis  StoreKind = "redis"
	StoreMemory StoreKind = "memory"
)

type Config struct {
	Store       StoreKind `env:"INVSTRAR_STORE"        envDefault:"sqlite"`
	SQLitePath  string    `env:"INVSTRAR_SQLITE_PATH"  envDefault:"invstrar.db"`
	RedisAddr   string    `env:"INVSTRAR_REDIS_ADDR"   envDefault:"localhost:6379"`
	RedisPrefix string    `env:"INVSTRAR_REDIS_PREFIX" envDefault:"invstrar:"`
	// MySQLDSN enables the backup archive; it must include parseTime=true.
	MySQLDSN string `env:"INVSTRAR_MYSQL_DSN"`

	LowStockThreshold  int           `env:"INVSTRAR_LOW_STOCK_THRESHOLD"  envDefault:"30"`
	SampleData         bool          `env:"INVSTRAR_SAMPLE_DATA"          envDefault:"true"`
	AutoBackupInterval time.Duration `env:"INVSTRAR_AUTO_BACKUP_INTERVAL" envDefault:"1h"`
	ArchiveWorkers     int           `env:"INVSTRAR_ARCHIVE_WORKERS"      envDefault:"2"`
	ArchiveQueueSize   int           `env:"INVSTRAR_ARCHIVE_QUEUE_SIZE"   envDefault:"16"`
	Output             string        `env:"INVSTRAR_OUTPUT"               envDefault:"text"`
}

// Load reads an optional .env file, then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file loaded, using the process environment")
	}
	return Parse()
}

func Parse() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Store {
	case StoreSQLite, StoreRedis, StoreMemory:
	default:
		return fmt.Errorf("unknown store %q (want sqlite, redis or memory)", c.Store)
	}
	if c.Output != "text" && c.Output != "json" {
		return fmt.Errorf("unknown output %q (want text or json)", c.Output)
	}
	if c.LowStockThreshold <= 0 {
		return fmt.Errorf("low stock threshold must be positive, got %d", c.LowStockThreshold)
	}
	if c.AutoBackupInterval <= 0 {
		return fmt.Errorf("auto backup interval must be positive, got %s", c.AutoBackupInterval)
	}
	if c.ArchiveWorkers <= 0 {
		c.ArchiveWorkers = 1
	}
	if c.ArchiveQueueSize < 0 {
		c.ArchiveQueueSize = 0
	}
	return nil
}
