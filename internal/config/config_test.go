package config

import (
	"testing"
	"time"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if cfg.Store != StoreSQLite {
		t.Errorf("expected sqlite store, got %s", cfg.Store)
	}
	if cfg.SQLitePath != "invstrar.db" {
		t.Errorf("expected invstrar.db, got %s", cfg.SQLitePath)
	}
	if cfg.LowStockThreshold != 30 {
		t.Errorf("expected threshold 30, got %d", cfg.LowStockThreshold)
	}
	if !cfg.SampleData {
		t.Error("expected sample data on by default")
	}
	if cfg.AutoBackupInterval != time.Hour {
		t.Errorf("expected 1h interval, got %s", cfg.AutoBackupInterval)
	}
	if cfg.MySQLDSN != "" {
		t.Errorf("expected no archive by default, got %s", cfg.MySQLDSN)
	}
}

func TestParse_Overrides(t *testing.T) {
	t.Setenv("INVSTRAR_STORE", "redis")
	t.Setenv("INVSTRAR_LOW_STOCK_THRESHOLD", "12")
	t.Setenv("INVSTRAR_AUTO_BACKUP_INTERVAL", "15m")
	t.Setenv("INVSTRAR_OUTPUT", "json")

	cfg, err := Parse()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Store != StoreRedis {
		t.Errorf("expected redis store, got %s", cfg.Store)
	}
	if cfg.LowStockThreshold != 12 {
		t.Errorf("expected threshold 12, got %d", cfg.LowStockThreshold)
	}
	if cfg.AutoBackupInterval != 15*time.Minute {
		t.Errorf("expected 15m, got %s", cfg.AutoBackupInterval)
	}
	if cfg.Output != "json" {
		t.Errorf("expected json output, got %s", cfg.Output)
	}
}

func TestParse_Invalid(t *testing.T) {
	cases := map[string]string{
		"INVSTRAR_STORE":               "postgres",
		"INVSTRAR_OUTPUT":              "yaml",
		"INVSTRAR_LOW_STOCK_THRESHOLD": "0",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			if _, err := Parse(); err == nil {
				t.Errorf("expected error for %s=%s", key, value)
			}
		})
	}
}
