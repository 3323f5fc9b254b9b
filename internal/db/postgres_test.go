package db

import (
	"testing"
	"time"

	"github.com/yigit/gradtracker/internal/config"
)

func TestPoolConfig(t *testing.T) {
	cfg := &config.Config{}
	cfg.Database.URL = "postgres://user:pw@db.internal:6543/grads?sslmode=disable"
	cfg.Database.MaxConns = 8
	cfg.Database.MinConns = 3
	cfg.Database.ConnMaxLifetime = "15m"

	pc, err := PoolConfig(cfg)
	if err != nil {
		t.Fatalf("PoolConfig() error: %v", err)
	}

	if pc.ConnConfig.Host != "db.internal" || pc.ConnConfig.Port != 6543 {
		t.Errorf("host/port = %s:%d", pc.ConnConfig.Host, pc.ConnConfig.Port)
	}
	if pc.ConnConfig.Database != "grads" {
		t.Errorf("database = %q", pc.ConnConfig.Database)
	}
	if pc.MaxConns != 8 || pc.MinConns != 3 {
		t.Errorf("MaxConns/MinConns = %d/%d", pc.MaxConns, pc.MinConns)
	}
	if pc.MaxConnLifetime != 15*time.Minute {
		t.Errorf("MaxConnLifetime = %v", pc.MaxConnLifetime)
	}
}

func TestPoolConfig_IdleAboveMaxIgnored(t *testing.T) {
	cfg := &config.Config{}
	cfg.Database.URL = "postgres://u:p@localhost:5432/x"
	cfg.Database.MaxConns = 2
	cfg.Database.MinConns = 5

	pc, err := PoolConfig(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if pc.MinConns != 0 {
		t.Errorf("MinConns = %d, want 0", pc.MinConns)
	}
	if pc.MaxConnLifetime != time.Hour {
		t.Errorf("MaxConnLifetime = %v, want default 1h", pc.MaxConnLifetime)
	}
}

func TestPoolConfig_InvalidURL(t *testing.T) {
	cfg := &config.Config{}
	cfg.Database.URL = "postgres://%zz"
	if _, err := PoolConfig(cfg); err == nil {
		t.Fatal("expected parse error")
	}
}
