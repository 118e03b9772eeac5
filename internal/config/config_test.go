package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func withCreds(t *testing.T) {
	t.Helper()
	t.Setenv("BINANCE_API_KEY", "k")
	t.Setenv("BINANCE_API_SECRET", "s")
}

func TestLoad_EnvOnlyDefaults(t *testing.T) {
	withCreds(t)
	cfg, err := Load("does-not-exist.yaml", true)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.HTTPAddr != ":8080" {
		t.Fatalf("http_addr=%q", cfg.Server.HTTPAddr)
	}
	if cfg.DB.Path != "trades.db" {
		t.Fatalf("db path=%q", cfg.DB.Path)
	}
	if cfg.Binance.BaseURL != "https://api.binance.us" {
		t.Fatalf("base_url=%q", cfg.Binance.BaseURL)
	}
	if cfg.Binance.Timeout != 15*time.Second {
		t.Fatalf("timeout=%v", cfg.Binance.Timeout)
	}
	if cfg.Binance.APIKey != "k" || cfg.Binance.APISecret != "s" {
		t.Fatalf("credentials not picked up from env")
	}
}

func TestLoad_MissingCredentialsFailsFast(t *testing.T) {
	t.Setenv("BINANCE_API_KEY", "")
	t.Setenv("BINANCE_API_SECRET", "")
	if _, err := Load("does-not-exist.yaml", true); err == nil {
		t.Fatal("load must fail without venue credentials")
	}
}

func TestLoad_YamlOverridesDefaults(t *testing.T) {
	withCreds(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := "server:\n  http_addr: \":9999\"\nbinance:\n  timeout: 3s\n"
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load(path, false)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.HTTPAddr != ":9999" {
		t.Fatalf("http_addr=%q", cfg.Server.HTTPAddr)
	}
	if cfg.Binance.Timeout != 3*time.Second {
		t.Fatalf("timeout=%v", cfg.Binance.Timeout)
	}
	if cfg.Dashboard.CacheTTL != 5*time.Second {
		t.Fatalf("cache_ttl=%v want default retained", cfg.Dashboard.CacheTTL)
	}
}
