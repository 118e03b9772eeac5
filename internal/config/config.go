package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
	DB        DBConfig        `mapstructure:"db"`
	Binance   BinanceConfig   `mapstructure:"binance"`
	Cron      CronConfig      `mapstructure:"cron"`
	Dashboard DashboardConfig `mapstructure:"dashboard"`
}

type AppConfig struct {
	Env string `mapstructure:"env"`
}

type ServerConfig struct {
	HTTPAddr     string `mapstructure:"http_addr"`
	TemplateGlob string `mapstructure:"template_glob"`
}

type LogConfig struct {
	Level             string `mapstructure:"level"`
	Encoding          string `mapstructure:"encoding"`
	Development       bool   `mapstructure:"development"`
	Sampling          bool   `mapstructure:"sampling"`
	DisableCaller     bool   `mapstructure:"disable_caller"`
	DisableStacktrace bool   `mapstructure:"disable_stacktrace"`
}

type DBConfig struct {
	Path        string        `mapstructure:"path"`
	BusyTimeout time.Duration `mapstructure:"busy_timeout"`
}

// BinanceConfig carries venue connectivity. The API key and secret are
// deliberately not part of the yaml surface: they come from
// BINANCE_API_KEY / BINANCE_API_SECRET only, and both must be present.
type BinanceConfig struct {
	BaseURL    string        `mapstructure:"base_url"`
	Timeout    time.Duration `mapstructure:"timeout"`
	RecvWindow time.Duration `mapstructure:"recv_window"`

	APIKey    string `mapstructure:"-"`
	APISecret string `mapstructure:"-"`
}

type CronConfig struct {
	Enabled       bool   `mapstructure:"enabled"`
	LedgerStats   string `mapstructure:"ledger_stats"`
	WALCheckpoint string `mapstructure:"wal_checkpoint"`
}

type DashboardConfig struct {
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

func Load(path string, envOnly bool) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("TB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.AutomaticEnv()

	v.SetDefault("app.env", "dev")
	v.SetDefault("server.http_addr", ":8080")
	v.SetDefault("server.template_glob", "web/templates/*.html")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "console")
	v.SetDefault("log.development", true)
	v.SetDefault("log.sampling", false)
	v.SetDefault("log.disable_caller", false)
	v.SetDefault("log.disable_stacktrace", false)
	v.SetDefault("db.path", "trades.db")
	v.SetDefault("db.busy_timeout", "5s")
	v.SetDefault("binance.base_url", "https://api.binance.us")
	v.SetDefault("binance.timeout", "15s")
	v.SetDefault("binance.recv_window", "5s")
	v.SetDefault("cron.enabled", true)
	v.SetDefault("cron.ledger_stats", "@every 1h")
	v.SetDefault("cron.wal_checkpoint", "@every 10m")
	v.SetDefault("dashboard.cache_ttl", "5s")

	if !envOnly {
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}

	cfg.Binance.APIKey = strings.TrimSpace(os.Getenv("BINANCE_API_KEY"))
	cfg.Binance.APISecret = strings.TrimSpace(os.Getenv("BINANCE_API_SECRET"))
	if cfg.Binance.APIKey == "" || cfg.Binance.APISecret == "" {
		return Config{}, fmt.Errorf("config: BINANCE_API_KEY and BINANCE_API_SECRET must be set")
	}

	return cfg, nil
}
