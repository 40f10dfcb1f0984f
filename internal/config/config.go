package config

import (
	"slices"
	"strings"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Cabinet  CabinetConfig  `yaml:"cabinet"`
	Log      LogConfig      `yaml:"log"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	RateLimitRPS    int           `yaml:"rate_limit_rps"   env:"SERVER_RATE_LIMIT_RPS"   env-default:"20"`
	RateLimitBurst  int           `yaml:"rate_limit_burst" env:"SERVER_RATE_LIMIT_BURST" env-default:"40"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// CabinetConfig holds cabinet business-logic settings.
type CabinetConfig struct {
	LowStockThreshold   int           `yaml:"low_stock_threshold"   env:"CABINET_LOW_STOCK_THRESHOLD"   env-default:"3"`
	ExpiryWarningDays   int           `yaml:"expiry_warning_days"   env:"CABINET_EXPIRY_WARNING_DAYS"   env-default:"30"`
	FuzzyMatchThreshold int           `yaml:"fuzzy_match_threshold" env:"CABINET_FUZZY_MATCH_THRESHOLD" env-default:"80"`
	StoreTimeout        time.Duration `yaml:"store_timeout"         env:"CABINET_STORE_TIMEOUT"         env-default:"5s"`
	HistoryLimit        int           `yaml:"history_limit"         env:"CABINET_HISTORY_LIMIT"         env-default:"50"`
	StatsWindowDays     int           `yaml:"stats_window_days"     env:"CABINET_STATS_WINDOW_DAYS"     env-default:"30"`
	AdminUserIDsRaw     string        `yaml:"admin_user_ids"        env:"CABINET_ADMIN_USER_IDS"`

	// AdminUserIDs is parsed from AdminUserIDsRaw during validation.
	AdminUserIDs []string `yaml:"-" env:"-"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// IsAdmin reports whether the actor may perform destructive operations.
// An empty admin list means nobody is an admin.
func (c CabinetConfig) IsAdmin(actorID string) bool {
	return slices.Contains(c.AdminUserIDs, actorID)
}

// ParseAdminIDs parses a comma-separated actor ID list. Empty items are
// skipped; an empty string returns a nil slice.
func ParseAdminIDs(raw string) []string {
	var ids []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			ids = append(ids, p)
		}
	}
	return ids
}
