// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds every tunable for the service.
// Values come from environment variables with the LARDER prefix.
type Config struct {
	HTTP     HTTPConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Log      LogConfig
	Stock    StockConfig
}

// HTTPConfig configures the API server.
type HTTPConfig struct {
	Addr            string        `envconfig:"HTTP_ADDR" default:":8080"`
	ReadTimeout     time.Duration `envconfig:"HTTP_READ_TIMEOUT" default:"10s"`
	WriteTimeout    time.Duration `envconfig:"HTTP_WRITE_TIMEOUT" default:"15s"`
	ShutdownTimeout time.Duration `envconfig:"HTTP_SHUTDOWN_TIMEOUT" default:"10s"`
}

// DatabaseConfig configures the postgres pool.
type DatabaseConfig struct {
	DSN              string        `envconfig:"DATABASE_DSN" required:"true"`
	MaxConns         int32         `envconfig:"DATABASE_MAX_CONNS" default:"10"`
	MinConns         int32         `envconfig:"DATABASE_MIN_CONNS" default:"2"`
	StatementTimeout time.Duration `envconfig:"DATABASE_STATEMENT_TIMEOUT" default:"30s"`
}

// AuthConfig configures token issuing.
type AuthConfig struct {
	JWTSecret string        `envconfig:"AUTH_JWT_SECRET" required:"true"`
	TokenTTL  time.Duration `envconfig:"AUTH_TOKEN_TTL" default:"24h"`
}

// LogConfig configures the logger.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEVELOPMENT" default:"false"`
}

// StockConfig configures the stock accounting engine.
type StockConfig struct {
	// QuantityScale is the maximum number of decimal places accepted
	// for movement quantities.
	QuantityScale int32 `envconfig:"STOCK_QUANTITY_SCALE" default:"2"`

	// TxRetries is how many times a movement is retried after a
	// serialization failure or deadlock.
	TxRetries int `envconfig:"STOCK_TX_RETRIES" default:"3"`

	// DashboardRecentLimit caps the recent-movements list on the dashboard.
	DashboardRecentLimit int `envconfig:"STOCK_DASHBOARD_RECENT_LIMIT" default:"5"`
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("LARDER", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}
