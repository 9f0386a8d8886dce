package config

import (
	"fmt"
	"time"
)

// ServerConfig defines the HTTP API listener.
type ServerConfig struct {
	Addr               string `json:"addr"`
	ReadTimeoutSeconds int    `json:"read_timeout_seconds"`
	// MetricsAddr serves /metrics on a dedicated listener when set. Otherwise
	// /metrics is mounted on the API server.
	MetricsAddr string `json:"metrics_addr"`
	// Token protects the trip journal endpoint with a bearer token when set.
	Token string `json:"token"`
}

// SetDefaults applies sane defaults.
func (c *ServerConfig) SetDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
}

// ReadTimeout returns the read timeout, 10 seconds when unset.
func (c ServerConfig) ReadTimeout() time.Duration {
	if c.ReadTimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.ReadTimeoutSeconds) * time.Second
}

// Validate checks mandatory fields.
func (c ServerConfig) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if c.MetricsAddr != "" && c.MetricsAddr == c.Addr {
		return fmt.Errorf("server.metrics_addr must differ from server.addr")
	}
	return nil
}
