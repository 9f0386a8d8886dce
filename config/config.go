package config

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/kilianp07/autorange/core/fleet"
	"github.com/kilianp07/autorange/core/metrics"
	"github.com/kilianp07/autorange/infra/mqtt"
)

type Config struct {
	Fleet   FleetConfig    `json:"fleet"`
	Server  ServerConfig   `json:"server"`
	Metrics metrics.Config `json:"metrics"`
	Journal JournalConfig  `json:"journal"`
	MQTT    mqtt.Config    `json:"mqtt"`
	Sentry  SentryConfig   `json:"sentry"`
	Logging LoggingConfig  `json:"logging"`
}

// FleetConfig lists the vehicles loaded at startup.
type FleetConfig struct {
	Vehicles []fleet.Definition `json:"vehicles"`
}

// Validate checks that every vehicle names a known variant and that ids are unique.
func (c FleetConfig) Validate() error {
	known := fleet.Variants()
	seen := make(map[string]struct{}, len(c.Vehicles))
	for i, v := range c.Vehicles {
		if !slices.Contains(known, v.Type) {
			return fmt.Errorf("fleet.vehicles[%d]: unknown type %q", i, v.Type)
		}
		if v.ID == "" {
			continue
		}
		if _, dup := seen[v.ID]; dup {
			return fmt.Errorf("fleet.vehicles[%d]: duplicate id %q", i, v.ID)
		}
		seen[v.ID] = struct{}{}
	}
	return nil
}

func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides: K_SERVER__ADDR sets server.addr.
	if err := k.Load(env.Provider("K_", ".", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "k_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SetDefaults applies the defaults of every section.
func (c *Config) SetDefaults() {
	c.Server.SetDefaults()
	c.Journal.SetDefaults()
	c.MQTT.SetDefaults()
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := c.Fleet.Validate(); err != nil {
		return err
	}
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Logging.Validate(); err != nil {
		return err
	}
	return c.Journal.Validate()
}
