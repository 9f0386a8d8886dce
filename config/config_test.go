package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

//nolint:gocyclo
func TestLoad(t *testing.T) {
	path := writeConfig(t, "config.yaml", `fleet:
  vehicles:
    - id: van-1
      type: car
      conf:
        max_passengers: 4
        avg_consume: 10
        max_liquid: 50
    - id: hauler
      type: lorry
      conf:
        max_weight: 1000
        avg_consume: 5
        max_liquid: 100
server:
  addr: ":9000"
metrics:
  sinks:
    - type: "nop"
journal:
  backend: sqlite
  path: trips.db
mqtt:
  broker: "tcp://localhost:1883"
  client_id: "cli"
  topic_prefix: "fleet"
sentry:
  environment: test
logging:
  level: debug
  format: console
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	checks := []struct {
		name string
		got  any
		want any
	}{
		{"vehicles", len(cfg.Fleet.Vehicles), 2},
		{"vehicle id", cfg.Fleet.Vehicles[1].ID, "hauler"},
		{"vehicle type", cfg.Fleet.Vehicles[1].Type, "lorry"},
		{"server.addr", cfg.Server.Addr, ":9000"},
		{"read timeout", cfg.Server.ReadTimeout(), 10 * time.Second},
		{"metrics_sink", len(cfg.Metrics.Sinks) == 1 && cfg.Metrics.Sinks[0].Type == "nop", true},
		{"journal.backend", cfg.Journal.Backend, "sqlite"},
		{"journal.max_size_mb", cfg.Journal.MaxSizeMB, 10},
		{"broker", cfg.MQTT.Broker, "tcp://localhost:1883"},
		{"client_id", cfg.MQTT.ClientID, "cli"},
		{"topic_prefix", cfg.MQTT.TopicPrefix, "fleet"},
		{"sentry.environment", cfg.Sentry.Environment, "test"},
		{"logging.level", cfg.Logging.Level, "debug"},
		{"logging.format", cfg.Logging.Format, "console"},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s mismatch: %v", c.name, c.got)
		}
	}
	if cfg.Fleet.Vehicles[0].Conf["max_liquid"] == nil {
		t.Errorf("vehicle conf not decoded")
	}
}

func TestLoadDefaultsAndEnv(t *testing.T) {
	path := writeConfig(t, "config.json", `{"fleet":{"vehicles":[]}}`)
	t.Setenv("K_SERVER__ADDR", ":7000")
	t.Setenv("K_LOGGING__LEVEL", "debug")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.Server.Addr != ":7000" {
		t.Errorf("env override not applied: %s", cfg.Server.Addr)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("nested env override not applied: %q", cfg.Logging.Level)
	}
	if cfg.Journal.Backend != "jsonl" || cfg.Journal.Path != "trips.jsonl" {
		t.Errorf("journal defaults not applied: %+v", cfg.Journal)
	}
	if cfg.MQTT.Enabled() {
		t.Errorf("mqtt should be disabled without broker")
	}
	if cfg.MQTT.TopicPrefix != "vehicle" {
		t.Errorf("mqtt topic prefix default: %s", cfg.MQTT.TopicPrefix)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		file string
		data string
	}{
		{"format", "config.toml", ``},
		{"unknown type", "config.yaml", "fleet:\n  vehicles:\n    - id: a\n      type: boat\n"},
		{"duplicate id", "config.yaml", "fleet:\n  vehicles:\n    - id: a\n      type: car\n    - id: a\n      type: lorry\n"},
		{"journal backend", "config.yaml", "journal:\n  backend: csv\n"},
		{"log level", "config.yaml", "logging:\n  level: loud\n"},
		{"log format", "config.yaml", "logging:\n  format: xml\n"},
		{"metrics addr", "config.yaml", "server:\n  addr: \":1\"\n  metrics_addr: \":1\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.file, tt.data)
			if _, err := Load(path); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "config.yaml", "server:\n  addr: \":9000\"\nlogging:\n  level: info\n")
	t.Setenv("K_SERVER__ADDR", ":7000")
	t.Setenv("K_LOGGING__LEVEL", "warn")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.Server.Addr != ":7000" || cfg.Logging.Level != "warn" {
		t.Errorf("file values not overridden: addr=%q level=%q", cfg.Server.Addr, cfg.Logging.Level)
	}
}
