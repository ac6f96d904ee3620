package lead

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv(EnvConfigPath, "")

	cfg, err := LoadConfig(validator.New())
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("LoadConfig() = %+v, want defaults", cfg)
	}
	if cfg.ExtractionTimeoutDuration() != 20*time.Second {
		t.Errorf("extraction timeout = %s", cfg.ExtractionTimeoutDuration())
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	t.Setenv(EnvConfigPath, filepath.Join(t.TempDir(), "absent.yaml"))

	cfg, err := LoadConfig(validator.New())
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("LoadConfig() = %+v, want defaults", cfg)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lead.yaml")
	content := "history_window: 4\nclosing_message: \"See you soon!\"\ncrm_timeout: 3s\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvConfigPath, path)

	cfg, err := LoadConfig(validator.New())
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.HistoryWindow != 4 || cfg.ClosingMessage != "See you soon!" {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.CRMTimeoutDuration() != 3*time.Second {
		t.Errorf("crm timeout = %s", cfg.CRMTimeoutDuration())
	}
	if cfg.FallbackQuestion != DefaultConfig().FallbackQuestion {
		t.Error("unset keys should keep their defaults")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "zero history window", mutate: func(c *Config) { c.HistoryWindow = 0 }},
		{name: "empty closing message", mutate: func(c *Config) { c.ClosingMessage = "" }},
		{name: "bad duration", mutate: func(c *Config) { c.DeliveryTimeout = "soon" }},
		{name: "negative duration", mutate: func(c *Config) { c.ExtractionTimeout = "-1s" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(validator.New()); err == nil {
				t.Error("Validate() expected an error")
			}
		})
	}
}
