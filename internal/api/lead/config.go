package lead

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const EnvConfigPath = "LEAD_CONFIG_PATH"

// Config holds the dialogue tunables. It is read once at start-up.
type Config struct {
	HistoryWindow        int    `yaml:"history_window" validate:"min=1,max=100"`
	FallbackQuestion     string `yaml:"fallback_question" validate:"required"`
	ClosingMessage       string `yaml:"closing_message" validate:"required"`
	AlreadyCompleteReply string `yaml:"already_complete_reply" validate:"required"`
	ExtractionTimeout    string `yaml:"extraction_timeout" validate:"required"`
	DeliveryTimeout      string `yaml:"delivery_timeout" validate:"required"`
	CRMTimeout           string `yaml:"crm_timeout" validate:"required"`
}

func DefaultConfig() Config {
	return Config{
		HistoryWindow:        10,
		FallbackQuestion:     "Thanks! Could you tell me a bit more about what you need help with?",
		ClosingMessage:       "Thanks, you're all set! A member of our team will reach out shortly.",
		AlreadyCompleteReply: "Thanks for the message! Your request is already with our team and someone will be in touch soon.",
		ExtractionTimeout:    "20s",
		DeliveryTimeout:      "10s",
		CRMTimeout:           "10s",
	}
}

// LoadConfig reads the YAML file named by LEAD_CONFIG_PATH over the
// defaults. A missing variable or file yields the defaults.
func LoadConfig(validate *validator.Validate) (Config, error) {
	cfg := DefaultConfig()

	path := strings.TrimSpace(os.Getenv(EnvConfigPath))
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("read lead config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse lead config %s: %w", path, err)
			}
		}
	}

	if err := cfg.Validate(validate); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate(validate *validator.Validate) error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid lead config: %w", err)
	}
	for name, raw := range map[string]string{
		"extraction_timeout": c.ExtractionTimeout,
		"delivery_timeout":   c.DeliveryTimeout,
		"crm_timeout":        c.CRMTimeout,
	} {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", name, raw, err)
		}
		if d <= 0 {
			return fmt.Errorf("%s must be positive", name)
		}
	}
	return nil
}

func mustDuration(raw string) time.Duration {
	d, _ := time.ParseDuration(raw)
	return d
}

func (c Config) ExtractionTimeoutDuration() time.Duration {
	return mustDuration(c.ExtractionTimeout)
}

func (c Config) DeliveryTimeoutDuration() time.Duration {
	return mustDuration(c.DeliveryTimeout)
}

func (c Config) CRMTimeoutDuration() time.Duration {
	return mustDuration(c.CRMTimeout)
}
