// Package config loads and validates medvoice service configuration from
// config.yml and environment variables (including .env files).
package config

import (
	"fmt"

	"github.com/skillsenselab/medvoice/extraction/huggingface"
	"github.com/skillsenselab/medvoice/logger"
	"github.com/skillsenselab/medvoice/observability"
	"github.com/skillsenselab/medvoice/server"
	"github.com/skillsenselab/medvoice/transcription/sarvam"
	"github.com/skillsenselab/medvoice/validation"
)

// ServiceConfig contains the essential configuration fields the service needs.
type ServiceConfig struct {
	Name        string        `yaml:"name" mapstructure:"name"`
	Environment string        `yaml:"environment" mapstructure:"environment"`
	Version     string        `yaml:"version" mapstructure:"version"`
	Debug       bool          `yaml:"debug" mapstructure:"debug"`
	Logging     logger.Config `yaml:"logging" mapstructure:"logging"`
}

// ApplyDefaults applies default values to the base configuration.
func (c *ServiceConfig) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "medvoice"
	}
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Environment == "development" {
		c.Debug = true
	}
	c.Logging.ApplyDefaults()
}

// Validate validates the base configuration fields.
func (c *ServiceConfig) Validate() error {
	validEnvs := []string{"development", "staging", "production"}
	found := false
	for _, v := range validEnvs {
		if c.Environment == v {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("config.environment must be one of [development, staging, production] (got: %s)", c.Environment)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("config.logging: %w", err)
	}
	return nil
}

// Config is the full medvoice service configuration.
type Config struct {
	ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Server      server.Config        `yaml:"server" mapstructure:"server"`
	Tracing     observability.Config `yaml:"tracing" mapstructure:"tracing"`
	Sarvam      sarvam.Config        `yaml:"sarvam" mapstructure:"sarvam"`
	HuggingFace huggingface.Config   `yaml:"huggingface" mapstructure:"huggingface"`
}

// Load reads the medvoice configuration, applies defaults, and validates it.
func Load(opts ...LoaderOption) (*Config, error) {
	var cfg Config
	if err := LoadConfig("medvoice", &cfg, opts...); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ApplyDefaults applies defaults across all sections.
func (c *Config) ApplyDefaults() {
	c.ServiceConfig.ApplyDefaults()
	c.Server.ApplyDefaults()
	c.Tracing.ApplyDefaults(c.Name)
	c.Sarvam.ApplyDefaults()
	c.HuggingFace.ApplyDefaults()
}

// Validate validates all sections, including struct-tag validation of the
// gateway credentials.
func (c *Config) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := validation.Validate(&c.Sarvam); err != nil {
		return fmt.Errorf("config.sarvam: %w", err)
	}
	if err := validation.Validate(&c.HuggingFace); err != nil {
		return fmt.Errorf("config.huggingface: %w", err)
	}
	return nil
}
