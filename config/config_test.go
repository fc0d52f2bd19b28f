package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestServiceConfigApplyDefaults(t *testing.T) {
	t.Run("empty environment defaults to development", func(t *testing.T) {
		cfg := ServiceConfig{}
		cfg.ApplyDefaults()
		if cfg.Name != "medvoice" {
			t.Errorf("expected default name 'medvoice', got %q", cfg.Name)
		}
		if cfg.Environment != "development" {
			t.Errorf("expected 'development', got %q", cfg.Environment)
		}
		if !cfg.Debug {
			t.Error("expected debug=true for development")
		}
	})

	t.Run("production environment keeps debug false", func(t *testing.T) {
		cfg := ServiceConfig{Environment: "production"}
		cfg.ApplyDefaults()
		if cfg.Debug {
			t.Error("expected debug=false for production")
		}
	})
}

func TestServiceConfigValidate(t *testing.T) {
	cfg := ServiceConfig{Name: "medvoice", Environment: "invalid"}
	cfg.Logging.ApplyDefaults()
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for invalid environment")
	}
	if !strings.Contains(err.Error(), "config.environment must be one of") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoadConfigWithYAML(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yml")

	yamlContent := `
name: medvoice
environment: staging
server:
  port: 9090
sarvam:
  model: saaras:v2.5
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	var cfg Config
	if err := LoadConfig("medvoice", &cfg, WithConfigFile(configPath)); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Environment != "staging" {
		t.Errorf("expected environment 'staging', got %q", cfg.Environment)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Sarvam.Model != "saaras:v2.5" {
		t.Errorf("expected model 'saaras:v2.5', got %q", cfg.Sarvam.Model)
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("SARVAM_API_KEY", "sk-from-env")
	t.Setenv("HUGGINGFACE_API_TOKEN", "hf-from-env")

	var cfg Config
	if err := LoadConfig("medvoice", &cfg, WithConfigFile("/nonexistent/config.yml")); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Sarvam.APIKey != "sk-from-env" {
		t.Errorf("expected Sarvam key from env, got %q", cfg.Sarvam.APIKey)
	}
	if cfg.HuggingFace.APIToken != "hf-from-env" {
		t.Errorf("expected HuggingFace token from env, got %q", cfg.HuggingFace.APIToken)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	var cfg Config
	// With no config file found, LoadConfig should still succeed (empty config).
	if err := LoadConfig("medvoice", &cfg, WithConfigFile("/nonexistent/path.yml")); err != nil {
		t.Fatalf("expected LoadConfig to succeed with missing file, got %v", err)
	}
}

func TestFindFileWithMockFS(t *testing.T) {
	fs := &mockFS{files: map[string]bool{
		"./cmd/medvoice/config.yml": true,
	}}
	if got := findFile(fs, "medvoice", "config.yml"); got != "./cmd/medvoice/config.yml" {
		t.Errorf("expected config file at ./cmd/medvoice/config.yml, got %q", got)
	}
	if got := findFile(fs, "medvoice", ".env"); got != "" {
		t.Errorf("expected no .env found, got %q", got)
	}
}

type mockFS struct {
	files map[string]bool
}

func (m *mockFS) Exists(path string) bool   { return m.files[path] }
func (m *mockFS) LoadEnv(path string) error { return nil }

func TestLoaderOptions(t *testing.T) {
	var lc LoaderConfig
	WithFileSystem(&mockFS{})(&lc)
	WithConfigFile("/path/to/config.yml")(&lc)
	WithEnvFile("/path/to/.env")(&lc)

	if lc.FileSystem == nil {
		t.Error("expected FileSystem to be set")
	}
	if lc.ConfigFile != "/path/to/config.yml" {
		t.Errorf("expected config file path, got %q", lc.ConfigFile)
	}
	if lc.EnvFile != "/path/to/.env" {
		t.Errorf("expected env file path, got %q", lc.EnvFile)
	}
}

func TestValidateRequiresGatewayCredentials(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error without gateway credentials")
	}
	if !strings.Contains(err.Error(), "config.sarvam") {
		t.Errorf("expected sarvam validation failure first, got %v", err)
	}

	cfg.Sarvam.APIKey = "sk-test"
	err = cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "config.huggingface") {
		t.Errorf("expected huggingface validation failure, got %v", err)
	}

	cfg.HuggingFace.APIToken = "hf-test"
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected valid config, got %v", err)
	}
}
