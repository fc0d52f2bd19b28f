package server

import (
	"strings"
	"testing"
)

func TestConfigApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Port)
	}
	if cfg.MaxBodySize != "25MB" {
		t.Errorf("expected default body size 25MB, got %q", cfg.MaxBodySize)
	}
	if len(cfg.CORS.AllowedOrigins) != 1 || cfg.CORS.AllowedOrigins[0] != "*" {
		t.Errorf("expected wildcard origin default, got %v", cfg.CORS.AllowedOrigins)
	}
}

func TestConfigApplyDefaultsKeepsSetValues(t *testing.T) {
	cfg := Config{Port: 9000, MaxBodySize: "5MB"}
	cfg.ApplyDefaults()

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000 kept, got %d", cfg.Port)
	}
	if cfg.MaxBodySize != "5MB" {
		t.Errorf("expected body size 5MB kept, got %q", cfg.MaxBodySize)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		cfg    Config
		errMsg string
	}{
		{"valid", Config{Port: 8080}, ""},
		{"port too high", Config{Port: 70000}, "server.port"},
		{"negative read timeout", Config{Port: 8080, ReadTimeout: -1}, "server.read_timeout"},
		{"negative write timeout", Config{Port: 8080, WriteTimeout: -1}, "server.write_timeout"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.errMsg == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.errMsg) {
				t.Errorf("expected error containing %q, got %v", tc.errMsg, err)
			}
		})
	}
}
