package logger

import (
	"testing"
)

func TestNew_JSONFormat(t *testing.T) {
	cfg := &Config{Level: "debug", Format: "json", Output: "stdout"}
	l := New(cfg, "medvoice")
	if l == nil {
		t.Fatal("expected logger instance")
	}
	if l.service != "medvoice" {
		t.Errorf("expected service medvoice, got %s", l.service)
	}
}

func TestNew_InvalidLevelFallsBack(t *testing.T) {
	cfg := &Config{Level: "nope", Format: "json", Output: "stdout"}
	l := New(cfg, "medvoice")
	if l == nil {
		t.Fatal("expected logger despite invalid level")
	}
}

func TestConfig_ApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if cfg.Level != "info" {
		t.Errorf("expected default level info, got %s", cfg.Level)
	}
	if cfg.Format != "console" {
		t.Errorf("expected default format console, got %s", cfg.Format)
	}
	if !cfg.Timestamp {
		t.Error("expected timestamps enabled by default")
	}
}

func TestConfig_Validate(t *testing.T) {
	cfg := Config{Level: "verbose", Format: "json"}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for invalid level")
	}
	cfg = Config{Level: "info", Format: "xml"}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for invalid format")
	}
	cfg = Config{Level: "info", Format: "console"}
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestFields_PairsAndOddArity(t *testing.T) {
	m := Fields("op", "extract", "count", 3)
	if m["op"] != "extract" || m["count"] != 3 {
		t.Errorf("unexpected fields: %v", m)
	}
	m = Fields("op", "extract", "dangling")
	if len(m) != 1 {
		t.Errorf("expected dangling key dropped, got %v", m)
	}
}

func TestWithComponent(t *testing.T) {
	l := NewDefault("medvoice").WithComponent("pipeline")
	if l == nil {
		t.Fatal("expected component logger")
	}
}

func TestGetGlobalLogger_LazyInit(t *testing.T) {
	globalLogger = nil
	if GetGlobalLogger() == nil {
		t.Fatal("expected lazily created global logger")
	}
}
