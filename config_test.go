package authkit

import "testing"

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Audit.Enabled {
		t.Error("auditing should be disabled by default")
	}
	if cfg.Audit.BufferSize != 64 {
		t.Errorf("expected default buffer size 64, got %d", cfg.Audit.BufferSize)
	}
	if !cfg.Audit.DropIfFull {
		t.Error("expected drop-if-full by default")
	}
	if !cfg.Metrics.Enabled {
		t.Error("metrics should be enabled by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config must validate: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := defaultConfig()
	cfg.Audit.Enabled = true
	cfg.Audit.BufferSize = -1

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected negative buffer size to be rejected")
	}
}
