package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config failed validation: %v", err)
	}

	if cfg.Source.MaxPages != 50 {
		t.Errorf("MaxPages = %d, want 50", cfg.Source.MaxPages)
	}

	if cfg.Transform.USDToIDRRate != 16000 {
		t.Errorf("USDToIDRRate = %v, want 16000", cfg.Transform.USDToIDRRate)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"missing url", func(c *Config) { c.Source.URL = "" }, ErrMissingSourceURL},
		{"zero max pages", func(c *Config) { c.Source.MaxPages = 0 }, ErrInvalidMaxPages},
		{"negative delay", func(c *Config) { c.Source.DelayMs = -1 }, ErrInvalidDelay},
		{"zero timeout", func(c *Config) { c.Source.TimeoutSec = 0 }, ErrInvalidTimeout},
		{"missing output path", func(c *Config) { c.Output.Path = "" }, ErrMissingOutputPath},
		{"bad mode", func(c *Config) { c.Output.Mode = "upsert" }, ErrInvalidMode},
		{"zero rate", func(c *Config) { c.Transform.USDToIDRRate = 0 }, ErrInvalidRate},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }, ErrInvalidLogLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_FromYAML(t *testing.T) {
	content := `
source:
  url: "https://example.test/"
  max_pages: 5
  delay_ms: 100
  timeout_sec: 10
output:
  path: "out.csv"
  mode: "append"
transform:
  usd_to_idr_rate: 15000
logging:
  level: "debug"
`

	path := filepath.Join(t.TempDir(), "etl.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config fixture: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned unexpected error: %v", err)
	}

	if cfg.Source.URL != "https://example.test/" {
		t.Errorf("URL = %q, want https://example.test/", cfg.Source.URL)
	}

	if cfg.Source.MaxPages != 5 {
		t.Errorf("MaxPages = %d, want 5", cfg.Source.MaxPages)
	}

	if cfg.Output.Mode != "append" {
		t.Errorf("Mode = %q, want append", cfg.Output.Mode)
	}

	if cfg.Transform.USDToIDRRate != 15000 {
		t.Errorf("USDToIDRRate = %v, want 15000", cfg.Transform.USDToIDRRate)
	}
}

func TestLoad_PartialYAMLKeepsDefaults(t *testing.T) {
	content := `
source:
  url: "https://example.test/"
`

	path := filepath.Join(t.TempDir(), "etl.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config fixture: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned unexpected error: %v", err)
	}

	if cfg.Source.MaxPages != 50 {
		t.Errorf("MaxPages = %d, want default 50", cfg.Source.MaxPages)
	}

	if cfg.Output.Path != "products.csv" {
		t.Errorf("Path = %q, want default products.csv", cfg.Output.Path)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("FASHION_SOURCE_URL", "https://env.test/")
	t.Setenv("FASHION_OUTPUT_PATH", "env.csv")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load returned unexpected error: %v", err)
	}

	if cfg.Source.URL != "https://env.test/" {
		t.Errorf("URL = %q, want env override", cfg.Source.URL)
	}

	if cfg.Output.Path != "env.csv" {
		t.Errorf("Path = %q, want env override", cfg.Output.Path)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load of missing file should fail")
	}
}
