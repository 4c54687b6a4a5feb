package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func valid() Config {
	return Config{
		LogLevel: "INFO",
		Format:   FormatText,
		Table: Table{
			Capacity:  4,
			Threshold: 0.75,
			Hash:      HashString,
		},
		Values: []string{"Java"},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		want   error
	}{
		{"valid", func(*Config) {}, nil},
		{"threshold one", func(c *Config) { c.Table.Threshold = 1 }, nil},
		{"seeded yaml", func(c *Config) { c.Table.Hash = HashSeeded; c.Format = FormatYAML }, nil},
		{"zero capacity", func(c *Config) { c.Table.Capacity = 0 }, ErrBadCapacity},
		{"negative capacity", func(c *Config) { c.Table.Capacity = -4 }, ErrBadCapacity},
		{"zero threshold", func(c *Config) { c.Table.Threshold = 0 }, ErrBadThreshold},
		{"large threshold", func(c *Config) { c.Table.Threshold = 1.5 }, ErrBadThreshold},
		{"hash", func(c *Config) { c.Table.Hash = "md5" }, ErrBadHash},
		{"format", func(c *Config) { c.Format = "xml" }, ErrBadFormat},
		{"log level", func(c *Config) { c.LogLevel = "TRACE" }, ErrBadLogLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.modify(&cfg)
			err := cfg.Validate()
			if tt.want == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`log_level: DEBUG
format: yaml
table:
  capacity: 8
  threshold: 0.5
  hash: seeded
  full_recount: true
values:
  - Go
  - Rust
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := Config{
		LogLevel: "DEBUG",
		Format:   FormatYAML,
		Table: Table{
			Capacity:    8,
			Threshold:   0.5,
			Hash:        HashSeeded,
			FullRecount: true,
		},
		Values: []string{"Go", "Rust"},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("LOG_LEVEL", "INFO")
	t.Setenv("OUTPUT_FORMAT", "text")
	t.Setenv("TABLE_CAPACITY", "4")
	t.Setenv("TABLE_THRESHOLD", "0.75")
	t.Setenv("TABLE_HASH", "string")
	t.Setenv("TABLE_FULL_RECOUNT", "false")
	os.Unsetenv("TABLE_VALUES")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := []string{"Java", "Python", "Lisp", "Fortran", "Prolog", "Cobol", "C++", "C", "C#"}
	if diff := cmp.Diff(want, cfg.Values); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	if cfg.Table.Capacity != 4 || cfg.Table.Threshold != 0.75 || cfg.Table.Hash != HashString {
		t.Fatalf("unexpected table config %+v", cfg.Table)
	}
}

func TestLoad_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("table:\n  capacity: -1\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); !errors.Is(err, ErrBadCapacity) {
		t.Fatalf("got %v, want %v", err, ErrBadCapacity)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected an error for a missing file")
	}
}
