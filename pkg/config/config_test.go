package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/cobolgraph/pkg/errors"
)

func TestDefaultIsValid(t *testing.T) {
	if Default().Copybook.Enabled() {
		t.Error("copybook expansion enabled without dirs")
	}
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestNormalizeDerived(t *testing.T) {
	n := Default().Normalize
	if got := n.CodeWidth(); got != 65 {
		t.Errorf("CodeWidth() = %d, want 65", got)
	}
	if got := n.MaxSeq(); got != 999999 {
		t.Errorf("MaxSeq() = %d, want 999999", got)
	}

	c := n.Canonical()
	if c.IndicatorColumn != 7 || c.CodeStart != 8 || c.CodeEnd != 72 {
		t.Errorf("Canonical() window = %d/%d-%d, want 7/8-72", c.IndicatorColumn, c.CodeStart, c.CodeEnd)
	}
	if len(c.IgnorePrefixes) != 0 || c.CommentIndicators != "" {
		t.Error("Canonical() should carry no drop rules")
	}
	if err := c.Validate(); err != nil {
		t.Errorf("Canonical().Validate() = %v", err)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"code end before start", func(c *Config) { c.Normalize.CodeEnd = 2 }},
		{"indicator inside window", func(c *Config) { c.Normalize.IndicatorColumn = 10 }},
		{"seq width zero", func(c *Config) { c.Normalize.SeqWidth = 0 }},
		{"seq start too wide", func(c *Config) { c.Normalize.SeqWidth = 2; c.Normalize.SeqStart = 100 }},
		{"empty prefix", func(c *Config) { c.Normalize.IgnorePrefixes = []string{""} }},
		{"prefix too long", func(c *Config) { c.Normalize.IgnorePrefixes = []string{"TOOLONGPREFIX"} }},
		{"unknown encoding", func(c *Config) { c.Normalize.Encoding = "klingon-8" }},
		{"empty marker", func(c *Config) { c.Structure.DivisionMarker = "  " }},
		{"bad trace pattern", func(c *Config) { c.Analysis.TracePattern = "(" }},
		{"bad keyed pattern", func(c *Config) { c.Graph.KeyedPattern = "[" }},
		{"bad render format", func(c *Config) { c.Render.Formats = []string{"gif"} }},
		{"bad render engine", func(c *Config) { c.Render.Engine = "neato" }},
		{"negative workers", func(c *Config) { c.Workers = -1 }},
		{"empty copybook dir", func(c *Config) { c.Copybook.Dirs = []string{"copy", " "} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("Validate() = %v, want %s", err, errors.ErrCodeInvalidConfig)
			}
		})
	}
}

func TestLookupEncoding(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"latin-1", "ISO-8859-1"},
		{"ISO-8859-1", "ISO-8859-1"},
		{"utf-8", "UTF-8"},
		{"cp037", "IBM037"},
		{"windows-1252", "windows-1252"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc, got, err := LookupEncoding(tt.name)
			if err != nil {
				t.Fatalf("LookupEncoding(%q) error: %v", tt.name, err)
			}
			if enc == nil {
				t.Fatalf("LookupEncoding(%q) returned nil encoding", tt.name)
			}
			if got != tt.want {
				t.Errorf("LookupEncoding(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestLoadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cobolgraph.toml")
	data := `
workers = 3

[normalize]
encoding = "utf-8"
ignore_prefixes = ["JUNK"]

[analysis]
trace_pattern = "^TRACE-"

[copybook]
dirs = ["copy", "shared/copy"]
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Workers != 3 {
		t.Errorf("Workers = %d, want 3", cfg.Workers)
	}
	if cfg.Normalize.Encoding != "utf-8" {
		t.Errorf("Encoding = %q, want utf-8", cfg.Normalize.Encoding)
	}
	if len(cfg.Normalize.IgnorePrefixes) != 1 || cfg.Normalize.IgnorePrefixes[0] != "JUNK" {
		t.Errorf("IgnorePrefixes = %v, want [JUNK]", cfg.Normalize.IgnorePrefixes)
	}
	if cfg.Analysis.TracePattern != "^TRACE-" {
		t.Errorf("TracePattern = %q", cfg.Analysis.TracePattern)
	}
	if !cfg.Copybook.Enabled() || len(cfg.Copybook.Dirs) != 2 || cfg.Copybook.Dirs[1] != "shared/copy" {
		t.Errorf("Copybook.Dirs = %v", cfg.Copybook.Dirs)
	}
	// untouched keys keep defaults
	if len(cfg.Copybook.Extensions) == 0 || cfg.Copybook.Extensions[0] != "" {
		t.Errorf("Copybook.Extensions = %q, want default", cfg.Copybook.Extensions)
	}
	if cfg.Normalize.CodeEnd != 72 {
		t.Errorf("CodeEnd = %d, want default 72", cfg.Normalize.CodeEnd)
	}
	if cfg.Structure.DivisionMarker != "PROCEDURE DIVISION" {
		t.Errorf("DivisionMarker = %q, want default", cfg.Structure.DivisionMarker)
	}
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cobolgraph.yaml")
	data := `
graph:
  shared_pattern: "^COMMON-"
paths:
  output_dir: ./out
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Graph.SharedPattern != "^COMMON-" {
		t.Errorf("SharedPattern = %q", cfg.Graph.SharedPattern)
	}
	if cfg.Paths.OutputDir != "./out" {
		t.Errorf("OutputDir = %q", cfg.Paths.OutputDir)
	}
	if cfg.Graph.AnomalyPattern != "ANO|ZZ" {
		t.Errorf("AnomalyPattern = %q, want default", cfg.Graph.AnomalyPattern)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.toml")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file: got %v, want %s", err, errors.ErrCodeFileNotFound)
	}

	ini := filepath.Join(dir, "config.ini")
	if err := os.WriteFile(ini, []byte("x=1"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(ini); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("unsupported extension: got %v, want %s", err, errors.ErrCodeInvalidConfig)
	}

	bad := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(bad, []byte("[graph]\nkeyed_pattern = \"(\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("invalid pattern: got %v, want %s", err, errors.ErrCodeInvalidConfig)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	cfg := Default()
	cfg.Workers = 2
	if err := cfg.Encode(&buf); err != nil {
		t.Fatalf("Encode() error: %v", err)
	}

	path := filepath.Join(t.TempDir(), "roundtrip.toml")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load(encoded) error: %v", err)
	}
	if got.Workers != 2 || got.Normalize.SeqWidth != 6 || got.Graph.KeyedPattern != "PF" {
		t.Errorf("round trip lost values: %+v", got)
	}
}

func TestIsReserved(t *testing.T) {
	s := Default().Structure
	if !s.IsReserved("end-if") {
		t.Error("IsReserved(end-if) = false, want true")
	}
	if s.IsReserved("100-INIT") {
		t.Error("IsReserved(100-INIT) = true, want false")
	}
}
