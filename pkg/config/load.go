package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/cobolgraph/pkg/errors"
)

// Load reads a configuration file on top of [Default] and validates it.
// The format is chosen by extension: .toml, .yaml or .yml.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return cfg, errors.Wrap(errors.ErrCodeIO, err, "read config %s", path)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&cfg); err != nil {
			return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
		}
	default:
		return cfg, errors.New(errors.ErrCodeInvalidConfig, "unsupported config format %q (want .toml, .yaml or .yml)", filepath.Ext(path))
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Encode writes cfg as TOML.
func (c Config) Encode(w io.Writer) error {
	enc := toml.NewEncoder(w)
	enc.Indent = ""
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}

// Validate checks the column contract, the numbering scheme, the encoding and
// every naming pattern.
func (c Config) Validate() error {
	if err := c.Normalize.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(c.Structure.DivisionMarker) == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "division_marker cannot be empty")
	}
	patterns := []struct{ key, expr string }{
		{"trace_pattern", c.Analysis.TracePattern},
		{"anomaly_pattern", c.Graph.AnomalyPattern},
		{"shared_pattern", c.Graph.SharedPattern},
		{"keyed_pattern", c.Graph.KeyedPattern},
	}
	for _, p := range patterns {
		if _, err := CompilePattern(p.expr); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s", p.key)
		}
	}
	for _, f := range c.Render.Formats {
		if f != "svg" && f != "png" {
			return errors.New(errors.ErrCodeInvalidConfig, "invalid render format: %s (must be 'svg' or 'png')", f)
		}
	}
	if c.Render.Engine != EngineGraphviz && c.Render.Engine != EngineCommand {
		return errors.New(errors.ErrCodeInvalidConfig, "invalid render engine: %s (must be '%s' or '%s')", c.Render.Engine, EngineGraphviz, EngineCommand)
	}
	for _, d := range c.Copybook.Dirs {
		if strings.TrimSpace(d) == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "copybook dirs cannot contain an empty path")
		}
	}
	if c.Workers < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "workers cannot be negative")
	}
	return nil
}

// Validate checks the column window and sequence numbering.
func (n Normalize) Validate() error {
	switch {
	case n.CodeStart < 1:
		return errors.New(errors.ErrCodeInvalidConfig, "code_start must be >= 1, got %d", n.CodeStart)
	case n.CodeEnd < n.CodeStart:
		return errors.New(errors.ErrCodeInvalidConfig, "code_end %d before code_start %d", n.CodeEnd, n.CodeStart)
	case n.IndicatorColumn < 1:
		return errors.New(errors.ErrCodeInvalidConfig, "indicator_column must be >= 1, got %d", n.IndicatorColumn)
	case n.IndicatorColumn >= n.CodeStart && n.IndicatorColumn <= n.CodeEnd:
		return errors.New(errors.ErrCodeInvalidConfig, "indicator_column %d inside code window %d-%d", n.IndicatorColumn, n.CodeStart, n.CodeEnd)
	case n.SeqWidth < 1 || n.SeqWidth > 9:
		return errors.New(errors.ErrCodeInvalidConfig, "seq_width must be 1-9, got %d", n.SeqWidth)
	case n.SeqStart < 0 || n.SeqStart > n.MaxSeq():
		return errors.New(errors.ErrCodeInvalidConfig, "seq_start %d does not fit in %d digits", n.SeqStart, n.SeqWidth)
	}
	for _, p := range n.IgnorePrefixes {
		if p == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "ignore_prefixes cannot contain an empty prefix")
		}
		if len([]rune(p)) > n.IndicatorColumn {
			return errors.New(errors.ErrCodeInvalidConfig, "ignore prefix %q longer than indicator column %d", p, n.IndicatorColumn)
		}
	}
	if _, _, err := LookupEncoding(n.Encoding); err != nil {
		return err
	}
	return nil
}

// CompilePattern compiles a naming pattern case-insensitively.
// The empty pattern never matches and compiles to nil.
func CompilePattern(p string) (*regexp.Regexp, error) {
	if p == "" {
		return nil, nil
	}
	return regexp.Compile("(?i)" + p)
}

// aliases maps common spellings that are not IANA names.
var aliases = map[string]string{
	"latin-1": "ISO-8859-1",
	"latin1":  "ISO-8859-1",
	"cp1252":  "windows-1252",
	"cp037":   "IBM037",
	"ebcdic":  "IBM037",
	"utf8":    "UTF-8",
}

// LookupEncoding resolves an encoding name through the IANA registry and
// returns the encoding together with its preferred registered name.
func LookupEncoding(name string) (encoding.Encoding, string, error) {
	if name == "" {
		return nil, "", errors.New(errors.ErrCodeInvalidConfig, "encoding cannot be empty")
	}
	key := name
	if alias, ok := aliases[strings.ToLower(name)]; ok {
		key = alias
	}
	enc, err := ianaindex.IANA.Encoding(key)
	if err != nil || enc == nil {
		return nil, "", errors.New(errors.ErrCodeInvalidConfig, "unsupported encoding %q", name)
	}
	// Prefer the MIME name, which is what most tools print.
	canonical, err := ianaindex.MIME.Name(enc)
	if err != nil {
		if canonical, err = ianaindex.IANA.Name(enc); err != nil {
			canonical = key
		}
	}
	return enc, canonical, nil
}
