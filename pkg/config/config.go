// Package config defines the configuration value threaded through every
// analysis stage.
//
// No stage reads configuration from the environment or from package-level
// state: each receives its own section ([Normalize], [Structure], [Analysis],
// [Graph]) as an argument. The outer layers (CLI, pipeline) build a [Config]
// with [Default] or [Load] and hand sections down.
//
// # File formats
//
// [Load] accepts TOML (.toml) and YAML (.yaml, .yml). Keys use snake_case in
// both formats:
//
//	[normalize]
//	code_start = 8
//	code_end = 72
//	indicator_column = 7
//	encoding = "latin-1"
//	ignore_prefixes = ["SMASH", "//"]
//
//	[analysis]
//	trace_pattern = "^SMAD-"
//
//	[copybook]
//	dirs = ["./copybooks"]
//
// Fields not present in the file keep their [Default] value.
package config

import (
	"runtime"
	"strings"
)

// Config is the complete configuration for one analysis run.
type Config struct {
	Normalize Normalize `toml:"normalize" yaml:"normalize"`
	Structure Structure `toml:"structure" yaml:"structure"`
	Analysis  Analysis  `toml:"analysis" yaml:"analysis"`
	Graph     Graph     `toml:"graph" yaml:"graph"`
	Paths     Paths     `toml:"paths" yaml:"paths"`
	Render    Render    `toml:"render" yaml:"render"`
	Copybook  Copybook  `toml:"copybook" yaml:"copybook"`

	// Workers bounds the number of units analyzed in parallel.
	Workers int `toml:"workers" yaml:"workers"`

	// LogLevel is "debug", "info", "warn" or "error".
	LogLevel string `toml:"log_level" yaml:"log_level"`
}

// Normalize configures the column contract of raw source records.
// Columns are 1-based and inclusive.
type Normalize struct {
	CodeStart         int      `toml:"code_start" yaml:"code_start"`
	CodeEnd           int      `toml:"code_end" yaml:"code_end"`
	IndicatorColumn   int      `toml:"indicator_column" yaml:"indicator_column"`
	CommentIndicators string   `toml:"comment_indicators" yaml:"comment_indicators"`
	IgnorePrefixes    []string `toml:"ignore_prefixes" yaml:"ignore_prefixes"`
	Encoding          string   `toml:"encoding" yaml:"encoding"`
	SeqWidth          int      `toml:"seq_width" yaml:"seq_width"`
	SeqStart          int      `toml:"seq_start" yaml:"seq_start"`
}

// Structure configures paragraph extraction.
type Structure struct {
	DivisionMarker string   `toml:"division_marker" yaml:"division_marker"`
	ReservedWords  []string `toml:"reserved_words" yaml:"reserved_words"`
}

// Analysis configures control-transfer and exit detection.
type Analysis struct {
	// TracePattern matches perform targets that are trace routines.
	TracePattern string `toml:"trace_pattern" yaml:"trace_pattern"`

	// TargetSuffixes are stripped from an unknown target before a second lookup
	// (e.g. "PERFORM 100-READ-F" resolves to 100-READ).
	TargetSuffixes []string `toml:"target_suffixes" yaml:"target_suffixes"`
}

// Graph configures node categorization. Patterns are regular expressions
// matched case-insensitively against paragraph names.
type Graph struct {
	AnomalyPattern string `toml:"anomaly_pattern" yaml:"anomaly_pattern"`
	SharedPattern  string `toml:"shared_pattern" yaml:"shared_pattern"`
	KeyedPattern   string `toml:"keyed_pattern" yaml:"keyed_pattern"`
}

// Paths configures unit discovery and output locations.
type Paths struct {
	SourceDir  string   `toml:"source_dir" yaml:"source_dir"`
	WorkDir    string   `toml:"work_dir" yaml:"work_dir"`
	OutputDir  string   `toml:"output_dir" yaml:"output_dir"`
	Include    []string `toml:"include" yaml:"include"`
	IgnoreFile string   `toml:"ignore_file" yaml:"ignore_file"`
	Recurse    bool     `toml:"recurse" yaml:"recurse"`
}

// Render configures optional rasterization of the DOT output.
type Render struct {
	// Formats lists image formats to produce next to each DOT file ("svg", "png").
	// Empty disables rendering.
	Formats []string `toml:"formats" yaml:"formats"`

	// Engine is "graphviz" (in process) or "command" (external dot binary).
	Engine string `toml:"engine" yaml:"engine"`

	// Command is the executable used by the "command" engine.
	Command string `toml:"command" yaml:"command"`
}

// Copybook configures COPY expansion ahead of normalization.
type Copybook struct {
	// Dirs are searched in order for a copybook member. Empty disables
	// expansion.
	Dirs []string `toml:"dirs" yaml:"dirs"`

	// Extensions are tried in order after the member name; "" is the bare name.
	Extensions []string `toml:"extensions" yaml:"extensions"`
}

// Enabled reports whether COPY statements are expanded.
func (c Copybook) Enabled() bool { return len(c.Dirs) > 0 }

// Render engines.
const (
	EngineGraphviz = "graphviz"
	EngineCommand  = "command"
)

// Default returns the configuration matching the classic IBM reference format:
// sequence area 1-6, indicator 7, areas A and B in 8-72.
func Default() Config {
	return Config{
		Normalize: Normalize{
			CodeStart:         8,
			CodeEnd:           72,
			IndicatorColumn:   7,
			CommentIndicators: "*/",
			IgnorePrefixes:    []string{"SMASH", "//"},
			Encoding:          "latin-1",
			SeqWidth:          6,
			SeqStart:          1,
		},
		Structure: Structure{
			DivisionMarker: "PROCEDURE DIVISION",
			ReservedWords: []string{
				"EXIT", "CONTINUE", "GOBACK",
				"END-IF", "END-EXEC", "END-PERFORM", "END-EVALUATE",
				"END-READ", "END-WRITE", "END-CALL", "END-COMPUTE",
				"END-SEARCH", "END-STRING", "END-START", "ELSE",
			},
		},
		Analysis: Analysis{
			TracePattern:   "^SMAD-",
			TargetSuffixes: []string{"-F"},
		},
		Graph: Graph{
			AnomalyPattern: "ANO|ZZ",
			SharedPattern:  "^SRHP-",
			KeyedPattern:   "PF",
		},
		Paths: Paths{
			SourceDir:  "./sources",
			WorkDir:    "./work",
			OutputDir:  "./output",
			Include:    []string{"**/*.cbl", "**/*.cob", "**/*.CBL", "**/*.COB"},
			IgnoreFile: ".cblignore",
			Recurse:    true,
		},
		Render: Render{
			Engine:  EngineGraphviz,
			Command: "dot",
		},
		Copybook: Copybook{
			Extensions: []string{"", ".cpy", ".CPY", ".cob", ".COB", ".txt", ".TXT"},
		},
		Workers:  runtime.NumCPU(),
		LogLevel: "info",
	}
}

// CodeWidth returns the width of the code window in columns.
func (n Normalize) CodeWidth() int {
	return n.CodeEnd - n.CodeStart + 1
}

// MaxSeq returns the largest sequence number representable in SeqWidth digits.
func (n Normalize) MaxSeq() int {
	limit := 1
	for i := 0; i < n.SeqWidth; i++ {
		limit *= 10
	}
	return limit - 1
}

// Canonical returns the configuration describing the canonical record layout
// produced by a normalizer running with n: sequence digits, then the
// indicator, then the code window. No drop rule can match a canonical record.
func (n Normalize) Canonical() Normalize {
	return Normalize{
		IndicatorColumn: n.SeqWidth + 1,
		CodeStart:       n.SeqWidth + 2,
		CodeEnd:         n.SeqWidth + 1 + n.CodeWidth(),
		Encoding:        "utf-8",
		SeqWidth:        n.SeqWidth,
		SeqStart:        n.SeqStart,
	}
}

// IsReserved reports whether word (any case) is configured as a reserved word
// that can never be a paragraph label.
func (s Structure) IsReserved(word string) bool {
	for _, w := range s.ReservedWords {
		if strings.EqualFold(w, word) {
			return true
		}
	}
	return false
}
