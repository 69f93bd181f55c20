package render

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/matzehuels/cobolgraph/pkg/config"
	"github.com/matzehuels/cobolgraph/pkg/errors"
)

const sample = `digraph "T" {
  "A" [label="A", shape=box];
  "A" -> "B" [label="PERFORM", style=solid];
}
`

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"svg", "png"} {
		if _, err := ParseFormat(s); err != nil {
			t.Errorf("ParseFormat(%q) error: %v", s, err)
		}
	}
	if _, err := ParseFormat("gif"); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("ParseFormat(gif) = %v, want %s", err, errors.ErrCodeInvalidFormat)
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		engine  string
		want    any
		wantErr bool
	}{
		{config.EngineGraphviz, Graphviz{}, false},
		{"", Graphviz{}, false},
		{config.EngineCommand, Command{Path: "dot"}, false},
		{"neato", nil, true},
	}
	for _, tt := range tests {
		r, err := New(config.Render{Engine: tt.engine, Command: "dot"})
		if (err != nil) != tt.wantErr {
			t.Errorf("New(%q) error = %v, wantErr %v", tt.engine, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && r != tt.want {
			t.Errorf("New(%q) = %#v, want %#v", tt.engine, r, tt.want)
		}
	}
}

func TestValidate(t *testing.T) {
	if err := Validate([]byte(sample)); err != nil {
		t.Errorf("Validate(valid) = %v", err)
	}
	if err := Validate([]byte(`digraph { "A" -> }`)); err == nil {
		t.Error("Validate(invalid) succeeded")
	}
}

func TestGraphvizRenderSVG(t *testing.T) {
	out, err := Graphviz{}.Render(context.Background(), []byte(sample), SVG)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if !bytes.Contains(out, []byte("<svg")) {
		t.Errorf("output is not SVG: %.80s", out)
	}
}

func TestGraphvizRejectsFormat(t *testing.T) {
	if _, err := (Graphviz{}).Render(context.Background(), []byte(sample), Format("pdf")); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Render(pdf) = %v, want %s", err, errors.ErrCodeInvalidFormat)
	}
}

func TestCommandMissingBinary(t *testing.T) {
	c := Command{Path: filepath.Join(t.TempDir(), "no-such-dot")}
	if c.Available() {
		t.Fatal("Available() for missing binary")
	}
	if _, err := c.Render(context.Background(), []byte(sample), SVG); !errors.Is(err, errors.ErrCodeRender) {
		t.Errorf("Render() = %v, want %s", err, errors.ErrCodeRender)
	}
}

func TestCommandRender(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell script stand-in")
	}
	script := filepath.Join(t.TempDir(), "fake-dot")
	body := "#!/bin/sh\necho \"$1\"\ncat\n"
	if err := os.WriteFile(script, []byte(body), 0o755); err != nil {
		t.Fatal(err)
	}

	out, err := Command{Path: script}.Render(context.Background(), []byte(sample), PNG)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	want := "-Tpng\n" + sample
	if string(out) != want {
		t.Errorf("Render() = %q, want %q", out, want)
	}
}

func TestCommandFailure(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell script stand-in")
	}
	script := filepath.Join(t.TempDir(), "bad-dot")
	if err := os.WriteFile(script, []byte("#!/bin/sh\necho syntax error >&2\nexit 1\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	_, err := Command{Path: script}.Render(context.Background(), []byte(sample), SVG)
	if !errors.Is(err, errors.ErrCodeRender) {
		t.Fatalf("Render() = %v, want %s", err, errors.ErrCodeRender)
	}
}
