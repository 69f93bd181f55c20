package buildinfo

import (
	"runtime/debug"
	"strings"
	"testing"
)

func TestFill(t *testing.T) {
	bi := &debug.BuildInfo{
		Main: debug.Module{Version: "v0.3.1"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "abc123"},
			{Key: "vcs.time", Value: "2026-01-02T03:04:05Z"},
		},
	}

	got := fill(Info{Version: "dev", Commit: "none", Date: "unknown"}, bi)
	want := Info{Version: "v0.3.1", Commit: "abc123", Date: "2026-01-02T03:04:05Z"}
	if got != want {
		t.Errorf("fill(unset) = %+v, want %+v", got, want)
	}

	// ldflags values win.
	set := Info{Version: "v1.0.0", Commit: "fff", Date: "today"}
	if got := fill(set, bi); got != set {
		t.Errorf("fill(set) = %+v, want %+v", got, set)
	}

	devel := &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}}
	if got := fill(Info{Version: "dev"}, devel); got.Version != "dev" {
		t.Errorf("fill((devel)).Version = %q, want dev", got.Version)
	}
}

func TestTemplate(t *testing.T) {
	tmpl := Template()
	if !strings.HasPrefix(tmpl, "{{.Name}} version ") || !strings.Contains(tmpl, "commit: ") {
		t.Errorf("Template() = %q", tmpl)
	}
}
