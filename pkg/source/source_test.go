package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/cobolgraph/pkg/errors"
)

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name string
		data string
		want []string
	}{
		{"empty", "", nil},
		{"no terminator", "A\nB", []string{"A", "B"}},
		{"trailing terminator", "A\nB\n", []string{"A", "B"}},
		{"crlf", "A\r\nB\r\n", []string{"A", "B"}},
		{"blank lines kept", "A\n\n\nB\n", []string{"A", "", "", "B"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := SplitLines([]byte(tt.data))
			var got []string
			for i, l := range lines {
				if l.Number != i+1 {
					t.Errorf("line %d numbered %d", i, l.Number)
				}
				got = append(got, string(l.Raw))
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("SplitLines() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestUnitName(t *testing.T) {
	tests := map[string]string{
		"PAY01.cbl":        "PAY01",
		"batch/PAY01.cbl":  "batch__PAY01",
		"a/b/c/MENU.cob":   "a__b__c__MENU",
		"./ONLINE.CBL":     "ONLINE",
		"noext":            "noext",
		"dots.in.name.cbl": "dots.in.name",
	}
	for in, want := range tests {
		if got := UnitName(in); got != want {
			t.Errorf("UnitName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "PROG.cbl")
	data := "000100 IDENTIFICATION DIVISION.\r\n000200 PROGRAM-ID. PROG.\r\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	u, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if u.Name != "PROG" {
		t.Errorf("Name = %q, want PROG", u.Name)
	}
	if len(u.Lines) != 2 {
		t.Fatalf("len(Lines) = %d, want 2", len(u.Lines))
	}
	if string(u.Lines[1].Raw) != "000200 PROGRAM-ID. PROG." {
		t.Errorf("Lines[1] = %q", u.Lines[1].Raw)
	}
	if u.Fingerprint != Fingerprint([]byte(data)) || len(u.Fingerprint) != 64 {
		t.Errorf("Fingerprint = %q", u.Fingerprint)
	}

	if _, err := ReadFile(filepath.Join(dir, "missing.cbl")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file: got %v, want %s", err, errors.ErrCodeFileNotFound)
	}
}

func TestFingerprintStable(t *testing.T) {
	a := Fingerprint([]byte("PROCEDURE DIVISION."))
	b := Fingerprint([]byte("PROCEDURE DIVISION."))
	c := Fingerprint([]byte("PROCEDURE DIVISION"))
	if a != b {
		t.Error("same input produced different fingerprints")
	}
	if a == c {
		t.Error("different input produced the same fingerprint")
	}
}
