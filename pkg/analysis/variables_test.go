package analysis

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/cobolgraph/pkg/config"
	"github.com/matzehuels/cobolgraph/pkg/normalize"
	"github.com/matzehuels/cobolgraph/pkg/structure"
)

// analyzeProgram runs extraction and analysis over a whole program, data
// division included.
func analyzeProgram(t *testing.T, codes ...string) *Result {
	t.Helper()
	cfg := config.Default()
	recs := make([]normalize.Record, len(codes))
	for i, c := range codes {
		recs[i] = normalize.Record{Seq: i + 1, Indicator: ' ', Code: fmt.Sprintf("%-65s", c), SourceLine: i + 1}
	}
	tbl, err := structure.Extract("TEST", recs, cfg.Structure)
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}
	res, err := Analyze(tbl, cfg.Analysis)
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}
	return res
}

func TestAnalyzeVariables(t *testing.T) {
	res := analyzeProgram(t,
		"IDENTIFICATION DIVISION.",
		"PROGRAM-ID. PAY01.",
		"DATA DIVISION.",
		"FILE SECTION.",
		"FD  PAYFILE.",
		"01  PAY-REC             PIC X(80).",
		"WORKING-STORAGE SECTION.",
		"01  WS-CNT              PIC 9(4) VALUE 0.",
		"01  WS-CNT-TOTAL        PIC 9(6).",
		"01  WS-GROUP.",
		"    05  FILLER          PIC X(2).",
		"    05  WS-FLAG         PIC X.",
		"        88  WS-DONE     VALUE 'Y'.",
		"    05  PIC X(10).",
		"77  WS-UNUSED           PIC X.",
		"LOCAL-STORAGE SECTION.",
		"01  LS-TMP              PIC X.",
		"LINKAGE SECTION.",
		"01  DFHCOMMAREA         PIC X(100).",
		"PROCEDURE DIVISION USING DFHCOMMAREA.",
		"MAIN.",
		"    ADD 1 TO WS-CNT",
		"    MOVE WS-CNT TO WS-CNT-TOTAL",
		"    DISPLAY 'WS-UNUSED' WS-FLAG(1:1)",
		"    MOVE SPACES TO LS-TMP.",
	)

	want := []Variable{
		{Name: "WS-CNT", Section: WorkingStorage, Level: 1, Seq: 8, SourceLine: 8, Uses: 2},
		{Name: "WS-CNT-TOTAL", Section: WorkingStorage, Level: 1, Seq: 9, SourceLine: 9, Uses: 1},
		{Name: "WS-GROUP", Section: WorkingStorage, Level: 1, Seq: 10, SourceLine: 10},
		{Name: "WS-FLAG", Section: WorkingStorage, Level: 5, Seq: 12, SourceLine: 12, Uses: 1},
		{Name: "WS-UNUSED", Section: WorkingStorage, Level: 77, Seq: 15, SourceLine: 15},
		{Name: "LS-TMP", Section: LocalStorage, Level: 1, Seq: 17, SourceLine: 17, Uses: 1},
		{Name: "DFHCOMMAREA", Section: Linkage, Level: 1, Seq: 19, SourceLine: 19, Uses: 1},
	}
	if diff := cmp.Diff(want, res.Variables); diff != "" {
		t.Errorf("variables mismatch (-want +got):\n%s", diff)
	}

	var unused []string
	for _, v := range res.UnusedVariables() {
		unused = append(unused, v.Name)
	}
	if diff := cmp.Diff([]string{"WS-GROUP", "WS-UNUSED"}, unused); diff != "" {
		t.Errorf("unused mismatch (-want +got):\n%s", diff)
	}
	if res.Stats.Variables != 7 || res.Stats.UnusedVariables != 2 {
		t.Errorf("variable stats = %d declared, %d unused; want 7, 2", res.Stats.Variables, res.Stats.UnusedVariables)
	}
}

func TestAnalyzeVariablesNone(t *testing.T) {
	res := analyze(t, "MAIN.", "    GOBACK.")
	if res.Variables != nil || res.Stats.Variables != 0 {
		t.Errorf("variables = %v, want none", res.Variables)
	}
}

func TestLevelNumber(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"01", 1, true},
		{"5", 5, true},
		{"49", 49, true},
		{"77", 77, true},
		{"01.", 1, true},
		{"66", 0, false},
		{"88", 0, false},
		{"50", 0, false},
		{"9(4)", 0, false},
		{"+1", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := levelNumber(tt.in)
			if got != tt.want || ok != tt.ok {
				t.Errorf("levelNumber(%q) = %d, %v, want %d, %v", tt.in, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestStorageSectionText(t *testing.T) {
	for _, s := range []StorageSection{WorkingStorage, LocalStorage, Linkage} {
		b, err := s.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v) error: %v", s, err)
		}
		var got StorageSection
		if err := got.UnmarshalText(b); err != nil || got != s {
			t.Errorf("UnmarshalText(%q) = %v, %v, want %v", b, got, err, s)
		}
	}
	if err := new(StorageSection).UnmarshalText([]byte("file")); err == nil {
		t.Error("UnmarshalText(file) succeeded")
	}
}
