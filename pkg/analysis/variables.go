package analysis

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/cobolgraph/pkg/structure"
)

// StorageSection is a data division section whose items are inventoried.
type StorageSection int

const (
	WorkingStorage StorageSection = iota
	LocalStorage
	Linkage
)

var storageSectionNames = [...]string{
	WorkingStorage: "working-storage",
	LocalStorage:   "local-storage",
	Linkage:        "linkage",
}

func (s StorageSection) String() string {
	if s < 0 || int(s) >= len(storageSectionNames) {
		return fmt.Sprintf("StorageSection(%d)", int(s))
	}
	return storageSectionNames[s]
}

// MarshalText implements encoding.TextMarshaler.
func (s StorageSection) MarshalText() ([]byte, error) {
	if s < 0 || int(s) >= len(storageSectionNames) {
		return nil, fmt.Errorf("invalid storage section %d", int(s))
	}
	return []byte(storageSectionNames[s]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *StorageSection) UnmarshalText(b []byte) error {
	for i, name := range storageSectionNames {
		if name == string(b) {
			*s = StorageSection(i)
			return nil
		}
	}
	return fmt.Errorf("unknown storage section %q", b)
}

// Variable is a named data item declared in a storage section.
type Variable struct {
	Name       string
	Section    StorageSection
	Level      int // 01-49 or 77
	Seq        int
	SourceLine int

	// Uses counts the references to Name after the division marker.
	Uses int
}

// Unused reports whether nothing after the division marker references v.
func (v Variable) Unused() bool { return v.Uses == 0 }

var sectionHeaders = map[string]StorageSection{
	"WORKING-STORAGE": WorkingStorage,
	"LOCAL-STORAGE":   LocalStorage,
	"LINKAGE":         Linkage,
}

// clauseWords stand where an unnamed item's name would be ("05 PIC X.").
var clauseWords = map[string]struct{}{
	"PIC": {}, "PICTURE": {}, "VALUE": {}, "VALUES": {}, "OCCURS": {},
	"REDEFINES": {}, "USAGE": {}, "COMP": {}, "COMP-3": {}, "BINARY": {},
}

// inventory lists the variables declared in the preamble of t, in source
// order, and counts their uses in the marker statement and the paragraphs.
// Level 66 and 88 entries and FILLER items are not variables.
func inventory(t *structure.Table) []Variable {
	var vars []Variable
	var section StorageSection
	tracked := false
	for _, rec := range t.Preamble {
		fields := strings.Fields(strings.ToUpper(rec.Trimmed()))
		if len(fields) == 0 {
			continue
		}
		if len(fields) >= 2 && strings.TrimRight(fields[1], ".") == "SECTION" {
			section, tracked = sectionHeaders[fields[0]]
			continue
		}
		if !tracked || len(fields) < 2 {
			continue
		}
		level, ok := levelNumber(fields[0])
		if !ok {
			continue
		}
		name := strings.TrimRight(fields[1], ".,")
		if _, clause := clauseWords[name]; clause || name == "FILLER" || !nameRe.MatchString(name) {
			continue
		}
		vars = append(vars, Variable{
			Name:       name,
			Section:    section,
			Level:      level,
			Seq:        rec.Seq,
			SourceLine: rec.SourceLine,
		})
	}
	if len(vars) == 0 {
		return nil
	}

	uses := make(map[string]int, len(vars))
	for _, v := range vars {
		uses[v.Name] = 0
	}
	count := func(toks []token) {
		for _, tok := range toks {
			if _, ok := uses[tok.upper]; ok && !tok.literal {
				uses[tok.upper]++
			}
		}
	}
	count(tokenize(t.Marker))
	for _, p := range t.Paragraphs {
		count(tokenize(p.Lines))
	}
	for i := range vars {
		vars[i].Uses = uses[vars[i].Name]
	}
	return vars
}

// levelNumber parses a data description level that declares a variable.
func levelNumber(s string) (int, bool) {
	s = strings.TrimRight(s, ".")
	if s == "" || strings.TrimLeft(s, "0123456789") != "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || !(n >= 1 && n <= 49 || n == 77) {
		return 0, false
	}
	return n, true
}
