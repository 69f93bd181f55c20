package structure

import (
	"regexp"
	"strings"

	"github.com/matzehuels/cobolgraph/pkg/config"
	"github.com/matzehuels/cobolgraph/pkg/errors"
	"github.com/matzehuels/cobolgraph/pkg/normalize"
)

var labelName = regexp.MustCompile(`^[A-Za-z0-9]([A-Za-z0-9-]{0,28}[A-Za-z0-9])?$`)

// Paragraph is a labeled block of the procedure division.
type Paragraph struct {
	Name    string // upper-cased label
	Order   int    // 1-based position in the table
	Section bool   // opened by a "NAME SECTION." header
	Label   normalize.Record

	// Start and End are the half-open range of record indexes covered by
	// the paragraph, label included.
	Start, End int

	// Lines holds the records of the paragraph, label record first.
	Lines []normalize.Record
}

// Body returns the paragraph's records without its label.
func (p *Paragraph) Body() []normalize.Record {
	return p.Lines[1:]
}

// Position returns where the paragraph's label is.
func (p *Paragraph) Position() errors.Position {
	return errors.Position{Seq: p.Label.Seq, SourceLine: p.Label.SourceLine}
}

// Table is the ordered paragraph table of one unit.
type Table struct {
	Unit      string
	ProgramID string // from the preamble, empty if absent

	// Marker holds the division marker statement, possibly spanning several
	// records. It is empty when the unit has no marker.
	Marker     []normalize.Record
	Preamble   []normalize.Record
	Paragraphs []Paragraph

	index map[string]int
}

// Len returns the number of paragraphs.
func (t *Table) Len() int { return len(t.Paragraphs) }

// HasMarker reports whether the division marker was found.
func (t *Table) HasMarker() bool { return len(t.Marker) > 0 }

// Lookup finds a paragraph by name, ignoring case and surrounding blanks.
func (t *Table) Lookup(name string) (*Paragraph, bool) {
	i, ok := t.index[Key(name)]
	if !ok {
		return nil, false
	}
	return &t.Paragraphs[i], true
}

// Names returns the paragraph names in table order.
func (t *Table) Names() []string {
	names := make([]string, len(t.Paragraphs))
	for i := range t.Paragraphs {
		names[i] = t.Paragraphs[i].Name
	}
	return names
}

// Key returns the lookup form of a paragraph name.
func Key(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

// Extract builds the paragraph table from a unit's canonical records.
// A unit without the division marker yields an empty table.
func Extract(unit string, records []normalize.Record, cfg config.Structure) (*Table, error) {
	t := &Table{Unit: unit, index: make(map[string]int)}

	marker := findMarker(records, cfg.DivisionMarker)
	if marker < 0 {
		t.Preamble = records
		t.ProgramID = programID(records)
		return t, nil
	}
	t.Preamble = records[:marker]
	t.ProgramID = programID(t.Preamble)

	// The marker statement runs until its terminating period.
	body := marker
	for body < len(records)-1 && !strings.HasSuffix(records[body].Trimmed(), ".") {
		body++
	}
	body++
	t.Marker = records[marker:body]

	current := -1
	for i := body; i < len(records); i++ {
		rec := records[i]
		name, section, ok := parseLabel(rec.Code, cfg)
		if !ok {
			if current < 0 {
				return nil, &errors.OrphanCodeError{
					Unit: unit,
					At:   errors.Position{Seq: rec.Seq, SourceLine: rec.SourceLine},
					Text: rec.Trimmed(),
				}
			}
			p := &t.Paragraphs[current]
			p.Lines = append(p.Lines, rec)
			p.End = i + 1
			continue
		}

		if prev, dup := t.index[name]; dup {
			first := t.Paragraphs[prev].Position()
			return nil, &errors.DuplicateParagraphError{
				Unit:   unit,
				Name:   name,
				First:  first,
				Second: errors.Position{Seq: rec.Seq, SourceLine: rec.SourceLine},
			}
		}
		current = len(t.Paragraphs)
		t.index[name] = current
		t.Paragraphs = append(t.Paragraphs, Paragraph{
			Name:    name,
			Order:   current + 1,
			Section: section,
			Label:   rec,
			Start:   i,
			End:     i + 1,
			Lines:   []normalize.Record{rec},
		})
	}
	return t, nil
}

func findMarker(records []normalize.Record, marker string) int {
	marker = strings.ToUpper(strings.TrimSpace(marker))
	for i, rec := range records {
		if strings.HasPrefix(strings.ToUpper(rec.Trimmed()), marker) {
			return i
		}
	}
	return -1
}

// parseLabel reports whether code is a label record and returns the
// upper-cased name.
func parseLabel(code string, cfg config.Structure) (name string, section bool, ok bool) {
	if code == "" || code[0] == ' ' {
		return "", false, false
	}
	fields := strings.Fields(code)
	switch {
	case len(fields) == 1 && strings.HasSuffix(fields[0], "."):
		name = strings.TrimSuffix(fields[0], ".")
	case len(fields) == 2 && strings.EqualFold(fields[1], "SECTION."):
		name, section = fields[0], true
	default:
		return "", false, false
	}
	if !labelName.MatchString(name) || cfg.IsReserved(name) {
		return "", false, false
	}
	return strings.ToUpper(name), section, true
}

// programID scans records for "PROGRAM-ID. NAME.".
func programID(records []normalize.Record) string {
	for _, rec := range records {
		fields := strings.Fields(rec.Code)
		for i, f := range fields {
			if !strings.HasPrefix(strings.ToUpper(f), "PROGRAM-ID") {
				continue
			}
			rest := strings.TrimPrefix(strings.ToUpper(f), "PROGRAM-ID")
			rest = strings.TrimPrefix(rest, ".")
			if rest == "" && i+1 < len(fields) {
				rest = fields[i+1]
			}
			rest = strings.Trim(rest, ".'\"")
			if rest != "" {
				return strings.ToUpper(rest)
			}
		}
	}
	return ""
}
