package copybook

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"

	"github.com/matzehuels/cobolgraph/pkg/config"
	"github.com/matzehuels/cobolgraph/pkg/errors"
	"github.com/matzehuels/cobolgraph/pkg/source"
)

// Reasons a COPY statement is left in place.
const (
	ReasonNotFound = "not found"
	ReasonCycle    = "cycle"
)

// Member is one copybook included into a unit.
type Member struct {
	Name        string // upper case
	Path        string
	Fingerprint string
	Line        int // line of the outermost COPY statement
}

// Unresolved is a COPY statement that was not expanded.
type Unresolved struct {
	Name   string
	Line   int
	Reason string
}

// Expansion is the result of expanding one unit.
type Expansion struct {
	Lines      []source.Line
	Members    []Member
	Unresolved []Unresolved
}

// Fingerprints identifies everything the expansion read besides the unit
// itself: one entry per member and per unresolved statement, in order.
func (e *Expansion) Fingerprints() []string {
	out := make([]string, 0, len(e.Members)+len(e.Unresolved))
	for _, m := range e.Members {
		out = append(out, m.Name+"="+m.Fingerprint)
	}
	for _, u := range e.Unresolved {
		out = append(out, u.Reason+":"+u.Name)
	}
	return out
}

// Expander replaces COPY statements with the members they name.
type Expander struct {
	lib  Library
	norm config.Normalize
	enc  encoding.Encoding
	utf8 bool
}

// New returns an expander searching the library of cfg. Lines are read with
// the column contract and encoding of norm.
func New(cfg config.Copybook, norm config.Normalize) (*Expander, error) {
	enc, name, err := config.LookupEncoding(norm.Encoding)
	if err != nil {
		return nil, err
	}
	return &Expander{lib: NewLibrary(cfg), norm: norm, enc: enc, utf8: name == "UTF-8"}, nil
}

// Expand returns the lines of u with every resolvable COPY statement
// replaced. It fails only when a member that was found cannot be read.
func (x *Expander) Expand(u *source.Unit) (*Expansion, error) {
	exp := &Expansion{}
	lines, err := x.expand(u.Lines, 0, make(map[string]struct{}), exp)
	if err != nil {
		return nil, err
	}
	exp.Lines = lines
	return exp, nil
}

func (x *Expander) expand(lines []source.Line, at int, chain map[string]struct{}, exp *Expansion) ([]source.Line, error) {
	out := make([]source.Line, 0, len(lines))
	for _, line := range lines {
		num := line.Number
		if at > 0 {
			num = at
		}
		name, ok := x.statement(line.Raw)
		if !ok {
			out = append(out, source.Line{Number: num, Raw: line.Raw})
			continue
		}

		key := strings.ToUpper(name)
		if _, active := chain[key]; active {
			exp.Unresolved = append(exp.Unresolved, Unresolved{Name: key, Line: num, Reason: ReasonCycle})
			out = append(out, source.Line{Number: num, Raw: line.Raw})
			continue
		}
		path, found := x.lib.Find(name)
		if !found {
			exp.Unresolved = append(exp.Unresolved, Unresolved{Name: key, Line: num, Reason: ReasonNotFound})
			out = append(out, source.Line{Number: num, Raw: line.Raw})
			continue
		}
		member, err := source.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeCopybook, err, "line %d: copybook %s", num, key)
		}
		exp.Members = append(exp.Members, Member{Name: key, Path: path, Fingerprint: member.Fingerprint, Line: num})

		chain[key] = struct{}{}
		body, err := x.expand(member.Lines, num, chain, exp)
		delete(chain, key)
		if err != nil {
			return nil, err
		}
		out = x.sentinel(out, num, "COPYBOOK "+key)
		out = append(out, body...)
		out = x.sentinel(out, num, "END COPYBOOK "+key)
	}
	return out, nil
}

var copyRe = regexp.MustCompile(`(?i)^COPY\s+("[^"]+"|'[^']+'|[A-Z0-9][A-Z0-9-]*)(?:\s+(?:OF|IN)\s+[A-Z0-9][A-Z0-9-]*)?\s*\.$`)

// statement returns the member named by a COPY statement on raw.
func (x *Expander) statement(raw []byte) (string, bool) {
	text, ok := x.decode(raw)
	if !ok {
		return "", false
	}
	cols := []rune(text)
	if len(cols) < x.norm.CodeStart || len(cols) < x.norm.IndicatorColumn {
		return "", false
	}
	if strings.ContainsRune(x.norm.CommentIndicators, cols[x.norm.IndicatorColumn-1]) {
		return "", false
	}
	for _, p := range x.norm.IgnorePrefixes {
		if strings.HasPrefix(string(cols[:x.norm.IndicatorColumn]), p) {
			return "", false
		}
	}
	code := cols[x.norm.CodeStart-1 : min(x.norm.CodeEnd, len(cols))]
	m := copyRe.FindStringSubmatch(strings.TrimSpace(string(code)))
	if m == nil {
		return "", false
	}
	return strings.Trim(m[1], `'"`), true
}

// sentinel appends a comment line carrying text, if the column contract
// has a comment indicator to write it with.
func (x *Expander) sentinel(out []source.Line, num int, text string) []source.Line {
	ind := []rune(x.norm.CommentIndicators)
	if len(ind) == 0 {
		return out
	}
	mark := ind[0]
	if strings.ContainsRune(x.norm.CommentIndicators, '*') {
		mark = '*'
	}
	cols := []rune(strings.Repeat(" ", max(x.norm.CodeStart-1, x.norm.IndicatorColumn)))
	cols[x.norm.IndicatorColumn-1] = mark
	line := string(cols) + text

	raw := []byte(line)
	if !x.utf8 {
		enc, err := x.enc.NewEncoder().String(line)
		if err != nil {
			return out
		}
		raw = []byte(enc)
	}
	return append(out, source.Line{Number: num, Raw: raw})
}

func (x *Expander) decode(raw []byte) (string, bool) {
	if x.utf8 {
		return string(raw), utf8.Valid(raw)
	}
	out, err := x.enc.NewDecoder().Bytes(raw)
	if err != nil || strings.ContainsRune(string(out), utf8.RuneError) {
		return "", false
	}
	return string(out), true
}
