package analysis

import "github.com/matzehuels/cobolgraph/pkg/structure"

// CallEdge is an internal control transfer between paragraphs.
type CallEdge struct {
	Source string
	Kind   EdgeKind

	// Target is the paragraph name when Resolved, otherwise the upper-cased
	// name as written.
	Target   string
	Resolved bool

	// Through is the end of a PerformRange, resolved on its own.
	Through         string
	ThroughResolved bool

	Seq        int // record of the statement
	SourceLine int
}

// IsResolved reports whether every bound of the edge names a paragraph.
func (e CallEdge) IsResolved() bool {
	if e.Kind == PerformRange {
		return e.Resolved && e.ThroughResolved
	}
	return e.Resolved
}

// ExitRecord is one occurrence of a statement that leaves the paragraph chain.
type ExitRecord struct {
	Paragraph  string
	Kind       ExitKind
	Form       string // statement as recognized: XCTL, RETURN, STOP RUN, GOBACK, ABEND
	Identifier string // program, transaction or abend code, if any
	Seq        int
	SourceLine int
}

// Interaction is a recorded CICS interaction that stays inside the program.
type Interaction struct {
	Paragraph string
	Kind      InteractionKind
	Map       string
	Mapset    string
	Target    string // transaction or program
	Seq       int
}

// Stats aggregates one unit's analysis.
type Stats struct {
	Paragraphs         int
	Jumps              int
	Performs           int
	PerformRanges      int
	Unresolved         int
	SuppressedPerforms int
	Exits              map[ExitKind]int
	Interactions       int
	Variables          int
	UnusedVariables    int
}

// Calls returns the number of call edges of all kinds.
func (s Stats) Calls() int {
	return s.Jumps + s.Performs + s.PerformRanges
}

// ExitTotal returns the number of exit records of all kinds.
func (s Stats) ExitTotal() int {
	n := 0
	for _, c := range s.Exits {
		n += c
	}
	return n
}

// Result is the analysis of one unit. It is never modified after [Analyze]
// returns.
type Result struct {
	Table        *structure.Table
	Edges        []CallEdge
	Exits        []ExitRecord
	Interactions []Interaction
	Variables    []Variable
	EntryPoints  []string
	Stats        Stats

	entries map[string]struct{}
}

// Unit returns the analyzed unit's name.
func (r *Result) Unit() string { return r.Table.Unit }

// Paragraphs returns the paragraph table in source order.
func (r *Result) Paragraphs() []structure.Paragraph { return r.Table.Paragraphs }

// IsEntryPoint reports whether the named paragraph is an entry point.
func (r *Result) IsEntryPoint(name string) bool {
	_, ok := r.entries[structure.Key(name)]
	return ok
}

// Inbound returns the resolved edges whose target or range end is name.
func (r *Result) Inbound(name string) []CallEdge {
	key := structure.Key(name)
	var in []CallEdge
	for _, e := range r.Edges {
		if (e.Resolved && e.Target == key) || (e.Kind == PerformRange && e.ThroughResolved && e.Through == key) {
			in = append(in, e)
		}
	}
	return in
}

// Unresolved returns the edges with at least one bound naming no paragraph.
func (r *Result) Unresolved() []CallEdge {
	var out []CallEdge
	for _, e := range r.Edges {
		if !e.IsResolved() {
			out = append(out, e)
		}
	}
	return out
}

// UnusedVariables returns the declared variables that are never referenced.
func (r *Result) UnusedVariables() []Variable {
	var out []Variable
	for _, v := range r.Variables {
		if v.Unused() {
			out = append(out, v)
		}
	}
	return out
}
