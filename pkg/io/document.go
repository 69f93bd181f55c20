package io

import "github.com/matzehuels/cobolgraph/pkg/analysis"

// Document is the JSON form of one unit's analysis.
type Document struct {
	Unit         string        `json:"unit"`
	ProgramID    string        `json:"program_id,omitempty"`
	Source       string        `json:"source,omitempty"`
	Fingerprint  string        `json:"fingerprint,omitempty"`
	Paragraphs   []Paragraph   `json:"paragraphs"`
	Edges        []Edge        `json:"edges"`
	Exits        []Exit        `json:"exits"`
	Interactions []Interaction `json:"interactions"`
	EntryPoints  []string      `json:"entry_points"`
	Variables    []Variable    `json:"variables"`
	Unused       []string      `json:"unused_variables"`
	Copybooks    []Copybook    `json:"copybooks,omitempty"`
	Stats        Stats         `json:"stats"`
}

// Paragraph describes a paragraph's position.
type Paragraph struct {
	Name       string `json:"name"`
	Order      int    `json:"order"`
	Section    bool   `json:"section,omitempty"`
	FirstSeq   int    `json:"first_seq"`
	LastSeq    int    `json:"last_seq"`
	Lines      int    `json:"lines"`
	SourceLine int    `json:"source_line"`
}

// Edge is a call edge.
type Edge struct {
	Kind            analysis.EdgeKind `json:"kind"`
	Source          string            `json:"source"`
	Target          string            `json:"target"`
	Resolved        bool              `json:"resolved"`
	Through         string            `json:"through,omitempty"`
	ThroughResolved *bool             `json:"through_resolved,omitempty"`
	Seq             int               `json:"seq"`
	SourceLine      int               `json:"source_line"`
}

// Exit is an exit record.
type Exit struct {
	Kind       analysis.ExitKind `json:"kind"`
	Paragraph  string            `json:"paragraph"`
	Form       string            `json:"form"`
	Identifier string            `json:"identifier,omitempty"`
	Seq        int               `json:"seq"`
	SourceLine int               `json:"source_line"`
}

// Interaction is a recorded CICS interaction.
type Interaction struct {
	Kind      analysis.InteractionKind `json:"kind"`
	Paragraph string                   `json:"paragraph"`
	Map       string                   `json:"map,omitempty"`
	Mapset    string                   `json:"mapset,omitempty"`
	Target    string                   `json:"target,omitempty"`
	Seq       int                      `json:"seq"`
}

// Variable is a declared storage-section item and its use count.
type Variable struct {
	Name       string                  `json:"name"`
	Section    analysis.StorageSection `json:"section"`
	Level      int                     `json:"level"`
	Seq        int                     `json:"seq"`
	SourceLine int                     `json:"source_line"`
	Uses       int                     `json:"uses"`
}

// Copybook is a member that COPY expansion included into the unit.
type Copybook struct {
	Name        string `json:"name"`
	Path        string `json:"path"`
	Fingerprint string `json:"fingerprint"`
}

// Stats mirrors [analysis.Stats].
type Stats struct {
	Paragraphs         int                       `json:"paragraphs"`
	Jumps              int                       `json:"jumps"`
	Performs           int                       `json:"performs"`
	PerformRanges      int                       `json:"perform_ranges"`
	Unresolved         int                       `json:"unresolved"`
	SuppressedPerforms int                       `json:"suppressed_performs"`
	Interactions       int                       `json:"interactions"`
	Variables          int                       `json:"variables"`
	UnusedVariables    int                       `json:"unused_variables"`
	Exits              map[analysis.ExitKind]int `json:"exits"`
}

// Meta carries unit facts that are not part of the analysis itself.
type Meta struct {
	Source      string
	Fingerprint string
	Copybooks   []Copybook
}

// NewDocument converts r into its JSON form.
func NewDocument(r *analysis.Result, meta Meta) *Document {
	doc := &Document{
		Unit:         r.Unit(),
		ProgramID:    r.Table.ProgramID,
		Source:       meta.Source,
		Fingerprint:  meta.Fingerprint,
		Paragraphs:   make([]Paragraph, 0, r.Table.Len()),
		Edges:        make([]Edge, 0, len(r.Edges)),
		Exits:        make([]Exit, 0, len(r.Exits)),
		Interactions: make([]Interaction, 0, len(r.Interactions)),
		EntryPoints:  append([]string{}, r.EntryPoints...),
		Variables:    make([]Variable, 0, len(r.Variables)),
		Unused:       []string{},
		Copybooks:    meta.Copybooks,
		Stats: Stats{
			Paragraphs:         r.Stats.Paragraphs,
			Jumps:              r.Stats.Jumps,
			Performs:           r.Stats.Performs,
			PerformRanges:      r.Stats.PerformRanges,
			Unresolved:         r.Stats.Unresolved,
			SuppressedPerforms: r.Stats.SuppressedPerforms,
			Interactions:       r.Stats.Interactions,
			Variables:          r.Stats.Variables,
			UnusedVariables:    r.Stats.UnusedVariables,
			Exits:              make(map[analysis.ExitKind]int, len(analysis.ExitKinds)),
		},
	}

	for _, p := range r.Paragraphs() {
		doc.Paragraphs = append(doc.Paragraphs, Paragraph{
			Name:       p.Name,
			Order:      p.Order,
			Section:    p.Section,
			FirstSeq:   p.Label.Seq,
			LastSeq:    p.Lines[len(p.Lines)-1].Seq,
			Lines:      len(p.Lines),
			SourceLine: p.Label.SourceLine,
		})
	}
	for _, e := range r.Edges {
		out := Edge{
			Kind:       e.Kind,
			Source:     e.Source,
			Target:     e.Target,
			Resolved:   e.Resolved,
			Seq:        e.Seq,
			SourceLine: e.SourceLine,
		}
		if e.Kind == analysis.PerformRange {
			resolved := e.ThroughResolved
			out.Through, out.ThroughResolved = e.Through, &resolved
		}
		doc.Edges = append(doc.Edges, out)
	}
	for _, x := range r.Exits {
		doc.Exits = append(doc.Exits, Exit{
			Kind:       x.Kind,
			Paragraph:  x.Paragraph,
			Form:       x.Form,
			Identifier: x.Identifier,
			Seq:        x.Seq,
			SourceLine: x.SourceLine,
		})
	}
	for _, in := range r.Interactions {
		doc.Interactions = append(doc.Interactions, Interaction{
			Kind:      in.Kind,
			Paragraph: in.Paragraph,
			Map:       in.Map,
			Mapset:    in.Mapset,
			Target:    in.Target,
			Seq:       in.Seq,
		})
	}
	for _, v := range r.Variables {
		doc.Variables = append(doc.Variables, Variable{
			Name:       v.Name,
			Section:    v.Section,
			Level:      v.Level,
			Seq:        v.Seq,
			SourceLine: v.SourceLine,
			Uses:       v.Uses,
		})
		if v.Unused() {
			doc.Unused = append(doc.Unused, v.Name)
		}
	}
	for _, k := range analysis.ExitKinds {
		doc.Stats.Exits[k] = r.Stats.Exits[k]
	}
	return doc
}
