package graph

import (
	"regexp"
	"strings"

	"github.com/matzehuels/cobolgraph/pkg/analysis"
	"github.com/matzehuels/cobolgraph/pkg/config"
	"github.com/matzehuels/cobolgraph/pkg/errors"
)

// NodeStyle is the visual category of a node.
type NodeStyle string

// Node styles.
const (
	StyleEntry   NodeStyle = "entry"
	StyleAnomaly NodeStyle = "anomaly"
	StyleShared  NodeStyle = "shared"
	StyleKeyed   NodeStyle = "keyed"
	StyleDefault NodeStyle = "default"
	StyleExit    NodeStyle = "exit"
)

// EdgeStyle is the visual category of an edge.
type EdgeStyle string

// Edge styles.
const (
	EdgeDashed       EdgeStyle = "dashed"
	EdgeSolid        EdgeStyle = "solid"
	EdgeSolidHeavy   EdgeStyle = "solid-heavy"
	EdgeHeavyColored EdgeStyle = "heavy-colored"
)

// Node is a paragraph or a synthetic exit.
type Node struct {
	ID    string
	Label string
	Style NodeStyle
}

// Edge connects two node IDs.
type Edge struct {
	From, To string
	Label    string
	Style    EdgeStyle

	// Unresolved marks a call edge whose target names no paragraph.
	Unresolved bool
}

// Model is the graph of one unit.
type Model struct {
	Name  string
	Nodes []Node
	Edges []Edge
}

// Build maps r to a graph model using the naming patterns in cfg.
func Build(r *analysis.Result, cfg config.Graph) (*Model, error) {
	c, err := newClassifier(cfg)
	if err != nil {
		return nil, err
	}

	m := &Model{Name: r.Unit()}
	for _, p := range r.Paragraphs() {
		m.Nodes = append(m.Nodes, Node{
			ID:    p.Name,
			Label: p.Name,
			Style: c.style(p.Name, r.IsEntryPoint(p.Name)),
		})
	}

	seen := make(map[string]struct{})
	for _, x := range r.Exits {
		id := ExitID(x.Kind, x.Identifier)
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		m.Nodes = append(m.Nodes, Node{ID: id, Label: exitLabel(x), Style: StyleExit})
	}

	for _, e := range r.Edges {
		m.Edges = append(m.Edges, callEdge(e))
	}
	for _, x := range r.Exits {
		m.Edges = append(m.Edges, Edge{
			From:  x.Paragraph,
			To:    ExitID(x.Kind, x.Identifier),
			Label: x.Form,
			Style: EdgeHeavyColored,
		})
	}
	return m, nil
}

// ExitID returns the node ID of the exit node for kind and identifier.
func ExitID(kind analysis.ExitKind, ident string) string {
	if ident == "" {
		return "exit:" + kind.String()
	}
	return "exit:" + kind.String() + ":" + ident
}

func exitLabel(x analysis.ExitRecord) string {
	if x.Identifier == "" {
		return x.Form
	}
	return x.Form + " " + x.Identifier
}

func callEdge(e analysis.CallEdge) Edge {
	out := Edge{From: e.Source, To: e.Target, Unresolved: !e.IsResolved()}
	switch e.Kind {
	case analysis.Jump:
		out.Label, out.Style = "GO TO", EdgeDashed
	case analysis.Perform:
		out.Label, out.Style = "PERFORM", EdgeSolid
	case analysis.PerformRange:
		out.Label, out.Style = "THRU "+e.Through, EdgeSolidHeavy
	}
	return out
}

type classifier struct {
	anomaly, shared, keyed *regexp.Regexp
}

func newClassifier(cfg config.Graph) (*classifier, error) {
	var c classifier
	for _, p := range []struct {
		key  string
		expr string
		dst  **regexp.Regexp
	}{
		{"anomaly_pattern", cfg.AnomalyPattern, &c.anomaly},
		{"shared_pattern", cfg.SharedPattern, &c.shared},
		{"keyed_pattern", cfg.KeyedPattern, &c.keyed},
	} {
		re, err := config.CompilePattern(p.expr)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s", p.key)
		}
		*p.dst = re
	}
	return &c, nil
}

// style applies the categories in order; the first match wins.
func (c *classifier) style(name string, entry bool) NodeStyle {
	name = strings.ToUpper(name)
	switch {
	case entry:
		return StyleEntry
	case matches(c.anomaly, name):
		return StyleAnomaly
	case matches(c.shared, name):
		return StyleShared
	case matches(c.keyed, name):
		return StyleKeyed
	default:
		return StyleDefault
	}
}

func matches(re *regexp.Regexp, s string) bool {
	return re != nil && re.MatchString(s)
}
