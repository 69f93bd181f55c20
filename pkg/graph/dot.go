package graph

import (
	"bytes"
	"fmt"
	"strings"
)

var nodeAttrs = map[NodeStyle][]string{
	StyleEntry:   {"shape=box", `style="rounded,filled"`, `fillcolor="#e0f7e9"`, `color="#66bb6a"`, "penwidth=1.5"},
	StyleAnomaly: {"shape=box", `style="rounded,filled"`, `fillcolor="#ffe9d6"`, `color="#ff7043"`},
	StyleShared:  {"shape=box", `style="rounded,filled"`, `fillcolor="#f0e5ff"`, `color="#ab47bc"`},
	StyleKeyed:   {"shape=box", `style="rounded,filled"`, `fillcolor="#e0ecff"`, `color="#42a5f5"`},
	StyleDefault: {"shape=box", `style="rounded,filled"`, `fillcolor="#f5f5f5"`, `color="#9e9e9e"`},
	StyleExit:    {"shape=doublecircle", "style=filled", `fillcolor="#ffebee"`, `color="#e53935"`, "penwidth=1.5"},
}

var edgeAttrs = map[EdgeStyle][]string{
	EdgeDashed:       {"style=dashed", `color="#666666"`},
	EdgeSolid:        {"style=solid", `color="#444444"`},
	EdgeSolidHeavy:   {"style=solid", `color="#444444"`, "penwidth=2.5"},
	EdgeHeavyColored: {"style=bold", `color="#e53935"`, "penwidth=2"},
}

// ToDOT serializes m as a Graphviz digraph.
func ToDOT(m *Model) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "digraph %s {\n", quote(m.Name))

	for _, n := range m.Nodes {
		attrs := append([]string{"label=" + quote(n.Label)}, nodeAttrs[n.Style]...)
		fmt.Fprintf(&buf, "  %s [%s];\n", quote(n.ID), strings.Join(attrs, ", "))
	}

	for _, e := range m.Edges {
		attrs := append([]string{"label=" + quote(e.Label)}, edgeAttrs[e.Style]...)
		if e.Unresolved {
			attrs = append(attrs, "arrowhead=odot")
		}
		fmt.Fprintf(&buf, "  %s -> %s [%s];\n", quote(e.From), quote(e.To), strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

// quote renders s as a DOT double-quoted ID. Double quotes and backslashes
// are escaped and newlines become \n.
func quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"', '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case '\n':
			b.WriteString(`\n`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
