// Package graph maps an analysis result to a styled directed graph and
// serializes it as Graphviz DOT.
//
// # Model
//
// [Build] produces a [Model] with one node per paragraph, in table order,
// followed by one exit node per distinct (kind, identifier) pair, in the
// order the exits were found. Every call edge and every exit record becomes
// one edge, in discovery order: call edges first, then exits.
//
// Paragraph nodes take the first matching style of:
//
//	entry    the paragraph is an entry point
//	anomaly  the name matches the anomaly pattern (default "ANO|ZZ")
//	shared   the name matches the shared-routine pattern (default "^SRHP-")
//	keyed    the name matches the function-key pattern (default "PF")
//	default  anything else
//
// Exit nodes always use the exit style. Edge styles follow the edge kind:
// GO TO is dashed, PERFORM solid, PERFORM THRU solid-heavy and exits
// heavy-colored.
//
// # DOT
//
// [ToDOT] writes the model using only node and edge statements inside a
// single digraph, so the output is byte-identical for identical input:
//
//	digraph "PAYROLL" {
//	  "000100-INIT" [label="000100-INIT", shape=box, ...];
//	  "exit:program-end" [label="GOBACK", shape=doublecircle, ...];
//	  "000100-INIT" -> "000200-PROC" [label="PERFORM", style=solid, ...];
//	}
//
// An edge to an unresolved target points at the target's name; Graphviz
// draws such nodes with default attributes.
package graph
