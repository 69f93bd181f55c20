// Package io provides JSON import and export of analysis results.
//
// # Overview
//
// The JSON analysis document is the interface to report generators and other
// tools that consume an analyzed unit without linking against this module.
// It is written next to the DOT graph as <unit>.analysis.json and is never
// read back by the analysis stages.
//
// # JSON Format
//
//	{
//	  "unit": "batch__PAY01",
//	  "program_id": "PAY01",
//	  "source": "sources/batch/PAY01.cbl",
//	  "fingerprint": "5f0c...",
//	  "paragraphs": [
//	    {"name": "000100-INIT", "order": 1, "first_seq": 12, "last_seq": 14, "lines": 3, "source_line": 40}
//	  ],
//	  "edges": [
//	    {"kind": "perform", "source": "000100-INIT", "target": "000200-PROC", "resolved": true, "seq": 13, "source_line": 41}
//	  ],
//	  "exits": [
//	    {"kind": "program-end", "paragraph": "000200-PROC", "form": "GOBACK", "seq": 16, "source_line": 44}
//	  ],
//	  "interactions": [],
//	  "entry_points": ["000100-INIT"],
//	  "variables": [
//	    {"name": "WS-CNT", "section": "working-storage", "level": 1, "seq": 8, "source_line": 36, "uses": 2}
//	  ],
//	  "unused_variables": [],
//	  "copybooks": [
//	    {"name": "PAYREC", "path": "copy/PAYREC.cpy", "fingerprint": "91ab..."}
//	  ],
//	  "stats": {"paragraphs": 2, "performs": 1, "variables": 1, "exits": {"program-end": 1}, ...}
//	}
//
// Edge kinds are "jump", "perform" and "perform-range"; a perform-range edge
// also carries "through" and "through_resolved". Exit kinds are
// "external-transfer", "return", "program-end" and "forced-stop". Variable
// sections are "working-storage", "local-storage" and "linkage"; the
// copybooks list is omitted when the unit was not expanded.
//
// # Import
//
// Use [ImportJSON] to read a document from a file path, or [ReadJSON] to read
// from any io.Reader. Unknown kinds are rejected.
//
// # Export
//
// Build a [Document] with [NewDocument], then write it with [ExportJSON] or
// [WriteJSON].
package io
