// Package pipeline runs the cobolgraph analysis stages over source units.
//
// This package is shared by every CLI command that analyzes code, so each
// entry point applies the same stage order and the same output layout.
//
// # Architecture
//
// Each unit goes through four stages, sequentially and entirely in memory:
//
//  1. Normalize: apply the column contract and renumber records
//  2. Structure: split the procedure division into paragraphs
//  3. Analyze: collect call edges, exits and CICS interactions
//  4. Graph: build the call graph and serialize it as DOT
//
// When copybook directories are configured, an expand step first replaces
// COPY statements with their members. It runs before the cache lookup, and
// the fingerprint of every member it read is part of the unit's cache key.
//
// Only after every stage (and optional image rendering) succeeded are the
// unit's files written, all together. A failing unit leaves no files behind
// and never stops the other units of a batch.
//
// # Usage
//
// Analyze one unit in memory:
//
//	runner := pipeline.NewRunner(cfg, nil, logger)
//	res, err := runner.AnalyzeUnit(ctx, entry)
//
// Run a batch and write every artifact:
//
//	entries, err := source.Discover(cfg.Paths)
//	summary, err := runner.Run(ctx, entries)
//	if summary.Failed > 0 {
//	    os.Exit(1)
//	}
package pipeline

import (
	"path/filepath"
	"time"

	"github.com/matzehuels/cobolgraph/pkg/analysis"
	"github.com/matzehuels/cobolgraph/pkg/copybook"
	"github.com/matzehuels/cobolgraph/pkg/graph"
	"github.com/matzehuels/cobolgraph/pkg/normalize"
	"github.com/matzehuels/cobolgraph/pkg/render"
	"github.com/matzehuels/cobolgraph/pkg/source"
	"github.com/matzehuels/cobolgraph/pkg/structure"
)

// =============================================================================
// Stages and Output Layout
// =============================================================================

// Stage names, as reported to observability hooks.
const (
	StageExpand    = "expand"
	StageNormalize = "normalize"
	StageStructure = "structure"
	StageAnalyze   = "analyze"
	StageGraph     = "graph"
)

// SummaryFile is the name of the batch summary written to the output directory.
const SummaryFile = "summary.json"

// Outputs lists the files produced for one unit.
type Outputs struct {
	Canonical string                   // <work>/<unit>.etude
	DOT       string                   // <out>/<unit>_graph.dot
	Analysis  string                   // <out>/<unit>.analysis.json
	Images    map[render.Format]string // <out>/<unit>_graph.<fmt>
}

// OutputsFor returns the file names of unit under workDir and outDir, with an
// image path for every supported format.
func OutputsFor(workDir, outDir, unit string) Outputs {
	return Outputs{
		Canonical: filepath.Join(workDir, unit+".etude"),
		DOT:       filepath.Join(outDir, unit+"_graph.dot"),
		Analysis:  filepath.Join(outDir, unit+".analysis.json"),
		Images: map[render.Format]string{
			render.SVG: filepath.Join(outDir, unit+"_graph.svg"),
			render.PNG: filepath.Join(outDir, unit+"_graph.png"),
		},
	}
}

// Artifact kinds, also used as keys of cached units.
const (
	kindCanonical = "canonical"
	kindDOT       = "dot"
	kindAnalysis  = "analysis"
)

// path returns the file for an artifact kind; image kinds are format names.
func (o Outputs) path(kind string) (string, bool) {
	switch kind {
	case kindCanonical:
		return o.Canonical, true
	case kindDOT:
		return o.DOT, true
	case kindAnalysis:
		return o.Analysis, true
	}
	p, ok := o.Images[render.Format(kind)]
	return p, ok
}

// All returns every path in o in a fixed order.
func (o Outputs) All() []string {
	return []string{o.Canonical, o.DOT, o.Analysis, o.Images[render.SVG], o.Images[render.PNG]}
}

// =============================================================================
// Unit Result
// =============================================================================

// UnitResult holds everything computed for one unit.
type UnitResult struct {
	Unit     *source.Unit
	Expanded *copybook.Expansion
	Records  []normalize.Record
	Table    *structure.Table
	Analysis *analysis.Result
	Graph    *graph.Model
	DOT      string
	Stats    Stats
}

// Stats contains per-stage timings.
type Stats struct {
	ExpandTime    time.Duration
	NormalizeTime time.Duration
	StructureTime time.Duration
	AnalyzeTime   time.Duration
	GraphTime     time.Duration
}

// Total returns the time spent in all stages.
func (s Stats) Total() time.Duration {
	return s.ExpandTime + s.NormalizeTime + s.StructureTime + s.AnalyzeTime + s.GraphTime
}
