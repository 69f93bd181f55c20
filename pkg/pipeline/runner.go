package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cobolgraph/pkg/analysis"
	"github.com/matzehuels/cobolgraph/pkg/cache"
	"github.com/matzehuels/cobolgraph/pkg/config"
	"github.com/matzehuels/cobolgraph/pkg/copybook"
	"github.com/matzehuels/cobolgraph/pkg/errors"
	"github.com/matzehuels/cobolgraph/pkg/graph"
	pkgio "github.com/matzehuels/cobolgraph/pkg/io"
	"github.com/matzehuels/cobolgraph/pkg/normalize"
	"github.com/matzehuels/cobolgraph/pkg/observability"
	"github.com/matzehuels/cobolgraph/pkg/render"
	"github.com/matzehuels/cobolgraph/pkg/source"
	"github.com/matzehuels/cobolgraph/pkg/structure"
)

// Runner runs the analysis stages with one configuration.
//
// The Runner holds no per-unit state: multiple goroutines can analyze
// different units with the same Runner.
type Runner struct {
	Config   config.Config
	Cache    cache.Cache
	Renderer render.Renderer // nil disables image output
	Logger   *log.Logger

	// FailFast stops scheduling new units after the first failure.
	FailFast bool
}

// NewRunner creates a runner for cfg with caching disabled.
// If logger is nil, the default charmbracelet logger is used.
func NewRunner(cfg config.Config, renderer render.Renderer, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Config:   cfg,
		Cache:    cache.NewNullCache(),
		Renderer: renderer,
		Logger:   logger,
	}
}

// AnalyzeUnit reads the source file of e and runs every stage on it.
// Nothing is written to disk.
func (r *Runner) AnalyzeUnit(ctx context.Context, e source.Entry) (*UnitResult, error) {
	u, err := source.ReadFile(e.Path)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	if e.Name != "" {
		u.Name = e.Name
	}
	return r.Analyze(ctx, u)
}

// Analyze expands u and runs the normalize → structure → analyze → graph
// stages on it. A normalize or structure failure stops the unit before
// analysis.
func (r *Runner) Analyze(ctx context.Context, u *source.Unit) (*UnitResult, error) {
	start := time.Now()
	exp, err := r.Expand(ctx, u)
	if err != nil {
		return nil, err
	}
	return r.analyze(ctx, u, exp, time.Since(start))
}

// Expand replaces the COPY statements of u with their copybooks. Without
// configured copybook directories the lines of u are returned unchanged.
// Statements left unexpanded are logged as warnings.
func (r *Runner) Expand(ctx context.Context, u *source.Unit) (*copybook.Expansion, error) {
	if !r.Config.Copybook.Enabled() {
		return &copybook.Expansion{Lines: u.Lines}, nil
	}
	start := time.Now()
	x, err := copybook.New(r.Config.Copybook, r.Config.Normalize)
	var exp *copybook.Expansion
	if err == nil {
		exp, err = x.Expand(u)
	}
	observability.Pipeline().OnStageComplete(ctx, u.Name, StageExpand, time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("expand: %w", err)
	}
	for _, m := range exp.Unresolved {
		r.Logger.Warn("copybook not expanded", "unit", u.Name, "copybook", m.Name, "line", m.Line, "reason", m.Reason)
	}
	return exp, nil
}

func (r *Runner) analyze(ctx context.Context, u *source.Unit, exp *copybook.Expansion, expandTime time.Duration) (*UnitResult, error) {
	hooks := observability.Pipeline()
	res := &UnitResult{Unit: u, Expanded: exp}
	res.Stats.ExpandTime = expandTime

	// Stage 1: Normalize
	start := time.Now()
	records, err := normalize.Normalize(u.Name, exp.Lines, r.Config.Normalize)
	res.Stats.NormalizeTime = time.Since(start)
	hooks.OnStageComplete(ctx, u.Name, StageNormalize, res.Stats.NormalizeTime, err)
	if err != nil {
		return nil, fmt.Errorf("normalize: %w", err)
	}
	res.Records = records

	// Stage 2: Structure
	start = time.Now()
	table, err := structure.Extract(u.Name, records, r.Config.Structure)
	res.Stats.StructureTime = time.Since(start)
	hooks.OnStageComplete(ctx, u.Name, StageStructure, res.Stats.StructureTime, err)
	if err != nil {
		return nil, fmt.Errorf("structure: %w", err)
	}
	res.Table = table
	if !table.HasMarker() {
		r.Logger.Warn("no procedure division", "unit", u.Name, "marker", r.Config.Structure.DivisionMarker)
	}

	// Stage 3: Analyze
	start = time.Now()
	result, err := analysis.Analyze(table, r.Config.Analysis)
	res.Stats.AnalyzeTime = time.Since(start)
	hooks.OnStageComplete(ctx, u.Name, StageAnalyze, res.Stats.AnalyzeTime, err)
	if err != nil {
		return nil, fmt.Errorf("analyze: %w", err)
	}
	res.Analysis = result

	// Stage 4: Graph
	start = time.Now()
	model, err := graph.Build(result, r.Config.Graph)
	if err == nil {
		res.DOT = graph.ToDOT(model)
		err = render.Validate([]byte(res.DOT))
	}
	res.Stats.GraphTime = time.Since(start)
	hooks.OnStageComplete(ctx, u.Name, StageGraph, res.Stats.GraphTime, err)
	if err != nil {
		return nil, fmt.Errorf("graph: %w", err)
	}
	res.Graph = model

	r.Logger.Debug("analyzed unit",
		"unit", u.Name,
		"paragraphs", result.Stats.Paragraphs,
		"edges", result.Stats.Calls(),
		"exits", result.Stats.ExitTotal(),
		"variables", result.Stats.Variables,
		"copybooks", len(exp.Members),
		"duration", res.Stats.Total())

	return res, nil
}

// artifacts renders images and serializes every output of res.
func (r *Runner) artifacts(ctx context.Context, res *UnitResult, out Outputs) ([]artifact, error) {
	var canonical bytes.Buffer
	if err := normalize.Write(&canonical, res.Records, r.Config.Normalize.SeqWidth); err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "write canonical records")
	}

	var doc bytes.Buffer
	meta := pkgio.Meta{Source: res.Unit.Path, Fingerprint: res.Unit.Fingerprint}
	if res.Expanded != nil {
		for _, m := range res.Expanded.Members {
			meta.Copybooks = append(meta.Copybooks, pkgio.Copybook{Name: m.Name, Path: m.Path, Fingerprint: m.Fingerprint})
		}
	}
	if err := pkgio.WriteJSON(pkgio.NewDocument(res.Analysis, meta), &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "write analysis document")
	}

	list := []artifact{
		{kind: kindCanonical, path: out.Canonical, data: canonical.Bytes()},
		{kind: kindDOT, path: out.DOT, data: []byte(res.DOT)},
		{kind: kindAnalysis, path: out.Analysis, data: doc.Bytes()},
	}

	formats := r.Config.Render.Formats
	if r.Renderer == nil || len(formats) == 0 {
		return list, nil
	}

	hooks := observability.Render()
	hooks.OnRenderStart(ctx, res.Unit.Name, formats)
	start := time.Now()
	images, err := r.renderImages(ctx, []byte(res.DOT), formats)
	hooks.OnRenderComplete(ctx, res.Unit.Name, formats, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	for _, img := range images {
		list = append(list, artifact{kind: string(img.format), path: out.Images[img.format], data: img.data})
	}
	return list, nil
}

type image struct {
	format render.Format
	data   []byte
}

func (r *Runner) renderImages(ctx context.Context, dot []byte, formats []string) ([]image, error) {
	images := make([]image, 0, len(formats))
	for _, name := range formats {
		format, err := render.ParseFormat(name)
		if err != nil {
			return nil, err
		}
		data, err := r.Renderer.Render(ctx, dot, format)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		images = append(images, image{format: format, data: data})
	}
	return images, nil
}
