package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/cobolgraph/pkg/copybook"
	"github.com/matzehuels/cobolgraph/pkg/errors"
	"github.com/matzehuels/cobolgraph/pkg/observability"
	"github.com/matzehuels/cobolgraph/pkg/source"
)

// Status is the outcome of one unit in a batch.
type Status string

// Unit statuses.
const (
	StatusOK      Status = "ok"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
)

// UnitReport describes what happened to one unit.
type UnitReport struct {
	Unit         string        `json:"unit"`
	Source       string        `json:"source"`
	Status       Status        `json:"status"`
	Code         errors.Code   `json:"code,omitempty"`
	Error        string        `json:"error,omitempty"`
	Fingerprint  string        `json:"fingerprint,omitempty"`
	ProgramID    string        `json:"program_id,omitempty"`
	Paragraphs   int           `json:"paragraphs"`
	Edges        int           `json:"edges"`
	Unresolved   int           `json:"unresolved"`
	Exits        int           `json:"exits"`
	Interactions int           `json:"interactions"`
	EntryPoints  int           `json:"entry_points"`
	Variables    int           `json:"variables"`
	Unused       int           `json:"unused_variables"`
	Copybooks    int           `json:"copybooks,omitempty"`
	Cached       bool          `json:"cached,omitempty"`
	Duration     time.Duration `json:"duration_ns"`
	Outputs      []string      `json:"outputs,omitempty"`
}

// Summary describes a batch run. Units are listed in input order.
type Summary struct {
	RunID     string        `json:"run_id"`
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration_ns"`
	OK        int           `json:"ok"`
	Failed    int           `json:"failed"`
	Skipped   int           `json:"skipped"`
	Units     []UnitReport  `json:"units"`
}

// Run processes entries in parallel, at most Config.Workers at a time, and
// writes the batch summary to the output directory.
//
// A failing unit is recorded in the summary and never affects other units.
// Cancellation of ctx is observed between units: units already started run
// to completion, the rest are reported as skipped. Run returns an error only
// when the output directories or the summary cannot be written, or when ctx
// was cancelled.
func (r *Runner) Run(ctx context.Context, entries []source.Entry) (*Summary, error) {
	start := time.Now()
	s := &Summary{
		RunID:     uuid.NewString(),
		StartedAt: start.UTC(),
		Units:     make([]UnitReport, len(entries)),
	}

	paths := r.Config.Paths
	for _, dir := range []string{paths.WorkDir, paths.OutputDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Wrap(errors.ErrCodeIO, err, "create %s", dir)
		}
	}

	workers := r.Config.Workers
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	r.Logger.Info("starting batch", "run", s.RunID, "units", len(entries), "workers", workers)

	var stop atomic.Bool
	var g errgroup.Group
	g.SetLimit(workers)
	for i, e := range entries {
		skipped := UnitReport{Unit: e.Name, Source: e.Path, Status: StatusSkipped}
		if ctx.Err() != nil || stop.Load() {
			s.Units[i] = skipped
			continue
		}
		g.Go(func() error {
			// A failure may have landed while this unit waited for a worker.
			if ctx.Err() != nil || stop.Load() {
				s.Units[i] = skipped
				return nil
			}
			rep := r.Process(ctx, e)
			if rep.Status == StatusFailed && r.FailFast {
				stop.Store(true)
			}
			s.Units[i] = rep
			return nil
		})
	}
	_ = g.Wait()

	for _, u := range s.Units {
		switch u.Status {
		case StatusOK:
			s.OK++
		case StatusFailed:
			s.Failed++
		default:
			s.Skipped++
		}
	}
	s.Duration = time.Since(start)

	if err := writeSummary(filepath.Join(paths.OutputDir, SummaryFile), s); err != nil {
		return s, err
	}
	r.Logger.Info("batch complete",
		"run", s.RunID,
		"ok", s.OK,
		"failed", s.Failed,
		"skipped", s.Skipped,
		"duration", s.Duration)

	if err := ctx.Err(); err != nil {
		return s, err
	}
	return s, nil
}

// Process analyzes one unit and writes its artifacts. Every file of the
// unit is written together on success and removed on failure.
func (r *Runner) Process(ctx context.Context, e source.Entry) UnitReport {
	hooks := observability.Pipeline()
	hooks.OnUnitStart(ctx, e.Name)

	start := time.Now()
	rep := UnitReport{Unit: e.Name, Source: e.Path}
	out := OutputsFor(r.Config.Paths.WorkDir, r.Config.Paths.OutputDir, e.Name)
	written, err := r.process(ctx, e, out, &rep)
	rep.Duration = time.Since(start)
	hooks.OnUnitComplete(ctx, e.Name, rep.Duration, err)

	if err != nil {
		removeAll(out.All())
		rep.Status = StatusFailed
		rep.Code = errors.GetCode(err)
		if rep.Code == "" {
			rep.Code = errors.ErrCodeInternal
		}
		rep.Error = err.Error()
		r.Logger.Error("unit failed", "unit", e.Name, "code", rep.Code, "err", err)
		return rep
	}

	rep.Status = StatusOK
	rep.Outputs = written
	r.Logger.Info("analyzed unit",
		"unit", e.Name,
		"paragraphs", rep.Paragraphs,
		"edges", rep.Edges,
		"exits", rep.Exits,
		"duration", rep.Duration)
	return rep
}

func (r *Runner) process(ctx context.Context, e source.Entry, out Outputs, rep *UnitReport) ([]string, error) {
	u, err := source.ReadFile(e.Path)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	u.Name = e.Name
	rep.Fingerprint = u.Fingerprint

	start := time.Now()
	exp, err := r.Expand(ctx, u)
	if err != nil {
		return nil, err
	}
	expandTime := time.Since(start)

	key := r.cacheKey(u, exp)
	list, hit := r.restore(ctx, key, out, rep)
	if hit {
		r.Logger.Debug("cache hit", "unit", u.Name)
	} else if list, err = r.build(ctx, u, exp, expandTime, out, rep); err != nil {
		return nil, err
	}
	if err := commit(list); err != nil {
		return nil, err
	}
	if !hit {
		r.store(ctx, key, rep, list)
	}

	written := make([]string, len(list))
	keep := make(map[string]struct{}, len(list))
	for i, a := range list {
		written[i] = a.path
		keep[a.path] = struct{}{}
	}
	// Images from an earlier run with other formats.
	for _, p := range out.All() {
		if _, ok := keep[p]; !ok {
			_ = os.Remove(p)
		}
	}
	return written, nil
}

// build runs every stage on u and returns its artifacts.
func (r *Runner) build(ctx context.Context, u *source.Unit, exp *copybook.Expansion, expandTime time.Duration, out Outputs, rep *UnitReport) ([]artifact, error) {
	res, err := r.analyze(ctx, u, exp, expandTime)
	if err != nil {
		return nil, err
	}
	st := res.Analysis.Stats
	rep.ProgramID = res.Table.ProgramID
	rep.Paragraphs = st.Paragraphs
	rep.Edges = st.Calls()
	rep.Unresolved = st.Unresolved
	rep.Exits = st.ExitTotal()
	rep.Interactions = st.Interactions
	rep.EntryPoints = len(res.Analysis.EntryPoints)
	rep.Variables = st.Variables
	rep.Unused = st.UnusedVariables
	rep.Copybooks = len(exp.Members)
	return r.artifacts(ctx, res, out)
}

func writeSummary(path string, s *Summary) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode summary")
	}
	return commit([]artifact{{path: path, data: buf.Bytes()}})
}

// ReadSummary reads a summary written by [Runner.Run].
func ReadSummary(path string) (*Summary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "summary %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeIO, err, "read summary %s", path)
	}
	var s Summary
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse summary %s", path)
	}
	return &s, nil
}
