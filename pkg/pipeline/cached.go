package pipeline

import (
	"context"
	"encoding/json"

	"github.com/matzehuels/cobolgraph/pkg/buildinfo"
	"github.com/matzehuels/cobolgraph/pkg/cache"
	"github.com/matzehuels/cobolgraph/pkg/copybook"
	"github.com/matzehuels/cobolgraph/pkg/source"
)

// cachedUnit is the cache value of a successfully processed unit.
type cachedUnit struct {
	ProgramID    string           `json:"program_id"`
	Paragraphs   int              `json:"paragraphs"`
	Edges        int              `json:"edges"`
	Unresolved   int              `json:"unresolved"`
	Exits        int              `json:"exits"`
	Interactions int              `json:"interactions"`
	EntryPoints  int              `json:"entry_points"`
	Variables    int              `json:"variables"`
	Unused       int              `json:"unused_variables"`
	Copybooks    int              `json:"copybooks"`
	Artifacts    []cachedArtifact `json:"artifacts"`
}

type cachedArtifact struct {
	Kind string `json:"kind"`
	Data []byte `json:"data"`
}

func (r *Runner) cacheKey(u *source.Unit, exp *copybook.Expansion) string {
	return cache.UnitKey(u.Name, u.Path, u.Fingerprint, buildinfo.Get().Version, r.Config, exp.Fingerprints()...)
}

// restore returns the artifacts of a cached unit mapped onto out, filling
// rep with the cached counts. Any decoding problem is a miss.
func (r *Runner) restore(ctx context.Context, key string, out Outputs, rep *UnitReport) ([]artifact, bool) {
	if r.Cache == nil {
		return nil, false
	}
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil || !hit {
		return nil, false
	}
	var cu cachedUnit
	if err := json.Unmarshal(data, &cu); err != nil {
		return nil, false
	}
	list := make([]artifact, 0, len(cu.Artifacts))
	for _, a := range cu.Artifacts {
		path, ok := out.path(a.Kind)
		if !ok {
			return nil, false
		}
		list = append(list, artifact{kind: a.Kind, path: path, data: a.Data})
	}

	rep.ProgramID = cu.ProgramID
	rep.Paragraphs = cu.Paragraphs
	rep.Edges = cu.Edges
	rep.Unresolved = cu.Unresolved
	rep.Exits = cu.Exits
	rep.Interactions = cu.Interactions
	rep.EntryPoints = cu.EntryPoints
	rep.Variables = cu.Variables
	rep.Unused = cu.Unused
	rep.Copybooks = cu.Copybooks
	rep.Cached = true
	return list, true
}

// store saves a processed unit. Cache failures only cost a future miss.
func (r *Runner) store(ctx context.Context, key string, rep *UnitReport, list []artifact) {
	if r.Cache == nil {
		return
	}
	cu := cachedUnit{
		ProgramID:    rep.ProgramID,
		Paragraphs:   rep.Paragraphs,
		Edges:        rep.Edges,
		Unresolved:   rep.Unresolved,
		Exits:        rep.Exits,
		Interactions: rep.Interactions,
		EntryPoints:  rep.EntryPoints,
		Variables:    rep.Variables,
		Unused:       rep.Unused,
		Copybooks:    rep.Copybooks,
		Artifacts:    make([]cachedArtifact, len(list)),
	}
	for i, a := range list {
		cu.Artifacts[i] = cachedArtifact{Kind: a.kind, Data: a.data}
	}
	data, err := json.Marshal(cu)
	if err != nil {
		return
	}
	if err := r.Cache.Set(ctx, key, data, cache.TTLUnit); err != nil {
		r.Logger.Debug("cache write failed", "unit", rep.Unit, "err", err)
	}
}
