// Package pkg provides the core libraries of cobolgraph, a static analyzer
// that turns legacy fixed-format COBOL/CICS programs into control-flow graphs.
//
// # Overview
//
// Every source file is an independent unit. A unit flows through four pure
// stages, each taking the output of the previous one plus its own section of
// [config.Config]:
//
//	raw 80-column source
//	         ↓
//	    [copybook] (COPY statements expanded, when directories are configured)
//	         ↓
//	    [normalize] (canonical sequence-numbered records)
//	         ↓
//	    [structure] (paragraph table)
//	         ↓
//	    [analysis] (calls, jumps, exits and interactions)
//	         ↓
//	    [graph] (categorized model, DOT text)
//	         ↓
//	    DOT / JSON / SVG / PNG
//
// # Quick Start
//
// Analyze one program in memory:
//
//	cfg := config.Default()
//	u, _ := source.ReadFile("sources/PAYROLL.cbl")
//
//	records, _ := normalize.Normalize(u.Name, u.Lines, cfg.Normalize)
//	table, _ := structure.Extract(u.Name, records, cfg.Structure)
//	result, _ := analysis.Analyze(table, cfg.Analysis)
//	model, _ := graph.Build(result, cfg.Graph)
//
//	fmt.Println(graph.ToDOT(model))
//
// Analyze a whole source tree with outputs on disk:
//
//	entries, _ := source.Discover(cfg.Paths)
//	runner := pipeline.NewRunner(cfg, nil, log.Default())
//	summary, _ := runner.Run(ctx, entries)
//
// # Main Packages
//
// ## Analysis stages
//
// [normalize] - Column slicing, comment and noise removal, resequencing.
//
// [structure] - Paragraph boundaries after the division marker.
//
// [analysis] - PERFORM ranges, GO TO, CALL, EXEC CICS exits and user
// interaction detection, plus the storage-section variable inventory.
//
// [graph] - Node categories, edge styles and deterministic DOT emission.
//
// ## Infrastructure
//
// [copybook] - COPY expansion from ordered copybook directories.
//
// [source] - Unit discovery with include globs and ignore files.
//
// [pipeline] - Batch orchestration: bounded workers, per-unit failure
// isolation, atomic output commits and the run summary.
//
// [render] - Optional DOT rasterization, in process or via the dot binary.
//
// [cache] - Content-addressed reuse of unchanged units between runs.
//
// [io] - Versioned JSON export of analysis results.
//
// [config], [errors], [observability], [buildinfo] - Shared configuration,
// structured error codes, lifecycle hooks and version metadata.
//
// # Testing
//
//	go test ./pkg/...
//	go test ./pkg/analysis/...
//
// [normalize]: https://pkg.go.dev/github.com/matzehuels/cobolgraph/pkg/normalize
// [structure]: https://pkg.go.dev/github.com/matzehuels/cobolgraph/pkg/structure
// [analysis]: https://pkg.go.dev/github.com/matzehuels/cobolgraph/pkg/analysis
// [graph]: https://pkg.go.dev/github.com/matzehuels/cobolgraph/pkg/graph
// [source]: https://pkg.go.dev/github.com/matzehuels/cobolgraph/pkg/source
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/cobolgraph/pkg/pipeline
// [render]: https://pkg.go.dev/github.com/matzehuels/cobolgraph/pkg/render
// [cache]: https://pkg.go.dev/github.com/matzehuels/cobolgraph/pkg/cache
// [io]: https://pkg.go.dev/github.com/matzehuels/cobolgraph/pkg/io
// [config]: https://pkg.go.dev/github.com/matzehuels/cobolgraph/pkg/config
// [config.Config]: https://pkg.go.dev/github.com/matzehuels/cobolgraph/pkg/config#Config
// [errors]: https://pkg.go.dev/github.com/matzehuels/cobolgraph/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/cobolgraph/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/cobolgraph/pkg/buildinfo
package pkg
