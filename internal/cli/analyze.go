package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cobolgraph/pkg/config"
	"github.com/matzehuels/cobolgraph/pkg/errors"
	"github.com/matzehuels/cobolgraph/pkg/render"
	"github.com/matzehuels/cobolgraph/pkg/source"
)

// analyzeOpts holds the command-line flags for the analyze command.
// Flags that are set override the configuration file.
type analyzeOpts struct {
	output   string   // output directory for DOT, JSON and images
	work     string   // work directory for canonical records
	formats  string   // comma-separated image formats, "" for none
	renderer string   // "graphviz" or "command"
	workers  int      // parallel units
	failFast bool     // stop scheduling after the first failed unit
	noCache  bool     // reanalyze every unit
	copyDirs []string // copybook directories, searched in order
}

func (c *CLI) analyzeCommand() *cobra.Command {
	var opts analyzeOpts

	cmd := &cobra.Command{
		Use:   "analyze [dir | files...]",
		Short: "Analyze COBOL units and write their call graphs",
		Long: `Analyze discovers source units (or takes the given files), runs every
analysis stage on each unit in parallel, and writes per unit:

  <work>/<unit>.etude             canonical records
  <out>/<unit>_graph.dot          call graph
  <out>/<unit>.analysis.json      paragraphs, edges, exits, interactions,
                                  variables
  <out>/<unit>_graph.<format>     rendered image, when --format is set

With -I (or [copybook] dirs in the config file) COPY statements are replaced
by their copybooks before normalization.

A unit that fails leaves no files behind. The command exits non-zero when any
unit failed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if err := opts.apply(cmd, &cfg); err != nil {
				return err
			}
			return c.runAnalyze(cmd.Context(), cfg, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output directory (default from config)")
	cmd.Flags().StringVarP(&opts.work, "work", "w", "", "work directory for canonical records (default from config)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "image format(s) to render: svg, png (comma-separated)")
	cmd.Flags().StringVar(&opts.renderer, "renderer", "", "renderer: graphviz (in process) or command (dot binary)")
	cmd.Flags().IntVarP(&opts.workers, "workers", "j", 0, "units analyzed in parallel (default from config)")
	cmd.Flags().BoolVar(&opts.failFast, "fail-fast", false, "stop scheduling units after the first failure")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "reanalyze units even when source and settings are unchanged")
	cmd.Flags().StringSliceVarP(&opts.copyDirs, "copybook-dir", "I", nil, "copybook directory, searched in order (repeatable)")
	registerRenderCompletions(cmd)
	_ = cmd.MarkFlagDirname("copybook-dir")
	cmd.ValidArgsFunction = completeFiles(-1, sourceExts...)

	return cmd
}

// apply copies the flags the user set onto cfg and revalidates it.
func (o *analyzeOpts) apply(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.Paths.OutputDir = o.output
	}
	if flags.Changed("work") {
		cfg.Paths.WorkDir = o.work
	}
	if flags.Changed("format") {
		formats, err := parseFormats(o.formats)
		if err != nil {
			return err
		}
		cfg.Render.Formats = formats
	}
	if flags.Changed("renderer") {
		cfg.Render.Engine = o.renderer
	}
	if flags.Changed("workers") {
		cfg.Workers = o.workers
	}
	if flags.Changed("copybook-dir") {
		cfg.Copybook.Dirs = o.copyDirs
	}
	return cfg.Validate()
}

// parseFormats parses the --format flag. The empty string selects no images.
func parseFormats(s string) ([]string, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var formats []string
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if _, err := render.ParseFormat(f); err != nil {
			return nil, err
		}
		formats = append(formats, f)
	}
	return formats, nil
}

// collectEntries resolves the command arguments into units. No argument
// discovers under the configured source directory, a single directory
// argument discovers under it, and anything else is a list of files.
func collectEntries(paths config.Paths, args []string) ([]source.Entry, error) {
	switch len(args) {
	case 0:
		return source.Discover(paths)
	case 1:
		if info, err := os.Stat(args[0]); err == nil && info.IsDir() {
			paths.SourceDir = args[0]
			return source.Discover(paths)
		}
	}
	for _, a := range args {
		if info, err := os.Stat(a); err == nil && info.IsDir() {
			return nil, errors.New(errors.ErrCodeInvalidInput, "cannot mix directory %s with other arguments", a)
		}
	}
	return source.Files(args)
}

func (c *CLI) runAnalyze(ctx context.Context, cfg config.Config, args []string, opts analyzeOpts) error {
	logger := loggerFromContext(ctx)

	entries, err := collectEntries(cfg.Paths, args)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		printWarning("No source units found in %s", cfg.Paths.SourceDir)
		return nil
	}

	runner, err := c.newRunner(ctx, cfg, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Cache.Close()
	runner.FailFast = opts.failFast

	prog := newProgress(logger)
	summary, err := runner.Run(ctx, entries)
	if summary != nil {
		printSummary(summary)
		printDetail("Outputs: %s", cfg.Paths.OutputDir)
	}
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Analyzed %d units", len(entries)))

	if summary.Failed > 0 {
		return fmt.Errorf("%d of %d units failed", summary.Failed, len(entries))
	}
	return nil
}
