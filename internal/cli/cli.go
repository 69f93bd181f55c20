package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/cobolgraph/pkg/buildinfo"
	"github.com/matzehuels/cobolgraph/pkg/cache"
	"github.com/matzehuels/cobolgraph/pkg/config"
	"github.com/matzehuels/cobolgraph/pkg/observability"
	"github.com/matzehuels/cobolgraph/pkg/pipeline"
	"github.com/matzehuels/cobolgraph/pkg/render"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display and default files.
	appName = "cobolgraph"

	// defaultConfigFile is loaded from the working directory when --config is not given.
	defaultConfigFile = appName + ".toml"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	verbose    bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "cobolgraph maps the control flow of fixed-format COBOL programs",
		Long: `cobolgraph normalizes 80-column COBOL/CICS source, splits the procedure
division into paragraphs, and writes each program's GO TO / PERFORM call graph,
exits and CICS interactions as Graphviz DOT and JSON.`,
		Version:      buildinfo.Get().Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.SetLogLevel(LogDebug)
			}
			hooks := &logHooks{logger: c.Logger}
			observability.SetPipelineHooks(hooks)
			observability.SetRenderHooks(hooks)
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "configuration file (.toml, .yaml); defaults to ./"+defaultConfigFile+" when present")

	root.AddCommand(c.analyzeCommand())
	root.AddCommand(c.normalizeCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.discoverCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.cleanCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Configuration
// =============================================================================

// loadConfig returns the configuration selected by --config, the default file
// in the working directory, or the built-in defaults, in that order.
func (c *CLI) loadConfig() (config.Config, error) {
	path := c.configPath
	if path == "" {
		if _, err := os.Stat(defaultConfigFile); err != nil {
			return config.Default(), nil
		}
		path = defaultConfigFile
	}
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	// --verbose wins over the configured level.
	if lvl, err := log.ParseLevel(cfg.LogLevel); err == nil && !c.verbose {
		c.SetLogLevel(lvl)
	}
	c.Logger.Debug("loaded config", "path", path)
	return cfg, nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use. The renderer is only set
// up when image formats are requested.
func (c *CLI) newRunner(ctx context.Context, cfg config.Config, noCache bool) (*pipeline.Runner, error) {
	var r render.Renderer
	if len(cfg.Render.Formats) > 0 {
		var err error
		if r, err = render.New(cfg.Render); err != nil {
			return nil, err
		}
	}
	logger := loggerFromContext(ctx)
	runner := pipeline.NewRunner(cfg, r, logger)
	if !noCache {
		if fc, err := newCache(); err == nil {
			runner.Cache = fc
		} else {
			logger.Warn("cache disabled", "err", err)
		}
	}
	return runner, nil
}

func newCache() (*cache.FileCache, error) {
	dir, err := cacheDir()
	if err != nil {
		return nil, err
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/cobolgraph/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
