package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cobolgraph/pkg/cache"
	"github.com/matzehuels/cobolgraph/pkg/pipeline"
)

// artifactSuffixes are the endings of files written by analyze.
var artifactSuffixes = []string{
	".etude",
	"_graph.dot",
	".analysis.json",
	"_graph.svg",
	"_graph.png",
	".tmp",
}

// isArtifact reports whether name was written by analyze.
func isArtifact(name string) bool {
	if name == pipeline.SummaryFile {
		return true
	}
	for _, s := range artifactSuffixes {
		if strings.HasSuffix(name, s) {
			return true
		}
	}
	return false
}

// cleanCommand creates the clean command.
func (c *CLI) cleanCommand() *cobra.Command {
	var dryRun, clearCache bool

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove analysis artifacts from the work and output directories",
		Long: `Clean removes the files analyze writes (canonical records, DOT, JSON,
images and the batch summary) from the configured work and output
directories. Other files are left alone.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}

			total := 0
			for _, dir := range []string{cfg.Paths.WorkDir, cfg.Paths.OutputDir} {
				n, err := cleanDir(dir, dryRun)
				if err != nil {
					return err
				}
				total += n
			}

			if clearCache && !dryRun {
				n, dir, err := clearUnitCache()
				if err != nil {
					return err
				}
				if n > 0 {
					printSuccess("Cleared %d cached units", n)
					printDetail("Directory: %s", dir)
				}
			}

			if total == 0 {
				printInfo("Nothing to clean")
				return nil
			}
			verb := "Removed"
			if dryRun {
				verb = "Would remove"
			}
			printSuccess("%s %d files", verb, total)
			printDetail("Directories: %s, %s", cfg.Paths.WorkDir, cfg.Paths.OutputDir)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "only count the files that would be removed")
	cmd.Flags().BoolVar(&clearCache, "cache", false, "also clear the analysis cache")
	return cmd
}

// cleanDir removes artifacts directly inside dir and returns how many it
// found. A missing directory is empty.
func cleanDir(dir string, dryRun bool) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("read %s: %w", dir, err)
	}

	count := 0
	for _, e := range entries {
		if e.IsDir() || !isArtifact(e.Name()) {
			continue
		}
		if !dryRun {
			if err := os.Remove(filepath.Join(dir, e.Name())); err != nil {
				return count, fmt.Errorf("remove %s: %w", e.Name(), err)
			}
		}
		count++
	}
	return count, nil
}

func clearUnitCache() (int, string, error) {
	dir, err := cacheDir()
	if err != nil {
		return 0, "", fmt.Errorf("get cache dir: %w", err)
	}
	// A cache directory that was never created holds nothing to clear.
	var c cache.Clearer = cache.NewNullCache()
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		fc, err := cache.NewFileCache(dir)
		if err != nil {
			return 0, dir, err
		}
		c = fc
	}
	n, err := c.Clear()
	return n, dir, err
}
