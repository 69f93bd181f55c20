package cli

import (
	"context"
	"io"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cobolgraph/pkg/config"
	"github.com/matzehuels/cobolgraph/pkg/errors"
	"github.com/matzehuels/cobolgraph/pkg/normalize"
	"github.com/matzehuels/cobolgraph/pkg/pipeline"
	"github.com/matzehuels/cobolgraph/pkg/source"
)

func (c *CLI) normalizeCommand() *cobra.Command {
	var output string
	var canonical bool
	var copyDirs []string

	cmd := &cobra.Command{
		Use:   "normalize <file>",
		Short: "Write the canonical records of a source file",
		Long: `Normalize applies the column contract to a source file and prints the
canonical records: renumbered sequence, indicator, code window.

With -I (or [copybook] dirs in the config file) COPY statements are expanded
first. With --canonical the input is read as an earlier normalize output,
which must come back unchanged; canonical input is never expanded.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("copybook-dir") {
				cfg.Copybook.Dirs = copyDirs
				if err := cfg.Validate(); err != nil {
					return err
				}
			}
			u, err := source.ReadFile(args[0])
			if err != nil {
				return err
			}

			var records []normalize.Record
			if canonical {
				records, err = normalize.Canonical(u.Name, u.Lines, cfg.Normalize)
			} else {
				records, err = expandAndNormalize(cmd.Context(), cfg, u)
			}
			if err != nil {
				return err
			}

			if output == "" {
				return normalize.Write(os.Stdout, records, cfg.Normalize.SeqWidth)
			}
			if err := writeFile(output, func(w io.Writer) error {
				return normalize.Write(w, records, cfg.Normalize.SeqWidth)
			}); err != nil {
				return err
			}
			printSuccess("Normalized %d records", len(records))
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&canonical, "canonical", false, "input is already canonical")
	cmd.Flags().StringSliceVarP(&copyDirs, "copybook-dir", "I", nil, "copybook directory, searched in order (repeatable)")
	_ = cmd.MarkFlagDirname("copybook-dir")
	cmd.ValidArgsFunction = completeFiles(1, slices.Concat(sourceExts, canonicalExts)...)

	return cmd
}

// expandAndNormalize replaces the COPY statements of u, when copybook
// directories are configured, and normalizes the result.
func expandAndNormalize(ctx context.Context, cfg config.Config, u *source.Unit) ([]normalize.Record, error) {
	runner := pipeline.NewRunner(cfg, nil, loggerFromContext(ctx))
	exp, err := runner.Expand(ctx, u)
	if err != nil {
		return nil, err
	}
	return normalize.Normalize(u.Name, exp.Lines, cfg.Normalize)
}

// writeFile creates path and streams fn's output into it.
func writeFile(path string, fn func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "create %s", path)
	}
	if err := fn(f); err != nil {
		f.Close()
		return errors.Wrap(errors.ErrCodeIO, err, "write %s", path)
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "close %s", path)
	}
	return nil
}
