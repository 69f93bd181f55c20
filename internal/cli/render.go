package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cobolgraph/pkg/errors"
	"github.com/matzehuels/cobolgraph/pkg/render"
)

func (c *CLI) renderCommand() *cobra.Command {
	var output, format, engine string

	cmd := &cobra.Command{
		Use:   "render <file.dot>",
		Short: "Rasterize a DOT call graph to SVG or PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("renderer") {
				cfg.Render.Engine = engine
			}
			f, err := render.ParseFormat(strings.ToLower(format))
			if err != nil {
				return err
			}
			r, err := render.New(cfg.Render)
			if err != nil {
				return err
			}

			in := args[0]
			dot, err := os.ReadFile(in)
			if err != nil {
				if os.IsNotExist(err) {
					return errors.Wrap(errors.ErrCodeFileNotFound, err, "%s", in)
				}
				return errors.Wrap(errors.ErrCodeIO, err, "read %s", in)
			}
			if err := render.Validate(dot); err != nil {
				return err
			}

			prog := newProgress(loggerFromContext(cmd.Context()))
			data, err := r.Render(cmd.Context(), dot, f)
			if err != nil {
				return err
			}
			if output == "" {
				output = strings.TrimSuffix(in, filepath.Ext(in)) + "." + string(f)
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return errors.Wrap(errors.ErrCodeIO, err, "write %s", output)
			}
			prog.done("Rendered " + filepath.Base(in))
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: input with the format's extension)")
	cmd.Flags().StringVarP(&format, "format", "f", string(render.SVG), "image format: svg, png")
	cmd.Flags().StringVar(&engine, "renderer", "", "renderer: graphviz (in process) or command (dot binary)")
	registerRenderCompletions(cmd)
	cmd.ValidArgsFunction = completeFiles(1, dotExts...)

	return cmd
}
