package cli

import (
	"io"
	"os"

	"github.com/spf13/cobra"
)

func (c *CLI) configCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as TOML",
		Long: `Config prints the configuration analyze would use, after loading --config
(or ./` + defaultConfigFile + `) on top of the defaults. Use -o to start a new
configuration file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if output == "" {
				return cfg.Encode(os.Stdout)
			}
			if err := writeFile(output, func(w io.Writer) error { return cfg.Encode(w) }); err != nil {
				return err
			}
			printSuccess("Wrote configuration")
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")
	return cmd
}
