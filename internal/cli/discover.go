package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) discoverCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "discover [dir]",
		Short: "List the source units analyze would process",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if len(args) == 1 {
				cfg.Paths.SourceDir = args[0]
			}
			entries, err := collectEntries(cfg.Paths, nil)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				printWarning("No source units found in %s", cfg.Paths.SourceDir)
				return nil
			}
			for _, e := range entries {
				fmt.Println(StyleValue.Render(e.Name) + "  " + StyleDim.Render(e.Rel))
			}
			printInfo("%s units in %s", StyleNumber.Render(fmt.Sprint(len(entries))), cfg.Paths.SourceDir)
			return nil
		},
	}
}
