package cli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cobolgraph/pkg/config"
	"github.com/matzehuels/cobolgraph/pkg/render"
)

// File extensions offered when completing command arguments.
var (
	sourceExts    = []string{"cbl", "cob", "CBL", "COB"}
	canonicalExts = []string{"etude"}
	dotExts       = []string{"dot"}
)

// completionCommand creates the completion command. Beyond command names the
// generated scripts complete image formats, renderer engines and COBOL or DOT
// file arguments, see [registerRenderCompletions] and [completeFiles].
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for cobolgraph.

To load completions:

Bash:
  $ source <(cobolgraph completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ cobolgraph completion bash > /etc/bash_completion.d/cobolgraph
  # macOS:
  $ cobolgraph completion bash > $(brew --prefix)/etc/bash_completion.d/cobolgraph

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ cobolgraph completion zsh > "${fpath[1]}/_cobolgraph"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ cobolgraph completion fish | source

  # To load completions for each session, execute once:
  $ cobolgraph completion fish > ~/.config/fish/completions/cobolgraph.fish

PowerShell:
  PS> cobolgraph completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> cobolgraph completion powershell > cobolgraph.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}

	return cmd
}

// registerRenderCompletions completes the --format and --renderer flags of cmd.
func registerRenderCompletions(cmd *cobra.Command) {
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)
	_ = cmd.RegisterFlagCompletionFunc("renderer", cobra.FixedCompletions(
		[]string{
			config.EngineGraphviz + "\tin process",
			config.EngineCommand + "\tdot binary",
		},
		cobra.ShellCompDirectiveNoFileComp,
	))
}

// completeFormats offers the formats not yet listed in a comma-separated
// --format value.
func completeFormats(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	prefix := ""
	if i := strings.LastIndex(toComplete, ","); i >= 0 {
		prefix = toComplete[:i+1]
	}
	listed := make(map[string]bool)
	for _, f := range strings.Split(prefix, ",") {
		listed[strings.ToLower(strings.TrimSpace(f))] = true
	}

	var out []string
	for _, f := range render.Formats() {
		if !listed[string(f)] {
			out = append(out, prefix+string(f))
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
}

// completeFiles restricts file completion to the given extensions. Once
// limit arguments are given nothing more is offered; limit < 0 means no limit.
func completeFiles(limit int, exts ...string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
		if limit >= 0 && len(args) >= limit {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return exts, cobra.ShellCompDirectiveFilterFileExt
	}
}
