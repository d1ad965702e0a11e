package cli

import (
	"github.com/spf13/cobra"
)

// completionCommand prints a shell completion script to the command output.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Print a completion script for diagramkit. Format names and --kind values
are completed along with subcommands and flags.

  bash:        source <(diagramkit completion bash)
  zsh:         diagramkit completion zsh > "${fpath[1]}/_diagramkit"
  fish:        diagramkit completion fish > ~/.config/fish/completions/diagramkit.fish
  powershell:  diagramkit completion powershell | Out-String | Invoke-Expression`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, out := cmd.Root(), cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return root.GenBashCompletionV2(out, true)
			case "zsh":
				return root.GenZshCompletion(out)
			case "fish":
				return root.GenFishCompletion(out, true)
			default:
				return root.GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}
