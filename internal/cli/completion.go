package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/collage/pkg/render"
	"github.com/matzehuels/collage/pkg/scatter/presets"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for collage.

Bash:
  $ source <(collage completion bash)

Zsh:
  $ collage completion zsh > "${fpath[1]}/_collage"

Fish:
  $ collage completion fish > ~/.config/fish/completions/collage.fish

PowerShell:
  PS> collage completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}

	return cmd
}

// completePresets offers the built-in preset names for --preset.
func completePresets(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return presets.Names(), cobra.ShellCompDirectiveNoFileComp
}

// completeFormats offers the render formats for --format.
func completeFormats(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return render.Formats(), cobra.ShellCompDirectiveNoFileComp
}
