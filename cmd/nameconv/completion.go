package main

import (
	"github.com/spf13/cobra"
)

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for nameconv.

To load completions:

Bash:
  $ source <(nameconv completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ nameconv completion bash > /etc/bash_completion.d/nameconv
  # macOS:
  $ nameconv completion bash > $(brew --prefix)/etc/bash_completion.d/nameconv

Zsh:
  $ nameconv completion zsh > "${fpath[1]}/_nameconv"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ nameconv completion fish > ~/.config/fish/completions/nameconv.fish

PowerShell:
  PS> nameconv completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := cmd.Root()
			out := cmd.OutOrStdout()

			switch args[0] {
			case "bash":
				return root.GenBashCompletionV2(out, true)
			case "zsh":
				return root.GenZshCompletion(out)
			case "fish":
				return root.GenFishCompletion(out, true)
			case "powershell":
				return root.GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}
