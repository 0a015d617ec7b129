package cmd

import (
	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for easyfetch, including flag names
for the request, run and validate commands.

To load completions:

Bash:
  $ source <(easyfetch completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ easyfetch completion bash > /etc/bash_completion.d/easyfetch
  # macOS:
  $ easyfetch completion bash > $(brew --prefix)/etc/bash_completion.d/easyfetch

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. Execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ easyfetch completion zsh > "${fpath[1]}/_easyfetch"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ easyfetch completion fish | source

  # To load completions for each session, execute once:
  $ easyfetch completion fish > ~/.config/fish/completions/easyfetch.fish

PowerShell:
  PS> easyfetch completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> easyfetch completion powershell > easyfetch.ps1
  # and source this file from your PowerShell profile.
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return cmd.Root().GenBashCompletion(cmd.OutOrStdout())
		case "zsh":
			return cmd.Root().GenZshCompletion(cmd.OutOrStdout())
		case "fish":
			return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
		case "powershell":
			return cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}
