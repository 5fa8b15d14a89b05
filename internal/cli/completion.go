package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/familytower/pkg/family"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for familytower.

Member IDs complete from the current tree, so "familytower show <TAB>"
offers every member with its name.

Bash:
  $ source <(familytower completion bash)

Zsh:
  $ familytower completion zsh > "${fpath[1]}/_familytower"

Fish:
  $ familytower completion fish > ~/.config/fish/completions/familytower.fish

PowerShell:
  PS> familytower completion powershell | Out-String | Invoke-Expression
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

// completeMemberIDs completes the argument at position pos with member IDs,
// described by full name.
func (c *CLI) completeMemberIDs(pos int) cobra.CompletionFunc {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]cobra.Completion, cobra.ShellCompDirective) {
		if len(args) != pos {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		r, _, err := c.newRunner(cmd.Context())
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		defer r.Close()

		var out []cobra.Completion
		for _, m := range r.Tree.Snapshot() {
			if strings.HasPrefix(m.ID, toComplete) {
				out = append(out, cobra.CompletionWithDesc(m.ID, m.DisplayName()))
			}
		}
		return out, cobra.ShellCompDirectiveNoFileComp
	}
}

// completeRelations completes the relation argument of add.
func completeRelations(_ *cobra.Command, args []string, _ string) ([]cobra.Completion, cobra.ShellCompDirective) {
	if len(args) != 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return []cobra.Completion{
		string(family.RelationParent),
		string(family.RelationChild),
		string(family.RelationSpouse),
	}, cobra.ShellCompDirectiveNoFileComp
}
