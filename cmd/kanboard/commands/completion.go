package commands

import (
	"os"

	"github.com/spf13/cobra"

	"kanboard/internal/application/dto"
	"kanboard/internal/domain/entity"
)

// completionCmd represents the completion command
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for kanboard.

To load completions:

Bash:
  $ source <(kanboard completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ kanboard completion bash > /etc/bash_completion.d/kanboard
  # macOS:
  $ kanboard completion bash > $(brew --prefix)/etc/bash_completion.d/kanboard

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it.  You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ kanboard completion zsh > "${fpath[1]}/_kanboard"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ kanboard completion fish | source

  # To load completions for each session, execute once:
  $ kanboard completion fish > ~/.config/fish/completions/kanboard.fish

PowerShell:
  PS> kanboard completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> kanboard completion powershell > kanboard.ps1
  # and source this file from your PowerShell profile.
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	Run: func(cmd *cobra.Command, args []string) {
		switch args[0] {
		case "bash":
			cmd.Root().GenBashCompletion(os.Stdout)
		case "zsh":
			cmd.Root().GenZshCompletion(os.Stdout)
		case "fish":
			cmd.Root().GenFishCompletion(os.Stdout, true)
		case "powershell":
			cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
		}
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}

// completionBoard loads config and the board for dynamic completions.
// Persistent hooks do not run for the hidden completion command.
func completionBoard(cmd *cobra.Command) (dto.BoardDTO, bool) {
	if cfg == nil {
		if err := rootCmd.PersistentPreRunE(cmd, nil); err != nil {
			return dto.BoardDTO{}, false
		}
	}
	ctx := getContext()
	svc, err := boardService(ctx)
	if err != nil {
		return dto.BoardDTO{}, false
	}
	board, err := svc.GetBoard(ctx)
	if err != nil {
		return dto.BoardDTO{}, false
	}
	return board, true
}

func columnCompletions(board dto.BoardDTO) []string {
	out := make([]string, 0, len(board.Columns)+1)
	for _, col := range board.Columns {
		out = append(out, col.ID+"\t"+col.Title)
	}
	return out
}

func cardCompletions(board dto.BoardDTO) []string {
	out := make([]string, 0, board.Total)
	for _, col := range board.Columns {
		for _, card := range col.Cards {
			out = append(out, card.ID+"\t"+card.Title)
		}
	}
	return out
}

// completeColumnArg completes the first argument with column IDs
func completeColumnArg(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	board, ok := completionBoard(cmd)
	if !ok {
		return nil, cobra.ShellCompDirectiveError
	}
	return columnCompletions(board), cobra.ShellCompDirectiveNoFileComp
}

// completeCardThenColumn completes a card ID, then a destination column
// including the trash
func completeCardThenColumn(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	board, ok := completionBoard(cmd)
	if !ok {
		return nil, cobra.ShellCompDirectiveError
	}
	switch len(args) {
	case 0:
		return cardCompletions(board), cobra.ShellCompDirectiveNoFileComp
	case 1:
		if cmd.Name() == cardMoveCmd.Name() {
			return append(columnCompletions(board), entity.TrashColumn+"\tdelete the card"), cobra.ShellCompDirectiveNoFileComp
		}
	}
	return nil, cobra.ShellCompDirectiveNoFileComp
}

func init() {
	cardAddCmd.ValidArgsFunction = completeColumnArg
	cardMoveCmd.ValidArgsFunction = completeCardThenColumn
	cardDeleteCmd.ValidArgsFunction = completeCardThenColumn
	_ = cardListCmd.RegisterFlagCompletionFunc("column", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return completeColumnArg(cmd, nil, toComplete)
	})
}
