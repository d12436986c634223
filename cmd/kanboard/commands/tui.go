package commands

import (
	"context"
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"kanboard/internal/infrastructure/logging"
	"kanboard/tui"
	"kanboard/tui/style"
)

// tuiCmd represents the tui command
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive terminal user interface",
	Long: `Launch the interactive TUI for the board.

Cards are moved by picking them up, carrying them and dropping them.
Key bindings are configurable in the keybindings section of the config.

Default keyboard shortcuts:
  ←/h, →/l     - Focus column (while carrying: carry to column)
  ↑/k, ↓/j     - Focus card (while carrying: choose position)
  space/m      - Pick up the focused card
  enter        - Drop the carried card
  x            - Drop the carried card in the trash
  esc          - Put the carried card back
  a            - Add a card to the focused column
  d            - Delete the focused card
  q/Ctrl+C     - Quit

When the daemon is running the board updates live as other clients change it.

Examples:
  kanboard tui
  kanboard`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithCancel(getContext())
		defer cancel()

		style.InitStyles(cfg)
		tui.InitKeybindings(cfg)

		logger := zap.NewNop()
		if cfg.Storage.DataPath != "" {
			fileLogger, err := logging.NewFile(filepath.Join(cfg.Storage.DataPath, "tui.log"), cfg.Logging.Level)
			if err == nil {
				logger = fileLogger
				defer logger.Sync()
			}
		}

		svc, err := boardService(ctx)
		if err != nil {
			return err
		}

		board, err := svc.GetBoard(ctx)
		if err != nil {
			return fmt.Errorf("failed to load board: %w", err)
		}

		opts := []tui.Option{tui.WithLogger(logger.Named("tui"))}
		if daemonClient != nil {
			updates, err := daemonClient.Subscribe(ctx)
			if err != nil {
				logger.Warn("live updates unavailable", zap.Error(err))
			} else {
				opts = append(opts, tui.WithUpdates(updates))
			}
		}

		m := tui.NewModel(board, svc, opts...)

		p := tea.NewProgram(m, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("error running TUI: %w", err)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
