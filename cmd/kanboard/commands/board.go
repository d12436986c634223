package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"kanboard/cmd/kanboard/output"
	"kanboard/internal/infrastructure/persistence/filesystem"
	fsutil "kanboard/pkg/filesystem"
)

// boardCmd represents the board command
var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Show and export the board",
	Long: `Show the board or export it to Markdown.

Examples:
  # Show every column with its cards
  kanboard board show

  # Board as JSON
  kanboard board show --output json

  # Export to Markdown on stdout
  kanboard board export

  # Export next to the snapshot in the data directory
  kanboard board export --save`,
}

// boardShowCmd prints the board
var boardShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the board",
	Long: `Show every column in display order with its card count and cards.

Columns that are not configured but still hold cards are listed last.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := getContext()
		svc, err := boardService(ctx)
		if err != nil {
			return err
		}

		board, err := svc.GetBoard(ctx)
		if err != nil {
			return fmt.Errorf("failed to get board: %w", err)
		}

		if formatter.Structured() {
			return formatter.Print(board)
		}

		printer.Header("Board (%d cards)", board.Total)
		fmt.Println()
		for _, col := range board.Columns {
			printer.Lane(col.Title, col.Count, col.Color)
			if len(col.Cards) == 0 {
				printer.Subtle("  (empty)")
			}
			for i, card := range col.Cards {
				printer.Println("  %d. %s  %s", i+1, output.Truncate(card.Title, 70), shortID(card.ID))
			}
			fmt.Println()
		}
		if board.Dirty {
			printer.Warning("Unsaved changes: the last snapshot write failed")
		}
		return nil
	},
}

// boardExportCmd exports the board to Markdown
var boardExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the board to Markdown",
	Long: `Render the board as Markdown with YAML frontmatter.

Examples:
  kanboard board export > board.md
  kanboard board export --name sprint-12 --file sprint.md
  kanboard board export --save`,
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		file, _ := cmd.Flags().GetString("file")
		save, _ := cmd.Flags().GetBool("save")
		if name == "" {
			name = cfg.Storage.Snapshot
		}
		if save {
			if cfg.Storage.DataPath == "" {
				return fmt.Errorf("--save needs storage.data_path to be set")
			}
			file = filesystem.NewPathBuilder(cfg.Storage.DataPath).ExportFile(name)
		}

		ctx := getContext()
		svc, err := boardService(ctx)
		if err != nil {
			return err
		}

		data, err := svc.ExportBoard(ctx, name)
		if err != nil {
			return fmt.Errorf("failed to export board: %w", err)
		}

		if file == "" {
			_, err = os.Stdout.Write(data)
			return err
		}
		if err := fsutil.WriteAtomic(file, data, 0644); err != nil {
			return fmt.Errorf("failed to write export: %w", err)
		}
		printer.Success("Exported board to %s", file)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(boardCmd)

	boardCmd.AddCommand(boardShowCmd)
	boardCmd.AddCommand(boardExportCmd)

	boardExportCmd.Flags().String("name", "", "Board name in the export (default: snapshot name)")
	boardExportCmd.Flags().StringP("file", "f", "", "Write to this file instead of stdout")
	boardExportCmd.Flags().Bool("save", false, "Write to the data directory")
}
