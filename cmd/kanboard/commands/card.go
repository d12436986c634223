package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"kanboard/cmd/kanboard/output"
	"kanboard/internal/application/dto"
	"kanboard/internal/domain/entity"
)

// cardCmd represents the card command
var cardCmd = &cobra.Command{
	Use:     "card",
	Aliases: []string{"cards"},
	Short:   "Manage cards",
	Long: `Add, list, move and delete cards.

Cards are addressed by ID. Any unique prefix of an ID is accepted.

Examples:
  # Add a card to the end of a column
  kanboard card add todo "Write release notes"

  # List the cards of one column
  kanboard card list --column doing

  # Move a card to another column, at the end
  kanboard card move 3f2a done

  # Reorder a card within its column
  kanboard card move 3f2a todo --index 0

  # Delete a card
  kanboard card delete 3f2a`,
}

// cardAddCmd adds a card
var cardAddCmd = &cobra.Command{
	Use:   "add <column> <title...>",
	Short: "Add a card to the end of a column",
	Long: `Add a card to the end of a column.

A title made only of whitespace is ignored and nothing is added. Cards
cannot be added to the trash column.

Examples:
  kanboard card add backlog "Investigate flaky test"
  kanboard card add todo Update dependencies`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := getContext()
		svc, err := boardService(ctx)
		if err != nil {
			return err
		}

		resp, err := svc.AddCard(ctx, dto.AddCardRequest{
			Column: args[0],
			Title:  strings.Join(args[1:], " "),
		})
		if err != nil {
			return fmt.Errorf("failed to add card: %w", err)
		}

		if formatter.Structured() {
			return formatter.Print(resp)
		}
		if !resp.Added {
			printer.Warning("Nothing added: the title is blank or the column does not accept cards")
			return nil
		}
		printer.Success("Added %s to %s", resp.Card.ID, resp.Card.Column)
		warnIfDirty(ctx, svc)
		return nil
	},
}

// cardListCmd lists cards
var cardListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List cards",
	Long: `List cards in board order.

Examples:
  # All cards
  kanboard card list

  # One column, tab separated for scripting
  kanboard card list --column todo --output tsv`,
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

		column, _ := cmd.Flags().GetString("column")
		if column != "" {
			col, ok := board.Column(column)
			if !ok {
				return fmt.Errorf("unknown column %q", column)
			}
			board = dto.BoardDTO{Columns: []dto.ColumnDTO{col}, Total: col.Count}
		}

		if board.Total == 0 && !formatter.Structured() {
			printer.Info("No cards. Add one with: kanboard card add <column> <title>")
			return nil
		}

		return formatter.Print(output.Listing{
			Header:  []string{"ID", "Column", "Title"},
			Records: board.Rows(),
			Items:   board.Cards(),
			Display: func(record []string) []string {
				return []string{shortID(record[0]), record[1], output.Truncate(record[2], 60)}
			},
		})
	},
}

// cardMoveCmd moves a card
var cardMoveCmd = &cobra.Command{
	Use:   "move <card-id> <column>",
	Short: "Move a card to a column position",
	Long: `Move a card to a position in a column.

Without --index the card goes to the end of the column. An index past the
end is treated as the end. Moving a card to "trash" deletes it.

Examples:
  kanboard card move 3f2a done
  kanboard card move 3f2a todo --index 0`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		args, err := resolveArgs(args, 2)
		if err != nil {
			return err
		}

		ctx := getContext()
		svc, err := boardService(ctx)
		if err != nil {
			return err
		}

		board, err := svc.GetBoard(ctx)
		if err != nil {
			return fmt.Errorf("failed to get board: %w", err)
		}

		card, source, sourceIndex, err := board.Locate(args[0])
		if err != nil {
			return err
		}

		destination := args[1]
		req := dto.DropRequest{
			SourceColumn:      source,
			SourceIndex:       sourceIndex,
			DestinationColumn: destination,
			IsDelete:          destination == entity.TrashColumn,
		}
		if cmd.Flags().Changed("index") {
			req.DestinationIndex, _ = cmd.Flags().GetInt("index")
		} else {
			req.DestinationIndex = endIndex(board, source, destination)
		}

		resp, err := svc.ApplyDrop(ctx, req)
		if err != nil {
			return fmt.Errorf("failed to move card: %w", err)
		}

		if formatter.Structured() {
			return formatter.Print(resp)
		}
		switch {
		case !resp.Changed:
			printer.Info("%s stays where it is (%s)", shortID(card.ID), resp.Outcome)
		case req.IsDelete:
			printer.Success("Deleted %s", shortID(card.ID))
		case source == destination:
			printer.Success("Reordered %s within %s", shortID(card.ID), destination)
		default:
			printer.Success("Moved %s to %s", shortID(card.ID), destination)
		}
		warnIfDirty(ctx, svc)
		return nil
	},
}

// cardDeleteCmd deletes a card
var cardDeleteCmd = &cobra.Command{
	Use:     "delete <card-id>",
	Aliases: []string{"rm"},
	Short:   "Delete a card",
	Long: `Delete a card by ID.

The ID can also be piped in, for example from "card list --output tsv".

Examples:
  kanboard card delete 3f2a
  kanboard card list --column done -o tsv | head -1 | kanboard card delete`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		args, err := resolveArgs(args, 1)
		if err != nil {
			return err
		}

		ctx := getContext()
		svc, err := boardService(ctx)
		if err != nil {
			return err
		}

		resp, err := svc.DeleteCard(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to delete card: %w", err)
		}

		if formatter.Structured() {
			return formatter.Print(resp)
		}
		if !resp.Removed {
			return fmt.Errorf("%w: %s", entity.ErrCardNotFound, args[0])
		}
		printer.Success("Deleted %s", args[0])
		warnIfDirty(ctx, svc)
		return nil
	},
}

// endIndex is the index that appends to the destination column. Within the
// same column the moved card does not count.
func endIndex(board dto.BoardDTO, source, destination string) int {
	col, _ := board.Column(destination)
	if source == destination {
		return col.Count - 1
	}
	return col.Count
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func init() {
	rootCmd.AddCommand(cardCmd)

	cardCmd.AddCommand(cardAddCmd)
	cardCmd.AddCommand(cardListCmd)
	cardCmd.AddCommand(cardMoveCmd)
	cardCmd.AddCommand(cardDeleteCmd)

	cardListCmd.Flags().StringP("column", "C", "", "Only list cards in this column")
	cardMoveCmd.Flags().IntP("index", "i", 0, "Position in the destination column (default: end)")
}
