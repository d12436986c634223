package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"kanboard/cmd/kanboard/output"
	"kanboard/internal/application/dto"
)

// columnCmd represents the column command
var columnCmd = &cobra.Command{
	Use:     "column",
	Aliases: []string{"col"},
	Short:   "Inspect board columns",
	Long: `Inspect the board columns.

Columns are configured in the board.columns section of the config file.
Use "kanboard config path" to find it.`,
}

// columnListCmd lists columns
var columnListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List columns with card counts",
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

		columns := make([]dto.ColumnSummaryDTO, 0, len(board.Columns))
		for _, col := range board.Columns {
			columns = append(columns, dto.ColumnSummaryDTO{
				ID:    col.ID,
				Title: col.Title,
				Color: col.Color,
				Count: col.Count,
			})
		}

		records := make([][]string, 0, len(columns))
		for _, col := range columns {
			records = append(records, []string{col.ID, col.Title, col.Color, strconv.Itoa(col.Count)})
		}
		return formatter.Print(output.Listing{
			Header:  []string{"ID", "Title", "Color", "Cards"},
			Records: records,
			Items:   columns,
		})
	},
}

func init() {
	rootCmd.AddCommand(columnCmd)
	columnCmd.AddCommand(columnListCmd)
}
