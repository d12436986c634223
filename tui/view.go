package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"kanboard/internal/application/dto"
	"kanboard/internal/domain/entity"
	"kanboard/tui/style"
)

const (
	minColumnWidth = 20
	linesPerCard   = 1
)

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	numColumns := len(m.board.Columns)
	if numColumns == 0 {
		return "No columns configured"
	}

	lanes := numColumns
	if m.carrying != nil {
		lanes++ // trash lane
	}

	// Each column has 2 border chars + 4 padding plus a little margin
	visible := m.width / (minColumnWidth + 6)
	if visible < 1 {
		visible = 1
	}
	if visible > lanes {
		visible = lanes
	}
	columnWidth := m.width/visible - 6

	// Help, status, title, borders and padding
	viewportHeight := m.height - 10
	if m.mode == modeCompose {
		viewportHeight--
	}
	if viewportHeight < 1 {
		viewportHeight = 1
	}

	m.updateHorizontalScroll(visible)
	m.updateScroll(viewportHeight / linesPerCard)

	var columns []string
	for i := m.horizontalScrollOffset; i < numColumns && len(columns) < visible; i++ {
		columns = append(columns, m.renderColumn(m.board.Columns[i], i, columnWidth, viewportHeight))
	}
	if m.carrying != nil && len(columns) < visible {
		columns = append(columns, m.renderTrash(columnWidth))
	}

	sections := []string{lipgloss.JoinHorizontal(lipgloss.Top, columns...)}
	if m.mode == modeCompose {
		sections = append(sections, m.input.View())
	}
	sections = append(sections, m.renderStatus(), m.renderHelp())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// laneCards returns what a column shows: the carried card is lifted out of
// its source and previewed at its target in the focused column
func (m Model) laneCards(col dto.ColumnDTO, colIndex int) ([]dto.CardDTO, int) {
	if m.carrying == nil {
		return col.Cards, -1
	}

	cards := make([]dto.CardDTO, 0, len(col.Cards)+1)
	for _, card := range col.Cards {
		if card.ID != m.carrying.card.ID {
			cards = append(cards, card)
		}
	}
	if colIndex != m.focusedColumn {
		return cards, -1
	}

	at := clampIndex(m.carrying.targetIndex, len(cards))
	cards = append(cards, dto.CardDTO{})
	copy(cards[at+1:], cards[at:])
	cards[at] = m.carrying.card
	return cards, at
}

// renderColumn renders a single column with scrolling support
func (m Model) renderColumn(col dto.ColumnDTO, colIndex int, width int, viewportHeight int) string {
	isFocused := colIndex == m.focusedColumn

	heading := fmt.Sprintf("%s (%d)", col.Title, col.Count)
	title := style.ColumnTint(col.Color).Width(width).Render(heading)

	cards, carriedAt := m.laneCards(col, colIndex)

	scrollOffset := 0
	if colIndex < len(m.scrollOffsets) {
		scrollOffset = m.scrollOffsets[colIndex]
	}

	maxVisible := viewportHeight / linesPerCard
	if maxVisible < 1 {
		maxVisible = 1
	}
	start := scrollOffset
	if start > len(cards) {
		start = len(cards)
	}
	end := start + maxVisible
	if end > len(cards) {
		end = len(cards)
	}

	var rows []string
	if start > 0 {
		rows = append(rows, scrollIndicator("▲ more above ▲", width))
	}
	for i := start; i < end; i++ {
		text := truncate(cards[i].Title, width-2)
		switch {
		case i == carriedAt:
			rows = append(rows, style.CarriedCardStyle.Width(width).Render(text))
		case isFocused && m.carrying == nil && i == m.focusedCard:
			rows = append(rows, style.SelectedCardStyle.Width(width).Render(text))
		default:
			rows = append(rows, style.CardStyle.Width(width).Render(text))
		}
	}
	if end < len(cards) {
		rows = append(rows, scrollIndicator("▼ more below ▼", width))
	}
	if len(cards) == 0 {
		rows = append(rows, style.CardStyle.Width(width).Foreground(lipgloss.Color("240")).Render("(empty)"))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, title, "", strings.Join(rows, "\n"))

	if isFocused {
		return style.FocusedColumnStyle.Height(m.height - 8).Render(content)
	}
	return style.ColumnStyle.Height(m.height - 8).Render(content)
}

// renderTrash renders the trash lane shown while a card is carried
func (m Model) renderTrash(width int) string {
	title := style.ColumnTitleStyle.Width(width).Render("Trash")
	hint := style.CardStyle.Width(width).Foreground(lipgloss.Color("240")).
		Render("press " + keys.Trash.Help().Key + " to delete")
	content := lipgloss.JoinVertical(lipgloss.Left, title, "", hint)
	return style.TrashColumnStyle.Height(m.height - 8).Render(content)
}

func (m Model) renderStatus() string {
	status := m.status
	if m.board.Dirty {
		if status != "" {
			status += " • "
		}
		status += "unsaved: the last snapshot write failed"
	}
	return style.StatusStyle.Render(status)
}

// renderHelp renders the help text at the bottom
func (m Model) renderHelp() string {
	var bindings []struct{ key, desc string }
	add := func(k string, desc string) {
		bindings = append(bindings, struct{ key, desc string }{k, desc})
	}

	switch m.mode {
	case modeCarry:
		add(keys.Left.Help().Key+","+keys.Right.Help().Key, "column")
		add(keys.Up.Help().Key+","+keys.Down.Help().Key, "position")
		add(keys.Drop.Help().Key, "drop")
		add(keys.Trash.Help().Key, entity.TrashColumn)
		add(keys.Cancel.Help().Key, "cancel")
	case modeCompose:
		add("enter", "add")
		add("esc", "cancel")
	default:
		add(keys.Left.Help().Key+","+keys.Right.Help().Key, "columns")
		add(keys.Up.Help().Key+","+keys.Down.Help().Key, "cards")
		add(keys.PickUp.Help().Key, "pick up")
		add(keys.Add.Help().Key, "add")
		add(keys.Delete.Help().Key, "delete")
		add(keys.Quit.Help().Key, "quit")
	}

	parts := make([]string, len(bindings))
	for i, b := range bindings {
		parts[i] = b.key + " (" + b.desc + ")"
	}
	return style.HelpStyle.Render(strings.Join(parts, "  •  "))
}

func scrollIndicator(text string, width int) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Italic(true).
		Width(width).
		Align(lipgloss.Center).
		Render(text)
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if max < 2 || len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
