package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"kanboard/internal/application/dto"
	"kanboard/internal/domain/entity"
)

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeCompose:
			return m.updateCompose(msg)
		case modeCarry:
			return m.updateCarry(msg)
		default:
			return m.updateBrowse(msg)
		}

	case boardMsg:
		m.setBoard(msg.board)
		m.status = msg.status
		return m, nil

	case addedMsg:
		m.setBoard(msg.board)
		if !msg.resp.Added {
			// Keep composing so the title can be fixed
			m.status = "blank titles are not added"
			return m, nil
		}
		m.mode = modeBrowse
		m.input.Reset()
		m.input.Blur()
		if msg.resp.Card != nil {
			m.focusCard(msg.resp.Card.ID)
		}
		m.status = "card added"
		return m, nil

	case droppedMsg:
		m.setBoard(msg.board)
		if msg.resp.Changed && !msg.req.Intent().Deletes() {
			m.focusColumn(msg.req.DestinationColumn)
			m.focusedCard = msg.req.DestinationIndex
		}
		m.clampCardFocus()
		m.status = msg.resp.Outcome
		return m, nil

	case notificationMsg:
		m.setBoard(msg.Board)
		return m, waitForNotification(m.updates)

	case subscriptionClosedMsg:
		m.status = "lost connection to the daemon; board no longer updates"
		return m, nil

	case errMsg:
		m.logger.Error("board request failed", zap.String("op", msg.op), zap.Error(msg.err))
		m.status = fmt.Sprintf("%s failed: %v", msg.op, msg.err)
		return m, nil
	}

	return m, nil
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Left):
		m.moveLeft()

	case key.Matches(msg, keys.Right):
		m.moveRight()

	case key.Matches(msg, keys.Up):
		m.moveUp()

	case key.Matches(msg, keys.Down):
		m.moveDown()

	case key.Matches(msg, keys.PickUp):
		m.pickUp()

	case key.Matches(msg, keys.Add):
		if m.currentColumnID() == "" {
			return m, nil
		}
		m.mode = modeCompose
		m.status = ""
		cmd := m.input.Focus()
		return m, cmd

	case key.Matches(msg, keys.Delete):
		if card := m.currentCard(); card != nil {
			return m, m.deleteCard(card.ID)
		}
	}
	return m, nil
}

// updateCarry moves the carried card's target and finishes the gesture.
// Only a drop or a trash emits an intent; cancelling sends nothing.
func (m Model) updateCarry(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	c := *m.carrying
	switch {
	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit

	case key.Matches(msg, keys.Cancel):
		m.focusColumn(c.sourceColumn)
		m.focusedCard = c.sourceIndex
		m.carrying = nil
		m.mode = modeBrowse
		m.status = "move cancelled"
		return m, nil

	case key.Matches(msg, keys.Drop):
		return m.finishCarry(dto.DropRequest{
			SourceColumn:      c.sourceColumn,
			SourceIndex:       c.sourceIndex,
			DestinationColumn: m.currentColumnID(),
			DestinationIndex:  c.targetIndex,
		})

	case key.Matches(msg, keys.Trash):
		return m.finishCarry(dto.DropRequest{
			SourceColumn:      c.sourceColumn,
			SourceIndex:       c.sourceIndex,
			DestinationColumn: entity.TrashColumn,
			IsDelete:          true,
		})

	case key.Matches(msg, keys.Left):
		if m.focusedColumn > 0 {
			m.focusedColumn--
			c.targetIndex = clampIndex(c.targetIndex, m.maxTarget(m.focusedColumn))
		}

	case key.Matches(msg, keys.Right):
		if m.focusedColumn < len(m.board.Columns)-1 {
			m.focusedColumn++
			c.targetIndex = clampIndex(c.targetIndex, m.maxTarget(m.focusedColumn))
		}

	case key.Matches(msg, keys.Up):
		if c.targetIndex > 0 {
			c.targetIndex--
		}

	case key.Matches(msg, keys.Down):
		if c.targetIndex < m.maxTarget(m.focusedColumn) {
			c.targetIndex++
		}
	}

	m.carrying = &c
	return m, nil
}

// finishCarry ends the gesture and emits its drop intent
func (m Model) finishCarry(req dto.DropRequest) (tea.Model, tea.Cmd) {
	m.carrying = nil
	m.mode = modeBrowse
	m.status = ""
	return m, m.applyDrop(req)
}

func (m Model) updateCompose(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEsc:
		m.mode = modeBrowse
		m.input.Reset()
		m.input.Blur()
		m.status = ""
		return m, nil
	case tea.KeyEnter:
		return m, m.addCard(m.currentColumnID(), m.input.Value())
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// pickUp starts carrying the focused card
func (m *Model) pickUp() {
	card := m.currentCard()
	if card == nil {
		return
	}
	m.carrying = &carry{
		card:         *card,
		sourceColumn: m.currentColumnID(),
		sourceIndex:  m.focusedCard,
		targetIndex:  m.focusedCard,
	}
	m.mode = modeCarry
	m.status = "carrying: arrows to move, " + keys.Drop.Help().Key + " to drop, " +
		keys.Trash.Help().Key + " to trash, " + keys.Cancel.Help().Key + " to cancel"
}

// setBoard swaps in a new board and keeps focus and any carried card valid
func (m *Model) setBoard(board dto.BoardDTO) {
	focused := m.currentColumnID()
	m.board = board

	if len(m.scrollOffsets) != len(board.Columns) {
		m.scrollOffsets = make([]int, len(board.Columns))
	}
	if !m.focusColumn(focused) && m.focusedColumn >= len(board.Columns) {
		m.focusedColumn = len(board.Columns) - 1
	}
	if m.focusedColumn < 0 {
		m.focusedColumn = 0
	}

	if m.carrying != nil {
		c := *m.carrying
		_, column, index, err := board.Locate(c.card.ID)
		if err != nil {
			m.carrying = nil
			m.mode = modeBrowse
			m.status = "the carried card was removed elsewhere"
		} else {
			c.sourceColumn = column
			c.sourceIndex = index
			m.carrying = &c
			c.targetIndex = clampIndex(c.targetIndex, m.maxTarget(m.focusedColumn))
		}
	}

	m.clampCardFocus()
}

// focusColumn focuses a column by ID and reports whether it exists
func (m *Model) focusColumn(id string) bool {
	for i, col := range m.board.Columns {
		if col.ID == id {
			m.focusedColumn = i
			return true
		}
	}
	return false
}

// focusCard focuses a card by ID
func (m *Model) focusCard(id string) {
	_, column, index, err := m.board.Locate(id)
	if err != nil {
		return
	}
	m.focusColumn(column)
	m.focusedCard = index
}

// moveLeft moves focus to the left column
func (m *Model) moveLeft() {
	if m.focusedColumn > 0 {
		m.focusedColumn--
		m.clampCardFocus()
	}
}

// moveRight moves focus to the right column
func (m *Model) moveRight() {
	if m.focusedColumn < len(m.board.Columns)-1 {
		m.focusedColumn++
		m.clampCardFocus()
	}
}

// moveUp moves focus to the card above
func (m *Model) moveUp() {
	if m.focusedCard > 0 {
		m.focusedCard--
	}
}

// moveDown moves focus to the card below
func (m *Model) moveDown() {
	if m.focusedCard < m.currentColumnCardCount()-1 {
		m.focusedCard++
	}
}

// clampCardFocus ensures the card focus is within valid bounds
func (m *Model) clampCardFocus() {
	count := m.currentColumnCardCount()
	if count == 0 || m.focusedCard < 0 {
		m.focusedCard = 0
	} else if m.focusedCard >= count {
		m.focusedCard = count - 1
	}
}

func clampIndex(i, max int) int {
	if i < 0 {
		return 0
	}
	if i > max {
		return max
	}
	return i
}
