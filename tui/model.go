package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"kanboard/internal/application/dto"
	"kanboard/internal/application/usecase"
	"kanboard/internal/daemon"
)

const requestTimeout = 5 * time.Second

// mode is what the keyboard currently drives
type mode int

const (
	modeBrowse mode = iota
	modeCarry
	modeCompose
)

// carry tracks a picked-up card until it is dropped or the gesture is
// cancelled. Nothing is sent to the service while carrying.
type carry struct {
	card         dto.CardDTO
	sourceColumn string
	sourceIndex  int
	targetIndex  int
}

// Model represents the TUI state
type Model struct {
	board   dto.BoardDTO
	service usecase.BoardService
	updates <-chan daemon.Notification
	logger  *zap.Logger

	mode          mode
	carrying      *carry
	input         textinput.Model
	focusedColumn int   // which column is currently selected
	focusedCard   int   // which card in the current column is selected
	scrollOffsets []int // scroll offset for each column (vertical)

	horizontalScrollOffset int
	width                  int
	height                 int
	status                 string
}

// Option configures a Model
type Option func(*Model)

// WithUpdates makes the model follow board changes pushed by the daemon
func WithUpdates(updates <-chan daemon.Notification) Option {
	return func(m *Model) { m.updates = updates }
}

// WithLogger sets the logger for service failures
func WithLogger(logger *zap.Logger) Option {
	return func(m *Model) { m.logger = logger }
}

// NewModel creates a new TUI model
func NewModel(board dto.BoardDTO, service usecase.BoardService, opts ...Option) Model {
	input := textinput.New()
	input.Placeholder = "Card title"
	input.CharLimit = 500
	input.Prompt = "+ "

	m := Model{
		board:         board,
		service:       service,
		logger:        zap.NewNop(),
		input:         input,
		scrollOffsets: make([]int, len(board.Columns)),
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// boardMsg carries a fresh board after a service call
type boardMsg struct {
	board  dto.BoardDTO
	status string
}

// addedMsg reports an add-card result
type addedMsg struct {
	resp  dto.AddCardResponse
	board dto.BoardDTO
}

// droppedMsg reports a drop result
type droppedMsg struct {
	req   dto.DropRequest
	resp  dto.DropResponse
	board dto.BoardDTO
}

// notificationMsg is a board change pushed by the daemon
type notificationMsg daemon.Notification

// subscriptionClosedMsg is sent when the daemon stops pushing updates
type subscriptionClosedMsg struct{}

// errMsg is a failed service call
type errMsg struct {
	op  string
	err error
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	if m.updates == nil {
		return nil
	}
	return waitForNotification(m.updates)
}

func waitForNotification(updates <-chan daemon.Notification) tea.Cmd {
	return func() tea.Msg {
		n, ok := <-updates
		if !ok {
			return subscriptionClosedMsg{}
		}
		return notificationMsg(n)
	}
}

func (m Model) addCard(column, title string) tea.Cmd {
	service := m.service
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		resp, err := service.AddCard(ctx, dto.AddCardRequest{Column: column, Title: title})
		if err != nil {
			return errMsg{op: "add card", err: err}
		}
		board, err := service.GetBoard(ctx)
		if err != nil {
			return errMsg{op: "refresh board", err: err}
		}
		return addedMsg{resp: resp, board: board}
	}
}

func (m Model) applyDrop(req dto.DropRequest) tea.Cmd {
	service := m.service
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		resp, err := service.ApplyDrop(ctx, req)
		if err != nil {
			return errMsg{op: "drop card", err: err}
		}
		board, err := service.GetBoard(ctx)
		if err != nil {
			return errMsg{op: "refresh board", err: err}
		}
		return droppedMsg{req: req, resp: resp, board: board}
	}
}

func (m Model) deleteCard(id string) tea.Cmd {
	service := m.service
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		resp, err := service.DeleteCard(ctx, id)
		if err != nil {
			return errMsg{op: "delete card", err: err}
		}
		board, err := service.GetBoard(ctx)
		if err != nil {
			return errMsg{op: "refresh board", err: err}
		}
		status := "card deleted"
		if !resp.Removed {
			status = "card was already gone"
		}
		return boardMsg{board: board, status: status}
	}
}

// currentColumnCardCount returns the number of cards in the focused column
func (m Model) currentColumnCardCount() int {
	if m.focusedColumn < 0 || m.focusedColumn >= len(m.board.Columns) {
		return 0
	}
	return len(m.board.Columns[m.focusedColumn].Cards)
}

// currentCard returns the focused card, if any
func (m Model) currentCard() *dto.CardDTO {
	count := m.currentColumnCardCount()
	if count == 0 || m.focusedCard < 0 || m.focusedCard >= count {
		return nil
	}
	return &m.board.Columns[m.focusedColumn].Cards[m.focusedCard]
}

// currentColumnID returns the ID of the focused column
func (m Model) currentColumnID() string {
	if m.focusedColumn < 0 || m.focusedColumn >= len(m.board.Columns) {
		return ""
	}
	return m.board.Columns[m.focusedColumn].ID
}

// maxTarget is the last insertion index for the carried card in a column.
// The carried card itself does not count in its source column.
func (m Model) maxTarget(column int) int {
	if column < 0 || column >= len(m.board.Columns) {
		return 0
	}
	col := m.board.Columns[column]
	n := len(col.Cards)
	if m.carrying != nil && col.ID == m.carrying.sourceColumn {
		n--
	}
	if n < 0 {
		return 0
	}
	return n
}

// updateScroll keeps the focused card visible
func (m *Model) updateScroll(viewportHeight int) {
	if m.focusedColumn < 0 || m.focusedColumn >= len(m.scrollOffsets) {
		return
	}

	row := m.focusedCard
	count := m.currentColumnCardCount()
	if m.carrying != nil {
		row = m.carrying.targetIndex
		count = m.maxTarget(m.focusedColumn) + 1
	}
	if count == 0 {
		m.scrollOffsets[m.focusedColumn] = 0
		return
	}

	offset := m.scrollOffsets[m.focusedColumn]
	if row < offset {
		offset = row
	} else if row >= offset+viewportHeight {
		offset = row - viewportHeight + 1
	}

	maxScroll := count - viewportHeight
	if maxScroll < 0 {
		maxScroll = 0
	}
	if offset > maxScroll {
		offset = maxScroll
	}
	if offset < 0 {
		offset = 0
	}
	m.scrollOffsets[m.focusedColumn] = offset
}

// updateHorizontalScroll keeps the focused column visible
func (m *Model) updateHorizontalScroll(visibleColumns int) {
	if visibleColumns <= 0 {
		visibleColumns = 1
	}

	totalColumns := len(m.board.Columns)
	if totalColumns == 0 {
		m.horizontalScrollOffset = 0
		return
	}

	if m.focusedColumn < m.horizontalScrollOffset {
		m.horizontalScrollOffset = m.focusedColumn
	} else if m.focusedColumn >= m.horizontalScrollOffset+visibleColumns {
		m.horizontalScrollOffset = m.focusedColumn - visibleColumns + 1
	}

	maxScroll := totalColumns - visibleColumns
	if maxScroll < 0 {
		maxScroll = 0
	}
	if m.horizontalScrollOffset > maxScroll {
		m.horizontalScrollOffset = maxScroll
	}
	if m.horizontalScrollOffset < 0 {
		m.horizontalScrollOffset = 0
	}
}
