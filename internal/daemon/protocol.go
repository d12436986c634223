package daemon

import (
	"encoding/json"

	"kanboard/internal/application/dto"
)

// Request types
const (
	RequestPing        = "ping"
	RequestGetBoard    = "get_board"
	RequestExportBoard = "export_board"
	RequestAddCard     = "add_card"
	RequestApplyDrop   = "apply_drop"
	RequestDeleteCard  = "delete_card"
	RequestSubscribe   = "subscribe"
)

// Notification types
const (
	NotificationBoardChanged = "board_changed"
)

// Request represents a client request to the daemon
type Request struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response represents a daemon response to the client
type Response struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// Notification is pushed to subscribed connections after every change
type Notification struct {
	Type    string       `json:"type"`
	Seq     uint64       `json:"seq"`
	Kind    string       `json:"kind"`
	Outcome string       `json:"outcome,omitempty"`
	Card    *dto.CardDTO `json:"card,omitempty"`
	Board   dto.BoardDTO `json:"board"`
}

// ExportBoardPayload contains data for exporting the board
type ExportBoardPayload struct {
	Name string `json:"name"`
}

// ExportBoardResult carries the rendered Markdown document
type ExportBoardResult struct {
	Markdown string `json:"markdown"`
}

// DeleteCardPayload contains data for deleting a card
type DeleteCardPayload struct {
	CardID string `json:"card_id"`
}
