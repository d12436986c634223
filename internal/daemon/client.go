package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"time"

	"kanboard/internal/application/dto"
	"kanboard/internal/application/usecase"
)

const dialTimeout = 2 * time.Second

// ErrDaemonUnavailable is returned when nothing listens on the socket
var ErrDaemonUnavailable = errors.New("daemon is not running")

// Client talks to a running daemon. It implements usecase.BoardService so
// front ends work the same against the daemon or a local store.
type Client struct {
	socketPath string
}

var _ usecase.BoardService = (*Client)(nil)

// NewClient creates a new daemon client
func NewClient(socketPath string) *Client {
	return &Client{
		socketPath: socketPath,
	}
}

func (c *Client) dial(ctx context.Context) (net.Conn, error) {
	dialer := net.Dialer{Timeout: dialTimeout}
	conn, err := dialer.DialContext(ctx, "unix", c.socketPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDaemonUnavailable, err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		conn.SetDeadline(deadline)
	}
	return conn, nil
}

// call sends one request and decodes the response data into out
func (c *Client) call(ctx context.Context, reqType string, payload, out interface{}) error {
	conn, err := c.dial(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	req := Request{Type: reqType}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal payload: %w", err)
		}
		req.Payload = raw
	}

	if err := json.NewEncoder(conn).Encode(&req); err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}

	var resp Response
	if err := json.NewDecoder(conn).Decode(&resp); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if !resp.Success {
		return fmt.Errorf("daemon error: %s", resp.Error)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Data, out); err != nil {
		return fmt.Errorf("unexpected response format: %w", err)
	}
	return nil
}

// Ping checks if the daemon is running and responding
func (c *Client) Ping(ctx context.Context) error {
	var pong string
	return c.call(ctx, RequestPing, nil, &pong)
}

func (c *Client) GetBoard(ctx context.Context) (dto.BoardDTO, error) {
	var board dto.BoardDTO
	err := c.call(ctx, RequestGetBoard, nil, &board)
	return board, err
}

func (c *Client) ExportBoard(ctx context.Context, name string) ([]byte, error) {
	var res ExportBoardResult
	if err := c.call(ctx, RequestExportBoard, ExportBoardPayload{Name: name}, &res); err != nil {
		return nil, err
	}
	return []byte(res.Markdown), nil
}

func (c *Client) AddCard(ctx context.Context, req dto.AddCardRequest) (dto.AddCardResponse, error) {
	var resp dto.AddCardResponse
	err := c.call(ctx, RequestAddCard, req, &resp)
	return resp, err
}

func (c *Client) ApplyDrop(ctx context.Context, req dto.DropRequest) (dto.DropResponse, error) {
	var resp dto.DropResponse
	err := c.call(ctx, RequestApplyDrop, req, &resp)
	return resp, err
}

func (c *Client) DeleteCard(ctx context.Context, id string) (dto.DeleteCardResponse, error) {
	var resp dto.DeleteCardResponse
	err := c.call(ctx, RequestDeleteCard, DeleteCardPayload{CardID: id}, &resp)
	return resp, err
}

// Subscribe opens a notification stream. The channel is closed when ctx is
// cancelled or the daemon goes away.
func (c *Client) Subscribe(ctx context.Context) (<-chan Notification, error) {
	conn, err := c.dial(context.Background())
	if err != nil {
		return nil, err
	}

	encoder := json.NewEncoder(conn)
	decoder := json.NewDecoder(conn)

	if err := encoder.Encode(&Request{Type: RequestSubscribe}); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to send subscribe request: %w", err)
	}

	var ack Response
	if err := decoder.Decode(&ack); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to decode subscribe response: %w", err)
	}
	if !ack.Success {
		conn.Close()
		return nil, fmt.Errorf("daemon error: %s", ack.Error)
	}

	out := make(chan Notification)
	go func() {
		<-ctx.Done()
		conn.Close()
	}()
	go func() {
		defer close(out)
		for {
			var n Notification
			if err := decoder.Decode(&n); err != nil {
				return
			}
			select {
			case out <- n:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}
