package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"kanboard/internal/application/dto"
	"kanboard/internal/application/store"
	"kanboard/internal/application/usecase"
)

// Server serves board operations over a unix socket
type Server struct {
	socketPath string
	service    usecase.BoardService
	store      *store.BoardStore
	logger     *zap.Logger

	listener    net.Listener
	unsubscribe func()
	conns       sync.WaitGroup
	active      map[net.Conn]struct{}
	activeMu    sync.Mutex

	subscribers map[net.Conn]chan *Notification
	subMu       sync.RWMutex

	lastSeq uint64
	seqMu   sync.Mutex
}

// NewServer creates a new daemon server
func NewServer(socketPath string, service usecase.BoardService, st *store.BoardStore, logger *zap.Logger) *Server {
	return &Server{
		socketPath:  socketPath,
		service:     service,
		store:       st,
		logger:      logger.Named("daemon"),
		subscribers: make(map[net.Conn]chan *Notification),
		active:      make(map[net.Conn]struct{}),
	}
}

// Listen binds the socket, replacing a stale socket file
func (s *Server) Listen() error {
	if err := os.MkdirAll(filepath.Dir(s.socketPath), 0755); err != nil {
		return fmt.Errorf("failed to create socket directory: %w", err)
	}

	if err := os.RemoveAll(s.socketPath); err != nil {
		return fmt.Errorf("failed to remove existing socket: %w", err)
	}

	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to listen on socket: %w", err)
	}

	s.listener = listener
	s.unsubscribe = s.store.Subscribe(s.onStoreChange)
	s.logger.Info("daemon listening", zap.String("socket", s.socketPath))
	return nil
}

// Serve accepts connections until Stop is called
func (s *Server) Serve() error {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			return fmt.Errorf("failed to accept connection: %w", err)
		}

		s.activeMu.Lock()
		s.active[conn] = struct{}{}
		s.activeMu.Unlock()

		s.conns.Add(1)
		go func() {
			defer s.conns.Done()
			s.handleConnection(conn)

			s.activeMu.Lock()
			delete(s.active, conn)
			s.activeMu.Unlock()
		}()
	}
}

// Start listens and serves
func (s *Server) Start() error {
	if err := s.Listen(); err != nil {
		return err
	}
	return s.Serve()
}

// Stop closes the listener and every open connection
func (s *Server) Stop() error {
	if s.unsubscribe != nil {
		s.unsubscribe()
	}

	var err error
	if s.listener != nil {
		err = s.listener.Close()
	}

	s.activeMu.Lock()
	for conn := range s.active {
		conn.Close()
	}
	s.activeMu.Unlock()

	s.conns.Wait()
	os.Remove(s.socketPath)
	return err
}

// SocketPath returns the socket the server listens on
func (s *Server) SocketPath() string {
	return s.socketPath
}

// handleConnection serves one client. Ping keeps the connection open for
// another request; subscribe turns it into a notification stream; anything
// else is answered and the connection closed.
func (s *Server) handleConnection(conn net.Conn) {
	defer func() {
		s.cleanupSubscriber(conn)
		conn.Close()
	}()

	decoder := json.NewDecoder(conn)
	encoder := json.NewEncoder(conn)

	for {
		var req Request
		if err := decoder.Decode(&req); err != nil {
			return
		}

		if req.Type == RequestSubscribe {
			s.handleSubscribe(conn, decoder, encoder)
			return
		}

		resp := s.handleRequest(&req)
		if err := encoder.Encode(resp); err != nil {
			s.logger.Warn("failed to encode response", zap.Error(err))
			return
		}

		if req.Type != RequestPing {
			return
		}
	}
}

// handleRequest processes a request and returns a response
func (s *Server) handleRequest(req *Request) *Response {
	ctx := context.Background()

	switch req.Type {
	case RequestPing:
		return success("pong")
	case RequestGetBoard:
		return result(s.service.GetBoard(ctx))
	case RequestExportBoard:
		var payload ExportBoardPayload
		if err := decodePayload(req.Payload, &payload); err != nil {
			return failure(err)
		}
		doc, err := s.service.ExportBoard(ctx, payload.Name)
		if err != nil {
			return failure(err)
		}
		return success(ExportBoardResult{Markdown: string(doc)})
	case RequestAddCard:
		var payload dto.AddCardRequest
		if err := decodePayload(req.Payload, &payload); err != nil {
			return failure(err)
		}
		return result(s.service.AddCard(ctx, payload))
	case RequestApplyDrop:
		var payload dto.DropRequest
		if err := decodePayload(req.Payload, &payload); err != nil {
			return failure(err)
		}
		return result(s.service.ApplyDrop(ctx, payload))
	case RequestDeleteCard:
		var payload DeleteCardPayload
		if err := decodePayload(req.Payload, &payload); err != nil {
			return failure(err)
		}
		return result(s.service.DeleteCard(ctx, payload.CardID))
	default:
		return failure(fmt.Errorf("unknown request type: %s", req.Type))
	}
}

// handleSubscribe acknowledges the subscription and streams notifications
// until the client hangs up
func (s *Server) handleSubscribe(conn net.Conn, decoder *json.Decoder, encoder *json.Encoder) {
	notifChan := make(chan *Notification, 16)

	s.subMu.Lock()
	s.subscribers[conn] = notifChan
	s.subMu.Unlock()

	if err := encoder.Encode(success("subscribed")); err != nil {
		return
	}

	// Subscribers never send again; a read returning means they left.
	go func() {
		var discard json.RawMessage
		for decoder.Decode(&discard) == nil {
		}
		s.cleanupSubscriber(conn)
	}()

	for notification := range notifChan {
		if err := encoder.Encode(notification); err != nil {
			return
		}
	}
}

func (s *Server) onStoreChange(ev store.ChangeEvent) {
	if !s.advanceSeq(ev.Seq) {
		s.logger.Debug("dropping stale change event", zap.Uint64("seq", ev.Seq))
		return
	}

	board, err := s.service.GetBoard(context.Background())
	if err != nil {
		s.logger.Warn("failed to build change notification", zap.Error(err))
		return
	}

	n := &Notification{
		Type:  NotificationBoardChanged,
		Seq:   ev.Seq,
		Kind:  string(ev.Kind),
		Board: board,
	}
	if ev.Kind == store.ChangeDropped {
		n.Outcome = ev.Outcome.String()
	}
	if !ev.Card.IsZero() {
		card := dto.CardToDTO(ev.Card)
		n.Card = &card
	}

	s.notifySubscribers(n)
}

// advanceSeq records seq as the newest event handled. Events that arrive
// after a newer one are stale: the newer notification already carried a
// fresher board.
func (s *Server) advanceSeq(seq uint64) bool {
	s.seqMu.Lock()
	defer s.seqMu.Unlock()
	if seq <= s.lastSeq {
		return false
	}
	s.lastSeq = seq
	return true
}

// notifySubscribers sends without blocking; a subscriber that is too slow
// misses the notification and catches up on the next one
func (s *Server) notifySubscribers(notification *Notification) {
	s.subMu.RLock()
	defer s.subMu.RUnlock()

	for _, ch := range s.subscribers {
		select {
		case ch <- notification:
		default:
			s.logger.Debug("subscriber queue full, dropping notification",
				zap.String("kind", notification.Kind))
		}
	}
}

// cleanupSubscriber removes a connection from the subscriber set
func (s *Server) cleanupSubscriber(conn net.Conn) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	if ch, exists := s.subscribers[conn]; exists {
		close(ch)
		delete(s.subscribers, conn)
	}
}

func decodePayload(payload json.RawMessage, target interface{}) error {
	if len(payload) == 0 {
		return errors.New("missing payload")
	}
	if err := json.Unmarshal(payload, target); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}
	return nil
}

func result(data interface{}, err error) *Response {
	if err != nil {
		return failure(err)
	}
	return success(data)
}

func success(data interface{}) *Response {
	raw, err := json.Marshal(data)
	if err != nil {
		return failure(fmt.Errorf("failed to marshal response: %w", err))
	}
	return &Response{Success: true, Data: raw}
}

func failure(err error) *Response {
	return &Response{Success: false, Error: err.Error()}
}
