package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"kanboard/internal/domain/entity"
	"kanboard/internal/domain/repository"
	"kanboard/internal/domain/service"
	"kanboard/internal/infrastructure/metrics"
)

// ChangeKind names what changed the collection
type ChangeKind string

const (
	ChangeLoaded  ChangeKind = "loaded"
	ChangeAdded   ChangeKind = "added"
	ChangeDropped ChangeKind = "dropped"
	ChangeRemoved ChangeKind = "removed"
	ChangeColumns ChangeKind = "columns"
)

// ChangeEvent is delivered to subscribers after every state change.
// Cards is a private copy the subscriber may keep.
//
// Listeners run outside the store lock, so events from concurrent
// mutations can arrive out of order. Seq is assigned under the lock and
// increases with every change; a subscriber that only cares about the
// latest state drops events older than the last one it handled.
type ChangeEvent struct {
	Seq     uint64
	Kind    ChangeKind
	Card    entity.Card
	Outcome service.Outcome
	Cards   []entity.Card
}

// Listener receives change events
type Listener func(ChangeEvent)

// Option configures a BoardStore
type Option func(*BoardStore)

// WithColumns sets the configured board columns
func WithColumns(columns []entity.Column) Option {
	return func(s *BoardStore) {
		s.columns = append([]entity.Column(nil), columns...)
	}
}

// WithLogger sets the store logger
func WithLogger(logger *zap.Logger) Option {
	return func(s *BoardStore) {
		s.logger = logger.Named("store")
	}
}

// WithMetrics records store activity on a collector
func WithMetrics(c *metrics.Collector) Option {
	return func(s *BoardStore) {
		s.metrics = c
	}
}

// WithIDGenerator replaces the card ID source
func WithIDGenerator(fn func() string) Option {
	return func(s *BoardStore) {
		s.newID = fn
	}
}

// WithWriteTimeout bounds every snapshot write
func WithWriteTimeout(d time.Duration) Option {
	return func(s *BoardStore) {
		s.writeTimeout = d
	}
}

// BoardStore owns the card collection. Every read-modify-write runs under
// one mutex, so mutations are applied one at a time in arrival order.
type BoardStore struct {
	repo repository.SnapshotRepository

	mu      sync.Mutex
	cards   []entity.Card
	columns []entity.Column
	dirty   bool
	seq     uint64

	listenersMu  sync.RWMutex
	listeners    map[int]Listener
	nextListener int

	logger       *zap.Logger
	metrics      *metrics.Collector
	newID        func() string
	writeTimeout time.Duration
}

// NewBoardStore creates an empty store over a snapshot repository.
// Call Load to read the stored collection.
func NewBoardStore(repo repository.SnapshotRepository, opts ...Option) *BoardStore {
	s := &BoardStore{
		repo:      repo,
		cards:     make([]entity.Card, 0),
		columns:   entity.DefaultColumns(),
		listeners: make(map[int]Listener),
		logger:    zap.NewNop(),
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces the collection with the stored snapshot. A missing,
// corrupt or unreadable snapshot yields an empty board; the failure is
// logged and never returned.
func (s *BoardStore) Load(ctx context.Context) {
	cards, err := s.repo.Load(ctx)
	switch {
	case errors.Is(err, entity.ErrSnapshotNotFound):
		s.logger.Info("no stored board, starting empty")
		cards = nil
	case errors.Is(err, entity.ErrSnapshotCorrupt):
		s.logger.Warn("stored board is unreadable, starting empty", zap.Error(err))
		cards = nil
	case err != nil:
		s.logger.Error("failed to load board, starting empty", zap.Error(err))
		cards = nil
	}

	s.mu.Lock()
	s.cards = append(make([]entity.Card, 0, len(cards)), cards...)
	s.dirty = false
	snapshot := s.snapshotLocked()
	seq := s.nextSeqLocked()
	s.mu.Unlock()

	s.logger.Info("board loaded", zap.Int("cards", len(snapshot)))
	s.observe(len(snapshot))
	s.publish(ChangeEvent{Kind: ChangeLoaded, Cards: snapshot, Seq: seq})
}

// Persist writes the current collection and returns the write error
func (s *BoardStore) Persist(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persistLocked(ctx)
}

// AddCard appends a new card with a fresh ID to the end of the collection.
// A title that is blank after trimming, or a column that cannot hold cards,
// is rejected with ok=false and leaves the collection untouched.
func (s *BoardStore) AddCard(ctx context.Context, column, title string) (entity.Card, bool) {
	if column == entity.TrashColumn {
		s.reject("trash column", column)
		return entity.Card{}, false
	}

	card, err := entity.NewCard(s.newID(), title, column)
	if err != nil {
		s.reject(err.Error(), column)
		return entity.Card{}, false
	}

	s.mu.Lock()
	next := make([]entity.Card, 0, len(s.cards)+1)
	next = append(next, s.cards...)
	s.cards = append(next, card)
	s.persistQuietLocked(ctx)
	snapshot := s.snapshotLocked()
	seq := s.nextSeqLocked()
	s.mu.Unlock()

	s.logger.Debug("card added", zap.String("id", card.ID()), zap.String("column", column))
	if s.metrics != nil {
		s.metrics.CardsAdded.Inc()
	}
	s.observe(len(snapshot))
	s.publish(ChangeEvent{Kind: ChangeAdded, Card: card, Cards: snapshot, Seq: seq})
	return card, true
}

// ApplyDrop reconciles a drop intent against the collection. Outcomes that
// leave the collection unchanged are not persisted or published.
func (s *BoardStore) ApplyDrop(ctx context.Context, intent entity.DropIntent) service.Outcome {
	s.mu.Lock()
	var target entity.Card
	if view := service.FilterColumn(s.cards, intent.SourceColumn); intent.SourceIndex >= 0 && intent.SourceIndex < len(view) {
		target = view[intent.SourceIndex]
	}

	next, outcome := service.ReconcileWithOutcome(s.cards, intent)
	if !outcome.Changed() {
		s.mu.Unlock()
		s.logger.Debug("drop ignored", zap.Stringer("intent", intent), zap.Stringer("outcome", outcome))
		s.recordDrop(outcome)
		return outcome
	}

	s.cards = next
	s.persistQuietLocked(ctx)
	snapshot := s.snapshotLocked()
	seq := s.nextSeqLocked()
	s.mu.Unlock()

	if outcome == service.OutcomeMoved {
		target = target.MoveTo(intent.DestinationColumn)
	}

	s.logger.Debug("drop applied",
		zap.Stringer("intent", intent),
		zap.Stringer("outcome", outcome),
		zap.String("card", target.ID()))
	s.recordDrop(outcome)
	s.observe(len(snapshot))
	s.publish(ChangeEvent{Kind: ChangeDropped, Card: target, Outcome: outcome, Cards: snapshot, Seq: seq})
	return outcome
}

// RemoveByID deletes a card by identity. Unknown IDs are a no-op.
func (s *BoardStore) RemoveByID(ctx context.Context, id string) bool {
	s.mu.Lock()
	var removed entity.Card
	for _, card := range s.cards {
		if card.ID() == id {
			removed = card
			break
		}
	}

	next, ok := service.RemoveByID(s.cards, id)
	if !ok {
		s.mu.Unlock()
		return false
	}

	s.cards = next
	s.persistQuietLocked(ctx)
	snapshot := s.snapshotLocked()
	seq := s.nextSeqLocked()
	s.mu.Unlock()

	s.logger.Debug("card removed", zap.String("id", id))
	if s.metrics != nil {
		s.metrics.CardsRemoved.Inc()
	}
	s.observe(len(snapshot))
	s.publish(ChangeEvent{Kind: ChangeRemoved, Card: removed, Cards: snapshot, Seq: seq})
	return true
}

// Cards returns a copy of the collection in global order
func (s *BoardStore) Cards() []entity.Card {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Board groups the collection into the configured columns
func (s *BoardStore) Board() *entity.Board {
	s.mu.Lock()
	defer s.mu.Unlock()
	return entity.NewBoard(s.columns, s.cards)
}

// Columns returns the configured columns
func (s *BoardStore) Columns() []entity.Column {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.Column(nil), s.columns...)
}

// SetColumns replaces the configured columns. Cards are never touched;
// cards in a column that is no longer configured show up in a trailing lane.
func (s *BoardStore) SetColumns(columns []entity.Column) {
	s.mu.Lock()
	s.columns = append([]entity.Column(nil), columns...)
	snapshot := s.snapshotLocked()
	seq := s.nextSeqLocked()
	s.mu.Unlock()

	s.publish(ChangeEvent{Kind: ChangeColumns, Cards: snapshot, Seq: seq})
}

// Dirty reports whether the last snapshot write failed
func (s *BoardStore) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// Subscribe registers a listener and returns a function that removes it.
// Listeners run on the mutating goroutine after the store lock is released;
// see ChangeEvent for ordering.
func (s *BoardStore) Subscribe(fn Listener) func() {
	s.listenersMu.Lock()
	id := s.nextListener
	s.nextListener++
	s.listeners[id] = fn
	s.listenersMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.listenersMu.Lock()
			delete(s.listeners, id)
			s.listenersMu.Unlock()
		})
	}
}

func (s *BoardStore) persistLocked(ctx context.Context) error {
	if s.writeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.writeTimeout)
		defer cancel()
	}

	start := time.Now()
	err := s.repo.Save(ctx, s.cards)
	if s.metrics != nil {
		s.metrics.RecordSnapshotWrite(time.Since(start), err)
	}

	s.dirty = err != nil
	return err
}

// persistQuietLocked persists after a mutation. The mutation stands even
// when the write fails.
func (s *BoardStore) persistQuietLocked(ctx context.Context) {
	if err := s.persistLocked(ctx); err != nil {
		s.logger.Error("failed to persist board, keeping changes in memory",
			zap.Error(err),
			zap.Int("cards", len(s.cards)))
	}
}

func (s *BoardStore) nextSeqLocked() uint64 {
	s.seq++
	return s.seq
}

func (s *BoardStore) snapshotLocked() []entity.Card {
	return append(make([]entity.Card, 0, len(s.cards)), s.cards...)
}

func (s *BoardStore) publish(ev ChangeEvent) {
	s.listenersMu.RLock()
	listeners := make([]Listener, 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	s.listenersMu.RUnlock()

	for _, fn := range listeners {
		fn(ev)
	}
}

func (s *BoardStore) reject(reason, column string) {
	s.logger.Debug("add card rejected", zap.String("reason", reason), zap.String("column", column))
	if s.metrics != nil {
		s.metrics.AddsRejected.Inc()
	}
}

func (s *BoardStore) recordDrop(outcome service.Outcome) {
	if s.metrics != nil {
		s.metrics.RecordDrop(outcome.String())
	}
}

func (s *BoardStore) observe(total int) {
	if s.metrics != nil {
		s.metrics.Cards.Set(float64(total))
	}
}
