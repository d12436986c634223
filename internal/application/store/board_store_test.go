package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"kanboard/internal/domain/entity"
	"kanboard/internal/domain/service"
	"kanboard/internal/infrastructure/metrics"
	"kanboard/internal/infrastructure/persistence/memory"
)

// flakyRepo fails Save while failing is set
type flakyRepo struct {
	*memory.SnapshotRepository
	mu      sync.Mutex
	failing bool
	loadErr error
}

func (f *flakyRepo) setFailing(v bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failing = v
}

func (f *flakyRepo) Load(ctx context.Context) ([]entity.Card, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.SnapshotRepository.Load(ctx)
}

func (f *flakyRepo) Save(ctx context.Context, cards []entity.Card) error {
	f.mu.Lock()
	failing := f.failing
	f.mu.Unlock()
	if failing {
		return errors.New("disk full")
	}
	return f.SnapshotRepository.Save(ctx, cards)
}

func sequentialIDs() func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("card-%d", n)
	}
}

func newTestStore(t *testing.T, repo *memory.SnapshotRepository, opts ...Option) *BoardStore {
	t.Helper()
	opts = append([]Option{WithIDGenerator(sequentialIDs()), WithLogger(zap.NewNop())}, opts...)
	s := NewBoardStore(repo, opts...)
	s.Load(context.Background())
	return s
}

func columnIDs(s *BoardStore, column string) []string {
	lane, ok := s.Board().Lane(column)
	if !ok {
		return nil
	}
	out := make([]string, len(lane.Cards))
	for i, c := range lane.Cards {
		out[i] = c.ID()
	}
	return out
}

func TestBoardStore_LoadMissingSnapshotIsEmpty(t *testing.T) {
	s := newTestStore(t, memory.NewSnapshotRepository())
	assert.Empty(t, s.Cards())
	assert.False(t, s.Dirty())
}

func TestBoardStore_LoadFailureIsEmpty(t *testing.T) {
	for _, loadErr := range []error{
		fmt.Errorf("%w: unexpected end of JSON input", entity.ErrSnapshotCorrupt),
		errors.New("connection refused"),
	} {
		repo := &flakyRepo{SnapshotRepository: memory.NewSnapshotRepository(), loadErr: loadErr}
		s := NewBoardStore(repo)
		s.Load(context.Background())
		assert.Empty(t, s.Cards(), "load error %v", loadErr)
	}
}

func TestBoardStore_AddCard(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewSnapshotRepository()
	s := newTestStore(t, repo)

	first, ok := s.AddCard(ctx, "todo", "  write tests  ")
	require.True(t, ok)
	assert.Equal(t, "write tests", first.Title())
	assert.Equal(t, "card-1", first.ID())

	second, ok := s.AddCard(ctx, "done", "ship")
	require.True(t, ok)

	cards := s.Cards()
	require.Len(t, cards, 2)
	assert.Equal(t, second, cards[len(cards)-1], "new cards go to the end of the collection")

	stored, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, cards, stored)
}

func TestBoardStore_AddCardRejects(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewSnapshotRepository()
	collector := metrics.NewCollector()
	s := newTestStore(t, repo, WithMetrics(collector))

	for _, tc := range []struct{ column, title string }{
		{"todo", "   "},
		{"todo", ""},
		{"", "x"},
		{entity.TrashColumn, "x"},
	} {
		card, ok := s.AddCard(ctx, tc.column, tc.title)
		assert.False(t, ok)
		assert.True(t, card.IsZero())
	}

	assert.Empty(t, s.Cards())
	assert.Equal(t, 0, repo.Saves(), "rejected adds must not write")
	assert.Equal(t, 4.0, testutil.ToFloat64(collector.AddsRejected))
}

func TestBoardStore_ApplyDrop(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewSnapshotRepository()
	s := newTestStore(t, repo)

	s.AddCard(ctx, "todo", "a")
	s.AddCard(ctx, "todo", "b")
	s.AddCard(ctx, "doing", "c")
	saves := repo.Saves()

	outcome := s.ApplyDrop(ctx, entity.DropIntent{
		SourceColumn:      "todo",
		SourceIndex:       0,
		DestinationColumn: "doing",
		DestinationIndex:  1,
	})

	require.Equal(t, service.OutcomeMoved, outcome)
	assert.Equal(t, []string{"card-2"}, columnIDs(s, "todo"))
	assert.Equal(t, []string{"card-3", "card-1"}, columnIDs(s, "doing"))
	assert.Equal(t, saves+1, repo.Saves())
}

func TestBoardStore_ApplyDropNoChangeSkipsWrite(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewSnapshotRepository()
	collector := metrics.NewCollector()
	s := newTestStore(t, repo, WithMetrics(collector))

	s.AddCard(ctx, "todo", "a")
	s.AddCard(ctx, "todo", "b")
	saves := repo.Saves()

	var events int
	unsubscribe := s.Subscribe(func(ChangeEvent) { events++ })
	defer unsubscribe()

	assert.Equal(t, service.OutcomeMiss, s.ApplyDrop(ctx, entity.DropIntent{SourceColumn: "todo", SourceIndex: 7, DestinationColumn: "done"}))
	assert.Equal(t, service.OutcomeUnchanged, s.ApplyDrop(ctx, entity.DropIntent{SourceColumn: "todo", SourceIndex: 1, DestinationColumn: "todo", DestinationIndex: 1}))

	assert.Equal(t, saves, repo.Saves())
	assert.Zero(t, events)
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.Drops.WithLabelValues("miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.Drops.WithLabelValues("unchanged")))
}

func TestBoardStore_DropOnTrash(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, memory.NewSnapshotRepository())

	s.AddCard(ctx, "todo", "a")
	s.AddCard(ctx, "todo", "b")

	var got ChangeEvent
	defer s.Subscribe(func(ev ChangeEvent) { got = ev })()

	outcome := s.ApplyDrop(ctx, entity.DropIntent{SourceColumn: "todo", SourceIndex: 0, DestinationColumn: entity.TrashColumn})

	assert.Equal(t, service.OutcomeDeleted, outcome)
	assert.Equal(t, []string{"card-2"}, columnIDs(s, "todo"))
	assert.Equal(t, ChangeDropped, got.Kind)
	assert.Equal(t, "card-1", got.Card.ID())
	assert.Len(t, got.Cards, 1)
}

func TestBoardStore_RemoveByID(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewSnapshotRepository()
	s := newTestStore(t, repo)

	card, _ := s.AddCard(ctx, "todo", "a")
	saves := repo.Saves()

	assert.False(t, s.RemoveByID(ctx, "nope"))
	assert.Equal(t, saves, repo.Saves())

	assert.True(t, s.RemoveByID(ctx, card.ID()))
	assert.Empty(t, s.Cards())
	assert.Equal(t, saves+1, repo.Saves())
}

func TestBoardStore_PersistFailureKeepsState(t *testing.T) {
	ctx := context.Background()
	repo := &flakyRepo{SnapshotRepository: memory.NewSnapshotRepository()}
	collector := metrics.NewCollector()
	s := NewBoardStore(repo, WithMetrics(collector))
	s.Load(ctx)

	repo.setFailing(true)
	_, ok := s.AddCard(ctx, "todo", "a")
	require.True(t, ok)
	assert.Len(t, s.Cards(), 1, "state is kept when the write fails")
	assert.True(t, s.Dirty())
	assert.Error(t, s.Persist(ctx))
	assert.Equal(t, 2.0, testutil.ToFloat64(collector.SnapshotWrites.WithLabelValues("error")))

	repo.setFailing(false)
	require.NoError(t, s.Persist(ctx))
	assert.False(t, s.Dirty())

	stored, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

func TestBoardStore_ReloadRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewSnapshotRepository()
	s := newTestStore(t, repo)

	s.AddCard(ctx, "todo", "a")
	s.AddCard(ctx, "doing", "b")
	s.ApplyDrop(ctx, entity.DropIntent{SourceColumn: "doing", SourceIndex: 0, DestinationColumn: "todo", DestinationIndex: 0})

	reopened := newTestStore(t, repo)
	assert.Equal(t, s.Cards(), reopened.Cards())
}

func TestBoardStore_Unsubscribe(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, memory.NewSnapshotRepository())

	var count int
	unsubscribe := s.Subscribe(func(ChangeEvent) { count++ })
	s.AddCard(ctx, "todo", "a")
	unsubscribe()
	unsubscribe()
	s.AddCard(ctx, "todo", "b")

	assert.Equal(t, 1, count)
}

func TestBoardStore_ListenerMayReadStore(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, memory.NewSnapshotRepository())

	var seen int
	defer s.Subscribe(func(ChangeEvent) { seen = len(s.Cards()) })()

	s.AddCard(ctx, "todo", "a")
	assert.Equal(t, 1, seen)
}

func TestBoardStore_SetColumns(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, memory.NewSnapshotRepository())
	s.AddCard(ctx, "review", "a")

	review, err := entity.NewColumn("review", "Review", "")
	require.NoError(t, err)
	s.SetColumns([]entity.Column{review})

	lanes := s.Board().Lanes()
	require.Len(t, lanes, 1)
	assert.Equal(t, "Review", lanes[0].Column.Title())
	assert.Len(t, lanes[0].Cards, 1)
}

func TestBoardStore_ConcurrentMutations(t *testing.T) {
	ctx := context.Background()
	s := NewBoardStore(memory.NewSnapshotRepository())
	s.Load(ctx)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.AddCard(ctx, "todo", fmt.Sprintf("card %d", i))
			s.ApplyDrop(ctx, entity.DropIntent{SourceColumn: "todo", SourceIndex: 0, DestinationColumn: "done", DestinationIndex: 0})
		}(i)
	}
	wg.Wait()

	board := s.Board()
	assert.Equal(t, 20, board.Total())
	assert.Equal(t, 20, board.Count("done"))
}

func TestBoardStore_EventSequence(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, memory.NewSnapshotRepository())

	var (
		mu   sync.Mutex
		seqs []uint64
	)
	defer s.Subscribe(func(ev ChangeEvent) {
		mu.Lock()
		seqs = append(seqs, ev.Seq)
		mu.Unlock()
	})()

	const workers = 8
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.AddCard(ctx, "todo", fmt.Sprintf("card %d", i))
		}(i)
	}
	wg.Wait()

	// Unchanged drops publish nothing and take no sequence number.
	s.ApplyDrop(ctx, entity.DropIntent{SourceColumn: "todo", SourceIndex: 0, DestinationColumn: "todo"})
	s.RemoveByID(ctx, "card-1")

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, seqs, workers+1)

	seen := make(map[uint64]bool, len(seqs))
	var highest uint64
	for _, seq := range seqs {
		assert.False(t, seen[seq], "sequence %d delivered twice", seq)
		seen[seq] = true
		if seq > highest {
			highest = seq
		}
	}
	assert.Equal(t, highest, seqs[len(seqs)-1], "last change carries the newest sequence")
}
