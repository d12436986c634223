package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"kanboard/internal/application/dto"
	"kanboard/internal/application/store"
	"kanboard/internal/application/usecase"
	"kanboard/internal/application/usecase/board"
	"kanboard/internal/application/usecase/card"
	"kanboard/internal/infrastructure/metrics"
	"kanboard/internal/infrastructure/persistence/memory"
)

func newTestServer(t *testing.T, opts ...store.Option) (*httptest.Server, *store.BoardStore) {
	t.Helper()

	collector := metrics.NewCollector()
	opts = append([]store.Option{store.WithMetrics(collector)}, opts...)
	st := store.NewBoardStore(memory.NewSnapshotRepository(), opts...)
	st.Load(context.Background())

	svc := usecase.NewService(
		board.NewGetBoardUseCase(st),
		board.NewExportBoardUseCase(st),
		card.NewAddCardUseCase(st),
		card.NewApplyDropUseCase(st),
		card.NewDeleteCardUseCase(st),
	)

	router := NewRouter(svc, collector, zap.NewNop(), []string{"http://localhost:3000"})
	srv := httptest.NewServer(router.Setup())
	t.Cleanup(srv.Close)
	return srv, st
}

func do(t *testing.T, method, url, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestAPI_AddCard(t *testing.T) {
	srv, st := newTestServer(t)

	resp := do(t, http.MethodPost, srv.URL+"/api/cards", `{"column":"todo","title":"  hello "}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	added := decode[dto.AddCardResponse](t, resp)
	require.NotNil(t, added.Card)
	assert.Equal(t, "hello", added.Card.Title)

	resp = do(t, http.MethodPost, srv.URL+"/api/cards", `{"column":"todo","title":"   "}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.False(t, decode[dto.AddCardResponse](t, resp).Added)

	resp = do(t, http.MethodPost, srv.URL+"/api/cards", `{"title":"x"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, http.MethodPost, srv.URL+"/api/cards", `{"column":"todo","title":"x","extra":1}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	assert.Len(t, st.Cards(), 1)
}

func TestAPI_DropsAndBoard(t *testing.T) {
	srv, st := newTestServer(t)
	ctx := context.Background()
	st.AddCard(ctx, "todo", "a")
	st.AddCard(ctx, "todo", "b")
	st.AddCard(ctx, "doing", "c")

	resp := do(t, http.MethodPost, srv.URL+"/api/drops",
		`{"source_column":"todo","source_index":0,"destination_column":"doing","destination_index":1}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, dto.DropResponse{Outcome: "moved", Changed: true}, decode[dto.DropResponse](t, resp))

	resp = do(t, http.MethodPost, srv.URL+"/api/drops",
		`{"source_column":"todo","source_index":9,"destination_column":"doing"}`)
	assert.Equal(t, "miss", decode[dto.DropResponse](t, resp).Outcome)

	resp = do(t, http.MethodGet, srv.URL+"/api/board", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	boardDTO := decode[dto.BoardDTO](t, resp)

	titles := func(col dto.ColumnDTO) []string {
		out := make([]string, len(col.Cards))
		for i, c := range col.Cards {
			out[i] = c.Title
		}
		return out
	}
	assert.Equal(t, []string{"b"}, titles(boardDTO.Columns[1]))
	assert.Equal(t, []string{"c", "a"}, titles(boardDTO.Columns[2]))
	assert.Equal(t, 2, boardDTO.Columns[2].Count)
}

func TestAPI_DeleteCard(t *testing.T) {
	srv, st := newTestServer(t)
	c, _ := st.AddCard(context.Background(), "todo", "a")

	resp := do(t, http.MethodDelete, srv.URL+"/api/cards/unknown", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = do(t, http.MethodDelete, srv.URL+"/api/cards/"+c.ID(), "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, st.Cards())
}

func TestAPI_DeleteCardAmbiguousPrefix(t *testing.T) {
	ids := []string{"beef01", "beef02"}
	srv, st := newTestServer(t, store.WithIDGenerator(func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	}))
	st.AddCard(context.Background(), "todo", "a")
	st.AddCard(context.Background(), "todo", "b")

	resp := do(t, http.MethodDelete, srv.URL+"/api/cards/beef", "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Len(t, st.Cards(), 2)

	resp = do(t, http.MethodDelete, srv.URL+"/api/cards/beef02", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, st.Cards(), 1)
}

func TestAPI_ExportHealthAndMetrics(t *testing.T) {
	srv, st := newTestServer(t)
	st.AddCard(context.Background(), "done", "shipped")

	resp := do(t, http.MethodGet, srv.URL+"/api/board/export?name=team", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/markdown; charset=utf-8", resp.Header.Get("Content-Type"))

	resp = do(t, http.MethodGet, srv.URL+"/healthz", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	health := decode[map[string]interface{}](t, resp)
	assert.Equal(t, "healthy", health["status"])

	resp = do(t, http.MethodGet, srv.URL+"/metrics", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "kanboard_cards_added_total 1")
	assert.Contains(t, string(body), `kanboard_http_requests_total{method="GET",route="/api/board/export",status="200"} 1`)
}

func TestAPI_CORSPreflight(t *testing.T) {
	srv, _ := newTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/api/drops", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "http://localhost:3000", resp.Header.Get("Access-Control-Allow-Origin"))
}
