package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_Records(t *testing.T) {
	c := NewCollector()

	c.RecordDrop("moved")
	c.RecordDrop("moved")
	c.RecordDrop("miss")
	c.RecordSnapshotWrite(time.Millisecond, nil)
	c.RecordSnapshotWrite(time.Millisecond, errors.New("boom"))

	assert.Equal(t, 2.0, testutil.ToFloat64(c.Drops.WithLabelValues("moved")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Drops.WithLabelValues("miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.SnapshotWrites.WithLabelValues("error")))
}

func TestCollector_CollectorsAreIndependent(t *testing.T) {
	a, b := NewCollector(), NewCollector()
	a.CardsAdded.Inc()

	assert.Equal(t, 1.0, testutil.ToFloat64(a.CardsAdded))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.CardsAdded))
}

func TestCollector_Handler(t *testing.T) {
	c := NewCollector()
	c.Cards.Set(3)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "kanboard_cards 3")
}
