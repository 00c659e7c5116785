package daemon

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/budgetring/internal/config"
	"github.com/theirongolddev/budgetring/internal/model"
	"github.com/theirongolddev/budgetring/internal/pipeline"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestDiffSnapshots(t *testing.T) {
	prev := Snapshot{Month: "2025-06", Transactions: 10, Spent: 410.5}
	curr := Snapshot{Month: "2025-06", Transactions: 12, Spent: 433.1}

	delta := diffSnapshots(prev, curr)
	if delta.Transactions != 2 {
		t.Fatalf("Transactions delta = %d, want 2", delta.Transactions)
	}
	if math.Abs(delta.Spent-22.6) > 1e-9 {
		t.Fatalf("Spent delta = %.2f, want 22.60", delta.Spent)
	}
	if delta.MonthChanged {
		t.Fatal("same month reported as changed")
	}
	if delta.isZero() {
		t.Fatal("delta unexpectedly reported as zero")
	}

	curr.Month = "2025-07"
	if !diffSnapshots(curr, curr).isZero() {
		t.Fatal("identical snapshots should diff to zero")
	}
	if !diffSnapshots(prev, Snapshot{Month: "2025-07", Transactions: 10, Spent: 410.5}).MonthChanged {
		t.Fatal("month rollover not detected")
	}
}

func TestPublishEventRingBuffer(t *testing.T) {
	s := New(Config{
		Interval:     10 * time.Second,
		EventsBuffer: 2,
	})

	s.publishEvent(Event{ID: 1})
	s.publishEvent(Event{ID: 2})
	s.publishEvent(Event{ID: 3})

	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.events) != 2 {
		t.Fatalf("events len = %d, want 2", len(s.events))
	}
	if s.events[0].ID != 2 || s.events[1].ID != 3 {
		t.Fatalf("events ring contains IDs [%d, %d], want [2, 3]", s.events[0].ID, s.events[1].ID)
	}
}

// fakeLedger serves a dataset that grows between polls.
type fakeLedger struct {
	ds    *pipeline.Dataset
	err   error
	calls int
}

func (f *fakeLedger) load(pipeline.LoadOptions) (*pipeline.Dataset, error) {
	f.calls++
	return f.ds, f.err
}

func testService(t *testing.T) (*Service, *fakeLedger) {
	t.Helper()
	june := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.Local)
	day := func(d int) time.Time { return june.AddDate(0, 0, d-1).Add(12 * time.Hour) }

	ledger := &fakeLedger{ds: &pipeline.Dataset{
		Categories: []model.Category{
			{Name: "Groceries", Color: "blue", MonthlyBudget: 400},
			{Name: "Transport", Color: "#879A39", MonthlyBudget: 100},
		},
		Transactions: []model.Transaction{
			{ID: model.TransactionID("a"), Category: "Groceries", Amount: 250, Date: day(2)},
			{ID: model.TransactionID("b"), Category: "Transport", Amount: 70, Date: day(3)},
		},
	}}
	s := New(Config{Month: june, Load: pipeline.LoadOptions{Config: config.DefaultConfig()}})
	s.load = ledger.load
	return s, ledger
}

func TestPollOncePublishesChanges(t *testing.T) {
	s, ledger := testService(t)
	now := time.Date(2025, time.June, 10, 9, 0, 0, 0, time.Local)

	s.pollOnce(now)
	st := s.snapshotStatus()
	assert.Equal(t, "2025-06", st.Summary.Month)
	assert.Equal(t, 2, st.Summary.Transactions)
	assert.InDelta(t, 320, st.Summary.Spent, 1e-9)
	require.Len(t, st.Summary.Categories, 2)
	assert.Equal(t, "Groceries", st.Summary.Categories[0].Name)
	assert.Equal(t, "#4385BE", st.Summary.Categories[0].Color)
	assert.Equal(t, 1, st.EventCount)

	// Unchanged ledger: no new event.
	s.pollOnce(now.Add(time.Minute))
	assert.Equal(t, 1, s.snapshotStatus().EventCount)

	ledger.ds.Transactions = append(ledger.ds.Transactions, model.Transaction{
		ID: model.TransactionID("c"), Category: "Transport", Amount: 12.5, Date: now,
	})
	s.pollOnce(now.Add(2 * time.Minute))

	s.mu.RLock()
	last := s.events[len(s.events)-1]
	s.mu.RUnlock()
	assert.Equal(t, "spending_delta", last.Type)
	assert.Equal(t, 1, last.Delta.Transactions)
	assert.InDelta(t, 12.5, last.Delta.Spent, 1e-9)
	assert.Equal(t, 3, ledger.calls)
}

func TestPollOnceKeepsSnapshotOnError(t *testing.T) {
	s, ledger := testService(t)
	now := time.Date(2025, time.June, 10, 9, 0, 0, 0, time.Local)
	s.pollOnce(now)

	ledger.err = errors.New("database is locked")
	s.pollOnce(now.Add(time.Minute))

	st := s.snapshotStatus()
	assert.Equal(t, "database is locked", st.LastError)
	assert.Equal(t, int64(2), st.PollCount)
	assert.InDelta(t, 320, st.Summary.Spent, 1e-9, "last good snapshot survives")
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	h.ServeHTTP(w, req)
	return w
}

func TestHandlerEndpoints(t *testing.T) {
	s, _ := testService(t)
	s.pollOnce(time.Date(2025, time.June, 10, 9, 0, 0, 0, time.Local))
	h := s.Handler()

	w := get(t, h, "/healthz")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok\n", w.Body.String())

	w = get(t, h, "/v1/status")
	require.Equal(t, http.StatusOK, w.Code)
	var st Status
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &st))
	assert.Equal(t, 2, st.Summary.Transactions)

	w = get(t, h, "/v1/events")
	require.Equal(t, http.StatusOK, w.Code)
	var events []Event
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &events))
	require.Len(t, events, 1)
	assert.Equal(t, "snapshot", events[0].Type)

	w = get(t, h, "/v1/events?limit=abc")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = get(t, h, "/v1/chart.svg")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/svg+xml", w.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(w.Body.String(), "<svg"))
	assert.Equal(t, 2, strings.Count(w.Body.String(), "data-index="))

	w = get(t, h, "/v1/chart.svg?select=1")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Groceries")
	assert.Contains(t, w.Body.String(), "$250.00")

	w = get(t, h, "/v1/chart.svg?select=9")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChartWithoutSpending(t *testing.T) {
	s := New(Config{})
	w := get(t, s.Handler(), "/v1/chart.svg")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCORSOnlyWhenConfigured(t *testing.T) {
	s := New(Config{AllowOrigins: []string{"http://localhost:3000"}})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	s.Handler().ServeHTTP(w, req)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))

	w = httptest.NewRecorder()
	New(Config{}).Handler().ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
