package server_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdelaney/contentpipe-go/internal/agent"
	"github.com/jdelaney/contentpipe-go/internal/db"
	"github.com/jdelaney/contentpipe-go/internal/ingest"
	"github.com/jdelaney/contentpipe-go/internal/metrics"
	"github.com/jdelaney/contentpipe-go/internal/pipeline"
	"github.com/jdelaney/contentpipe-go/internal/server"
	"github.com/jdelaney/contentpipe-go/internal/starter"
)

var refMonday = time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T) (*server.Server, *db.MemoryStore, *server.Hub) {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := db.NewMemoryStore()
	hub := server.NewHub(log)
	runner := agent.MockRunner{}
	clock := func() time.Time { return refMonday }

	pipe := pipeline.NewService(store, runner,
		pipeline.WithLogger(log),
		pipeline.WithClock(clock),
		pipeline.WithEvents(hub.Broadcast),
		pipeline.WithStageDelay(0),
	)
	ingester := ingest.NewService(store, log)
	start := starter.NewService(runner, starter.WithLogger(log), starter.WithClock(clock))
	stats := metrics.NewCollector()

	srv := server.New(":0", store, ingester, pipe, start, stats, hub, log)
	return srv, store, hub
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rec := doJSON(t, srv.Handler(), http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok"`)
}

func TestPasteAndList(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rec := doJSON(t, srv.Handler(), http.MethodPost, "/api/upload/paste", map[string]string{
		"content":   "# Pricing Notes\n\nPrice on outcomes, not hours.",
		"client_id": "client-a",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var result ingest.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "Pricing Notes", result.Title)
	assert.NotEmpty(t, result.PieceID)

	rec = doJSON(t, srv.Handler(), http.MethodGet, "/api/pieces?client=client-a", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), result.PieceID)
}

func TestPasteRejectsEmpty(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rec := doJSON(t, srv.Handler(), http.MethodPost, "/api/upload/paste", map[string]string{
		"content": "   ",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRunPieceAndDetail(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rec := doJSON(t, srv.Handler(), http.MethodPost, "/api/upload/paste", map[string]string{
		"content":   "# Deep Dive\n\n" + strings.Repeat("word ", 900),
		"client_id": "client-a",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var result ingest.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))

	rec = doJSON(t, srv.Handler(), http.MethodPost, "/api/pipeline/run/"+result.PieceID, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"calendar"`)

	rec = doJSON(t, srv.Handler(), http.MethodGet, "/api/pieces/"+result.PieceID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var detail struct {
		Tags      *json.RawMessage  `json:"tags"`
		Placement *json.RawMessage  `json:"placement"`
		Items     []json.RawMessage `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
	assert.NotNil(t, detail.Tags, "piece should have tags after a run")
	assert.NotNil(t, detail.Placement, "piece should have a placement after a run")
	assert.NotEmpty(t, detail.Items, "piece should have repurpose items after a run")
}

func TestRunPieceNotFound(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rec := doJSON(t, srv.Handler(), http.MethodPost, "/api/pipeline/run/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRunAllAndCalendar(t *testing.T) {
	srv, _, _ := newTestServer(t)

	for _, title := range []string{"One", "Two", "Three"} {
		rec := doJSON(t, srv.Handler(), http.MethodPost, "/api/upload/paste", map[string]string{
			"content":   "# " + title + "\n\n" + strings.Repeat("word ", 900),
			"client_id": "client-a",
		})
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := doJSON(t, srv.Handler(), http.MethodPost, "/api/pipeline/run-all", map[string]string{
		"client_id": "client-a",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var run pipeline.RunResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &run))
	assert.Len(t, run.Pieces, 3)
	require.NotNil(t, run.Calendar)
	assert.Equal(t, 52, run.Calendar.CalendarSummary.TotalPosts)

	rec = doJSON(t, srv.Handler(), http.MethodGet, "/api/calendar?client=client-a", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Jan 5 - Jan 11")

	rec = doJSON(t, srv.Handler(), http.MethodGet, "/api/series?client=client-a", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRunAllEmptyLibrary(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rec := doJSON(t, srv.Handler(), http.MethodPost, "/api/pipeline/run-all", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOnboardingValidation(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rec := doJSON(t, srv.Handler(), http.MethodPost, "/api/onboarding", map[string]any{
		"intake": map[string]any{"coaching_niche": ""},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOnboarding(t *testing.T) {
	srv, store, _ := newTestServer(t)

	rec := doJSON(t, srv.Handler(), http.MethodPost, "/api/onboarding", map[string]any{
		"client_id": "client-new",
		"intake": map[string]any{
			"coaching_niche":  "executive coaching",
			"target_audience": "VPs at tech companies",
			"primary_goal":    "get_clients",
		},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "platform_priority")

	_, err := store.GetStrategy(t.Context(), "client-new")
	assert.NoError(t, err, "strategy should be persisted")
}

func TestStarterTextFormat(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rec := doJSON(t, srv.Handler(), http.MethodPost, "/api/starter", map[string]string{
		"customer_name": "Dana Smith",
		"raw_content":   "Source content about coaching.",
		"format":        "text",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/plain")
	assert.Contains(t, rec.Body.String(), "YOUR 30-DAY LINKEDIN CONTENT CALENDAR")
}

func TestStarterValidation(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rec := doJSON(t, srv.Handler(), http.MethodPost, "/api/starter", map[string]string{
		"customer_name": "Dana",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCheckoutWebhook(t *testing.T) {
	srv, _, _ := newTestServer(t)

	// Non-checkout events are acknowledged and ignored
	rec := doJSON(t, srv.Handler(), http.MethodPost, "/api/webhooks/checkout", map[string]string{
		"event_type": "invoice.created",
	})
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Contains(t, rec.Body.String(), "ignored")

	// Starter checkout fulfills the order
	rec = doJSON(t, srv.Handler(), http.MethodPost, "/api/webhooks/checkout", map[string]string{
		"event_type":     "checkout.completed",
		"product":        "starter",
		"customer_name":  "Dana",
		"customer_email": "dana@example.com",
		"raw_content":    "Source content.",
	})
	require.Equal(t, http.StatusAccepted, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "fulfilled")

	// Unknown products are rejected
	rec = doJSON(t, srv.Handler(), http.MethodPost, "/api/webhooks/checkout", map[string]string{
		"event_type": "checkout.completed",
		"product":    "mystery",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStatsEndpoint(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rec := doJSON(t, srv.Handler(), http.MethodPost, "/api/upload/paste", map[string]string{
		"content": "# A Piece\n\nBody.",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, srv.Handler(), http.MethodGet, "/api/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var response struct {
		Stored struct {
			Pieces int `json:"pieces"`
		} `json:"stored"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, 1, response.Stored.Pieces)
}

func TestEventsWebsocket(t *testing.T) {
	srv, _, hub := newTestServer(t)

	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/events"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err, "websocket dial should succeed")
	defer conn.Close()

	// Wait for the hub to register the subscriber
	deadline := time.Now().Add(2 * time.Second)
	for hub.Subscribers() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	require.Equal(t, 1, hub.Subscribers())

	hub.Broadcast(pipeline.Event{Type: "stage_start", Stage: "archivist", PieceID: "p1"})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var event pipeline.Event
	require.NoError(t, conn.ReadJSON(&event))
	assert.Equal(t, "stage_start", event.Type)
	assert.Equal(t, "p1", event.PieceID)
}
