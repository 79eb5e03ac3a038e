// Package server exposes the pipeline over HTTP: upload, run, onboarding,
// starter generation, reads, and a websocket progress feed.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/jdelaney/contentpipe-go/internal/ingest"
	"github.com/jdelaney/contentpipe-go/internal/metrics"
	"github.com/jdelaney/contentpipe-go/internal/models"
	"github.com/jdelaney/contentpipe-go/internal/pipeline"
	"github.com/jdelaney/contentpipe-go/internal/starter"
)

const shutdownTimeout = 10 * time.Second

// Store is the read surface the HTTP handlers need.
type Store interface {
	ListPieces(ctx context.Context, clientID string) ([]models.Piece, error)
	GetPiece(ctx context.Context, id string) (*models.Piece, error)
	GetTags(ctx context.Context, pieceID string) (*models.ArchivistTags, error)
	GetPlacement(ctx context.Context, pieceID string) (*models.Placement, error)
	ListRepurposeItems(ctx context.Context, pieceID string) ([]models.RepurposeItem, error)
	ListSeries(ctx context.Context, clientID string) ([]models.ContentSeries, error)
	GetCalendar(ctx context.Context, clientID string) (*models.CalendarPlan, error)
	Stats(ctx context.Context, clientID string) (*models.PipelineStats, error)
}

// Server routes HTTP requests to the pipeline services.
type Server struct {
	store    Store
	ingester *ingest.Service
	pipeline *pipeline.Service
	starter  *starter.Service
	stats    *metrics.Collector
	hub      *Hub
	log      *slog.Logger
	http     *http.Server
}

// New creates a server bound to addr. The hub must be the same one wired
// into the pipeline service's event sink so progress reaches subscribers.
func New(addr string, store Store, ingester *ingest.Service, pipe *pipeline.Service,
	start *starter.Service, stats *metrics.Collector, hub *Hub, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}

	s := &Server{
		store:    store,
		ingester: ingester,
		pipeline: pipe,
		starter:  start,
		stats:    stats,
		hub:      hub,
		log:      log,
	}

	s.http = &http.Server{
		Addr:              addr,
		Handler:           LoggingMiddleware(log)(s.routes()),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/upload/paste", s.handlePaste)
	mux.HandleFunc("GET /api/pieces", s.handleListPieces)
	mux.HandleFunc("GET /api/pieces/{id}", s.handleGetPiece)
	mux.HandleFunc("POST /api/pipeline/run/{id}", s.handleRunPiece)
	mux.HandleFunc("POST /api/pipeline/run-all", s.handleRunAll)
	mux.HandleFunc("POST /api/onboarding", s.handleOnboarding)
	mux.HandleFunc("POST /api/starter", s.handleStarter)
	mux.HandleFunc("GET /api/calendar", s.handleCalendar)
	mux.HandleFunc("GET /api/series", s.handleSeries)
	mux.HandleFunc("GET /api/stats", s.handleStats)
	mux.HandleFunc("POST /api/webhooks/checkout", s.handleCheckoutWebhook)
	mux.HandleFunc("GET /api/events", s.handleEvents)
	mux.HandleFunc("GET /healthz", s.handleHealth)

	return mux
}

// Handler returns the configured handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("http server listening", "addr", s.http.Addr)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.http.Shutdown(shutdownCtx)
}
