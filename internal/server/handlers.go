package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jdelaney/contentpipe-go/internal/db"
	"github.com/jdelaney/contentpipe-go/internal/ingest"
	"github.com/jdelaney/contentpipe-go/internal/models"
	"github.com/jdelaney/contentpipe-go/internal/pipeline"
	"github.com/jdelaney/contentpipe-go/internal/starter"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeError maps service errors onto HTTP status codes.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, db.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, ingest.ErrEmptyContent),
		errors.Is(err, ingest.ErrUnsupportedType),
		errors.Is(err, pipeline.ErrNoPieces):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	default:
		s.log.Error("request handler failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
	}
}

func decodeBody(w http.ResponseWriter, req *http.Request, v any) bool {
	if err := json.NewDecoder(req.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return false
	}
	return true
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type pasteRequest struct {
	Content  string `json:"content"`
	Source   string `json:"source,omitempty"`
	ClientID string `json:"client_id,omitempty"`
}

func (s *Server) handlePaste(w http.ResponseWriter, req *http.Request) {
	var body pasteRequest
	if !decodeBody(w, req, &body) {
		return
	}
	if body.Source == "" {
		body.Source = "paste"
	}

	result, err := s.ingester.IngestText(req.Context(), body.Content, body.Source, body.ClientID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

func (s *Server) handleListPieces(w http.ResponseWriter, req *http.Request) {
	pieces, err := s.store.ListPieces(req.Context(), req.URL.Query().Get("client"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"pieces": pieces})
}

type pieceDetail struct {
	Piece     *models.Piece          `json:"piece"`
	Tags      *models.ArchivistTags  `json:"tags,omitempty"`
	Placement *models.Placement      `json:"placement,omitempty"`
	Items     []models.RepurposeItem `json:"items,omitempty"`
}

func (s *Server) handleGetPiece(w http.ResponseWriter, req *http.Request) {
	id := req.PathValue("id")
	ctx := req.Context()

	piece, err := s.store.GetPiece(ctx, id)
	if err != nil {
		s.writeError(w, err)
		return
	}

	detail := pieceDetail{Piece: piece}
	// Stage outputs are optional; the piece may not have been run yet
	if tags, err := s.store.GetTags(ctx, id); err == nil {
		detail.Tags = tags
	} else if !errors.Is(err, db.ErrNotFound) {
		s.writeError(w, err)
		return
	}
	if placement, err := s.store.GetPlacement(ctx, id); err == nil {
		detail.Placement = placement
	} else if !errors.Is(err, db.ErrNotFound) {
		s.writeError(w, err)
		return
	}
	items, err := s.store.ListRepurposeItems(ctx, id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	detail.Items = items

	writeJSON(w, http.StatusOK, detail)
}

func (s *Server) handleRunPiece(w http.ResponseWriter, req *http.Request) {
	result, plan, err := s.pipeline.RunPiece(req.Context(), req.PathValue("id"), nil)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"result": result, "calendar": plan})
}

type runAllRequest struct {
	ClientID string `json:"client_id,omitempty"`
}

func (s *Server) handleRunAll(w http.ResponseWriter, req *http.Request) {
	var body runAllRequest
	if req.ContentLength > 0 && !decodeBody(w, req, &body) {
		return
	}

	run, err := s.pipeline.RunAll(req.Context(), body.ClientID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, run)
}

type onboardingRequest struct {
	ClientID string                  `json:"client_id,omitempty"`
	Intake   models.StrategistIntake `json:"intake"`
}

func (s *Server) handleOnboarding(w http.ResponseWriter, req *http.Request) {
	var body onboardingRequest
	if !decodeBody(w, req, &body) {
		return
	}
	if body.Intake.CoachingNiche == "" || body.Intake.TargetAudience == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "intake requires coaching_niche and target_audience"})
		return
	}

	result, err := s.pipeline.Onboard(req.Context(), body.ClientID, &body.Intake)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type starterRequest struct {
	starter.Request
	Format string `json:"format,omitempty"` // "json" (default), "text", "html"
}

func (s *Server) handleStarter(w http.ResponseWriter, req *http.Request) {
	var body starterRequest
	if !decodeBody(w, req, &body) {
		return
	}
	if body.CustomerName == "" || body.RawContent == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "customer_name and raw_content are required"})
		return
	}

	out, err := s.starter.Generate(req.Context(), &body.Request)
	if err != nil {
		s.writeError(w, err)
		return
	}

	switch body.Format {
	case "text":
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(starter.FormatText(out)))
	case "html":
		html, err := starter.FormatHTML(out)
		if err != nil {
			s.writeError(w, err)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(html))
	default:
		writeJSON(w, http.StatusOK, out)
	}
}

func (s *Server) handleCalendar(w http.ResponseWriter, req *http.Request) {
	client := req.URL.Query().Get("client")
	if client == "" {
		client = pipeline.DefaultScope
	}

	plan, err := s.store.GetCalendar(req.Context(), client)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

func (s *Server) handleSeries(w http.ResponseWriter, req *http.Request) {
	client := req.URL.Query().Get("client")
	if client == "" {
		client = pipeline.DefaultScope
	}

	series, err := s.store.ListSeries(req.Context(), client)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"series": series})
}

func (s *Server) handleStats(w http.ResponseWriter, req *http.Request) {
	stored, err := s.store.Stats(req.Context(), req.URL.Query().Get("client"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	response := map[string]any{"stored": stored}
	if s.stats != nil {
		response["agents"] = s.stats.Snapshot()
	}
	writeJSON(w, http.StatusOK, response)
}

// checkoutEvent is the payment processor's webhook payload, treated as an
// opaque external event. Only completed checkouts trigger work.
type checkoutEvent struct {
	EventType     string `json:"event_type"`
	Product       string `json:"product"` // "starter" or "pipeline"
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	ClientID      string `json:"client_id,omitempty"`
	Niche         string `json:"niche,omitempty"`
	Audience      string `json:"audience,omitempty"`
	RawContent    string `json:"raw_content,omitempty"`
}

func (s *Server) handleCheckoutWebhook(w http.ResponseWriter, req *http.Request) {
	var event checkoutEvent
	if !decodeBody(w, req, &event) {
		return
	}

	if event.EventType != "checkout.completed" {
		s.log.Debug("ignoring webhook event", "event_type", event.EventType)
		writeJSON(w, http.StatusAccepted, map[string]string{"status": "ignored"})
		return
	}

	switch event.Product {
	case "starter":
		if event.RawContent == "" {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "starter checkout requires raw_content"})
			return
		}
		out, err := s.starter.Generate(req.Context(), &starter.Request{
			CustomerName:  event.CustomerName,
			CustomerEmail: event.CustomerEmail,
			Niche:         event.Niche,
			Audience:      event.Audience,
			RawContent:    event.RawContent,
		})
		if err != nil {
			s.writeError(w, err)
			return
		}
		s.log.Info("starter order fulfilled", "customer", event.CustomerEmail, "posts", len(out.Posts))
		writeJSON(w, http.StatusAccepted, map[string]any{"status": "fulfilled", "posts": len(out.Posts)})

	case "pipeline":
		run, err := s.pipeline.RunAll(req.Context(), event.ClientID)
		if err != nil {
			s.writeError(w, err)
			return
		}
		s.log.Info("pipeline order fulfilled", "client", event.ClientID, "pieces", len(run.Pieces))
		writeJSON(w, http.StatusAccepted, map[string]any{"status": "fulfilled", "pieces": len(run.Pieces)})

	default:
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "unknown product: " + event.Product})
	}
}
