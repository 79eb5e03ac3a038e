// Package pipeline orchestrates the agent chain over stored pieces:
// Archivist -> Placement -> Repurposer per piece, then Compiler and
// Executive over the whole scope.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/jdelaney/contentpipe-go/internal/agent"
	"github.com/jdelaney/contentpipe-go/internal/db"
	"github.com/jdelaney/contentpipe-go/internal/models"
	"github.com/jdelaney/contentpipe-go/internal/schema"
)

// ErrNoPieces indicates a scope-wide run over an empty library.
var ErrNoPieces = errors.New("no pieces to process")

// DefaultScope keys calendars and series when no client is given.
const DefaultScope = "default"

// Store is the persistence surface the pipeline needs. Both the SurrealDB
// store and the in-memory store satisfy it.
type Store interface {
	GetPiece(ctx context.Context, id string) (*models.Piece, error)
	ListPieces(ctx context.Context, clientID string) ([]models.Piece, error)
	SaveTags(ctx context.Context, tags *models.ArchivistTags) error
	GetTags(ctx context.Context, pieceID string) (*models.ArchivistTags, error)
	SavePlacement(ctx context.Context, placement *models.Placement) error
	GetPlacement(ctx context.Context, pieceID string) (*models.Placement, error)
	ReplaceRepurposeItems(ctx context.Context, pieceID string, items []models.RepurposeItem) error
	ReplaceSeries(ctx context.Context, clientID string, series []models.ContentSeries) error
	SaveCalendar(ctx context.Context, clientID string, plan *models.CalendarPlan) error
	SaveStrategy(ctx context.Context, strategy *models.ClientStrategy) error
	GetStrategy(ctx context.Context, clientID string) (*models.ClientStrategy, error)
}

// Event reports pipeline progress. Consumers (websocket hub, CLI progress)
// receive one event per stage transition.
type Event struct {
	Type    string      `json:"type"` // "stage_start", "stage_done", "run_done", "error"
	Stage   schema.Role `json:"stage,omitempty"`
	PieceID string      `json:"piece_id,omitempty"`
	Client  string      `json:"client,omitempty"`
	Detail  string      `json:"detail,omitempty"`
}

// EmitFunc receives progress events. Must not block.
type EmitFunc func(Event)

// Service drives agent runs and persists their outputs.
type Service struct {
	store      Store
	runner     agent.Runner
	log        *slog.Logger
	emit       EmitFunc
	now        func() time.Time
	stageDelay time.Duration
	sleep      agent.SleepFunc
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the service logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) { s.log = log }
}

// WithEvents attaches a progress event sink.
func WithEvents(emit EmitFunc) Option {
	return func(s *Service) { s.emit = emit }
}

// WithClock replaces the reference clock used for calendar generation.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithStageDelay sets the pause between successive agent calls within one
// piece's run. Rate-limited backends need breathing room between requests;
// zero disables the pause.
func WithStageDelay(d time.Duration) Option {
	return func(s *Service) { s.stageDelay = d }
}

// WithSleep replaces the pacing sleep. Tests inject a no-op recorder.
func WithSleep(fn agent.SleepFunc) Option {
	return func(s *Service) { s.sleep = fn }
}

// NewService creates a pipeline service.
func NewService(store Store, runner agent.Runner, opts ...Option) *Service {
	s := &Service{
		store:      store,
		runner:     runner,
		log:        slog.Default(),
		emit:       func(Event) {},
		now:        time.Now,
		stageDelay: time.Second,
		sleep:      sleepContext,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PieceResult summarizes the per-piece stages of one run.
type PieceResult struct {
	PieceID   string                `json:"piece_id"`
	Tags      *models.ArchivistTags `json:"tags"`
	Placement *models.Placement     `json:"placement"`
	ItemCount int                   `json:"item_count"`
}

// RunResult is the outcome of a scope-wide pipeline run.
type RunResult struct {
	Pieces           []PieceResult          `json:"pieces"`
	Series           []models.ContentSeries `json:"series"`
	StandalonePieces []string               `json:"standalone_pieces"`
	Calendar         *models.CalendarPlan   `json:"calendar"`
}

// OnboardResult pairs the stored strategy with the pipeline run it triggered.
type OnboardResult struct {
	Strategy *models.StrategistOutput `json:"strategy"`
	Run      *RunResult               `json:"run"`
}

func scope(clientID string) string {
	if clientID == "" {
		return DefaultScope
	}
	return clientID
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// pause waits the configured inter-stage delay.
func (s *Service) pause(ctx context.Context) error {
	if s.stageDelay <= 0 {
		return nil
	}
	return s.sleep(ctx, s.stageDelay)
}

// RunPiece runs the per-piece agent chain on a single piece, then regenerates
// the client's calendar from every stored piece in the scope.
func (s *Service) RunPiece(ctx context.Context, pieceID string, client *models.ClientContext) (*PieceResult, *models.CalendarPlan, error) {
	piece, err := s.store.GetPiece(ctx, pieceID)
	if err != nil {
		return nil, nil, err
	}
	if client == nil {
		client = s.clientContext(ctx, piece.ClientID)
	}

	_, result, err := s.runPieceStages(ctx, piece, client)
	if err != nil {
		return nil, nil, err
	}

	// The calendar covers the whole scope; a single-piece re-run must not
	// shrink it to one source.
	records, err := s.scopeRecords(ctx, piece.ClientID)
	if err != nil {
		return nil, nil, err
	}
	plan, err := s.runExecutive(ctx, piece.ClientID, records)
	if err != nil {
		return nil, nil, err
	}

	s.emit(Event{Type: "run_done", PieceID: pieceID, Client: piece.ClientID})
	return result, plan, nil
}

// RunAll runs the full pipeline over every piece in a client scope, then the
// Compiler and Executive over the combined results.
func (s *Service) RunAll(ctx context.Context, clientID string) (*RunResult, error) {
	pieces, err := s.store.ListPieces(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if len(pieces) == 0 {
		return nil, ErrNoPieces
	}

	client := s.clientContext(ctx, clientID)

	run := &RunResult{}
	records := make([]agent.PieceRecord, 0, len(pieces))
	for i := range pieces {
		record, result, err := s.runPieceStages(ctx, &pieces[i], client)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
		run.Pieces = append(run.Pieces, *result)
	}

	series, standalone, err := s.runCompiler(ctx, clientID, records)
	if err != nil {
		return nil, err
	}
	run.Series = series
	run.StandalonePieces = standalone

	plan, err := s.runExecutive(ctx, clientID, records)
	if err != nil {
		return nil, err
	}
	run.Calendar = plan

	s.emit(Event{Type: "run_done", Client: clientID, Detail: fmt.Sprintf("%d pieces", len(pieces))})
	s.log.Info("pipeline run complete",
		"client", scope(clientID),
		"pieces", len(run.Pieces),
		"series", len(run.Series))
	return run, nil
}

// Onboard runs the Strategist on an intake, stores the strategy, and kicks
// off a full pipeline run framed by the new client context.
func (s *Service) Onboard(ctx context.Context, clientID string, intake *models.StrategistIntake) (*OnboardResult, error) {
	s.emit(Event{Type: "stage_start", Stage: schema.RoleStrategist, Client: clientID})
	out, err := s.runner.Run(ctx, schema.RoleStrategist, &agent.Input{Intake: intake})
	if err != nil {
		return nil, err
	}
	s.emit(Event{Type: "stage_done", Stage: schema.RoleStrategist, Client: clientID})

	strategy := &models.ClientStrategy{
		ClientID: scope(clientID),
		Intake:   *intake,
		Output:   *out.Strategy,
	}
	if err := s.store.SaveStrategy(ctx, strategy); err != nil {
		return nil, err
	}
	s.log.Info("strategy stored", "client", strategy.ClientID,
		"platforms", len(out.Strategy.PlatformPriority))

	run, err := s.RunAll(ctx, clientID)
	if err != nil && !errors.Is(err, ErrNoPieces) {
		return nil, err
	}

	return &OnboardResult{Strategy: out.Strategy, Run: run}, nil
}

// clientContext loads the stored strategy's prompt framing, when one exists.
func (s *Service) clientContext(ctx context.Context, clientID string) *models.ClientContext {
	strategy, err := s.store.GetStrategy(ctx, scope(clientID))
	if err != nil {
		if !errors.Is(err, db.ErrNotFound) {
			s.log.Warn("failed to load client strategy", "client", clientID, "error", err)
		}
		return nil
	}
	return strategy.Context()
}

// scopeRecords loads every piece in a client scope along with whatever stage
// outputs are stored for it. Unprocessed pieces keep nil tags and placement.
func (s *Service) scopeRecords(ctx context.Context, clientID string) ([]agent.PieceRecord, error) {
	pieces, err := s.store.ListPieces(ctx, clientID)
	if err != nil {
		return nil, err
	}

	records := make([]agent.PieceRecord, 0, len(pieces))
	for i := range pieces {
		record := agent.PieceRecord{Piece: pieces[i]}

		tags, err := s.store.GetTags(ctx, pieces[i].ID)
		if err == nil {
			record.Tags = tags
		} else if !errors.Is(err, db.ErrNotFound) {
			return nil, err
		}

		placement, err := s.store.GetPlacement(ctx, pieces[i].ID)
		if err == nil {
			record.Placement = placement
		} else if !errors.Is(err, db.ErrNotFound) {
			return nil, err
		}

		records = append(records, record)
	}
	return records, nil
}

// runPieceStages runs Archivist, Placement, and Repurposer on one piece,
// persisting each output as it lands. Successive agent calls are paced by
// the configured stage delay.
func (s *Service) runPieceStages(ctx context.Context, piece *models.Piece, client *models.ClientContext) (*agent.PieceRecord, *PieceResult, error) {
	in := &agent.Input{Piece: piece, Client: client, ReferenceDate: s.now()}

	s.emit(Event{Type: "stage_start", Stage: schema.RoleArchivist, PieceID: piece.ID})
	out, err := s.runner.Run(ctx, schema.RoleArchivist, in)
	if err != nil {
		return nil, nil, err
	}
	tags := out.Tags
	tags.PieceID = piece.ID
	if err := s.store.SaveTags(ctx, tags); err != nil {
		return nil, nil, err
	}
	s.emit(Event{Type: "stage_done", Stage: schema.RoleArchivist, PieceID: piece.ID})

	if err := s.pause(ctx); err != nil {
		return nil, nil, err
	}

	in.Tags = tags
	s.emit(Event{Type: "stage_start", Stage: schema.RolePlacement, PieceID: piece.ID})
	out, err = s.runner.Run(ctx, schema.RolePlacement, in)
	if err != nil {
		return nil, nil, err
	}
	placement := out.Placement
	placement.PieceID = piece.ID
	if err := s.store.SavePlacement(ctx, placement); err != nil {
		return nil, nil, err
	}
	s.emit(Event{Type: "stage_done", Stage: schema.RolePlacement, PieceID: piece.ID})

	if err := s.pause(ctx); err != nil {
		return nil, nil, err
	}

	in.Placement = placement
	s.emit(Event{Type: "stage_start", Stage: schema.RoleRepurposer, PieceID: piece.ID})
	out, err = s.runner.Run(ctx, schema.RoleRepurposer, in)
	if err != nil {
		return nil, nil, err
	}
	items, err := out.Bundle.Items(piece.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("flatten repurpose bundle: %w", err)
	}
	for i := range items {
		items[i].ID = uuid.NewString()
	}
	if err := s.store.ReplaceRepurposeItems(ctx, piece.ID, items); err != nil {
		return nil, nil, err
	}
	s.emit(Event{Type: "stage_done", Stage: schema.RoleRepurposer, PieceID: piece.ID})

	record := &agent.PieceRecord{Piece: *piece, Tags: tags, Placement: placement}
	result := &PieceResult{
		PieceID:   piece.ID,
		Tags:      tags,
		Placement: placement,
		ItemCount: len(items),
	}
	return record, result, nil
}

// runCompiler groups the scope's pieces into series and stores the set.
func (s *Service) runCompiler(ctx context.Context, clientID string, records []agent.PieceRecord) ([]models.ContentSeries, []string, error) {
	s.emit(Event{Type: "stage_start", Stage: schema.RoleCompiler, Client: clientID})
	out, err := s.runner.Run(ctx, schema.RoleCompiler, &agent.Input{Pieces: records})
	if err != nil {
		return nil, nil, err
	}

	series := out.Compilation.ContentSeries
	for i := range series {
		series[i].ID = uuid.NewString()
		series[i].ClientID = scope(clientID)
	}
	if err := s.store.ReplaceSeries(ctx, scope(clientID), series); err != nil {
		return nil, nil, err
	}
	s.emit(Event{Type: "stage_done", Stage: schema.RoleCompiler, Client: clientID})
	return series, out.Compilation.StandalonePieces, nil
}

// runExecutive builds and stores the 4-week calendar for a scope.
func (s *Service) runExecutive(ctx context.Context, clientID string, records []agent.PieceRecord) (*models.CalendarPlan, error) {
	s.emit(Event{Type: "stage_start", Stage: schema.RoleExecutive, Client: clientID})
	out, err := s.runner.Run(ctx, schema.RoleExecutive, &agent.Input{
		Pieces:        records,
		ReferenceDate: s.now(),
	})
	if err != nil {
		return nil, err
	}

	if err := s.store.SaveCalendar(ctx, scope(clientID), out.Calendar); err != nil {
		return nil, err
	}
	s.emit(Event{Type: "stage_done", Stage: schema.RoleExecutive, Client: clientID})
	return out.Calendar, nil
}
