package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/jdelaney/contentpipe-go/internal/agent"
	"github.com/jdelaney/contentpipe-go/internal/db"
	"github.com/jdelaney/contentpipe-go/internal/models"
	"github.com/jdelaney/contentpipe-go/internal/schema"
)

// recordingRunner delegates to the deterministic mock while capturing the
// order of roles and the inputs they received.
type recordingRunner struct {
	roles  []schema.Role
	inputs []*agent.Input
}

func (r *recordingRunner) Run(_ context.Context, role schema.Role, in *agent.Input) (*agent.Output, error) {
	r.roles = append(r.roles, role)
	r.inputs = append(r.inputs, in)
	return agent.Mock(role, in)
}

// refMonday is a fixed Monday so calendar output is reproducible.
var refMonday = time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)

func newTestService(runner agent.Runner) (*Service, *db.MemoryStore, *[]Event) {
	store := db.NewMemoryStore()
	var events []Event
	svc := NewService(store, runner,
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithClock(func() time.Time { return refMonday }),
		WithEvents(func(e Event) { events = append(events, e) }),
		WithStageDelay(0),
	)
	return svc, store, &events
}

func seedPiece(t *testing.T, store *db.MemoryStore, id, clientID, title string, words int) {
	t.Helper()
	body := strings.Repeat("word ", words)
	if err := store.CreatePiece(context.Background(), &models.Piece{
		ID: id, ClientID: clientID, Title: title, Body: body, WordCount: words,
	}); err != nil {
		t.Fatalf("seed piece %s: %v", id, err)
	}
}

func TestRunPieceStageOrder(t *testing.T) {
	ctx := context.Background()
	runner := &recordingRunner{}
	svc, store, _ := newTestService(runner)
	seedPiece(t, store, "p1", "client-a", "Pricing Deep Dive", 900)

	result, plan, err := svc.RunPiece(ctx, "p1", nil)
	if err != nil {
		t.Fatalf("RunPiece failed: %v", err)
	}

	wantOrder := []schema.Role{
		schema.RoleArchivist, schema.RolePlacement, schema.RoleRepurposer, schema.RoleExecutive,
	}
	if len(runner.roles) != len(wantOrder) {
		t.Fatalf("Expected %d stages, got %d: %v", len(wantOrder), len(runner.roles), runner.roles)
	}
	for i, want := range wantOrder {
		if runner.roles[i] != want {
			t.Errorf("Stage %d: expected %s, got %s", i, want, runner.roles[i])
		}
	}

	// Later stages see earlier outputs
	if runner.inputs[1].Tags == nil {
		t.Error("Placement input should carry archivist tags")
	}
	if runner.inputs[2].Placement == nil {
		t.Error("Repurposer input should carry the placement")
	}

	if result.Tags.PieceID != "p1" {
		t.Errorf("Tags should be keyed to the piece, got %q", result.Tags.PieceID)
	}
	if result.ItemCount == 0 {
		t.Error("Expected repurpose items from the mock bundle")
	}
	if plan.CalendarSummary.TotalPosts != 52 {
		t.Errorf("Expected 52 total calendar posts, got %d", plan.CalendarSummary.TotalPosts)
	}

	// Everything persisted
	if _, err := store.GetTags(ctx, "p1"); err != nil {
		t.Errorf("Tags should be stored: %v", err)
	}
	if _, err := store.GetPlacement(ctx, "p1"); err != nil {
		t.Errorf("Placement should be stored: %v", err)
	}
	items, _ := store.ListRepurposeItems(ctx, "p1")
	if len(items) != result.ItemCount {
		t.Errorf("Expected %d stored items, got %d", result.ItemCount, len(items))
	}
	for _, item := range items {
		if item.ID == "" {
			t.Error("Stored items should have generated IDs")
		}
	}
	if _, err := store.GetCalendar(ctx, "client-a"); err != nil {
		t.Errorf("Calendar should be stored under the piece's client: %v", err)
	}
}

func TestRunPieceRebuildsCalendarFromScope(t *testing.T) {
	ctx := context.Background()
	runner := &recordingRunner{}
	svc, store, _ := newTestService(runner)
	seedPiece(t, store, "p1", "client-a", "First Piece", 900)
	seedPiece(t, store, "p2", "client-a", "Second Piece", 900)

	if _, err := svc.RunAll(ctx, "client-a"); err != nil {
		t.Fatalf("RunAll failed: %v", err)
	}

	_, plan, err := svc.RunPiece(ctx, "p2", nil)
	if err != nil {
		t.Fatalf("RunPiece failed: %v", err)
	}

	// The executive re-run sees the whole scope with its stored outputs
	last := runner.inputs[len(runner.inputs)-1]
	if len(last.Pieces) != 2 {
		t.Fatalf("Executive should see every piece in the scope, got %d", len(last.Pieces))
	}
	for _, rec := range last.Pieces {
		if rec.Tags == nil || rec.Placement == nil {
			t.Errorf("Record %s should carry stored tags and placement", rec.Piece.ID)
		}
	}

	// Slots keep pointing at the scope's first piece, not the re-run one
	for _, week := range plan.WeeklyCalendar {
		for _, post := range week.Posts {
			if post.SourcePieceID != "p1" {
				t.Fatalf("Calendar slot should reference p1, got %q", post.SourcePieceID)
			}
		}
	}
}

func TestRunPieceFallsBackToStoredStrategy(t *testing.T) {
	ctx := context.Background()
	runner := &recordingRunner{}
	svc, store, _ := newTestService(runner)

	intake := &models.StrategistIntake{
		CoachingNiche:  "leadership coaching",
		TargetAudience: "new engineering managers",
	}
	if _, err := svc.Onboard(ctx, "client-a", intake); err != nil {
		t.Fatalf("Onboard failed: %v", err)
	}

	seedPiece(t, store, "p1", "client-a", "Later Piece", 900)
	runner.roles, runner.inputs = nil, nil

	if _, _, err := svc.RunPiece(ctx, "p1", nil); err != nil {
		t.Fatalf("RunPiece failed: %v", err)
	}

	if runner.inputs[0].Client == nil {
		t.Fatal("Archivist input should carry the stored client context")
	}
	if runner.inputs[0].Client.Niche != intake.CoachingNiche {
		t.Errorf("Client context niche mismatch: %q", runner.inputs[0].Client.Niche)
	}
}

func TestRunPiecePacesStages(t *testing.T) {
	ctx := context.Background()
	store := db.NewMemoryStore()
	var delays []time.Duration
	svc := NewService(store, agent.MockRunner{},
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithClock(func() time.Time { return refMonday }),
		WithSleep(func(_ context.Context, d time.Duration) error {
			delays = append(delays, d)
			return nil
		}),
	)
	seedPiece(t, store, "p1", "client-a", "Paced Piece", 900)

	if _, _, err := svc.RunPiece(ctx, "p1", nil); err != nil {
		t.Fatalf("RunPiece failed: %v", err)
	}

	// One pause between archivist and placement, one before the repurposer
	if len(delays) != 2 {
		t.Fatalf("Expected 2 pauses, got %d: %v", len(delays), delays)
	}
	for i, d := range delays {
		if d != time.Second {
			t.Errorf("Pause %d: expected 1s, got %v", i, d)
		}
	}
}

func TestStageDelayZeroSkipsSleep(t *testing.T) {
	store := db.NewMemoryStore()
	var slept bool
	svc := NewService(store, agent.MockRunner{},
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithClock(func() time.Time { return refMonday }),
		WithStageDelay(0),
		WithSleep(func(context.Context, time.Duration) error {
			slept = true
			return nil
		}),
	)
	seedPiece(t, store, "p1", "client-a", "Fast Piece", 900)

	if _, _, err := svc.RunPiece(context.Background(), "p1", nil); err != nil {
		t.Fatalf("RunPiece failed: %v", err)
	}
	if slept {
		t.Error("Zero stage delay should never invoke the sleep")
	}
}

func TestRunPieceMissingPiece(t *testing.T) {
	svc, _, _ := newTestService(&recordingRunner{})

	_, _, err := svc.RunPiece(context.Background(), "missing", nil)
	if !errors.Is(err, db.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestRunAllEmptyLibrary(t *testing.T) {
	svc, _, _ := newTestService(&recordingRunner{})

	_, err := svc.RunAll(context.Background(), "client-a")
	if !errors.Is(err, ErrNoPieces) {
		t.Errorf("Expected ErrNoPieces, got %v", err)
	}
}

func TestRunAllCompilesAndSchedules(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newTestService(agent.MockRunner{})
	for i, id := range []string{"p1", "p2", "p3", "p4", "p5"} {
		seedPiece(t, store, id, "client-a", "Piece "+id, 600+i*400)
	}

	run, err := svc.RunAll(ctx, "client-a")
	if err != nil {
		t.Fatalf("RunAll failed: %v", err)
	}

	if len(run.Pieces) != 5 {
		t.Errorf("Expected 5 piece results, got %d", len(run.Pieces))
	}
	// Mock compiler groups the first three pieces into one series
	if len(run.Series) != 1 {
		t.Fatalf("Expected 1 series, got %d", len(run.Series))
	}
	if len(run.Series[0].IncludedPieceIDs) != 3 {
		t.Errorf("Expected 3 pieces in the series, got %d", len(run.Series[0].IncludedPieceIDs))
	}
	if len(run.StandalonePieces) != 2 {
		t.Errorf("Expected 2 standalone pieces, got %d", len(run.StandalonePieces))
	}
	if run.Calendar == nil || len(run.Calendar.WeeklyCalendar) != 4 {
		t.Fatal("Expected a 4-week calendar")
	}
	if run.Calendar.WeeklyCalendar[0].DateRange != "Jan 5 - Jan 11" {
		t.Errorf("Calendar should start at the injected clock, got %q", run.Calendar.WeeklyCalendar[0].DateRange)
	}

	stored, err := store.ListSeries(ctx, "client-a")
	if err != nil || len(stored) != 1 {
		t.Errorf("Series should be stored for the client: %v (%d)", err, len(stored))
	}
	if stored[0].ID == "" {
		t.Error("Stored series should have a generated ID")
	}
}

func TestRunAllReplacementIsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newTestService(agent.MockRunner{})
	seedPiece(t, store, "p1", "client-a", "Solo Piece", 900)
	seedPiece(t, store, "p2", "client-a", "Second Piece", 900)
	seedPiece(t, store, "p3", "client-a", "Third Piece", 900)

	if _, err := svc.RunAll(ctx, "client-a"); err != nil {
		t.Fatalf("First RunAll failed: %v", err)
	}
	firstItems, _ := store.ListRepurposeItems(ctx, "p1")
	firstSeries, _ := store.ListSeries(ctx, "client-a")

	if _, err := svc.RunAll(ctx, "client-a"); err != nil {
		t.Fatalf("Second RunAll failed: %v", err)
	}
	secondItems, _ := store.ListRepurposeItems(ctx, "p1")
	secondSeries, _ := store.ListSeries(ctx, "client-a")

	if len(firstItems) != len(secondItems) {
		t.Errorf("Re-run should replace items, not accumulate: %d vs %d", len(firstItems), len(secondItems))
	}
	if len(firstSeries) != len(secondSeries) {
		t.Errorf("Re-run should replace series, not accumulate: %d vs %d", len(firstSeries), len(secondSeries))
	}

	stats, _ := store.Stats(ctx, "client-a")
	if stats.Calendars != 1 {
		t.Errorf("Re-runs should keep a single calendar, got %d", stats.Calendars)
	}
}

func TestOnboardStoresStrategyAndThreadsContext(t *testing.T) {
	ctx := context.Background()
	runner := &recordingRunner{}
	svc, store, _ := newTestService(runner)
	seedPiece(t, store, "p1", "", "Intro Piece", 900)

	intake := &models.StrategistIntake{
		CoachingNiche:          "executive coaching for tech leaders",
		TargetAudience:         "VPs of engineering at mid-size companies",
		CurrentRevenue:         models.Revenue100K500K,
		CurrentPlatforms:       []string{"linkedin"},
		ContentTimeWeeklyHours: 4,
		PrimaryGoal:            models.GoalGetClients,
	}

	result, err := svc.Onboard(ctx, "", intake)
	if err != nil {
		t.Fatalf("Onboard failed: %v", err)
	}

	if runner.roles[0] != schema.RoleStrategist {
		t.Errorf("Strategist should run first, got %s", runner.roles[0])
	}
	if len(result.Strategy.PlatformPriority) == 0 {
		t.Error("Strategy should rank platforms")
	}
	if result.Run == nil || len(result.Run.Pieces) != 1 {
		t.Fatal("Onboarding should run the pipeline over existing pieces")
	}

	stored, err := store.GetStrategy(ctx, DefaultScope)
	if err != nil {
		t.Fatalf("Strategy should be stored: %v", err)
	}
	if stored.Intake.CoachingNiche != intake.CoachingNiche {
		t.Error("Stored intake mismatch")
	}

	// The archivist run after onboarding should see the client context
	// derived from the fresh strategy
	for i, role := range runner.roles {
		if role == schema.RoleArchivist {
			if runner.inputs[i].Client == nil {
				t.Error("Archivist input should carry the onboarded client context")
			} else if runner.inputs[i].Client.Niche != intake.CoachingNiche {
				t.Errorf("Client context niche mismatch: %q", runner.inputs[i].Client.Niche)
			}
			break
		}
	}
}

func TestOnboardWithoutPieces(t *testing.T) {
	svc, store, _ := newTestService(agent.MockRunner{})

	intake := &models.StrategistIntake{
		CoachingNiche:  "career coaching",
		TargetAudience: "mid-career professionals",
	}
	result, err := svc.Onboard(context.Background(), "client-new", intake)
	if err != nil {
		t.Fatalf("Onboard with empty library should succeed: %v", err)
	}
	if result.Run != nil {
		t.Error("Run should be nil when there are no pieces yet")
	}

	if _, err := store.GetStrategy(context.Background(), "client-new"); err != nil {
		t.Errorf("Strategy should still be stored: %v", err)
	}
}

func TestRunAllEmitsStageEvents(t *testing.T) {
	ctx := context.Background()
	svc, store, events := newTestService(agent.MockRunner{})
	seedPiece(t, store, "p1", "client-a", "Only Piece", 900)
	seedPiece(t, store, "p2", "client-a", "Other Piece", 900)

	if _, err := svc.RunAll(ctx, "client-a"); err != nil {
		t.Fatalf("RunAll failed: %v", err)
	}

	var starts, dones int
	var sawRunDone bool
	for _, e := range *events {
		switch e.Type {
		case "stage_start":
			starts++
		case "stage_done":
			dones++
		case "run_done":
			sawRunDone = true
		}
	}
	// 3 per-piece stages x 2 pieces, plus compiler and executive
	if starts != 8 || dones != 8 {
		t.Errorf("Expected 8 start/done pairs, got %d/%d", starts, dones)
	}
	if !sawRunDone {
		t.Error("Expected a run_done event")
	}
}
