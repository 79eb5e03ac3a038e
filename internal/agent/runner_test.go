package agent

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdelaney/contentpipe-go/internal/metrics"
	"github.com/jdelaney/contentpipe-go/internal/models"
	"github.com/jdelaney/contentpipe-go/internal/schema"
)

// scriptedGen returns queued responses or errors in order.
type scriptedGen struct {
	calls     int
	responses []string
	errs      []error
}

func (g *scriptedGen) GenerateJSON(_ context.Context, _, _ string) (string, error) {
	i := g.calls
	g.calls++
	if i < len(g.errs) && g.errs[i] != nil {
		return "", g.errs[i]
	}
	if i < len(g.responses) {
		return g.responses[i], nil
	}
	return "", errors.New("no scripted response")
}

func (g *scriptedGen) Name() string { return "scripted" }

func validArchivistJSON(t *testing.T) string {
	t.Helper()
	raw, err := json.Marshal(map[string]any{
		"themes":       []string{"pricing", "positioning"},
		"voice_tags":   []string{"direct"},
		"content_type": "WRITTEN_CONTENT",
		"status":       "READY",
		"quality_band": "A",
		"key_insights": []string{"charge more"},
		"notes":        "solid",
	})
	require.NoError(t, err)
	return string(raw)
}

func noSleep(recorded *[]time.Duration) SleepFunc {
	return func(_ context.Context, d time.Duration) error {
		*recorded = append(*recorded, d)
		return nil
	}
}

func archivistInput() *Input {
	return &Input{Piece: &models.Piece{ID: "p1", Title: "Essay", Body: "text", WordCount: 900}}
}

func TestRunnerRetriesTransientThenSucceeds(t *testing.T) {
	rateLimited := errors.New("API returned 429 Too Many Requests")
	gen := &scriptedGen{
		errs:      []error{rateLimited, rateLimited, rateLimited, nil},
		responses: []string{"", "", "", validArchivistJSON(t)},
	}

	var delays []time.Duration
	stats := metrics.NewCollector()
	runner := NewModelRunner(gen, schema.NewRegistry(),
		WithSleep(noSleep(&delays)),
		WithMetrics(stats),
	)

	out, err := runner.Run(context.Background(), schema.RoleArchivist, archivistInput())
	require.NoError(t, err)
	require.NotNil(t, out.Tags)
	assert.Equal(t, models.BandA, out.Tags.QualityBand)

	assert.Equal(t, 4, gen.calls)
	assert.Equal(t, []time.Duration{2 * time.Second, 4 * time.Second, 8 * time.Second}, delays)
	assert.Equal(t, int64(3), stats.Snapshot().Agents["archivist"].Retries)
}

func TestRunnerExhaustsRetries(t *testing.T) {
	rateLimited := errors.New("API returned 429 Too Many Requests")
	gen := &scriptedGen{errs: []error{rateLimited, rateLimited, rateLimited, rateLimited}}

	var delays []time.Duration
	runner := NewModelRunner(gen, schema.NewRegistry(), WithSleep(noSleep(&delays)))

	_, err := runner.Run(context.Background(), schema.RoleArchivist, archivistInput())
	require.Error(t, err)

	var agentErr *AgentError
	require.ErrorAs(t, err, &agentErr)
	assert.Equal(t, schema.RoleArchivist, agentErr.Role)
	assert.Equal(t, 4, gen.calls, "initial attempt plus three retries")
}

func TestRunnerFatalErrorDoesNotRetry(t *testing.T) {
	gen := &scriptedGen{errs: []error{errors.New("invalid api key")}}

	var delays []time.Duration
	runner := NewModelRunner(gen, schema.NewRegistry(), WithSleep(noSleep(&delays)))

	_, err := runner.Run(context.Background(), schema.RoleArchivist, archivistInput())
	require.Error(t, err)
	assert.Equal(t, 1, gen.calls)
	assert.Empty(t, delays)
}

func TestRunnerFallsBackOnContractViolation(t *testing.T) {
	// quality_band D is outside the contract
	bad := `{"themes":["a","b"],"voice_tags":["x"],"content_type":"WRITTEN_CONTENT",` +
		`"status":"READY","quality_band":"D","key_insights":["i"],"notes":"n"}`
	gen := &scriptedGen{responses: []string{bad}}

	stats := metrics.NewCollector()
	runner := NewModelRunner(gen, schema.NewRegistry(), WithMetrics(stats))

	out, err := runner.Run(context.Background(), schema.RoleArchivist, archivistInput())
	require.NoError(t, err)
	require.NotNil(t, out.Tags)

	// the fallback applied the word-count heuristics, not the model output
	assert.Equal(t, models.BandB, out.Tags.QualityBand)
	assert.Equal(t, int64(1), stats.Snapshot().Agents["archivist"].Fallbacks)
}

func TestRunnerFallsBackOnMalformedJSON(t *testing.T) {
	gen := &scriptedGen{responses: []string{"here is your JSON: {broken"}}

	runner := NewModelRunner(gen, schema.NewRegistry())

	out, err := runner.Run(context.Background(), schema.RoleArchivist, archivistInput())
	require.NoError(t, err)
	require.NotNil(t, out.Tags)
	assert.Equal(t, models.StatusReady, out.Tags.Status)
}

func TestRunnerSleepHonorsContext(t *testing.T) {
	rateLimited := errors.New("429")
	gen := &scriptedGen{errs: []error{rateLimited, rateLimited}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner := NewModelRunner(gen, schema.NewRegistry()) // real sleep, canceled ctx

	_, err := runner.Run(ctx, schema.RoleArchivist, archivistInput())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, gen.calls)
}

func TestMockRunner(t *testing.T) {
	out, err := MockRunner{}.Run(context.Background(), schema.RolePlacement, archivistInput())
	require.NoError(t, err)
	require.NotNil(t, out.Placement)
	assert.Equal(t, models.PlatformLinkedIn, out.Placement.PrimaryPlatform)
}
