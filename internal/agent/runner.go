package agent

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/jdelaney/contentpipe-go/internal/config"
	"github.com/jdelaney/contentpipe-go/internal/llm"
	"github.com/jdelaney/contentpipe-go/internal/metrics"
	"github.com/jdelaney/contentpipe-go/internal/schema"
)

// Runner executes one agent role over an input.
type Runner interface {
	Run(ctx context.Context, role schema.Role, in *Input) (*Output, error)
}

// MockRunner serves deterministic outputs without a model. Used when the
// configured provider is "mock".
type MockRunner struct{}

var _ Runner = MockRunner{}

func (MockRunner) Run(_ context.Context, role schema.Role, in *Input) (*Output, error) {
	return Mock(role, in)
}

// SleepFunc blocks for d or until ctx is done. Injected in tests.
type SleepFunc func(ctx context.Context, d time.Duration) error

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

// ModelRunner calls a model in JSON mode, validates the output against the
// role's contract, and retries transient failures with exponential backoff.
// Output that decodes but fails its contract falls back to the deterministic
// mock rather than failing the run.
type ModelRunner struct {
	gen        llm.Generator
	registry   *schema.Registry
	maxRetries int
	sleep      SleepFunc
	log        *slog.Logger
	stats      *metrics.Collector
}

var _ Runner = (*ModelRunner)(nil)

// Option configures a ModelRunner.
type Option func(*ModelRunner)

// WithMaxRetries sets how many retries follow the initial attempt.
func WithMaxRetries(n int) Option {
	return func(r *ModelRunner) { r.maxRetries = n }
}

// WithSleep replaces the backoff sleep. Tests inject a no-op recorder.
func WithSleep(fn SleepFunc) Option {
	return func(r *ModelRunner) { r.sleep = fn }
}

// WithLogger sets the runner's logger.
func WithLogger(log *slog.Logger) Option {
	return func(r *ModelRunner) { r.log = log }
}

// WithMetrics attaches a metrics collector.
func WithMetrics(stats *metrics.Collector) Option {
	return func(r *ModelRunner) { r.stats = stats }
}

// NewModelRunner creates a runner over a generator.
func NewModelRunner(gen llm.Generator, registry *schema.Registry, opts ...Option) *ModelRunner {
	r := &ModelRunner{
		gen:        gen,
		registry:   registry,
		maxRetries: 3,
		sleep:      sleepContext,
		log:        slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes one agent call. Backoff before retry n is 2^n seconds
// (2s, 4s, 8s for the default three retries).
func (r *ModelRunner) Run(ctx context.Context, role schema.Role, in *Input) (*Output, error) {
	start := time.Now()
	system := systemPrompt(role, in)
	user := userPrompt(role, in)

	var lastErr error
	for attempt := 0; attempt <= r.maxRetries; attempt++ {
		if attempt > 0 {
			delay := config.RetryDelay(attempt)
			r.log.Info("retrying agent", "role", role, "attempt", attempt, "delay", delay)
			if r.stats != nil {
				r.stats.RecordRetry(string(role))
			}
			if err := r.sleep(ctx, delay); err != nil {
				return nil, &AgentError{Role: role, Err: err}
			}
		}

		raw, err := r.gen.GenerateJSON(ctx, system, user)
		if err != nil {
			lastErr = err
			if llm.IsTransient(err) && attempt < r.maxRetries {
				r.log.Warn("transient generation failure", "role", role, "error", err)
				continue
			}
			if r.stats != nil {
				r.stats.RecordFailure(string(role))
			}
			return nil, &AgentError{Role: role, Err: err}
		}

		out, decodeErr := r.validateAndDecode(role, in, []byte(raw))
		if decodeErr != nil {
			if r.stats != nil {
				r.stats.RecordFailure(string(role))
			}
			return nil, &AgentError{Role: role, Err: decodeErr}
		}

		if r.stats != nil {
			r.stats.RecordRun(string(role), time.Since(start))
		}
		return out, nil
	}

	if r.stats != nil {
		r.stats.RecordFailure(string(role))
	}
	return nil, &AgentError{Role: role, Err: lastErr}
}

// validateAndDecode checks contract conformance and decodes the typed
// output. Malformed JSON or a contract violation falls back to the mock.
func (r *ModelRunner) validateAndDecode(role schema.Role, in *Input, raw []byte) (*Output, error) {
	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		r.log.Warn("model returned malformed JSON, falling back to mock", "role", role, "error", err)
		return r.fallback(role, in)
	}

	if err := r.registry.Validate(role, decoded); err != nil {
		r.log.Warn("model output failed contract, falling back to mock", "role", role, "error", err)
		return r.fallback(role, in)
	}

	return decodeOutput(role, raw)
}

func (r *ModelRunner) fallback(role schema.Role, in *Input) (*Output, error) {
	if r.stats != nil {
		r.stats.RecordFallback(string(role))
	}
	return Mock(role, in)
}
