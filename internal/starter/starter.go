package starter

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jdelaney/contentpipe-go/internal/agent"
	"github.com/jdelaney/contentpipe-go/internal/models"
	"github.com/jdelaney/contentpipe-go/internal/schema"
)

const (
	frequency     = "Daily on weekdays (Mon-Fri)"
	strategyNotes = "These 30 LinkedIn posts were generated from your source content. " +
		"Each post is designed to stop the scroll, deliver value, and drive engagement. " +
		"Post types are rotated to keep your feed fresh. Best engagement days for LinkedIn " +
		"are Tuesday-Thursday. Aim to respond to comments within the first hour of posting."
)

var (
	bestDays          = []string{"Tuesday", "Wednesday", "Thursday"}
	bestTimesWithZone = []string{"9:00 AM EST", "10:00 AM EST", "12:00 PM EST"}
)

// Request describes one content-starter order.
type Request struct {
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	Niche         string `json:"niche,omitempty"`
	Audience      string `json:"audience,omitempty"`
	RawContent    string `json:"raw_content"`
}

// Service generates starter deliverables through an agent runner.
type Service struct {
	runner agent.Runner
	log    *slog.Logger
	now    func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the service logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) { s.log = log }
}

// WithClock replaces the clock used to anchor the posting schedule.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a starter service.
func NewService(runner agent.Runner, opts ...Option) *Service {
	s := &Service{
		runner: runner,
		log:    slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Generate produces the full 30-post deliverable. Posts are generated in
// batches of ten; scheduling fields are stamped from the computed slots so
// the calendar stays consistent regardless of what the model returns.
func (s *Service) Generate(ctx context.Context, req *Request) (*models.StarterOutput, error) {
	slots := Schedule(s.now())

	posts := make([]models.StarterPost, 0, len(slots))
	for batch := 0; batch*batchSize < len(slots); batch++ {
		start := batch * batchSize
		end := start + batchSize
		if end > len(slots) {
			end = len(slots)
		}
		batchSlots := slots[start:end]

		out, err := s.runner.Run(ctx, schema.RoleStarter, &agent.Input{
			Starter: &agent.StarterRequest{
				CustomerName: req.CustomerName,
				Niche:        req.Niche,
				Audience:     req.Audience,
				RawContent:   req.RawContent,
				Slots:        batchSlots,
				Batch:        batch,
			},
		})
		if err != nil {
			return nil, fmt.Errorf("generate batch %d: %w", batch, err)
		}

		batchPosts := out.StarterPosts
		if len(batchPosts) > len(batchSlots) {
			batchPosts = batchPosts[:len(batchSlots)]
		}
		for i := range batchPosts {
			slot := batchSlots[i]
			batchPosts[i].Day = slot.Day
			batchPosts[i].Date = slot.Date
			batchPosts[i].DayOfWeek = slot.DayOfWeek
			batchPosts[i].PostTime = slot.Time
		}
		posts = append(posts, batchPosts...)

		s.log.Info("starter batch generated", "batch", batch, "posts", len(batchPosts))
	}

	return &models.StarterOutput{
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		GeneratedAt:   s.now().UTC().Format(time.RFC3339),
		Posts:         posts,
		PostingSchedule: models.StarterSchedule{
			Frequency: frequency,
			BestDays:  bestDays,
			BestTimes: bestTimesWithZone,
		},
		StrategyNotes: strategyNotes,
	}, nil
}
