package db

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/jdelaney/contentpipe-go/internal/models"
)

// MemoryStore keeps pipeline state in process memory. It mirrors the Store
// method set and sentinel errors, so callers can swap it in for tests and
// offline runs without a SurrealDB instance.
type MemoryStore struct {
	mu         sync.RWMutex
	pieces     map[string]models.Piece
	pieceOrder []string
	tags       map[string]models.ArchivistTags
	placements map[string]models.Placement
	repurpose  map[string][]models.RepurposeItem
	series     map[string][]models.ContentSeries
	calendars  map[string]models.CalendarPlan
	strategies map[string]models.ClientStrategy
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		pieces:     make(map[string]models.Piece),
		tags:       make(map[string]models.ArchivistTags),
		placements: make(map[string]models.Placement),
		repurpose:  make(map[string][]models.RepurposeItem),
		series:     make(map[string][]models.ContentSeries),
		calendars:  make(map[string]models.CalendarPlan),
		strategies: make(map[string]models.ClientStrategy),
	}
}

// CreatePiece stores a new piece under its pre-assigned ID.
func (m *MemoryStore) CreatePiece(_ context.Context, piece *models.Piece) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.pieces[piece.ID]; ok {
		return fmt.Errorf("piece %s: %w", piece.ID, ErrAlreadyExists)
	}

	stored := *piece
	if stored.Created.IsZero() {
		stored.Created = time.Now().UTC()
	}
	m.pieces[piece.ID] = stored
	m.pieceOrder = append(m.pieceOrder, piece.ID)
	return nil
}

// GetPiece retrieves a piece by ID.
func (m *MemoryStore) GetPiece(_ context.Context, id string) (*models.Piece, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	piece, ok := m.pieces[id]
	if !ok {
		return nil, fmt.Errorf("piece %s: %w", id, ErrNotFound)
	}
	return &piece, nil
}

// ListPieces returns pieces, optionally filtered to a client, oldest first.
func (m *MemoryStore) ListPieces(_ context.Context, clientID string) ([]models.Piece, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	pieces := make([]models.Piece, 0, len(m.pieceOrder))
	for _, id := range m.pieceOrder {
		piece := m.pieces[id]
		if clientID != "" && piece.ClientID != clientID {
			continue
		}
		pieces = append(pieces, piece)
	}
	return pieces, nil
}

// SaveTags upserts the archivist output for a piece.
func (m *MemoryStore) SaveTags(_ context.Context, tags *models.ArchivistTags) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tags[tags.PieceID] = *tags
	return nil
}

// GetTags returns the archivist output for a piece, or ErrNotFound.
func (m *MemoryStore) GetTags(_ context.Context, pieceID string) (*models.ArchivistTags, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	tags, ok := m.tags[pieceID]
	if !ok {
		return nil, fmt.Errorf("tags for piece %s: %w", pieceID, ErrNotFound)
	}
	return &tags, nil
}

// SavePlacement upserts the placement output for a piece.
func (m *MemoryStore) SavePlacement(_ context.Context, placement *models.Placement) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.placements[placement.PieceID] = *placement
	return nil
}

// GetPlacement returns the placement output for a piece, or ErrNotFound.
func (m *MemoryStore) GetPlacement(_ context.Context, pieceID string) (*models.Placement, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	placement, ok := m.placements[pieceID]
	if !ok {
		return nil, fmt.Errorf("placement for piece %s: %w", pieceID, ErrNotFound)
	}
	return &placement, nil
}

// ReplaceRepurposeItems swaps a piece's derivative items wholesale.
func (m *MemoryStore) ReplaceRepurposeItems(_ context.Context, pieceID string, items []models.RepurposeItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := make([]models.RepurposeItem, len(items))
	copy(stored, items)
	m.repurpose[pieceID] = stored
	return nil
}

// ListRepurposeItems returns a piece's derivative items in platform order.
func (m *MemoryStore) ListRepurposeItems(_ context.Context, pieceID string) ([]models.RepurposeItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	items := make([]models.RepurposeItem, len(m.repurpose[pieceID]))
	copy(items, m.repurpose[pieceID])

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Platform != items[j].Platform {
			return items[i].Platform < items[j].Platform
		}
		return items[i].Position < items[j].Position
	})
	return items, nil
}

// ReplaceSeries swaps a client's content series set wholesale.
func (m *MemoryStore) ReplaceSeries(_ context.Context, clientID string, series []models.ContentSeries) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := make([]models.ContentSeries, len(series))
	copy(stored, series)
	for i := range stored {
		stored[i].ClientID = clientID
	}
	m.series[clientID] = stored
	return nil
}

// ListSeries returns a client's content series.
func (m *MemoryStore) ListSeries(_ context.Context, clientID string) ([]models.ContentSeries, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	series := make([]models.ContentSeries, len(m.series[clientID]))
	copy(series, m.series[clientID])

	sort.SliceStable(series, func(i, j int) bool {
		return series[i].Title < series[j].Title
	})
	return series, nil
}

// SaveCalendar replaces a client's calendar.
func (m *MemoryStore) SaveCalendar(_ context.Context, clientID string, plan *models.CalendarPlan) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := *plan
	stored.ClientID = clientID
	m.calendars[clientID] = stored
	return nil
}

// GetCalendar returns a client's calendar, or ErrNotFound.
func (m *MemoryStore) GetCalendar(_ context.Context, clientID string) (*models.CalendarPlan, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	plan, ok := m.calendars[clientID]
	if !ok {
		return nil, fmt.Errorf("calendar for client %s: %w", clientID, ErrNotFound)
	}
	return &plan, nil
}

// SaveStrategy upserts a client's intake and strategist output.
func (m *MemoryStore) SaveStrategy(_ context.Context, strategy *models.ClientStrategy) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.strategies[strategy.ClientID] = *strategy
	return nil
}

// GetStrategy returns a client's stored strategy, or ErrNotFound.
func (m *MemoryStore) GetStrategy(_ context.Context, clientID string) (*models.ClientStrategy, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	strategy, ok := m.strategies[clientID]
	if !ok {
		return nil, fmt.Errorf("strategy for client %s: %w", clientID, ErrNotFound)
	}
	return &strategy, nil
}

// Stats returns stored record counts for a client scope. An empty clientID
// counts everything.
func (m *MemoryStore) Stats(_ context.Context, clientID string) (*models.PipelineStats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stats := &models.PipelineStats{}
	for _, piece := range m.pieces {
		if clientID != "" && piece.ClientID != clientID {
			continue
		}
		stats.Pieces++
	}
	stats.TaggedPieces = len(m.tags)
	stats.PlacedPieces = len(m.placements)
	for _, items := range m.repurpose {
		stats.RepurposeItems += len(items)
	}
	if clientID != "" {
		stats.ContentSeries = len(m.series[clientID])
		if _, ok := m.calendars[clientID]; ok {
			stats.Calendars = 1
		}
	} else {
		for _, series := range m.series {
			stats.ContentSeries += len(series)
		}
		stats.Calendars = len(m.calendars)
	}
	return stats, nil
}
