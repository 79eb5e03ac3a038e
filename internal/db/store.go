package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/surrealdb/surrealdb.go"

	"github.com/jdelaney/contentpipe-go/internal/models"
)

// Store persists pipeline state in SurrealDB. Per-piece stage outputs are
// keyed by piece ID so re-runs upsert; collection outputs (repurpose items,
// series, calendars) are replaced wholesale inside a transaction.
type Store struct {
	client *Client
}

// NewStore wraps a connected client.
func NewStore(client *Client) *Store {
	return &Store{client: client}
}

// first unwraps the leading result set of a query response.
func first[T any](results *[]surrealdb.QueryResult[[]T]) []T {
	if results == nil || len(*results) == 0 {
		return nil
	}
	return (*results)[0].Result
}

type pieceRow struct {
	ID        string    `json:"id"`
	ClientID  string    `json:"client_id,omitempty"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Source    string    `json:"source,omitempty"`
	WordCount int       `json:"word_count"`
	Created   time.Time `json:"created,omitempty"`
}

func (r pieceRow) model() models.Piece {
	return models.Piece{
		ID:        r.ID,
		ClientID:  r.ClientID,
		Title:     r.Title,
		Body:      r.Body,
		Source:    r.Source,
		WordCount: r.WordCount,
		Created:   r.Created,
	}
}

// CreatePiece stores a new piece under its pre-assigned ID.
func (s *Store) CreatePiece(ctx context.Context, piece *models.Piece) error {
	_, err := surrealdb.Query[any](ctx, s.client.db, `
		CREATE type::thing("piece", $id) CONTENT {
			client_id: $client_id,
			title: $title,
			body: $body,
			source: $source,
			word_count: $word_count
		}
	`, map[string]any{
		"id":         piece.ID,
		"client_id":  piece.ClientID,
		"title":      piece.Title,
		"body":       piece.Body,
		"source":     piece.Source,
		"word_count": piece.WordCount,
	})
	if err != nil {
		return fmt.Errorf("create piece: %w", wrapQueryError(err))
	}
	return nil
}

// GetPiece retrieves a piece by ID.
func (s *Store) GetPiece(ctx context.Context, id string) (*models.Piece, error) {
	results, err := surrealdb.Query[[]pieceRow](ctx, s.client.db, `
		SELECT record::id(id) AS id, client_id, title, body, source, word_count, created
		FROM type::record("piece", $id)
	`, map[string]any{"id": id})
	if err != nil {
		return nil, fmt.Errorf("get piece: %w", wrapQueryError(err))
	}

	rows := first(results)
	if len(rows) == 0 {
		return nil, fmt.Errorf("piece %s: %w", id, ErrNotFound)
	}
	piece := rows[0].model()
	return &piece, nil
}

// ListPieces returns pieces, optionally filtered to a client, oldest first.
func (s *Store) ListPieces(ctx context.Context, clientID string) ([]models.Piece, error) {
	clause := ""
	vars := map[string]any{}
	if clientID != "" {
		clause = "WHERE client_id = $client_id"
		vars["client_id"] = clientID
	}

	sql := fmt.Sprintf(`
		SELECT record::id(id) AS id, client_id, title, body, source, word_count, created
		FROM piece %s ORDER BY created ASC
	`, clause)

	results, err := surrealdb.Query[[]pieceRow](ctx, s.client.db, sql, vars)
	if err != nil {
		return nil, fmt.Errorf("list pieces: %w", wrapQueryError(err))
	}

	rows := first(results)
	pieces := make([]models.Piece, 0, len(rows))
	for _, row := range rows {
		pieces = append(pieces, row.model())
	}
	return pieces, nil
}

// SaveTags upserts the archivist output for a piece.
func (s *Store) SaveTags(ctx context.Context, tags *models.ArchivistTags) error {
	_, err := surrealdb.Query[any](ctx, s.client.db, `
		UPSERT type::thing("archivist_tags", $piece_id) CONTENT {
			piece_id: $piece_id,
			themes: $themes,
			voice_tags: $voice_tags,
			content_type: $content_type,
			status: $status,
			quality_band: $quality_band,
			key_insights: $key_insights,
			notes: $notes,
			updated: time::now()
		}
	`, map[string]any{
		"piece_id":     tags.PieceID,
		"themes":       tags.Themes,
		"voice_tags":   tags.VoiceTags,
		"content_type": string(tags.ContentType),
		"status":       string(tags.Status),
		"quality_band": string(tags.QualityBand),
		"key_insights": tags.KeyInsights,
		"notes":        tags.Notes,
	})
	if err != nil {
		return fmt.Errorf("save tags: %w", wrapQueryError(err))
	}
	return nil
}

// GetTags returns the archivist output for a piece, or ErrNotFound.
func (s *Store) GetTags(ctx context.Context, pieceID string) (*models.ArchivistTags, error) {
	results, err := surrealdb.Query[[]models.ArchivistTags](ctx, s.client.db, `
		SELECT piece_id, themes, voice_tags, content_type, status, quality_band, key_insights, notes
		FROM type::record("archivist_tags", $piece_id)
	`, map[string]any{"piece_id": pieceID})
	if err != nil {
		return nil, fmt.Errorf("get tags: %w", wrapQueryError(err))
	}

	rows := first(results)
	if len(rows) == 0 {
		return nil, fmt.Errorf("tags for piece %s: %w", pieceID, ErrNotFound)
	}
	return &rows[0], nil
}

// SavePlacement upserts the placement output for a piece.
func (s *Store) SavePlacement(ctx context.Context, placement *models.Placement) error {
	secondary := make([]string, 0, len(placement.SecondaryPlatforms))
	for _, p := range placement.SecondaryPlatforms {
		secondary = append(secondary, string(p))
	}

	_, err := surrealdb.Query[any](ctx, s.client.db, `
		UPSERT type::thing("placement", $piece_id) CONTENT {
			piece_id: $piece_id,
			primary_platform: $primary_platform,
			secondary_platforms: $secondary_platforms,
			content_potential: $content_potential,
			recommended_formats: $recommended_formats,
			reasoning: $reasoning,
			updated: time::now()
		}
	`, map[string]any{
		"piece_id":            placement.PieceID,
		"primary_platform":    string(placement.PrimaryPlatform),
		"secondary_platforms": secondary,
		"content_potential":   string(placement.ContentPotential),
		"recommended_formats": placement.RecommendedFormats,
		"reasoning":           placement.Reasoning,
	})
	if err != nil {
		return fmt.Errorf("save placement: %w", wrapQueryError(err))
	}
	return nil
}

// GetPlacement returns the placement output for a piece, or ErrNotFound.
func (s *Store) GetPlacement(ctx context.Context, pieceID string) (*models.Placement, error) {
	results, err := surrealdb.Query[[]models.Placement](ctx, s.client.db, `
		SELECT piece_id, primary_platform, secondary_platforms, content_potential, recommended_formats, reasoning
		FROM type::record("placement", $piece_id)
	`, map[string]any{"piece_id": pieceID})
	if err != nil {
		return nil, fmt.Errorf("get placement: %w", wrapQueryError(err))
	}

	rows := first(results)
	if len(rows) == 0 {
		return nil, fmt.Errorf("placement for piece %s: %w", pieceID, ErrNotFound)
	}
	return &rows[0], nil
}

type repurposeRow struct {
	ID       string `json:"id"`
	PieceID  string `json:"piece_id"`
	Platform string `json:"platform"`
	Format   string `json:"format"`
	Position int    `json:"position"`
	Content  string `json:"content"`
}

// ReplaceRepurposeItems atomically swaps a piece's derivative items: the old
// set is deleted and the new set inserted in one transaction, so readers
// never observe a partial mix.
func (s *Store) ReplaceRepurposeItems(ctx context.Context, pieceID string, items []models.RepurposeItem) error {
	rows := make([]map[string]any, 0, len(items))
	for _, item := range items {
		rows = append(rows, map[string]any{
			"id":       item.ID,
			"piece_id": item.PieceID,
			"platform": string(item.Platform),
			"format":   item.Format,
			"position": item.Position,
			"content":  string(item.Content),
		})
	}

	_, err := surrealdb.Query[any](ctx, s.client.db, `
		BEGIN TRANSACTION;
		DELETE repurpose_item WHERE piece_id = $piece_id;
		FOR $item IN $items {
			CREATE type::thing("repurpose_item", $item.id) CONTENT {
				piece_id: $item.piece_id,
				platform: $item.platform,
				format: $item.format,
				position: $item.position,
				content: $item.content
			};
		};
		COMMIT TRANSACTION;
	`, map[string]any{"piece_id": pieceID, "items": rows})
	if err != nil {
		return fmt.Errorf("replace repurpose items: %w", wrapQueryError(err))
	}
	return nil
}

// ListRepurposeItems returns a piece's derivative items in platform order.
func (s *Store) ListRepurposeItems(ctx context.Context, pieceID string) ([]models.RepurposeItem, error) {
	results, err := surrealdb.Query[[]repurposeRow](ctx, s.client.db, `
		SELECT record::id(id) AS id, piece_id, platform, format, position, content
		FROM repurpose_item WHERE piece_id = $piece_id
		ORDER BY platform ASC, position ASC
	`, map[string]any{"piece_id": pieceID})
	if err != nil {
		return nil, fmt.Errorf("list repurpose items: %w", wrapQueryError(err))
	}

	rows := first(results)
	items := make([]models.RepurposeItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, models.RepurposeItem{
			ID:       row.ID,
			PieceID:  row.PieceID,
			Platform: models.Platform(row.Platform),
			Format:   row.Format,
			Position: row.Position,
			Content:  json.RawMessage(row.Content),
		})
	}
	return items, nil
}

// ReplaceSeries atomically swaps a client's content series set.
func (s *Store) ReplaceSeries(ctx context.Context, clientID string, series []models.ContentSeries) error {
	rows := make([]map[string]any, 0, len(series))
	for _, sr := range series {
		rows = append(rows, map[string]any{
			"id":                   sr.ID,
			"client_id":            clientID,
			"title":                sr.Title,
			"description":          sr.Description,
			"theme":                sr.Theme,
			"included_piece_ids":   sr.IncludedPieceIDs,
			"recommended_sequence": sr.RecommendedSequence,
			"series_type":          string(sr.SeriesType),
			"estimated_pieces":     sr.EstimatedPieces,
			"gaps":                 sr.Gaps,
		})
	}

	_, err := surrealdb.Query[any](ctx, s.client.db, `
		BEGIN TRANSACTION;
		DELETE content_series WHERE client_id = $client_id;
		FOR $row IN $rows {
			CREATE type::thing("content_series", $row.id) CONTENT {
				client_id: $row.client_id,
				title: $row.title,
				description: $row.description,
				theme: $row.theme,
				included_piece_ids: $row.included_piece_ids,
				recommended_sequence: $row.recommended_sequence,
				series_type: $row.series_type,
				estimated_pieces: $row.estimated_pieces,
				gaps: $row.gaps
			};
		};
		COMMIT TRANSACTION;
	`, map[string]any{"client_id": clientID, "rows": rows})
	if err != nil {
		return fmt.Errorf("replace series: %w", wrapQueryError(err))
	}
	return nil
}

type seriesRow struct {
	ID                  string   `json:"id"`
	ClientID            string   `json:"client_id"`
	Title               string   `json:"title"`
	Description         string   `json:"description"`
	Theme               string   `json:"theme"`
	IncludedPieceIDs    []string `json:"included_piece_ids"`
	RecommendedSequence []string `json:"recommended_sequence"`
	SeriesType          string   `json:"series_type"`
	EstimatedPieces     int      `json:"estimated_pieces"`
	Gaps                []string `json:"gaps"`
}

// ListSeries returns a client's content series.
func (s *Store) ListSeries(ctx context.Context, clientID string) ([]models.ContentSeries, error) {
	results, err := surrealdb.Query[[]seriesRow](ctx, s.client.db, `
		SELECT record::id(id) AS id, client_id, title, description, theme,
			included_piece_ids, recommended_sequence, series_type, estimated_pieces, gaps
		FROM content_series WHERE client_id = $client_id ORDER BY title ASC
	`, map[string]any{"client_id": clientID})
	if err != nil {
		return nil, fmt.Errorf("list series: %w", wrapQueryError(err))
	}

	rows := first(results)
	series := make([]models.ContentSeries, 0, len(rows))
	for _, row := range rows {
		series = append(series, models.ContentSeries{
			ID:                  row.ID,
			ClientID:            row.ClientID,
			Title:               row.Title,
			Description:         row.Description,
			Theme:               row.Theme,
			IncludedPieceIDs:    row.IncludedPieceIDs,
			RecommendedSequence: row.RecommendedSequence,
			SeriesType:          models.SeriesType(row.SeriesType),
			EstimatedPieces:     row.EstimatedPieces,
			Gaps:                row.Gaps,
		})
	}
	return series, nil
}

type calendarRow struct {
	ClientID      string   `json:"client_id"`
	Calendar      string   `json:"calendar"`
	StrategyNotes string   `json:"strategy_notes"`
	ContentGaps   []string `json:"content_gaps"`
}

// SaveCalendar replaces a client's calendar. One calendar per client scope.
func (s *Store) SaveCalendar(ctx context.Context, clientID string, plan *models.CalendarPlan) error {
	raw, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("marshal calendar: %w", err)
	}

	_, err = surrealdb.Query[any](ctx, s.client.db, `
		UPSERT type::thing("content_calendar", $client_id) CONTENT {
			client_id: $client_id,
			calendar: $calendar,
			strategy_notes: $strategy_notes,
			content_gaps: $content_gaps,
			created: time::now()
		}
	`, map[string]any{
		"client_id":      clientID,
		"calendar":       string(raw),
		"strategy_notes": plan.StrategyNotes,
		"content_gaps":   plan.ContentGaps,
	})
	if err != nil {
		return fmt.Errorf("save calendar: %w", wrapQueryError(err))
	}
	return nil
}

// GetCalendar returns a client's calendar, or ErrNotFound.
func (s *Store) GetCalendar(ctx context.Context, clientID string) (*models.CalendarPlan, error) {
	results, err := surrealdb.Query[[]calendarRow](ctx, s.client.db, `
		SELECT client_id, calendar, strategy_notes, content_gaps
		FROM type::record("content_calendar", $client_id)
	`, map[string]any{"client_id": clientID})
	if err != nil {
		return nil, fmt.Errorf("get calendar: %w", wrapQueryError(err))
	}

	rows := first(results)
	if len(rows) == 0 {
		return nil, fmt.Errorf("calendar for client %s: %w", clientID, ErrNotFound)
	}

	var plan models.CalendarPlan
	if err := json.Unmarshal([]byte(rows[0].Calendar), &plan); err != nil {
		return nil, fmt.Errorf("decode calendar: %w", err)
	}
	plan.ClientID = rows[0].ClientID
	return &plan, nil
}

type strategyRow struct {
	ClientID string `json:"client_id"`
	Intake   string `json:"intake"`
	Output   string `json:"output"`
}

// SaveStrategy upserts a client's intake and strategist output.
func (s *Store) SaveStrategy(ctx context.Context, strategy *models.ClientStrategy) error {
	intake, err := json.Marshal(strategy.Intake)
	if err != nil {
		return fmt.Errorf("marshal intake: %w", err)
	}
	output, err := json.Marshal(strategy.Output)
	if err != nil {
		return fmt.Errorf("marshal strategy output: %w", err)
	}

	_, err = surrealdb.Query[any](ctx, s.client.db, `
		UPSERT type::thing("client_strategy", $client_id) CONTENT {
			client_id: $client_id,
			intake: $intake,
			output: $output,
			updated: time::now()
		}
	`, map[string]any{
		"client_id": strategy.ClientID,
		"intake":    string(intake),
		"output":    string(output),
	})
	if err != nil {
		return fmt.Errorf("save strategy: %w", wrapQueryError(err))
	}
	return nil
}

// GetStrategy returns a client's stored strategy, or ErrNotFound.
func (s *Store) GetStrategy(ctx context.Context, clientID string) (*models.ClientStrategy, error) {
	results, err := surrealdb.Query[[]strategyRow](ctx, s.client.db, `
		SELECT client_id, intake, output
		FROM type::record("client_strategy", $client_id)
	`, map[string]any{"client_id": clientID})
	if err != nil {
		return nil, fmt.Errorf("get strategy: %w", wrapQueryError(err))
	}

	rows := first(results)
	if len(rows) == 0 {
		return nil, fmt.Errorf("strategy for client %s: %w", clientID, ErrNotFound)
	}

	strategy := &models.ClientStrategy{ClientID: rows[0].ClientID}
	if err := json.Unmarshal([]byte(rows[0].Intake), &strategy.Intake); err != nil {
		return nil, fmt.Errorf("decode intake: %w", err)
	}
	if err := json.Unmarshal([]byte(rows[0].Output), &strategy.Output); err != nil {
		return nil, fmt.Errorf("decode strategy output: %w", err)
	}
	return strategy, nil
}

type countRow struct {
	Count int `json:"count"`
}

// Stats returns stored record counts for a client scope. An empty clientID
// counts everything.
func (s *Store) Stats(ctx context.Context, clientID string) (*models.PipelineStats, error) {
	stats := &models.PipelineStats{}

	// tags and placement records are keyed by piece, so client scoping does
	// not apply to them directly
	counts := []struct {
		table  string
		scoped bool
		dest   *int
	}{
		{"piece", true, &stats.Pieces},
		{"archivist_tags", false, &stats.TaggedPieces},
		{"placement", false, &stats.PlacedPieces},
		{"repurpose_item", false, &stats.RepurposeItems},
		{"content_series", true, &stats.ContentSeries},
		{"content_calendar", true, &stats.Calendars},
	}

	vars := map[string]any{}
	if clientID != "" {
		vars["client_id"] = clientID
	}

	for _, c := range counts {
		sql := fmt.Sprintf("SELECT count() AS count FROM %s ", c.table)
		if c.scoped && clientID != "" {
			sql += "WHERE client_id = $client_id "
		}
		sql += "GROUP ALL"

		results, err := surrealdb.Query[[]countRow](ctx, s.client.db, sql, vars)
		if err != nil {
			return nil, fmt.Errorf("stats: %w", wrapQueryError(err))
		}
		rows := first(results)
		if len(rows) > 0 {
			*c.dest = rows[0].Count
		}
	}

	return stats, nil
}
