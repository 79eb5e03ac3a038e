package models

// SeriesType classifies a content series.
type SeriesType string

const (
	SeriesEmailSequence  SeriesType = "EMAIL_SEQUENCE"
	SeriesBlogSeries     SeriesType = "BLOG_SERIES"
	SeriesLinkedInSeries SeriesType = "LINKEDIN_SERIES"
	SeriesLeadMagnet     SeriesType = "LEAD_MAGNET"
	SeriesCourseModule   SeriesType = "COURSE_MODULE"
)

// ContentSeries groups related pieces into a sequenced series opportunity
// discovered by the Compiler. Scoped to a client; replaced wholesale on re-run.
type ContentSeries struct {
	ID                  string     `json:"id,omitempty"`
	ClientID            string     `json:"client_id,omitempty"`
	Title               string     `json:"title"`
	Description         string     `json:"description"`
	Theme               string     `json:"theme"`
	IncludedPieceIDs    []string   `json:"included_piece_ids"`
	RecommendedSequence []string   `json:"recommended_sequence"`
	SeriesType          SeriesType `json:"series_type"`
	EstimatedPieces     int        `json:"estimated_pieces"`
	Gaps                []string   `json:"gaps"`
}

// CompilerOutput is the Compiler's result over a whole client scope.
// StandalonePieces lists the piece IDs that fit no series.
type CompilerOutput struct {
	ContentSeries    []ContentSeries `json:"content_series"`
	StandalonePieces []string        `json:"standalone_pieces"`
}
