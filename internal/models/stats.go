package models

// PipelineStats summarizes stored pipeline state for a client scope.
type PipelineStats struct {
	Pieces         int `json:"pieces"`
	TaggedPieces   int `json:"tagged_pieces"`
	PlacedPieces   int `json:"placed_pieces"`
	RepurposeItems int `json:"repurpose_items"`
	ContentSeries  int `json:"content_series"`
	Calendars      int `json:"calendars"`
}
