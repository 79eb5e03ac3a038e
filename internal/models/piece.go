// Package models defines the data structures shared across the content pipeline.
package models

import "time"

// Piece is a unit of source content (transcript, blog post, voice memo).
// Pieces are created on ingestion and never mutated afterwards; stage outputs
// attach to them by PieceID.
type Piece struct {
	ID        string    `json:"id"`
	ClientID  string    `json:"client_id,omitempty"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Source    string    `json:"source,omitempty"`
	WordCount int       `json:"word_count"`
	Created   time.Time `json:"created,omitempty"`
}

// ContentType classifies the origin of a piece.
type ContentType string

const (
	ContentPodcastTranscript ContentType = "PODCAST_TRANSCRIPT"
	ContentVideoTranscript   ContentType = "VIDEO_TRANSCRIPT"
	ContentVoiceMemo         ContentType = "VOICE_MEMO"
	ContentWritten           ContentType = "WRITTEN_CONTENT"
	ContentWorkshop          ContentType = "WORKSHOP_RECORDING"
	ContentClientCall        ContentType = "CLIENT_CALL"
	ContentSocialPost        ContentType = "SOCIAL_POST"
	ContentEmail             ContentType = "EMAIL"
	ContentOther             ContentType = "OTHER"
)

// PieceStatus indicates repurposing readiness.
type PieceStatus string

const (
	StatusReady        PieceStatus = "READY"
	StatusNeedsCleanup PieceStatus = "NEEDS_CLEANUP"
	StatusRaw          PieceStatus = "RAW"
	StatusArchive      PieceStatus = "ARCHIVE"
)

// QualityBand is an ordinal quality grade.
type QualityBand string

const (
	BandA QualityBand = "A"
	BandB QualityBand = "B"
	BandC QualityBand = "C"
)

// Platform is a publishing destination.
type Platform string

const (
	PlatformLinkedIn  Platform = "LINKEDIN"
	PlatformTwitter   Platform = "TWITTER"
	PlatformInstagram Platform = "INSTAGRAM"
	PlatformEmail     Platform = "EMAIL"
	PlatformBlog      Platform = "BLOG"
	PlatformYouTube   Platform = "YOUTUBE"
	PlatformArchive   Platform = "ARCHIVE"
)

// ContentPotential estimates how many derivative pieces a source can yield.
type ContentPotential string

const (
	PotentialHigh   ContentPotential = "HIGH"
	PotentialMedium ContentPotential = "MEDIUM"
	PotentialLow    ContentPotential = "LOW"
)

// ArchivistTags is the Archivist's analysis of a single piece.
// One row per piece, replaced wholesale on re-run.
type ArchivistTags struct {
	PieceID     string      `json:"piece_id,omitempty"`
	Themes      []string    `json:"themes"`
	VoiceTags   []string    `json:"voice_tags"`
	ContentType ContentType `json:"content_type"`
	Status      PieceStatus `json:"status"`
	QualityBand QualityBand `json:"quality_band"`
	KeyInsights []string    `json:"key_insights"`
	Notes       string      `json:"notes"`
}

// Placement is the Placement agent's platform routing for a single piece.
type Placement struct {
	PieceID            string           `json:"piece_id,omitempty"`
	PrimaryPlatform    Platform         `json:"primary_platform"`
	SecondaryPlatforms []Platform       `json:"secondary_platforms,omitempty"`
	ContentPotential   ContentPotential `json:"content_potential"`
	RecommendedFormats []string         `json:"recommended_formats"`
	Reasoning          string           `json:"reasoning"`
}
