// Package agent runs the pipeline's LLM agents: prompt assembly, JSON-mode
// generation with retries, contract validation, and deterministic fallbacks.
package agent

import (
	"time"

	"github.com/jdelaney/contentpipe-go/internal/models"
)

// PieceRecord bundles a piece with whatever stage outputs exist for it.
// Tags and Placement are nil until the corresponding agent has run.
type PieceRecord struct {
	Piece     models.Piece
	Tags      *models.ArchivistTags
	Placement *models.Placement
}

// StarterRequest describes one content-starter generation batch.
type StarterRequest struct {
	CustomerName string
	Niche        string
	Audience     string
	RawContent   string
	Slots        []models.StarterSlot
	Batch        int
}

// Input carries everything an agent run may need. Which fields are read
// depends on the role: piece agents use Piece and the prior stage outputs,
// collection agents use Pieces, the strategist uses Intake.
type Input struct {
	Piece         *models.Piece
	Tags          *models.ArchivistTags
	Placement     *models.Placement
	Pieces        []PieceRecord
	Intake        *models.StrategistIntake
	Starter       *StarterRequest
	Client        *models.ClientContext
	ReferenceDate time.Time
}
