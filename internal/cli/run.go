package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jdelaney/contentpipe-go/internal/models"
	"github.com/jdelaney/contentpipe-go/internal/pipeline"
)

// Per-piece stages plus compiler and executive for a full run.
const (
	stagesPerPiece = 3
	scopeStages    = 2
)

var runCmd = &cobra.Command{
	Use:   "run [piece-id]",
	Short: "Run the agent pipeline",
	Long: `Run the agent pipeline over the piece library.

With a piece ID, runs the per-piece chain (Archivist, Placement,
Repurposer) on that piece and regenerates the calendar. Without
arguments, runs the full pipeline: every piece, then the Compiler
groups series and the Executive lays out the 4-week calendar.

Examples:
  contentpipe run
  contentpipe run 4f7c2a10-... --client client-a`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPipelineCmd,
}

func runPipelineCmd(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	if len(args) == 1 {
		return runOnePiece(ctx, cancel, args[0])
	}
	return runAllPieces(ctx, cancel)
}

func runOnePiece(ctx context.Context, cancel func(), pieceID string) error {
	events := make(chan pipeline.Event, 64)
	pipe := newPipeline(func(e pipeline.Event) { events <- e })

	var (
		result *pipeline.PieceResult
		plan   *models.CalendarPlan
	)
	done := make(chan error, 1)
	go func() {
		var err error
		result, plan, err = pipe.RunPiece(ctx, pieceID, nil)
		done <- err
		close(events)
	}()

	total := stagesPerPiece + 1 // plus the calendar rebuild
	if err := consumeEvents(events, done, total, cancel); err != nil {
		return err
	}

	fmt.Printf("\nPiece %s processed: %d repurposed items.\n", result.PieceID, result.ItemCount)
	printCalendarSummary(plan)
	return nil
}

func runAllPieces(ctx context.Context, cancel func()) error {
	pieces, err := store.ListPieces(ctx, clientID)
	if err != nil {
		return fmt.Errorf("list pieces: %w", err)
	}
	if len(pieces) == 0 {
		return pipeline.ErrNoPieces
	}

	events := make(chan pipeline.Event, 64)
	pipe := newPipeline(func(e pipeline.Event) { events <- e })

	var run *pipeline.RunResult
	done := make(chan error, 1)
	go func() {
		var err error
		run, err = pipe.RunAll(ctx, clientID)
		done <- err
		close(events)
	}()

	total := len(pieces)*stagesPerPiece + scopeStages
	if err := consumeEvents(events, done, total, cancel); err != nil {
		return err
	}

	fmt.Printf("\nProcessed %d pieces into %d series (%d standalone).\n",
		len(run.Pieces), len(run.Series), len(run.StandalonePieces))
	for _, s := range run.Series {
		fmt.Printf("  - %s (%d pieces)\n", s.Title, len(s.IncludedPieceIDs))
	}
	printCalendarSummary(run.Calendar)
	return nil
}

// consumeEvents shows the interactive progress UI on a terminal and falls
// back to plain line output otherwise.
func consumeEvents(events <-chan pipeline.Event, done <-chan error, total int, cancel func()) error {
	if term.IsTerminal(int(os.Stdout.Fd())) {
		return runWithProgress(events, done, total, cancel)
	}

	for event := range events {
		if event.Type == "stage_start" {
			fmt.Printf("[%s]\n", stageLabel(event))
		}
	}
	return <-done
}

func printCalendarSummary(plan *models.CalendarPlan) {
	if plan == nil {
		return
	}
	s := plan.CalendarSummary
	fmt.Printf("\n4-week calendar: %d posts (%d LinkedIn, %d Twitter, %d Instagram, %d emails, %d blog)\n",
		s.TotalPosts, s.LinkedInPosts, s.TwitterPosts, s.InstagramPosts, s.Emails, s.BlogPosts)
	if len(plan.ContentGaps) > 0 {
		fmt.Println("Content gaps:")
		for _, gap := range plan.ContentGaps {
			fmt.Printf("  - %s\n", gap)
		}
	}
}
