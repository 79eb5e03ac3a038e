package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jdelaney/contentpipe-go/internal/db"
)

var piecesCmd = &cobra.Command{
	Use:   "pieces",
	Short: "List pieces in the library",
	Long: `List pieces in the library with optional client filtering.

Examples:
  contentpipe pieces
  contentpipe pieces --client client-a
  contentpipe pieces show <piece-id>`,
	RunE: runListPieces,
}

var piecesShowCmd = &cobra.Command{
	Use:   "show <piece-id>",
	Short: "Show a piece with its pipeline outputs",
	Args:  cobra.ExactArgs(1),
	RunE:  runShowPiece,
}

func init() {
	piecesCmd.AddCommand(piecesShowCmd)
}

func runListPieces(cmd *cobra.Command, args []string) error {
	pieces, err := store.ListPieces(cmd.Context(), clientID)
	if err != nil {
		return fmt.Errorf("list pieces: %w", err)
	}

	if len(pieces) == 0 {
		fmt.Println("No pieces found. Use 'contentpipe ingest' to add content.")
		return nil
	}

	fmt.Printf("Pieces (%d):\n\n", len(pieces))
	for _, p := range pieces {
		fmt.Printf("- %s [%s] %d words\n", p.Title, p.ID, p.WordCount)
		if verbose && p.ClientID != "" {
			fmt.Printf("  Client: %s\n", p.ClientID)
		}
	}
	return nil
}

func runShowPiece(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	id := args[0]

	piece, err := store.GetPiece(ctx, id)
	if err != nil {
		return fmt.Errorf("get piece: %w", err)
	}

	fmt.Printf("%s\n", piece.Title)
	fmt.Printf("  ID:     %s\n", piece.ID)
	if piece.ClientID != "" {
		fmt.Printf("  Client: %s\n", piece.ClientID)
	}
	fmt.Printf("  Source: %s\n", piece.Source)
	fmt.Printf("  Words:  %d\n", piece.WordCount)

	tags, err := store.GetTags(ctx, id)
	switch {
	case err == nil:
		fmt.Printf("\nArchivist:\n")
		fmt.Printf("  Type:    %s\n", tags.ContentType)
		fmt.Printf("  Quality: %s\n", tags.QualityBand)
		fmt.Printf("  Themes:  %s\n", strings.Join(tags.Themes, ", "))
	case errors.Is(err, db.ErrNotFound):
		fmt.Println("\nNot yet processed. Use 'contentpipe run' to run the pipeline.")
		return nil
	default:
		return fmt.Errorf("get tags: %w", err)
	}

	placement, err := store.GetPlacement(ctx, id)
	if err == nil {
		fmt.Printf("\nPlacement:\n")
		fmt.Printf("  Primary:   %s\n", placement.PrimaryPlatform)
		fmt.Printf("  Potential: %s\n", placement.ContentPotential)
		if len(placement.SecondaryPlatforms) > 0 {
			platforms := make([]string, len(placement.SecondaryPlatforms))
			for i, p := range placement.SecondaryPlatforms {
				platforms[i] = string(p)
			}
			fmt.Printf("  Secondary: %s\n", strings.Join(platforms, ", "))
		}
	} else if !errors.Is(err, db.ErrNotFound) {
		return fmt.Errorf("get placement: %w", err)
	}

	items, err := store.ListRepurposeItems(ctx, id)
	if err != nil {
		return fmt.Errorf("list repurpose items: %w", err)
	}
	if len(items) > 0 {
		fmt.Printf("\nRepurposed content (%d items):\n", len(items))
		for _, item := range items {
			fmt.Printf("  - %s/%s #%d\n", item.Platform, item.Format, item.Position+1)
		}
	}

	return nil
}
