package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var seriesCmd = &cobra.Command{
	Use:   "series",
	Short: "List content series for a client scope",
	RunE:  runSeries,
}

func runSeries(cmd *cobra.Command, args []string) error {
	series, err := store.ListSeries(cmd.Context(), scopeOrDefault())
	if err != nil {
		return fmt.Errorf("list series: %w", err)
	}

	if len(series) == 0 {
		fmt.Println("No series yet. Run 'contentpipe run' over multiple pieces.")
		return nil
	}

	fmt.Printf("Series (%d):\n\n", len(series))
	for _, s := range series {
		fmt.Printf("- %s [%s] %d pieces\n", s.Title, s.SeriesType, len(s.IncludedPieceIDs))
		if verbose {
			fmt.Printf("  %s\n", s.Description)
			if len(s.Gaps) > 0 {
				fmt.Printf("  Gaps: %s\n", strings.Join(s.Gaps, ", "))
			}
		}
	}
	return nil
}
