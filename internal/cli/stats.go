package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/jdelaney/contentpipe-go/internal/metrics"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show library and agent statistics",
	Long: `Show counts of stored pipeline artifacts and, when agents ran in
this process, their runtime statistics.

Examples:
  contentpipe stats
  contentpipe stats --client acme`,
	RunE: runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	stored, err := store.Stats(cmd.Context(), clientID)
	if err != nil {
		return fmt.Errorf("get stats: %w", err)
	}

	fmt.Printf("Library\n")
	fmt.Printf("═══════════════════════════════\n")
	fmt.Printf("Pieces:           %d\n", stored.Pieces)
	fmt.Printf("  tagged:         %d\n", stored.TaggedPieces)
	fmt.Printf("  placed:         %d\n", stored.PlacedPieces)
	fmt.Printf("Repurposed items: %d\n", stored.RepurposeItems)
	fmt.Printf("Content series:   %d\n", stored.ContentSeries)
	fmt.Printf("Calendars:        %d\n", stored.Calendars)

	if stats != nil {
		printAgentStats(stats.Snapshot())
	}
	return nil
}

// printAgentStats displays per-role runtime statistics.
func printAgentStats(snap metrics.Snapshot) {
	if len(snap.Agents) == 0 {
		return
	}

	fmt.Printf("\nAgents (in-process, %.1fs uptime)\n", snap.UptimeSeconds)
	fmt.Printf("═══════════════════════════════\n")

	roles := make([]string, 0, len(snap.Agents))
	for role := range snap.Agents {
		roles = append(roles, role)
	}
	sort.Strings(roles)

	for _, role := range roles {
		a := snap.Agents[role]
		fmt.Printf("%s:\n", role)
		fmt.Printf("  Runs: %d, Retries: %d, Fallbacks: %d, Failures: %d\n",
			a.Runs, a.Retries, a.Fallbacks, a.Failures)
		if a.Runs > 0 {
			fmt.Printf("  Time: avg %.1fms, min %dms, max %dms\n",
				a.AvgTimeMs, a.MinTimeMs, a.MaxTimeMs)
		}
	}
}
