package cli

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/jdelaney/contentpipe-go/internal/db"
	"github.com/jdelaney/contentpipe-go/internal/pipeline"
)

var calendarWeek int

var (
	weekHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5FAFD7"))
	platformStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00D787"))
	focusStyle      = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("#6C6C6C"))
)

var calendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Show the 4-week posting calendar",
	Long: `Show the stored 4-week posting calendar for a client scope.

Examples:
  contentpipe calendar
  contentpipe calendar --client acme --week 2`,
	RunE: runCalendar,
}

func init() {
	calendarCmd.Flags().IntVarP(&calendarWeek, "week", "w", 0, "show a single week (1-4)")
}

func runCalendar(cmd *cobra.Command, args []string) error {
	plan, err := store.GetCalendar(cmd.Context(), scopeOrDefault())
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			fmt.Println("No calendar yet. Run 'contentpipe run' to generate one.")
			return nil
		}
		return fmt.Errorf("get calendar: %w", err)
	}

	printCalendarSummary(plan)
	fmt.Println()

	for _, week := range plan.WeeklyCalendar {
		if calendarWeek > 0 && week.WeekNumber != calendarWeek {
			continue
		}

		header := fmt.Sprintf("Week %d (%s)", week.WeekNumber, week.DateRange)
		fmt.Println(weekHeaderStyle.Render(header))
		if week.WeekFocus != "" {
			fmt.Println(focusStyle.Render("  " + week.WeekFocus))
		}

		for _, post := range week.Posts {
			platform := platformStyle.Render(fmt.Sprintf("%-10s", post.Platform))
			fmt.Printf("  %-9s %-10s %s %s\n", post.Day, post.Date, platform, post.ContentDescription)
		}
		fmt.Println()
	}

	if plan.StrategyNotes != "" {
		fmt.Println(focusStyle.Render(plan.StrategyNotes))
	}
	return nil
}

func scopeOrDefault() string {
	if clientID == "" {
		return pipeline.DefaultScope
	}
	return clientID
}
