package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jdelaney/contentpipe-go/internal/models"
)

var (
	onboardIntakeFile string
	onboardNiche      string
	onboardAudience   string
	onboardGoal       string
	onboardPlatforms  []string
	onboardHours      float64
)

var onboardCmd = &cobra.Command{
	Use:   "onboard",
	Short: "Onboard a client and generate their strategy",
	Long: `Run the Strategist over a client intake, store the resulting
strategy, and kick off a full pipeline run framed by it.

The intake can come from a YAML file or from flags. Subsequent runs
in the same client scope pick up the stored strategy automatically.

Examples:
  contentpipe onboard --client acme --intake intake.yaml
  contentpipe onboard --client acme --niche "executive coaching" \
    --audience "VPs at tech companies" --goal get_clients`,
	RunE: runOnboard,
}

func init() {
	onboardCmd.Flags().StringVar(&onboardIntakeFile, "intake", "", "YAML intake file")
	onboardCmd.Flags().StringVar(&onboardNiche, "niche", "", "coaching niche")
	onboardCmd.Flags().StringVar(&onboardAudience, "audience", "", "target audience")
	onboardCmd.Flags().StringVar(&onboardGoal, "goal", string(models.GoalGrowAudience),
		"primary goal (grow_audience, get_clients, build_authority, launch_product, all_of_above)")
	onboardCmd.Flags().StringSliceVar(&onboardPlatforms, "platforms", nil, "platforms currently in use")
	onboardCmd.Flags().Float64Var(&onboardHours, "hours", 0, "weekly hours available for content")
}

func runOnboard(cmd *cobra.Command, args []string) error {
	intake, err := loadIntake()
	if err != nil {
		return err
	}
	if intake.CoachingNiche == "" || intake.TargetAudience == "" {
		return fmt.Errorf("intake requires a niche and a target audience")
	}

	pipe := newPipeline(nil)
	result, err := pipe.Onboard(cmd.Context(), clientID, intake)
	if err != nil {
		return fmt.Errorf("onboard: %w", err)
	}

	strategy := result.Strategy
	fmt.Printf("Strategy generated for %q:\n\n", intake.CoachingNiche)

	fmt.Println("Platform priority:")
	for _, p := range strategy.PlatformPriority {
		fmt.Printf("  %d. %-10s %s\n", p.Priority, p.Platform, p.WeeklyTarget)
	}

	cs := strategy.ContentStrategy
	fmt.Printf("\nContent strategy: %s, %s\n", cs.PrimaryContentType, cs.PostingCadence)
	if len(cs.ContentPillars) > 0 {
		fmt.Println("Pillars:")
		for _, pillar := range cs.ContentPillars {
			fmt.Printf("  - %s\n", pillar)
		}
	}

	if len(strategy.QuickWins) > 0 {
		fmt.Println("\nQuick wins:")
		for _, w := range strategy.QuickWins {
			fmt.Printf("  - %s (%s impact, %s)\n", w.Action, w.Impact, w.Timeframe)
		}
	}

	if result.Run != nil {
		fmt.Printf("\nPipeline ran over %d pieces.\n", len(result.Run.Pieces))
		printCalendarSummary(result.Run.Calendar)
	} else {
		fmt.Println("\nNo pieces in the library yet. Ingest content and run 'contentpipe run'.")
	}
	return nil
}

// loadIntake builds the intake from the YAML file when given, flags otherwise.
func loadIntake() (*models.StrategistIntake, error) {
	if onboardIntakeFile != "" {
		raw, err := os.ReadFile(onboardIntakeFile)
		if err != nil {
			return nil, fmt.Errorf("read intake: %w", err)
		}
		var intake models.StrategistIntake
		if err := yaml.Unmarshal(raw, &intake); err != nil {
			return nil, fmt.Errorf("parse intake: %w", err)
		}
		return &intake, nil
	}

	return &models.StrategistIntake{
		CoachingNiche:          onboardNiche,
		TargetAudience:         onboardAudience,
		PrimaryGoal:            models.Goal(onboardGoal),
		CurrentPlatforms:       onboardPlatforms,
		ContentTimeWeeklyHours: onboardHours,
	}, nil
}
