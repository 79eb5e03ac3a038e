package models

// RevenueBand buckets a client's current revenue.
type RevenueBand string

const (
	RevenueUnder100K RevenueBand = "under_100k"
	Revenue100K500K  RevenueBand = "100k_500k"
	Revenue500K1M    RevenueBand = "500k_1m"
	Revenue1M5M      RevenueBand = "1m_5m"
	RevenueOver5M    RevenueBand = "over_5m"
)

// Goal is the client's primary content goal.
type Goal string

const (
	GoalGrowAudience  Goal = "grow_audience"
	GoalGetClients    Goal = "get_clients"
	GoalBuildAuthority Goal = "build_authority"
	GoalLaunchProduct Goal = "launch_product"
	GoalAllOfAbove    Goal = "all_of_above"
)

// Level grades impact or effort.
type Level string

const (
	LevelHigh   Level = "high"
	LevelMedium Level = "medium"
	LevelLow    Level = "low"
)

// AudienceSize holds per-platform follower counts from the intake form.
type AudienceSize struct {
	LinkedIn  int `json:"linkedin,omitempty"`
	Twitter   int `json:"twitter,omitempty"`
	Instagram int `json:"instagram,omitempty"`
	EmailList int `json:"email_list,omitempty"`
	YouTube   int `json:"youtube,omitempty"`
}

// StrategistIntake is the one-time client onboarding questionnaire.
type StrategistIntake struct {
	CoachingNiche          string       `json:"coaching_niche" yaml:"coaching_niche"`
	TargetAudience         string       `json:"target_audience" yaml:"target_audience"`
	CurrentRevenue         RevenueBand  `json:"current_revenue" yaml:"current_revenue"`
	CurrentPlatforms       []string     `json:"current_platforms" yaml:"current_platforms"`
	AudienceSize           AudienceSize `json:"audience_size" yaml:"audience_size"`
	ContentTimeWeeklyHours float64      `json:"content_time_weekly_hours" yaml:"content_time_weekly_hours"`
	PrimaryGoal            Goal         `json:"primary_goal" yaml:"primary_goal"`
	CurrentContentSources  []string     `json:"current_content_sources" yaml:"current_content_sources"`
}

// PlatformPriority ranks one platform in the strategy. Priority 1 is highest.
type PlatformPriority struct {
	Platform     string `json:"platform"`
	Priority     int    `json:"priority"`
	Reasoning    string `json:"reasoning"`
	WeeklyTarget string `json:"weekly_target"`
}

// ContentStrategy is the Strategist's pillar/cadence recommendation.
type ContentStrategy struct {
	PrimaryContentType string   `json:"primary_content_type"`
	ContentPillars     []string `json:"content_pillars"`
	PostingCadence     string   `json:"posting_cadence"`
	EngagementStrategy string   `json:"engagement_strategy"`
}

// QuickWin is a single prioritized action item.
type QuickWin struct {
	Action    string `json:"action"`
	Impact    Level  `json:"impact"`
	Effort    Level  `json:"effort"`
	Timeframe string `json:"timeframe"`
}

// StrategistOutput is the Strategist agent's advisory result.
type StrategistOutput struct {
	PlatformPriority []PlatformPriority `json:"platform_priority"`
	ContentStrategy  ContentStrategy    `json:"content_strategy"`
	QuickWins        []QuickWin         `json:"quick_wins"`
	Recommendations  []string           `json:"recommendations"`
}

// ClientStrategy pairs a stored intake with its Strategist output,
// keyed by client. Upserted on re-run.
type ClientStrategy struct {
	ClientID string           `json:"client_id"`
	Intake   StrategistIntake `json:"intake"`
	Output   StrategistOutput `json:"output"`
}

// ClientContext is the per-client framing threaded into agent prompts.
type ClientContext struct {
	Niche     string   `json:"niche"`
	Audience  string   `json:"audience"`
	Platforms []string `json:"platforms"`
}

// Context derives prompt context from a stored strategy.
func (s *ClientStrategy) Context() *ClientContext {
	platforms := make([]string, 0, len(s.Output.PlatformPriority))
	for _, p := range s.Output.PlatformPriority {
		platforms = append(platforms, p.Platform)
	}
	return &ClientContext{
		Niche:     s.Intake.CoachingNiche,
		Audience:  s.Intake.TargetAudience,
		Platforms: platforms,
	}
}
