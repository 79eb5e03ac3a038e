package models

// CalendarSlot is one scheduled post within a calendar week.
type CalendarSlot struct {
	Day                string `json:"day"`
	Date               string `json:"date"` // YYYY-MM-DD
	Time               string `json:"time"`
	Platform           string `json:"platform"`
	ContentType        string `json:"content_type"`
	ContentDescription string `json:"content_description"`
	SourcePieceID      string `json:"source_piece_id,omitempty"`
	ContentIndex       int    `json:"content_index"`
}

// CalendarWeek is one 7-day window of the plan.
type CalendarWeek struct {
	WeekNumber int            `json:"week_number"`
	DateRange  string         `json:"date_range"` // "Jan 2 - Jan 8"
	Posts      []CalendarSlot `json:"posts"`
	WeekFocus  string         `json:"week_focus"`
}

// CalendarSummary carries the fixed per-platform totals for a 4-week plan.
// The counts derive from the cadence rules, not from the generated slots;
// downstream consumers hard-code expectations against them.
type CalendarSummary struct {
	TotalPosts     int `json:"total_posts"`
	LinkedInPosts  int `json:"linkedin_posts"`
	TwitterPosts   int `json:"twitter_posts"`
	InstagramPosts int `json:"instagram_posts"`
	Emails         int `json:"emails"`
	BlogPosts      int `json:"blog_posts"`
}

// PostingSchedule describes the per-platform cadence in prose.
type PostingSchedule struct {
	LinkedIn  string `json:"linkedin"`
	Twitter   string `json:"twitter"`
	Instagram string `json:"instagram"`
	Email     string `json:"email"`
}

// CalendarPlan is the Executive's 4-week posting plan for a client scope.
// Regenerated wholesale on every run; never patched incrementally.
type CalendarPlan struct {
	ClientID        string          `json:"client_id,omitempty"`
	CalendarSummary CalendarSummary `json:"calendar_summary"`
	WeeklyCalendar  []CalendarWeek  `json:"weekly_calendar"`
	PostingSchedule PostingSchedule `json:"posting_schedule"`
	StrategyNotes   string          `json:"strategy_notes"`
	ContentGaps     []string        `json:"content_gaps"`
}
