package models

// StarterSlot is one scheduled posting slot for the content-starter product.
type StarterSlot struct {
	Day       int    `json:"day"` // 1-based position in the 30-post sequence
	Date      string `json:"date"`
	DayOfWeek string `json:"dayOfWeek"`
	Time      string `json:"time"`
}

// StarterPost is one generated LinkedIn post for the content-starter product.
// Wire names are camelCase to match the delivery format consumed downstream.
type StarterPost struct {
	Day       int      `json:"day"`
	Date      string   `json:"date"`
	DayOfWeek string   `json:"dayOfWeek"`
	PostTime  string   `json:"postTime"`
	PostType  string   `json:"postType"`
	Hook      string   `json:"hook"`
	Body      string   `json:"body"`
	CTA       string   `json:"cta"`
	Hashtags  []string `json:"hashtags"`
}

// StarterSchedule summarizes the posting cadence for the starter set.
type StarterSchedule struct {
	Frequency string   `json:"frequency"`
	BestDays  []string `json:"bestDays"`
	BestTimes []string `json:"bestTimes"`
}

// StarterOutput is the full content-starter deliverable: a fixed-size
// LinkedIn-only post set plus a simplified schedule.
type StarterOutput struct {
	CustomerName    string          `json:"customerName"`
	CustomerEmail   string          `json:"customerEmail"`
	GeneratedAt     string          `json:"generatedAt"`
	Posts           []StarterPost   `json:"posts"`
	PostingSchedule StarterSchedule `json:"postingSchedule"`
	StrategyNotes   string          `json:"strategyNotes"`
}
