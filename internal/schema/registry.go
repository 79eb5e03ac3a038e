package schema

import "fmt"

// Registry holds the contract for every role.
type Registry struct {
	contracts map[Role]*Contract
}

// NewRegistry builds the full contract set. Contracts are immutable after
// construction and safe for concurrent use.
func NewRegistry() *Registry {
	r := &Registry{contracts: make(map[Role]*Contract)}
	for _, c := range []*Contract{
		archivistContract(),
		placementContract(),
		repurposerContract(),
		compilerContract(),
		executiveContract(),
		strategistContract(),
		starterContract(),
	} {
		r.contracts[c.Role] = c
	}
	return r
}

// Contract returns the contract registered for a role.
func (r *Registry) Contract(role Role) (*Contract, error) {
	c, ok := r.contracts[role]
	if !ok {
		return nil, fmt.Errorf("no contract registered for role %q", role)
	}
	return c, nil
}

// Validate checks a decoded output object against the role's contract.
func (r *Registry) Validate(role Role, value map[string]any) error {
	c, err := r.Contract(role)
	if err != nil {
		return err
	}
	return c.Validate(value)
}

var (
	contentTypes = []string{
		"PODCAST_TRANSCRIPT", "VIDEO_TRANSCRIPT", "VOICE_MEMO", "WRITTEN_CONTENT",
		"WORKSHOP_RECORDING", "CLIENT_CALL", "SOCIAL_POST", "EMAIL", "OTHER",
	}
	pieceStatuses   = []string{"READY", "NEEDS_CLEANUP", "RAW", "ARCHIVE"}
	qualityBands    = []string{"A", "B", "C"}
	platforms       = []string{"LINKEDIN", "TWITTER", "INSTAGRAM", "EMAIL", "BLOG", "YOUTUBE", "ARCHIVE"}
	potentials      = []string{"HIGH", "MEDIUM", "LOW"}
	linkedinFormats = []string{"story", "listicle", "insight", "question", "hot_take", "case_study", "how_to"}
	seriesTypes     = []string{"EMAIL_SEQUENCE", "BLOG_SERIES", "LINKEDIN_SERIES", "LEAD_MAGNET", "COURSE_MODULE"}
	levels          = []string{"high", "medium", "low"}
)

func str(name string, maxLen int) Field {
	return Field{Name: name, Kind: KindString, MinLen: 1, MaxLen: maxLen}
}

func enum(name string, values []string) Field {
	return Field{Name: name, Kind: KindString, Enum: values}
}

func integer(name string) Field {
	return Field{Name: name, Kind: KindInt}
}

func arr(name string, minLen, maxLen int, elem Field) Field {
	return Field{Name: name, Kind: KindArray, MinLen: minLen, MaxLen: maxLen, Elem: &elem}
}

func obj(name string, fields ...Field) Field {
	return Field{Name: name, Kind: KindObject, Fields: fields}
}

func opt(f Field) Field {
	f.Optional = true
	return f
}

func archivistContract() *Contract {
	return &Contract{Role: RoleArchivist, Fields: []Field{
		arr("themes", 2, 8, str("", 0)),
		arr("voice_tags", 1, 0, str("", 0)),
		enum("content_type", contentTypes),
		enum("status", pieceStatuses),
		enum("quality_band", qualityBands),
		arr("key_insights", 1, 10, str("", 0)),
		opt(str("notes", 600)),
	}}
}

func placementContract() *Contract {
	return &Contract{Role: RolePlacement, Fields: []Field{
		enum("primary_platform", platforms),
		opt(arr("secondary_platforms", 0, 0, enum("", platforms))),
		enum("content_potential", potentials),
		arr("recommended_formats", 1, 5, str("", 0)),
		str("reasoning", 200),
	}}
}

func repurposerContract() *Contract {
	linkedinPost := obj("",
		enum("format", linkedinFormats),
		str("hook", 200),
		str("body", 0),
		opt(str("cta", 100)),
		opt(arr("hashtags", 0, 5, str("", 0))),
	)
	tweet := obj("",
		str("text", 280),
		integer("position"),
	)
	thread := obj("",
		str("hook_tweet", 280),
		arr("tweets", 3, 15, tweet),
	)
	caption := obj("",
		str("hook", 125),
		str("caption", 2200),
		arr("hashtags", 1, 30, str("", 0)),
		opt(arr("carousel_slides", 0, 10, str("", 0))),
	)
	email := obj("",
		str("subject_line", 60),
		str("preview_text", 100),
		str("body", 0),
		str("cta", 100),
	)
	section := obj("",
		str("heading", 0),
		arr("key_points", 1, 0, str("", 0)),
	)
	outline := obj("",
		str("title", 0),
		str("meta_description", 160),
		arr("sections", 1, 0, section),
		integer("estimated_word_count"),
	)
	return &Contract{Role: RoleRepurposer, Fields: []Field{
		opt(arr("linkedin_posts", 0, 7, linkedinPost)),
		opt(arr("twitter_threads", 0, 5, thread)),
		opt(arr("instagram_captions", 0, 5, caption)),
		opt(arr("email_drafts", 0, 2, email)),
		opt(arr("blog_outlines", 0, 1, outline)),
	}}
}

func compilerContract() *Contract {
	series := obj("",
		str("title", 0),
		str("description", 0),
		str("theme", 0),
		arr("included_piece_ids", 1, 0, str("", 0)),
		arr("recommended_sequence", 1, 0, str("", 0)),
		enum("series_type", seriesTypes),
		integer("estimated_pieces"),
		opt(arr("gaps", 0, 0, str("", 0))),
	)
	return &Contract{Role: RoleCompiler, Fields: []Field{
		arr("content_series", 0, 0, series),
		arr("standalone_pieces", 0, 0, str("", 0)),
	}}
}

func executiveContract() *Contract {
	slot := obj("",
		str("day", 0),
		str("date", 0),
		str("time", 0),
		str("platform", 0),
		str("content_type", 0),
		str("content_description", 0),
		opt(str("source_piece_id", 0)),
		integer("content_index"),
	)
	week := obj("",
		integer("week_number"),
		str("date_range", 0),
		arr("posts", 1, 0, slot),
		str("week_focus", 0),
	)
	return &Contract{Role: RoleExecutive, Fields: []Field{
		obj("calendar_summary",
			integer("total_posts"),
			integer("linkedin_posts"),
			integer("twitter_posts"),
			integer("instagram_posts"),
			integer("emails"),
			integer("blog_posts"),
		),
		arr("weekly_calendar", 1, 0, week),
		obj("posting_schedule",
			str("linkedin", 0),
			str("twitter", 0),
			str("instagram", 0),
			str("email", 0),
		),
		str("strategy_notes", 500),
		opt(arr("content_gaps", 0, 0, str("", 0))),
	}}
}

func strategistContract() *Contract {
	priority := obj("",
		str("platform", 0),
		integer("priority"),
		str("reasoning", 0),
		str("weekly_target", 0),
	)
	win := obj("",
		str("action", 0),
		enum("impact", levels),
		enum("effort", levels),
		str("timeframe", 0),
	)
	return &Contract{Role: RoleStrategist, Fields: []Field{
		arr("platform_priority", 1, 0, priority),
		obj("content_strategy",
			str("primary_content_type", 0),
			arr("content_pillars", 3, 5, str("", 0)),
			str("posting_cadence", 0),
			str("engagement_strategy", 0),
		),
		arr("quick_wins", 1, 5, win),
		arr("recommendations", 1, 5, str("", 0)),
	}}
}

func starterContract() *Contract {
	post := obj("",
		integer("day"),
		str("date", 0),
		str("dayOfWeek", 0),
		str("postTime", 0),
		str("postType", 0),
		str("hook", 0),
		str("body", 0),
		str("cta", 0),
		arr("hashtags", 1, 0, str("", 0)),
	)
	return &Contract{Role: RoleStarter, Fields: []Field{
		arr("posts", 1, 10, post),
	}}
}
