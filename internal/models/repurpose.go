package models

import "encoding/json"

// LinkedInPost is a single platform-native LinkedIn post.
type LinkedInPost struct {
	Format   string   `json:"format"`
	Hook     string   `json:"hook"`
	Body     string   `json:"body"`
	CTA      string   `json:"cta,omitempty"`
	Hashtags []string `json:"hashtags,omitempty"`
}

// Tweet is one entry of a Twitter thread. Position is 1-based.
type Tweet struct {
	Text     string `json:"text"`
	Position int    `json:"position"`
}

// TwitterThread is an ordered sequence of 3-15 tweets.
type TwitterThread struct {
	HookTweet string  `json:"hook_tweet"`
	Tweets    []Tweet `json:"tweets"`
}

// InstagramCaption is a caption with optional carousel slide texts.
type InstagramCaption struct {
	Hook           string   `json:"hook"`
	Caption        string   `json:"caption"`
	Hashtags       []string `json:"hashtags"`
	CarouselSlides []string `json:"carousel_slides,omitempty"`
}

// EmailDraft is a newsletter draft.
type EmailDraft struct {
	SubjectLine string `json:"subject_line"`
	PreviewText string `json:"preview_text"`
	Body        string `json:"body"`
	CTA         string `json:"cta"`
}

// BlogSection is one outlined section of a blog post.
type BlogSection struct {
	Heading   string   `json:"heading"`
	KeyPoints []string `json:"key_points"`
}

// BlogOutline is an SEO-oriented blog post outline.
type BlogOutline struct {
	Title              string        `json:"title"`
	MetaDescription    string        `json:"meta_description"`
	Sections           []BlogSection `json:"sections"`
	EstimatedWordCount int           `json:"estimated_word_count"`
}

// RepurposeBundle is the Repurposer's full output for one piece: ordered
// collections of typed content items. Replaced wholesale on re-run.
type RepurposeBundle struct {
	SourcePieceID     string             `json:"source_piece_id"`
	LinkedInPosts     []LinkedInPost     `json:"linkedin_posts"`
	TwitterThreads    []TwitterThread    `json:"twitter_threads"`
	InstagramCaptions []InstagramCaption `json:"instagram_captions"`
	EmailDrafts       []EmailDraft       `json:"email_drafts"`
	BlogOutlines      []BlogOutline      `json:"blog_outlines"`
}

// RepurposeItem is a single stored derivative item. Content holds the typed
// payload (LinkedInPost, TwitterThread, ...) as JSON; Position preserves the
// bundle ordering per platform.
type RepurposeItem struct {
	ID       string          `json:"id,omitempty"`
	PieceID  string          `json:"piece_id"`
	Platform Platform        `json:"platform"`
	Format   string          `json:"format"`
	Position int             `json:"position"`
	Content  json.RawMessage `json:"content"`
}

// Items flattens the bundle into storage rows, preserving per-platform order.
func (b *RepurposeBundle) Items(pieceID string) ([]RepurposeItem, error) {
	var items []RepurposeItem
	add := func(platform Platform, format string, position int, payload any) error {
		raw, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		items = append(items, RepurposeItem{
			PieceID:  pieceID,
			Platform: platform,
			Format:   format,
			Position: position,
			Content:  raw,
		})
		return nil
	}

	for i, post := range b.LinkedInPosts {
		if err := add(PlatformLinkedIn, post.Format, i, post); err != nil {
			return nil, err
		}
	}
	for i, thread := range b.TwitterThreads {
		if err := add(PlatformTwitter, "thread", i, thread); err != nil {
			return nil, err
		}
	}
	for i, caption := range b.InstagramCaptions {
		if err := add(PlatformInstagram, "caption", i, caption); err != nil {
			return nil, err
		}
	}
	for i, draft := range b.EmailDrafts {
		if err := add(PlatformEmail, "newsletter", i, draft); err != nil {
			return nil, err
		}
	}
	for i, outline := range b.BlogOutlines {
		if err := add(PlatformBlog, "outline", i, outline); err != nil {
			return nil, err
		}
	}
	return items, nil
}
