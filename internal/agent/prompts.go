package agent

import (
	"fmt"
	"strings"

	"github.com/jdelaney/contentpipe-go/internal/models"
	"github.com/jdelaney/contentpipe-go/internal/schema"
)

// Per-role body budgets, in characters. Longer bodies are truncated before
// prompting so a single oversized transcript cannot blow the context window.
const (
	archivistBodyLimit  = 4000
	placementBodyLimit  = 2000
	repurposerBodyLimit = 6000
	starterBodyLimit    = 4000
)

const baseRules = "You are an expert content strategist for executive coaches and high-ticket service providers. " +
	"You understand the coaching industry deeply. You write content that converts. No fluff. No generic advice. " +
	"Every piece should feel like it was written by a coach who's been in the trenches."

// truncate cuts s to at most limit bytes. Bodies are plain text, so a byte
// cut is fine; the limits are approximate anyway.
func truncate(s string, limit int) string {
	if limit <= 0 || len(s) <= limit {
		return s
	}
	return s[:limit]
}

func clientContextBlock(client *models.ClientContext) string {
	if client == nil {
		return ""
	}
	return fmt.Sprintf("\n\nClient context:\n- Niche: %s\n- Target audience: %s\n- Active platforms: %s",
		client.Niche, client.Audience, strings.Join(client.Platforms, ", "))
}

// systemPrompt returns the role's system prompt, with client framing when
// available.
func systemPrompt(role schema.Role, in *Input) string {
	ctx := clientContextBlock(in.Client)

	switch role {
	case schema.RoleArchivist:
		return baseRules + ctx + "\n\nYou are The Archivist. Analyze content (podcasts, videos, voice memos, written pieces) " +
			"and extract its essence. Identify themes, voice tags, content type, quality, and most importantly: extract the " +
			"KEY INSIGHTS that can be turned into standalone content pieces. These insights should be quotable, shareable moments. " +
			"Return valid JSON only."

	case schema.RolePlacement:
		return baseRules + ctx + "\n\nYou are The Placement Agent. Decide which platforms each piece of content is best suited for. " +
			"Consider: LinkedIn for thought leadership and B2B, Twitter for quick insights and threads, Instagram for personal brand " +
			"and visual content, Email for deep engagement and sales, Blog for SEO and evergreen content. Assess content potential " +
			"(how many pieces can be generated from this). Return valid JSON only."

	case schema.RoleCompiler:
		return baseRules + ctx + "\n\nYou are The Compiler. Look across all content and identify opportunities for content series: " +
			"email sequences, blog series, LinkedIn series, lead magnets, or course modules. Group related pieces together. " +
			"Identify gaps that need to be filled. Return valid JSON only."

	case schema.RoleRepurposer:
		return baseRules + ctx + "\n\nYou are The Repurposer. This is the most important agent. Take source content and transform " +
			"it into platform-native content that feels like it was written specifically for each platform.\n\n" +
			"For LinkedIn: Write hooks that stop the scroll. Use line breaks for readability. End with engagement-driving CTAs. " +
			"Mix formats: stories, listicles, insights, hot takes, how-tos.\n\n" +
			"For Twitter: Write punchy threads. First tweet must hook. Each tweet should stand alone but flow together. " +
			"Keep tweets under 280 chars.\n\n" +
			"For Instagram: Write hooks that show before \"more\". Use emojis sparingly. Include hashtags. Think carousel content.\n\n" +
			"For Email: Write like you're talking to a friend. Strong subject lines. Preview text that creates curiosity. Clear CTA.\n\n" +
			"For Blog: SEO-friendly outlines with clear structure.\n\n" +
			"Return valid JSON only."

	case schema.RoleExecutive:
		return baseRules + ctx + "\n\nYou are The Executive. Create a 30-day content calendar that balances consistency with sanity. " +
			"Consider:\n- Platform optimal posting times and days\n- Content variety (don't post similar content back-to-back)\n" +
			"- Sustainable cadence (3-5 LinkedIn/week, daily Twitter, 1-2 emails/week)\n- Strategic sequencing\n\n" +
			"Identify content gaps that need to be filled. Provide strategy notes. Return valid JSON only."

	case schema.RoleStrategist:
		return baseRules + "\n\nYou are The Strategist. Analyze a coach's current situation and create a personalized content strategy. " +
			"Consider their niche, audience, revenue level, current platforms, available time, and goals. Provide platform priorities " +
			"with clear reasoning, content pillars, posting cadence, engagement strategy, quick wins, and actionable recommendations. " +
			"Be specific and actionable. Return valid JSON only."

	case schema.RoleStarter:
		return "You are an expert LinkedIn ghostwriter for executive coaches and high-ticket service providers. " +
			"You write posts that stop the scroll, deliver massive value, and drive engagement.\n\n" +
			"Your posts:\n" +
			"- Have hooks that demand attention (first line is everything)\n" +
			"- Use short paragraphs and line breaks for mobile readability\n" +
			"- Include specific stories, numbers, and examples (not vague advice)\n" +
			"- End with CTAs that drive comments\n" +
			"- Feel personal and authentic, not corporate\n" +
			"- Are 150-300 words (not too long, not too short)\n\n" +
			"Return valid JSON only."

	default:
		return baseRules
	}
}

// userPrompt assembles the role's user prompt from the input.
func userPrompt(role schema.Role, in *Input) string {
	switch role {
	case schema.RoleArchivist:
		return fmt.Sprintf("Analyze this content piece:\n\nTitle: %s\nWord Count: %d\nContent:\n%s\n\n"+
			"Return JSON with: themes, voice_tags, content_type, status, quality_band, key_insights (extractable quotes/insights), notes.",
			in.Piece.Title, in.Piece.WordCount, truncate(in.Piece.Body, archivistBodyLimit))

	case schema.RolePlacement:
		return fmt.Sprintf("Decide platform placement for this content:\n\nTitle: %s\nWord Count: %d\nContent:\n%s\n\n"+
			"Return JSON with: primary_platform, secondary_platforms, content_potential, recommended_formats, reasoning.",
			in.Piece.Title, in.Piece.WordCount, truncate(in.Piece.Body, placementBodyLimit))

	case schema.RoleCompiler:
		var lines []string
		for _, rec := range in.Pieces {
			themes := "unknown"
			if rec.Tags != nil && len(rec.Tags.Themes) > 0 {
				themes = strings.Join(rec.Tags.Themes, ", ")
			}
			lines = append(lines, fmt.Sprintf("- %s (%d words)\n  Themes: %s", rec.Piece.Title, rec.Piece.WordCount, themes))
		}
		return fmt.Sprintf("Analyze these content pieces and identify series opportunities:\n\n%s\n\n"+
			"Return JSON with: content_series (array), standalone_pieces (array of IDs that don't fit series).",
			strings.Join(lines, "\n\n"))

	case schema.RoleRepurposer:
		return fmt.Sprintf("Transform this content into platform-native pieces:\n\nTitle: %s\nContent:\n%s\n\n"+
			"Generate:\n- 5-7 LinkedIn posts (mix of formats: story, listicle, insight, question, hot_take)\n"+
			"- 3-5 Twitter threads (3-15 tweets each)\n- 3-5 Instagram captions with carousel ideas\n"+
			"- 1-2 email newsletter drafts\n- 1 blog post outline\n\n"+
			"Make each piece feel native to its platform. Hooks must stop the scroll. Content must provide real value. "+
			"CTAs must drive engagement.\n\n"+
			"Return JSON with: source_piece_id, linkedin_posts, twitter_threads, instagram_captions, email_drafts, blog_outlines.",
			in.Piece.Title, truncate(in.Piece.Body, repurposerBodyLimit))

	case schema.RoleExecutive:
		var lines []string
		for _, rec := range in.Pieces {
			platform := "unprocessed"
			if rec.Placement != nil {
				platform = string(rec.Placement.PrimaryPlatform)
			}
			lines = append(lines, fmt.Sprintf("- %s: %s", rec.Piece.Title, platform))
		}
		return fmt.Sprintf("Create a 30-day content calendar from these pieces:\n\n%s\n\n"+
			"Consider optimal posting times:\n- LinkedIn: Tue-Thu, 8am/12pm/5pm\n- Twitter: Weekdays, 9am/12pm/3pm/6pm\n"+
			"- Instagram: Mon/Wed/Fri, 11am/2pm/7pm\n- Email: Tue/Thu, 6am/10am\n\n"+
			"Return JSON with: calendar_summary, weekly_calendar, posting_schedule, strategy_notes, content_gaps.",
			strings.Join(lines, "\n"))

	case schema.RoleStrategist:
		si := in.Intake
		var sizes []string
		for _, entry := range []struct {
			name  string
			count int
		}{
			{"linkedin", si.AudienceSize.LinkedIn},
			{"twitter", si.AudienceSize.Twitter},
			{"instagram", si.AudienceSize.Instagram},
			{"email_list", si.AudienceSize.EmailList},
			{"youtube", si.AudienceSize.YouTube},
		} {
			sizes = append(sizes, fmt.Sprintf("  - %s: %d", entry.name, entry.count))
		}
		return fmt.Sprintf("Create a content strategy for this coach:\n\nNiche: %s\nTarget Audience: %s\nCurrent Revenue: %s\n"+
			"Current Platforms: %s\nAudience Size:\n%s\nWeekly Hours for Content: %g\nPrimary Goal: %s\nContent Sources: %s\n\n"+
			"Return JSON with: platform_priority, content_strategy, quick_wins, recommendations.",
			si.CoachingNiche, si.TargetAudience, si.CurrentRevenue,
			strings.Join(si.CurrentPlatforms, ", "), strings.Join(sizes, "\n"),
			si.ContentTimeWeeklyHours, si.PrimaryGoal, strings.Join(si.CurrentContentSources, ", "))

	case schema.RoleStarter:
		req := in.Starter
		var lines []string
		for i, slot := range req.Slots {
			postType := starterPostTypes[(slot.Day-1)%len(starterPostTypes)]
			lines = append(lines, fmt.Sprintf("%d. Day %d: %s %s at %s - Type: %s",
				i+1, slot.Day, slot.DayOfWeek, slot.Date, slot.Time, postType))
		}
		return fmt.Sprintf("Generate %d LinkedIn posts from this source content. Each post should feel unique and native to LinkedIn.\n\n"+
			"SOURCE CONTENT:\n%s\n\n"+
			"Generate posts for these dates:\n%s\n\n"+
			"POST TYPES TO USE:\n"+
			"- story: Personal or client story with lesson\n"+
			"- insight: Contrarian take or non-obvious truth\n"+
			"- listicle: Numbered tips or lessons (3-7 items)\n"+
			"- question: Engagement post that asks a thought-provoking question\n"+
			"- hot_take: Bold opinion that might be controversial\n"+
			"- how_to: Tactical, actionable advice\n\n"+
			"Return a JSON object with a \"posts\" array of exactly %d objects, each with: "+
			"day, date, dayOfWeek, postTime, postType, hook, body, cta, hashtags.",
			len(req.Slots), truncate(req.RawContent, starterBodyLimit), strings.Join(lines, "\n"), len(req.Slots))

	default:
		return ""
	}
}

var starterPostTypes = []string{"story", "insight", "listicle", "question", "hot_take", "how_to"}
