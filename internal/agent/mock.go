package agent

import (
	"fmt"
	"strings"

	"github.com/jdelaney/contentpipe-go/internal/calendar"
	"github.com/jdelaney/contentpipe-go/internal/models"
	"github.com/jdelaney/contentpipe-go/internal/schema"
)

// Mock produces a deterministic output for a role without calling a model.
// It backs the mock provider mode and the fallback path when a model returns
// output that fails contract validation.
func Mock(role schema.Role, in *Input) (*Output, error) {
	out := &Output{Role: role}

	switch role {
	case schema.RoleArchivist:
		out.Tags = mockArchivist(in.Piece)
	case schema.RolePlacement:
		out.Placement = mockPlacement(in.Piece)
	case schema.RoleRepurposer:
		out.Bundle = mockRepurposer(in.Piece)
	case schema.RoleCompiler:
		out.Compilation = mockCompiler(in.Pieces)
	case schema.RoleExecutive:
		ids := make([]string, 0, len(in.Pieces))
		for _, rec := range in.Pieces {
			ids = append(ids, rec.Piece.ID)
		}
		out.Calendar = calendar.Build(in.ReferenceDate, ids)
	case schema.RoleStrategist:
		out.Strategy = mockStrategist(in.Intake)
	case schema.RoleStarter:
		out.StarterPosts = mockStarterBatch(in.Starter)
	default:
		return nil, fmt.Errorf("no mock for role %q", role)
	}

	return out, nil
}

func mockArchivist(piece *models.Piece) *models.ArchivistTags {
	title := strings.ToLower(piece.Title)
	isTranscript := strings.Contains(title, "transcript") ||
		strings.Contains(title, "podcast") ||
		strings.Contains(title, "episode")

	contentType := models.ContentWritten
	if isTranscript {
		contentType = models.ContentPodcastTranscript
	}

	status := models.StatusRaw
	if piece.WordCount > 500 {
		status = models.StatusReady
	}

	band := models.BandC
	switch {
	case piece.WordCount > 2000:
		band = models.BandA
	case piece.WordCount > 800:
		band = models.BandB
	}

	detail := "Written content ready for distribution."
	if isTranscript {
		detail = "Transcript with good repurposing potential."
	}
	material := "moderate"
	if piece.WordCount > 2000 {
		material = "extensive"
	}

	return &models.ArchivistTags{
		PieceID:     piece.ID,
		Themes:      []string{"leadership", "mindset", "business growth", "client results"},
		VoiceTags:   []string{"authoritative", "conversational", "practical"},
		ContentType: contentType,
		Status:      status,
		QualityBand: band,
		KeyInsights: []string{
			"Key insight about leadership extracted from content",
			"Actionable tip about business growth",
			"Memorable quote or story",
		},
		Notes: fmt.Sprintf("%d-word piece. %s Contains %s material for repurposing.", piece.WordCount, detail, material),
	}
}

func mockPlacement(piece *models.Piece) *models.Placement {
	potential := models.PotentialLow
	switch {
	case piece.WordCount > 2000:
		potential = models.PotentialHigh
	case piece.WordCount > 800:
		potential = models.PotentialMedium
	}

	return &models.Placement{
		PieceID:            piece.ID,
		PrimaryPlatform:    models.PlatformLinkedIn,
		SecondaryPlatforms: []models.Platform{models.PlatformTwitter, models.PlatformEmail},
		ContentPotential:   potential,
		RecommendedFormats: []string{
			"LinkedIn story post",
			"Twitter thread",
			"Email newsletter excerpt",
			"Instagram carousel",
		},
		Reasoning: fmt.Sprintf("%d-word piece with strong insights. Best suited for LinkedIn thought leadership, "+
			"with repurposing potential across Twitter and email.", piece.WordCount),
	}
}

func mockCompiler(records []PieceRecord) *models.CompilerOutput {
	ids := make([]string, 0, len(records))
	for _, rec := range records {
		ids = append(ids, rec.Piece.ID)
	}

	if len(records) < 2 {
		return &models.CompilerOutput{
			ContentSeries:    []models.ContentSeries{},
			StandalonePieces: ids,
		}
	}

	seriesIDs := ids
	if len(seriesIDs) > 3 {
		seriesIDs = seriesIDs[:3]
	}
	standalone := []string{}
	if len(ids) > 3 {
		standalone = ids[3:]
	}

	return &models.CompilerOutput{
		ContentSeries: []models.ContentSeries{
			{
				Title:               "Leadership Insights Series",
				Description:         "A curated series on leadership principles extracted from coaching sessions and content.",
				Theme:               "leadership",
				IncludedPieceIDs:    seriesIDs,
				RecommendedSequence: seriesIDs,
				SeriesType:          models.SeriesEmailSequence,
				EstimatedPieces:     5,
				Gaps:                []string{"Introduction piece", "Conclusion with CTA"},
			},
		},
		StandalonePieces: standalone,
	}
}

func mockRepurposer(piece *models.Piece) *models.RepurposeBundle {
	return &models.RepurposeBundle{
		SourcePieceID: piece.ID,
		LinkedInPosts: []models.LinkedInPost{
			{
				Format: "story",
				Hook:   "Last week, a client asked me something that stopped me in my tracks...",
				Body: "They said: 'How do I know if I'm actually making progress?'\n\nHere's what I told them:\n\n" +
					"Progress isn't always visible. Sometimes the biggest growth happens in the moments that feel the most stuck.\n\n" +
					"The question isn't 'Am I moving fast enough?'\n\nIt's 'Am I moving in the right direction?'\n\n" +
					"3 signs you're on the right track (even when it doesn't feel like it):\n\n" +
					"1. You're asking better questions than you were 6 months ago\n" +
					"2. The problems you're solving have gotten bigger\n" +
					"3. You're uncomfortable in new ways, not the same old ways",
				CTA:      "What's one sign of progress you've noticed in yourself lately?",
				Hashtags: []string{"leadership", "coaching", "growth"},
			},
			{
				Format: "listicle",
				Hook:   "5 things nobody tells you about scaling past $500k:",
				Body: "1. Your calendar becomes your biggest liability\n" +
					"2. The skills that got you here won't get you there\n" +
					"3. Delegation isn't about tasks, it's about decisions\n" +
					"4. Your identity has to evolve faster than your revenue\n" +
					"5. The loneliness is real, but it's not permanent\n\n" +
					"I learned #3 the hard way.\n\n" +
					"For years, I delegated tasks but hoarded decisions. I thought I was being a 'good leader' by staying involved.\n\n" +
					"What I was actually doing: creating a bottleneck and burning out my team.\n\n" +
					"The shift? Start delegating decisions, not just tasks.",
				CTA:      "Which of these hit home for you?",
				Hashtags: []string{"entrepreneurship", "scale", "leadership"},
			},
			{
				Format: "insight",
				Hook:   "The difference between a $100k coach and a $1M coach isn't what they know.",
				Body: "It's what they're willing to stop doing.\n\n" +
					"$100k coaches: Add more. More offers. More content. More hustle.\n\n" +
					"$1M coaches: Subtract ruthlessly. Fewer clients. Higher prices. Deeper work.\n\n" +
					"The math is simple:\n- 100 clients at $1k = $100k\n- 20 clients at $50k = $1M\n\n" +
					"But the mindset shift is hard.\n\n" +
					"Because saying no to $1k clients when you need money feels terrifying.\n\n" +
					"Until you realize: every $1k client you take is a $50k client you can't serve.",
				CTA:      "What do you need to stop doing?",
				Hashtags: []string{"coaching", "business", "pricing"},
			},
		},
		TwitterThreads: []models.TwitterThread{
			{
				HookTweet: "The biggest lie in the coaching industry:\n\n'Just add more value and the money will follow.'\n\nHere's the truth nobody wants to hear",
				Tweets: []models.Tweet{
					{Text: "The biggest lie in the coaching industry:\n\n'Just add more value and the money will follow.'\n\nHere's the truth nobody wants to hear", Position: 1},
					{Text: "Value without positioning is just volunteering.\n\nI see coaches pouring their hearts out, giving away their best stuff, wondering why they're broke.\n\nThe issue isn't the value. It's that nobody knows why YOUR value is different.", Position: 2},
					{Text: "Here's what actually works:\n\n1. Pick a specific person with a specific problem\n2. Create a specific outcome you can deliver\n3. Price it based on the outcome, not your time\n4. Say no to everyone else", Position: 3},
					{Text: "The coaches making $1M+ aren't 10x better than you.\n\nThey're 10x more specific.\n\nThey've made decisions you're still avoiding.", Position: 4},
					{Text: "Your homework:\n\nWrite down the ONE person you help best.\nWrite down the ONE outcome you deliver.\nDouble your price.\n\nWatch what happens.", Position: 5},
				},
			},
		},
		InstagramCaptions: []models.InstagramCaption{
			{
				Hook: "The question that changed everything for my clients",
				Caption: "The question that changed everything for my clients\n\n" +
					"\"What would you do if you weren't afraid of being seen as selfish?\"\n\n" +
					"Most coaches I work with aren't stuck because they don't know what to do.\n\n" +
					"They're stuck because they're afraid of what people will think.\n\n" +
					"- Afraid to charge more\n- Afraid to say no\n- Afraid to put themselves first\n\n" +
					"But here's the thing:\n\nThe best thing you can do for your clients is take care of yourself first.\n\n" +
					"You can't pour from an empty cup.\n\nAnd you can't lead others where you haven't gone yourself.\n\n" +
					"So I'll ask you:\n\nWhat would you do if you weren't afraid of being seen as selfish?\n\nDrop your answer below",
				Hashtags: []string{"coaching", "leadership", "mindset", "selfcare", "entrepreneur", "businesscoach", "executivecoach"},
				CarouselSlides: []string{
					"The question that changed everything",
					"\"What would you do if you weren't afraid of being seen as selfish?\"",
					"Most coaches aren't stuck because they don't know what to do",
					"They're stuck because they're afraid of what people will think",
					"The best thing you can do for your clients is take care of yourself first",
				},
			},
		},
		EmailDrafts: []models.EmailDraft{
			{
				SubjectLine: "The question nobody wants to answer",
				PreviewText: "It changed everything for my clients...",
				Body: "Hey there,\n\nLast week I asked a client a question that made them go silent for a full minute.\n\n" +
					"\"What would you do if you weren't afraid of being seen as selfish?\"\n\n" +
					"The silence was loud.\n\nBecause the answer was obvious. They knew exactly what they'd do:\n\n" +
					"- Raise their prices\n- Stop taking calls on weekends\n- Say no to the client who drains them\n" +
					"- Take that vacation they've been putting off\n\n" +
					"But they hadn't done any of it.\n\nWhy?\n\n" +
					"Because somewhere along the way, they learned that putting yourself first is selfish. And selfish is bad.\n\n" +
					"But here's what I've learned after coaching hundreds of high-performers:\n\n" +
					"The most generous thing you can do is take care of yourself first.\n\n" +
					"You can't pour from an empty cup.\nYou can't lead where you haven't gone.\nYou can't give what you don't have.\n\n" +
					"So this week, I want you to try something:\n\nDo one \"selfish\" thing. Just one.\n\nAnd notice what happens.\n\n" +
					"Talk soon,\n[Name]",
				CTA: "Hit reply and tell me what you chose",
			},
		},
		BlogOutlines: []models.BlogOutline{
			{
				Title: "The Selfish Question: Why Self-Care Isn't Selfish for Coaches",
				MetaDescription: "Discover why the most successful coaches prioritize themselves first, " +
					"and how one powerful question can unlock your next level of growth.",
				Sections: []models.BlogSection{
					{
						Heading: "The Question That Changes Everything",
						KeyPoints: []string{
							"Story of client going silent",
							"The question: What would you do if you weren't afraid of being seen as selfish?",
							"Why this hits so hard for high-achievers",
						},
					},
					{
						Heading: "The Selfish Paradox",
						KeyPoints: []string{
							"Cultural conditioning around selfishness",
							"Why coaches especially struggle with this",
							"The empty cup metaphor (with a twist)",
						},
					},
					{
						Heading: "What 'Selfish' Looks Like in Practice",
						KeyPoints: []string{
							"Raising prices",
							"Setting boundaries",
							"Saying no to draining clients",
							"Taking real time off",
						},
					},
					{
						Heading: "The Permission Slip You Need",
						KeyPoints: []string{
							"Reframing selfish as generous",
							"How self-care benefits your clients",
							"Practical first step",
						},
					},
				},
				EstimatedWordCount: 1500,
			},
		},
	}
}

func mockStrategist(intake *models.StrategistIntake) *models.StrategistOutput {
	niche := strings.ToLower(intake.CoachingNiche)
	audience := strings.ToLower(intake.TargetAudience)
	isB2B := strings.Contains(niche, "executive") ||
		strings.Contains(niche, "leadership") ||
		strings.Contains(niche, "business") ||
		strings.Contains(audience, "ceo") ||
		strings.Contains(audience, "executive")

	linkedinReason := "Strong platform for establishing credibility. Decision-makers research coaches here before buying."
	if isB2B {
		linkedinReason = "Primary platform for B2B coaching. C-suite executives are most active here. " +
			"Your niche aligns perfectly with LinkedIn's professional audience."
	}

	return &models.StrategistOutput{
		PlatformPriority: []models.PlatformPriority{
			{
				Platform:     "LinkedIn",
				Priority:     1,
				Reasoning:    linkedinReason,
				WeeklyTarget: "3x per week",
			},
			{
				Platform:     "Email",
				Priority:     2,
				Reasoning:    "Your only owned audience. Highest conversion rate of any channel. LinkedIn followers should become email subscribers.",
				WeeklyTarget: "1x per week",
			},
			{
				Platform:     "Twitter/X",
				Priority:     3,
				Reasoning:    "Excellent for building authority and network. Threads perform well. Repurpose LinkedIn content into bite-sized insights.",
				WeeklyTarget: "5x per week (daily on weekdays)",
			},
			{
				Platform:     "Instagram",
				Priority:     4,
				Reasoning:    "Lower priority for B2B but useful for personal brand building and behind-the-scenes content.",
				WeeklyTarget: "2-3x per week",
			},
		},
		ContentStrategy: models.ContentStrategy{
			PrimaryContentType: "Thought leadership posts with actionable frameworks and client stories",
			ContentPillars: []string{
				"Client transformation stories (social proof)",
				"Contrarian industry takes (thought leadership)",
				"Tactical how-tos (value delivery)",
				"Personal journey & lessons (relatability)",
				"Quick wins & frameworks (shareability)",
			},
			PostingCadence: "LinkedIn 3x/week (Mon/Wed/Fri 9am EST), Twitter 5x/week (12pm EST), " +
				"Email Tuesdays (7am EST), Instagram 2x/week",
			EngagementStrategy: "Spend 15-20 min after each LinkedIn post responding to comments. " +
				"Comment on 5-10 posts from ideal clients daily. Use Twitter for networking and conversations. " +
				"Build relationships before pitching.",
		},
		QuickWins: []models.QuickWin{
			{
				Action:    "Turn your best podcast episode into 5 LinkedIn posts + 2 Twitter threads + 1 email",
				Impact:    models.LevelHigh,
				Effort:    models.LevelLow,
				Timeframe: "This week",
			},
			{
				Action:    "Update LinkedIn headline with clear outcome: 'I help [audience] achieve [result]'",
				Impact:    models.LevelHigh,
				Effort:    models.LevelLow,
				Timeframe: "Today",
			},
			{
				Action:    "Create a simple lead magnet PDF from your best content",
				Impact:    models.LevelHigh,
				Effort:    models.LevelMedium,
				Timeframe: "Next 2 weeks",
			},
			{
				Action:    "Set up a content calendar in Notion or Airtable",
				Impact:    models.LevelMedium,
				Effort:    models.LevelLow,
				Timeframe: "This week",
			},
			{
				Action:    "Block 2 hours every Monday for content batching",
				Impact:    models.LevelHigh,
				Effort:    models.LevelLow,
				Timeframe: "Starting next Monday",
			},
		},
		Recommendations: []string{
			"Your existing content (podcast/workshops) is an untapped goldmine. One episode = 20+ pieces of content.",
			"Focus on LinkedIn for 90 days before expanding significantly to other platforms.",
			"Build email list aggressively, it's the only audience you truly own. Add lead magnet to LinkedIn.",
			"Document every client win. Social proof drives conversions more than anything else.",
			"Batch content creation: One 2-hour session can create a full month of content.",
		},
	}
}

// starterTemplates holds one post body per rotation type.
var starterTemplates = map[string]models.StarterPost{
	"story": {
		Hook: "Last week, a client told me something that stopped me in my tracks.",
		Body: "They said: \"I finally understand why I've been stuck.\"\n\n" +
			"After years of grinding, hustling, and pushing harder...\n\n" +
			"They realized the problem wasn't effort.\n\nIt was direction.\n\nHere's what changed:\n\n" +
			"-> They stopped chasing every opportunity\n-> They started saying no to good things\n-> They focused on ONE needle-mover\n\n" +
			"Within 90 days, their revenue doubled.\n\nNot because they worked more.\n\nBecause they worked right.\n\n" +
			"The lesson?\n\nSometimes the fastest path forward is fewer paths, not more.",
		CTA:      "What's one thing you need to stop doing to move forward?",
		Hashtags: []string{"leadership", "coaching", "growth", "mindset"},
	},
	"insight": {
		Hook: "Unpopular opinion: Most coaches are overworking and underearning.",
		Body: "And it's not because they lack skills.\n\nIt's because they're playing the wrong game.\n\nHere's what I mean:\n\n" +
			"- They compete on hours instead of outcomes\n- They price based on time instead of transformation\n" +
			"- They chase clients instead of attracting them\n\n" +
			"The shift that changes everything?\n\nStop selling your time.\nStart selling the result.\n\n" +
			"A client doesn't pay for 6 coaching calls.\nThey pay for the confidence to make their first $100k.\n\n" +
			"That's a completely different value proposition.",
		CTA:      "Are you selling time or transformation?",
		Hashtags: []string{"coaching", "business", "pricing", "value"},
	},
	"listicle": {
		Hook: "5 things I'd tell my younger self about building a coaching business:",
		Body: "1. Your first 10 clients teach you more than any certification\n\n" +
			"2. Niching down feels scary but it's the fastest path to premium pricing\n\n" +
			"3. Content is compounding - start before you're ready\n\n" +
			"4. Your network is your net worth (cliche but true)\n\n" +
			"5. The best marketing is being undeniably good at what you do\n\n" +
			"I learned #2 the hard way.\n\nSpent 2 years as a \"life coach for everyone.\"\n\nMade $40k.\n\n" +
			"Niched to executive coaches.\n\nMade $400k the next year.\n\nSame skills. Different positioning.",
		CTA:      "Which of these would you add to?",
		Hashtags: []string{"coaching", "entrepreneurship", "lessons", "growth"},
	},
	"question": {
		Hook: "Quick audit for coaches:",
		Body: "Answer honestly:\n\n-> Do you have a waitlist or are you chasing clients?\n" +
			"-> Can you explain your transformation in one sentence?\n-> Do you know exactly who your dream client is?\n" +
			"-> Have you raised your prices in the last 12 months?\n-> Is 80% of your revenue from repeat clients or referrals?\n\n" +
			"If you answered \"no\" to 3 or more...\n\nYou don't have a skills problem.\n\nYou have a positioning problem.\n\n" +
			"And that's actually great news.\n\nBecause positioning can be fixed in a week.\nSkills take years.",
		CTA:      "How many did you answer 'yes' to?",
		Hashtags: []string{"coaching", "business", "positioning", "audit"},
	},
	"hot_take": {
		Hook: "Controversial take: Certifications are the biggest scam in coaching.",
		Body: "Before you come for me, hear me out.\n\nCertifications aren't useless.\n\nBut they're wildly overvalued.\n\n" +
			"I've seen coaches with $50k in certifications making $30k/year.\n\nAnd coaches with zero certifications making $500k.\n\n" +
			"The difference?\n\n- One invested in credentials\n- One invested in clients\n\n" +
			"Clients don't hire certificates.\nThey hire confidence, clarity, and proof.\n\n" +
			"The best credential is a track record of results.\n\nEverything else is resume padding.",
		CTA:      "Agree or disagree? I want to hear it.",
		Hashtags: []string{"coaching", "hottake", "certifications", "results"},
	},
	"how_to": {
		Hook: "How to create a month of content in 2 hours:",
		Body: "Step 1: Record yourself answering your top 10 client questions (voice memo = fine)\n\n" +
			"Step 2: Transcribe with AI (free tools everywhere)\n\n" +
			"Step 3: Turn each answer into:\n-> 1 LinkedIn post\n-> 1 email newsletter\n-> 3 tweet variations\n\n" +
			"Step 4: Schedule everything on Monday morning\n\n" +
			"Step 5: Spend the rest of the month engaging, not creating\n\n" +
			"That's it.\n\nNo fancy equipment.\nNo video editing.\nNo content calendar template.\n\n" +
			"Just your expertise, packaged efficiently.",
		CTA:      "What's your biggest content creation struggle?",
		Hashtags: []string{"contentcreation", "productivity", "coaching", "marketing"},
	},
}

// mockStarterBatch fills each slot with a template post, rotating post types
// by slot day so re-generation of any batch yields the same sequence.
func mockStarterBatch(req *StarterRequest) []models.StarterPost {
	posts := make([]models.StarterPost, 0, len(req.Slots))
	for _, slot := range req.Slots {
		postType := starterPostTypes[(slot.Day-1)%len(starterPostTypes)]
		post := starterTemplates[postType]
		post.Day = slot.Day
		post.Date = slot.Date
		post.DayOfWeek = slot.DayOfWeek
		post.PostTime = slot.Time
		post.PostType = postType
		posts = append(posts, post)
	}
	return posts
}
