// Package calendar builds the 4-week posting plan. The plan is fully
// deterministic: given the same reference date and piece set it always
// produces the same schedule, so re-runs replace rather than drift.
package calendar

import (
	"fmt"
	"time"

	"github.com/jdelaney/contentpipe-go/internal/models"
)

var linkedinFormats = []string{"Story Post", "Insight Post", "Listicle", "Question Post", "Hot Take"}

var linkedinDescriptions = []string{
	"Share client transformation story - 'Last week, a client asked me...'",
	"Contrarian take on common industry advice",
	"5 things nobody tells you about [topic]",
	"Engagement post: 'Quick audit for leaders...'",
	"Personal lesson learned from coaching",
}

var weekFocuses = []string{
	"Client Stories & Results",
	"Contrarian Takes & Hot Takes",
	"Educational How-Tos",
	"Personal Journey & Lessons",
}

// Build produces the 4-week calendar starting at ref. The first piece ID, if
// any, is attached to every slot as the source reference.
func Build(ref time.Time, pieceIDs []string) *models.CalendarPlan {
	sourceID := ""
	if len(pieceIDs) > 0 {
		sourceID = pieceIDs[0]
	}

	weeks := make([]models.CalendarWeek, 0, 4)
	for week := 1; week <= 4; week++ {
		weekStart := ref.AddDate(0, 0, (week-1)*7)
		weekEnd := weekStart.AddDate(0, 0, 6)

		var posts []models.CalendarSlot
		for dayOffset := 0; dayOffset < 7; dayOffset++ {
			date := weekStart.AddDate(0, 0, dayOffset)
			weekday := date.Weekday()
			dateStr := date.Format("2006-01-02")
			dayName := weekday.String()

			// LinkedIn: Monday, Wednesday, Friday at 9:00 AM EST
			if weekday == time.Monday || weekday == time.Wednesday || weekday == time.Friday {
				idx := (week - 1 + dayOffset) % len(linkedinFormats)
				posts = append(posts, models.CalendarSlot{
					Day:                dayName,
					Date:               dateStr,
					Time:               "9:00 AM EST",
					Platform:           "LinkedIn",
					ContentType:        linkedinFormats[idx],
					ContentDescription: linkedinDescriptions[idx],
					SourcePieceID:      sourceID,
					ContentIndex:       idx,
				})
			}

			// Twitter: weekdays at 12:00 PM EST, threads on Tuesday and Thursday
			if weekday >= time.Monday && weekday <= time.Friday {
				isThread := weekday == time.Tuesday || weekday == time.Thursday
				contentType := "Single Tweet"
				description := "Quick tip or insight from recent content"
				if isThread {
					contentType = "Thread (5-8 tweets)"
					description = "Repurpose LinkedIn insight into thread format"
				}
				posts = append(posts, models.CalendarSlot{
					Day:                dayName,
					Date:               dateStr,
					Time:               "12:00 PM EST",
					Platform:           "Twitter/X",
					ContentType:        contentType,
					ContentDescription: description,
					SourcePieceID:      sourceID,
					ContentIndex:       dayOffset,
				})
			}

			// Email: Tuesday at 7:00 AM EST
			if weekday == time.Tuesday {
				posts = append(posts, models.CalendarSlot{
					Day:                dayName,
					Date:               dateStr,
					Time:               "7:00 AM EST",
					Platform:           "Email",
					ContentType:        "Weekly Newsletter",
					ContentDescription: fmt.Sprintf("Week %d newsletter - Expand on this week's LinkedIn story", week),
					SourcePieceID:      sourceID,
					ContentIndex:       0,
				})
			}

			// Instagram: Wednesday and Saturday at 11:00 AM EST
			if weekday == time.Wednesday || weekday == time.Saturday {
				contentType := "Story + Reel"
				description := "Behind-the-scenes or personal moment"
				if weekday == time.Wednesday {
					contentType = "Carousel Post"
					description = "Educational carousel from LinkedIn content"
				}
				posts = append(posts, models.CalendarSlot{
					Day:                dayName,
					Date:               dateStr,
					Time:               "11:00 AM EST",
					Platform:           "Instagram",
					ContentType:        contentType,
					ContentDescription: description,
					SourcePieceID:      sourceID,
					ContentIndex:       week - 1,
				})
			}
		}

		weeks = append(weeks, models.CalendarWeek{
			WeekNumber: week,
			DateRange:  fmt.Sprintf("%s - %s", formatShort(weekStart), formatShort(weekEnd)),
			Posts:      posts,
			WeekFocus:  weekFocuses[week-1],
		})
	}

	return &models.CalendarPlan{
		CalendarSummary: models.CalendarSummary{
			TotalPosts:     52,
			LinkedInPosts:  12,
			TwitterPosts:   20,
			InstagramPosts: 8,
			Emails:         4,
			BlogPosts:      0,
		},
		WeeklyCalendar: weeks,
		PostingSchedule: models.PostingSchedule{
			LinkedIn:  "Monday, Wednesday, Friday at 9:00 AM EST",
			Twitter:   "Monday-Friday at 12:00 PM EST (Threads on Tue/Thu)",
			Instagram: "Wednesday at 11:00 AM EST (Carousel), Saturday at 11:00 AM EST (Story/Reel)",
			Email:     "Tuesday at 7:00 AM EST",
		},
		StrategyNotes: "This 30-day calendar prioritizes LinkedIn for B2B lead generation. " +
			"Twitter threads repurpose LinkedIn content for broader reach. Weekly email nurtures your list. " +
			"Instagram builds personal brand with lower frequency. All content draws from your uploaded source material.",
		ContentGaps: []string{
			"Need 2-3 more client success stories for social proof",
			"Could use video content for Instagram Reels",
			"Consider adding a monthly blog post for SEO",
		},
	}
}

// formatShort renders "Jan 2" style dates for week ranges.
func formatShort(t time.Time) string {
	return fmt.Sprintf("%s %d", t.Month().String()[:3], t.Day())
}
