package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Monday 2026-01-05
var refMonday = time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

func TestBuildIsDeterministic(t *testing.T) {
	a := Build(refMonday, []string{"piece-1"})
	b := Build(refMonday, []string{"piece-1"})
	assert.Equal(t, a, b)
}

func TestBuildFourWeeks(t *testing.T) {
	plan := Build(refMonday, []string{"piece-1", "piece-2"})

	require.Len(t, plan.WeeklyCalendar, 4)
	assert.Equal(t, "Jan 5 - Jan 11", plan.WeeklyCalendar[0].DateRange)
	assert.Equal(t, "Jan 12 - Jan 18", plan.WeeklyCalendar[1].DateRange)
	assert.Equal(t, "Client Stories & Results", plan.WeeklyCalendar[0].WeekFocus)
	assert.Equal(t, "Personal Journey & Lessons", plan.WeeklyCalendar[3].WeekFocus)

	// 3 LinkedIn + 5 Twitter + 1 Email + 2 Instagram per full week
	for _, week := range plan.WeeklyCalendar {
		assert.Len(t, week.Posts, 11, "week %d", week.WeekNumber)
	}

	// every slot points at the first piece
	for _, week := range plan.WeeklyCalendar {
		for _, post := range week.Posts {
			assert.Equal(t, "piece-1", post.SourcePieceID)
		}
	}
}

func TestBuildSlotCadence(t *testing.T) {
	plan := Build(refMonday, nil)

	counts := map[string]int{}
	threads := 0
	for _, week := range plan.WeeklyCalendar {
		for _, post := range week.Posts {
			counts[post.Platform]++
			if post.Platform == "Twitter/X" && post.ContentType == "Thread (5-8 tweets)" {
				threads++
			}
			switch post.Platform {
			case "LinkedIn":
				assert.Equal(t, "9:00 AM EST", post.Time)
			case "Twitter/X":
				assert.Equal(t, "12:00 PM EST", post.Time)
			case "Email":
				assert.Equal(t, "7:00 AM EST", post.Time)
			case "Instagram":
				assert.Equal(t, "11:00 AM EST", post.Time)
			}
		}
	}

	assert.Equal(t, 12, counts["LinkedIn"])
	assert.Equal(t, 20, counts["Twitter/X"])
	assert.Equal(t, 8, counts["Instagram"])
	assert.Equal(t, 4, counts["Email"])
	assert.Equal(t, 8, threads, "threads run Tuesday and Thursday")

	assert.Equal(t, 52, plan.CalendarSummary.TotalPosts)
	assert.Empty(t, plan.WeeklyCalendar[0].Posts[0].SourcePieceID)
}

func TestBuildEmailAlwaysTuesday(t *testing.T) {
	// Thursday reference; weeks do not start on Monday
	ref := time.Date(2026, 1, 8, 0, 0, 0, 0, time.UTC)
	plan := Build(ref, nil)

	emails := 0
	for _, week := range plan.WeeklyCalendar {
		for _, post := range week.Posts {
			if post.Platform == "Email" {
				emails++
				assert.Equal(t, "Tuesday", post.Day)
				date, err := time.Parse("2006-01-02", post.Date)
				require.NoError(t, err)
				assert.Equal(t, time.Tuesday, date.Weekday())
			}
		}
	}
	assert.Equal(t, 4, emails)
}

func TestLinkedInFormatRotation(t *testing.T) {
	plan := Build(refMonday, nil)

	// week 1 starts Monday: offsets 0 (Mon), 2 (Wed), 4 (Fri)
	week1 := plan.WeeklyCalendar[0]
	var linkedin []string
	for _, post := range week1.Posts {
		if post.Platform == "LinkedIn" {
			linkedin = append(linkedin, post.ContentType)
		}
	}
	require.Len(t, linkedin, 3)
	assert.Equal(t, []string{"Story Post", "Listicle", "Hot Take"}, linkedin)
}
