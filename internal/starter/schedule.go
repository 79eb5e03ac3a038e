// Package starter generates the 30-post LinkedIn content-starter deliverable.
package starter

import (
	"time"

	"github.com/jdelaney/contentpipe-go/internal/models"
)

// TotalPosts is the fixed size of the starter set.
const TotalPosts = 30

// batchSize is how many posts one generation call produces.
const batchSize = 10

// bestTimes are the LinkedIn posting times rotated across the schedule.
var bestTimes = []string{"9:00 AM", "10:00 AM", "12:00 PM"}

// Schedule lays out 30 weekday posting slots starting the day after ref.
// Weekends are skipped; times rotate through the best posting windows.
func Schedule(ref time.Time) []models.StarterSlot {
	slots := make([]models.StarterSlot, 0, TotalPosts)

	dayCounter := 1
	for len(slots) < TotalPosts {
		date := ref.AddDate(0, 0, dayCounter)
		weekday := date.Weekday()

		if weekday >= time.Monday && weekday <= time.Friday {
			slots = append(slots, models.StarterSlot{
				Day:       len(slots) + 1,
				Date:      date.Format("2006-01-02"),
				DayOfWeek: weekday.String(),
				Time:      bestTimes[len(slots)%len(bestTimes)],
			})
		}

		dayCounter++
		if dayCounter > 60 {
			break
		}
	}

	return slots
}
