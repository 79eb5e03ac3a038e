package starter

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/jdelaney/contentpipe-go/internal/models"
)

// FormatText renders the deliverable as plain text for copy-paste delivery.
func FormatText(out *models.StarterOutput) string {
	var b strings.Builder

	b.WriteString("=======================================\n")
	b.WriteString("YOUR 30-DAY LINKEDIN CONTENT CALENDAR\n")
	b.WriteString("=======================================\n")
	fmt.Fprintf(&b, "Generated for: %s\n", out.CustomerName)
	fmt.Fprintf(&b, "Created: %s\n\n", formatDate(out.GeneratedAt))

	b.WriteString("POSTING SCHEDULE\n")
	b.WriteString("----------------\n")
	fmt.Fprintf(&b, "Frequency: %s\n", out.PostingSchedule.Frequency)
	fmt.Fprintf(&b, "Best Days: %s\n", strings.Join(out.PostingSchedule.BestDays, ", "))
	fmt.Fprintf(&b, "Best Times: %s\n\n", strings.Join(out.PostingSchedule.BestTimes, ", "))

	b.WriteString("STRATEGY NOTES\n")
	b.WriteString("--------------\n")
	b.WriteString(out.StrategyNotes)
	b.WriteString("\n\n")

	b.WriteString("=======================================\n")
	b.WriteString("YOUR 30 POSTS\n")
	b.WriteString("=======================================\n")

	for _, post := range out.Posts {
		b.WriteString("\n---------------------------------------\n")
		fmt.Fprintf(&b, "DAY %d: %s, %s at %s\n",
			post.Day, strings.ToUpper(post.DayOfWeek), post.Date, post.PostTime)
		fmt.Fprintf(&b, "Type: %s\n", strings.ToUpper(post.PostType))
		b.WriteString("---------------------------------------\n\n")
		b.WriteString(post.Hook)
		b.WriteString("\n\n")
		b.WriteString(post.Body)
		b.WriteString("\n\n")
		b.WriteString(post.CTA)
		b.WriteString("\n\n")
		b.WriteString(hashtagLine(post.Hashtags))
		b.WriteString("\n")
	}

	return b.String()
}

var emailTemplate = template.Must(template.New("starter").Funcs(template.FuncMap{
	"hashtags": hashtagLine,
	"date":     formatDate,
	"join":     func(parts []string) string { return strings.Join(parts, ", ") },
}).Parse(`<h1>Your 30-Day LinkedIn Content Calendar</h1>
<p>Generated for: {{.CustomerName}}</p>
<p>Created: {{date .GeneratedAt}}</p>

<h2>Posting Schedule</h2>
<p><strong>Frequency:</strong> {{.PostingSchedule.Frequency}}</p>
<p><strong>Best Days:</strong> {{join .PostingSchedule.BestDays}}</p>
<p><strong>Best Times:</strong> {{join .PostingSchedule.BestTimes}}</p>

<h2>Strategy Notes</h2>
<p>{{.StrategyNotes}}</p>

<hr>
<h2>Your 30 Posts</h2>
{{range .Posts}}
<div style="border: 1px solid #ddd; padding: 20px; margin: 20px 0; border-radius: 8px;">
  <h3>Day {{.Day}}: {{.DayOfWeek}}, {{.Date}} at {{.PostTime}}</h3>
  <p><strong>Type:</strong> {{.PostType}}</p>
  <div style="background: #f5f5f5; padding: 15px; border-radius: 4px; white-space: pre-wrap; font-family: system-ui;">
<strong>{{.Hook}}</strong>

{{.Body}}

{{.CTA}}

{{hashtags .Hashtags}}
  </div>
</div>
{{end}}
`))

// FormatHTML renders the deliverable as an HTML email body.
func FormatHTML(out *models.StarterOutput) (string, error) {
	var b strings.Builder
	if err := emailTemplate.Execute(&b, out); err != nil {
		return "", err
	}
	return b.String(), nil
}

func hashtagLine(tags []string) string {
	parts := make([]string, 0, len(tags))
	for _, tag := range tags {
		parts = append(parts, "#"+tag)
	}
	return strings.Join(parts, " ")
}

// formatDate renders an RFC3339 timestamp as a plain date, falling back to
// the raw value when it does not parse.
func formatDate(generatedAt string) string {
	t, err := time.Parse(time.RFC3339, generatedAt)
	if err != nil {
		return generatedAt
	}
	return t.Format("January 2, 2006")
}
