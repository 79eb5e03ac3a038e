// Package parser extracts titles and metadata from raw content uploads.
package parser

import (
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Document is a parsed content upload. Frontmatter is optional; most pastes
// are plain text with no metadata at all.
type Document struct {
	// Frontmatter metadata (from YAML)
	Frontmatter map[string]any

	// Title extracted from frontmatter, first h1, or a title-like first line
	Title string

	// Body content after frontmatter
	Body string
}

var (
	h1Regex      = regexp.MustCompile(`(?m)^#\s+(.+)$`)
	headingMarks = regexp.MustCompile(`^#+\s*`)
)

// Parse splits optional YAML frontmatter from the body and extracts a title.
func Parse(content string) *Document {
	doc := &Document{
		Frontmatter: make(map[string]any),
	}

	remaining := content
	if strings.HasPrefix(content, "---\n") {
		endIdx := strings.Index(content[4:], "\n---")
		if endIdx > 0 {
			frontmatterYAML := content[4 : 4+endIdx]
			remaining = strings.TrimPrefix(content[4+endIdx+4:], "\n")

			if err := yaml.Unmarshal([]byte(frontmatterYAML), &doc.Frontmatter); err != nil {
				// Ignore YAML errors, just use empty frontmatter
				doc.Frontmatter = make(map[string]any)
			}
		}
	}

	doc.Body = remaining
	doc.Title = extractTitle(doc.Frontmatter, remaining)
	return doc
}

// extractTitle gets the title from frontmatter, the first h1, or a short
// title-like first line.
func extractTitle(fm map[string]any, content string) string {
	if title, ok := fm["title"].(string); ok && title != "" {
		return title
	}
	if name, ok := fm["name"].(string); ok && name != "" {
		return name
	}

	if match := h1Regex.FindStringSubmatch(content); len(match) > 1 {
		return strings.TrimSpace(match[1])
	}

	// A short first line usually is the title the author intended
	firstLine := strings.TrimSpace(strings.SplitN(content, "\n", 2)[0])
	if len(firstLine) > 3 && len(firstLine) < 100 {
		return headingMarks.ReplaceAllString(firstLine, "")
	}

	return ""
}

// CountWords counts whitespace-separated words.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// GetFrontmatterString extracts a string from frontmatter.
func (d *Document) GetFrontmatterString(key string) string {
	if v, ok := d.Frontmatter[key].(string); ok {
		return v
	}
	return ""
}

// GetFrontmatterStringSlice extracts a string slice from frontmatter.
func (d *Document) GetFrontmatterStringSlice(key string) []string {
	switch v := d.Frontmatter[key].(type) {
	case []any:
		result := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				result = append(result, s)
			}
		}
		return result
	case []string:
		return v
	}
	return nil
}
