package schema

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, raw string) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &m))
	return m
}

func TestRegistryHasAllRoles(t *testing.T) {
	r := NewRegistry()
	for _, role := range Roles() {
		c, err := r.Contract(role)
		require.NoError(t, err)
		assert.Equal(t, role, c.Role)
	}

	_, err := r.Contract(Role("publisher"))
	assert.Error(t, err)
}

func TestArchivistContract(t *testing.T) {
	r := NewRegistry()

	valid := decode(t, `{
		"themes": ["pricing", "positioning"],
		"voice_tags": ["direct"],
		"content_type": "PODCAST_TRANSCRIPT",
		"status": "READY",
		"quality_band": "A",
		"key_insights": ["charge more"],
		"notes": "strong episode"
	}`)
	assert.NoError(t, r.Validate(RoleArchivist, valid))

	t.Run("notes optional", func(t *testing.T) {
		m := decode(t, `{
			"themes": ["pricing", "positioning"],
			"voice_tags": ["direct"],
			"content_type": "WRITTEN_CONTENT",
			"status": "RAW",
			"quality_band": "C",
			"key_insights": ["charge more"]
		}`)
		assert.NoError(t, r.Validate(RoleArchivist, m))
	})

	t.Run("too few themes", func(t *testing.T) {
		m := decode(t, `{
			"themes": ["pricing"],
			"voice_tags": ["direct"],
			"content_type": "WRITTEN_CONTENT",
			"status": "RAW",
			"quality_band": "C",
			"key_insights": ["charge more"]
		}`)
		err := r.Validate(RoleArchivist, m)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "themes")
	})

	t.Run("bad quality band", func(t *testing.T) {
		m := decode(t, `{
			"themes": ["pricing", "positioning"],
			"voice_tags": ["direct"],
			"content_type": "WRITTEN_CONTENT",
			"status": "RAW",
			"quality_band": "D",
			"key_insights": ["charge more"]
		}`)
		err := r.Validate(RoleArchivist, m)
		require.Error(t, err)

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, RoleArchivist, verr.Role)
		require.Len(t, verr.Issues, 1)
		assert.Equal(t, "quality_band", verr.Issues[0].Path)
	})

	t.Run("collects every issue", func(t *testing.T) {
		m := decode(t, `{"themes": ["one"], "quality_band": "D"}`)
		var verr *ValidationError
		require.ErrorAs(t, r.Validate(RoleArchivist, m), &verr)
		assert.GreaterOrEqual(t, len(verr.Issues), 4)
	})
}

func TestRepurposerContract(t *testing.T) {
	r := NewRegistry()

	t.Run("tweet over limit", func(t *testing.T) {
		long := strings.Repeat("x", 281)
		m := decode(t, `{
			"twitter_threads": [{
				"hook_tweet": "hook",
				"tweets": [
					{"text": "one", "position": 1},
					{"text": "`+long+`", "position": 2},
					{"text": "three", "position": 3}
				]
			}]
		}`)
		err := r.Validate(RoleRepurposer, m)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "twitter_threads[0].tweets[1].text")
	})

	t.Run("thread too short", func(t *testing.T) {
		m := decode(t, `{
			"twitter_threads": [{
				"hook_tweet": "hook",
				"tweets": [
					{"text": "one", "position": 1},
					{"text": "two", "position": 2}
				]
			}]
		}`)
		err := r.Validate(RoleRepurposer, m)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "fewer than 3")
	})

	t.Run("empty object passes", func(t *testing.T) {
		// every collection is optional; a piece may yield nothing for a platform
		assert.NoError(t, r.Validate(RoleRepurposer, map[string]any{}))
	})

	t.Run("position must be integer", func(t *testing.T) {
		m := decode(t, `{
			"twitter_threads": [{
				"hook_tweet": "hook",
				"tweets": [
					{"text": "one", "position": 1.5},
					{"text": "two", "position": 2},
					{"text": "three", "position": 3}
				]
			}]
		}`)
		assert.Error(t, r.Validate(RoleRepurposer, m))
	})
}

func TestStrategistContract(t *testing.T) {
	r := NewRegistry()

	m := decode(t, `{
		"platform_priority": [
			{"platform": "linkedin", "priority": 1, "reasoning": "audience lives there", "weekly_target": "3 posts"}
		],
		"content_strategy": {
			"primary_content_type": "educational",
			"content_pillars": ["results", "method", "mindset"],
			"posting_cadence": "daily",
			"engagement_strategy": "reply within an hour"
		},
		"quick_wins": [
			{"action": "update headline", "impact": "high", "effort": "low", "timeframe": "this week"}
		],
		"recommendations": ["batch record"]
	}`)
	assert.NoError(t, r.Validate(RoleStrategist, m))

	t.Run("too few pillars", func(t *testing.T) {
		cs := m["content_strategy"].(map[string]any)
		cs["content_pillars"] = []any{"results", "method"}
		defer func() { cs["content_pillars"] = []any{"results", "method", "mindset"} }()
		err := r.Validate(RoleStrategist, m)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "content_pillars")
	})
}

func TestStarterContract(t *testing.T) {
	r := NewRegistry()

	m := decode(t, `{
		"posts": [{
			"day": 1,
			"date": "2026-01-05",
			"dayOfWeek": "Monday",
			"postTime": "9:00 AM",
			"postType": "story",
			"hook": "I almost quit coaching in 2019.",
			"body": "Here is what changed.",
			"cta": "Follow for more",
			"hashtags": ["coaching"]
		}]
	}`)
	assert.NoError(t, r.Validate(RoleStarter, m))

	t.Run("batch capped at ten", func(t *testing.T) {
		posts := make([]any, 11)
		base := m["posts"].([]any)[0]
		for i := range posts {
			posts[i] = base
		}
		err := r.Validate(RoleStarter, map[string]any{"posts": posts})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "more than 10")
	})
}
