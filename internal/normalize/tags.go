package normalize

import (
	"sort"
	"strings"

	"github.com/jonesrussell/gotools/internal/adapters"
	"github.com/jonesrussell/gotools/internal/models"
)

const maxTags = 10

// categoryKeywords infers category tags from a tool's name and description.
var categoryKeywords = map[string][]string{
	"writing":          {"writing", "content", "text", "blog", "copy", "editor", "grammar"},
	"image-generation": {"image", "photo", "picture", "visual", "art", "graphic"},
	"video":            {"video", "animation", "motion", "film", "movie"},
	"development":      {"code", "programming", "development", "software", "api"},
	"data":             {"data", "analytics", "analysis", "dashboard", "visualization"},
	"marketing":        {"marketing", "seo", "social", "campaign", "ads"},
	"audio":            {"audio", "music", "voice", "sound", "speech", "podcast"},
	"design":           {"design", "ui", "ux", "interface", "prototype"},
	"productivity":     {"productivity", "task", "project", "management"},
	"research":         {"research", "learning", "education", "study"},
}

// ExtractTags combines the adapter-provided tags with category keywords
// inferred from the name and description. Values are deduplicated
// case-insensitively, sorted, and capped.
func ExtractTags(rawTags, name, description string) models.StringArray {
	seen := make(map[string]struct{})
	var tags []string

	add := func(tag string) {
		tag = strings.TrimSpace(strings.ToLower(tag))
		if tag == "" {
			return
		}
		if _, dup := seen[tag]; dup {
			return
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}

	for _, tag := range strings.Split(rawTags, adapters.TagSeparator) {
		add(tag)
	}

	text := strings.ToLower(name + " " + description + " " + rawTags)
	for category, keywords := range categoryKeywords {
		for _, keyword := range keywords {
			if strings.Contains(text, keyword) {
				add(category)
				break
			}
		}
	}

	if _, hasAI := seen["ai"]; !hasAI {
		if _, hasLong := seen["artificial-intelligence"]; !hasLong {
			add("ai")
		}
	}

	sort.Strings(tags)
	if len(tags) > maxTags {
		tags = tags[:maxTags]
	}
	return tags
}
