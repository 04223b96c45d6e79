package normalize

import (
	"strconv"
	"strings"

	"github.com/jonesrussell/gotools/internal/adapters"
	"github.com/jonesrussell/gotools/internal/models"
)

const maxFeatures = 10

// featureKeywords are capability indicators extracted from descriptions.
var featureKeywords = []string{
	"api",
	"automation",
	"real-time",
	"collaboration",
	"integration",
	"templates",
	"customization",
	"analytics",
	"export",
	"import",
	"cloud",
	"mobile",
	"desktop",
	"ai-powered",
	"machine learning",
	"natural language",
	"image processing",
	"text generation",
}

// ExtractFeatures extracts capability features from the description plus
// engagement signals the adapter surfaced (ratings, reviews, upvotes).
// Values are deduplicated case-insensitively.
func ExtractFeatures(description string, rec adapters.RawRecord) models.StringArray {
	seen := make(map[string]struct{})
	var features []string

	add := func(f string) {
		key := strings.ToLower(f)
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		features = append(features, f)
	}

	text := strings.ToLower(description)
	for _, keyword := range featureKeywords {
		if strings.Contains(text, keyword) {
			add(titleCase(strings.ReplaceAll(keyword, "-", " ")))
		}
	}

	if rating, ok := parseFloat(rec.Get(adapters.FieldRating)); ok && rating >= 4.5 {
		add("highly-rated")
	}
	if rec.Get(adapters.FieldComments) != "" {
		add("user-reviewed")
	}
	if upvotes, ok := parseCount(rec.Get(adapters.FieldUpvotes)); ok {
		switch {
		case upvotes > 500:
			add("highly-popular")
		case upvotes > 100:
			add("popular")
		}
	}

	if len(features) > maxFeatures {
		features = features[:maxFeatures]
	}
	return features
}

// Quality score weights. The score grows monotonically with record
// completeness and is always clamped into [1,10].
const (
	qualityBase          = 3
	qualityDescription   = 2
	qualityWebsite       = 2
	qualityPricing       = 1
	qualityFeaturesCap   = 2
	qualityRatingStrong  = 2
	qualityRatingGood    = 1
	qualityUpvotesStrong = 2
	qualityUpvotesGood   = 1
)

// QualityScore computes the completeness heuristic for a normalized record.
func QualityScore(description, websiteURL, pricingType string, features []string, rec adapters.RawRecord) int {
	score := qualityBase

	if description != "" {
		score += qualityDescription
	}
	if websiteURL != "" {
		score += qualityWebsite
	}
	if pricingType != models.PricingNone {
		score += qualityPricing
	}
	if n := len(features); n < qualityFeaturesCap {
		score += n
	} else {
		score += qualityFeaturesCap
	}

	if rating, ok := parseFloat(rec.Get(adapters.FieldRating)); ok {
		switch {
		case rating >= 4.5:
			score += qualityRatingStrong
		case rating >= 4.0:
			score += qualityRatingGood
		}
	}
	if upvotes, ok := parseCount(rec.Get(adapters.FieldUpvotes)); ok {
		switch {
		case upvotes > 1000:
			score += qualityUpvotesStrong
		case upvotes > 500:
			score += qualityUpvotesGood
		}
	}

	return clamp(score, models.QualityScoreMin, models.QualityScoreMax)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func parseFloat(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	return f, err == nil
}

// parseCount parses integers that may carry thousand separators ("1,500").
func parseCount(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	s = strings.ReplaceAll(s, ",", "")
	n, err := strconv.Atoi(s)
	return n, err == nil
}

// titleCase uppercases the first letter of each ASCII word.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
