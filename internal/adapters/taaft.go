package adapters

import "strings"

// TAAFTSource is the canonical source name for theresanaiforthat.com.
const TAAFTSource = "theresanaiforthat.com"

var taaftColumns = []string{
	"ai_link",
	"task_label",
	"external_ai_link href",
	"visit_ai_website_link href",
	"taaft_icon src",
	"ai_launch_date",
	"stats_views",
	"saves",
	"average_rating",
	"comment_body",
}

// NewTAAFT returns the adapter for theresanaiforthat.com scrape exports.
// The export's "ai_launch_date" column actually carries pricing text
// ("Free + from $20/mo"); the mapping accounts for that quirk.
func NewTAAFT() *CSVAdapter {
	return &CSVAdapter{
		source:       TAAFTSource,
		expected:     taaftColumns,
		required:     []string{"ai_link"},
		sampleHeader: taaftColumns,
		sampleRow: []string{
			"ChatGPT", "Writing", "https://openai.com/chatgpt", "",
			"https://example.com/icon.svg", "Free + from $20/mo",
			"1,500", "25", "4.5", "Great AI tool",
		},
		mapRow: mapTAAFTRow,
	}
}

func mapTAAFTRow(get getter) (RawRecord, error) {
	if rowIsEmpty(get, taaftColumns) {
		return nil, errEmptyRow
	}

	rec := RawRecord{}
	rec.Set(FieldName, get("ai_link"))
	rec.Set(FieldDescription, taaftDescription(get("task_label"), get("comment_body")))

	website := get("external_ai_link href")
	if website == "" {
		website = get("visit_ai_website_link href")
	}
	rec.Set(FieldWebsiteURL, website)
	rec.Set(FieldLogoURL, get("taaft_icon src"))
	rec.Set(FieldPricing, get("ai_launch_date"))

	if task := get("task_label"); task != "" {
		rec.Set(FieldTags, strings.ToLower(task))
	}
	rec.Set(FieldRating, get("average_rating"))
	rec.Set(FieldSaves, get("saves"))
	rec.Set(FieldViews, get("stats_views"))

	return rec, nil
}

// taaftDescription combines the task label and comment body the way the
// directory presents them; short comments fall back to the label alone.
func taaftDescription(taskLabel, commentBody string) string {
	const minCommentLen = 10
	if len(commentBody) > minCommentLen {
		if taskLabel != "" {
			return taskLabel + ". " + commentBody
		}
		return commentBody
	}
	return taskLabel
}
