package adapters

import "strings"

// ProductHuntSource is the canonical source name for producthunt.com.
const ProductHuntSource = "producthunt.com"

var productHuntColumns = []string{
	"name",
	"tagline",
	"description",
	"website",
	"maker",
	"launch_date",
	"upvotes",
	"comments_count",
	"pricing",
	"category",
}

// NewProductHunt returns the adapter for ProductHunt CSV exports.
func NewProductHunt() *CSVAdapter {
	return &CSVAdapter{
		source:       ProductHuntSource,
		expected:     productHuntColumns,
		required:     []string{"name", "tagline"},
		sampleHeader: productHuntColumns,
		sampleRow: []string{
			"ChatGPT", "AI Assistant", "Revolutionary AI chatbot",
			"https://openai.com/chatgpt", "OpenAI", "2022-11-30",
			"1500", "250", "Freemium", "AI Tools",
		},
		mapRow: mapProductHuntRow,
	}
}

func mapProductHuntRow(get getter) (RawRecord, error) {
	if rowIsEmpty(get, productHuntColumns) {
		return nil, errEmptyRow
	}

	rec := RawRecord{}
	rec.Set(FieldName, get("name"))

	description := get("description")
	if len(description) <= 10 {
		description = get("tagline")
	}
	rec.Set(FieldDescription, description)
	rec.Set(FieldWebsiteURL, get("website"))
	rec.Set(FieldPricing, get("pricing"))

	var tags []string
	if category := get("category"); category != "" {
		tags = append(tags, strings.ToLower(category))
	}
	if maker := get("maker"); maker != "" {
		tags = append(tags, "by-"+strings.ReplaceAll(strings.ToLower(maker), " ", "-"))
	}
	if len(tags) > 0 {
		rec.Set(FieldTags, strings.Join(tags, TagSeparator))
	}

	rec.Set(FieldUpvotes, get("upvotes"))
	rec.Set(FieldComments, get("comments_count"))

	return rec, nil
}
