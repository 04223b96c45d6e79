package adapters

import "strings"

// HexofySource is the canonical source name for Hexofy browser-extension
// exports. Hexofy scrapes arbitrary pages, so its column names vary per
// capture; the mapping tries a list of candidate columns per slot and the
// first non-empty match wins.
const HexofySource = "hexofy"

var (
	hexofyNameColumns     = []string{"title", "name", "tool_name", "product_name", "heading"}
	hexofyDescColumns     = []string{"description", "desc", "summary", "content", "text"}
	hexofyURLColumns      = []string{"url", "link", "website", "page_url", "tool_url"}
	hexofyCategoryColumns = []string{"category", "type", "tag", "classification"}
	hexofyPriceColumns    = []string{"price", "pricing", "cost", "plan"}
)

// NewHexofy returns the adapter for Hexofy exports.
func NewHexofy() *CSVAdapter {
	expected := []string{"title", "description", "url", "category", "price"}
	return &CSVAdapter{
		source:       HexofySource,
		expected:     expected,
		required:     nil, // flexible layout; format is validated per row
		sampleHeader: expected,
		sampleRow: []string{
			"Midjourney", "AI image generation from text prompts",
			"https://midjourney.com", "image-generation", "Paid, from $10/mo",
		},
		mapRow: mapHexofyRow,
	}
}

func mapHexofyRow(get getter) (RawRecord, error) {
	all := make([]string, 0,
		len(hexofyNameColumns)+len(hexofyDescColumns)+len(hexofyURLColumns)+
			len(hexofyCategoryColumns)+len(hexofyPriceColumns))
	all = append(all, hexofyNameColumns...)
	all = append(all, hexofyDescColumns...)
	all = append(all, hexofyURLColumns...)
	all = append(all, hexofyCategoryColumns...)
	all = append(all, hexofyPriceColumns...)
	if rowIsEmpty(get, all) {
		return nil, errEmptyRow
	}

	rec := RawRecord{}
	rec.Set(FieldName, firstValue(get, hexofyNameColumns))
	rec.Set(FieldDescription, firstValue(get, hexofyDescColumns))
	rec.Set(FieldWebsiteURL, firstValue(get, hexofyURLColumns))
	rec.Set(FieldPricing, firstValue(get, hexofyPriceColumns))

	if category := firstValue(get, hexofyCategoryColumns); category != "" {
		rec.Set(FieldTags, strings.ToLower(category))
	}

	return rec, nil
}

// firstValue returns the first non-empty value among candidate columns.
func firstValue(get getter, candidates []string) string {
	for _, col := range candidates {
		if v := get(col); v != "" {
			return v
		}
	}
	return ""
}
