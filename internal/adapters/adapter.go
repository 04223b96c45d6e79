// Package adapters turns raw upload payloads from heterogeneous tool
// directories into loosely-typed raw records. Each registered source owns
// its own column-to-field mapping; that mapping is the only thing that has
// to be written to support a new source.
package adapters

import "strings"

// Canonical raw-record field keys. Adapters map their source-specific
// columns onto these slots; the normalizer only ever reads these keys.
const (
	FieldName        = "name"
	FieldDescription = "description"
	FieldWebsiteURL  = "website_url"
	FieldLogoURL     = "logo_url"
	FieldPricing     = "pricing"
	FieldTags        = "tags"
	FieldRating      = "rating"
	FieldSaves       = "saves"
	FieldViews       = "views"
	FieldUpvotes     = "upvotes"
	FieldComments    = "comments"
)

// TagSeparator joins multiple tag values inside the FieldTags slot.
const TagSeparator = ","

// RawRecord is one row or page entry from a source, mapped onto canonical
// field keys but otherwise unvalidated. It only lives until normalization.
type RawRecord map[string]string

// Get returns the trimmed value for a field key, or "" if absent.
func (r RawRecord) Get(key string) string {
	return strings.TrimSpace(r[key])
}

// Set stores a value, dropping empty strings so presence checks stay cheap.
func (r RawRecord) Set(key, value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	r[key] = value
}

// Adapter parses a static upload payload for one source.
type Adapter interface {
	// SourceName is the canonical origin name stored on every record.
	SourceName() string
	// ExpectedFields lists the columns this source's exports usually carry.
	ExpectedFields() []string
	// ValidateFormat checks that the payload has this source's shape.
	// It returns a *FormatError naming any missing required columns.
	ValidateFormat(payload []byte) error
	// Parse reads the full payload into raw records. Malformed individual
	// rows are returned as RowErrors and excluded from the records; they
	// never abort the parse.
	Parse(payload []byte) ([]RawRecord, []RowError)
	// SampleFormat returns an example header plus one data row, used for
	// error messages and upload templates.
	SampleFormat() (header []string, row []string)
}
