// Package models defines the canonical tool record and related value types.
package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Pricing classification values. Unrecognized pricing text always maps to
// PricingNone, never to an empty string.
const (
	PricingFree     = "free"
	PricingFreemium = "freemium"
	PricingPaid     = "paid"
	PricingOneTime  = "one-time"
	PricingNone     = "no-pricing"
)

const (
	// QualityScoreMin and QualityScoreMax bound the quality heuristic.
	QualityScoreMin = 1
	QualityScoreMax = 10
)

// Tool is the canonical record persisted for every ingested tool.
// Slug is the sole identity key for deduplication and is unique across
// the whole store.
type Tool struct {
	ID              string      `json:"id"               db:"id"`
	Name            string      `json:"name"             db:"name"`
	Slug            string      `json:"slug"             db:"slug"`
	Description     string      `json:"description"      db:"description"`
	WebsiteURL      string      `json:"website_url"      db:"website_url"`
	LogoURL         string      `json:"logo_url"         db:"logo_url"`
	PricingType     string      `json:"pricing_type"     db:"pricing_type"`
	PriceRange      string      `json:"price_range"      db:"price_range"`
	HasFreeTrial    bool        `json:"has_free_trial"   db:"has_free_trial"`
	Tags            StringArray `json:"tags"             db:"tags"`
	Features        StringArray `json:"features"         db:"features"`
	QualityScore    int         `json:"quality_score"    db:"quality_score"`
	PopularityScore int         `json:"popularity_score" db:"popularity_score"`
	IsFeatured      bool        `json:"is_featured"      db:"is_featured"`
	Source          string      `json:"source"           db:"source"`
	CreatedAt       time.Time   `json:"created_at"       db:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"       db:"updated_at"`
}

// Validate checks the canonical record invariants.
func (t *Tool) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("tool name is required")
	}
	if t.Slug == "" {
		return fmt.Errorf("tool slug is required")
	}
	if !ValidPricingType(t.PricingType) {
		return fmt.Errorf("invalid pricing type %q", t.PricingType)
	}
	if t.QualityScore < QualityScoreMin || t.QualityScore > QualityScoreMax {
		return fmt.Errorf("quality score %d out of range [%d,%d]",
			t.QualityScore, QualityScoreMin, QualityScoreMax)
	}
	if t.PopularityScore < 0 {
		return fmt.Errorf("popularity score must not be negative")
	}
	return nil
}

// ValidPricingType reports whether s is one of the enumerated pricing values.
func ValidPricingType(s string) bool {
	switch s {
	case PricingFree, PricingFreemium, PricingPaid, PricingOneTime, PricingNone:
		return true
	}
	return false
}

// StringArray stores a string slice as a JSON column.
type StringArray []string

// Value implements driver.Valuer. A nil or empty array is stored as [].
func (a StringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return []byte("[]"), nil
	}
	return json.Marshal(a)
}

// Scan implements sql.Scanner.
func (a *StringArray) Scan(value any) error {
	if value == nil {
		*a = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("cannot scan %T into StringArray", value)
	}
	return json.Unmarshal(bytes, a)
}

// ImportSummary is the result of one ingestion call. It is never persisted.
type ImportSummary struct {
	Source      string `json:"source"`
	TotalParsed int    `json:"total_parsed"`
	Imported    int    `json:"imported"`
	Skipped     int    `json:"skipped"`
	Errors      int    `json:"errors"`
}
