// Package normalize converts raw source records into validated canonical
// tool records: cleaning, slugging, pricing classification, tag and feature
// extraction, and quality scoring.
package normalize

import (
	"errors"
	"strconv"
	"time"

	"github.com/jonesrussell/gotools/internal/adapters"
	"github.com/jonesrussell/gotools/internal/models"
)

// ErrNoName marks a raw record with no usable name field. The record is
// dropped and counted as a row error; the batch continues.
var ErrNoName = errors.New("no usable name field")

// ErrUnsluggable marks a name that produces an empty slug.
var ErrUnsluggable = errors.New("name produces an empty slug")

// Batch normalizes the records of one ingestion call. It tracks slugs
// already produced in the batch so colliding names get numeric suffixes;
// collisions against the store are the deduplicator's job, not ours.
type Batch struct {
	seen map[string]struct{}
	now  func() time.Time
}

// NewBatch returns a Batch with an empty slug set.
func NewBatch() *Batch {
	return &Batch{
		seen: make(map[string]struct{}),
		now:  time.Now,
	}
}

// Normalize converts one raw record into a canonical tool record.
func (b *Batch) Normalize(rec adapters.RawRecord, source string) (*models.Tool, error) {
	name := CleanText(rec.Get(adapters.FieldName))
	if name == "" {
		return nil, ErrNoName
	}

	slug, err := b.uniqueSlug(name)
	if err != nil {
		return nil, err
	}

	description := CleanText(rec.Get(adapters.FieldDescription))
	websiteURL := CleanURL(rec.Get(adapters.FieldWebsiteURL))
	logoURL := CleanURL(rec.Get(adapters.FieldLogoURL))

	pricingText := rec.Get(adapters.FieldPricing)
	pricingType, hasTrial := ClassifyPricing(pricingText, description)

	tags := ExtractTags(rec.Get(adapters.FieldTags), name, description)
	features := ExtractFeatures(description, rec)

	now := b.now().UTC()
	tool := &models.Tool{
		Name:         name,
		Slug:         slug,
		Description:  description,
		WebsiteURL:   websiteURL,
		LogoURL:      logoURL,
		PricingType:  pricingType,
		PriceRange:   PriceRange(pricingText),
		HasFreeTrial: hasTrial,
		Tags:         tags,
		Features:     features,
		QualityScore: QualityScore(description, websiteURL, pricingType, features, rec),
		// Popularity comes from click tracking, never from ingestion.
		PopularityScore: 0,
		IsFeatured:      false,
		Source:          source,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := tool.Validate(); err != nil {
		return nil, err
	}
	return tool, nil
}

// uniqueSlug slugifies name and suffixes -2, -3, … until the slug is unique
// within the batch.
func (b *Batch) uniqueSlug(name string) (string, error) {
	base := Slugify(name)
	if base == "" {
		return "", ErrUnsluggable
	}

	slug := base
	for n := 2; ; n++ {
		if _, taken := b.seen[slug]; !taken {
			break
		}
		slug = base + "-" + strconv.Itoa(n)
	}
	b.seen[slug] = struct{}{}
	return slug, nil
}
