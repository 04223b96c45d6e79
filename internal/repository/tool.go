package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/jonesrussell/gotools/internal/logger"
	"github.com/jonesrussell/gotools/internal/models"
)

const toolColumns = `id, name, slug, description, website_url, logo_url,
	pricing_type, price_range, has_free_trial, tags, features,
	quality_score, popularity_score, is_featured, source, created_at, updated_at`

type ToolRepository struct {
	db     *sql.DB
	logger logger.Logger
}

func NewToolRepository(db *sql.DB, log logger.Logger) *ToolRepository {
	return &ToolRepository{
		db:     db,
		logger: log,
	}
}

// ExistingSlugs returns the subset of slugs already present in the store.
// One round trip regardless of batch size.
func (r *ToolRepository) ExistingSlugs(ctx context.Context, slugs []string) (map[string]bool, error) {
	existing := make(map[string]bool)
	if len(slugs) == 0 {
		return existing, nil
	}

	query := `SELECT slug FROM tools WHERE slug = ANY($1)`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(slugs))
	if err != nil {
		return nil, fmt.Errorf("query existing slugs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var slug string
		if scanErr := rows.Scan(&slug); scanErr != nil {
			return nil, fmt.Errorf("scan slug: %w", scanErr)
		}
		existing[slug] = true
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("iterate slugs: %w", rowsErr)
	}

	return existing, nil
}

// BulkInsert inserts tools in a single multi-row statement. Rows whose slug
// already exists are left untouched (ON CONFLICT DO NOTHING), so a concurrent
// insert of the same slug cannot fail the batch. Returns the number of rows
// actually inserted.
func (r *ToolRepository) BulkInsert(ctx context.Context, tools []*models.Tool) (int64, error) {
	if len(tools) == 0 {
		return 0, nil
	}

	const cols = 17
	placeholders := make([]string, 0, len(tools))
	args := make([]any, 0, len(tools)*cols)

	for i, tool := range tools {
		if tool.ID == "" {
			tool.ID = uuid.New().String()
		}

		base := i * cols
		row := make([]string, cols)
		for j := range row {
			row[j] = fmt.Sprintf("$%d", base+j+1)
		}
		placeholders = append(placeholders, "("+strings.Join(row, ", ")+")")

		args = append(args,
			tool.ID,
			tool.Name,
			tool.Slug,
			tool.Description,
			tool.WebsiteURL,
			tool.LogoURL,
			tool.PricingType,
			tool.PriceRange,
			tool.HasFreeTrial,
			tool.Tags,
			tool.Features,
			tool.QualityScore,
			tool.PopularityScore,
			tool.IsFeatured,
			tool.Source,
			tool.CreatedAt,
			tool.UpdatedAt,
		)
	}

	query := `
		INSERT INTO tools (` + toolColumns + `)
		VALUES ` + strings.Join(placeholders, ", ") + `
		ON CONFLICT (slug) DO NOTHING
	`

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("bulk insert tools: %w", err)
	}

	inserted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("get rows affected: %w", err)
	}

	return inserted, nil
}

const updateCols = 14

// BulkUpdate replaces the ingested fields of existing tools in a single
// statement, joined on slug. popularity_score and created_at are never
// touched: popularity belongs to click tracking, created_at to the first
// import.
func (r *ToolRepository) BulkUpdate(ctx context.Context, tools []*models.Tool) (int64, error) {
	if len(tools) == 0 {
		return 0, nil
	}

	placeholders := make([]string, 0, len(tools))
	args := make([]any, 0, len(tools)*updateCols)

	for i, tool := range tools {
		base := i * updateCols
		placeholders = append(placeholders, fmt.Sprintf(
			"($%d::text, $%d::text, $%d::text, $%d::text, $%d::text, $%d::text, $%d::text,"+
				" $%d::boolean, $%d::jsonb, $%d::jsonb, $%d::int, $%d::boolean, $%d::text, $%d::timestamptz)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7,
			base+8, base+9, base+10, base+11, base+12, base+13, base+14,
		))

		args = append(args,
			tool.Slug,
			tool.Name,
			tool.Description,
			tool.WebsiteURL,
			tool.LogoURL,
			tool.PricingType,
			tool.PriceRange,
			tool.HasFreeTrial,
			tool.Tags,
			tool.Features,
			tool.QualityScore,
			tool.IsFeatured,
			tool.Source,
			tool.UpdatedAt,
		)
	}

	query := `
		UPDATE tools AS t SET
			name = v.name,
			description = v.description,
			website_url = v.website_url,
			logo_url = v.logo_url,
			pricing_type = v.pricing_type,
			price_range = v.price_range,
			has_free_trial = v.has_free_trial,
			tags = v.tags,
			features = v.features,
			quality_score = v.quality_score,
			is_featured = v.is_featured,
			source = v.source,
			updated_at = v.updated_at
		FROM (VALUES ` + strings.Join(placeholders, ", ") + `) AS v(
			slug, name, description, website_url, logo_url, pricing_type,
			price_range, has_free_trial, tags, features, quality_score,
			is_featured, source, updated_at
		)
		WHERE t.slug = v.slug
	`

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("bulk update tools: %w", err)
	}

	updated, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("get rows affected: %w", err)
	}

	return updated, nil
}

// GetBySlug returns a single tool, or sql.ErrNoRows wrapped when absent.
func (r *ToolRepository) GetBySlug(ctx context.Context, slug string) (*models.Tool, error) {
	query := `SELECT ` + toolColumns + ` FROM tools WHERE slug = $1`

	var tool models.Tool
	err := r.db.QueryRowContext(ctx, query, slug).Scan(
		&tool.ID,
		&tool.Name,
		&tool.Slug,
		&tool.Description,
		&tool.WebsiteURL,
		&tool.LogoURL,
		&tool.PricingType,
		&tool.PriceRange,
		&tool.HasFreeTrial,
		&tool.Tags,
		&tool.Features,
		&tool.QualityScore,
		&tool.PopularityScore,
		&tool.IsFeatured,
		&tool.Source,
		&tool.CreatedAt,
		&tool.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("query tool %q: %w", slug, err)
	}

	return &tool, nil
}

// DeleteBySource removes every tool ingested from one source and returns
// how many rows were removed.
func (r *ToolRepository) DeleteBySource(ctx context.Context, source string) (int64, error) {
	query := `DELETE FROM tools WHERE source = $1`

	result, err := r.db.ExecContext(ctx, query, source)
	if err != nil {
		return 0, fmt.Errorf("delete tools by source: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("get rows affected: %w", err)
	}

	return deleted, nil
}

// SourceStats summarizes the stored tools for one source.
type SourceStats struct {
	Source     string  `json:"source"`
	Count      int     `json:"count"`
	AvgQuality float64 `json:"avg_quality"`
}

// StoreStats is the aggregate view served by the stats endpoint.
type StoreStats struct {
	Total    int           `json:"total"`
	BySource []SourceStats `json:"by_source"`
}

func (r *ToolRepository) Stats(ctx context.Context) (*StoreStats, error) {
	query := `
		SELECT source, COUNT(*), COALESCE(AVG(quality_score), 0)
		FROM tools
		GROUP BY source
		ORDER BY source
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query tool stats: %w", err)
	}
	defer rows.Close()

	stats := &StoreStats{
		BySource: make([]SourceStats, 0),
	}
	for rows.Next() {
		var s SourceStats
		if scanErr := rows.Scan(&s.Source, &s.Count, &s.AvgQuality); scanErr != nil {
			return nil, fmt.Errorf("scan tool stats: %w", scanErr)
		}
		stats.Total += s.Count
		stats.BySource = append(stats.BySource, s)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("iterate tool stats: %w", rowsErr)
	}

	return stats, nil
}
