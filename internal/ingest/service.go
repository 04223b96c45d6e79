// Package ingest turns raw source payloads into persisted canonical tools.
package ingest

import (
	"context"
	"fmt"

	"github.com/jonesrussell/gotools/internal/adapters"
	"github.com/jonesrussell/gotools/internal/logger"
	"github.com/jonesrussell/gotools/internal/models"
	"github.com/jonesrussell/gotools/internal/normalize"
)

// PersistenceError wraps a failed bulk store operation.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failed during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// ToolStore is the subset of the repository the ingestion flow needs.
type ToolStore interface {
	ExistingSlugs(ctx context.Context, slugs []string) (map[string]bool, error)
	BulkInsert(ctx context.Context, tools []*models.Tool) (int64, error)
	BulkUpdate(ctx context.Context, tools []*models.Tool) (int64, error)
}

// EventPublisher emits import lifecycle events. A nil publisher disables
// event emission.
type EventPublisher interface {
	PublishImportCompleted(ctx context.Context, summary *models.ImportSummary) error
}

type Service struct {
	registry *adapters.Registry
	store    ToolStore
	events   EventPublisher
	logger   logger.Logger
}

func NewService(registry *adapters.Registry, store ToolStore, events EventPublisher, log logger.Logger) *Service {
	return &Service{
		registry: registry,
		store:    store,
		events:   events,
		logger:   log,
	}
}

// Sources lists the registered source names.
func (s *Service) Sources() []string {
	return s.registry.Sources()
}

// ImportFromPayload runs the full pipeline for one uploaded payload:
// resolve the adapter, validate the format, parse, normalize, persist.
// Format validation happens before any parsing, so a payload with missing
// columns never touches the store.
func (s *Service) ImportFromPayload(
	ctx context.Context,
	sourceID string,
	payload []byte,
	replaceExisting bool,
) (*models.ImportSummary, error) {
	adapter, err := s.registry.Resolve(sourceID)
	if err != nil {
		return nil, err
	}

	if validateErr := adapter.ValidateFormat(payload); validateErr != nil {
		return nil, validateErr
	}

	records, rowErrs := adapter.Parse(payload)
	for _, rowErr := range rowErrs {
		s.logger.Warn("Skipping malformed row",
			logger.String("source", adapter.SourceName()),
			logger.Int("row", rowErr.Row),
			logger.Error(rowErr.Err),
		)
	}

	summary, persistErr := s.IngestRecords(ctx, adapter.SourceName(), records, replaceExisting)
	summary.Errors += len(rowErrs)

	s.publishCompleted(ctx, summary)

	return summary, persistErr
}

// IngestRecords normalizes raw records and persists them with slug-level
// dedup. The summary is honest about partial failure: when a bulk write
// fails, its rows are counted as errors and the error is returned alongside
// the summary.
func (s *Service) IngestRecords(
	ctx context.Context,
	sourceName string,
	records []adapters.RawRecord,
	replaceExisting bool,
) (*models.ImportSummary, error) {
	summary := &models.ImportSummary{
		Source:      sourceName,
		TotalParsed: len(records),
	}

	batch := normalize.NewBatch()
	tools := make([]*models.Tool, 0, len(records))
	for _, rec := range records {
		tool, err := batch.Normalize(rec, sourceName)
		if err != nil {
			summary.Errors++
			continue
		}
		tools = append(tools, tool)
	}

	if len(tools) == 0 {
		return summary, nil
	}

	persistErr := s.persist(ctx, tools, replaceExisting, summary)

	s.logger.Info("Ingestion finished",
		logger.String("source", sourceName),
		logger.Int("total_parsed", summary.TotalParsed),
		logger.Int("imported", summary.Imported),
		logger.Int("skipped", summary.Skipped),
		logger.Int("errors", summary.Errors),
	)

	return summary, persistErr
}

// persist partitions the batch by existing slug and writes it in at most
// one bulk insert and one bulk update.
func (s *Service) persist(
	ctx context.Context,
	tools []*models.Tool,
	replaceExisting bool,
	summary *models.ImportSummary,
) error {
	slugs := make([]string, len(tools))
	for i, tool := range tools {
		slugs[i] = tool.Slug
	}

	existing, err := s.store.ExistingSlugs(ctx, slugs)
	if err != nil {
		summary.Errors += len(tools)
		return &PersistenceError{Op: "slug lookup", Err: err}
	}

	var toInsert, toUpdate []*models.Tool
	for _, tool := range tools {
		switch {
		case !existing[tool.Slug]:
			toInsert = append(toInsert, tool)
		case replaceExisting:
			toUpdate = append(toUpdate, tool)
		default:
			summary.Skipped++
		}
	}

	var firstErr error

	if len(toInsert) > 0 {
		inserted, insertErr := s.store.BulkInsert(ctx, toInsert)
		if insertErr != nil {
			summary.Errors += len(toInsert)
			firstErr = &PersistenceError{Op: "bulk insert", Err: insertErr}
		} else {
			summary.Imported += int(inserted)
			// Rows dropped by a concurrent conflicting insert.
			summary.Skipped += len(toInsert) - int(inserted)
		}
	}

	if len(toUpdate) > 0 {
		updated, updateErr := s.store.BulkUpdate(ctx, toUpdate)
		if updateErr != nil {
			summary.Errors += len(toUpdate)
			if firstErr == nil {
				firstErr = &PersistenceError{Op: "bulk update", Err: updateErr}
			}
		} else {
			summary.Imported += int(updated)
		}
	}

	return firstErr
}

func (s *Service) publishCompleted(ctx context.Context, summary *models.ImportSummary) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishImportCompleted(ctx, summary); err != nil {
		s.logger.Warn("Failed to publish import event",
			logger.String("source", summary.Source),
			logger.Error(err),
		)
	}
}
