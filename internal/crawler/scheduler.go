package crawler

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jonesrussell/gotools/internal/adapters"
	"github.com/jonesrussell/gotools/internal/config"
	"github.com/jonesrussell/gotools/internal/logger"
	"github.com/jonesrussell/gotools/internal/models"
	"github.com/jonesrussell/gotools/internal/retry"
)

// ErrCrawlRunning is returned when a crawl is started while one is active.
var ErrCrawlRunning = errors.New("a crawl is already running")

// State is the scheduler's position in its run loop.
type State string

const (
	StateIdle     State = "idle"
	StateFetching State = "fetching"
	StateDelayed  State = "delayed"
	StateDone     State = "done"
	StateAborted  State = "aborted"
)

// Ingestor receives the crawl's accumulated records in one call.
type Ingestor interface {
	IngestRecords(
		ctx context.Context,
		sourceName string,
		records []adapters.RawRecord,
		replaceExisting bool,
	) (*models.ImportSummary, error)
}

// Scheduler runs the crawl as a sequential background job. Pages are never
// fetched in parallel: the politeness delay between consecutive fetches is
// the whole point of this loop.
type Scheduler struct {
	scraper  *Scraper
	ingestor Ingestor
	cfg      config.CrawlerConfig
	logger   logger.Logger

	mu      sync.Mutex
	running bool
	state   State
	page    int
}

func NewScheduler(scraper *Scraper, ingestor Ingestor, cfg config.CrawlerConfig, log logger.Logger) *Scheduler {
	return &Scheduler{
		scraper:  scraper,
		ingestor: ingestor,
		cfg:      cfg,
		logger:   log,
		state:    StateIdle,
	}
}

// Status describes the scheduler for the stats endpoint.
type Status struct {
	Running bool   `json:"running"`
	State   string `json:"state"`
	Page    int    `json:"page"`
}

func (s *Scheduler) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Status{
		Running: s.running,
		State:   string(s.state),
		Page:    s.page,
	}
}

// Start launches the crawl in the background and returns a channel that
// receives the single terminal summary. Only one crawl may run at a time;
// a second start while running fails with ErrCrawlRunning.
func (s *Scheduler) Start(maxPages int) (<-chan *models.ImportSummary, error) {
	if maxPages <= 0 {
		maxPages = s.cfg.MaxPages
	}

	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil, ErrCrawlRunning
	}
	s.running = true
	s.state = StateFetching
	s.page = 1
	s.mu.Unlock()

	// Buffered so the job never blocks on a caller that walked away.
	results := make(chan *models.ImportSummary, 1)

	go func() {
		summary := s.run(context.Background(), maxPages)
		results <- summary
		close(results)
	}()

	return results, nil
}

// run walks pages 1..maxPages, accumulating records, and persists everything
// in one ingestion call at the end. Partial progress is persisted even when
// the loop aborts.
func (s *Scheduler) run(ctx context.Context, maxPages int) *models.ImportSummary {
	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	s.logger.Info("Crawl started",
		logger.String("base_url", s.cfg.BaseURL),
		logger.Int("max_pages", maxPages),
	)

	var (
		accumulated []adapters.RawRecord
		pageErrors  int
		lastFetch   time.Time
	)

	terminal := StateDone
	for page := 1; page <= maxPages; page++ {
		s.setState(StateFetching, page)

		s.waitPoliteness(lastFetch)
		lastFetch = time.Now()

		records, err := s.fetchWithRetry(ctx, page)
		if err != nil {
			// Retries exhausted: skip the page, keep crawling.
			pageErrors++
			s.logger.Warn("Skipping page after failed fetch",
				logger.Int("page", page),
				logger.Error(err),
			)
			continue
		}

		if len(records) == 0 {
			s.logger.Info("Empty listing page, stopping crawl", logger.Int("page", page))
			break
		}

		accumulated = append(accumulated, records...)
		s.setState(StateDelayed, page)
	}

	summary, ingestErr := s.ingestor.IngestRecords(ctx, adapters.TAAFTSource, accumulated, false)
	if ingestErr != nil {
		terminal = StateAborted
		s.logger.Error("Crawl persistence failed", logger.Error(ingestErr))
	}
	summary.Errors += pageErrors

	s.setState(terminal, 0)
	s.logger.Info("Crawl finished",
		logger.String("state", string(terminal)),
		logger.Int("total_parsed", summary.TotalParsed),
		logger.Int("imported", summary.Imported),
		logger.Int("skipped", summary.Skipped),
		logger.Int("errors", summary.Errors),
	)

	return summary
}

// waitPoliteness enforces the minimum inter-request delay, measured from
// the start of the previous fetch, regardless of how fast that fetch was.
func (s *Scheduler) waitPoliteness(lastFetch time.Time) {
	if lastFetch.IsZero() {
		return
	}
	elapsed := time.Since(lastFetch)
	if elapsed < s.cfg.Delay {
		time.Sleep(s.cfg.Delay - elapsed)
	}
}

func (s *Scheduler) fetchWithRetry(ctx context.Context, page int) ([]adapters.RawRecord, error) {
	cfg := retry.DefaultConfig()
	cfg.MaxAttempts = s.cfg.MaxRetries
	cfg.IsRetryable = func(err error) bool {
		var netErr *NetworkError
		if errors.As(err, &netErr) {
			return netErr.Transient()
		}
		return false
	}

	var records []adapters.RawRecord
	err := retry.Do(ctx, cfg, func() error {
		var fetchErr error
		records, fetchErr = s.scraper.FetchListing(ctx, page)
		return fetchErr
	})
	return records, err
}

func (s *Scheduler) setState(state State, page int) {
	s.mu.Lock()
	s.state = state
	if page > 0 {
		s.page = page
	}
	s.mu.Unlock()
}
