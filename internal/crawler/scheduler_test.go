package crawler

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/gotools/internal/adapters"
	"github.com/jonesrussell/gotools/internal/config"
	"github.com/jonesrussell/gotools/internal/models"
	"github.com/jonesrussell/gotools/internal/testhelpers"
)

type fakeIngestor struct {
	mu      sync.Mutex
	calls   int
	source  string
	records []adapters.RawRecord
	err     error
}

func (f *fakeIngestor) IngestRecords(
	_ context.Context,
	sourceName string,
	records []adapters.RawRecord,
	_ bool,
) (*models.ImportSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.source = sourceName
	f.records = records
	return &models.ImportSummary{
		Source:      sourceName,
		TotalParsed: len(records),
		Imported:    len(records),
	}, f.err
}

func listingHTML(names ...string) string {
	page := "<html><body>"
	for _, name := range names {
		page += fmt.Sprintf(`<a href="/ai/%s/">%s</a>`, name, name)
	}
	return page + "</body></html>"
}

func testCrawlerConfig(baseURL string, delay time.Duration) config.CrawlerConfig {
	return config.CrawlerConfig{
		BaseURL:      baseURL,
		Delay:        delay,
		MaxPages:     10,
		MaxRetries:   2,
		FetchTimeout: 5 * time.Second,
		UserAgent:    "gotools-test",
	}
}

func newTestScheduler(t *testing.T, handler http.HandlerFunc, delay time.Duration) (*Scheduler, *fakeIngestor) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := testCrawlerConfig(server.URL, delay)
	log := testhelpers.NewTestLogger()
	ingestor := &fakeIngestor{}
	return NewScheduler(NewScraper(cfg, log), ingestor, cfg, log), ingestor
}

func TestScheduler_AccumulatesAcrossPagesSinglePersist(t *testing.T) {
	pages := map[string]string{
		"1": listingHTML("chatgpt", "midjourney"),
		"2": listingHTML("notion-ai"),
		"3": listingHTML(), // empty page ends the crawl
	}
	sched, ingestor := newTestScheduler(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, pages[r.URL.Query().Get("page")])
	}, time.Millisecond)

	results, err := sched.Start(10)
	require.NoError(t, err)

	summary := <-results
	require.NotNil(t, summary)

	assert.Equal(t, 1, ingestor.calls, "exactly one cumulative persist call")
	assert.Equal(t, adapters.TAAFTSource, ingestor.source)
	assert.Len(t, ingestor.records, 3)
	assert.Equal(t, 3, summary.TotalParsed)
	assert.Equal(t, 0, summary.Errors)

	status := sched.Status()
	assert.False(t, status.Running)
	assert.Equal(t, string(StateDone), status.State)
}

func TestScheduler_PolitenessDelayBetweenFetches(t *testing.T) {
	const delay = 50 * time.Millisecond

	var mu sync.Mutex
	var arrivals []time.Time

	sched, _ := newTestScheduler(t, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		arrivals = append(arrivals, time.Now())
		mu.Unlock()
		fmt.Fprint(w, listingHTML("tool-"+r.URL.Query().Get("page")))
	}, delay)

	results, err := sched.Start(5)
	require.NoError(t, err)
	<-results

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, arrivals, 5)
	for i := 1; i < len(arrivals); i++ {
		gap := arrivals[i].Sub(arrivals[i-1])
		// Small tolerance for timer scheduling jitter.
		assert.GreaterOrEqual(t, gap, delay-5*time.Millisecond,
			"fetch %d followed fetch %d after only %v", i+1, i, gap)
	}
}

func TestScheduler_SingleFlight(t *testing.T) {
	release := make(chan struct{})
	sched, _ := newTestScheduler(t, func(w http.ResponseWriter, _ *http.Request) {
		<-release
		fmt.Fprint(w, listingHTML())
	}, time.Millisecond)

	results, err := sched.Start(1)
	require.NoError(t, err)

	_, err = sched.Start(1)
	assert.ErrorIs(t, err, ErrCrawlRunning)

	close(release)
	<-results

	// Finished crawls release the guard.
	results, err = sched.Start(1)
	require.NoError(t, err)
	<-results
}

func TestScheduler_FailedPageSkippedAndCounted(t *testing.T) {
	sched, ingestor := newTestScheduler(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("page") {
		case "1":
			http.Error(w, "upstream broke", http.StatusInternalServerError)
		case "2":
			fmt.Fprint(w, listingHTML("survivor"))
		default:
			fmt.Fprint(w, listingHTML())
		}
	}, time.Millisecond)

	results, err := sched.Start(3)
	require.NoError(t, err)
	summary := <-results

	assert.Equal(t, 1, summary.Errors, "exhausted page counts as one error")
	assert.Len(t, ingestor.records, 1, "later pages still crawled")
}

func TestScheduler_NotFoundIsNotRetried(t *testing.T) {
	var mu sync.Mutex
	hits := 0
	sched, _ := newTestScheduler(t, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		hits++
		mu.Unlock()
		http.NotFound(w, r)
	}, time.Millisecond)

	results, err := sched.Start(1)
	require.NoError(t, err)
	summary := <-results

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, hits, "404 is permanent, no retry")
	assert.Equal(t, 1, summary.Errors)
}
