// Package crawler drives the rate-limited live crawl of the tool directory.
package crawler

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonesrussell/gotools/internal/adapters"
	"github.com/jonesrussell/gotools/internal/config"
	"github.com/jonesrussell/gotools/internal/logger"
)

const (
	listingPath = "/ai-tools"
	// Listing pages cap the number of usable entries; anything beyond this
	// on one page is noise from repeated nav links.
	maxLinksPerPage = 50
)

// toolLinkSelectors match the tool entries on a directory listing page.
var toolLinkSelectors = []string{
	`a[href*="/ai/"]`,
	`a[href*="/tool/"]`,
	`a[href*="/product/"]`,
	".tool-card a",
	".ai-tool a",
}

// NetworkError is a failed page fetch. Transient instances are retried by
// the scheduler; the rest skip the page.
type NetworkError struct {
	URL    string
	Status int
	Err    error
}

func (e *NetworkError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetch %s: status %d", e.URL, e.Status)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Transient reports whether the failure is worth another attempt.
func (e *NetworkError) Transient() bool {
	if e.Status >= http.StatusInternalServerError || e.Status == http.StatusTooManyRequests {
		return true
	}
	return e.Err != nil
}

// Scraper fetches directory listing pages and parses them into raw records.
type Scraper struct {
	client    *http.Client
	baseURL   string
	userAgent string
	logger    logger.Logger
}

func NewScraper(cfg config.CrawlerConfig, log logger.Logger) *Scraper {
	return &Scraper{
		client:    &http.Client{Timeout: cfg.FetchTimeout},
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		userAgent: cfg.UserAgent,
		logger:    log,
	}
}

// PageURL returns the listing URL for one page number.
func (s *Scraper) PageURL(page int) string {
	return fmt.Sprintf("%s%s?page=%d", s.baseURL, listingPath, page)
}

// FetchListing fetches one listing page and extracts a raw record per tool
// entry found on it. An empty result means the directory has no more pages.
func (s *Scraper) FetchListing(ctx context.Context, page int) ([]adapters.RawRecord, error) {
	pageURL := s.PageURL(page)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &NetworkError{URL: pageURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &NetworkError{URL: pageURL, Status: resp.StatusCode}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse listing page: %w", err)
	}

	records := s.extractRecords(doc)

	s.logger.Info("Fetched listing page",
		logger.String("url", pageURL),
		logger.Int("records", len(records)),
	)

	return records, nil
}

func (s *Scraper) extractRecords(doc *goquery.Document) []adapters.RawRecord {
	seen := make(map[string]bool)
	records := make([]adapters.RawRecord, 0)

	for _, selector := range toolLinkSelectors {
		doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
			if len(records) >= maxLinksPerPage {
				return
			}

			href, ok := sel.Attr("href")
			if !ok {
				return
			}
			link := s.absoluteURL(href)
			if link == "" || seen[link] {
				return
			}

			name := strings.TrimSpace(sel.Text())
			if name == "" {
				name = strings.TrimSpace(sel.AttrOr("title", ""))
			}
			if name == "" {
				return
			}

			seen[link] = true

			// The resolved link points at the directory's own tool page,
			// not the tool's site, so it only serves dedupe. The tool's
			// real website is unknown at listing level and stays empty.
			rec := adapters.RawRecord{}
			rec.Set(adapters.FieldName, name)
			rec.Set(adapters.FieldTags, sel.AttrOr("data-category", ""))
			records = append(records, rec)
		})
	}

	return records
}

// absoluteURL resolves href against the crawl site and rejects anything
// that leaves it.
func (s *Scraper) absoluteURL(href string) string {
	base, err := url.Parse(s.baseURL)
	if err != nil {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	if resolved.Host != base.Host {
		return ""
	}
	return resolved.String()
}
