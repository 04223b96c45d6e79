package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/gotools/internal/crawler"
	"github.com/jonesrussell/gotools/internal/logger"
	"github.com/jonesrussell/gotools/internal/models"
)

// CrawlStarter launches the background crawl job.
type CrawlStarter interface {
	Start(maxPages int) (<-chan *models.ImportSummary, error)
	Status() crawler.Status
}

type CrawlHandler struct {
	scheduler CrawlStarter
	logger    logger.Logger
}

func NewCrawlHandler(scheduler CrawlStarter, log logger.Logger) *CrawlHandler {
	return &CrawlHandler{
		scheduler: scheduler,
		logger:    log,
	}
}

type crawlRequest struct {
	MaxPages int `json:"max_pages"`
}

// Start kicks off the crawl and returns immediately. The job's outcome is
// observable through the store and the stats endpoint, not this response.
func (h *CrawlHandler) Start(c *gin.Context) {
	var req crawlRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
			return
		}
	}
	if req.MaxPages < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "max_pages must not be negative"})
		return
	}

	results, err := h.scheduler.Start(req.MaxPages)
	if err != nil {
		if errors.Is(err, crawler.ErrCrawlRunning) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Failed to start crawl", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to start crawl"})
		return
	}

	// Drain the terminal summary so the job is never blocked on a reader.
	go func() {
		if summary := <-results; summary != nil {
			h.logger.Info("Background crawl completed",
				logger.String("source", summary.Source),
				logger.Int("imported", summary.Imported),
				logger.Int("errors", summary.Errors),
			)
		}
	}()

	h.logger.Info("Crawl accepted", logger.Int("max_pages", req.MaxPages))

	c.JSON(http.StatusAccepted, gin.H{
		"status":    "started",
		"max_pages": req.MaxPages,
	})
}

// Status reports the scheduler's current position.
func (h *CrawlHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, h.scheduler.Status())
}
