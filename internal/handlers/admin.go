package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/gotools/internal/logger"
	"github.com/jonesrussell/gotools/internal/repository"
)

// ToolStore is the subset of the repository the admin endpoints need.
type ToolStore interface {
	DeleteBySource(ctx context.Context, source string) (int64, error)
	Stats(ctx context.Context) (*repository.StoreStats, error)
}

type AdminHandler struct {
	store     ToolStore
	scheduler CrawlStarter
	logger    logger.Logger
}

func NewAdminHandler(store ToolStore, scheduler CrawlStarter, log logger.Logger) *AdminHandler {
	return &AdminHandler{
		store:     store,
		scheduler: scheduler,
		logger:    log,
	}
}

// DeleteBySource removes every tool ingested from one source.
func (h *AdminHandler) DeleteBySource(c *gin.Context) {
	source := c.Query("source")
	if source == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "source is required"})
		return
	}

	deleted, err := h.store.DeleteBySource(c.Request.Context(), source)
	if err != nil {
		h.logger.Error("Failed to delete tools",
			logger.String("source", source),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete tools"})
		return
	}

	h.logger.Info("Tools deleted",
		logger.String("source", source),
		logger.Int64("deleted", deleted),
	)

	c.JSON(http.StatusOK, gin.H{
		"source":  source,
		"deleted": deleted,
	})
}

// Stats reports stored tool counts per source plus the crawl status.
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.store.Stats(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to load stats", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load stats"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tools": stats,
		"crawl": h.scheduler.Status(),
	})
}
