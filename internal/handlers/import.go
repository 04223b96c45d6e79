// Package handlers wires the HTTP surface to the ingestion pipeline.
package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/gotools/internal/adapters"
	"github.com/jonesrussell/gotools/internal/ingest"
	"github.com/jonesrussell/gotools/internal/logger"
	"github.com/jonesrussell/gotools/internal/models"
)

// maxPayloadBytes caps uploaded file size.
const maxPayloadBytes = 20 << 20 // 20 MiB

// Importer runs the upload ingestion pipeline.
type Importer interface {
	ImportFromPayload(ctx context.Context, sourceID string, payload []byte, replaceExisting bool) (*models.ImportSummary, error)
	Sources() []string
}

type ImportHandler struct {
	importer Importer
	logger   logger.Logger
}

func NewImportHandler(importer Importer, log logger.Logger) *ImportHandler {
	return &ImportHandler{
		importer: importer,
		logger:   log,
	}
}

// Import accepts a multipart upload with fields file, source, and
// replace_existing, and runs it through the full ingestion pipeline.
func (h *ImportHandler) Import(c *gin.Context) {
	source := c.PostForm("source")
	if source == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "source is required",
			"sources": h.importer.Sources(),
		})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required", "details": err.Error()})
		return
	}
	if fileHeader.Size > maxPayloadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot open uploaded file", "details": err.Error()})
		return
	}
	defer file.Close()

	payload, err := io.ReadAll(io.LimitReader(file, maxPayloadBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot read uploaded file", "details": err.Error()})
		return
	}

	replaceExisting := parseBoolParam(c.PostForm("replace_existing"))

	summary, err := h.importer.ImportFromPayload(c.Request.Context(), source, payload, replaceExisting)
	if err != nil {
		h.respondImportError(c, source, summary, err)
		return
	}

	h.logger.Info("Import completed",
		logger.String("source", summary.Source),
		logger.String("file", fileHeader.Filename),
		logger.Int("imported", summary.Imported),
	)

	c.JSON(http.StatusOK, summary)
}

func (h *ImportHandler) respondImportError(c *gin.Context, source string, summary *models.ImportSummary, err error) {
	var (
		unsupported *adapters.UnsupportedSourceError
		format      *adapters.FormatError
		persistence *ingest.PersistenceError
	)

	switch {
	case errors.As(err, &unsupported):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   err.Error(),
			"sources": unsupported.Available,
		})
	case errors.As(err, &format):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":           err.Error(),
			"missing_columns": format.Missing,
		})
	case errors.As(err, &persistence):
		h.logger.Error("Import persistence failure",
			logger.String("source", source),
			logger.Error(err),
		)
		// The summary is still honest about what did get written.
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "import partially failed",
			"summary": summary,
		})
	default:
		h.logger.Error("Import failed",
			logger.String("source", source),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "import failed"})
	}
}

func parseBoolParam(value string) bool {
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false
	}
	return parsed
}
