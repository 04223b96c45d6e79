package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/gotools/internal/adapters"
	"github.com/jonesrussell/gotools/internal/ingest"
	"github.com/jonesrussell/gotools/internal/models"
	"github.com/jonesrussell/gotools/internal/testhelpers"
)

type fakeImporter struct {
	source  string
	payload []byte
	replace bool
	summary *models.ImportSummary
	err     error
}

func (f *fakeImporter) ImportFromPayload(
	_ context.Context,
	sourceID string,
	payload []byte,
	replaceExisting bool,
) (*models.ImportSummary, error) {
	f.source = sourceID
	f.payload = payload
	f.replace = replaceExisting
	return f.summary, f.err
}

func (f *fakeImporter) Sources() []string {
	return []string{"hexofy", "producthunt.com", "theresanaiforthat.com"}
}

func importRouter(importer Importer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewImportHandler(importer, testhelpers.NewTestLogger())
	router.POST("/api/v1/import", handler.Import)
	return router
}

func multipartBody(t *testing.T, fields map[string]string, fileContent string) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	if fileContent != "" {
		part, err := writer.CreateFormFile("file", "upload.csv")
		require.NoError(t, err)
		_, err = part.Write([]byte(fileContent))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestImport_Success(t *testing.T) {
	importer := &fakeImporter{
		summary: &models.ImportSummary{Source: "hexofy", TotalParsed: 2, Imported: 2},
	}
	router := importRouter(importer)

	body, contentType := multipartBody(t, map[string]string{
		"source":           "hexofy",
		"replace_existing": "true",
	}, "title,url\nChatGPT,https://chat.openai.com\n")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/import", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "hexofy", importer.source)
	assert.True(t, importer.replace)
	assert.Contains(t, string(importer.payload), "ChatGPT")

	var summary models.ImportSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.Equal(t, 2, summary.Imported)
}

func TestImport_MissingSource(t *testing.T) {
	router := importRouter(&fakeImporter{})

	body, contentType := multipartBody(t, nil, "a,b\n1,2\n")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/import", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "source is required")
	assert.Contains(t, rec.Body.String(), "hexofy", "error lists the registered sources")
}

func TestImport_MissingFile(t *testing.T) {
	router := importRouter(&fakeImporter{})

	body, contentType := multipartBody(t, map[string]string{"source": "hexofy"}, "")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/import", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "file is required")
}

func TestImport_UnsupportedSource(t *testing.T) {
	importer := &fakeImporter{
		err: &adapters.UnsupportedSourceError{
			Source:    "mystery",
			Available: []string{"hexofy", "producthunt.com"},
		},
	}
	router := importRouter(importer)

	body, contentType := multipartBody(t, map[string]string{"source": "mystery"}, "a,b\n")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/import", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "producthunt.com")
}

func TestImport_FormatError(t *testing.T) {
	importer := &fakeImporter{
		err: &adapters.FormatError{
			Source:  "producthunt.com",
			Missing: []string{"tagline"},
		},
	}
	router := importRouter(importer)

	body, contentType := multipartBody(t, map[string]string{"source": "producthunt"}, "name\nChatGPT\n")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/import", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "tagline")
}

func TestImport_PersistenceErrorKeepsSummary(t *testing.T) {
	importer := &fakeImporter{
		summary: &models.ImportSummary{Source: "hexofy", TotalParsed: 5, Imported: 3, Errors: 2},
		err:     &ingest.PersistenceError{Op: "bulk update", Err: errors.New("db down")},
	}
	router := importRouter(importer)

	body, contentType := multipartBody(t, map[string]string{"source": "hexofy"}, "title\nA\n")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/import", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), `"imported":3`)
}
