package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/highlights-reader/internal/audit"
	"github.com/mrlokans/highlights-reader/internal/config"
	"github.com/mrlokans/highlights-reader/internal/database"
	auditRepo "github.com/mrlokans/highlights-reader/internal/database/audit"
	"github.com/mrlokans/highlights-reader/internal/database/highlights"
	"github.com/mrlokans/highlights-reader/internal/entities"
	"github.com/mrlokans/highlights-reader/internal/metrics"
	"github.com/mrlokans/highlights-reader/internal/services"
)

// setupIntegrationRouter wires the full stack over a temporary sqlite file.
func setupIntegrationRouter(t *testing.T) (*gin.Engine, *highlights.Repository) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "app.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := highlights.NewRepository(db.DB)
	upload := config.DefaultUpload()

	router := NewRouter(RouterConfig{
		Importer:         services.NewImportService(repo, upload, nil),
		Highlights:       services.NewHighlightService(repo, config.DefaultSearchLimit, nil),
		Database:         db,
		AuditService:     audit.NewService(auditRepo.NewRepository(db.DB), nil),
		Metrics:          metrics.New(),
		Translator:       newTestTranslator(t),
		MaxFileSizeBytes: upload.MaxFileSizeBytes,
		Version:          "test",
	})
	return router, repo
}

func TestRouter_ImportBrowseDelete(t *testing.T) {
	router, repo := setupIntegrationRouter(t)

	clippings := clippingsFixture +
		"Sapiens (Yuval Noah Harari)\n- Your Highlight on Location 12\n\nEarlier passage.\n==========\n" +
		"Dune (Frank Herbert)\n- Your Highlight on Location 1,482\n\nFear is the mind-killer.\n==========\n"
	w := serve(router, uploadRequest(t, "/api/import/clippings", "My Clippings.txt", "text/plain", []byte(clippings)))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = serve(router, httptest.NewRequest(http.MethodGet, "/api/books", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var booksResp struct {
		Books []entities.BookSummary `json:"books"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &booksResp))
	assert.Equal(t, []entities.BookSummary{
		{BookTitle: "Dune", Author: "Frank Herbert", Count: 1},
		{BookTitle: "Sapiens", Author: "Yuval Noah Harari", Count: 2},
	}, booksResp.Books)

	w = serve(router, httptest.NewRequest(http.MethodGet, "/api/books/highlights?title=Sapiens", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var byBook struct {
		Highlights []entities.Highlight `json:"highlights"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &byBook))
	require.Len(t, byBook.Highlights, 2)
	assert.Equal(t, "Earlier passage.", byBook.Highlights[0].Text)

	w = serve(router, httptest.NewRequest(http.MethodGet, "/api/highlights/search?q=MIND", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var search struct {
		Results []entities.Highlight `json:"results"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &search))
	require.Len(t, search.Results, 1)
	require.NotNil(t, search.Results[0].Location)
	assert.Equal(t, 1482, *search.Results[0].Location)

	target := fmt.Sprintf("/api/highlights/%s", search.Results[0].ID)
	w = serve(router, httptest.NewRequest(http.MethodDelete, target, nil))
	require.Equal(t, http.StatusOK, w.Code)

	total, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	w = serve(router, httptest.NewRequest(http.MethodDelete, target, nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = serve(router, httptest.NewRequest(http.MethodGet, "/api/audit?type=delete", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var auditResp struct {
		Data  []entities.AuditEvent `json:"data"`
		Total int64                 `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &auditResp))
	assert.Equal(t, int64(2), auditResp.Total)
}

func TestRouter_ProbesAndHeaders(t *testing.T) {
	router, _ := setupIntegrationRouter(t)

	w := serve(router, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = serve(router, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	serve(router, uploadRequest(t, "/api/import/json", "x.json", "application/json", []byte("[]")))
	w = serve(router, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `highlights_imports_total{mode="json",outcome="no_valid_highlights"} 1`)
}

func TestRouter_AuditHidesStorageErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)

	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "app.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	creator := &mockCreator{err: fmt.Errorf("UNIQUE constraint failed: highlights.id")}
	reader := services.NewHighlightService(highlights.NewRepository(db.DB), config.DefaultSearchLimit, nil)
	router := NewRouter(RouterConfig{
		Importer:         services.NewImportService(creator, config.DefaultUpload(), nil),
		Highlights:       reader,
		Database:         db,
		AuditService:     audit.NewService(auditRepo.NewRepository(db.DB), nil),
		Translator:       newTestTranslator(t),
		MaxFileSizeBytes: config.DefaultMaxFileSizeBytes,
	})

	w := serve(router, uploadRequest(t, "/api/import/clippings", "My Clippings.txt", "text/plain", []byte(clippingsFixture)))
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"storage_error"`)

	// Deleting against a missing table fails with a driver error.
	require.NoError(t, db.DB.Migrator().DropTable("highlights"))
	w = serve(router, httptest.NewRequest(http.MethodDelete, "/api/highlights/abc", nil))
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "no such table")

	w = serve(router, httptest.NewRequest(http.MethodGet, "/api/audit", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "UNIQUE")
	assert.NotContains(t, w.Body.String(), "no such table")

	var auditResp struct {
		Data []entities.AuditEvent `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &auditResp))
	codes := map[string]string{}
	for _, e := range auditResp.Data {
		codes[e.Action] = e.ErrorMsg
	}
	assert.Equal(t, map[string]string{
		"clippings_import": "storage_error",
		"highlight_delete": "delete_failed",
	}, codes)
}
