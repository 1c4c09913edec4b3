package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/highlights-reader/internal/locale"
	"github.com/mrlokans/highlights-reader/internal/logging"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	log := cfg.logger()

	router := gin.New()
	router.Use(logging.RequestID())
	router.Use(logging.Middleware(log))
	router.Use(logging.Recovery(log))
	router.Use(securityHeaders())
	router.Use(locale.Middleware(cfg.Translator))

	health := NewHealthController(cfg)
	router.GET("/health", health.Status)
	router.GET("/ping", ping)
	if cfg.Metrics != nil {
		router.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	api := router.Group("/api")
	if cfg.ReadOnly {
		api.Use(readOnly())
	}

	importer := NewImportController(cfg)
	api.POST("/import/clippings", importer.ImportClippings)
	api.POST("/import/json", importer.ImportJSON)

	books := NewBooksController(cfg)
	api.GET("/books", books.GetAllBooks)
	api.GET("/books/highlights", books.GetBookHighlights)
	api.GET("/books/export", books.ExportBook)
	api.GET("/highlights/search", books.SearchHighlights)

	deletes := NewDeleteController(cfg)
	api.DELETE("/highlights/:id", deletes.DeleteHighlight)

	if cfg.AuditService != nil {
		auditController := NewAuditController(cfg)
		api.GET("/audit", auditController.GetAuditEvents)
	}

	return router
}
