package http

import (
	"go.uber.org/zap"

	"github.com/mrlokans/highlights-reader/internal/audit"
	"github.com/mrlokans/highlights-reader/internal/database"
	"github.com/mrlokans/highlights-reader/internal/locale"
	"github.com/mrlokans/highlights-reader/internal/metrics"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Importer   Importer
	Highlights HighlightReader
	Database   *database.Database
	Counter    HighlightCounter

	// Optional collaborators; nil disables the matching feature.
	AuditService *audit.Service
	Metrics      *metrics.Metrics

	Translator *locale.Translator
	Logger     *zap.Logger

	// MaxFileSizeBytes is the per-file upload limit. The request body is
	// capped slightly above it to leave room for multipart framing.
	MaxFileSizeBytes int64

	// ReadOnly rejects every write request with 403.
	ReadOnly bool

	// Application info
	Version string
}

func (cfg RouterConfig) logger() *zap.Logger {
	if cfg.Logger == nil {
		return zap.NewNop()
	}
	return cfg.Logger
}
