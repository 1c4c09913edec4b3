package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mrlokans/highlights-reader/internal/audit"
	"github.com/mrlokans/highlights-reader/internal/locale"
	"github.com/mrlokans/highlights-reader/internal/metrics"
	"github.com/mrlokans/highlights-reader/internal/services"
)

const (
	// formFileField is the multipart field both import endpoints read.
	formFileField = "file"

	multipartOverheadBytes = 64 * 1024
)

type ImportController struct {
	importer         Importer
	translator       *locale.Translator
	auditService     *audit.Service
	metrics          *metrics.Metrics
	logger           *zap.Logger
	maxFileSizeBytes int64
}

func NewImportController(cfg RouterConfig) *ImportController {
	return &ImportController{
		importer:         cfg.Importer,
		translator:       cfg.Translator,
		auditService:     cfg.AuditService,
		metrics:          cfg.Metrics,
		logger:           cfg.logger(),
		maxFileSizeBytes: cfg.MaxFileSizeBytes,
	}
}

// ImportClippings handles a Kindle "My Clippings.txt" upload.
// POST /api/import/clippings
func (ic *ImportController) ImportClippings(c *gin.Context) {
	ic.handle(c, services.ModeClippings)
}

// ImportJSON handles a JSON array upload.
// POST /api/import/json
func (ic *ImportController) ImportJSON(c *gin.Context) {
	ic.handle(c, services.ModeJSON)
}

func (ic *ImportController) handle(c *gin.Context, mode services.Mode) {
	if ic.maxFileSizeBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, ic.maxFileSizeBytes+multipartOverheadBytes)
	}

	multipartFile, header, err := c.Request.FormFile(formFileField)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			ic.finish(c, mode, services.ImportResult{}, &services.Error{
				Kind:   services.KindFileTooLarge,
				Err:    err,
				Params: map[string]any{"MaxMB": ic.maxFileSizeBytes / (1024 * 1024)},
			})
			return
		}
		// No usable file part; the import service reports it as missing.
		result, err := ic.importer.Import(c.Request.Context(), mode, nil)
		ic.finish(c, mode, result, err)
		return
	}
	defer multipartFile.Close()

	result, err := ic.importer.Import(c.Request.Context(), mode, &services.File{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Content:     multipartFile,
	})
	ic.finish(c, mode, result, err)
}

func (ic *ImportController) finish(c *gin.Context, mode services.Mode, result services.ImportResult, err error) {
	outcome := metrics.OutcomeSuccess
	if err != nil {
		outcome = string(services.KindOf(err))
		if outcome == "" {
			outcome = internalErrorCode
		}
	}
	if ic.metrics != nil {
		ic.metrics.RecordImport(string(mode), outcome, result.Imported, result.Skipped)
	}
	if ic.auditService != nil {
		ic.auditService.LogImport(c.Request.Context(), string(mode), result.Imported, result.Skipped, err)
	}

	if err != nil {
		respondServiceError(c, ic.translator, ic.logger, err, string(mode)+" import")
		return
	}

	c.JSON(http.StatusOK, ImportResponse{
		Success:  true,
		Imported: result.Imported,
		Skipped:  result.Skipped,
		Message: ic.translator.Message(locale.FromContext(c), locale.MessageImportSuccess, map[string]any{
			"Imported": result.Imported,
			"Skipped":  result.Skipped,
		}),
	})
}
