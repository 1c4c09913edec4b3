package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mrlokans/highlights-reader/internal/audit"
	"github.com/mrlokans/highlights-reader/internal/locale"
	"github.com/mrlokans/highlights-reader/internal/metrics"
	"github.com/mrlokans/highlights-reader/internal/services"
)

type DeleteController struct {
	highlights   HighlightReader
	translator   *locale.Translator
	auditService *audit.Service
	metrics      *metrics.Metrics
	logger       *zap.Logger
}

func NewDeleteController(cfg RouterConfig) *DeleteController {
	return &DeleteController{
		highlights:   cfg.Highlights,
		translator:   cfg.Translator,
		auditService: cfg.AuditService,
		metrics:      cfg.Metrics,
		logger:       cfg.logger(),
	}
}

// DeleteHighlight removes a single highlight.
// DELETE /api/highlights/:id
func (dc *DeleteController) DeleteHighlight(c *gin.Context) {
	id := c.Param("id")

	err := dc.highlights.DeleteHighlight(c.Request.Context(), id)

	if dc.auditService != nil {
		dc.auditService.LogDelete(c.Request.Context(), id, err)
	}
	if dc.metrics != nil {
		outcome := metrics.OutcomeSuccess
		if err != nil {
			outcome = string(services.KindDeleteFailed)
		}
		dc.metrics.RecordDelete(outcome)
	}

	if err != nil {
		respondServiceError(c, dc.translator, dc.logger, err, "delete highlight")
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Message: dc.translator.Message(locale.FromContext(c), locale.MessageDeleteSuccess, nil),
		Data:    gin.H{"id": id},
	})
}
