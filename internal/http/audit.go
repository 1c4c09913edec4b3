package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mrlokans/highlights-reader/internal/audit"
	"github.com/mrlokans/highlights-reader/internal/entities"
)

const (
	defaultAuditPageSize = 25
	maxAuditPageSize     = 100
)

type AuditController struct {
	auditService *audit.Service
	logger       *zap.Logger
}

func NewAuditController(cfg RouterConfig) *AuditController {
	return &AuditController{
		auditService: cfg.AuditService,
		logger:       cfg.logger(),
	}
}

// GetAuditEvents returns paginated audit events as JSON
// GET /api/audit?type=&limit=&offset=
func (ac *AuditController) GetAuditEvents(c *gin.Context) {
	limit, offset := parsePagination(c, defaultAuditPageSize, maxAuditPageSize)
	eventType := entities.AuditEventType(c.Query("type"))

	events, total, err := ac.auditService.GetEvents(c.Request.Context(), eventType, limit, offset)
	if err != nil {
		respondInternalError(c, ac.logger, err, "load audit events")
		return
	}
	if events == nil {
		events = []entities.AuditEvent{}
	}

	totalPages := (int(total) + limit - 1) / limit
	c.JSON(http.StatusOK, PaginatedResponse{
		Data:       events,
		Total:      total,
		Limit:      limit,
		Offset:     offset,
		HasMore:    int64(offset+len(events)) < total,
		TotalPages: totalPages,
	})
}
