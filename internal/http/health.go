package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mrlokans/highlights-reader/internal/database"
)

const (
	healthOK        = "ok"
	healthHealthy   = "healthy"
	healthUnhealthy = "unhealthy"
)

type HealthResponse struct {
	Status     string            `json:"status"`
	Time       string            `json:"time"`
	Version    string            `json:"version,omitempty"`
	Highlights *int64            `json:"highlights,omitempty"`
	Checks     map[string]string `json:"checks"`
}

// HealthController reports database reachability, schema state and the
// number of stored highlights.
type HealthController struct {
	db      *database.Database
	counter HighlightCounter
	version string
	logger  *zap.Logger
}

func NewHealthController(cfg RouterConfig) *HealthController {
	return &HealthController{
		db:      cfg.Database,
		counter: cfg.Counter,
		version: cfg.Version,
		logger:  cfg.logger(),
	}
}

// Status handles GET /health. Any failed check turns the response into 503.
// Failure details go to the log only.
func (h *HealthController) Status(c *gin.Context) {
	health := HealthResponse{
		Status:  healthHealthy,
		Time:    time.Now().Format(time.RFC3339),
		Version: h.version,
		Checks:  make(map[string]string),
	}
	fail := func(check, result string, err error) {
		health.Checks[check] = result
		health.Status = healthUnhealthy
		if err != nil {
			h.logger.Warn("health check failed", zap.String("check", check), zap.Error(err))
		}
	}

	if h.db == nil {
		fail("database", "not configured", nil)
	} else if sqlDB, err := h.db.DB.DB(); err != nil {
		fail("database", "unreachable", err)
	} else if err := sqlDB.PingContext(c.Request.Context()); err != nil {
		fail("database", "unreachable", err)
	} else {
		health.Checks["database"] = healthOK

		if missing, err := h.db.MissingTables(); err != nil {
			fail("schema", "unknown", err)
		} else if len(missing) > 0 {
			fail("schema", "missing tables: "+strings.Join(missing, ", "), nil)
		} else {
			health.Checks["schema"] = healthOK
		}
	}

	if h.counter != nil && health.Status == healthHealthy {
		if total, err := h.counter.Count(c.Request.Context()); err != nil {
			fail("highlights", "count failed", err)
		} else {
			health.Highlights = &total
		}
	}

	statusCode := http.StatusOK
	if health.Status != healthHealthy {
		statusCode = http.StatusServiceUnavailable
	}
	c.IndentedJSON(statusCode, health)
}

func ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}
