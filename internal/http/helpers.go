package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mrlokans/highlights-reader/internal/entities"
	"github.com/mrlokans/highlights-reader/internal/locale"
	"github.com/mrlokans/highlights-reader/internal/services"
)

// --- Response Types ---

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`    // machine-readable error code
	Details any    `json:"details,omitempty"` // message parameters, e.g. the import limit
}

// SuccessResponse is a standard success response with optional data.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// ImportResponse is returned by both import endpoints on success.
type ImportResponse struct {
	Success  bool   `json:"success"`
	Imported int    `json:"imported"`
	Skipped  int    `json:"skipped"`
	Message  string `json:"message"`
}

// PaginatedResponse wraps paginated data with metadata.
type PaginatedResponse struct {
	Data       any   `json:"data"`
	Total      int64 `json:"total"`
	Limit      int   `json:"limit"`
	Offset     int   `json:"offset"`
	HasMore    bool  `json:"has_more"`
	TotalPages int   `json:"total_pages,omitempty"`
}

const internalErrorCode = "internal_error"

// statusForError maps an error kind to its HTTP status.
func statusForError(err *services.Error) int {
	switch err.Kind {
	case services.KindMissingFile, services.KindInvalidJSON, services.KindNotAnArray:
		return http.StatusBadRequest
	case services.KindFileTooLarge:
		return http.StatusRequestEntityTooLarge
	case services.KindInvalidFileType:
		return http.StatusUnsupportedMediaType
	case services.KindNoHighlightsFound, services.KindNoValidHighlights, services.KindTooManyHighlights:
		return http.StatusUnprocessableEntity
	case services.KindDeleteFailed:
		if errors.Is(err, entities.ErrHighlightNotFound) {
			return http.StatusNotFound
		}
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// --- Error Response Helpers ---

// respondBadRequest sends a 400 Bad Request response.
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}

// respondInternalError logs the error and sends a 500 Internal Server Error response.
// The actual error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, log *zap.Logger, err error, context string) {
	log.Error("internal error", zap.String("context", context), zap.Error(err))
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error", Code: internalErrorCode})
}

// respondServiceError renders a classified failure with its localized
// message. Anything unclassified becomes a generic 500.
func respondServiceError(c *gin.Context, tr *locale.Translator, log *zap.Logger, err error, context string) {
	serr, ok := services.AsError(err)
	if !ok {
		respondInternalError(c, log, err, context)
		return
	}

	resp := ErrorResponse{
		Error: tr.Message(locale.FromContext(c), string(serr.Kind), serr.Params),
		Code:  string(serr.Kind),
	}
	if len(serr.Params) > 0 {
		resp.Details = serr.Params
	}
	c.JSON(statusForError(serr), resp)
}

// --- Parameter Parsing ---

// parsePagination reads limit and offset query parameters, clamping limit to
// [1, maxLimit].
func parsePagination(c *gin.Context, defaultLimit, maxLimit int) (limit, offset int) {
	limit = queryInt(c, "limit", defaultLimit)
	offset = queryInt(c, "offset", 0)
	if limit < 1 || limit > maxLimit {
		limit = defaultLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// queryInt returns the integer value of a query parameter, or def when it is
// absent or malformed.
func queryInt(c *gin.Context, key string, def int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return def
	}
	return v
}
