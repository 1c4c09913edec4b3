package audit

import (
	"context"
	"fmt"
	"unicode/utf8"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"github.com/mrlokans/highlights-reader/internal/entities"
	"github.com/mrlokans/highlights-reader/internal/services"
)

// unclassifiedErrorCode is recorded for failures that carry no error kind.
const unclassifiedErrorCode = "internal_error"

// EventStore persists and lists audit events.
type EventStore interface {
	LogEvent(ctx context.Context, event *entities.AuditEvent) error
	GetEvents(ctx context.Context, eventType entities.AuditEventType, limit, offset int) ([]entities.AuditEvent, int64, error)
}

// Service provides high-level audit logging functionality. Recording an
// event never fails the caller; write errors are only logged.
type Service struct {
	repo   EventStore
	logger *zap.Logger
}

// NewService creates a new audit service.
func NewService(repo EventStore, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger}
}

// Log records a generic audit event.
func (s *Service) Log(ctx context.Context, event *entities.AuditEvent) {
	if err := s.repo.LogEvent(ctx, event); err != nil {
		s.logger.Warn("failed to log audit event",
			zap.String("action", event.Action),
			zap.Error(err),
		)
	}
}

// LogImport records an import attempt for the given mode.
func (s *Service) LogImport(ctx context.Context, mode string, imported, skipped int, err error) {
	event := &entities.AuditEvent{
		EventType:   entities.AuditEventImport,
		Action:      mode + "_import",
		Description: fmt.Sprintf("Imported %d highlights (%d skipped)", imported, skipped),
		Status:      entities.AuditStatusSuccess,
	}

	metadata := map[string]any{
		"imported": imported,
		"skipped":  skipped,
	}
	if md, e := jsoniter.MarshalToString(metadata); e == nil {
		event.Metadata = md
	}

	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.Description = "Import failed"
		event.ErrorMsg = s.failureCode(event.Action, err)
	}

	s.Log(ctx, event)
}

// LogDelete records a highlight deletion attempt.
func (s *Service) LogDelete(ctx context.Context, highlightID string, err error) {
	event := &entities.AuditEvent{
		EventType:   entities.AuditEventDelete,
		Action:      "highlight_delete",
		Description: "Deleted highlight " + highlightID,
		EntityID:    truncate(highlightID, 36),
		Status:      entities.AuditStatusSuccess,
	}

	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.Description = "Failed to delete highlight " + highlightID
		event.ErrorMsg = s.failureCode(event.Action, err)
	}

	s.Log(ctx, event)
}

// GetEvents retrieves paginated audit events.
func (s *Service) GetEvents(ctx context.Context, eventType entities.AuditEventType, limit, offset int) ([]entities.AuditEvent, int64, error) {
	return s.repo.GetEvents(ctx, eventType, limit, offset)
}

// failureCode reduces err to its error kind. The full error is only logged.
func (s *Service) failureCode(action string, err error) string {
	s.logger.Warn("recording failed operation",
		zap.String("action", action),
		zap.Error(err),
	)
	if kind := services.KindOf(err); kind != "" {
		return string(kind)
	}
	return unclassifiedErrorCode
}

// truncate shortens a string to maxLen characters.
func truncate(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLen-3]) + "..."
}
