package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/mrlokans/highlights-reader/internal/entities"
)

// HighlightService serves the reader views and deletions.
type HighlightService struct {
	store       HighlightStore
	searchLimit int
	logger      *zap.Logger
}

func NewHighlightService(store HighlightStore, searchLimit int, logger *zap.Logger) *HighlightService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HighlightService{store: store, searchLimit: searchLimit, logger: logger}
}

// DeleteHighlight removes one highlight. Any failure is reported as
// KindDeleteFailed; the cause stays in the wrapped error.
func (s *HighlightService) DeleteHighlight(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return newError(KindDeleteFailed, entities.ErrHighlightNotFound, nil)
	}

	if err := s.store.DeleteHighlight(ctx, id); err != nil {
		s.logger.Warn("failed to delete highlight", zap.String("id", id), zap.Error(err))
		return newError(KindDeleteFailed, fmt.Errorf("delete highlight %s: %w", id, err), nil)
	}

	s.logger.Info("deleted highlight", zap.String("id", id))
	return nil
}

// Books lists every (title, author) pair with its highlight count.
func (s *HighlightService) Books(ctx context.Context) ([]entities.BookSummary, error) {
	books, err := s.store.GroupByBook(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to group highlights by book: %w", err)
	}
	if books == nil {
		books = []entities.BookSummary{}
	}
	return books, nil
}

func (s *HighlightService) HighlightsByBook(ctx context.Context, bookTitle string) ([]entities.Highlight, error) {
	highlights, err := s.store.ListByBook(ctx, bookTitle)
	if err != nil {
		return nil, fmt.Errorf("failed to list highlights for %q: %w", bookTitle, err)
	}
	if highlights == nil {
		highlights = []entities.Highlight{}
	}
	return highlights, nil
}

// Search returns the newest highlights whose text contains query verbatim,
// surrounding whitespace included. An empty query matches nothing.
func (s *HighlightService) Search(ctx context.Context, query string) ([]entities.Highlight, error) {
	if query == "" {
		return []entities.Highlight{}, nil
	}

	highlights, err := s.store.Search(ctx, query, s.searchLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to search highlights: %w", err)
	}
	if highlights == nil {
		highlights = []entities.Highlight{}
	}
	return highlights, nil
}
