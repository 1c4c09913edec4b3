package services

import (
	"context"

	"github.com/mrlokans/highlights-reader/internal/entities"
)

// HighlightCreator persists an accepted batch in one operation and reports
// how many rows were written.
type HighlightCreator interface {
	CreateHighlights(ctx context.Context, highlights []entities.Highlight) (int, error)
}

// HighlightStore provides the read and delete operations used by the
// reader pages.
type HighlightStore interface {
	DeleteHighlight(ctx context.Context, id string) error
	GroupByBook(ctx context.Context) ([]entities.BookSummary, error)
	ListByBook(ctx context.Context, bookTitle string) ([]entities.Highlight, error)
	Search(ctx context.Context, query string, limit int) ([]entities.Highlight, error)
}

// ImportResult contains the outcome of an import operation.
type ImportResult struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}
