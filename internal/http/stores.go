package http

import (
	"context"

	"github.com/mrlokans/highlights-reader/internal/entities"
	"github.com/mrlokans/highlights-reader/internal/services"
)

// Importer validates and stores one uploaded file.
type Importer interface {
	Import(ctx context.Context, mode services.Mode, file *services.File) (services.ImportResult, error)
}

// HighlightReader serves the reader views and deletions.
type HighlightReader interface {
	DeleteHighlight(ctx context.Context, id string) error
	Books(ctx context.Context) ([]entities.BookSummary, error)
	HighlightsByBook(ctx context.Context, bookTitle string) ([]entities.Highlight, error)
	Search(ctx context.Context, query string) ([]entities.Highlight, error)
}

// HighlightCounter reports the number of stored highlights.
type HighlightCounter interface {
	Count(ctx context.Context) (int64, error)
}

var (
	_ Importer        = (*services.ImportService)(nil)
	_ HighlightReader = (*services.HighlightService)(nil)
)
