package services

import (
	"context"
	"errors"
	"io"

	"github.com/mrlokans/highlights-reader/internal/entities"
)

type mockCreator struct {
	calls   int
	created []entities.Highlight
	err     error
}

func (m *mockCreator) CreateHighlights(_ context.Context, highlights []entities.Highlight) (int, error) {
	m.calls++
	if m.err != nil {
		return 0, m.err
	}
	m.created = append(m.created, highlights...)
	return len(highlights), nil
}

type mockHighlightStore struct {
	deletedID   string
	deleteErr   error
	books       []entities.BookSummary
	byBook      map[string][]entities.Highlight
	searchCalls int
	searchQuery string
	searchLimit int
	searchErr   error
	results     []entities.Highlight
}

func (m *mockHighlightStore) DeleteHighlight(_ context.Context, id string) error {
	m.deletedID = id
	return m.deleteErr
}

func (m *mockHighlightStore) GroupByBook(_ context.Context) ([]entities.BookSummary, error) {
	return m.books, nil
}

func (m *mockHighlightStore) ListByBook(_ context.Context, bookTitle string) ([]entities.Highlight, error) {
	return m.byBook[bookTitle], nil
}

func (m *mockHighlightStore) Search(_ context.Context, query string, limit int) ([]entities.Highlight, error) {
	m.searchCalls++
	m.searchQuery = query
	m.searchLimit = limit
	return m.results, m.searchErr
}

// trackingReader records whether the content was touched.
type trackingReader struct {
	r    io.Reader
	read bool
}

func (t *trackingReader) Read(p []byte) (int, error) {
	t.read = true
	return t.r.Read(p)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("connection reset")
}
