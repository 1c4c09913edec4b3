package http

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/highlights-reader/internal/entities"
	"github.com/mrlokans/highlights-reader/internal/locale"
)

func newTestTranslator(t *testing.T) *locale.Translator {
	t.Helper()
	tr, err := locale.NewTranslator("pt-BR")
	require.NoError(t, err)
	return tr
}

// uploadRequest builds a multipart request with a single "file" part.
func uploadRequest(t *testing.T, target, filename, contentType string, content []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	if contentType != "" {
		header.Set("Content-Type", contentType)
	}
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func serve(router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

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

type mockHighlightReader struct {
	deletedID string
	deleteErr error
	books     []entities.BookSummary
	byBook    []entities.Highlight
	results   []entities.Highlight
	readErr   error
}

func (m *mockHighlightReader) DeleteHighlight(_ context.Context, id string) error {
	m.deletedID = id
	return m.deleteErr
}

func (m *mockHighlightReader) Books(context.Context) ([]entities.BookSummary, error) {
	return m.books, m.readErr
}

func (m *mockHighlightReader) HighlightsByBook(context.Context, string) ([]entities.Highlight, error) {
	return m.byBook, m.readErr
}

func (m *mockHighlightReader) Search(context.Context, string) ([]entities.Highlight, error) {
	return m.results, m.readErr
}
