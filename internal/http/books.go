package http

import (
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mrlokans/highlights-reader/internal/exporters"
)

type BooksController struct {
	highlights HighlightReader
	logger     *zap.Logger
}

func NewBooksController(cfg RouterConfig) *BooksController {
	return &BooksController{
		highlights: cfg.Highlights,
		logger:     cfg.logger(),
	}
}

// GetAllBooks lists books with their highlight counts.
// GET /api/books
func (bc *BooksController) GetAllBooks(c *gin.Context) {
	books, err := bc.highlights.Books(c.Request.Context())
	if err != nil {
		respondInternalError(c, bc.logger, err, "list books")
		return
	}
	c.JSON(http.StatusOK, gin.H{"books": books, "count": len(books)})
}

// GetBookHighlights lists the highlights of one book in reading order.
// GET /api/books/highlights?title=...
func (bc *BooksController) GetBookHighlights(c *gin.Context) {
	title := strings.TrimSpace(c.Query("title"))
	if title == "" {
		respondBadRequest(c, "title query parameter is required")
		return
	}

	highlights, err := bc.highlights.HighlightsByBook(c.Request.Context(), title)
	if err != nil {
		respondInternalError(c, bc.logger, err, "list book highlights")
		return
	}
	c.JSON(http.StatusOK, gin.H{"title": title, "highlights": highlights, "count": len(highlights)})
}

// SearchHighlights finds highlights containing the q parameter.
// GET /api/highlights/search?q=...
func (bc *BooksController) SearchHighlights(c *gin.Context) {
	query := c.Query("q")

	results, err := bc.highlights.Search(c.Request.Context(), query)
	if err != nil {
		respondInternalError(c, bc.logger, err, "search highlights")
		return
	}
	c.JSON(http.StatusOK, gin.H{"query": query, "results": results, "count": len(results)})
}

// ExportBook downloads the highlights of one book as a markdown note.
// GET /api/books/export?title=...
func (bc *BooksController) ExportBook(c *gin.Context) {
	title := strings.TrimSpace(c.Query("title"))
	if title == "" {
		respondBadRequest(c, "title query parameter is required")
		return
	}

	highlights, err := bc.highlights.HighlightsByBook(c.Request.Context(), title)
	if err != nil {
		respondInternalError(c, bc.logger, err, "export book")
		return
	}
	if len(highlights) == 0 {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "book not found", Code: "not_found"})
		return
	}

	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": exporters.Filename(title)})
	c.Header("Content-Disposition", disposition)
	c.Data(http.StatusOK, exporters.MarkdownContentType, []byte(exporters.GenerateMarkdown(title, highlights, time.Now())))
}
