// Package highlights stores imported highlights and answers the reader
// queries (books with counts, highlights of a book, text search).
package highlights

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/mrlokans/highlights-reader/internal/entities"
	"github.com/mrlokans/highlights-reader/internal/services"
)

var (
	_ services.HighlightCreator = (*Repository)(nil)
	_ services.HighlightStore   = (*Repository)(nil)
)

// insertBatchSize keeps each INSERT well below sqlite's bound-variable limit.
const insertBatchSize = 100

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateHighlights inserts the whole batch in one transaction. Either every
// row is stored or none is.
func (r *Repository) CreateHighlights(ctx context.Context, highlights []entities.Highlight) (int, error) {
	if len(highlights) == 0 {
		return 0, nil
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(&highlights, insertBatchSize).Error
	})
	if err != nil {
		return 0, fmt.Errorf("failed to insert %d highlights: %w", len(highlights), err)
	}
	return len(highlights), nil
}

// DeleteHighlight removes a highlight by id and returns
// entities.ErrHighlightNotFound when nothing matched.
func (r *Repository) DeleteHighlight(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Highlight{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return entities.ErrHighlightNotFound
	}
	return nil
}

// GroupByBook returns one row per (title, author) ordered by title.
func (r *Repository) GroupByBook(ctx context.Context) ([]entities.BookSummary, error) {
	var books []entities.BookSummary
	err := r.db.WithContext(ctx).Model(&entities.Highlight{}).
		Select("book_title, author, COUNT(*) AS count").
		Group("book_title, author").
		Order("book_title ASC, author ASC").
		Scan(&books).Error
	return books, err
}

// ListByBook returns the highlights of one title. Rows without a location
// come first, ties keep insertion order.
func (r *Repository) ListByBook(ctx context.Context, bookTitle string) ([]entities.Highlight, error) {
	var highlights []entities.Highlight
	err := r.db.WithContext(ctx).
		Where("book_title = ?", bookTitle).
		Order("location ASC, created_at ASC, rowid ASC").
		Find(&highlights).Error
	return highlights, err
}

// Search matches query as a literal substring of the highlight text.
func (r *Repository) Search(ctx context.Context, query string, limit int) ([]entities.Highlight, error) {
	var highlights []entities.Highlight
	pattern := "%" + likeEscaper.Replace(query) + "%"

	q := r.db.WithContext(ctx).
		Where(`text LIKE ? ESCAPE '\'`, pattern).
		Order("created_at DESC, rowid DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&highlights).Error
	return highlights, err
}

// Count returns the number of stored highlights. It backs the health check.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&entities.Highlight{}).Count(&total).Error
	return total, err
}
