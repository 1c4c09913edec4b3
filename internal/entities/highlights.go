package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HighlightInput is a candidate highlight produced by an importer, before it
// reaches storage.
type HighlightInput struct {
	BookTitle string `json:"bookTitle"`
	Author    string `json:"author"`
	Text      string `json:"text"`
	Location  *int   `json:"location,omitempty"`
}

// Highlight is a persisted highlight. Identity is assigned on create.
type Highlight struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	BookTitle string    `gorm:"index;size:512" json:"bookTitle"`
	Author    string    `gorm:"index;size:256" json:"author"`
	Text      string    `gorm:"type:text" json:"text"`
	Location  *int      `json:"location"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
}

func (Highlight) TableName() string {
	return "highlights"
}

// BeforeCreate assigns a UUID when the caller did not provide one.
func (h *Highlight) BeforeCreate(_ *gorm.DB) error {
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	return nil
}

// NewHighlight converts a validated input into a row ready for storage.
func NewHighlight(in HighlightInput) Highlight {
	return Highlight{
		BookTitle: in.BookTitle,
		Author:    in.Author,
		Text:      in.Text,
		Location:  in.Location,
	}
}

// BookSummary is one row of the "highlights grouped by book" view.
type BookSummary struct {
	BookTitle string `json:"bookTitle"`
	Author    string `json:"author"`
	Count     int64  `json:"count"`
}
