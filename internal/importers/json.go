package importers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"

	"github.com/mrlokans/highlights-reader/internal/entities"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var (
	ErrInvalidJSON = errors.New("invalid JSON")
	ErrNotAnArray  = errors.New("JSON payload is not an array")
)

// jsonHighlight holds the trimmed string fields of one array element.
type jsonHighlight struct {
	BookTitle string `validate:"required"`
	Author    string `validate:"required"`
	Text      string `validate:"required"`
}

// JSONConverter decodes a JSON array of highlight objects:
//
//	[{"bookTitle": "...", "author": "...", "text": "...", "location": 42}]
//
// Elements that are not objects, miss a field, carry a non-string field, or
// whose text is too long are skipped rather than failing the batch.
type JSONConverter struct {
	maxHighlightLength int
	validate           *validator.Validate
}

func NewJSONConverter(maxHighlightLength int) *JSONConverter {
	return &JSONConverter{
		maxHighlightLength: maxHighlightLength,
		validate:           validator.New(),
	}
}

func (c *JSONConverter) Convert(content string) (Batch, error) {
	if strings.TrimSpace(content) == "" {
		return Batch{}, fmt.Errorf("%w: empty payload", ErrInvalidJSON)
	}

	var parsed any
	if err := json.UnmarshalFromString(content, &parsed); err != nil {
		return Batch{}, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}

	items, ok := parsed.([]any)
	if !ok {
		return Batch{}, ErrNotAnArray
	}

	batch := Batch{Highlights: make([]entities.HighlightInput, 0, len(items))}
	for _, item := range items {
		highlight, ok := c.convertItem(item)
		if !ok {
			batch.Skipped++
			continue
		}
		batch.Highlights = append(batch.Highlights, highlight)
	}
	return batch, nil
}

func (c *JSONConverter) convertItem(item any) (entities.HighlightInput, bool) {
	fields, ok := item.(map[string]any)
	if !ok {
		return entities.HighlightInput{}, false
	}

	bookTitle, ok1 := fields["bookTitle"].(string)
	author, ok2 := fields["author"].(string)
	text, ok3 := fields["text"].(string)
	if !ok1 || !ok2 || !ok3 {
		return entities.HighlightInput{}, false
	}

	trimmed := jsonHighlight{
		BookTitle: strings.TrimSpace(bookTitle),
		Author:    strings.TrimSpace(author),
		Text:      strings.TrimSpace(text),
	}
	if err := c.validate.Struct(trimmed); err != nil {
		return entities.HighlightInput{}, false
	}

	// The length limit applies to the text as uploaded, before trimming.
	if c.maxHighlightLength > 0 {
		if err := c.validate.Var(text, fmt.Sprintf("max=%d", c.maxHighlightLength)); err != nil {
			return entities.HighlightInput{}, false
		}
	}

	return entities.HighlightInput{
		BookTitle: trimmed.BookTitle,
		Author:    trimmed.Author,
		Text:      trimmed.Text,
		Location:  ParseLocation(fields["location"]),
	}, true
}

var _ Converter = (*JSONConverter)(nil)
