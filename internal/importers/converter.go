package importers

import (
	"github.com/mrlokans/highlights-reader/internal/entities"
	"github.com/mrlokans/highlights-reader/internal/kindle"
)

// Batch is the output of a single conversion.
type Batch struct {
	Highlights []entities.HighlightInput
	// Skipped counts records that were present in the file but failed
	// per-record validation.
	Skipped int
}

// Converter transforms the text of an uploaded file into candidate highlights.
//
// Implementations:
//   - ClippingsConverter - Kindle clippings export
//   - JSONConverter - structured JSON export
type Converter interface {
	Convert(content string) (Batch, error)
}

// ClippingsConverter adapts kindle.Parser to the Converter interface.
// It never returns an error.
type ClippingsConverter struct {
	parser *kindle.Parser
}

func NewClippingsConverter(maxHighlightLength int) *ClippingsConverter {
	return &ClippingsConverter{parser: kindle.NewParser(maxHighlightLength)}
}

func (c *ClippingsConverter) Convert(content string) (Batch, error) {
	return Batch{Highlights: c.parser.Parse(content)}, nil
}

var _ Converter = (*ClippingsConverter)(nil)
