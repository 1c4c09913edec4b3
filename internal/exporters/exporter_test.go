package exporters

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mrlokans/highlights-reader/internal/entities"
)

func TestGenerateMarkdown(t *testing.T) {
	loc := 638
	highlights := []entities.Highlight{
		{BookTitle: "Dune", Author: "Frank Herbert", Text: "Fear is the mind-killer.", Location: &loc},
		{BookTitle: "Dune", Author: "Frank Herbert", Text: "I must not fear."},
	}
	exportedAt := time.Date(2024, 1, 2, 15, 4, 0, 0, time.UTC)

	md := GenerateMarkdown("Dune", highlights, exportedAt)

	assert.True(t, strings.HasPrefix(md, "---\ntitle: \"Dune\"\nauthor: \"Frank Herbert\"\n"))
	assert.Contains(t, md, "highlights: 2\n")
	assert.Contains(t, md, "exported_at: 2024-01-02\n")
	assert.Contains(t, md, "> Fear is the mind-killer.\n\n*Location 638*\n\n")
	assert.Contains(t, md, "> I must not fear.\n\n")
	assert.Equal(t, 1, strings.Count(md, "*Location"))
	assert.Less(t, strings.Index(md, "mind-killer"), strings.Index(md, "must not fear"))
}

func TestGenerateMarkdown_EscapesFrontMatter(t *testing.T) {
	md := GenerateMarkdown(`The "Quoted" Book`, []entities.Highlight{
		{Author: "A", Text: "one"},
		{Author: "B", Text: "two"},
		{Author: "A", Text: "three"},
	}, time.Now())

	assert.Contains(t, md, `title: "The \"Quoted\" Book"`)
	assert.Contains(t, md, `author: "A, B"`)
}

func TestGenerateMarkdown_Empty(t *testing.T) {
	md := GenerateMarkdown("Dune", nil, time.Now())
	assert.Contains(t, md, "highlights: 0\n")
	assert.Contains(t, md, `author: ""`)
}

func TestFilename(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"plain", "Dune", "Dune.md"},
		{"invalid characters", `What/If: "Serious"?`, "What If Serious.md"},
		{"control characters", "Line\nBreak\tTab", "Line Break Tab.md"},
		{"trailing dots", "Wait...", "Wait.md"},
		{"empty", "", "Untitled.md"},
		{"only invalid", `<>:?*`, "Untitled.md"},
		{"unicode kept", "Memórias Póstumas", "Memórias Póstumas.md"},
		{"long", strings.Repeat("é", 250), strings.Repeat("é", 200) + ".md"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Filename(tt.title))
		})
	}
}

func TestGenerateMarkdown_EscapesBackslashes(t *testing.T) {
	md := GenerateMarkdown(`C:\notes "draft"`, []entities.Highlight{
		{Author: "Line\nBreak", Text: "body"},
	}, time.Now())

	assert.Contains(t, md, `title: "C:\\notes \"draft\""`+"\n")
	assert.Contains(t, md, `author: "Line\nBreak"`+"\n")
}
