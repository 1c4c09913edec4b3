// Package exporters renders stored highlights into portable formats.
package exporters

import (
	"fmt"
	"strings"
	"time"

	"github.com/mrlokans/highlights-reader/internal/entities"
)

// MarkdownContentType is served with exported notes.
const MarkdownContentType = "text/markdown; charset=utf-8"

// GenerateMarkdown renders the highlights of one book as a markdown note with
// YAML front matter. Highlights are written in the order given.
func GenerateMarkdown(title string, highlights []entities.Highlight, exportedAt time.Time) string {
	var builder strings.Builder

	fmt.Fprintf(&builder, "---\n")
	fmt.Fprintf(&builder, "title: %s\n", quote(title))
	fmt.Fprintf(&builder, "author: %s\n", quote(authors(highlights)))
	fmt.Fprintf(&builder, "content_type: book_highlights\n")
	fmt.Fprintf(&builder, "highlights: %d\n", len(highlights))
	fmt.Fprintf(&builder, "exported_at: %s\n", exportedAt.Format("2006-01-02"))
	fmt.Fprintf(&builder, "tags: highlights, books\n")
	fmt.Fprintf(&builder, "---\n\n")
	fmt.Fprintf(&builder, "# %s\n\n", title)
	fmt.Fprintf(&builder, "## Highlights\n\n")

	for _, highlight := range highlights {
		fmt.Fprintf(&builder, "> %s\n\n", strings.ReplaceAll(highlight.Text, "\n", "\n> "))
		if highlight.Location != nil {
			fmt.Fprintf(&builder, "*Location %d*\n\n", *highlight.Location)
		}
	}

	return builder.String()
}

// authors lists the distinct authors of a book's highlights in encounter order.
func authors(highlights []entities.Highlight) string {
	seen := make(map[string]bool)
	var names []string
	for _, h := range highlights {
		if h.Author == "" || seen[h.Author] {
			continue
		}
		seen[h.Author] = true
		names = append(names, h.Author)
	}
	return strings.Join(names, ", ")
}

// yamlEscaper escapes text for a YAML double-quoted scalar.
var yamlEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\t", `\t`)

func quote(s string) string {
	return `"` + yamlEscaper.Replace(s) + `"`
}
