package kindle

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/mrlokans/highlights-reader/internal/entities"
)

// UnknownAuthor is used when the title line carries no "(Author)" suffix.
const UnknownAuthor = "Unknown"

// LimitReachedMessage is what Kindle writes instead of the quote once the
// publisher's clipping limit for a book is exhausted.
const LimitReachedMessage = "You have reached the maximum number of highlights allowed on this item."

const (
	entrySeparator = "=========="
	byteOrderMark  = "\uFEFF"

	// title, metadata, blank separator, at least one body line
	minEntryLines = 4
)

var (
	// Title with author: "Book Title (Author Name)"
	// Some books don't have author in parentheses
	titleAuthorPattern = regexp.MustCompile(`^(.+?)\s*\(([^)]+)\)\s*$`)

	// Location patterns: "Location 638-640", "location 1,406", "at location 784-785"
	locationPattern = regexp.MustCompile(`(?i)Location\s+([\d,]+)(?:-[\d,]+)?`)
)

// Parser turns the text of a Kindle "My Clippings.txt" export into candidate
// highlights. It holds no state between calls.
type Parser struct {
	maxHighlightLength int
}

// NewParser returns a parser that truncates highlight text to
// maxHighlightLength characters. A non-positive value disables truncation.
func NewParser(maxHighlightLength int) *Parser {
	return &Parser{maxHighlightLength: maxHighlightLength}
}

// Parse never fails: malformed, truncated, bookmark and note entries are
// dropped and the remaining highlights are returned in file order.
func (p *Parser) Parse(raw string) []entities.HighlightInput {
	content := strings.TrimPrefix(raw, byteOrderMark)

	results := []entities.HighlightInput{}
	for _, entry := range strings.Split(content, entrySeparator) {
		highlight, ok := p.parseEntry(entry)
		if !ok {
			continue
		}
		results = append(results, highlight)
	}
	return results
}

func (p *Parser) parseEntry(entry string) (entities.HighlightInput, bool) {
	lines := strings.Split(strings.TrimSpace(entry), "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}

	if len(lines) < minEntryLines {
		return entities.HighlightInput{}, false
	}

	titleLine := lines[0]
	metadataLine := lines[1]

	// Bookmarks and notes
	if !strings.Contains(strings.ToLower(metadataLine), "highlight") {
		return entities.HighlightInput{}, false
	}

	text := strings.TrimSpace(strings.Join(lines[3:], " "))
	text = truncate(text, p.maxHighlightLength)

	if strings.Contains(text, LimitReachedMessage) {
		return entities.HighlightInput{}, false
	}
	if text == "" {
		return entities.HighlightInput{}, false
	}

	title, author := parseTitleAuthor(titleLine)

	return entities.HighlightInput{
		BookTitle: title,
		Author:    author,
		Text:      text,
		Location:  parseLocation(metadataLine),
	}, true
}

// truncate cuts s to at most limit runes.
func truncate(s string, limit int) string {
	if limit <= 0 || len(s) <= limit {
		return s
	}
	count := 0
	for i := range s {
		if count == limit {
			return s[:i]
		}
		count++
	}
	return s
}

func parseTitleAuthor(line string) (title, author string) {
	matches := titleAuthorPattern.FindStringSubmatch(line)
	if len(matches) == 3 {
		return strings.TrimSpace(matches[1]), strings.TrimSpace(matches[2])
	}
	// No author in parentheses, use whole line as title
	return strings.TrimSpace(line), UnknownAuthor
}

// parseLocation returns the first number of the location marker, or nil.
func parseLocation(line string) *int {
	matches := locationPattern.FindStringSubmatch(line)
	if len(matches) < 2 {
		return nil
	}
	location, err := strconv.Atoi(strings.ReplaceAll(matches[1], ",", ""))
	if err != nil {
		return nil
	}
	return &location
}
