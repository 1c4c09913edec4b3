package exporters

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	// Characters invalid in filenames on most filesystems
	invalidFilenameChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	multipleSpaces       = regexp.MustCompile(`\s+`)
)

const maxFilenameRunes = 200

// Filename derives a markdown file name from a book title.
func Filename(title string) string {
	name := invalidFilenameChars.ReplaceAllString(title, " ")
	name = multipleSpaces.ReplaceAllString(name, " ")
	name = strings.Trim(name, " .")

	if utf8.RuneCountInString(name) > maxFilenameRunes {
		name = strings.TrimSpace(string([]rune(name)[:maxFilenameRunes]))
	}
	if name == "" {
		name = "Untitled"
	}
	return name + ".md"
}
