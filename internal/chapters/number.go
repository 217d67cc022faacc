package chapters

import (
	"regexp"
	"strconv"

	"github.com/brogergvhs/komikd/internal/providers"
)

// Only the integer part is captured: "Chapter 12.5" reads as 12.
var reChapterNumber = regexp.MustCompile(`Chapter\s+([0-9]+)`)

// ExtractNumber finds the first "Chapter <digits>" in title.
func ExtractNumber(title string) (float64, bool) {
	m := reChapterNumber.FindStringSubmatch(title)
	if m == nil {
		return 0, false
	}

	n, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}

	return n, true
}

// ApplyNumber sets c.Number from its name and leaves it alone when the
// name has no chapter number.
func ApplyNumber(c *providers.Chapter) {
	if n, ok := ExtractNumber(c.Name); ok {
		c.Number = n
	}
}
