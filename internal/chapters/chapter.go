package chapters

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/brogergvhs/komikd/internal/providers"
)

type Chapter struct {
	providers.Chapter
	Label string
}

var reUnderscore = regexp.MustCompile(`_+`)

// Wrap labels each chapter and returns them oldest first. Sites list the
// newest chapter at the top.
func Wrap(list []providers.Chapter) []Chapter {
	out := make([]Chapter, len(list))
	for i, c := range list {
		out[len(list)-1-i] = Chapter{Chapter: c, Label: labelFor(c)}
	}

	return out
}

func labelFor(c providers.Chapter) string {
	if c.HasNumber() {
		return strconv.FormatFloat(c.Number, 'f', -1, 64)
	}

	return sanitize(c.Name)
}

func sanitize(s string) string {
	s = strings.ToLower(s)

	repl := strings.NewReplacer(
		"•", "_",
		"-", "_",
		"—", "_",
		"–", "_",
		"/", "_",
		"\\", "_",
		".", "_",
		" ", "_",
		"(", "",
		")", "",
	)
	s = repl.Replace(s)

	clean := make([]rune, 0, len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			clean = append(clean, r)
		}
	}
	s = reUnderscore.ReplaceAllString(string(clean), "_")

	return strings.Trim(s, "_")
}

func (c Chapter) baseName() string {
	lbl := sanitize(c.Label)
	name := sanitize(c.Name)

	switch {
	case lbl == "":
		return name
	case name != "" && name != lbl:
		return lbl + "_" + name
	}

	return lbl
}

func (c Chapter) FolderName() string {
	return c.baseName() + "_tmp"
}

func (c Chapter) OutputCBZ() string {
	return c.baseName() + ".cbz"
}

func (c Chapter) OutputCBZPath(out string) string {
	return filepath.Join(out, c.OutputCBZ())
}
