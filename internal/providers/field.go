package providers

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Field is one selector lookup. An empty Attr reads the text content.
type Field struct {
	Selector string
	Attr     string
}

func Text(selector string) Field {
	return Field{Selector: selector}
}

func Attr(selector, attr string) Field {
	return Field{Selector: selector, Attr: attr}
}

// From extracts the field below s. Text fields join the collapsed text of
// every match with a single space; attribute fields read the first match.
func (f Field) From(s *goquery.Selection) string {
	sel := s.Find(f.Selector)
	if f.Attr != "" {
		v, _ := sel.First().Attr(f.Attr)
		return strings.TrimSpace(v)
	}

	return strings.Join(f.Texts(s), " ")
}

// Texts returns the collapsed text of each match, skipping empty ones.
func (f Field) Texts(s *goquery.Selection) []string {
	var out []string
	s.Find(f.Selector).Each(func(_ int, el *goquery.Selection) {
		if t := CollapseSpace(el.Text()); t != "" {
			out = append(out, t)
		}
	})

	return out
}

func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
