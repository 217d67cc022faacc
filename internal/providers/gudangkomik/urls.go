package gudangkomik

import (
	"net/url"
	"strings"
)

func resolve(base, raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u == nil {
		return raw
	}

	if u.IsAbs() {
		return u.String()
	}

	b, err := url.Parse(base)
	if err != nil || b == nil {
		return raw
	}

	return b.ResolveReference(u).String()
}

// withoutDomain keeps the path, query and fragment of raw so stored URLs
// survive a change of domain.
func withoutDomain(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return raw
	}

	out := u.EscapedPath()
	if u.RawQuery != "" {
		out += "?" + u.RawQuery
	}
	if u.Fragment != "" {
		out += "#" + u.EscapedFragment()
	}

	return out
}
