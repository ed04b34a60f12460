package domain

import (
	"regexp"
	"strings"
)

// Handle is the canonical short identifier of a profile (the /in/<handle> segment).
type Handle string

func (h Handle) String() string { return string(h) }

// profilePath matches "linkedin.com/in/<segment>". The segment stops at the
// next slash, query, fragment or whitespace.
var profilePath = regexp.MustCompile(`(?i)linkedin\.com/in/([^/?#\s]+)`)

// ExtractHandle returns the handle found in a profile URL.
// The second value is false when raw contains no recognizable profile path.
func ExtractHandle(raw string) (Handle, bool) {
	m := profilePath.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return "", false
	}
	return Handle(m[1]), true
}
