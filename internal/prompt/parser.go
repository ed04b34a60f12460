package prompt

import (
	"errors"
	"regexp"
	"strings"
)

// ErrNoDelimitersFound is returned by ParseMessages when the reply carries no
// "Message N: " marker. The whole trimmed reply is still returned as the only
// element so callers can decide whether to use it.
var ErrNoDelimitersFound = errors.New("no message delimiters found in model reply")

// messageMarker is the delimiter promised by the instruction block in Build.
// The index digits are discarded; order is positional.
var messageMarker = regexp.MustCompile(`Message \d+: `)

// ParseMessages splits a model reply into messages.
//
// Fragments are trimmed; empty fragments and bare "-" bullets are dropped.
// There is no upper bound on the number of messages returned.
func ParseMessages(reply string) ([]string, error) {
	if !messageMarker.MatchString(reply) {
		trimmed := strings.TrimSpace(reply)
		if trimmed == "" {
			return []string{}, ErrNoDelimitersFound
		}
		return []string{trimmed}, ErrNoDelimitersFound
	}

	parts := messageMarker.Split(reply, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" || p == "-" {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}
