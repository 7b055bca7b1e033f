package phoneformat

import (
	"regexp"
	"strings"
)

const emailPlaceholder = "email"

var reNationalLayout = regexp.MustCompile(`^\(\d\d\d\) `)

// Bypass reports whether raw is shown as-is without formatting: text already
// dialed with "011 ", text already laid out as "(604) ...", and the literal
// "email" placeholder.
func Bypass(raw string) bool {
	return strings.HasPrefix(raw, "011 ") ||
		reNationalLayout.MatchString(raw) ||
		strings.TrimSpace(raw) == emailPlaceholder
}

// Display never fails: bypassed inputs and inputs Format rejects are returned
// unchanged.
func Display(n *Normalizer, raw string) string {
	if Bypass(raw) {
		return raw
	}
	out, err := n.Format(raw)
	if err != nil {
		return raw
	}
	return out
}
