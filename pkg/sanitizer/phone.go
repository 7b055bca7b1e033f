package sanitizer

import "strings"

const (
	PlusSign = "+"

	// NANPExitCode is the international call prefix dialed from North America.
	NANPExitCode = "011"
)

// DigitsOnly removes every character that is not a decimal digit.
func DigitsOnly(s string) string {
	return reNonDigit.ReplaceAllString(s, "")
}

// SplitExtension splits s at its first ASCII letter. The tail keeps every byte
// from that letter to the end of s. found is false when s has no letter, in
// which case head is s and tail is empty.
func SplitExtension(s string) (head, tail string, found bool) {
	loc := reFirstLetter.FindStringIndex(s)
	if loc == nil {
		return s, "", false
	}
	return s[:loc[0]], s[loc[0]:], true
}

// HasInternationalPrefix reports whether the trimmed input already starts with
// "+" or the "011" exit code.
func HasInternationalPrefix(s string) bool {
	s = strings.TrimSpace(s)
	return strings.HasPrefix(s, PlusSign) || strings.HasPrefix(s, NANPExitCode)
}
