package phoneformat

import (
	"strings"

	"phonefmt/pkg/sanitizer"
)

// nanpLength is the digit count of a North American number without its
// country code.
const nanpLength = 10

// Candidate is the cleaned form of one raw input.
type Candidate struct {
	Raw string
	// International is set when the input already started with "+" or
	// "011"; Text is then the trimmed input and Stem/Extension are empty.
	International bool
	Stem          string
	Extension     string
	// Text is what gets parsed: the trimmed input, or the prefixed stem.
	Text        string
	CountryCode int32
}

func NewCandidate(raw string) Candidate {
	trimmed := strings.TrimSpace(raw)
	c := Candidate{Raw: raw}

	if sanitizer.HasInternationalPrefix(trimmed) {
		c.International = true
		c.Text = trimmed
		return c
	}

	head, tail, _ := sanitizer.SplitExtension(trimmed)
	c.Stem = sanitizer.DigitsOnly(head)
	c.Extension = tail
	c.Text = withCountryPrefix(c.Stem)
	return c
}

func withCountryPrefix(stem string) string {
	switch {
	case len(stem) == nanpLength:
		return "+1 " + stem
	case len(stem) > nanpLength:
		return "+" + stem
	default:
		return stem
	}
}

// Reassembled returns the prefixed stem followed by the extension.
func (c Candidate) Reassembled() string {
	return appendExtension(c.Text, c.Extension)
}

func appendExtension(s, ext string) string {
	switch {
	case ext == "":
		return s
	case s == "":
		return ext
	}
	return s + " " + ext
}
