package sanitizer

import (
	"regexp"
	"strings"
)

type Strategy func(string) string

type Pipeline []Strategy

func (p Pipeline) Apply(s string) string {
	for _, fn := range p {
		s = fn(s)
	}
	return s
}

var (
	reNonDigit    = regexp.MustCompile(`\D`)
	reFirstLetter = regexp.MustCompile(`[a-zA-Z]`)
)

func trim(s string) string {
	return strings.TrimSpace(s)
}

func upper(s string) string {
	return strings.ToUpper(s)
}

// NormalizeRegion turns user supplied region codes such as " ca" into "CA".
func NormalizeRegion(region string) string {
	return Pipeline{trim, upper}.Apply(region)
}
