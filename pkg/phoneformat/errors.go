package phoneformat

import (
	"errors"
	"fmt"
)

var (
	// ErrParse matches every *ParseError.
	ErrParse = errors.New("phone number could not be parsed")

	ErrUnknownRegion = errors.New("unknown home region")

	errNotPossible = errors.New("not a possible number for its region")
)

// ParseError is returned when the cleaned candidate is not a number the plan
// can interpret.
type ParseError struct {
	Input     string // raw input as given by the caller
	Candidate string // cleaned text, including any extension
	Err       error  // underlying plan error
}

func (e *ParseError) Error() string {
	if e.Candidate == e.Input {
		return fmt.Sprintf("parse phone number %q: %v", e.Input, e.Err)
	}
	return fmt.Sprintf("parse phone number %q (cleaned to %q): %v", e.Input, e.Candidate, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}
