package phoneformat

import (
	"fmt"

	"github.com/nyaruka/phonenumbers"

	"phonefmt/pkg/sanitizer"
)

const DefaultHomeRegion = "CA"

// Normalizer formats phone numbers relative to one home region. It holds no
// mutable state and is safe for concurrent use.
type Normalizer struct {
	plan       Plan
	homeRegion string
	homeCode   int
}

// Result carries everything Resolve learned about one input.
type Result struct {
	Candidate Candidate
	Number    *phonenumbers.PhoneNumber
	Style     Style
	Formatted string
}

// New binds plan to homeRegion. A nil plan means DefaultPlan.
func New(plan Plan, homeRegion string) (*Normalizer, error) {
	if plan == nil {
		plan = DefaultPlan()
	}

	region := sanitizer.NormalizeRegion(homeRegion)
	code := plan.CountryCodeForRegion(region)
	if code == 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRegion, homeRegion)
	}

	return &Normalizer{
		plan:       plan,
		homeRegion: region,
		homeCode:   code,
	}, nil
}

func (n *Normalizer) HomeRegion() string {
	return n.homeRegion
}

func (n *Normalizer) HomeCountryCode() int {
	return n.homeCode
}

func (n *Normalizer) Plan() Plan {
	return n.plan
}

// Format returns the display form of raw or a *ParseError.
func (n *Normalizer) Format(raw string) (string, error) {
	res, err := n.Resolve(raw)
	if err != nil {
		return "", err
	}
	return res.Formatted, nil
}

func (n *Normalizer) Resolve(raw string) (*Result, error) {
	c := NewCandidate(raw)

	num, err := n.plan.Parse(c.Text, n.homeRegion)
	if err != nil {
		return nil, &ParseError{
			Input:     raw,
			Candidate: c.Reassembled(),
			Err:       err,
		}
	}
	c.CountryCode = num.GetCountryCode()

	style := OutOfCountry
	if int(c.CountryCode) == n.homeCode {
		style = National
	}

	return &Result{
		Candidate: c,
		Number:    num,
		Style:     style,
		Formatted: appendExtension(n.plan.Format(num, style, n.homeRegion), c.Extension),
	}, nil
}

// Format formats raw for homeRegion using DefaultPlan.
func Format(raw, homeRegion string) (string, error) {
	n, err := New(DefaultPlan(), homeRegion)
	if err != nil {
		return "", err
	}
	return n.Format(raw)
}
