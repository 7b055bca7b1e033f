package phoneformat

import (
	"sync"

	"github.com/nyaruka/phonenumbers"
)

// Style selects how a parsed number is rendered.
type Style int

const (
	// National renders without the country code, e.g. "(604) 788-0877".
	National Style = iota
	// OutOfCountry renders the number as dialed from the home region, e.g.
	// "011 44 20 7183 8750" when calling the UK from Canada.
	OutOfCountry
	International
	E164
)

func (s Style) String() string {
	switch s {
	case National:
		return "national"
	case OutOfCountry:
		return "out_of_country"
	case International:
		return "international"
	case E164:
		return "e164"
	default:
		return "unknown"
	}
}

// Plan is the numbering-plan capability the Normalizer delegates to.
// Implementations must be safe for concurrent use.
type Plan interface {
	// Parse interprets text, using region for numbers written without a
	// country code. It fails when text is not a possible number.
	Parse(text, region string) (*phonenumbers.PhoneNumber, error)
	// Format renders num. homeRegion is the region the number would be
	// dialed from and only matters for OutOfCountry.
	Format(num *phonenumbers.PhoneNumber, style Style, homeRegion string) string
	// CountryCodeForRegion returns the calling code of region, or 0 when
	// the region is unknown.
	CountryCodeForRegion(region string) int
	// RegionForNumber returns the region a parsed number belongs to, or ""
	// when it cannot be determined.
	RegionForNumber(num *phonenumbers.PhoneNumber) string
}

var (
	defaultPlan     Plan
	defaultPlanOnce sync.Once
)

// DefaultPlan returns the shared plan backed by the bundled libphonenumber
// metadata. It is built on first use and never mutated afterwards.
func DefaultPlan() Plan {
	defaultPlanOnce.Do(func() {
		// Load metadata now rather than on the first request.
		phonenumbers.GetCountryCodeForRegion(DefaultHomeRegion)
		defaultPlan = libPlan{}
	})
	return defaultPlan
}

type libPlan struct{}

func (libPlan) Parse(text, region string) (*phonenumbers.PhoneNumber, error) {
	num, err := phonenumbers.Parse(text, region)
	if err != nil {
		return nil, err
	}
	if !phonenumbers.IsPossibleNumber(num) {
		return nil, errNotPossible
	}
	return num, nil
}

func (libPlan) Format(num *phonenumbers.PhoneNumber, style Style, homeRegion string) string {
	switch style {
	case National:
		return phonenumbers.Format(num, phonenumbers.NATIONAL)
	case OutOfCountry:
		return phonenumbers.FormatOutOfCountryCallingNumber(num, homeRegion)
	case International:
		return phonenumbers.Format(num, phonenumbers.INTERNATIONAL)
	default:
		return phonenumbers.Format(num, phonenumbers.E164)
	}
}

func (libPlan) CountryCodeForRegion(region string) int {
	return phonenumbers.GetCountryCodeForRegion(region)
}

func (libPlan) RegionForNumber(num *phonenumbers.PhoneNumber) string {
	return phonenumbers.GetRegionCodeForNumber(num)
}
