package locale

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// DefaultRegion is the home region assumed when nothing else is known.
const DefaultRegion = "CA"

type Country struct {
	Code        string // ISO 3166-1 alpha-2 country code (e.g., "CA", "GB")
	Name        string
	CallingCode int // Country calling code (e.g., 1, 44)
}

var (
	Countries = map[string]Country{
		"CA": {
			Code:        "CA",
			Name:        "Canada",
			CallingCode: 1,
		},
		"US": {
			Code:        "US",
			Name:        "United States",
			CallingCode: 1,
		},
		"GB": {
			Code:        "GB",
			Name:        "United Kingdom",
			CallingCode: 44,
		},
		"IL": {
			Code:        "IL",
			Name:        "Israel",
			CallingCode: 972,
		},
	}

	TimeZoneTags = map[string][]string{
		"CA": {
			"America/Toronto", "America/Vancouver", "America/Edmonton", "America/Winnipeg",
			"America/Halifax", "America/St_Johns", "America/Regina", "Canada/Pacific", "Canada/Eastern",
		},
		"US": {"America/New_York", "America/Chicago", "America/Denver", "America/Los_Angeles", "US/Eastern", "US/Pacific"},
		"GB": {"Europe/London", "GB"},
		"IL": {"Asia/Jerusalem", "Israel", "Asia/Tel_Aviv"},
	}
)

// IsSupportedRegion reports whether the numbering plan has metadata for region.
func IsSupportedRegion(region string) bool {
	return CallingCode(region) != 0
}

// CallingCode returns the country calling code of region, or 0 if unknown.
func CallingCode(region string) int {
	region = strings.ToUpper(strings.TrimSpace(region))
	if region == "" {
		return 0
	}
	return phonenumbers.GetCountryCodeForRegion(region)
}

// CountryName returns the human-readable name of a known region, or "".
func CountryName(region string) string {
	return Countries[strings.ToUpper(region)].Name
}
