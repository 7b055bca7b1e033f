package locale

import "strings"

// LookupRegion maps an IANA timezone to one of the known home regions.
func LookupRegion(tz string) (string, bool) {
	for region, zones := range TimeZoneTags {
		for _, z := range zones {
			if strings.EqualFold(tz, z) {
				return region, true
			}
		}
	}
	return "", false
}

// DetectRegion returns the home region for tz, or fallback when tz is not
// one of the known zones. An empty fallback means DefaultRegion.
func DetectRegion(tz, fallback string) string {
	if region, ok := LookupRegion(tz); ok {
		return region
	}
	if fallback != "" {
		return fallback
	}
	return DefaultRegion
}
