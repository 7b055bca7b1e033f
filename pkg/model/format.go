package model

type FormatRequest struct {
	Number     string `json:"number" validate:"required,max=64"`
	HomeRegion string `json:"home_region,omitempty" validate:"omitempty,home_region"`
	Timezone   string `json:"timezone,omitempty" validate:"omitempty,timezone"`
	// Strict reports unparseable numbers as errors instead of echoing them.
	Strict bool `json:"strict,omitempty"`
}

type BatchFormatRequest struct {
	Numbers    []string `json:"numbers" validate:"required,min=1,dive,max=64"`
	HomeRegion string   `json:"home_region,omitempty" validate:"omitempty,home_region"`
	Timezone   string   `json:"timezone,omitempty" validate:"omitempty,timezone"`
	Strict     bool     `json:"strict,omitempty"`
}

type FormatResult struct {
	Input       string `json:"input"`
	Formatted   string `json:"formatted"`
	HomeRegion  string `json:"home_region"`
	CountryCode int32  `json:"country_code,omitempty"`
	Region      string `json:"region,omitempty"`
	CountryName string `json:"country_name,omitempty"`
	Style       string `json:"style,omitempty"`
	Extension   string `json:"extension,omitempty"`
	// Bypassed is set when the input matched a display shortcut and was
	// returned without parsing.
	Bypassed bool `json:"bypassed,omitempty"`
	// Fallback is set when the input could not be parsed and Formatted is
	// the input itself.
	Fallback bool   `json:"fallback,omitempty"`
	Error    string `json:"error,omitempty"`
}
