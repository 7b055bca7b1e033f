package phoneformat

import (
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/nyaruka/phonenumbers"
)

// ────────────────────────────────────────────────
// Mock plan for testing
// ────────────────────────────────────────────────

type mockPlan struct {
	mu          sync.Mutex
	parsed      []string
	parseFunc   func(text, region string) (*phonenumbers.PhoneNumber, error)
	formatStyle []Style
}

func (m *mockPlan) Parse(text, region string) (*phonenumbers.PhoneNumber, error) {
	m.mu.Lock()
	m.parsed = append(m.parsed, text)
	m.mu.Unlock()
	if m.parseFunc != nil {
		return m.parseFunc(text, region)
	}
	cc := int32(1)
	return &phonenumbers.PhoneNumber{CountryCode: &cc}, nil
}

func (m *mockPlan) Format(num *phonenumbers.PhoneNumber, style Style, homeRegion string) string {
	m.mu.Lock()
	m.formatStyle = append(m.formatStyle, style)
	m.mu.Unlock()
	return style.String()
}

func (m *mockPlan) CountryCodeForRegion(region string) int {
	switch region {
	case "CA", "US":
		return 1
	case "GB":
		return 44
	}
	return 0
}

func (m *mockPlan) RegionForNumber(num *phonenumbers.PhoneNumber) string {
	return ""
}

func numberWithCode(cc int32) func(string, string) (*phonenumbers.PhoneNumber, error) {
	return func(string, string) (*phonenumbers.PhoneNumber, error) {
		return &phonenumbers.PhoneNumber{CountryCode: &cc}, nil
	}
}

// ────────────────────────────────────────────────
// Candidate cleaning
// ────────────────────────────────────────────────

func TestNormalizer_ParsesCleanedCandidate(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantParse string
	}{
		{
			name:      "ten digits get +1",
			input:     "6047880877",
			wantParse: "+1 6047880877",
		},
		{
			name:      "ten digits with separators get +1",
			input:     "(604) 788-0877",
			wantParse: "+1 6047880877",
		},
		{
			name:      "more than ten digits get +",
			input:     "442071838750",
			wantParse: "+442071838750",
		},
		{
			name:      "eleven digits with leading 1 get +",
			input:     "1-604-788-0877",
			wantParse: "+16047880877",
		},
		{
			name:      "fewer than ten digits stay unprefixed",
			input:     "788-0877",
			wantParse: "7880877",
		},
		{
			name:      "plus input passes through trimmed",
			input:     "  +1 (604) 788-0877 ext 5 ",
			wantParse: "+1 (604) 788-0877 ext 5",
		},
		{
			name:      "011 input passes through trimmed",
			input:     " 011 44 20 7183 8750",
			wantParse: "011 44 20 7183 8750",
		},
		{
			name:      "extension is kept out of the parse",
			input:     "604.788.0877 ext 12",
			wantParse: "+1 6047880877",
		},
		{
			name:      "letters only leave an empty stem",
			input:     "abc",
			wantParse: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := &mockPlan{}
			n, err := New(plan, "CA")
			if err != nil {
				t.Fatalf("New: %v", err)
			}

			if _, err := n.Format(tt.input); err != nil {
				t.Fatalf("Format(%q): unexpected error: %v", tt.input, err)
			}
			if diff := cmp.Diff([]string{tt.wantParse}, plan.parsed); diff != "" {
				t.Errorf("parsed text mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNewCandidate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Candidate
	}{
		{
			name:  "extension split",
			input: " 604-788-0877 ext 12 ",
			want: Candidate{
				Raw:       " 604-788-0877 ext 12 ",
				Stem:      "6047880877",
				Extension: "ext 12",
				Text:      "+1 6047880877",
			},
		},
		{
			name:  "international",
			input: "+44 20 7183 8750",
			want: Candidate{
				Raw:           "+44 20 7183 8750",
				International: true,
				Text:          "+44 20 7183 8750",
			},
		},
		{
			name:  "empty",
			input: "",
			want:  Candidate{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewCandidate(tt.input)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("NewCandidate(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestCandidate_Reassembled(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "stem and extension", input: "6047880877 ext 12", want: "+1 6047880877 ext 12"},
		{name: "stem only", input: "6047880877", want: "+1 6047880877"},
		{name: "extension only", input: "ext 12", want: "ext 12"},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewCandidate(tt.input).Reassembled(); got != tt.want {
				t.Errorf("Reassembled() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormat_ExtensionOnlyCandidate(t *testing.T) {
	_, err := Format("ext 12", "CA")
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("Format() error = %v, want *ParseError", err)
	}
	if pe.Candidate != "ext 12" {
		t.Errorf("ParseError.Candidate = %q, want %q", pe.Candidate, "ext 12")
	}
}

// ────────────────────────────────────────────────
// Style selection
// ────────────────────────────────────────────────

func TestNormalizer_StyleFollowsCountryCode(t *testing.T) {
	tests := []struct {
		name       string
		homeRegion string
		code       int32
		want       Style
	}{
		{name: "home CA, number +1", homeRegion: "CA", code: 1, want: National},
		{name: "home US, number +1", homeRegion: "US", code: 1, want: National},
		{name: "home CA, number +44", homeRegion: "CA", code: 44, want: OutOfCountry},
		{name: "home GB, number +44", homeRegion: "GB", code: 44, want: National},
		{name: "home GB, number +1", homeRegion: "GB", code: 1, want: OutOfCountry},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := &mockPlan{parseFunc: numberWithCode(tt.code)}
			n, err := New(plan, tt.homeRegion)
			if err != nil {
				t.Fatalf("New: %v", err)
			}

			res, err := n.Resolve("6047880877")
			if err != nil {
				t.Fatalf("Resolve: %v", err)
			}
			if res.Style != tt.want {
				t.Errorf("Style = %v, want %v", res.Style, tt.want)
			}
			if res.Candidate.CountryCode != tt.code {
				t.Errorf("CountryCode = %d, want %d", res.Candidate.CountryCode, tt.code)
			}
		})
	}
}

func TestNormalizer_PropagatesParseError(t *testing.T) {
	planErr := errors.New("boom")
	plan := &mockPlan{
		parseFunc: func(string, string) (*phonenumbers.PhoneNumber, error) {
			return nil, planErr
		},
	}
	n, err := New(plan, "CA")
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	out, err := n.Format("123 x9")
	if out != "" {
		t.Errorf("expected no output on error, got %q", out)
	}
	if !errors.Is(err, ErrParse) {
		t.Fatalf("expected ErrParse, got %v", err)
	}
	if !errors.Is(err, planErr) {
		t.Errorf("expected underlying plan error to be wrapped, got %v", err)
	}

	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	if parseErr.Input != "123 x9" {
		t.Errorf("Input = %q, want %q", parseErr.Input, "123 x9")
	}
	if parseErr.Candidate != "123 x9" {
		t.Errorf("Candidate = %q, want %q", parseErr.Candidate, "123 x9")
	}
}

func TestNew_UnknownRegion(t *testing.T) {
	_, err := New(&mockPlan{}, "ZZ")
	if !errors.Is(err, ErrUnknownRegion) {
		t.Errorf("expected ErrUnknownRegion, got %v", err)
	}
}

func TestNew_NormalizesRegion(t *testing.T) {
	n, err := New(&mockPlan{}, " ca ")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if n.HomeRegion() != "CA" {
		t.Errorf("HomeRegion() = %q, want CA", n.HomeRegion())
	}
	if n.HomeCountryCode() != 1 {
		t.Errorf("HomeCountryCode() = %d, want 1", n.HomeCountryCode())
	}
}

// ────────────────────────────────────────────────
// End to end against the bundled metadata
// ────────────────────────────────────────────────

func TestFormat_DefaultPlan(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		homeRegion string
		want       string
	}{
		{
			name:       "plus prefixed canadian number",
			input:      "+16047880877",
			homeRegion: "CA",
			want:       "(604) 788-0877",
		},
		{
			name:       "ten bare digits",
			input:      "6047880877",
			homeRegion: "CA",
			want:       "(604) 788-0877",
		},
		{
			name:       "dashed national number is stable",
			input:      "604-788-0877",
			homeRegion: "CA",
			want:       "(604) 788-0877",
		},
		{
			name:       "already formatted national number is stable",
			input:      "(604) 788-0877",
			homeRegion: "CA",
			want:       "(604) 788-0877",
		},
		{
			name:       "extension appended verbatim",
			input:      "6047880877 ext 12",
			homeRegion: "CA",
			want:       "(604) 788-0877 ext 12",
		},
		{
			name:       "odd extension text appended verbatim",
			input:      "604 788 0877 Ask for  Bob",
			homeRegion: "CA",
			want:       "(604) 788-0877 Ask for  Bob",
		},
		{
			name:       "twelve digits become out of country",
			input:      "442071838750",
			homeRegion: "CA",
			want:       "011 44 20 7183 8750",
		},
		{
			name:       "plus prefixed foreign number",
			input:      "+44 20 7183 8750",
			homeRegion: "CA",
			want:       "011 44 20 7183 8750",
		},
		{
			name:       "011 dialed foreign number",
			input:      "011 44 20 7183 8750",
			homeRegion: "CA",
			want:       "011 44 20 7183 8750",
		},
		{
			name:       "US number from CA is national",
			input:      "2125551234",
			homeRegion: "CA",
			want:       "(212) 555-1234",
		},
		{
			name:       "canadian number from GB",
			input:      "+16047880877",
			homeRegion: "GB",
			want:       "00 1 604-788-0877",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Format(tt.input, tt.homeRegion)
			if err != nil {
				t.Fatalf("Format(%q, %q): unexpected error: %v", tt.input, tt.homeRegion, err)
			}
			if got != tt.want {
				t.Errorf("Format(%q, %q) = %q, want %q", tt.input, tt.homeRegion, got, tt.want)
			}
		})
	}
}

func TestFormat_DefaultPlanRejects(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "letters only", input: "abc"},
		{name: "three digit stem", input: "123"},
		{name: "nine digit stem", input: "604788087"},
		{name: "empty", input: ""},
		{name: "separators only", input: "()--"},
		{name: "plus alone", input: "+"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Format(tt.input, "CA")
			if !errors.Is(err, ErrParse) {
				t.Fatalf("Format(%q) error = %v, want ErrParse", tt.input, err)
			}
			if got != "" {
				t.Errorf("Format(%q) = %q, want empty output on error", tt.input, got)
			}
		})
	}
}

func TestFormat_UnknownRegion(t *testing.T) {
	if _, err := Format("6047880877", "XX"); !errors.Is(err, ErrUnknownRegion) {
		t.Errorf("expected ErrUnknownRegion, got %v", err)
	}
}

func TestNormalizer_ConcurrentUse(t *testing.T) {
	n, err := New(DefaultPlan(), "CA")
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := n.Format("6047880877")
			if err != nil {
				errs <- err
				return
			}
			if got != "(604) 788-0877" {
				errs <- errors.New("unexpected output " + got)
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
}

func TestDefaultPlan_IsShared(t *testing.T) {
	if DefaultPlan() != DefaultPlan() {
		t.Error("expected DefaultPlan to return the same plan on every call")
	}
}

func TestStyle_String(t *testing.T) {
	tests := []struct {
		style Style
		want  string
	}{
		{National, "national"},
		{OutOfCountry, "out_of_country"},
		{International, "international"},
		{E164, "e164"},
		{Style(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.style.String(); got != tt.want {
			t.Errorf("Style(%d).String() = %q, want %q", int(tt.style), got, tt.want)
		}
	}
}
