// Package phoneformat turns free-form phone number text into a display string.
//
// A Normalizer is bound to a home region. Format cleans the raw input into a
// candidate, parses it against the numbering plan and renders the result:
//
//   - Input that already starts with "+" or "011" is parsed as-is (trimmed).
//   - Otherwise everything from the first ASCII letter on is kept aside as an
//     extension, the rest is reduced to its digits, and the digit stem gets a
//     country prefix: "+1 " for exactly ten digits, "+" for more than ten,
//     nothing for fewer.
//   - Numbers whose country calling code matches the home region are rendered
//     in national style, all others as they would be dialed from the home
//     region (for example "011 44 20 7183 8750" from Canada).
//   - A kept-aside extension is appended after the formatted number,
//     separated by one space, exactly as it appeared in the input.
//
// Format never recovers from parse failures; it returns a *ParseError. Display
// is the forgiving variant used by presentation code: it leaves a few literal
// inputs untouched and falls back to the original text on any error.
//
// The numbering plan is injected through the Plan interface. DefaultPlan
// returns the process-wide plan backed by github.com/nyaruka/phonenumbers.
package phoneformat
