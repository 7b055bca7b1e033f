// Package sanitizer provides the text transformations applied to raw phone
// input before it is handed to the numbering plan.
//
// The functions here are pure and never fail. They do not know anything about
// numbering plans: they only trim, split and filter text so that callers can
// build a candidate string.
//
// Transformations include:
//   - Digits: strip every non-digit character ("(604) 788-0877" becomes "6047880877")
//   - Extensions: split at the first ASCII letter ("604 788 0877 ext 12" becomes "604 788 0877 " and "ext 12")
//   - Prefixes: detect input that already carries "+" or the "011" exit code
//   - Regions: trim and upper-case region codes ("ca " becomes "CA")
package sanitizer
