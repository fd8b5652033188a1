// Package normalize derives the canonical identifiers shared by the
// importer and the read-side aggregation queries. All functions are
// pure; vendor identity must go through VendorKey everywhere it is
// compared, so the same key falls out on both sides of a join.
package normalize

import (
	"strconv"
	"strings"
)

// vendorFixups rewrites known-bad vendor tokens from the upstream
// feeds. The feeds spell Reliance Digital without the "d" in some
// price rows.
var vendorFixups = map[string]string{
	"relianceigital": "reliancedigital",
}

// VendorKey returns the canonical join key for a raw vendor name:
// trimmed, lowercased, with upstream typos rewritten.
func VendorKey(raw string) string {
	key := strings.ToLower(strings.TrimSpace(raw))
	if fixed, ok := vendorFixups[key]; ok {
		return fixed
	}
	return key
}

// Int parses raw as an integer. Empty or unparseable input yields nil
// rather than an error; the ingestion policy is permissive for
// optional numeric columns.
func Int(raw string) *int {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}

// Float parses raw as a float. Empty or unparseable input yields nil.
func Float(raw string) *float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}

// Price parses raw as a price. Unlike Float, a missing or unparseable
// price imports as 0 rather than nil. Inherited feed policy: price
// rows always carry a numeric value downstream.
func Price(raw string) float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

// String returns a trimmed copy of raw, or nil when the result is
// empty. Used for nullable text columns.
func String(raw string) *string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	return &s
}
