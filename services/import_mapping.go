package services

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// sheetRow is one data row of a workbook sheet, keyed by normalized header
// names. num is the 1-based row number in the sheet (header is row 1).
type sheetRow struct {
	num   int
	cells map[string]string
}

// normalizeKey collapses a column header to its canonical form: lowercase with
// spaces, underscores and hyphens removed, so "Rate Per Gram", "rate_per_gram"
// and "ratepergram" all address the same field. A trailing " *" required
// marker from generated templates is dropped.
func normalizeKey(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, " *")
	s = strings.ToLower(s)
	var b strings.Builder
	for _, r := range s {
		switch r {
		case ' ', '_', '-':
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// value returns the first alias with a non-empty cell, or "".
func (r sheetRow) value(aliases ...string) string {
	for _, alias := range aliases {
		if v, ok := r.cells[normalizeKey(alias)]; ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// parseNumber coerces a cell to a non-negative number. Everything except
// digits, '.' and a leading '-' is stripped first, so "$45.50/g" parses as
// 45.50. Unparseable, non-finite and negative input all report absent.
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	var b strings.Builder
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9', r == '.':
			b.WriteRune(r)
		case r == '-' && i == 0:
			b.WriteRune(r)
		}
	}

	n, err := strconv.ParseFloat(b.String(), 64)
	if err != nil || math.IsInf(n, 0) || math.IsNaN(n) || n < 0 {
		return 0, false
	}
	return n, true
}

// parseBool coerces a cell to a boolean, falling back to the field's default
// for blank or unrecognized input.
func parseBool(s string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "1", "y":
		return true
	case "false", "no", "0", "n":
		return false
	default:
		return def
	}
}

// parseStringList splits a comma-separated cell, trimming tokens and dropping
// empties.
func parseStringList(s string) []string {
	var out []string
	for _, token := range strings.Split(s, ",") {
		token = strings.TrimSpace(token)
		if token != "" {
			out = append(out, token)
		}
	}
	return out
}

// parseNumberList splits a comma-separated cell and numeric-coerces each
// token, dropping any that fail to parse.
func parseNumberList(s string) []float64 {
	var out []float64
	for _, token := range strings.Split(s, ",") {
		if n, ok := parseNumber(token); ok {
			out = append(out, n)
		}
	}
	return out
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"02-01-2006",
	"Jan 2, 2006",
}

// parseDate attempts a generic date parse; invalid or empty input reports
// absent.
func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
