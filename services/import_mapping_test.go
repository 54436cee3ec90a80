package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeKey(t *testing.T) {
	cases := map[string]string{
		"Rate Per Gram": "ratepergram",
		"rate_per_gram": "ratepergram",
		"RATE-PER-GRAM": "ratepergram",
		"Product SKU *": "productsku",
		"  metal_type ": "metaltype",
	}
	for in, want := range cases {
		assert.Equal(t, want, normalizeKey(in), "input %q", in)
	}
}

func TestSheetRowValueAliases(t *testing.T) {
	row := sheetRow{num: 2, cells: map[string]string{
		"productsku": "RNG-001",
		"rts":        "  yes ",
		"name":       "",
	}}

	assert.Equal(t, "RNG-001", row.value("product_sku", "sku"))
	// First non-empty alias wins; blank cells fall through.
	assert.Equal(t, "yes", row.value("ready_to_ship", "rts"))
	assert.Equal(t, "", row.value("name", "title"))
}

func TestParseNumber(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"45.50", 45.50, true},
		{"$45.50/g", 45.50, true},
		{"1,250", 1250, true},
		{"  3.2 ct ", 3.2, true},
		{"0", 0, true},
		{"", 0, false},
		{"N/A", 0, false},
		{"-12.5", 0, false},
		{"abc", 0, false},
	}
	for _, tc := range cases {
		got, ok := parseNumber(tc.in)
		require.Equal(t, tc.ok, ok, "input %q", tc.in)
		if ok {
			assert.InDelta(t, tc.want, got, 1e-9, "input %q", tc.in)
		}
	}
}

func TestParseBoolDefaults(t *testing.T) {
	assert.True(t, parseBool("yes", false))
	assert.True(t, parseBool("TRUE", false))
	assert.True(t, parseBool("1", false))
	assert.False(t, parseBool("no", true))
	assert.False(t, parseBool("N", true))

	// Blank and junk input fall back to the per-field default.
	assert.True(t, parseBool("", true))
	assert.False(t, parseBool("", false))
	assert.True(t, parseBool("maybe", true))
}

func TestParseStringList(t *testing.T) {
	assert.Equal(t, []string{"rings", "engagement", "gold"}, parseStringList("rings, engagement ,gold,,"))
	assert.Nil(t, parseStringList("  ,  "))
}

func TestParseNumberList(t *testing.T) {
	assert.Equal(t, []float64{0.5, 1, 1.5}, parseNumberList("0.5, 1.0ct, 1.5, n/a"))
}

func TestParseDate(t *testing.T) {
	got, ok := parseDate("2026-03-15")
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), got)

	_, ok = parseDate("not a date")
	assert.False(t, ok)

	_, ok = parseDate("")
	assert.False(t, ok)
}
