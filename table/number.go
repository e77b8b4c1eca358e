package table

import (
	"strconv"
	"strings"
)

// ParseNumber tolerantly extracts a numeric value from a cell. Strings are
// stripped down to digits, '.', and '-' before parsing, so "< 0.05 mg/L"
// style annotations still yield a number. Returns false for cells with no
// usable numeric content.
func ParseNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case nil:
		return 0, false
	case float64:
		return n, true
	case int:
		return float64(n), true
	case string:
		return parseNumericString(n)
	default:
		return 0, false
	}
}

func parseNumericString(s string) (float64, bool) {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if cleaned == "" || cleaned == "-" {
		return 0, false
	}
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
