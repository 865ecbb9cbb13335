package normalize

import (
	"strconv"
	"strings"
)

// ParseCurrency converts a money-ish string into a float. It strips currency
// symbols, thousands separators and whitespace, and honors the parenthesized
// negative convention. Unparseable input returns nil, the explicit "unknown"
// sentinel, distinct from zero. It never returns NaN and never panics.
func ParseCurrency(value string) *float64 {
	s := strings.TrimSpace(value)
	if s == "" {
		return nil
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}

	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r == '.':
			b.WriteRune(r)
		case r == '-':
			negative = true
		case r == '$' || r == ',' || r == ' ':
			// stripped
		default:
			return nil
		}
	}
	cleaned := b.String()
	if cleaned == "" {
		return nil
	}

	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil
	}
	if negative {
		f = -f
	}
	return &f
}

// ParseSuggestedAsk parses an ask amount. Negative asks make no sense, so they
// collapse to nil alongside unparseable input.
func ParseSuggestedAsk(value string) *float64 {
	f := ParseCurrency(value)
	if f == nil || *f < 0 {
		return nil
	}
	return f
}

// ParseInteger parses an integer, tolerating thousands separators and
// surrounding whitespace. Unparseable input returns nil.
func ParseInteger(value string) *int {
	s := strings.ReplaceAll(strings.TrimSpace(value), ",", "")
	if s == "" {
		return nil
	}
	// Spreadsheets often hand back "2020.0" for numeric cells.
	if i := strings.Index(s, "."); i >= 0 {
		frac := s[i+1:]
		if strings.Trim(frac, "0") != "" {
			return nil
		}
		s = s[:i]
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}

// ParseBooleanFlag recognizes the usual spreadsheet spellings of a boolean.
// Unrecognized or absent input returns the caller-supplied default.
func ParseBooleanFlag(value string, defaultValue bool) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "yes", "y", "true", "t", "1", "on", "locked", "x":
		return true
	case "no", "n", "false", "f", "0", "off", "unlock", "unlocked":
		return false
	default:
		return defaultValue
	}
}
