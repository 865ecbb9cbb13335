package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCurrency(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
	}{
		{"100", 100},
		{"$1,500.00", 1500},
		{" $ 2,000 ", 2000},
		{"250.50", 250.5},
		{"-50", -50},
		{"($75.25)", -75.25},
		{"0", 0},
	}
	for _, tt := range tests {
		got := ParseCurrency(tt.input)
		require.NotNil(t, got, "input %q", tt.input)
		assert.Equal(t, tt.expected, *got, "input %q", tt.input)
	}
}

func TestParseCurrencyUnparseable(t *testing.T) {
	for _, input := range []string{"", "   ", "abc", "$", "N/A", "12.3.4", "10 dollars"} {
		assert.Nil(t, ParseCurrency(input), "input %q", input)
	}
}

func TestParseCurrencyZeroIsNotNil(t *testing.T) {
	// Zero means "known to be zero"; nil means "unknown". The two must never
	// collapse into each other.
	got := ParseCurrency("$0.00")
	require.NotNil(t, got)
	assert.Zero(t, *got)
}

func TestParseSuggestedAsk(t *testing.T) {
	got := ParseSuggestedAsk("$500")
	require.NotNil(t, got)
	assert.Equal(t, 500.0, *got)

	assert.Nil(t, ParseSuggestedAsk("-100"))
	assert.Nil(t, ParseSuggestedAsk("($25)"))
	assert.Nil(t, ParseSuggestedAsk("n/a"))
}

func TestParseInteger(t *testing.T) {
	tests := []struct {
		input    string
		expected int
	}{
		{"2020", 2020},
		{" 1,234 ", 1234},
		{"2020.0", 2020},
		{"2020.000", 2020},
		{"-5", -5},
	}
	for _, tt := range tests {
		got := ParseInteger(tt.input)
		require.NotNil(t, got, "input %q", tt.input)
		assert.Equal(t, tt.expected, *got, "input %q", tt.input)
	}

	for _, input := range []string{"", "2020.5", "abc", "12a"} {
		assert.Nil(t, ParseInteger(input), "input %q", input)
	}
}

func TestParseBooleanFlag(t *testing.T) {
	for _, input := range []string{"yes", "Y", "TRUE", "t", "1", "on", "Locked", "x"} {
		assert.True(t, ParseBooleanFlag(input, false), "input %q", input)
	}
	for _, input := range []string{"no", "N", "false", "F", "0", "off", "unlocked"} {
		assert.False(t, ParseBooleanFlag(input, true), "input %q", input)
	}
	assert.True(t, ParseBooleanFlag("", true))
	assert.False(t, ParseBooleanFlag("maybe", false))
}
