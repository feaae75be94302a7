package normalize

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseMoney(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"$1,234.50", "1234.50"},
		{"($12.01)", "-12.01"},
		{" $0.00 ", "0.00"},
		{"$5", "5.00"},
		{"$1,000,000.9", "1000000.90"},
		{"( $3.25 )", "-3.25"},
		{"42.10", "42.10"},
	}

	for _, test := range testCases {
		m, err := ParseMoney(test.input)
		require.NoError(t, err, test.input)
		require.Equal(t, test.expected, m.String(), test.input)
	}
}

func TestParseMoneyIdempotent(t *testing.T) {
	for _, input := range []string{"$1,234.50", "($12.01)", " $0.00 "} {
		once, err := ParseMoney(input)
		require.NoError(t, err)
		twice, err := ParseMoney(once.String())
		require.NoError(t, err)
		require.Equal(t, once, twice)
	}
}

func TestParseMoneyRejectsGarbage(t *testing.T) {
	for _, input := range []string{"", "   ", "$", "N/A"} {
		_, err := ParseMoney(input)
		require.Error(t, err, input)
	}
	require.Equal(t, "", CleanMoney("N/A"))
}
