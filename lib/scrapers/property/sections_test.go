package property

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSixteenths(t *testing.T) {
	got := Sixteenths(170325)
	require.Len(t, got, 16)
	require.Equal(t, 17032511, got[0])
	require.Equal(t, 17032514, got[3])
	require.Equal(t, 17032521, got[4])
	require.Equal(t, 17032544, got[15])
}

func TestSixteenthPrefixes(t *testing.T) {
	got := SixteenthPrefixes([]int{170325, 170326})
	require.Len(t, got, 32)
	require.Equal(t, "17032511", got[0])
	require.Equal(t, "17032611", got[16])
}

func TestClassifyLayout(t *testing.T) {
	for _, test := range []struct {
		name            string
		summary         string
		hasYearBuilt    bool
		hasManufactured bool
		want            Layout
	}{
		{"none", "Residential Building None", false, false, LayoutNone},
		{"none with whitespace", "Residential Building  None", true, true, LayoutNone},
		{"residential", "Residential Building 1 (of 1)", true, false, LayoutResidential},
		{"residential wins over manufactured", "Residential Building 1 (of 1)", true, true, LayoutResidential},
		{"manufactured", "Residential Building 1 (of 1)", false, true, LayoutManufactured},
		{"unknown", "Residential Building 1 (of 2)", false, false, LayoutUnknown},
	} {
		t.Run(test.name, func(t *testing.T) {
			got := ClassifyLayout(test.summary, test.hasYearBuilt, test.hasManufactured)
			require.Equal(t, test.want, got)
		})
	}
}

func TestGridRecord(t *testing.T) {
	record, err := GridRecord(cellsRow{"link", "0259901", "17-03-25-11-01200", "DOE JOHN", "DOE JOHN", "123 MAIN ST"})
	require.NoError(t, err)
	require.Equal(t, []string{
		"account", "map_and_tax_lot", "tax_payer", "owner", "situs_address",
	}, record.Fields())
	require.Equal(t, "0259901", record.Get("account"))
	require.Equal(t, "123 MAIN ST", record.Get("situs_address"))
}

type cellsRow []string

func (r cellsRow) Cell(i int) string {
	if i < 0 || i >= len(r) {
		return ""
	}
	return r[i]
}
