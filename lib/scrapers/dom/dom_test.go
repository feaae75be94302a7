package dom

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"lanecollect/lib/scrape"
)

func doc(t *testing.T, fragment string) *goquery.Document {
	t.Helper()
	d, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	require.NoError(t, err)
	return d
}

const accountTable = `
<table><tbody>
<tr><td>Account Number</td><td>0259901</td></tr>
<tr><td>Year Built</td><td>1947</td></tr>
<tr><td>Effective Year Built</td><td>1988</td></tr>
<tr><td>Situs Address</td><td>123 Main St


Eugene OR</td></tr>
</tbody></table>`

func TestLabelTableLookup(t *testing.T) {
	block := LabelTable{Sel: doc(t, accountTable).Selection}

	require.Equal(t, "0259901", strings.TrimSpace(
		block.Lookup(scrape.Selector{Label: "Account Number", Index: scrape.Last})))

	// exclusion picks plain Year Built over the Effective row
	require.Equal(t, "1947", strings.TrimSpace(block.Lookup(scrape.Selector{
		Label:   "Year Built",
		Exclude: "Effective",
		Index:   scrape.Last,
	})))

	require.Equal(t, "", block.Lookup(scrape.Selector{Label: "No Such Field", Index: scrape.Last}))
}

func TestLabelTableKeepsLineStructure(t *testing.T) {
	block := LabelTable{Sel: doc(t, accountTable).Selection}
	raw := block.Lookup(scrape.Selector{Label: "Situs Address", Index: scrape.Last})
	require.Contains(t, raw, "\n")
}

func TestLabelTableRow(t *testing.T) {
	block := LabelTable{Sel: doc(t, `
<table><tbody>
<tr><td>Basement</td><td>600</td><td>0</td></tr>
<tr><td>First</td><td>1200</td><td>1200</td></tr>
</tbody></table>`).Selection}

	row, ok := block.Row("First")
	require.True(t, ok)
	require.Equal(t, "1200", row.Cell(1))
	require.Equal(t, "1200", row.Cell(2))
	require.Equal(t, "", row.Cell(9))

	_, ok = block.Row("Attic")
	require.False(t, ok)
}

const chargesTable = `
<table><tbody>
<tr><td>Violation: DUII</td><td>Level: Misdemeanor</td></tr>
<tr><td>Violation: RECKLESS DRIVING</td><td>Level: Misdemeanor</td></tr>
<tr><td>Case #: 12345</td><td>Court Case #: CR-99</td></tr>
</tbody></table>`

func TestLabelCellsLookup(t *testing.T) {
	block := LabelCells{Sel: doc(t, chargesTable).Selection}

	require.Equal(t, "DUII",
		block.Lookup(scrape.Selector{Label: "Violation:", Index: 0}))
	require.Equal(t, "RECKLESS DRIVING",
		block.Lookup(scrape.Selector{Label: "Violation:", Index: 1}))
	require.Equal(t, "RECKLESS DRIVING",
		block.Lookup(scrape.Selector{Label: "Violation:", Index: scrape.Last}))
	require.Equal(t, "",
		block.Lookup(scrape.Selector{Label: "Violation:", Index: 5}))

	// prefix matching keeps "Case #:" from matching "Court Case #:"
	require.Equal(t, "12345",
		block.Lookup(scrape.Selector{Label: "Case #:", Index: scrape.Last}))

	require.Equal(t, 2, block.Count("Violation:"))
}

func TestRows(t *testing.T) {
	rows := Rows(doc(t, chargesTable).Selection)
	require.Len(t, rows, 3)
	require.Equal(t, "Violation: DUII", strings.TrimSpace(rows[0].Cell(0)))
}
