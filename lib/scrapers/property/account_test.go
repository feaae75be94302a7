package property

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func parseDoc(t *testing.T, fragment string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	require.NoError(t, err)
	return doc
}

const accountPage = `
<html><body>
<div>
<h2>Account Information</h2>
<table><tbody>
<tr><td>Account Number</td><td>0259901</td></tr>
<tr><td>Related to Account(s)</td><td>4334477 More...</td></tr>
<tr><td>Located on Account</td><td></td></tr>
<tr><td>Tax Payer</td><td>DOE JOHN</td></tr>
<tr><td>Situs Address</td><td>123 MAIN ST

EUGENE, OR 97401</td></tr>
<tr><td>Mailing Address</td><td>123 MAIN ST


EUGENE, OR 97401</td></tr>
<tr><td>Map and Tax Lot # </td><td>17-03-25-11-01200</td></tr>
<tr><td>Acreage</td><td>0.21</td></tr>
<tr><td>TCA</td><td>01900</td></tr>
<tr><td>Prop Class</td><td>101</td></tr>
</tbody></table>
</div>
<table>
<thead><tr><th>Date</th><th>Amount Received</th><th>Tax</th><th>Discount</th><th>Interest</th></tr></thead>
<tbody>
<tr><td>11/14/2022</td><td>$1,852.33</td><td>$1,908.59</td><td>$56.26</td><td>$0.00</td></tr>
<tr><td>11/15/2021</td><td>$1,799.06</td><td>$1,853.67</td><td>($54.61)</td><td>$0.00</td></tr>
</tbody>
</table>
<table>
<thead><tr><th>2023</th><th>2022</th></tr></thead>
<tbody>
<tr><th>Assessed Value</th><td>$250,000</td><td>$240,000</td></tr>
<tr><th>Max Assessed Value</th><td>$250,000</td><td>$240,000</td></tr>
<tr><th>Real Market Value</th><td>$380,000</td><td>$350,000</td></tr>
</tbody>
</table>
</body></html>`

func TestAccountRecord(t *testing.T) {
	doc := NewAccountDoc(parseDoc(t, accountPage))
	block, err := doc.InfoBlock()
	require.NoError(t, err)

	record := AccountRecord(block)
	require.Equal(t, []string{
		"account_number",
		"related_to_accounts",
		"located_on_account",
		"tax_payer",
		"situs_address",
		"situs_city_state_zip",
		"mailing_address_1",
		"mailing_address_2",
		"mailing_address_3",
		"mailing_city_state_zip",
		"map_and_tax_lot_number",
		"acreage",
		"tca",
		"prop_class",
	}, record.Fields())

	require.Equal(t, "0259901", record.Get("account_number"))
	require.Equal(t, "4334477", record.Get("related_to_accounts"))
	require.Equal(t, "", record.Get("located_on_account"))
	require.Equal(t, "123 MAIN ST", record.Get("situs_address"))
	require.Equal(t, "EUGENE, OR 97401", record.Get("situs_city_state_zip"))
	// mailing keeps interior blanks, so the city line lands last
	require.Equal(t, "123 MAIN ST", record.Get("mailing_address_1"))
	require.Equal(t, "", record.Get("mailing_address_2"))
	require.Equal(t, "", record.Get("mailing_address_3"))
	require.Equal(t, "EUGENE, OR 97401", record.Get("mailing_city_state_zip"))
	require.Equal(t, "17-03-25-11-01200", record.Get("map_and_tax_lot_number"))
	require.Equal(t, "101", record.Get("prop_class"))
}

func TestReceiptRecords(t *testing.T) {
	doc := NewAccountDoc(parseDoc(t, accountPage))
	rows, any, err := doc.Receipts()
	require.NoError(t, err)
	require.True(t, any)

	records := ReceiptRecords("0259901", rows)
	require.Len(t, records, 2)
	require.Equal(t, []string{
		"account_number", "date", "amount_received", "tax", "discount", "interest",
	}, records[0].Fields())
	require.Equal(t, "1852.33", records[0].Get("amount_received"))
	require.Equal(t, "-54.61", records[1].Get("discount"))
	require.Equal(t, "0.00", records[1].Get("interest"))
}

func TestReceiptsEmpty(t *testing.T) {
	doc := NewAccountDoc(parseDoc(t, `
<table>
<thead><tr><th>Date</th><th>Amount Received</th></tr></thead>
<tbody><tr><td colspan="2">No records to display</td></tr></tbody>
</table>`))
	_, any, err := doc.Receipts()
	require.NoError(t, err)
	require.False(t, any)
}

func TestAssessmentRecords(t *testing.T) {
	doc := NewAccountDoc(parseDoc(t, accountPage))
	years, rows, err := doc.Assessments()
	require.NoError(t, err)
	require.Equal(t, []string{"2023", "2022"}, years)

	records := AssessmentRecords("0259901", years, rows)
	require.Len(t, records, 2)
	require.Equal(t, []string{
		"account_id", "year", "assessed_value", "max_assessed_value", "real_market_value",
	}, records[0].Fields())
	require.Equal(t, "2023", records[0].Get("year"))
	require.Equal(t, "240000.00", records[1].Get("assessed_value"))
	require.Equal(t, "350000.00", records[1].Get("real_market_value"))
}

func TestAssessmentRecordsMissingRows(t *testing.T) {
	require.Empty(t, AssessmentRecords("0259901", []string{"2023"}, nil))
}
