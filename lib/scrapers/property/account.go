package property

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"lanecollect/lib/extract"
	"lanecollect/lib/normalize"
	"lanecollect/lib/scrape"
	"lanecollect/lib/scrapers/dom"
)

// AccountDoc is a rendered account detail page. Bindings hand over a
// parsed snapshot; tests build one straight from fixture HTML.
type AccountDoc struct {
	doc *goquery.Document
}

func NewAccountDoc(doc *goquery.Document) AccountDoc {
	return AccountDoc{doc: doc}
}

func (a AccountDoc) InfoBlock() (scrape.Block, error) {
	table, ok := dom.TableContaining(a.doc.Selection, "Account Number")
	if !ok {
		return nil, fmt.Errorf("no account information table")
	}
	return dom.LabelTable{Sel: table}, nil
}

// Receipts returns the receipt rows, or ok=false when the table
// reports no records.
func (a AccountDoc) Receipts() ([]scrape.Row, bool, error) {
	table, ok := dom.TableContaining(a.doc.Selection, "Amount Received")
	if !ok {
		return nil, false, fmt.Errorf("no receipts table")
	}
	if tableSaysEmpty(table) {
		return nil, false, nil
	}
	return dom.Rows(table.Find("tbody")), true, nil
}

// Assessments returns the assessment year headers and value rows.
// Pages without assessments yield empty results.
func (a AccountDoc) Assessments() ([]string, []scrape.Row, error) {
	table, ok := dom.TableContaining(a.doc.Selection, "Assessed Value")
	if !ok {
		return nil, nil, fmt.Errorf("no assessments table")
	}
	var years []string
	table.Find("thead th").Each(func(_ int, th *goquery.Selection) {
		years = append(years, normalize.Collapse(th.Text()))
	})
	return years, dom.Rows(table.Find("tbody")), nil
}

func tableSaysEmpty(table *goquery.Selection) bool {
	return strings.Contains(normalize.Collapse(table.Text()), "No records to display")
}

// accountFields are the scalar rows of the account information table.
// Address rows need multi-line handling and are read separately.
var accountFields = []extract.Field{
	{Name: "account_number", Label: "Account Number", Index: scrape.Last},
	{Name: "related_to_accounts", Label: "Related to Account(s)", Index: scrape.Last, Clean: normalize.StripMore},
	{Name: "located_on_account", Label: "Located on Account", Index: scrape.Last, Clean: normalize.StripMore},
	{Name: "tax_payer", Label: "Tax Payer", Index: scrape.Last},
}

var accountTrailingFields = []extract.Field{
	{Name: "map_and_tax_lot_number", Label: "Map and Tax Lot #", Index: scrape.Last},
	{Name: "acreage", Label: "Acreage", Index: scrape.Last},
	{Name: "tca", Label: "TCA", Index: scrape.Last},
	{Name: "prop_class", Label: "Prop Class", Index: scrape.Last},
}

// AccountRecord reads the account information block: lot, payer and
// both address blocks.
func AccountRecord(block scrape.Block) scrape.Record {
	record := extract.FromBlock(block, accountFields)

	situs := normalize.CompactLines(block.Lookup(scrape.Selector{
		Label: "Situs Address",
		Index: scrape.Last,
	}), 2)
	record.Set("situs_address", situs[0])
	record.Set("situs_city_state_zip", situs[1])

	mailing := normalize.TrimmedLines(block.Lookup(scrape.Selector{
		Label: "Mailing Address",
		Index: scrape.Last,
	}), 4)
	record.Set("mailing_address_1", mailing[0])
	record.Set("mailing_address_2", mailing[1])
	record.Set("mailing_address_3", mailing[2])
	record.Set("mailing_city_state_zip", mailing[3])

	extract.AppendFromBlock(&record, block, accountTrailingFields)
	return record
}

var receiptCells = []extract.Cell{
	{Name: "date", Index: 0},
	{Name: "amount_received", Index: 1, Clean: normalize.CleanMoney},
	{Name: "tax", Index: 2, Clean: normalize.CleanMoney},
	{Name: "discount", Index: 3, Clean: normalize.CleanMoney},
	{Name: "interest", Index: 4, Clean: normalize.CleanMoney},
}

// ReceiptRecords maps the receipt table rows for one account.
func ReceiptRecords(account string, rows []scrape.Row) []scrape.Record {
	var records []scrape.Record
	for _, row := range rows {
		record := scrape.NewRecord()
		record.Set("account_number", account)
		extract.AppendFromRow(&record, row, receiptCells)
		records = append(records, record)
	}
	return records
}

// AssessmentRecords denormalizes the assessments table (years across,
// value kinds down) into one record per year.
func AssessmentRecords(account string, years []string, rows []scrape.Row) []scrape.Record {
	if len(rows) < 3 {
		return nil
	}
	assessed, maxAssessed, realMarket := rows[0], rows[1], rows[2]

	var records []scrape.Record
	for i, year := range years {
		// each value row leads with its kind label, so year i's
		// value sits at cell i+1
		record := scrape.NewRecord()
		record.Set("account_id", account)
		record.Set("year", year)
		record.Set("assessed_value", normalize.CleanMoney(assessed.Cell(i+1)))
		record.Set("max_assessed_value", normalize.CleanMoney(maxAssessed.Cell(i+1)))
		record.Set("real_market_value", normalize.CleanMoney(realMarket.Cell(i+1)))
		records = append(records, record)
	}
	return records
}
