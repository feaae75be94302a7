package property

import (
	"lanecollect/lib/extract"
	"lanecollect/lib/scrape"
)

// gridCells is the column layout of the account search results grid.
// Column 0 is the row's detail link.
var gridCells = []extract.Cell{
	{Name: "account", Index: 1},
	{Name: "map_and_tax_lot", Index: 2},
	{Name: "tax_payer", Index: 3},
	{Name: "owner", Index: 4},
	{Name: "situs_address", Index: 5},
}

// GridRecord maps one search-result row to a property record.
func GridRecord(row scrape.Row) (scrape.Record, error) {
	return extract.FromRow(row, gridCells), nil
}
