// Package extract turns labeled blocks and positional rows into
// records. Lookups that find nothing yield empty values; a record is
// never failed over a single missing field.
package extract

import (
	"lanecollect/lib/normalize"
	"lanecollect/lib/scrape"
)

// Field names one record column and describes where its raw text
// lives in a block. Clean defaults to whitespace collapse.
type Field struct {
	Name    string
	Label   string
	Exclude string
	// Index selects among repeated fragments for the same label;
	// scrape.Last takes the final one.
	Index int
	Clean func(string) string
}

// Cell names one record column taken from a row by position.
type Cell struct {
	Name  string
	Index int
	Clean func(string) string
}

func clean(f func(string) string, raw string) string {
	if f == nil {
		f = normalize.Collapse
	}
	return f(raw)
}

// FromBlock looks every field up in the block, in order.
func FromBlock(block scrape.Block, fields []Field) scrape.Record {
	record := scrape.NewRecord()
	for _, f := range fields {
		raw := block.Lookup(scrape.Selector{
			Label:   f.Label,
			Exclude: f.Exclude,
			Index:   f.Index,
		})
		record.Set(f.Name, clean(f.Clean, raw))
	}
	return record
}

// AppendFromBlock adds block fields to an existing record.
func AppendFromBlock(record *scrape.Record, block scrape.Block, fields []Field) {
	for _, f := range fields {
		raw := block.Lookup(scrape.Selector{
			Label:   f.Label,
			Exclude: f.Exclude,
			Index:   f.Index,
		})
		record.Set(f.Name, clean(f.Clean, raw))
	}
}

// FromRow reads the named cells out of a positional row.
func FromRow(row scrape.Row, cells []Cell) scrape.Record {
	record := scrape.NewRecord()
	AppendFromRow(&record, row, cells)
	return record
}

// AppendFromRow adds row cells to an existing record.
func AppendFromRow(record *scrape.Record, row scrape.Row, cells []Cell) {
	for _, c := range cells {
		record.Set(c.Name, clean(c.Clean, row.Cell(c.Index)))
	}
}
