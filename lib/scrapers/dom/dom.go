// Package dom implements the scrape row/block contracts over parsed
// HTML, so the same extraction code runs against live pages and test
// fixtures.
package dom

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"lanecollect/lib/htmlutil"
	"lanecollect/lib/scrape"
)

type row struct {
	cells *goquery.Selection
}

// Row wraps a table row element; cells are its td/th children in
// order.
func Row(sel *goquery.Selection) scrape.Row {
	return row{cells: sel.Find("td,th")}
}

func (r row) Cell(i int) string {
	if i < 0 || i >= r.cells.Length() {
		return ""
	}
	return r.cells.Eq(i).Text()
}

// Rows wraps every tr under sel.
func Rows(sel *goquery.Selection) []scrape.Row {
	var out []scrape.Row
	sel.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		out = append(out, Row(tr))
	})
	return out
}

// LabelTable is a block whose fragments are table rows led by a label
// cell; a lookup's value is the matching row's final cell. This is
// the county detail-table shape: one tr per field, label on the left,
// value on the right.
type LabelTable struct {
	Sel *goquery.Selection
}

func (t LabelTable) matches(label, exclude string) []*goquery.Selection {
	var matched []*goquery.Selection
	t.Sel.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		text := htmlutil.CleanText(tr)
		if !strings.Contains(text, label) {
			return
		}
		if exclude != "" && strings.Contains(text, exclude) {
			return
		}
		matched = append(matched, tr)
	})
	return matched
}

// Lookup returns the raw text of the selected row's last cell, so
// multi-line address cells keep their line structure.
func (t LabelTable) Lookup(sel scrape.Selector) string {
	matched := t.matches(sel.Label, sel.Exclude)
	tr := pick(matched, sel.Index)
	if tr == nil {
		return ""
	}
	cells := tr.Find("td")
	if cells.Length() == 0 {
		return ""
	}
	return cells.Eq(cells.Length() - 1).Text()
}

// Row returns the first row containing label as a positional row, for
// tables read cell-by-cell rather than label-to-value.
func (t LabelTable) Row(label string) (scrape.Row, bool) {
	matched := t.matches(label, "")
	if len(matched) == 0 {
		return nil, false
	}
	return Row(matched[0]), true
}

// LabelCells is a block whose fragments are individual cells starting
// with the label text, the way the booking detail pages inline
// "Violation: ..." into each cell. Lookup strips the label prefix
// from the returned value.
type LabelCells struct {
	Sel *goquery.Selection
}

func (c LabelCells) Lookup(sel scrape.Selector) string {
	var matched []string
	c.Sel.Find("td,th").Each(func(_ int, cell *goquery.Selection) {
		text := htmlutil.CleanText(cell)
		if !strings.HasPrefix(text, sel.Label) {
			return
		}
		if sel.Exclude != "" && strings.Contains(text, sel.Exclude) {
			return
		}
		matched = append(matched, strings.TrimSpace(strings.TrimPrefix(text, sel.Label)))
	})
	if len(matched) == 0 {
		return ""
	}
	if sel.Index < 0 {
		return matched[len(matched)-1]
	}
	if sel.Index >= len(matched) {
		return ""
	}
	return matched[sel.Index]
}

// Count reports how many cells carry the label, e.g. how many charge
// groups a booking holds.
func (c LabelCells) Count(label string) int {
	n := 0
	c.Sel.Find("td,th").Each(func(_ int, cell *goquery.Selection) {
		if strings.HasPrefix(htmlutil.CleanText(cell), label) {
			n++
		}
	})
	return n
}

// TableContaining finds the innermost table under root whose text
// carries the marker. The county pages nest tables, so the deepest
// match is the one actually holding the data.
func TableContaining(root *goquery.Selection, marker string) (*goquery.Selection, bool) {
	var found *goquery.Selection
	root.Find("table").Each(func(_ int, table *goquery.Selection) {
		if strings.Contains(htmlutil.CleanText(table), marker) {
			found = table
		}
	})
	if found == nil {
		return nil, false
	}
	// descend while a nested table still carries the marker
	for {
		var deeper *goquery.Selection
		found.Find("table").Each(func(_ int, table *goquery.Selection) {
			if strings.Contains(htmlutil.CleanText(table), marker) {
				deeper = table
			}
		})
		if deeper == nil {
			return found, true
		}
		found = deeper
	}
}

func pick(matched []*goquery.Selection, index int) *goquery.Selection {
	if len(matched) == 0 {
		return nil
	}
	if index < 0 {
		return matched[len(matched)-1]
	}
	if index >= len(matched) {
		return nil
	}
	return matched[index]
}
