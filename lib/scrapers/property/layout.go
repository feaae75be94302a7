package property

import (
	"regexp"

	"lanecollect/lib/normalize"
	"lanecollect/lib/scrape"
)

// Layout is the building layout variant a taxlot report page uses.
// Classification is an explicit step so extraction can dispatch on it
// instead of falling through failure by failure.
type Layout int

const (
	LayoutNone Layout = iota
	LayoutResidential
	LayoutManufactured
	LayoutUnknown
)

func (l Layout) String() string {
	switch l {
	case LayoutNone:
		return "none"
	case LayoutResidential:
		return "residential"
	case LayoutManufactured:
		return "manufactured"
	}
	return "unknown"
}

var residentialNoneRegex = regexp.MustCompile(`Residential Building\s*None`)

// ClassifyLayout decides which building layout the report page
// carries from its "Residential Building" summary line and which
// structures are present.
func ClassifyLayout(summary string, hasYearBuilt, hasManufactured bool) Layout {
	if residentialNoneRegex.MatchString(summary) {
		return LayoutNone
	}
	if hasYearBuilt {
		return LayoutResidential
	}
	if hasManufactured {
		return LayoutManufactured
	}
	return LayoutUnknown
}

// RowBlock is a labeled block whose rows can also be read by cell
// position, which the floors and structures tables need.
type RowBlock interface {
	scrape.Block
	Row(label string) (scrape.Row, bool)
}

var buildingFloors = []struct {
	label string
	field string
}{
	{"Basement", "basement_floor"},
	{"First", "first_floor"},
	{"Second", "second_floor"},
	{"Attic", "attic_floor"},
	{"Total", "total_floor"},
}

var buildingStructures = []struct {
	label string
	field string
}{
	{"Bsmt Garage", "basement_garage"},
	{"Att Garage", "attached_garage"},
	{"Det Garage", "detached_garage"},
	{"Att Carport", "attached_carport"},
}

// ResidentialRecord reads the conventional residential building
// layout: a year-built row, a floors table and a structures table.
func ResidentialRecord(taxlot string, report scrape.Block, floors RowBlock, structures RowBlock) scrape.Record {
	record := scrape.NewRecord()
	record.Set("taxlot", taxlot)
	record.Set("year_built", normalize.Collapse(report.Lookup(scrape.Selector{
		Label:   "Year Built",
		Exclude: "Effective",
		Index:   0,
	})))

	for _, floor := range buildingFloors {
		base, finished := "", ""
		if row, ok := floors.Row(floor.label); ok {
			base = normalize.Collapse(row.Cell(1))
			finished = normalize.Collapse(row.Cell(2))
		}
		record.Set(floor.field+"_base", base)
		record.Set(floor.field+"_finished", finished)
	}
	for _, structure := range buildingStructures {
		record.Set(structure.field, normalize.Collapse(structures.Lookup(scrape.Selector{
			Label: structure.label,
			Index: scrape.Last,
		})))
	}

	record.Set("manufactured", "false")
	record.Set("manufactured_model_year", "N/A")
	record.Set("manufactured_make", "N/A")
	record.Set("manufactured_plate", "N/A")
	record.Set("manufactured_lois", "N/A")
	return record
}

// ManufacturedRecord reads the manufactured-structure layout, which
// replaces every conventional building field with N/A.
func ManufacturedRecord(taxlot string, cells scrape.Row) scrape.Record {
	record := scrape.NewRecord()
	record.Set("taxlot", taxlot)
	record.Set("year_built", "N/A")
	for _, floor := range buildingFloors {
		record.Set(floor.field+"_base", "N/A")
		record.Set(floor.field+"_finished", "N/A")
	}
	for _, structure := range buildingStructures {
		record.Set(structure.field, "N/A")
	}
	record.Set("manufactured", "true")
	record.Set("manufactured_model_year", normalize.Collapse(cells.Cell(0)))
	record.Set("manufactured_make", normalize.Collapse(cells.Cell(1)))
	record.Set("manufactured_plate", normalize.Collapse(cells.Cell(2)))
	record.Set("manufactured_lois", normalize.Collapse(cells.Cell(3)))
	return record
}
