package property

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"lanecollect/lib/extract"
	"lanecollect/lib/normalize"
	"lanecollect/lib/scrape"
	"lanecollect/lib/scrapers/dom"
)

// Titles the owner-report navigation can land on. The search site
// silently bounces accounts with no report back to the search page.
const (
	reportTitle   = "Lane County Assessment and Taxation Prop Info Report"
	noReportTitle = "Lane County Assessment and Taxation Lane County A & T Property Search"
)

// ReportDoc is a rendered property info report page.
type ReportDoc struct {
	doc *goquery.Document
}

func NewReportDoc(doc *goquery.Document) ReportDoc {
	return ReportDoc{doc: doc}
}

// HasReport reports whether the navigation actually landed on a
// report. Landing back on the search page means the account has no
// report; any other title is an error.
func (r ReportDoc) HasReport() (bool, error) {
	title := normalize.Collapse(r.doc.Find("title").Text())
	switch title {
	case reportTitle:
		return true, nil
	case noReportTitle:
		return false, nil
	}
	return false, fmt.Errorf("unknown report page title: %q", title)
}

const mapTaxLabel = "Map, Tax Lot & SIC"

// Taxlot returns the page's tax lot identifier with its separators
// squeezed out.
func (r ReportDoc) Taxlot() string {
	el := dom.TextElements(r.doc.Selection, mapTaxLabel).Last()
	if el.Length() == 0 {
		return ""
	}
	v := strings.TrimPrefix(normalize.Collapse(el.Text()), mapTaxLabel)
	v = strings.ReplaceAll(v, "-", "")
	return strings.ReplaceAll(strings.TrimSpace(v), " ", "")
}

const additionalLabel = "Additional Account Numbers for this Tax Lot"

// AdditionalAccounts lists the other accounts sharing this tax lot.
func (r ReportDoc) AdditionalAccounts() []string {
	raw := dom.LabelTable{Sel: r.doc.Selection}.Lookup(scrape.Selector{
		Label: additionalLabel,
		Index: scrape.Last,
	})
	raw = strings.TrimPrefix(normalize.Collapse(raw), additionalLabel)
	var accounts []string
	for _, part := range strings.Split(raw, ";") {
		if part = strings.TrimSpace(part); part != "" {
			accounts = append(accounts, part)
		}
	}
	return accounts
}

func (r ReportDoc) AccountType() string {
	return normalize.Collapse(dom.LabelTable{Sel: r.doc.Selection}.Lookup(scrape.Selector{
		Label: "Account Type",
		Index: scrape.Last,
	}))
}

// OwnerRows returns the owner table's data rows, header excluded.
func (r ReportDoc) OwnerRows() []scrape.Row {
	table, ok := dom.TableContaining(r.doc.Selection, "Owner Address City State Zip")
	if !ok {
		return nil
	}
	rows := dom.Rows(table)
	if len(rows) < 2 {
		return nil
	}
	return rows[1:]
}

var ownerCells = []extract.Cell{
	{Name: "owner", Index: 0},
	{Name: "address", Index: 1},
	{Name: "city_state_zip", Index: 2},
}

func OwnerRecords(account, accountType string, rows []scrape.Row) []scrape.Record {
	var records []scrape.Record
	for _, row := range rows {
		record := scrape.NewRecord()
		record.Set("account", account)
		record.Set("account_type", accountType)
		extract.AppendFromRow(&record, row, ownerCells)
		records = append(records, record)
	}
	return records
}

// TaxlotAccountRecords joins every account on the lot to the lot
// identifier.
func TaxlotAccountRecords(accounts []string, taxlot string) []scrape.Record {
	var records []scrape.Record
	for _, account := range accounts {
		record := scrape.NewRecord()
		record.Set("account", account)
		record.Set("taxlot", taxlot)
		records = append(records, record)
	}
	return records
}

// ResidentialSummary returns the "Residential Building ..." heading
// text that announces which building layout the page carries.
func (r ReportDoc) ResidentialSummary() string {
	el := dom.TextElements(r.doc.Selection, "Residential Building").First()
	if el.Length() == 0 {
		return ""
	}
	return normalize.Collapse(el.Text())
}

// ResidentialSection holds the three nested tables of a conventional
// residential building.
type ResidentialSection struct {
	Report     scrape.Block
	Floors     RowBlock
	Structures RowBlock
}

func (r ReportDoc) ResidentialSection() (ResidentialSection, bool) {
	tables, ok := dom.Following(r.doc.Selection, "Residential Building", "table")
	if !ok {
		return ResidentialSection{}, false
	}
	super := tables.First()
	report := dom.LabelTable{Sel: super}
	if _, found := report.Row("Year Built"); !found {
		return ResidentialSection{}, false
	}
	floors := super.Find("tbody").FilterFunction(textFilter("Floor")).First()
	structures := super.Find("tbody").FilterFunction(textFilter("Structure")).First()
	return ResidentialSection{
		Report:     report,
		Floors:     dom.LabelTable{Sel: floors},
		Structures: dom.LabelTable{Sel: structures},
	}, true
}

func textFilter(marker string) func(int, *goquery.Selection) bool {
	return func(_ int, s *goquery.Selection) bool {
		return strings.Contains(normalize.Collapse(s.Text()), marker)
	}
}

// ManufacturedCells returns the value row of a manufactured-structure
// section. Only the last row carries data; the ones above are headers.
func (r ReportDoc) ManufacturedCells() (scrape.Row, bool) {
	bodies, ok := dom.Following(r.doc.Selection, "Manufactured Structure", "tbody")
	if !ok {
		return nil, false
	}
	rows := dom.Rows(bodies.First())
	if len(rows) == 0 {
		return nil, false
	}
	return rows[len(rows)-1], true
}

// BuildingRecord extracts the building described on the report page,
// dispatching on the layout the page carries. ok is false when the
// page has no building.
func (r ReportDoc) BuildingRecord(taxlot string) (scrape.Record, bool) {
	summary := r.ResidentialSummary()
	section, hasResidential := r.ResidentialSection()
	cells, hasManufactured := r.ManufacturedCells()

	switch ClassifyLayout(summary, hasResidential, hasManufactured) {
	case LayoutNone:
		return scrape.Record{}, false
	case LayoutResidential:
		// only the first building is described in full
		if !strings.HasSuffix(summary, "(of 1)") {
			slog.Warn("additional residential buildings not collected",
				"taxlot", taxlot, "summary", summary)
		}
		return ResidentialRecord(taxlot, section.Report, section.Floors, section.Structures), true
	case LayoutManufactured:
		slog.Warn("manufactured building", "taxlot", taxlot)
		return ManufacturedRecord(taxlot, cells), true
	}
	slog.Error("unknown building layout", "taxlot", taxlot, "summary", summary)
	return scrape.Record{}, false
}

var commercialNoneRegex = regexp.MustCompile(`^Commercial Building\s*None`)

// CommercialRecords extracts every building under the "Commercial
// Improvements" header. A "Commercial Building None" header means the
// lot has none; a section with neither header is logged and skipped.
func (r ReportDoc) CommercialRecords(taxlot string) []scrape.Record {
	headers, _ := dom.Following(r.doc.Selection, "Residential Building", "h3")
	headers = headers.FilterFunction(textFilter("Commercial"))

	var commercial *goquery.Selection
	var texts []string
	found := false
	headers.EachWithBreak(func(_ int, h *goquery.Selection) bool {
		text := normalize.Collapse(h.Text())
		texts = append(texts, text)
		if text == "Commercial Improvements" {
			commercial = h
			return false
		}
		if commercialNoneRegex.MatchString(text) {
			found = true
			return false
		}
		return true
	})
	if found {
		return nil
	}
	if commercial == nil {
		slog.Error("commercial improvements section not recognized",
			"taxlot", taxlot, "headers", strings.Join(texts, ";"))
		return nil
	}

	var records []scrape.Record
	dom.After(r.doc.Selection, commercial, "h4").Each(func(_ int, h *goquery.Selection) {
		table := dom.After(r.doc.Selection, h, "table").First()
		if table.Length() == 0 {
			return
		}
		records = append(records, CommercialRecord(taxlot, normalize.Collapse(h.Text()), table))
	})
	return records
}

var commercialStats = []extract.Field{
	{Name: "year_built", Label: "Year Built", Exclude: "Effective", Index: scrape.Last},
	{Name: "effective_year_built", Label: "Effective Year Built", Index: scrape.Last},
	{Name: "grade", Label: "Grade", Index: scrape.Last},
	{Name: "floor_number", Label: "Floor Number", Index: scrape.Last},
	{Name: "wall_height_ft", Label: "Wall Height Ft", Index: scrape.Last},
	{Name: "occupancy_number", Label: "Occupancy Number", Index: scrape.Last},
}

var commercialSqFt = []extract.Field{
	{Name: "fireproof_steel_sq_ft", Label: "Fireproof Steel Sq Ft", Index: scrape.Last},
	{Name: "reinforced_concrete_sq_ft", Label: "Reinforced Concrete Sq Ft", Index: scrape.Last},
	{Name: "fire_resistant_sq_ft", Label: "Fire Resistant Sq Ft", Index: scrape.Last},
	{Name: "wood_joist_sq_ft", Label: "Wood Joist Sq Ft", Index: scrape.Last},
	{Name: "pole_frame_sq_ft", Label: "Pole Frame Sq Ft", Index: scrape.Last},
	{Name: "pre_engineered_steel_sq_ft", Label: "Pre-engineered Steel Sq Ft", Index: scrape.Last},
}

// CommercialRecord reads one commercial building table, which nests a
// stats table and a square-footage table.
func CommercialRecord(taxlot, description string, table *goquery.Selection) scrape.Record {
	nested := table.Find("table")
	stats := dom.LabelTable{Sel: nested.Eq(0)}
	sqft := dom.LabelTable{Sel: nested.Eq(1)}

	record := scrape.NewRecord()
	record.Set("taxlot", taxlot)
	record.Set("description", description)
	extract.AppendFromBlock(&record, stats, commercialStats)

	// the total footprint leads the square-footage table
	total := nested.Eq(1).Find("tr").First().Find("td").Last()
	record.Set("sq_ft", normalize.Collapse(total.Text()))
	extract.AppendFromBlock(&record, sqft, commercialSqFt)
	return record
}
