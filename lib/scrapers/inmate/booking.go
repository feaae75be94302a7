package inmate

import (
	"errors"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"lanecollect/lib/extract"
	"lanecollect/lib/normalize"
	"lanecollect/lib/scrape"
	"lanecollect/lib/scrapers/dom"
)

// BookingDoc is a rendered booking detail page. Its fields are cells
// carrying their own label prefix, "Booking Date: 01/02/2023" style.
type BookingDoc struct {
	doc *goquery.Document
}

func NewBookingDoc(doc *goquery.Document) BookingDoc {
	return BookingDoc{doc: doc}
}

func (b BookingDoc) cells() dom.LabelCells {
	return dom.LabelCells{Sel: b.doc.Selection}
}

// Field returns one labeled cell's value.
func (b BookingDoc) Field(label string) string {
	return b.cells().Lookup(scrape.Selector{Label: label, Index: scrape.Last})
}

// ChargeCount reads the "Charges: N" heading.
func (b BookingDoc) ChargeCount() (int, error) {
	var text string
	b.doc.Find("h1,h2,h3,h4,h5,h6").EachWithBreak(func(_ int, h *goquery.Selection) bool {
		t := normalize.Collapse(h.Text())
		if strings.HasPrefix(t, "Charges:") {
			text = strings.TrimSpace(strings.TrimPrefix(t, "Charges:"))
			return false
		}
		return true
	})
	if text == "" {
		return 0, errors.New("charges heading not found")
	}
	return strconv.Atoi(text)
}

// CustodyAsOf reads the "IN CUSTODY as of ..." link text, empty when
// the inmate is out of custody.
func (b BookingDoc) CustodyAsOf() string {
	var out string
	b.doc.Find("a").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		t := normalize.Collapse(a.Text())
		if strings.HasPrefix(t, "IN CUSTODY as of") {
			out = strings.TrimSpace(strings.TrimPrefix(t, "IN CUSTODY as of"))
			return false
		}
		return true
	})
	return out
}

// chargesBlock returns the table body holding every charge group's
// labeled cells.
func (b BookingDoc) chargesBlock() (dom.LabelCells, bool) {
	body := b.doc.Find("tbody").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return strings.Contains(normalize.Collapse(s.Text()), "Violation:")
	}).First()
	if body.Length() == 0 {
		return dom.LabelCells{}, false
	}
	return dom.LabelCells{Sel: body}, true
}

var bookingFields = []extract.Field{
	{Name: "booking_date", Label: "Booking Date:", Index: scrape.Last},
	{Name: "scheduled_release", Label: "Sched. Release:", Index: scrape.Last},
	{Name: "released", Label: "Released:", Index: scrape.Last},
	{Name: "age", Label: "Age:", Index: scrape.Last},
	{Name: "sex", Label: "Sex:", Index: scrape.Last},
	{Name: "race", Label: "Race:", Index: scrape.Last},
	{Name: "hair", Label: "Hair:", Index: scrape.Last},
	{Name: "eyes", Label: "Eyes:", Index: scrape.Last},
	{Name: "height", Label: "Height:", Index: scrape.Last},
	{Name: "weight", Label: "Weight:", Index: scrape.Last},
}

// BookingRecord assembles the booking row from the summary row's
// names and the detail page's labeled cells.
func BookingRecord(doc BookingDoc, summary scrape.Record, bookingNumber, inmateID string, charges int) scrape.Record {
	record := scrape.NewRecord()
	record.Set("booking_number", bookingNumber)
	record.Set("inmate_id", inmateID)
	record.Set("first_name", summary.Get("first_name"))
	record.Set("last_name", summary.Get("last_name"))
	record.Set("middle_name", summary.Get("middle_name"))
	record.Set("n_charges", strconv.Itoa(charges))
	extract.AppendFromBlock(&record, doc.cells(), bookingFields)
	return record
}

// CustodyRecord keeps the custody link apart from the booking row, so
// in-custody status lives in its own file.
func CustodyRecord(doc BookingDoc, bookingNumber, inmateID string) scrape.Record {
	record := scrape.NewRecord()
	record.Set("booking_number", bookingNumber)
	record.Set("inmate_id", inmateID)
	record.Set("in_custody_as_of", doc.CustodyAsOf())
	return record
}

// chargeFields are looked up per charge group: the i'th charge is the
// i'th cell carrying each label.
var chargeFields = []extract.Field{
	{Name: "violation", Label: "Violation:"},
	{Name: "level", Label: "Level:"},
	{Name: "additional_description", Label: "Add. Desc.:"},
	{Name: "OBTS_number", Label: "OBTS #:"},
	{Name: "warrant_number", Label: "War.#:"},
	{Name: "end_of_sentence_date", Label: "End Of Sentence Date:"},
	{Name: "clearance", Label: "Clearance:"},
	{Name: "arrest_agency", Label: "Arrest Agency:"},
	{Name: "case_number", Label: "Case #:"},
	{Name: "arrest_date", Label: "Arrest Date:"},
	{Name: "court_type", Label: "Court Type:"},
	{Name: "court_case_number", Label: "Court Case #:"},
	{Name: "next_court_date", Label: "Next Court Date"},
	{Name: "required_bond_bail", Label: "Req. Bond/Bail:"},
	{Name: "bond_group_number", Label: "Bond Group #:"},
	{Name: "required_bond_amount", Label: "Req. Bond Amt:"},
	{Name: "required_cash_amount", Label: "Req. Cash Amt:"},
	{Name: "bond_company_number", Label: "Bond Co. #:"},
}

// ChargeRecords extracts every charge group on the detail page, one
// record per "Violation:" cell.
func ChargeRecords(doc BookingDoc, bookingNumber, inmateID string) []scrape.Record {
	block, ok := doc.chargesBlock()
	if !ok {
		return nil
	}
	n := block.Count("Violation:")
	var records []scrape.Record
	for i := 0; i < n; i++ {
		fields := make([]extract.Field, len(chargeFields))
		copy(fields, chargeFields)
		for j := range fields {
			fields[j].Index = i
		}
		record := scrape.NewRecord()
		record.Set("booking_number", bookingNumber)
		record.Set("inmate_id", inmateID)
		extract.AppendFromBlock(&record, block, fields)
		records = append(records, record)
	}
	return records
}
