package inmate

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"lanecollect/lib/extract"
	"lanecollect/lib/normalize"
	"lanecollect/lib/scrape"
	"lanecollect/lib/scrapers/dom"
)

// ResultSurface walks the booking search results as a paginated
// surface. The filter's name and date bounds are fixed up front;
// Submit's criteria overrides the last name when non-empty.
type ResultSurface struct {
	client   *Client
	filter   Filter
	doc      *goquery.Document
	accessed bool
}

func NewResultSurface(client *Client, filter Filter) *ResultSurface {
	return &ResultSurface{client: client, filter: filter}
}

func (s *ResultSurface) Submit(ctx context.Context, criteria string) error {
	if !s.accessed {
		if err := s.client.AccessSite(ctx); err != nil {
			return err
		}
		s.accessed = true
	}
	filter := s.filter
	if criteria != "" {
		filter.LastName = criteria
	}
	doc, err := s.client.Search(ctx, filter)
	if err != nil {
		return err
	}
	s.doc = doc
	return nil
}

const candidatesLabel = "Total Candidates:"

func (s *ResultSurface) Total(ctx context.Context) (scrape.Total, error) {
	if s.doc == nil {
		return scrape.Total{}, errors.New("no search submitted")
	}
	el := dom.TextElements(s.doc.Selection, candidatesLabel).First()
	if el.Length() == 0 {
		return scrape.Total{}, errors.New("no candidate count on result page")
	}
	text := strings.TrimSpace(strings.TrimPrefix(normalize.Collapse(el.Text()), candidatesLabel))
	n, err := strconv.Atoi(text)
	if err != nil {
		return scrape.Total{}, fmt.Errorf("candidate count %q: %w", text, err)
	}
	return scrape.Total{Count: n}, nil
}

func (s *ResultSurface) Rows(ctx context.Context, expect int) ([]scrape.Row, error) {
	if s.doc == nil {
		return nil, errors.New("no search submitted")
	}
	return dom.Rows(s.doc.Find("tbody").First()), nil
}

// nextLink returns the pager's ">" link, if the footer has one.
func (s *ResultSurface) nextLink() string {
	var href string
	s.doc.Find("tfoot a").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		if normalize.Collapse(a.Text()) == ">" {
			href, _ = a.Attr("href")
			return false
		}
		return true
	})
	return href
}

func (s *ResultSurface) HasNextPage(ctx context.Context) (bool, error) {
	if s.doc == nil {
		return false, errors.New("no search submitted")
	}
	return s.nextLink() != "", nil
}

func (s *ResultSurface) AdvancePage(ctx context.Context) error {
	href := s.nextLink()
	if href == "" {
		return errors.New("no next page")
	}
	doc, err := s.client.Page(ctx, href)
	if err != nil {
		return err
	}
	s.doc = doc
	return nil
}

// resultCells is the column layout of the results table. Column 0 is
// the detail link.
var resultCells = []extract.Cell{
	{Name: "booking_number", Index: 1},
	{Name: "first_name", Index: 2},
	{Name: "last_name", Index: 3},
	{Name: "middle_name", Index: 4},
}

// ResultRecord maps one search-result row to a booking summary.
func ResultRecord(row scrape.Row) (scrape.Record, error) {
	return extract.FromRow(row, resultCells), nil
}
