package property

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"lanecollect/lib/normalize"
	"lanecollect/lib/scrape"
	"lanecollect/lib/scrapers/dom"
)

const searchURL = "https://apps.lanecounty.org/PropertyAccountInformation/"

// The results grid truncates at 100 rows no matter how many match.
const gridCap = 100

// Browser owns a chromium instance for the script-rendered search
// site.
type Browser struct {
	browser *rod.Browser
	launch  *launcher.Launcher
}

func Launch(ctx context.Context, headless bool) (*Browser, error) {
	l := launcher.New().Headless(headless)
	url, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch chromium: %w", err)
	}
	browser := rod.New().ControlURL(url).Context(ctx)
	if err := browser.Connect(); err != nil {
		l.Cleanup()
		return nil, fmt.Errorf("connect to chromium: %w", err)
	}
	return &Browser{browser: browser, launch: l}, nil
}

func (b *Browser) Close() error {
	err := b.browser.Close()
	b.launch.Cleanup()
	return err
}

func snapshot(page *rod.Page) (*goquery.Document, error) {
	html, err := page.HTML()
	if err != nil {
		return nil, fmt.Errorf("page snapshot: %w", err)
	}
	return goquery.NewDocumentFromReader(strings.NewReader(html))
}

func click(el *rod.Element) error {
	return el.Click(proto.InputMouseButtonLeft, 1)
}

// GridSurface drives the search results grid as an enumerable
// surface. One search is live at a time; Submit replaces it.
type GridSurface struct {
	page *rod.Page
}

// OpenGrid opens the search page and picks the search-by mode from
// its dropdown, e.g. "Map and Taxlot Number".
func (b *Browser) OpenGrid(ctx context.Context, searchBy string) (*GridSurface, error) {
	page, err := b.browser.Page(proto.TargetCreateTarget{URL: searchURL})
	if err != nil {
		return nil, fmt.Errorf("open search page: %w", err)
	}
	page = page.Context(ctx)
	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("load search page: %w", err)
	}

	menu, err := page.ElementR("button", "Search by Account Number")
	if err != nil {
		return nil, fmt.Errorf("search-by menu: %w", err)
	}
	if err := click(menu); err != nil {
		return nil, err
	}
	item, err := page.ElementR(`[role="menuitem"]`, searchBy)
	if err != nil {
		return nil, fmt.Errorf("search-by item %q: %w", searchBy, err)
	}
	if err := click(item); err != nil {
		return nil, err
	}
	return &GridSurface{page: page}, nil
}

func (s *GridSurface) Close() error {
	return s.page.Close()
}

func (s *GridSurface) Submit(ctx context.Context, criteria string) error {
	input, err := s.page.Element(`input[placeholder^="Enter partial"]`)
	if err != nil {
		return fmt.Errorf("search input: %w", err)
	}
	if err := input.SelectAllText(); err != nil {
		return err
	}
	if err := input.Input(criteria); err != nil {
		return err
	}
	button, err := s.page.ElementR("button", "Save Search")
	if err != nil {
		return fmt.Errorf("search button: %w", err)
	}
	if err := click(button); err != nil {
		return err
	}
	if err := s.page.WaitStable(time.Second); err != nil {
		return err
	}
	return s.showAllRows()
}

// showAllRows widens the grid's page size so every match is in one
// page.
func (s *GridSurface) showAllRows() error {
	sizer, err := s.page.Element(`[aria-label="select"] span`)
	if err != nil {
		return fmt.Errorf("page size selector: %w", err)
	}
	if err := click(sizer); err != nil {
		return err
	}
	option, err := s.page.ElementR(`[role="option"]`, "All")
	if err != nil {
		return fmt.Errorf("page size option: %w", err)
	}
	if err := click(option); err != nil {
		return err
	}
	return s.page.WaitStable(time.Second)
}

var itemsRegex = regexp.MustCompile(` of ([1-9][0-9]*) items`)

func (s *GridSurface) Total(ctx context.Context) (scrape.Total, error) {
	pager, err := s.pagerText()
	if err != nil {
		return scrape.Total{}, err
	}
	if strings.HasSuffix(pager, "No items to display") {
		return scrape.Total{}, nil
	}
	m := itemsRegex.FindStringSubmatch(pager)
	if m == nil {
		return scrape.Total{}, fmt.Errorf("unrecognized pager text: %q", pager)
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return scrape.Total{}, err
	}
	return scrape.Total{Count: n, Capped: n >= gridCap}, nil
}

// pagerText reads the grid pager's summary, e.g. "1 - 57 of 57
// items". The pager is the div holding the last-page button.
func (s *GridSurface) pagerText() (string, error) {
	doc, err := snapshot(s.page)
	if err != nil {
		return "", err
	}
	last := doc.Find(`[aria-label="Go to the last page"]`)
	if last.Length() == 0 {
		return "", errors.New("pager not found")
	}
	wrap := last.Last().ParentsFiltered("div").First()
	return normalize.Collapse(wrap.Find("span").Last().Text()), nil
}

func (s *GridSurface) Rows(ctx context.Context, expect int) ([]scrape.Row, error) {
	doc, err := snapshot(s.page)
	if err != nil {
		return nil, err
	}
	return dom.Rows(doc.Find("tbody")), nil
}

// The grid never pages once every row is shown.
func (s *GridSurface) HasNextPage(ctx context.Context) (bool, error) {
	return false, nil
}

func (s *GridSurface) AdvancePage(ctx context.Context) error {
	return errors.New("grid shows a single page")
}

// Site drives the account detail flow, one account at a time.
type Site struct {
	browser *rod.Browser
	page    *rod.Page
}

func (b *Browser) Site() *Site {
	return &Site{browser: b.browser}
}

func (s *Site) Close() error {
	if s.page == nil {
		return nil
	}
	return s.page.Close()
}

func (s *Site) OpenAccount(ctx context.Context, account string) (AccountDoc, error) {
	if s.page != nil {
		_ = s.page.Close()
		s.page = nil
	}
	page, err := s.browser.Page(proto.TargetCreateTarget{URL: searchURL})
	if err != nil {
		return AccountDoc{}, fmt.Errorf("open search page: %w", err)
	}
	page = page.Context(ctx)
	s.page = page
	if err := page.WaitLoad(); err != nil {
		return AccountDoc{}, fmt.Errorf("load search page: %w", err)
	}

	input, err := page.Element(`input[placeholder^="Enter partial account"]`)
	if err != nil {
		return AccountDoc{}, fmt.Errorf("account input: %w", err)
	}
	if err := input.Input(account); err != nil {
		return AccountDoc{}, err
	}
	button, err := page.ElementR("button", "Save Search")
	if err != nil {
		return AccountDoc{}, fmt.Errorf("search button: %w", err)
	}
	if err := click(button); err != nil {
		return AccountDoc{}, err
	}

	link, err := page.ElementR("a", account)
	if err != nil {
		return AccountDoc{}, fmt.Errorf("account link %s: %w", account, err)
	}
	if err := click(link); err != nil {
		return AccountDoc{}, err
	}
	if err := page.WaitLoad(); err != nil {
		return AccountDoc{}, err
	}
	if err := page.WaitStable(time.Second); err != nil {
		return AccountDoc{}, err
	}

	doc, err := snapshot(page)
	if err != nil {
		return AccountDoc{}, err
	}
	return NewAccountDoc(doc), nil
}

// OpenReport continues from the account page into the owner report.
func (s *Site) OpenReport(ctx context.Context) (ReportDoc, error) {
	if s.page == nil {
		return ReportDoc{}, errors.New("no account open")
	}
	button, err := s.page.ElementR("button", "View Owners")
	if err != nil {
		return ReportDoc{}, fmt.Errorf("view owners button: %w", err)
	}
	if err := click(button); err != nil {
		return ReportDoc{}, err
	}
	if err := s.page.WaitLoad(); err != nil {
		return ReportDoc{}, err
	}
	doc, err := snapshot(s.page)
	if err != nil {
		return ReportDoc{}, err
	}
	return NewReportDoc(doc), nil
}
