// Package inmate scrapes the county jail booking viewer. The viewer
// serves plain server-rendered pages, so a cookie-jarred HTTP client
// is enough; no browser is involved.
package inmate

import (
	"context"
	"fmt"
	"net/http/cookiejar"
	"strings"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"

	"lanecollect/lib/normalize"
	"lanecollect/lib/telemetry"
)

var tracer = otel.Tracer("lib/scrapers/inmate")

const DefaultBaseURL = "http://inmateinformation.lanecounty.org"

const detailPath = "/Home/BookingSearchDetail"

// Filter narrows a booking search. Names are SQL-wildcarded by the
// site; "%" matches everyone.
type Filter struct {
	LastName         string
	FirstName        string
	BookingBeginDate string
	BookingEndDate   string
}

// EmptyFilter matches every booking on record.
var EmptyFilter = Filter{LastName: "%", FirstName: "%"}

type Client struct {
	http *resty.Client
}

func NewClient(baseURL string) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	client := resty.New()
	client.SetBaseURL(baseURL)
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	client.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	client.SetTimeout(time.Second * 30)

	telemetry.InstrumentResty(client, "scrapers/inmate/http")

	return &Client{http: client}, nil
}

func (c *Client) getDoc(ctx context.Context, url string, params map[string]string) (*goquery.Document, error) {
	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get(url)
	if err != nil {
		return nil, err
	}
	if res.StatusCode() >= 400 {
		return nil, fmt.Errorf("GET %s: status %d", url, res.StatusCode())
	}
	return goquery.NewDocumentFromReader(strings.NewReader(res.String()))
}

// AccessSite passes the viewer's entry page, which gates the search
// behind an "Access Site" link that sets the session cookie.
func (c *Client) AccessSite(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "client:AccessSite")
	defer span.End()

	doc, err := c.getDoc(ctx, "/", nil)
	if err != nil {
		return fmt.Errorf("entry page: %w", err)
	}
	var href string
	doc.Find("a").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		if strings.Contains(normalize.Collapse(a.Text()), "Access Site") {
			href, _ = a.Attr("href")
			return false
		}
		return true
	})
	if href == "" {
		return fmt.Errorf("no Access Site link on entry page")
	}
	if _, err := c.getDoc(ctx, href, nil); err != nil {
		return fmt.Errorf("access site: %w", err)
	}
	return nil
}

// Search submits the booking query form and returns the first result
// page.
func (c *Client) Search(ctx context.Context, filter Filter) (*goquery.Document, error) {
	ctx, span := tracer.Start(ctx, "client:Search")
	defer span.End()

	params := map[string]string{
		"LastName":  filter.LastName,
		"FirstName": filter.FirstName,
	}
	if filter.BookingBeginDate != "" {
		params["BookingBeginDate"] = filter.BookingBeginDate
	}
	if filter.BookingEndDate != "" {
		params["BookingEndDate"] = filter.BookingEndDate
	}
	return c.getDoc(ctx, "/Home/BookingSearchResult", params)
}

// Page follows a pager link from a result page.
func (c *Client) Page(ctx context.Context, href string) (*goquery.Document, error) {
	return c.getDoc(ctx, href, nil)
}

// BookingDetail fetches one booking's detail page.
func (c *Client) BookingDetail(ctx context.Context, bookingNumber string) (BookingDoc, error) {
	ctx, span := tracer.Start(ctx, "client:BookingDetail")
	defer span.End()

	doc, err := c.getDoc(ctx, detailPath, map[string]string{
		"BookingNumber": bookingNumber,
	})
	if err != nil {
		return BookingDoc{}, fmt.Errorf("booking %s: %w", bookingNumber, err)
	}
	return NewBookingDoc(doc), nil
}
