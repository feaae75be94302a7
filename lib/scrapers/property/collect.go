package property

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"

	"lanecollect/lib/scrape"
)

var tracer = otel.Tracer("lib/scrapers/property")

// AccountSite navigates the account search site. Implementations own
// a live browser page; OpenReport continues from wherever OpenAccount
// left it.
type AccountSite interface {
	OpenAccount(ctx context.Context, account string) (AccountDoc, error)
	OpenReport(ctx context.Context) (ReportDoc, error)
}

// Batch is one named group of records bound for its own sink file.
type Batch struct {
	Name    string
	Records []scrape.Record
}

// AccountResult is everything one account scrape produces.
type AccountResult struct {
	Info        []scrape.Record
	Receipts    []scrape.Record
	Assessments []scrape.Record
	Owners      []scrape.Record
	Residential []scrape.Record
	Commercial  []scrape.Record
	LotAccounts []scrape.Record
}

// Batches lays the result out for the sink, one file per record
// shape.
func (r AccountResult) Batches() []Batch {
	return []Batch{
		{"account_lot_payer_owner", r.Info},
		{"receipts", r.Receipts},
		{"assessments", r.Assessments},
		{"owners", r.Owners},
		{"residential_buildings", r.Residential},
		{"commercial_improvements", r.Commercial},
		{"taxlot_accounts", r.LotAccounts},
	}
}

// ScrapeAccount collects one account's detail page and its owner
// report. The whole account restarts on failure; partial progress is
// discarded.
func ScrapeAccount(ctx context.Context, site AccountSite, account string, retry scrape.Retrier) (AccountResult, error) {
	ctx, span := tracer.Start(ctx, "ScrapeAccount")
	defer span.End()

	var result AccountResult
	err := retry.Do(ctx, "account "+account, func() error {
		var err error
		result, err = scrapeAccount(ctx, site, account)
		return err
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return AccountResult{}, err
	}
	return result, nil
}

func scrapeAccount(ctx context.Context, site AccountSite, account string) (AccountResult, error) {
	slog.InfoContext(ctx, "scraping account", "account", account)
	var result AccountResult

	doc, err := site.OpenAccount(ctx, account)
	if err != nil {
		return result, err
	}

	info, err := doc.InfoBlock()
	if err != nil {
		return result, err
	}
	result.Info = []scrape.Record{AccountRecord(info)}

	receipts, any, err := doc.Receipts()
	if err != nil {
		return result, err
	}
	if !any {
		slog.InfoContext(ctx, "no receipts", "account", account)
	}
	result.Receipts = ReceiptRecords(account, receipts)

	years, rows, err := doc.Assessments()
	if err != nil {
		return result, err
	}
	result.Assessments = AssessmentRecords(account, years, rows)
	if len(result.Assessments) == 0 {
		slog.WarnContext(ctx, "no assessments", "account", account)
	}

	report, err := site.OpenReport(ctx)
	if err != nil {
		return result, err
	}
	ok, err := report.HasReport()
	if err != nil {
		return result, err
	}
	if !ok {
		slog.WarnContext(ctx, "no owner report", "account", account)
		return result, nil
	}

	taxlot := report.Taxlot()
	accounts := append([]string{account}, report.AdditionalAccounts()...)
	result.LotAccounts = TaxlotAccountRecords(accounts, taxlot)
	result.Owners = OwnerRecords(account, report.AccountType(), report.OwnerRows())
	if building, found := report.BuildingRecord(taxlot); found {
		result.Residential = []scrape.Record{building}
	}
	result.Commercial = report.CommercialRecords(taxlot)

	slog.InfoContext(ctx, "scraped account", "account", account)
	return result, nil
}
