package inmate

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/codes"

	"lanecollect/lib/scrape"
)

// Result is a complete booking collection laid out for the sink.
type Result struct {
	Bookings []scrape.Record
	Custody  []scrape.Record
	Charges  []scrape.Record
}

// Batch mirrors the sink layout: one named file per record shape.
type Batch struct {
	Name    string
	Records []scrape.Record
}

func (r Result) Batches() []Batch {
	return []Batch{
		{"bookings", r.Bookings},
		{"custody", r.Custody},
		{"charges", r.Charges},
	}
}

// Collector walks the booking search and pulls every booking's detail
// page.
type Collector struct {
	Client *Client
	Retry  scrape.Retrier
}

// ScrapeAll pages through the filtered search results and scrapes
// each booking found. A booking whose detail page keeps failing
// aborts the run.
func (c Collector) ScrapeAll(ctx context.Context, filter Filter) (Result, error) {
	ctx, span := tracer.Start(ctx, "ScrapeAll")
	defer span.End()

	enum := scrape.Enumerator{
		Surface: NewResultSurface(c.Client, filter),
		Extract: ResultRecord,
		Retry:   c.Retry,
	}
	summaries, err := enum.Paginate(ctx, filter.LastName)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Result{}, err
	}

	var result Result
	for _, summary := range summaries {
		booking, err := c.ScrapeBooking(ctx, summary)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return Result{}, err
		}
		result.Bookings = append(result.Bookings, booking.Bookings...)
		result.Custody = append(result.Custody, booking.Custody...)
		result.Charges = append(result.Charges, booking.Charges...)
	}
	return result, nil
}

// ScrapeBooking fetches and extracts one booking's detail page,
// retrying the whole page on failure.
func (c Collector) ScrapeBooking(ctx context.Context, summary scrape.Record) (Result, error) {
	number := summary.Get("booking_number")

	var result Result
	err := c.Retry.Do(ctx, "booking "+number, func() error {
		doc, err := c.Client.BookingDetail(ctx, number)
		if err != nil {
			return err
		}

		confirmed := doc.Field("Booking Number:")
		if confirmed != number {
			return fmt.Errorf("detail page reports booking %q, wanted %q", confirmed, number)
		}
		inmateID := doc.Field("Inmate ID:")

		expected, err := doc.ChargeCount()
		if err != nil {
			return err
		}
		charges := ChargeRecords(doc, number, inmateID)
		if len(charges) != expected {
			slog.ErrorContext(ctx, "charge count mismatch",
				"booking", number,
				"reported", expected,
				"scraped", len(charges))
		}
		slog.InfoContext(ctx, "scraped booking",
			"booking", number, "charges", expected)

		result = Result{
			Bookings: []scrape.Record{BookingRecord(doc, summary, number, inmateID, expected)},
			Custody:  []scrape.Record{CustodyRecord(doc, number, inmateID)},
			Charges:  charges,
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}
	return result, nil
}
