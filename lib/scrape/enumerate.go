package scrape

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("lib/scrape")

const (
	DefaultCap      = 100
	DefaultAlphabet = "0123456789"
)

// Enumerator collects the complete record set matching a query even
// though the surface only ever discloses Cap rows per search. Two
// strategies are provided: Enumerate subdivides prefixes over a
// bounded alphabet, Paginate walks an open result set page by page.
type Enumerator struct {
	Surface Surface
	// Extract maps a raw row to a record. An error degrades that row
	// to whatever partial record was returned; it never aborts the
	// enumeration.
	Extract func(Row) (Record, error)
	// Cap is the row threshold C at which the surface stops reporting
	// exact totals. Defaults to DefaultCap.
	Cap int
	// Alphabet holds the symbols appended when a prefix must be
	// subdivided. Defaults to DefaultAlphabet.
	Alphabet string
	// MaxDepth bounds the prefix length during subdivision.
	MaxDepth int
	Retry    Retrier
}

func (e *Enumerator) cap() int {
	if e.Cap <= 0 {
		return DefaultCap
	}
	return e.Cap
}

func (e *Enumerator) alphabet() string {
	if e.Alphabet == "" {
		return DefaultAlphabet
	}
	return e.Alphabet
}

// Enumerate returns every record under prefix, subdividing whenever
// the reported total is at or above the cap. A report of exactly the
// cap still subdivides: the surface does not reliably distinguish
// "exactly C" from "C or more", so one redundant layer beats missing
// rows.
func (e *Enumerator) Enumerate(ctx context.Context, prefix string) ([]Record, error) {
	ctx, span := tracer.Start(ctx, "Enumerate")
	span.SetAttributes(attribute.String("prefix", prefix))
	defer span.End()

	err := e.Retry.Do(ctx, fmt.Sprintf("submit %q", prefix), func() error {
		return e.Surface.Submit(ctx, prefix)
	})
	if err != nil {
		span.SetStatus(codes.Error, "submit failed")
		return nil, err
	}

	var total Total
	err = e.Retry.Do(ctx, fmt.Sprintf("read total for %q", prefix), func() error {
		var err error
		total, err = e.Surface.Total(ctx)
		return err
	})
	if err != nil {
		span.SetStatus(codes.Error, "read total failed")
		return nil, err
	}

	if !total.Capped && total.Count == 0 {
		slog.InfoContext(ctx, "no items found", "prefix", prefix)
		return nil, nil
	}

	if total.Capped || total.Count >= e.cap() {
		if e.MaxDepth > 0 && len(prefix) >= e.MaxDepth {
			span.SetStatus(codes.Error, "capped at maximum depth")
			return nil, &DepthError{Criteria: prefix}
		}
		slog.InfoContext(ctx, "at or above cap, subdividing", "prefix", prefix)
		var records []Record
		for _, symbol := range e.alphabet() {
			sub, err := e.Enumerate(ctx, prefix+string(symbol))
			if err != nil {
				return nil, err
			}
			records = append(records, sub...)
		}
		return records, nil
	}

	slog.InfoContext(ctx, "items found", "prefix", prefix, "total", total.Count)
	records, err := e.drain(ctx, prefix, total.Count)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return records, nil
}

// drain reads a leaf result set and refuses to return rows it cannot
// verify as complete.
func (e *Enumerator) drain(ctx context.Context, criteria string, reported int) ([]Record, error) {
	var rows []Row
	err := e.Retry.Do(ctx, fmt.Sprintf("read %d rows for %q", reported, criteria), func() error {
		var err error
		rows, err = e.Surface.Rows(ctx, reported)
		return err
	})
	if err != nil {
		return nil, err
	}
	if len(rows) != reported {
		return nil, &ConsistencyError{
			Criteria: criteria,
			Reported: reported,
			Got:      len(rows),
		}
	}
	return e.extractAll(ctx, rows), nil
}

// Paginate submits criteria once and walks every result page. There
// is no recursive re-verification path here, so a count mismatch is
// logged rather than fatal.
func (e *Enumerator) Paginate(ctx context.Context, criteria string) ([]Record, error) {
	ctx, span := tracer.Start(ctx, "Paginate")
	span.SetAttributes(attribute.String("criteria", criteria))
	defer span.End()

	err := e.Retry.Do(ctx, fmt.Sprintf("submit %q", criteria), func() error {
		return e.Surface.Submit(ctx, criteria)
	})
	if err != nil {
		span.SetStatus(codes.Error, "submit failed")
		return nil, err
	}

	var total Total
	err = e.Retry.Do(ctx, fmt.Sprintf("read total for %q", criteria), func() error {
		var err error
		total, err = e.Surface.Total(ctx)
		return err
	})
	if err != nil {
		span.SetStatus(codes.Error, "read total failed")
		return nil, err
	}

	var records []Record
	for {
		var rows []Row
		err := e.Retry.Do(ctx, fmt.Sprintf("read page for %q", criteria), func() error {
			var err error
			rows, err = e.Surface.Rows(ctx, -1)
			return err
		})
		if err != nil {
			return nil, err
		}
		records = append(records, e.extractAll(ctx, rows)...)

		next, err := e.Surface.HasNextPage(ctx)
		if err != nil {
			return nil, err
		}
		if !next {
			break
		}
		err = e.Retry.Do(ctx, fmt.Sprintf("advance page for %q", criteria), func() error {
			return e.Surface.AdvancePage(ctx)
		})
		if err != nil {
			return nil, err
		}
	}

	if !total.Capped && len(records) != total.Count {
		slog.ErrorContext(ctx, "paginated count mismatch",
			"criteria", criteria,
			"reported", total.Count,
			"scraped", len(records))
	}
	return records, nil
}

func (e *Enumerator) extractAll(ctx context.Context, rows []Row) []Record {
	records := make([]Record, 0, len(rows))
	for i, row := range rows {
		record, err := e.Extract(row)
		if err != nil {
			slog.WarnContext(ctx, "row extraction degraded",
				"row", i, "err", err)
		}
		records = append(records, record)
	}
	return records
}
