// Package scrape holds the enumeration core: the query surface
// contract, the backoff retrier and the bounded enumeration that
// collects every record behind a row-capped search interface.
package scrape

import "context"

// Total is the row count a surface reports for the submitted criteria.
// Capped means the surface refuses to disclose the exact count beyond
// its cap.
type Total struct {
	Count  int
	Capped bool
}

// Row is one result line, addressable only by column position.
type Row interface {
	Cell(i int) string
}

// Selector picks a text fragment out of a labeled block. Exclude
// drops fragments whose label text also matches it ("Year Built" vs
// "Effective Year Built"). Index selects among repeated fragments for
// the same label; negative means last.
type Selector struct {
	Label   string
	Exclude string
	Index   int
}

// Last is the Selector.Index value meaning "take the final match".
const Last = -1

// Block is a collection of labeled text fragments, e.g. a detail table.
// A lookup that matches nothing returns "".
type Block interface {
	Lookup(sel Selector) string
}

// Surface is a single search session against the external query
// interface. Implementations decide how criteria are physically
// submitted (HTTP, rendered browser page, cached fixture); the core
// only relies on this contract.
//
// A Surface holds one result set at a time: Submit replaces it, Rows
// and Total read it, AdvancePage moves within it.
type Surface interface {
	Submit(ctx context.Context, criteria string) error
	Total(ctx context.Context) (Total, error)
	// Rows returns the rows of the current page. expect is the count
	// the caller believes is present, letting bindings wait for a
	// fully rendered result; pass a negative value when unknown.
	Rows(ctx context.Context, expect int) ([]Row, error)
	HasNextPage(ctx context.Context) (bool, error)
	AdvancePage(ctx context.Context) error
}
