package scrape

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

type fakeRow []string

func (r fakeRow) Cell(i int) string {
	if i >= len(r) {
		return ""
	}
	return r[i]
}

type fakeResult struct {
	total Total
	pages [][]Row
}

// fakeSurface serves scripted results per criteria, like a cached
// fixture binding would.
type fakeSurface struct {
	results map[string]fakeResult

	current   fakeResult
	page      int
	submitted []string
	// submitFailures makes the first n Submit calls fail.
	submitFailures int
}

func (s *fakeSurface) Submit(ctx context.Context, criteria string) error {
	if s.submitFailures > 0 {
		s.submitFailures--
		return fmt.Errorf("not yet rendered")
	}
	res, ok := s.results[criteria]
	if !ok {
		res = fakeResult{}
	}
	s.current = res
	s.page = 0
	s.submitted = append(s.submitted, criteria)
	return nil
}

func (s *fakeSurface) Total(ctx context.Context) (Total, error) {
	return s.current.total, nil
}

func (s *fakeSurface) Rows(ctx context.Context, expect int) ([]Row, error) {
	if s.page >= len(s.current.pages) {
		return nil, nil
	}
	return s.current.pages[s.page], nil
}

func (s *fakeSurface) HasNextPage(ctx context.Context) (bool, error) {
	return s.page+1 < len(s.current.pages), nil
}

func (s *fakeSurface) AdvancePage(ctx context.Context) error {
	s.page++
	return nil
}

func extractAccount(row Row) (Record, error) {
	r := NewRecord()
	r.Set("account", row.Cell(0))
	return r, nil
}

func noSleep(t *testing.T) Retrier {
	return Retrier{Sleep: func(time.Duration) {}}
}

func rowsOf(accounts ...string) []Row {
	out := make([]Row, len(accounts))
	for i, a := range accounts {
		out[i] = fakeRow{a}
	}
	return out
}

func accounts(records []Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Get("account")
	}
	return out
}

func TestEnumerateLeaf(t *testing.T) {
	surface := &fakeSurface{results: map[string]fakeResult{
		"17": {total: Total{Count: 3}, pages: [][]Row{rowsOf("17a", "17b", "17c")}},
	}}
	e := &Enumerator{Surface: surface, Extract: extractAccount, Retry: noSleep(t)}

	records, err := e.Enumerate(context.Background(), "17")
	require.NoError(t, err)
	require.Equal(t, []string{"17a", "17b", "17c"}, accounts(records))
}

func TestEnumerateSubdividesAtCap(t *testing.T) {
	results := map[string]fakeResult{
		// exactly at cap still subdivides
		"4": {total: Total{Count: 100}},
	}
	var want []string
	for i := 0; i < 10; i++ {
		child := fmt.Sprintf("4%d", i)
		account := child + "x"
		results[child] = fakeResult{
			total: Total{Count: 1},
			pages: [][]Row{rowsOf(account)},
		}
		want = append(want, account)
	}
	surface := &fakeSurface{results: results}
	e := &Enumerator{Surface: surface, Extract: extractAccount, Retry: noSleep(t)}

	records, err := e.Enumerate(context.Background(), "4")
	require.NoError(t, err)

	// the parent's records are the in-order concatenation of every
	// child's records
	if diff := cmp.Diff(want, accounts(records)); diff != "" {
		t.Fatal(diff)
	}
	require.Equal(t, []string{
		"4", "40", "41", "42", "43", "44", "45", "46", "47", "48", "49",
	}, surface.submitted)
}

func TestEnumerateCappedSentinel(t *testing.T) {
	results := map[string]fakeResult{
		"9": {total: Total{Capped: true}},
	}
	for i := 0; i < 10; i++ {
		results[fmt.Sprintf("9%d", i)] = fakeResult{}
	}
	results["93"] = fakeResult{total: Total{Count: 2}, pages: [][]Row{rowsOf("93a", "93b")}}

	surface := &fakeSurface{results: results}
	e := &Enumerator{Surface: surface, Extract: extractAccount, Retry: noSleep(t)}

	records, err := e.Enumerate(context.Background(), "9")
	require.NoError(t, err)
	require.Equal(t, []string{"93a", "93b"}, accounts(records))
}

func TestEnumerateEmpty(t *testing.T) {
	surface := &fakeSurface{results: map[string]fakeResult{}}
	e := &Enumerator{Surface: surface, Extract: extractAccount, Retry: noSleep(t)}

	records, err := e.Enumerate(context.Background(), "555")
	require.NoError(t, err)
	require.Empty(t, records)
}

func TestEnumerateConsistencyError(t *testing.T) {
	surface := &fakeSurface{results: map[string]fakeResult{
		"2": {total: Total{Count: 3}, pages: [][]Row{rowsOf("2a", "2b")}},
	}}
	e := &Enumerator{Surface: surface, Extract: extractAccount, Retry: noSleep(t)}

	_, err := e.Enumerate(context.Background(), "2")
	var consistency *ConsistencyError
	require.ErrorAs(t, err, &consistency)
	require.Equal(t, 3, consistency.Reported)
	require.Equal(t, 2, consistency.Got)
}

func TestEnumerateMaxDepth(t *testing.T) {
	surface := &fakeSurface{results: map[string]fakeResult{
		"123": {total: Total{Capped: true}},
	}}
	e := &Enumerator{
		Surface:  surface,
		Extract:  extractAccount,
		Retry:    noSleep(t),
		MaxDepth: 3,
	}

	_, err := e.Enumerate(context.Background(), "123")
	var depth *DepthError
	require.ErrorAs(t, err, &depth)
}

func TestEnumerateRetriesTransientFailures(t *testing.T) {
	surface := &fakeSurface{
		results: map[string]fakeResult{
			"8": {total: Total{Count: 1}, pages: [][]Row{rowsOf("8a")}},
		},
		submitFailures: 2,
	}
	e := &Enumerator{Surface: surface, Extract: extractAccount, Retry: noSleep(t)}

	records, err := e.Enumerate(context.Background(), "8")
	require.NoError(t, err)
	require.Equal(t, []string{"8a"}, accounts(records))
}

func TestEnumerateRetryExhaustionPropagates(t *testing.T) {
	surface := &fakeSurface{
		results:        map[string]fakeResult{},
		submitFailures: 100,
	}
	e := &Enumerator{Surface: surface, Extract: extractAccount, Retry: noSleep(t)}

	_, err := e.Enumerate(context.Background(), "8")
	require.Error(t, err)
	require.Contains(t, err.Error(), "after 5 attempts")
}

func TestPaginate(t *testing.T) {
	surface := &fakeSurface{results: map[string]fakeResult{
		"smith": {
			total: Total{Count: 5},
			pages: [][]Row{
				rowsOf("s1", "s2"),
				rowsOf("s3", "s4"),
				rowsOf("s5"),
			},
		},
	}}
	e := &Enumerator{Surface: surface, Extract: extractAccount, Retry: noSleep(t)}

	records, err := e.Paginate(context.Background(), "smith")
	require.NoError(t, err)
	require.Equal(t, []string{"s1", "s2", "s3", "s4", "s5"}, accounts(records))
}

func TestPaginateMismatchIsNotFatal(t *testing.T) {
	surface := &fakeSurface{results: map[string]fakeResult{
		"smith": {
			total: Total{Count: 9},
			pages: [][]Row{rowsOf("s1", "s2")},
		},
	}}
	e := &Enumerator{Surface: surface, Extract: extractAccount, Retry: noSleep(t)}

	records, err := e.Paginate(context.Background(), "smith")
	require.NoError(t, err)
	require.Len(t, records, 2)
}

func TestExtractionErrorDegrades(t *testing.T) {
	surface := &fakeSurface{results: map[string]fakeResult{
		"6": {total: Total{Count: 2}, pages: [][]Row{rowsOf("6a", "6b")}},
	}}
	e := &Enumerator{
		Surface: surface,
		Extract: func(row Row) (Record, error) {
			r := NewRecord()
			r.Set("account", "")
			if row.Cell(0) == "6b" {
				return r, errors.New("layout mismatch")
			}
			r.Set("account", row.Cell(0))
			return r, nil
		},
		Retry: noSleep(t),
	}

	records, err := e.Enumerate(context.Background(), "6")
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, "6a", records[0].Get("account"))
	require.Equal(t, "", records[1].Get("account"))
}
