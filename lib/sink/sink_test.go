package sink

import (
	"os"
	"path/filepath"
	"testing"

	"lanecollect/lib/scrape"

	"github.com/stretchr/testify/require"
)

func record(pairs ...string) scrape.Record {
	r := scrape.NewRecord()
	for i := 0; i+1 < len(pairs); i += 2 {
		r.Set(pairs[i], pairs[i+1])
	}
	return r
}

func TestAppendWritesHeaderOnce(t *testing.T) {
	dir := t.TempDir()
	w := Writer{Dest: dir}

	batchA := []scrape.Record{
		record("account", "0259901", "amount", "12.50"),
		record("account", "0259902", "amount", "-3.00"),
	}
	batchB := []scrape.Record{
		record("account", "0259903", "amount", "0.00"),
	}

	require.NoError(t, w.Append("receipts.csv", batchA))
	require.NoError(t, w.Append("receipts.csv", batchB))

	contents, err := os.ReadFile(filepath.Join(dir, "receipts.csv"))
	require.NoError(t, err)
	require.Equal(t,
		"account,amount\n"+
			"0259901,12.50\n"+
			"0259902,-3.00\n"+
			"0259903,0.00\n",
		string(contents),
	)
}

func TestAppendEmptyBatch(t *testing.T) {
	dir := t.TempDir()
	w := Writer{Dest: dir}

	require.NoError(t, w.Append("empty.csv", nil))
	_, err := os.Stat(filepath.Join(dir, "empty.csv"))
	require.True(t, os.IsNotExist(err))
}

func TestAppendCreatesDestination(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	w := Writer{Dest: dir}

	require.NoError(t, w.Append("owners.csv", []scrape.Record{
		record("owner", "DOE JOHN"),
	}))

	contents, err := os.ReadFile(filepath.Join(dir, "owners.csv"))
	require.NoError(t, err)
	require.Equal(t, "owner\nDOE JOHN\n", string(contents))
}

func TestAppendQuotesEmbeddedCommas(t *testing.T) {
	dir := t.TempDir()
	w := Writer{Dest: dir}

	require.NoError(t, w.Append("owners.csv", []scrape.Record{
		record("owner", "DOE, JOHN"),
	}))

	contents, err := os.ReadFile(filepath.Join(dir, "owners.csv"))
	require.NoError(t, err)
	require.Equal(t, "owner\n\"DOE, JOHN\"\n", string(contents))
}
