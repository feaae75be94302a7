package htmlutil

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func TestCleanText(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(
		`<div>  Tax   Payer:
	<b>DOE</b> JOHN </div>`))
	require.NoError(t, err)

	require.Equal(t, "Tax Payer: DOE JOHN", CleanText(doc.Find("div")))
	require.Equal(t, "", CleanText(doc.Find("table")))
}
