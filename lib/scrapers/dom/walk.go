package dom

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"lanecollect/lib/htmlutil"
)

// TextElements returns the innermost elements under root whose text
// contains marker, in document order. Innermost matters: every
// ancestor of a matching element matches too.
func TextElements(root *goquery.Selection, marker string) *goquery.Selection {
	contains := func(_ int, s *goquery.Selection) bool {
		return strings.Contains(htmlutil.CleanText(s), marker)
	}
	return root.Find("*").FilterFunction(func(i int, s *goquery.Selection) bool {
		return contains(i, s) && s.Find("*").FilterFunction(contains).Length() == 0
	})
}

// After returns the elements under root matching match that come
// after ref in document order. The pages lean on visual adjacency
// rather than containment, so "the first table below this heading"
// needs an ordered walk, not a child lookup.
func After(root, ref *goquery.Selection, match string) *goquery.Selection {
	if ref.Length() == 0 {
		return ref
	}
	order := make(map[*html.Node]int)
	root.Find("*").Each(func(i int, s *goquery.Selection) {
		order[s.Get(0)] = i
	})
	refAt := order[ref.Get(0)]
	return root.Find(match).FilterFunction(func(_ int, s *goquery.Selection) bool {
		at, ok := order[s.Get(0)]
		return ok && at > refAt
	})
}

// Following combines TextElements and After: elements matching match
// that come after the first occurrence of marker.
func Following(root *goquery.Selection, marker, match string) (*goquery.Selection, bool) {
	out := After(root, TextElements(root, marker).First(), match)
	return out, out.Length() > 0
}
