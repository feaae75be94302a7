package normalize

import (
	"regexp"
	"strings"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// Collapse replaces every run of whitespace with a single space and
// trims the ends.
func Collapse(s string) string {
	return whitespaceRegex.ReplaceAllString(strings.TrimSpace(s), " ")
}

// StripMore removes the trailing "More..." marker that the county site
// appends to truncated fields. The overflow behind the link is never
// fetched.
func StripMore(s string) string {
	return strings.TrimSpace(strings.TrimSuffix(Collapse(s), "More..."))
}
