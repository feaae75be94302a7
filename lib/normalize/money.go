package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Money is a dollar amount held as cents, so amounts like $0.10 never
// pick up binary float noise.
type Money int64

var parenRegex = regexp.MustCompile(`^\(\s*(-?\$?[0-9,.]+)\s*\)$`)

// ParseMoney reads amounts the assessment site renders: a leading "$",
// comma separators, and negatives written as "($12.01)".
func ParseMoney(s string) (Money, error) {
	cleaned := strings.TrimSpace(s)
	sign := int64(1)

	if m := parenRegex.FindStringSubmatch(cleaned); m != nil {
		cleaned = m[1]
		sign = -1
	}
	cleaned = strings.TrimSpace(cleaned)
	cleaned = strings.TrimPrefix(cleaned, "$")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	if cleaned == "" {
		return 0, fmt.Errorf("empty money amount %q", s)
	}
	if strings.HasPrefix(cleaned, "-") {
		sign *= -1
		cleaned = cleaned[1:]
	}

	whole := cleaned
	frac := "00"
	if i := strings.IndexByte(cleaned, '.'); i >= 0 {
		whole = cleaned[:i]
		frac = cleaned[i+1:]
	}
	if whole == "" {
		whole = "0"
	}
	// quantize to two fraction digits
	switch {
	case len(frac) == 0:
		frac = "00"
	case len(frac) == 1:
		frac += "0"
	case len(frac) > 2:
		frac = frac[:2]
	}

	dollars, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("bad money amount %q: %w", s, err)
	}
	cents, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("bad money amount %q: %w", s, err)
	}

	return Money(sign * (dollars*100 + cents)), nil
}

// String renders with exactly two fraction digits, e.g. "1234.50" and
// "-12.01".
func (m Money) String() string {
	cents := int64(m)
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

// CleanMoney is the Field cleaner form of ParseMoney: unparseable text
// becomes an empty value instead of failing the record.
func CleanMoney(s string) string {
	m, err := ParseMoney(s)
	if err != nil {
		return ""
	}
	return m.String()
}
