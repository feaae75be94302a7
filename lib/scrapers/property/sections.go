// Package property scrapes the Lane County property account search
// and the assessment & taxation report pages behind it.
package property

import "fmt"

// Sixteenths expands a 6-digit land section into its sixteen
// sixteenth-sections, the granularity the taxlot search enumerates
// at.
func Sixteenths(section int) []int {
	var out []int
	for m := 1; m <= 4; m++ {
		for n := 1; n <= 4; n++ {
			out = append(out, section*100+m*10+n)
		}
	}
	return out
}

// SixteenthPrefixes expands every section into enumeration root
// prefixes.
func SixteenthPrefixes(sections []int) []string {
	var out []string
	for _, section := range sections {
		for _, sixteenth := range Sixteenths(section) {
			out = append(out, fmt.Sprintf("%d", sixteenth))
		}
	}
	return out
}
