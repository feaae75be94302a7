package normalize

import "strings"

// CompactLines splits a multi-line address, drops every blank line and
// pads or truncates to n lines. Used for the 2-line situs blocks where
// blank lines carry no meaning.
func CompactLines(s string, n int) []string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return padLines(lines, n)
}

// TrimmedLines splits a multi-line address and drops only leading and
// trailing blank lines. Interior blanks survive because the 4-slot
// mailing blocks are positional: line 2 being empty means something.
func TrimmedLines(s string, n int) []string {
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}
	start := 0
	for start < len(lines) && lines[start] == "" {
		start++
	}
	end := len(lines)
	for end > start && lines[end-1] == "" {
		end--
	}
	return padLines(lines[start:end], n)
}

func padLines(lines []string, n int) []string {
	out := make([]string, n)
	copy(out, lines)
	return out
}
