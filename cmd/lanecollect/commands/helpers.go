package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
)

// readLines loads the non-empty, trimmed lines of a roots file.
func readLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var lines []string
	for _, line := range strings.Split(string(data), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, nil
}

// resolveRoots merges positional roots with a roots file.
func resolveRoots(args []string, readFile string) ([]string, error) {
	roots := append([]string{}, args...)
	if readFile != "" {
		lines, err := readLines(readFile)
		if err != nil {
			return nil, err
		}
		roots = append(roots, lines...)
	}
	if len(roots) == 0 {
		return nil, fmt.Errorf("no roots given; pass them as arguments or via --read-file")
	}
	return roots, nil
}

func newTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(os.Stdout)
	return t
}

func printRoots(header string, roots []string) {
	t := newTable()
	t.AppendHeader(table.Row{header})
	for _, root := range roots {
		t.AppendRow(table.Row{root})
	}
	t.Render()
}
