package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"lanecollect/lib/scrape"
	"lanecollect/lib/scrapers/property"
	"lanecollect/lib/sink"
)

var (
	propertyReadFile string
	propertyHeadless bool
	propertyMaxDepth int
)

func init() {
	propertyCmd.Flags().StringVarP(&propertyReadFile, "read-file", "r", "", "File to read 6-digit land sections from.")
	propertyCmd.Flags().BoolVar(&propertyHeadless, "headless", true, "Run the browser headless.")
	propertyCmd.Flags().IntVar(&propertyMaxDepth, "max-depth", 13, "Longest taxlot prefix to subdivide to.")
	rootCmd.AddCommand(propertyCmd)
}

var propertyCmd = &cobra.Command{
	Use:   "property [sections...]",
	Short: "Enumerates the property grid for 6-digit land sections.",
	RunE: func(cmd *cobra.Command, args []string) error {
		roots, err := resolveRoots(args, propertyReadFile)
		if err != nil {
			return err
		}
		var sections []int
		for _, root := range roots {
			section, err := strconv.Atoi(root)
			if err != nil || section < 100000 || section > 999999 {
				return fmt.Errorf("section %q is not a 6-digit number", root)
			}
			sections = append(sections, section)
		}
		prefixes := property.SixteenthPrefixes(sections)

		if dryRun {
			printRoots("Taxlot prefix", prefixes)
			return nil
		}

		ctx := cmd.Context()
		browser, err := property.Launch(ctx, propertyHeadless)
		if err != nil {
			return err
		}
		defer browser.Close()

		grid, err := browser.OpenGrid(ctx, "Map and Taxlot Number")
		if err != nil {
			return err
		}
		defer grid.Close()

		enum := scrape.Enumerator{
			Surface:  grid,
			Extract:  property.GridRecord,
			MaxDepth: propertyMaxDepth,
		}
		writer := sink.Writer{Dest: dest}

		failed := false
		for _, prefix := range prefixes {
			records, err := enum.Enumerate(ctx, prefix)
			if err != nil {
				slog.Error("prefix subtree failed", "prefix", prefix, "err", err)
				failed = true
				continue
			}
			if err := writer.Append("property.csv", records); err != nil {
				return err
			}
		}
		if failed {
			return errors.New("one or more prefixes failed; their rows were not written")
		}
		return nil
	},
}
