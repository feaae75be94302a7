package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lanecollect/lib/telemetry"
)

var (
	verbose bool
	dest    string
	dryRun  bool
)

var rootCmd = &cobra.Command{
	Use:   "lanecollect",
	Short: "lanecollect scrapes Lane County public records into CSV files.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		telemetry.InitSlog(verbose)
		telemetry.InstrumentPerfStats(cmd.Context())
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging.")
	rootCmd.PersistentFlags().StringVarP(&dest, "dest", "D", ".", "Destination directory for CSV output.")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "Print the resolved work list instead of scraping.")
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
