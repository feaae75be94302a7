package commands

import (
	"errors"
	"log/slog"

	"github.com/spf13/cobra"

	"lanecollect/lib/scrape"
	"lanecollect/lib/scrapers/property"
	"lanecollect/lib/sink"
)

var (
	accountReadFile string
	accountHeadless bool
)

func init() {
	accountCmd.Flags().StringVarP(&accountReadFile, "read-file", "r", "", "File to read account numbers from.")
	accountCmd.Flags().BoolVar(&accountHeadless, "headless", true, "Run the browser headless.")
	rootCmd.AddCommand(accountCmd)
}

var accountCmd = &cobra.Command{
	Use:   "account [accounts...]",
	Short: "Scrapes account details and owner reports for account numbers.",
	RunE: func(cmd *cobra.Command, args []string) error {
		accounts, err := resolveRoots(args, accountReadFile)
		if err != nil {
			return err
		}
		if dryRun {
			printRoots("Account", accounts)
			return nil
		}

		ctx := cmd.Context()
		browser, err := property.Launch(ctx, accountHeadless)
		if err != nil {
			return err
		}
		defer browser.Close()

		site := browser.Site()
		defer site.Close()

		writer := sink.Writer{Dest: dest}
		retry := scrape.Retrier{}

		failed := false
		for _, account := range accounts {
			result, err := property.ScrapeAccount(ctx, site, account, retry)
			if err != nil {
				slog.Error("account failed", "account", account, "err", err)
				failed = true
				continue
			}
			for _, batch := range result.Batches() {
				if err := writer.Append(batch.Name+".csv", batch.Records); err != nil {
					return err
				}
			}
		}
		if failed {
			return errors.New("one or more accounts failed; their rows were not written")
		}
		return nil
	},
}
