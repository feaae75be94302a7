package commands

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"lanecollect/lib/configutil"
	"lanecollect/lib/scrape"
	"lanecollect/lib/scrapers/inmate"
	"lanecollect/lib/sink"
)

type jailConfig struct {
	BaseURL string `json:"base_url"`
}

var (
	jailLastName  string
	jailFirstName string
	jailBeginDate string
	jailEndDate   string
	jailBaseURL   string
)

func init() {
	jailCmd.Flags().StringVarP(&jailLastName, "last-name", "n", "%", "Last name, wildcarded.")
	jailCmd.Flags().StringVarP(&jailFirstName, "first-name", "f", "%", "First name, wildcarded.")
	jailCmd.Flags().StringVarP(&jailBeginDate, "booking-begin-date", "b", "", "Booking from date.")
	jailCmd.Flags().StringVarP(&jailEndDate, "booking-end-date", "e", "", "Booking to date.")
	jailCmd.Flags().StringVar(&jailBaseURL, "base-url", inmate.DefaultBaseURL, "Booking viewer base URL.")
	rootCmd.AddCommand(jailCmd)
}

var jailCmd = &cobra.Command{
	Use:   "jail",
	Short: "Scrapes jail bookings matching the name and date filters.",
	RunE: func(cmd *cobra.Command, args []string) error {
		filter := inmate.Filter{
			LastName:         jailLastName,
			FirstName:        jailFirstName,
			BookingBeginDate: jailBeginDate,
			BookingEndDate:   jailEndDate,
		}
		if dryRun {
			t := newTable()
			t.AppendHeader(table.Row{"Filter", "Value"})
			t.AppendRow(table.Row{"last name", filter.LastName})
			t.AppendRow(table.Row{"first name", filter.FirstName})
			t.AppendRow(table.Row{"booking begin date", filter.BookingBeginDate})
			t.AppendRow(table.Row{"booking end date", filter.BookingEndDate})
			t.Render()
			return nil
		}

		// a lanecollect.json5 next to (or above) the working
		// directory can re-point the viewer, e.g. at a mirror
		if !cmd.Flags().Changed("base-url") {
			if cfg, err := configutil.FindAndRead[jailConfig]("lanecollect.json5"); err == nil && cfg.BaseURL != "" {
				jailBaseURL = cfg.BaseURL
			}
		}

		client, err := inmate.NewClient(jailBaseURL)
		if err != nil {
			return err
		}
		collector := inmate.Collector{Client: client, Retry: scrape.Retrier{}}

		result, err := collector.ScrapeAll(cmd.Context(), filter)
		if err != nil {
			return err
		}
		writer := sink.Writer{Dest: dest}
		for _, batch := range result.Batches() {
			if err := writer.Append(batch.Name+".csv", batch.Records); err != nil {
				return err
			}
		}
		return nil
	},
}
