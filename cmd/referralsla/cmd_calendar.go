package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/loganlgraham/referralcrm-sub001/internal/bizcal"
)

var calendarFlags struct {
	year int
	date string
}

var calendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Show the business calendar the SLA clock runs on",
	RunE:  runCalendar,
}

func init() {
	f := calendarCmd.Flags()
	f.IntVar(&calendarFlags.year, "year", time.Now().Year(), "Year to list observed holidays for")
	f.StringVar(&calendarFlags.date, "date", "", "Check one date (YYYY-MM-DD) instead of listing the year")
}

func runCalendar(cmd *cobra.Command, _ []string) error {
	cal := bizcal.Default()
	out := cmd.OutOrStdout()

	if calendarFlags.date != "" {
		d, err := time.ParseInLocation("2006-01-02", calendarFlags.date, cal.Location())
		if err != nil {
			return fmt.Errorf("parse --date: %w", err)
		}
		if cal.IsWorkingDay(d) {
			fmt.Fprintf(out, "%s is a working day (window 08:00-18:00 %s)\n",
				d.Format("2006-01-02"), bizcal.DefaultRegion)
		} else {
			fmt.Fprintf(out, "%s is not a working day\n", d.Format("2006-01-02"))
		}
		return nil
	}

	fmt.Fprintf(out, "Observed holidays, %d (%s):\n", calendarFlags.year, bizcal.DefaultRegion)
	for _, h := range cal.Holidays(calendarFlags.year) {
		fmt.Fprintf(out, "  %s  %s\n", h.Format("2006-01-02"), h.Weekday())
	}
	return nil
}
