package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/loganlgraham/referralcrm-sub001/internal/store"
)

var historyFlags struct {
	referralID string
	dbPath     string
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded carry-forward values for a referral",
	RunE:  runHistory,
}

func init() {
	f := historyCmd.Flags()
	f.StringVar(&historyFlags.referralID, "case-id", "", "Referral ID (required)")
	f.StringVar(&historyFlags.dbPath, "db", store.DefaultDBPath, "Carry-forward store DB path")

	_ = historyCmd.MarkFlagRequired("case-id")
}

func runHistory(cmd *cobra.Command, _ []string) error {
	s, err := store.Open(historyFlags.dbPath)
	if err != nil {
		return err
	}
	defer s.Close()

	entries, err := s.History(historyFlags.referralID)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(entries) == 0 {
		fmt.Fprintf(out, "No carry-forward history for %s\n", historyFlags.referralID)
		return nil
	}
	fmt.Fprintf(out, "Carry-forward history for %s:\n", historyFlags.referralID)
	for _, e := range entries {
		fmt.Fprintf(out, "  %s  %-20s %6dm\n",
			e.RecordedAt.Format("2006-01-02 15:04"), e.DurationKey, e.Minutes)
	}
	return nil
}
