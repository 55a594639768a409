package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/loganlgraham/referralcrm-sub001/internal/casefile"
	"github.com/loganlgraham/referralcrm-sub001/internal/engine"
	"github.com/loganlgraham/referralcrm-sub001/internal/logging"
	"github.com/loganlgraham/referralcrm-sub001/internal/sladur"
	"github.com/loganlgraham/referralcrm-sub001/internal/store"
)

var resetFlags struct {
	dbPath string
	at     string
}

var resetCmd = &cobra.Command{
	Use:   "reset <case-file>",
	Short: "Record carry-forward minutes at a deal-cycle reset",
	Long: `When a deal falls through, the durations it did complete are kept as
historical context for the next cycle. Reset evaluates the case file and
records its resolved contract-to-close and close-to-paid minutes in the
carry-forward store. The engine never writes these itself; this command
is the record-keeping side of the cycle reset.`,
	Args: cobra.ExactArgs(1),
	RunE: runReset,
}

func init() {
	f := resetCmd.Flags()
	f.StringVar(&resetFlags.dbPath, "db", store.DefaultDBPath, "Carry-forward store DB path")
	f.StringVar(&resetFlags.at, "at", "", "Reset instant, RFC3339 (default: current time)")
}

func runReset(cmd *cobra.Command, args []string) error {
	at := time.Now()
	if resetFlags.at != "" {
		parsed, err := time.Parse(time.RFC3339, resetFlags.at)
		if err != nil {
			return fmt.Errorf("parse --at: %w", err)
		}
		at = parsed
	}

	r, err := casefile.Load(args[0])
	if err != nil {
		return err
	}
	if r.ID == "" {
		return fmt.Errorf("case file %s has no referral id", args[0])
	}

	rep := engine.Default().Evaluate(r, at)
	minutes := make(map[string]int)
	for _, e := range rep.Durations {
		switch e.Key {
		case sladur.KeyContractToClose, sladur.KeyCloseToPaid:
			if e.Value.IsKnown() {
				minutes[e.Key] = e.Value.Minutes
			}
		}
	}
	if len(minutes) == 0 {
		return fmt.Errorf("nothing to carry forward: no resolved deal-cycle durations on %s", r.ID)
	}

	s, err := store.Open(resetFlags.dbPath)
	if err != nil {
		return err
	}
	defer s.Close()

	entries, err := s.RecordCycleReset(r.ID, minutes, at)
	if err != nil {
		return err
	}

	logging.New("reset").Info("cycle reset recorded", "referral_id", r.ID, "entries", len(entries))
	out := cmd.OutOrStdout()
	for _, e := range entries {
		fmt.Fprintf(out, "recorded %s = %dm for %s\n", e.DurationKey, e.Minutes, e.ReferralID)
	}
	return nil
}
