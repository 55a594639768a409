package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/loganlgraham/referralcrm-sub001/internal/casefile"
	"github.com/loganlgraham/referralcrm-sub001/internal/engine"
	"github.com/loganlgraham/referralcrm-sub001/internal/format"
	"github.com/loganlgraham/referralcrm-sub001/internal/logging"
	"github.com/loganlgraham/referralcrm-sub001/internal/store"
)

var evaluateFlags struct {
	now      string
	dbPath   string
	markdown bool
	jsonOut  bool
}

var evaluateCmd = &cobra.Command{
	Use:   "evaluate <case-file>...",
	Short: "Evaluate referral snapshots against the SLA",
	Long: `Evaluate one or more referral case files (YAML or JSON) and print the
milestone duration chain, prioritized recommendations, and risk rating.

With --db, carry-forward minutes recorded at past cycle resets are
loaded for any case file that does not embed its own.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runEvaluate,
}

func init() {
	f := evaluateCmd.Flags()
	f.StringVar(&evaluateFlags.now, "now", "", "Evaluation instant, RFC3339 (default: current time)")
	f.StringVar(&evaluateFlags.dbPath, "db", "", "Carry-forward store DB path (optional)")
	f.BoolVar(&evaluateFlags.markdown, "markdown", false, "Render Markdown tables")
	f.BoolVar(&evaluateFlags.jsonOut, "json", false, "Emit the raw report as JSON")
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	now := time.Now()
	if evaluateFlags.now != "" {
		parsed, err := time.Parse(time.RFC3339, evaluateFlags.now)
		if err != nil {
			return fmt.Errorf("parse --now: %w", err)
		}
		now = parsed
	}

	var cf store.Store
	if evaluateFlags.dbPath != "" {
		s, err := store.Open(evaluateFlags.dbPath)
		if err != nil {
			return err
		}
		defer s.Close()
		cf = s
	}

	log := logging.New("evaluate")
	eng := engine.Default()

	reports := make([]engine.Report, len(args))
	var g errgroup.Group
	for i, path := range args {
		i, path := i, path
		g.Go(func() error {
			r, err := casefile.Load(path)
			if err != nil {
				return err
			}
			if cf != nil && len(r.CarryForward) == 0 {
				stored, err := cf.CarryForward(r.ID)
				if err != nil {
					return fmt.Errorf("load carry-forward for %s: %w", r.ID, err)
				}
				if len(stored) > 0 {
					r.CarryForward = stored
				}
			}
			reports[i] = eng.Evaluate(r, now)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for i, rep := range reports {
		log.Debug("evaluated case",
			"referral_id", rep.ReferralID,
			"risk", string(rep.Risk.Level),
			"recommendations", len(rep.Recommendations),
		)
		if evaluateFlags.jsonOut {
			data, err := json.MarshalIndent(rep, "", "  ")
			if err != nil {
				return fmt.Errorf("marshal report: %w", err)
			}
			fmt.Fprintln(out, string(data))
			continue
		}
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprint(out, format.RenderReport(rep, outputMode(evaluateFlags.markdown)))
	}
	return nil
}
