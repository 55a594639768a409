package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/loganlgraham/referralcrm-sub001/internal/config"
	"github.com/loganlgraham/referralcrm-sub001/internal/format"
	"github.com/loganlgraham/referralcrm-sub001/internal/logging"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootFlags struct {
	configPath string
}

// cfg is the loaded CLI configuration, available to all subcommands.
var cfg = config.Default()

var rootCmd = &cobra.Command{
	Use:   "referralsla",
	Short: "SLA durations and outreach recommendations for referral cases",
	Long: "Referralsla evaluates referral case snapshots against the brokerage's\n" +
		"business-hours SLA: milestone durations, proactive-outreach\n" +
		"recommendations, and an aggregate risk rating.",
	SilenceUsage: true,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		var err error
		cfg, err = config.Load(rootFlags.configPath)
		if err != nil {
			return err
		}
		level, err := logging.ParseLevel(cfg.LogLevel)
		if err != nil {
			return err
		}
		logging.Init(level, cfg.LogFormat)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootFlags.configPath, "config", config.DefaultPath, "Config file path")
	rootCmd.AddCommand(evaluateCmd)
	rootCmd.AddCommand(calendarCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.Version = version
}

// outputMode maps config/flag state to a render mode.
func outputMode(markdown bool) format.Mode {
	if markdown || cfg.Output == "markdown" {
		return format.Markdown
	}
	return format.ASCII
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
