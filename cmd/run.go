package cmd

import (
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/hoquangnam45/cloudrun-bench/benchmark"
)

var (
	targetsFile  string
	requestCount int
	metricsPath  string
	workloadPath string
	timeout      time.Duration
	delay        time.Duration
	logFormat    string
	runID        string
	historyPath  string
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [target-name ...]",
	Short: "Run a comparison across the configured targets",
	Long: `Measures every target from the targets file (optionally filtered by the
positional target names), one target at a time: one metrics fetch, then a
sequential latency-probe sequence. Exits non-zero when any target could not
be fully measured.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := benchmark.Config{
			TargetsFile:  targetsFile,
			TargetFilter: args,
			RequestCount: requestCount,
			MetricsPath:  metricsPath,
			WorkloadPath: workloadPath,
			Timeout:      timeout,
			Delay:        delay,
			LogFormat:    logFormat,
			RunID:        runID,
			HistoryPath:  historyPath,
		}
		report, err := benchmark.RunComparison(cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("Comparison run failed")
		}
		if !report.AllOK() {
			log.Warn().Msg("Some targets failed, see report")
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&targetsFile, "targets", "targets.yaml", "YAML file listing targets (name, url)")
	runCmd.Flags().IntVar(&requestCount, "requests", 10, "Latency-probe requests per target (first one is the cold sample)")
	runCmd.Flags().StringVar(&metricsPath, "metrics-path", "/metrics", "Path of the metrics endpoint on each target")
	runCmd.Flags().StringVar(&workloadPath, "workload-path", "/startup-check", "Path probed for latency on each target")
	runCmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "Per-request HTTP timeout")
	runCmd.Flags().DurationVar(&delay, "delay", 0, "Optional pause between probe requests")
	runCmd.Flags().StringVar(&logFormat, "log-format", "console", "Log format: 'json' or 'console'")
	runCmd.Flags().StringVar(&runID, "run-id", "", "Optional run ID tag (generated when empty)")
	runCmd.Flags().StringVar(&historyPath, "history-db", "", "Pebble database for run history (empty disables persistence)")
}
