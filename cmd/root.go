package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd is the base command all subcommands attach to
var rootCmd = &cobra.Command{
	Use:   "cloudrun-bench",
	Short: "Compare startup, memory and latency across deployed service variants",
	Long: `cloudrun-bench measures a set of deployed HTTP services and compares them:
it reads each target's /metrics payload, probes a workload endpoint to
separate cold and warm latency, and renders a ranked comparison report.`,
}

// Execute runs the root command and exits non-zero on error
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
