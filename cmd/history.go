package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/hoquangnam45/cloudrun-bench/benchmark"
)

var (
	historyDBPath string
	historyRunID  string
)

// historyCmd lists stored runs or re-renders a single one
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List stored comparison runs, or re-render one with --run",
	Run: func(cmd *cobra.Command, args []string) {
		store, err := benchmark.OpenHistory(historyDBPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", historyDBPath).Msg("Cannot open history store")
		}
		defer store.Close()

		if historyRunID != "" {
			report, err := store.Get(historyRunID)
			if err != nil {
				log.Fatal().Err(err).Msg("Cannot load run")
			}
			if err := benchmark.NewReporter(os.Stdout).Render(report); err != nil {
				log.Fatal().Err(err).Msg("Cannot render run")
			}
			return
		}

		summaries, err := store.List()
		if err != nil {
			log.Fatal().Err(err).Msg("Cannot list runs")
		}
		if len(summaries) == 0 {
			fmt.Println("No stored runs.")
			return
		}

		tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "RUN\tSTARTED\tTARGETS\tFAILED")
		for _, s := range summaries {
			fmt.Fprintf(tw, "%s\t%s\t%d\t%d\n", s.ID, s.StartedAt.Format(time.RFC3339), s.Targets, s.Failed)
		}
		tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().StringVar(&historyDBPath, "history-db", "runs-db", "Pebble database holding run history")
	historyCmd.Flags().StringVar(&historyRunID, "run", "", "Run ID to re-render instead of listing")
}
