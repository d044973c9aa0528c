package cmd

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/hoquangnam45/cloudrun-bench/demo"
)

// processStart approximates the process start for the reported startup time.
var processStart = time.Now()

var (
	serveAddr      string
	serveApp       string
	serveProfile   string
	serveImageType string
	servePool      string
)

// serveCmd runs the local demo target so the comparison engine can be
// exercised without a cloud deployment
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve a local demo target (CRUD + metrics endpoint)",
	Run: func(cmd *cobra.Command, args []string) {
		srv := demo.NewServer(demo.ServerConfig{
			Addr:           serveAddr,
			Application:    serveApp,
			Profile:        serveProfile,
			ImageType:      serveImageType,
			ConnectionPool: servePool,
		}, processStart)
		if err := srv.Run(); err != nil {
			log.Fatal().Err(err).Msg("Demo target stopped")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "Listen address")
	serveCmd.Flags().StringVar(&serveApp, "application", "cloudrun-bench-demo", "Application name reported by /metrics")
	serveCmd.Flags().StringVar(&serveProfile, "profile", "default", "Profile label reported by /metrics")
	serveCmd.Flags().StringVar(&serveImageType, "image-type", "Go (gc)", "Image type label, e.g. 'JVM' or 'Native (GraalVM)'")
	serveCmd.Flags().StringVar(&servePool, "connection-pool", "in-memory", "Connection pool label, e.g. 'HikariCP'")
}
