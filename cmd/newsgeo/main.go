// Command newsgeo enriches article files offline and validates gazetteer
// datasets, using the same resolver and classifier as the Kafka service.
//
// Usage:
//
//	newsgeo enrich --in articles.json --out enriched.json
//	newsgeo gazetteer check data/paris.yaml
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "newsgeo",
		Short:        "Geolocate and categorize Paris news articles",
		SilenceUsage: true,
	}
	root.PersistentFlags().String("log-level", "warn", "log level (debug, info, warn, error)")

	root.AddCommand(newEnrichCmd())
	root.AddCommand(newGazetteerCmd())
	return root
}
