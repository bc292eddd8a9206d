package commands

import (
	"context"

	"github.com/orgball2608/insta-engagement-ingest/internal/app"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run ingestion on INGEST_CRON and serve /healthz and /metrics until interrupted.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), app.Serve, func(ctx context.Context) error {
			<-ctx.Done()
			return nil
		})
	},
}
