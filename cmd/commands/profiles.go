package commands

import (
	"context"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/orgball2608/insta-engagement-ingest/internal/app"
	"github.com/orgball2608/insta-engagement-ingest/internal/ingest"
	"github.com/orgball2608/insta-engagement-ingest/pkg/config"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

var profilesCmd = &cobra.Command{
	Use:   "profiles [usernames...]",
	Short: "Fetch profiles, posts and comments and upsert them. Defaults to SCRAPER_USERNAMES.",
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			svc ingest.Service
			cfg *config.Config
		)

		return withApp(cmd.Context(), fx.Options(app.Core, fx.Populate(&svc, &cfg)), func(ctx context.Context) error {
			usernames := args
			if len(usernames) == 0 {
				usernames = cfg.Scraper.Usernames
			}
			if len(usernames) == 0 {
				return fmt.Errorf("no usernames given and SCRAPER_USERNAMES is empty")
			}

			summary := svc.IngestProfiles(ctx, usernames)

			t := table.NewWriter()
			t.SetStyle(table.StyleRounded)
			t.SetOutputMirror(cmd.OutOrStdout())
			t.AppendHeader(table.Row{"Username", "Result"})
			for _, u := range summary.Succeeded {
				t.AppendRow(table.Row{u, "saved"})
			}
			for _, f := range summary.Failures {
				t.AppendRow(table.Row{f.Target, f.Message})
			}
			t.Render()

			if len(summary.Failures) > 0 {
				return fmt.Errorf("%d of %d usernames failed", len(summary.Failures), len(usernames))
			}
			return nil
		})
	},
}
