package commands

import (
	"context"

	"github.com/orgball2608/insta-engagement-ingest/internal/app"
	"github.com/orgball2608/insta-engagement-ingest/internal/report"
	"github.com/orgball2608/insta-engagement-ingest/pkg/config"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

var reportFlags struct {
	search   string
	authorID string
}

var reportCmd = &cobra.Command{
	Use:   "report [usernames...]",
	Short: "Print stored profiles with their recent posts. Defaults to SCRAPER_USERNAMES.",
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			reporter *report.Reporter
			cfg      *config.Config
		)

		return withApp(cmd.Context(), fx.Options(app.Core, fx.Populate(&reporter, &cfg)), func(ctx context.Context) error {
			usernames := args
			if len(usernames) == 0 {
				usernames = cfg.Scraper.Usernames
			}
			return reporter.Run(ctx, cmd.OutOrStdout(), report.Request{
				Usernames: usernames,
				Search:    reportFlags.search,
				AuthorID:  reportFlags.authorID,
			})
		})
	},
}

func init() {
	reportCmd.Flags().StringVar(&reportFlags.search, "search", "", "also list profiles whose username or full name contains this term")
	reportCmd.Flags().StringVar(&reportFlags.authorID, "author", "", "also list the newest stored tweets of this author id")
}
