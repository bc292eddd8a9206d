package commands

import (
	"context"
	"fmt"

	"github.com/orgball2608/insta-engagement-ingest/internal/app"
	"github.com/orgball2608/insta-engagement-ingest/internal/legacy"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

var migrateLegacyCmd = &cobra.Command{
	Use:   "migrate-legacy",
	Short: "Copy profiles, bio links, posts and comments from PostgreSQL into MongoDB.",
	RunE: func(cmd *cobra.Command, args []string) error {
		var migrator *legacy.Migrator

		return withApp(cmd.Context(), fx.Options(app.Legacy, fx.Populate(&migrator)), func(ctx context.Context) error {
			counts, err := migrator.Run(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "migrated %d profiles, %d posts, %d comments (%d failures)\n",
				counts.Profiles, counts.Posts, counts.Comments, counts.Failed)
			return nil
		})
	},
}
