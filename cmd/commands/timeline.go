package commands

import (
	"context"
	"fmt"

	"github.com/orgball2608/insta-engagement-ingest/internal/app"
	"github.com/orgball2608/insta-engagement-ingest/internal/ingest"
	"github.com/orgball2608/insta-engagement-ingest/pkg/config"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

var timelineFlags struct {
	userID   string
	max      int
	pageSize int
	out      string
}

var timelineCmd = &cobra.Command{
	Use:   "timeline",
	Short: "Fetch an author's recent tweets and store them in the author's collection.",
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			svc ingest.Service
			cfg *config.Config
		)

		return withApp(cmd.Context(), fx.Options(app.Core, fx.Populate(&svc, &cfg)), func(ctx context.Context) error {
			req := ingest.TimelineRequest{
				AuthorID:   cfg.Twitter.UserID,
				MaxTweets:  cfg.Twitter.MaxTweets,
				PageSize:   cfg.Twitter.PageSize,
				OutputPath: timelineFlags.out,
			}
			if timelineFlags.userID != "" {
				req.AuthorID = timelineFlags.userID
			}
			if timelineFlags.max > 0 {
				req.MaxTweets = timelineFlags.max
			}
			if timelineFlags.pageSize > 0 {
				req.PageSize = timelineFlags.pageSize
			}
			if req.AuthorID == "" {
				return fmt.Errorf("no author id: pass --user-id or set TWITTER_USER_ID")
			}

			res, err := svc.IngestTimeline(ctx, req)
			fmt.Fprintf(cmd.OutOrStdout(), "fetched %d tweets, inserted %d, duplicates %d\n",
				res.Fetched, res.Report.Inserted, res.Report.Duplicates)
			if res.OutputPath != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "written to %s\n", res.OutputPath)
			}
			return err
		})
	},
}

func init() {
	timelineCmd.Flags().StringVar(&timelineFlags.userID, "user-id", "", "author id, defaults to TWITTER_USER_ID")
	timelineCmd.Flags().IntVar(&timelineFlags.max, "max", 0, "maximum tweets to fetch, defaults to TWITTER_MAX_TWEETS")
	timelineCmd.Flags().IntVar(&timelineFlags.pageSize, "page-size", 0, "tweets per request (5-100), defaults to TWITTER_PAGE_SIZE")
	timelineCmd.Flags().StringVar(&timelineFlags.out, "out", "", "also write the tweets to this JSON file")
}
