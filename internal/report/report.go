package report

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/orgball2608/insta-engagement-ingest/internal/repositories/post"
	"github.com/orgball2608/insta-engagement-ingest/internal/repositories/profile"
	"github.com/orgball2608/insta-engagement-ingest/internal/repositories/tweet"
	"github.com/orgball2608/insta-engagement-ingest/pkg/config"
	"github.com/orgball2608/insta-engagement-ingest/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	ProfileRepo profile.Repository
	PostRepo    post.Repository
	TweetRepo   tweet.Repository
	Logger      logger.Logger
	Config      *config.Config
}

// Reporter reads the document store through the query layer and prints it.
type Reporter struct {
	profiles profile.Repository
	posts    post.Repository
	tweets   tweet.Repository
	logger   logger.Logger
	cfg      *config.Config
}

func New(opts Opts) *Reporter {
	return &Reporter{
		profiles: opts.ProfileRepo,
		posts:    opts.PostRepo,
		tweets:   opts.TweetRepo,
		logger:   opts.Logger.WithComponent("Report"),
		cfg:      opts.Config,
	}
}

type Request struct {
	Usernames []string
	Search    string

	// AuthorID, when set, adds the author's newest stored tweets.
	AuthorID string
}

// Run prints each requested profile with its recent posts, then the profile
// list, then search results and stored tweets when asked for.
func (r *Reporter) Run(ctx context.Context, w io.Writer, req Request) error {
	out := NewRenderer(w)
	limit := int64(max(r.cfg.Query.Limit, 1))

	for _, username := range req.Usernames {
		p, err := r.profiles.GetByUsername(ctx, username)
		if errors.Is(err, profile.ErrNotFound) {
			out.NotFound(username)
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to load profile %s: %w", username, err)
		}

		posts, err := r.posts.ListByUsername(ctx, username, limit, config.IsDescending(r.cfg.Query.PostSort))
		if err != nil {
			r.logger.Warn("Failed to load posts", "username", username, "error", err)
			posts = nil
		}
		out.Profile(*p, posts)
	}

	profiles, err := r.profiles.List(ctx, profile.ListOptions{
		Limit:      limit,
		Descending: config.IsDescending(r.cfg.Query.ProfileSort),
	})
	if err != nil {
		return fmt.Errorf("failed to list profiles: %w", err)
	}
	fmt.Fprintln(w, "\nStored profiles:")
	out.ProfileList(profiles)

	if req.Search != "" {
		results, err := r.profiles.Search(ctx, req.Search, int64(max(r.cfg.Query.SearchLimit, 1)))
		if err != nil {
			return fmt.Errorf("failed to search profiles: %w", err)
		}
		fmt.Fprintf(w, "\nSearch results for %q:\n", req.Search)
		out.SearchResults(req.Search, results)
	}

	if req.AuthorID != "" {
		tweets, err := r.tweets.ListByAuthor(ctx, req.AuthorID, limit)
		if err != nil {
			return fmt.Errorf("failed to list tweets of %s: %w", req.AuthorID, err)
		}
		fmt.Fprintf(w, "\nLatest tweets of author %s:\n", req.AuthorID)
		out.Tweets(req.AuthorID, tweets)
	}
	return nil
}
