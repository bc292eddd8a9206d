package ingestimpl

import (
	"time"

	"github.com/orgball2608/insta-engagement-ingest/internal/ingest"
	"github.com/orgball2608/insta-engagement-ingest/internal/instagram"
	"github.com/orgball2608/insta-engagement-ingest/internal/repositories/post"
	"github.com/orgball2608/insta-engagement-ingest/internal/repositories/profile"
	"github.com/orgball2608/insta-engagement-ingest/internal/repositories/tweet"
	"github.com/orgball2608/insta-engagement-ingest/internal/telegram"
	"github.com/orgball2608/insta-engagement-ingest/internal/timeline"
	"github.com/orgball2608/insta-engagement-ingest/pkg/config"
	"github.com/orgball2608/insta-engagement-ingest/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Instagram   instagram.Client
	Timeline    timeline.Client
	Telegram    telegram.Client
	ProfileRepo profile.Repository
	PostRepo    post.Repository
	TweetRepo   tweet.Repository
	Logger      logger.Logger
	Config      *config.Config
}

type IngestImpl struct {
	Instagram   instagram.Client
	Timeline    timeline.Client
	Telegram    telegram.Client
	ProfileRepo profile.Repository
	PostRepo    post.Repository
	TweetRepo   tweet.Repository
	Logger      logger.Logger
	Config      *config.Config

	now func() time.Time
}

func New(opts Opts) *IngestImpl {
	return &IngestImpl{
		Instagram:   opts.Instagram,
		Timeline:    opts.Timeline,
		Telegram:    opts.Telegram,
		ProfileRepo: opts.ProfileRepo,
		PostRepo:    opts.PostRepo,
		TweetRepo:   opts.TweetRepo,
		Logger:      opts.Logger.WithComponent("Ingest"),
		Config:      opts.Config,
		now:         time.Now,
	}
}

var _ ingest.Service = (*IngestImpl)(nil)

var Module = fx.Module("ingest",
	fx.Provide(
		fx.Annotate(
			New,
			fx.As(new(ingest.Service)),
		),
	),
)
