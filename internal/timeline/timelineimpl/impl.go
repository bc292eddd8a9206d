package timelineimpl

import (
	"context"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/orgball2608/insta-engagement-ingest/internal/ratelimit"
	"github.com/orgball2608/insta-engagement-ingest/internal/timeline"
	"github.com/orgball2608/insta-engagement-ingest/pkg/config"
	"github.com/orgball2608/insta-engagement-ingest/pkg/logger"
	"github.com/orgball2608/insta-engagement-ingest/pkg/retry"
	"go.uber.org/fx"
)

const (
	tweetFields = "created_at,public_metrics,author_id,conversation_id,in_reply_to_user_id,lang,source,referenced_tweets,attachments,entities"
	expansions  = "author_id,attachments.media_keys,referenced_tweets.id,referenced_tweets.id.author_id,in_reply_to_user_id"
	userFields  = "username,name,profile_image_url,verified,public_metrics"
	mediaFields = "media_key,type,url,preview_image_url,public_metrics,duration_ms,alt_text"

	defaultRateLimitWait = time.Minute
	maxConsecutiveWaits  = 5
)

type Opts struct {
	fx.In

	Config  *config.Config
	Logger  logger.Logger
	Limiter ratelimit.Limiter
}

type TimelineImpl struct {
	http    *resty.Client
	limiter ratelimit.Limiter
	logger  logger.Logger
	retry   retry.Config
	host    string
	maxWait time.Duration

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

func New(opts Opts) *TimelineImpl {
	tc := opts.Config.Twitter

	host := tc.BaseURL
	if u, err := url.Parse(tc.BaseURL); err == nil && u.Host != "" {
		host = u.Host
	}

	client := resty.New().
		SetBaseURL(tc.BaseURL).
		SetAuthToken(tc.BearerToken).
		SetTimeout(tc.Timeout).
		SetHeader("Accept", "application/json")

	return &TimelineImpl{
		http:    client,
		limiter: opts.Limiter,
		logger:  opts.Logger.WithComponent("TimelineClient"),
		retry:   retry.DefaultConfig().WithMaxRetries(tc.MaxRetries),
		host:    host,
		maxWait: tc.MaxRateLimitWait,
		now:     time.Now,
		sleep:   sleepCtx,
	}
}

var _ timeline.Client = (*TimelineImpl)(nil)

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
