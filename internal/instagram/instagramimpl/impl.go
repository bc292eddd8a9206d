package instagramimpl

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/Jeffail/gabs/v2"
	"github.com/go-resty/resty/v2"
	"github.com/orgball2608/insta-engagement-ingest/internal/domain"
	"github.com/orgball2608/insta-engagement-ingest/internal/instagram"
	"github.com/orgball2608/insta-engagement-ingest/internal/normalize"
	"github.com/orgball2608/insta-engagement-ingest/internal/ratelimit"
	"github.com/orgball2608/insta-engagement-ingest/pkg/config"
	apperrors "github.com/orgball2608/insta-engagement-ingest/pkg/errors"
	"github.com/orgball2608/insta-engagement-ingest/pkg/logger"
	"github.com/orgball2608/insta-engagement-ingest/pkg/retry"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Config  *config.Config
	Logger  logger.Logger
	Limiter ratelimit.Limiter
}

type InstaImpl struct {
	http    *resty.Client
	limiter ratelimit.Limiter
	logger  logger.Logger
	retry   retry.Config
	now     func() time.Time

	host        string
	profileURL  string
	postsURL    string
	commentsURL string
}

func New(opts Opts) *InstaImpl {
	sc := opts.Config.Scraper

	client := resty.New().
		SetTimeout(sc.Timeout).
		SetHeader("x-rapidapi-key", sc.APIKey).
		SetHeader("x-rapidapi-host", sc.Host).
		SetHeader("Accept", "application/json")

	return &InstaImpl{
		http:        client,
		limiter:     opts.Limiter,
		logger:      opts.Logger.WithComponent("InstagramClient"),
		retry:       retry.DefaultConfig().WithMaxRetries(sc.MaxRetries),
		now:         time.Now,
		host:        sc.Host,
		profileURL:  sc.ProfileURL,
		postsURL:    sc.PostsURL,
		commentsURL: sc.CommentsURL,
	}
}

var _ instagram.Client = (*InstaImpl)(nil)

// get performs one GET against the scraping API and parses the body.
// Transport faults, 5xx and 429 are retried with backoff, anything else
// fails on the first attempt.
func (c *InstaImpl) get(ctx context.Context, operation, endpoint string, params map[string]string) (*gabs.Container, error) {
	return retry.DoValue(ctx, c.logger, operation, func() (*gabs.Container, error) {
		if err := c.limiter.Wait(ctx, c.host); err != nil {
			return nil, retry.Classified(err)
		}

		resp, err := c.http.R().
			SetContext(ctx).
			SetQueryParams(params).
			Get(endpoint)
		if err != nil {
			return nil, retry.Classified(apperrors.Transport(err, operation+" request failed"))
		}

		if resp.IsError() {
			e := apperrors.FromStatus(resp.StatusCode(), operation+" returned an error")
			if resp.StatusCode() == http.StatusTooManyRequests {
				if secs, convErr := strconv.Atoi(resp.Header().Get("Retry-After")); convErr == nil {
					e.RetryAfter = time.Duration(secs) * time.Second
				}
			}
			return nil, retry.Classified(e)
		}

		tree, err := normalize.Parse(resp.Body())
		if err != nil {
			return nil, retry.Classified(apperrors.Malformed(err, operation+" returned invalid JSON"))
		}
		return tree, nil
	}, c.retry)
}

func failure(username string, err error) domain.FetchResult {
	res := domain.FetchResult{
		Status:   domain.StatusFailed,
		Username: username,
		Message:  fmt.Sprintf("failed to fetch profile: %v", err),
	}
	if code := apperrors.StatusCode(err); code != 0 {
		res.StatusCode = &code
	}
	return res
}
