package timelineimpl

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Jeffail/gabs/v2"
	"github.com/go-resty/resty/v2"
	"github.com/orgball2608/insta-engagement-ingest/internal/normalize"
	apperrors "github.com/orgball2608/insta-engagement-ingest/pkg/errors"
)

// get performs a single request and classifies any failure.
func (c *TimelineImpl) get(ctx context.Context, operation, path string, params map[string]string) (*gabs.Container, error) {
	if err := c.limiter.Wait(ctx, c.host); err != nil {
		return nil, err
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get(path)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, apperrors.Transport(err, operation+" request failed")
	}

	tree, parseErr := normalize.Parse(resp.Body())

	if resp.IsError() {
		return nil, c.classify(operation, resp, tree)
	}
	if parseErr != nil {
		return nil, apperrors.Malformed(parseErr, operation+" returned invalid JSON")
	}
	return tree, nil
}

func (c *TimelineImpl) classify(operation string, resp *resty.Response, body *gabs.Container) error {
	e := apperrors.FromStatus(resp.StatusCode(), operation+" returned an error")
	if detail := normalize.Lookup(body, "detail").String(""); detail != "" {
		e.Message = operation + ": " + detail
	}

	if resp.StatusCode() == http.StatusTooManyRequests {
		if isUsageCap(body) {
			e.Kind = apperrors.KindQuotaExhausted
			return e
		}
		e.RetryAfter = c.rateLimitWait(resp.Header())
	}
	return e
}

// isUsageCap tells the monthly usage cap apart from the short rate-limit window.
func isUsageCap(body *gabs.Container) bool {
	if normalize.Lookup(body, "title").String("") == "UsageCapExceeded" {
		return true
	}
	if strings.Contains(normalize.Lookup(body, "type").String(""), "usage-capped") {
		return true
	}
	return strings.Contains(strings.ToLower(normalize.Lookup(body, "detail").String("")), "usage cap")
}

func (c *TimelineImpl) rateLimitWait(h http.Header) time.Duration {
	if reset, err := strconv.ParseInt(h.Get("x-rate-limit-reset"), 10, 64); err == nil {
		d := time.Unix(reset, 0).Sub(c.now())
		if d < 0 {
			d = 0
		}
		return d
	}
	if secs, err := strconv.Atoi(h.Get("Retry-After")); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	return defaultRateLimitWait
}
