package timelineimpl

import (
	"context"
	"net/url"
	"strconv"

	"github.com/Jeffail/gabs/v2"
	"github.com/orgball2608/insta-engagement-ingest/internal/domain"
	"github.com/orgball2608/insta-engagement-ingest/internal/normalize"
	"github.com/orgball2608/insta-engagement-ingest/internal/timeline"
	apperrors "github.com/orgball2608/insta-engagement-ingest/pkg/errors"
	"github.com/orgball2608/insta-engagement-ingest/pkg/retry"
)

// FetchTweets walks the author's timeline page by page until maxTweets are
// collected or the cursor runs out.
func (c *TimelineImpl) FetchTweets(ctx context.Context, authorID string, maxTweets, pageSize int) ([]domain.Tweet, error) {
	log := c.logger

	user, err := c.get(ctx, "lookup user", "/users/"+url.PathEscape(authorID), nil)
	if err != nil {
		log.Error("User lookup failed, not paginating",
			"author_id", authorID,
			"kind", apperrors.KindOf(err).String(),
			"error", err)
		return nil, apperrors.Wrap(err, "failed to look up user "+authorID)
	}
	log.Info("Fetching timeline",
		"author_id", authorID,
		"username", normalize.Lookup(user, "data", "username").String(""),
		"max_tweets", maxTweets)

	out := make([]domain.Tweet, 0, max(maxTweets, 0))
	pageSize = timeline.ClampPageSize(pageSize)
	token := ""
	waits := 0

	for len(out) < maxTweets {
		remaining := maxTweets - len(out)
		params := map[string]string{
			"max_results":  strconv.Itoa(timeline.ClampPageSize(min(pageSize, remaining))),
			"tweet.fields": tweetFields,
			"expansions":   expansions,
			"user.fields":  userFields,
			"media.fields": mediaFields,
		}
		if token != "" {
			params["pagination_token"] = token
		}

		page, err := retry.DoValue(ctx, log, "fetch timeline page", func() (*gabs.Container, error) {
			tree, err := c.get(ctx, "fetch timeline page", "/users/"+url.PathEscape(authorID)+"/tweets", params)
			return tree, retry.Transient(err)
		}, c.retry)
		if err != nil {
			switch apperrors.ActionFor(err) {
			case apperrors.ActionWait:
				if waits >= maxConsecutiveWaits {
					log.Error("Still rate limited after repeated waits, giving up", "author_id", authorID, "collected", len(out))
					return out, err
				}
				waits++
				wait := min(apperrors.RetryAfter(err), c.maxWait)
				log.Warn("Rate limited, waiting for the window to reset",
					"author_id", authorID,
					"wait", wait.String())
				if err := c.sleep(ctx, wait); err != nil {
					return out, err
				}
				continue
			case apperrors.ActionStop:
				log.Warn("Usage quota exhausted, stopping with what was collected",
					"author_id", authorID,
					"collected", len(out),
					"requested", maxTweets)
				return out, nil
			}
			c.logAbort(err, authorID, len(out))
			return out, err
		}
		waits = 0

		pageErrors := normalize.Lookup(page, "errors").Items()
		for _, e := range pageErrors {
			log.Warn("API reported an error on this page",
				"author_id", authorID,
				"title", e.Lookup("title").String(""),
				"detail", e.Lookup("detail").String(""),
				"resource_id", e.Lookup("resource_id").String(""))
		}

		tweets := parsePage(page)
		if len(tweets) == 0 && len(pageErrors) == 0 {
			log.Info("Page returned no tweets", "author_id", authorID)
		}
		if len(tweets) > remaining {
			tweets = tweets[:remaining]
		}
		out = append(out, tweets...)

		token = normalize.Lookup(page, "meta", "next_token").String("")
		if token == "" {
			break
		}
	}

	if len(out) < maxTweets {
		log.Info("Collected fewer tweets than requested, the timeline is exhausted",
			"author_id", authorID,
			"collected", len(out),
			"requested", maxTweets)
	}
	return out, nil
}

func (c *TimelineImpl) logAbort(err error, authorID string, collected int) {
	kv := []any{"author_id", authorID, "collected", collected, "error", err}
	switch apperrors.KindOf(err) {
	case apperrors.KindUnauthorized:
		c.logger.Error("Authentication failed, check the bearer token", kv...)
	case apperrors.KindForbidden:
		c.logger.Error("Access forbidden, the API access tier may not cover this endpoint", kv...)
	case apperrors.KindTransport:
		c.logger.Error("Timeline request kept failing, aborting pagination", kv...)
	case apperrors.KindMalformed:
		c.logger.Error("Timeline page could not be decoded, aborting pagination", kv...)
	default:
		c.logger.Error("Timeline pagination aborted", kv...)
	}
}
