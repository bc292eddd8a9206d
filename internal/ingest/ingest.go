package ingest

import (
	"context"
	"errors"

	"github.com/orgball2608/insta-engagement-ingest/internal/domain"
)

var ErrFetchFailed = errors.New("profile fetch failed")

type Failure struct {
	Target  string
	Message string
}

// Summary lists the outcome of a multi-target run in input order.
type Summary struct {
	Succeeded []string
	Failures  []Failure
}

type TimelineRequest struct {
	AuthorID  string
	MaxTweets int
	PageSize  int

	// OutputPath, when set, receives a JSON dump of the fetched tweets.
	OutputPath string
}

type TimelineResult struct {
	Fetched    int
	Report     domain.InsertReport
	OutputPath string
}

type Service interface {
	// IngestProfile fetches one username and saves profile, posts and
	// comments, in that order. Safe to re-run for the same username.
	IngestProfile(ctx context.Context, username string) error

	// IngestProfiles runs IngestProfile for each username and keeps going past failures.
	IngestProfiles(ctx context.Context, usernames []string) Summary

	// IngestTimeline fetches an author's tweets and stores whatever came back,
	// even when the fetch stopped early.
	IngestTimeline(ctx context.Context, req TimelineRequest) (TimelineResult, error)

	// Schedule re-runs both pipelines on the configured cron expression until ctx is done.
	Schedule(ctx context.Context) error
}
