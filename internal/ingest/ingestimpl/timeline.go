package ingestimpl

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/orgball2608/insta-engagement-ingest/internal/domain"
	"github.com/orgball2608/insta-engagement-ingest/internal/ingest"
	"github.com/orgball2608/insta-engagement-ingest/internal/metrics"
	apperrors "github.com/orgball2608/insta-engagement-ingest/pkg/errors"
)

func (s *IngestImpl) IngestTimeline(ctx context.Context, req ingest.TimelineRequest) (ingest.TimelineResult, error) {
	start := time.Now()
	defer metrics.ObserveRun("timeline", start)

	result := ingest.TimelineResult{}

	tweets, fetchErr := s.Timeline.FetchTweets(ctx, req.AuthorID, req.MaxTweets, req.PageSize)
	result.Fetched = len(tweets)
	if fetchErr != nil && len(tweets) == 0 {
		s.Logger.Error("Timeline fetch failed, nothing to store",
			"author_id", req.AuthorID,
			"kind", apperrors.KindOf(fetchErr).String(),
			"error", fetchErr)
		s.Telegram.NotifyFailure("author "+req.AuthorID, fetchErr.Error())
		return result, fetchErr
	}

	if path := s.outputPath(req); path != "" {
		if err := writeTweets(path, tweets); err != nil {
			s.Logger.Warn("Failed to write tweets file", "path", path, "error", err)
		} else {
			result.OutputPath = path
			s.Logger.Info("Tweets written to file", "path", path, "count", len(tweets))
		}
	}

	report, err := s.TweetRepo.InsertMany(ctx, req.AuthorID, tweets)
	result.Report = report
	metrics.TweetsStored.WithLabelValues("inserted").Add(float64(report.Inserted))
	metrics.TweetsStored.WithLabelValues("duplicate").Add(float64(report.Duplicates))
	if err != nil {
		s.Logger.Error("Failed to store tweets", "author_id", req.AuthorID, "error", err)
		s.Telegram.NotifyFailure("author "+req.AuthorID, err.Error())
		return result, err
	}

	s.Logger.Info("Tweets stored",
		"author_id", req.AuthorID,
		"fetched", len(tweets),
		"inserted", report.Inserted,
		"duplicates", report.Duplicates)

	if fetchErr != nil {
		s.Logger.Warn("Timeline fetch ended early, partial results were stored",
			"author_id", req.AuthorID,
			"stored", len(tweets),
			"error", fetchErr)
		s.Telegram.NotifyFailure("author "+req.AuthorID, fetchErr.Error())
		return result, fetchErr
	}
	return result, nil
}

func (s *IngestImpl) outputPath(req ingest.TimelineRequest) string {
	if req.OutputPath != "" {
		return req.OutputPath
	}
	if s.Config.Ingest.OutputDir == "" {
		return ""
	}
	name := fmt.Sprintf("tweets_apiv2_%s_%s.json", req.AuthorID, s.now().Format("20060102_150405"))
	return filepath.Join(s.Config.Ingest.OutputDir, name)
}

func writeTweets(path string, tweets []domain.Tweet) error {
	if tweets == nil {
		tweets = []domain.Tweet{}
	}

	data, err := json.MarshalIndent(tweets, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode tweets: %w", err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output dir: %w", err)
		}
	}
	return os.WriteFile(path, data, 0o644)
}
