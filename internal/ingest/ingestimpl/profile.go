package ingestimpl

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/orgball2608/insta-engagement-ingest/internal/domain"
	"github.com/orgball2608/insta-engagement-ingest/internal/ingest"
	"github.com/orgball2608/insta-engagement-ingest/internal/metrics"
	"github.com/panjf2000/ants/v2"
)

func (s *IngestImpl) IngestProfile(ctx context.Context, username string) error {
	start := time.Now()
	defer metrics.ObserveRun("profile", start)

	res := s.Instagram.FetchProfile(ctx, username)
	if res.Failed() {
		metrics.ProfilesIngested.WithLabelValues("fetch_failed").Inc()
		kv := []any{"username", username, "message", res.Message}
		if res.StatusCode != nil {
			kv = append(kv, "status_code", *res.StatusCode)
		}
		s.Logger.Error("Profile fetch failed, skipping username", kv...)
		s.Telegram.NotifyFailure(username, res.Message)
		return fmt.Errorf("%w: %s", ingest.ErrFetchFailed, res.Message)
	}

	if err := s.save(ctx, res.Profile.Username, res); err != nil {
		metrics.ProfilesIngested.WithLabelValues("save_failed").Inc()
		s.Logger.Error("Failed to save profile data", "username", username, "error", err)
		s.Telegram.NotifyFailure(username, err.Error())
		return err
	}

	metrics.ProfilesIngested.WithLabelValues("success").Inc()
	return nil
}

// save writes the profile, then its posts, then each post's comments.
func (s *IngestImpl) save(ctx context.Context, username string, res domain.FetchResult) error {
	if err := s.ProfileRepo.Upsert(ctx, *res.Profile); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}

	if err := s.PostRepo.Upsert(ctx, username, res.Posts); err != nil {
		return fmt.Errorf("failed to save posts: %w", err)
	}
	metrics.PostsUpserted.Add(float64(len(res.Posts)))

	comments := 0
	for _, p := range res.Posts {
		if err := s.PostRepo.UpsertComments(ctx, p.ID, p.Comments); err != nil {
			return fmt.Errorf("failed to save comments of post %s: %w", p.ID, err)
		}
		comments += len(p.Comments)
	}

	s.Logger.Info("Profile saved",
		"username", username,
		"posts", len(res.Posts),
		"comments", comments)
	return nil
}

func (s *IngestImpl) IngestProfiles(ctx context.Context, usernames []string) ingest.Summary {
	start := time.Now()
	defer metrics.ObserveRun("profiles", start)

	errs := s.runPool(ctx, usernames)

	summary := ingest.Summary{}
	for i, username := range usernames {
		if errs[i] != nil {
			summary.Failures = append(summary.Failures, ingest.Failure{Target: username, Message: errs[i].Error()})
			continue
		}
		summary.Succeeded = append(summary.Succeeded, username)
	}

	s.Logger.Info("Profile ingestion finished",
		"succeeded", len(summary.Succeeded),
		"failed", len(summary.Failures))
	return summary
}

// runPool processes usernames on an ants pool. With one worker, the
// default, usernames are handled strictly one after another.
func (s *IngestImpl) runPool(ctx context.Context, usernames []string) []error {
	errs := make([]error, len(usernames))

	pool, err := ants.NewPool(max(s.Config.Ingest.Workers, 1), ants.WithPreAlloc(true))
	if err != nil {
		s.Logger.Warn("Failed to create worker pool, running sequentially", "error", err)
		for i, username := range usernames {
			errs[i] = s.IngestProfile(ctx, username)
		}
		return errs
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for i, username := range usernames {
		if ctx.Err() != nil {
			s.Logger.Info("Skipping job due to context cancellation", "username", username)
			errs[i] = ctx.Err()
			continue
		}

		i, username := i, username
		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()
			errs[i] = s.IngestProfile(ctx, username)
		})
		if err != nil {
			wg.Done()
			s.Logger.Error("Failed to submit job to ants pool", "username", username, "error", err)
			errs[i] = fmt.Errorf("failed to submit job: %w", err)
		}
	}

	wg.Wait()
	return errs
}
