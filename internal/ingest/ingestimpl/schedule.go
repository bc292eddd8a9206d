package ingestimpl

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/orgball2608/insta-engagement-ingest/internal/ingest"
)

var ErrNoSchedule = errors.New("no ingestion schedule configured")

// Schedule registers one cron job that ingests the configured usernames and
// then the configured timeline. The scheduler stops when ctx is done.
func (s *IngestImpl) Schedule(ctx context.Context) error {
	if s.Config.Ingest.Cron == "" {
		return ErrNoSchedule
	}

	loc, err := time.LoadLocation(s.Config.Ingest.Timezone)
	if err != nil {
		loc = time.UTC
		s.Logger.Warn("Failed to load timezone, using UTC", "timezone", s.Config.Ingest.Timezone, "error", err)
	}

	scheduler, err := gocron.NewScheduler(gocron.WithLocation(loc))
	if err != nil {
		return fmt.Errorf("failed to create ingest scheduler: %w", err)
	}

	_, err = scheduler.NewJob(
		gocron.CronJob(s.Config.Ingest.Cron, false),
		gocron.NewTask(func() { s.runScheduled(ctx) }),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule ingestion: %w", err)
	}

	scheduler.Start()
	s.Logger.Info("Ingestion scheduled", "cron", s.Config.Ingest.Cron, "timezone", loc.String())

	go func() {
		<-ctx.Done()
		s.Logger.Info("Stopping ingest scheduler")
		if err := scheduler.Shutdown(); err != nil {
			s.Logger.Error("Failed to shut down ingest scheduler", "error", err)
		}
	}()

	return nil
}

func (s *IngestImpl) runScheduled(ctx context.Context) {
	if ctx.Err() != nil {
		s.Logger.Info("Context cancelled, skipping scheduled ingestion")
		return
	}

	s.Logger.Info("Starting scheduled ingestion")

	if len(s.Config.Scraper.Usernames) > 0 {
		summary := s.IngestProfiles(ctx, s.Config.Scraper.Usernames)
		s.Telegram.SendMessageToUser(fmt.Sprintf("Scheduled profile ingestion finished: %d succeeded, %d failed",
			len(summary.Succeeded), len(summary.Failures)))
	}

	if s.Config.Twitter.BearerToken != "" && s.Config.Twitter.UserID != "" {
		_, err := s.IngestTimeline(ctx, ingest.TimelineRequest{
			AuthorID:  s.Config.Twitter.UserID,
			MaxTweets: s.Config.Twitter.MaxTweets,
			PageSize:  s.Config.Twitter.PageSize,
		})
		if err != nil {
			s.Logger.Error("Scheduled timeline ingestion failed", "error", err)
		}
	}
}
