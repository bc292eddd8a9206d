package ingestimpl

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduleWithoutCron(t *testing.T) {
	f := newFixture(t)

	err := f.svc.Schedule(context.Background())
	assert.ErrorIs(t, err, ErrNoSchedule)
}

func TestScheduleRejectsBadCron(t *testing.T) {
	f := newFixture(t)
	f.cfg.Ingest.Cron = "not a cron"

	err := f.svc.Schedule(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to schedule ingestion")
}

func TestScheduleStartsAndStops(t *testing.T) {
	f := newFixture(t)
	f.cfg.Ingest.Cron = "0 3 * * *"
	f.cfg.Ingest.Timezone = "Nowhere/Invalid"

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, f.svc.Schedule(ctx))
	cancel()
}

func TestRunScheduledSkipsCancelledContext(t *testing.T) {
	f := newFixture(t)
	f.cfg.Scraper.Usernames = []string{"zuck"}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// No mock expectations: nothing may be fetched.
	f.svc.runScheduled(ctx)
}
