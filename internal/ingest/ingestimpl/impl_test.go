package ingestimpl

import (
	"testing"
	"time"

	mock_instagram "github.com/orgball2608/insta-engagement-ingest/internal/instagram/mocks"
	mock_post "github.com/orgball2608/insta-engagement-ingest/internal/repositories/post/mocks"
	mock_profile "github.com/orgball2608/insta-engagement-ingest/internal/repositories/profile/mocks"
	mock_tweet "github.com/orgball2608/insta-engagement-ingest/internal/repositories/tweet/mocks"
	mock_telegram "github.com/orgball2608/insta-engagement-ingest/internal/telegram/mocks"
	mock_timeline "github.com/orgball2608/insta-engagement-ingest/internal/timeline/mocks"
	"github.com/orgball2608/insta-engagement-ingest/pkg/config"
	"github.com/orgball2608/insta-engagement-ingest/pkg/logger"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	svc       *IngestImpl
	instagram *mock_instagram.MockClient
	timeline  *mock_timeline.MockClient
	telegram  *mock_telegram.MockClient
	profiles  *mock_profile.MockRepository
	posts     *mock_post.MockRepository
	tweets    *mock_tweet.MockRepository
	cfg       *config.Config
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &fixture{
		instagram: mock_instagram.NewMockClient(ctrl),
		timeline:  mock_timeline.NewMockClient(ctrl),
		telegram:  mock_telegram.NewMockClient(ctrl),
		profiles:  mock_profile.NewMockRepository(ctrl),
		posts:     mock_post.NewMockRepository(ctrl),
		tweets:    mock_tweet.NewMockRepository(ctrl),
		cfg:       &config.Config{},
	}
	f.cfg.Ingest.Workers = 1
	f.cfg.Ingest.Timezone = "UTC"

	f.svc = New(Opts{
		Instagram:   f.instagram,
		Timeline:    f.timeline,
		Telegram:    f.telegram,
		ProfileRepo: f.profiles,
		PostRepo:    f.posts,
		TweetRepo:   f.tweets,
		Logger:      logger.NewNop(),
		Config:      f.cfg,
	})
	f.svc.now = func() time.Time { return time.Date(2024, 5, 1, 13, 4, 5, 0, time.UTC) }
	return f
}
