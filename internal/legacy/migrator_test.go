package legacy_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/orgball2608/insta-engagement-ingest/internal/domain"
	"github.com/orgball2608/insta-engagement-ingest/internal/legacy"
	mock_legacy "github.com/orgball2608/insta-engagement-ingest/internal/legacy/mocks"
	mock_post "github.com/orgball2608/insta-engagement-ingest/internal/repositories/post/mocks"
	mock_profile "github.com/orgball2608/insta-engagement-ingest/internal/repositories/profile/mocks"
	"github.com/orgball2608/insta-engagement-ingest/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type migratorFixture struct {
	migrator *legacy.Migrator
	source   *mock_legacy.MockSource
	profiles *mock_profile.MockRepository
	posts    *mock_post.MockRepository
}

func newMigrator(t *testing.T) migratorFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := migratorFixture{
		source:   mock_legacy.NewMockSource(ctrl),
		profiles: mock_profile.NewMockRepository(ctrl),
		posts:    mock_post.NewMockRepository(ctrl),
	}
	f.migrator = legacy.NewMigrator(legacy.MigratorOpts{
		Source:      f.source,
		ProfileRepo: f.profiles,
		PostRepo:    f.posts,
		Logger:      logger.NewNop(),
	})
	return f
}

func TestMigratorCopiesEverything(t *testing.T) {
	f := newMigrator(t)
	ctx := context.Background()

	fetched := time.Date(2024, 2, 3, 4, 5, 6, 0, time.UTC)
	profiles := []domain.Profile{
		{Username: "zuck", Status: domain.StatusSuccess, FetchedAt: fetched},
		{Username: "cristiano", Status: domain.StatusSuccess, FetchedAt: fetched},
	}
	zuckPosts := []domain.Post{
		{ID: "p1", Username: "zuck", Comments: []domain.Comment{{User: "a", Text: "x"}, {User: "b", Text: "y"}}},
		{ID: "p2", Username: "zuck", Comments: []domain.Comment{}},
	}

	f.source.EXPECT().Profiles(ctx).Return(profiles, nil)
	gomock.InOrder(
		f.profiles.EXPECT().Upsert(ctx, profiles[0]).Return(nil),
		f.source.EXPECT().Posts(ctx, "zuck").Return(zuckPosts, nil),
		f.posts.EXPECT().Upsert(ctx, "zuck", zuckPosts).Return(nil),
		f.posts.EXPECT().UpsertComments(ctx, "p1", zuckPosts[0].Comments).Return(nil),
		f.posts.EXPECT().UpsertComments(ctx, "p2", zuckPosts[1].Comments).Return(nil),
		f.profiles.EXPECT().Upsert(ctx, profiles[1]).Return(nil),
		f.source.EXPECT().Posts(ctx, "cristiano").Return(nil, nil),
		f.posts.EXPECT().Upsert(ctx, "cristiano", nil).Return(nil),
	)

	counts, err := f.migrator.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, legacy.Counts{Profiles: 2, Posts: 2, Comments: 2}, counts)
}

func TestMigratorFillsMissingFetchTime(t *testing.T) {
	f := newMigrator(t)
	ctx := context.Background()

	f.source.EXPECT().Profiles(ctx).Return([]domain.Profile{{Username: "zuck"}}, nil)
	f.profiles.EXPECT().Upsert(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, p domain.Profile) error {
		assert.False(t, p.FetchedAt.IsZero())
		return nil
	})
	f.source.EXPECT().Posts(ctx, "zuck").Return(nil, nil)
	f.posts.EXPECT().Upsert(ctx, "zuck", gomock.Any()).Return(nil)

	_, err := f.migrator.Run(ctx)
	require.NoError(t, err)
}

func TestMigratorSkipsFailingProfile(t *testing.T) {
	f := newMigrator(t)
	ctx := context.Background()

	f.source.EXPECT().Profiles(ctx).Return([]domain.Profile{
		{Username: "broken", FetchedAt: time.Now()},
		{Username: "ok", FetchedAt: time.Now()},
	}, nil)
	f.profiles.EXPECT().Upsert(ctx, gomock.Any()).Return(errors.New("write failed"))
	f.profiles.EXPECT().Upsert(ctx, gomock.Any()).Return(nil)
	f.source.EXPECT().Posts(ctx, "ok").Return([]domain.Post{{ID: "p9"}}, nil)
	f.posts.EXPECT().Upsert(ctx, "ok", gomock.Any()).Return(nil)
	f.posts.EXPECT().UpsertComments(ctx, "p9", gomock.Any()).Return(nil)

	counts, err := f.migrator.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, legacy.Counts{Profiles: 1, Posts: 1, Failed: 1}, counts)
}

func TestMigratorAbortsWhenProfilesUnavailable(t *testing.T) {
	f := newMigrator(t)
	ctx := context.Background()

	f.source.EXPECT().Profiles(ctx).Return(nil, errors.New("connection refused"))

	_, err := f.migrator.Run(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load legacy profiles")
}
