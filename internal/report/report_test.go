package report

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/orgball2608/insta-engagement-ingest/internal/domain"
	mock_post "github.com/orgball2608/insta-engagement-ingest/internal/repositories/post/mocks"
	"github.com/orgball2608/insta-engagement-ingest/internal/repositories/profile"
	mock_profile "github.com/orgball2608/insta-engagement-ingest/internal/repositories/profile/mocks"
	mock_tweet "github.com/orgball2608/insta-engagement-ingest/internal/repositories/tweet/mocks"
	"github.com/orgball2608/insta-engagement-ingest/pkg/config"
	"github.com/orgball2608/insta-engagement-ingest/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func ptr[T any](v T) *T { return &v }

func sampleProfile() domain.Profile {
	return domain.Profile{
		Username:      "zuck",
		FullName:      ptr("Mark Zuckerberg"),
		FollowerCount: ptr(int64(15234567)),
		MediaCount:    ptr(int64(300)),
		IsVerified:    ptr(true),
		Biography:     ptr("Building things"),
		BioLinks:      []domain.BioLink{{Title: "", URL: "https://meta.com"}},
		AccountType:   domain.AccountTypeBusiness,
		Status:        domain.StatusSuccess,
	}
}

func TestRendererProfile(t *testing.T) {
	var buf bytes.Buffer
	ts := time.Date(2024, 3, 4, 5, 6, 7, 0, time.UTC)

	NewRenderer(&buf).Profile(sampleProfile(), []domain.Post{
		{ID: "p1", LikeCount: 1200, CommentCount: 3, Caption: "hello", Timestamp: &ts,
			Comments: []domain.Comment{{User: "fan", Text: "great"}}},
		{ID: "p2"},
	})
	out := buf.String()

	assert.Contains(t, out, "Instagram Profile: zuck")
	assert.Contains(t, out, "15,234,567")
	assert.Contains(t, out, "Mark Zuckerberg")
	assert.Contains(t, out, "N/A")
	assert.Contains(t, out, "Building things")
	assert.Contains(t, out, "Link")
	assert.Contains(t, out, "https://meta.com")
	assert.Contains(t, out, "Post ID: p1 (Likes: 1,200, Comments: 3)")
	assert.Contains(t, out, "2024-03-04 05:06:07")
	assert.Contains(t, out, "great")
	assert.Contains(t, out, "Caption: [No caption]")
	assert.Contains(t, out, "No comments")
}

func TestRendererWrapsLongCaptions(t *testing.T) {
	var buf bytes.Buffer
	caption := strings.Repeat("word ", 40)

	NewRenderer(&buf).Profile(domain.Profile{Username: "u"}, []domain.Post{{ID: "p", Caption: caption}})

	for _, line := range strings.Split(buf.String(), "\n") {
		if strings.HasPrefix(line, "Caption: ") {
			assert.LessOrEqual(t, len(strings.TrimPrefix(line, "Caption: ")), captionWidth)
		}
	}
}

func TestRendererSearchResultsEmpty(t *testing.T) {
	var buf bytes.Buffer
	NewRenderer(&buf).SearchResults("nobody", nil)
	assert.Contains(t, buf.String(), `No matching profiles found for "nobody".`)
}

type reporterFixture struct {
	reporter *Reporter
	profiles *mock_profile.MockRepository
	posts    *mock_post.MockRepository
	tweets   *mock_tweet.MockRepository
}

func newReporter(t *testing.T) reporterFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := reporterFixture{
		profiles: mock_profile.NewMockRepository(ctrl),
		posts:    mock_post.NewMockRepository(ctrl),
		tweets:   mock_tweet.NewMockRepository(ctrl),
	}

	cfg := &config.Config{}
	cfg.Query.Limit = 15
	cfg.Query.SearchLimit = 10
	cfg.Query.ProfileSort = "desc"
	cfg.Query.PostSort = "asc"

	f.reporter = New(Opts{
		ProfileRepo: f.profiles,
		PostRepo:    f.posts,
		TweetRepo:   f.tweets,
		Logger:      logger.NewNop(),
		Config:      cfg,
	})
	return f
}

func TestReporterRun(t *testing.T) {
	f := newReporter(t)
	ctx := context.Background()
	p := sampleProfile()
	text := "hello world"

	f.profiles.EXPECT().GetByUsername(ctx, "zuck").Return(&p, nil)
	f.profiles.EXPECT().GetByUsername(ctx, "ghost").Return(nil, profile.ErrNotFound)
	f.posts.EXPECT().ListByUsername(ctx, "zuck", int64(15), false).Return([]domain.Post{{ID: "p1"}}, nil)
	f.profiles.EXPECT().List(ctx, profile.ListOptions{Limit: 15, Descending: true}).Return([]domain.Profile{p}, nil)
	f.profiles.EXPECT().Search(ctx, "mark", int64(10)).Return([]domain.Profile{p}, nil)
	f.tweets.EXPECT().ListByAuthor(ctx, "42", int64(15)).Return([]domain.Tweet{
		{ID: "t1", Text: &text, PublicMetrics: map[string]any{"like_count": int64(2500)}},
	}, nil)

	var buf bytes.Buffer
	err := f.reporter.Run(ctx, &buf, Request{Usernames: []string{"zuck", "ghost"}, Search: "mark", AuthorID: "42"})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Post ID: p1")
	assert.Contains(t, out, "Profile not found: ghost")
	assert.Contains(t, out, "Stored profiles:")
	assert.Contains(t, out, `Search results for "mark":`)
	assert.Contains(t, out, "Latest tweets of author 42:")
	assert.Contains(t, out, "hello world")
	assert.Contains(t, out, "2,500")
}

func TestReporterRunListFailure(t *testing.T) {
	f := newReporter(t)
	ctx := context.Background()

	f.profiles.EXPECT().List(ctx, gomock.Any()).Return(nil, errors.New("timeout"))

	err := f.reporter.Run(ctx, &bytes.Buffer{}, Request{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list profiles")
}
