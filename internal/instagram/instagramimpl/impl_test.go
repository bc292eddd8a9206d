package instagramimpl

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/orgball2608/insta-engagement-ingest/internal/domain"
	"github.com/orgball2608/insta-engagement-ingest/internal/ratelimit"
	"github.com/orgball2608/insta-engagement-ingest/pkg/config"
	"github.com/orgball2608/insta-engagement-ingest/pkg/logger"
	"github.com/orgball2608/insta-engagement-ingest/pkg/retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fetchedAt = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newTestClient(t *testing.T, mux *http.ServeMux) *InstaImpl {
	t.Helper()

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	cfg := &config.Config{}
	cfg.Scraper.ProfileURL = srv.URL + "/v1/info"
	cfg.Scraper.PostsURL = srv.URL + "/v1.2/posts"
	cfg.Scraper.CommentsURL = srv.URL + "/v1/comments"
	cfg.Scraper.APIKey = "secret"
	cfg.Scraper.Host = "scraper.test"
	cfg.Scraper.Timeout = 5 * time.Second

	c := New(Opts{
		Config:  cfg,
		Logger:  logger.NewNop(),
		Limiter: ratelimit.NewInMemoryLimiter(0, 0),
	})
	c.retry = retry.Config{MaxRetries: 0, InitialInterval: time.Millisecond, MaxInterval: time.Millisecond, Multiplier: 1}
	c.now = func() time.Time { return fetchedAt }
	return c
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

const taylorProfile = `{"data":{
	"username":"taylorswift",
	"full_name":"Taylor Swift",
	"follower_count":283000000,
	"following_count":0,
	"media_count":700,
	"is_verified":true,
	"is_private":false,
	"is_business":true,
	"category":"Musician",
	"biography":"hi",
	"bio_links":[{"title":"store","url":"https://store.example"}],
	"external_url":"https://example.com",
	"profile_pic_url_hd":"https://cdn.example/pic.jpg"
}}`

func TestFetchProfileSuccess(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/info", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.Header.Get("x-rapidapi-key"))
		assert.Equal(t, "scraper.test", r.Header.Get("x-rapidapi-host"))
		assert.Equal(t, "taylorswift", r.URL.Query().Get("username_or_id_or_url"))
		writeJSON(w, http.StatusOK, taylorProfile)
	})
	mux.HandleFunc("/v1.2/posts", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"data":{"items":[
			{"id":"111","code":"AbC","thumbnail_url":"https://t/1","like_count":10,"comment_count":2,"caption":{"text":"first"},"taken_at_timestamp":1700000000},
			{"code":"no-id"},
			{"id":"222","caption":null,"taken_at":1700000100}
		]}}`)
	})
	mux.HandleFunc("/v1/comments", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "popular", r.URL.Query().Get("sort_by"))
		switch r.URL.Query().Get("code_or_id_or_url") {
		case "111":
			writeJSON(w, http.StatusOK, `{"data":{"items":[
				{"user":{"username":"fan1"},"text":"love it"},
				{"text":"anonymous"},
				{"user":{"username":"fan2"}}
			]}}`)
		default:
			writeJSON(w, http.StatusInternalServerError, `{"message":"boom"}`)
		}
	})

	res := newTestClient(t, mux).FetchProfile(context.Background(), "taylorswift")

	require.Equal(t, domain.StatusSuccess, res.Status)
	require.False(t, res.Failed())
	require.NotNil(t, res.Profile)
	require.Equal(t, "taylorswift", res.Profile.Username)
	require.Equal(t, "Taylor Swift", *res.Profile.FullName)
	require.Equal(t, int64(283000000), *res.Profile.FollowerCount)
	require.Equal(t, domain.AccountTypeBusiness, res.Profile.AccountType)
	require.Equal(t, []domain.BioLink{{Title: "store", URL: "https://store.example"}}, res.Profile.BioLinks)
	require.Equal(t, fetchedAt, res.Profile.FetchedAt)

	require.Len(t, res.Posts, 2)

	first := res.Posts[0]
	require.Equal(t, "111", first.ID)
	require.Equal(t, "taylorswift", first.Username)
	require.Equal(t, "first", first.Caption)
	require.Equal(t, int64(10), first.LikeCount)
	require.Equal(t, time.Unix(1700000000, 0).UTC(), *first.Timestamp)
	require.Equal(t, []domain.Comment{
		{User: "fan1", Text: "love it"},
		{User: domain.UnknownCommentUser, Text: "anonymous"},
		{User: "fan2", Text: domain.UnknownCommentText},
	}, first.Comments)

	second := res.Posts[1]
	require.Equal(t, "222", second.ID)
	require.Equal(t, "", second.Caption)
	require.Equal(t, int64(0), second.LikeCount)
	require.Nil(t, second.Code)
	require.Equal(t, time.Unix(1700000100, 0).UTC(), *second.Timestamp)
	require.NotNil(t, second.Comments)
	require.Empty(t, second.Comments)
}

func TestFetchProfilePostFailureKeepsSuccess(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/info", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, taylorProfile)
	})
	mux.HandleFunc("/v1.2/posts", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadGateway, `{}`)
	})

	res := newTestClient(t, mux).FetchProfile(context.Background(), "taylorswift")

	require.Equal(t, domain.StatusSuccess, res.Status)
	require.NotNil(t, res.Posts)
	require.Empty(t, res.Posts)
}

func TestFetchProfileFailureRecord(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/info", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, `{"detail":"not found"}`)
	})

	res := newTestClient(t, mux).FetchProfile(context.Background(), "ghost")

	require.Equal(t, domain.StatusFailed, res.Status)
	require.True(t, res.Failed())
	require.Equal(t, "ghost", res.Username)
	require.NotNil(t, res.StatusCode)
	require.Equal(t, http.StatusNotFound, *res.StatusCode)
	require.NotEmpty(t, res.Message)
	require.Nil(t, res.Profile)
}

func TestFetchProfileTransportFailure(t *testing.T) {
	mux := http.NewServeMux()
	c := newTestClient(t, mux)
	c.profileURL = "http://127.0.0.1:1/unreachable"

	res := c.FetchProfile(context.Background(), "zuck")

	require.Equal(t, domain.StatusFailed, res.Status)
	require.Nil(t, res.StatusCode)
}

func TestFetchProfileRetriesServerErrors(t *testing.T) {
	var attempts atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/info", func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) == 1 {
			writeJSON(w, http.StatusServiceUnavailable, `{}`)
			return
		}
		writeJSON(w, http.StatusOK, `{"data":{"username":"zuck"}}`)
	})
	mux.HandleFunc("/v1.2/posts", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"data":{"items":[]}}`)
	})

	c := newTestClient(t, mux)
	c.retry.MaxRetries = 2

	res := c.FetchProfile(context.Background(), "zuck")

	require.Equal(t, domain.StatusSuccess, res.Status)
	require.Equal(t, int32(2), attempts.Load())
}

func TestFetchProfileWaitsForRetryAfter(t *testing.T) {
	var (
		attempts atomic.Int32
		first    atomic.Int64
		second   atomic.Int64
	)
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/info", func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) == 1 {
			first.Store(time.Now().UnixNano())
			w.Header().Set("Retry-After", "1")
			writeJSON(w, http.StatusTooManyRequests, `{}`)
			return
		}
		second.Store(time.Now().UnixNano())
		writeJSON(w, http.StatusOK, `{"data":{"username":"zuck"}}`)
	})
	mux.HandleFunc("/v1.2/posts", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"data":{"items":[]}}`)
	})

	c := newTestClient(t, mux)
	c.retry.MaxRetries = 1

	res := c.FetchProfile(context.Background(), "zuck")

	require.Equal(t, domain.StatusSuccess, res.Status)
	require.Equal(t, int32(2), attempts.Load())
	require.GreaterOrEqual(t, time.Duration(second.Load()-first.Load()), time.Second)
}

func TestFetchProfileDefaults(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/info", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"data":{"full_name":null,"bio_links":"oops"}}`)
	})
	mux.HandleFunc("/v1.2/posts", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"data":[]}`)
	})

	res := newTestClient(t, mux).FetchProfile(context.Background(), "cristiano")

	require.Equal(t, domain.StatusSuccess, res.Status)
	require.Equal(t, "cristiano", res.Profile.Username)
	require.Equal(t, domain.AccountTypePersonal, res.Profile.AccountType)
	require.Nil(t, res.Profile.FullName)
	require.Nil(t, res.Profile.FollowerCount)
	require.NotNil(t, res.Profile.BioLinks)
	require.Empty(t, res.Profile.BioLinks)
	require.Empty(t, res.Posts)
}

func TestFetchCommentsPropagatesErrors(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/comments", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusForbidden, `{}`)
	})

	_, err := newTestClient(t, mux).FetchComments(context.Background(), "1")
	require.Error(t, err)
	require.Contains(t, err.Error(), fmt.Sprint(http.StatusForbidden))
}
