package legacypg

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"
	"github.com/orgball2608/insta-engagement-ingest/internal/domain"
	_ "github.com/orgball2608/insta-engagement-ingest/internal/migrations"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

var dsn string

func TestMain(m *testing.M) {
	flag.Parse()

	var stop func()
	if !testing.Short() {
		dsn, stop = startPostgres()
	}

	code := m.Run()
	if stop != nil {
		stop()
	}
	os.Exit(code)
}

func startPostgres() (url string, stop func()) {
	ctx := context.Background()

	// suppress logging
	testcontainers.Logger = log.New(io.Discard, "", 0)

	defer func() {
		if r := recover(); r != nil {
			url, stop = "", nil
		}
	}()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		Started: true,
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "legacy",
				"POSTGRES_PASSWORD": "legacy",
				"POSTGRES_DB":       "insta_engagement",
			},
			WaitingFor: wait.ForAll(
				wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
				wait.ForListeningPort("5432/tcp"),
			).WithDeadline(2 * time.Minute),
		},
	})
	if err != nil {
		return "", nil
	}

	terminate := func() { _ = container.Terminate(ctx) }

	host, err := container.Host(ctx)
	if err != nil {
		terminate()
		return "", nil
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		terminate()
		return "", nil
	}

	url = fmt.Sprintf("postgres://legacy:legacy@%s:%s/insta_engagement?sslmode=disable", host, port.Port())
	if err := migrate(ctx, url); err != nil {
		terminate()
		return "", nil
	}
	return url, terminate
}

func migrate(ctx context.Context, url string) error {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}

func newSource(t *testing.T) (*Pgx, *pgxpool.Pool) {
	t.Helper()
	if dsn == "" {
		t.Skip("postgres container not available")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), "TRUNCATE instagram_profiles CASCADE")
		pool.Close()
	})
	return NewPgx(pool), pool
}

func TestProfilesWithBioLinks(t *testing.T) {
	src, pool := newSource(t)
	ctx := context.Background()

	_, err := pool.Exec(ctx, `
		INSERT INTO instagram_profiles (username, full_name, follower_count, is_verified, account_type, status)
		VALUES ('zuck', 'Mark', 1000, true, 'Business', 'success'),
		       ('abc', NULL, NULL, NULL, NULL, NULL);
		INSERT INTO bio_links (username, title, url) VALUES
		       ('zuck', 'Meta', 'https://meta.com'),
		       ('zuck', 'Threads', 'https://threads.net');
	`)
	require.NoError(t, err)

	profiles, err := src.Profiles(ctx)
	require.NoError(t, err)
	require.Len(t, profiles, 2)

	abc := profiles[0]
	require.Equal(t, "abc", abc.Username)
	require.Nil(t, abc.FullName)
	require.Nil(t, abc.FollowerCount)
	require.Equal(t, domain.AccountTypePersonal, abc.AccountType)
	require.Equal(t, domain.StatusSuccess, abc.Status)
	require.Empty(t, abc.BioLinks)

	zuck := profiles[1]
	require.Equal(t, "Mark", *zuck.FullName)
	require.Equal(t, int64(1000), *zuck.FollowerCount)
	require.Equal(t, domain.AccountTypeBusiness, zuck.AccountType)
	if diff := cmp.Diff([]domain.BioLink{
		{Title: "Meta", URL: "https://meta.com"},
		{Title: "Threads", URL: "https://threads.net"},
	}, zuck.BioLinks); diff != "" {
		t.Errorf("bio links mismatch (-want +got):\n%s", diff)
	}
}

func TestPostsWithComments(t *testing.T) {
	src, pool := newSource(t)
	ctx := context.Background()

	_, err := pool.Exec(ctx, `
		INSERT INTO instagram_profiles (username) VALUES ('zuck');
		INSERT INTO instagram_posts (id, username, code, like_count, comment_count, caption, timestamp) VALUES
		       ('p1', 'zuck', 'C1', 10, 2, 'first', '2024-01-01T10:00:00Z'),
		       ('p2', 'zuck', NULL, NULL, NULL, NULL, '2024-01-02T10:00:00Z');
		INSERT INTO instagram_comments (post_id, username, comment) VALUES
		       ('p1', 'fan', 'nice'),
		       ('p1', NULL, NULL);
	`)
	require.NoError(t, err)

	posts, err := src.Posts(ctx, "zuck")
	require.NoError(t, err)
	require.Len(t, posts, 2)

	require.Equal(t, "p1", posts[0].ID)
	require.Equal(t, "C1", *posts[0].Code)
	require.Equal(t, int64(10), posts[0].LikeCount)
	require.Equal(t, "first", posts[0].Caption)
	require.True(t, posts[0].Timestamp.Equal(time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)))
	if diff := cmp.Diff([]domain.Comment{
		{User: "fan", Text: "nice"},
		{User: domain.UnknownCommentUser, Text: domain.UnknownCommentText},
	}, posts[0].Comments); diff != "" {
		t.Errorf("comments mismatch (-want +got):\n%s", diff)
	}

	require.Equal(t, "p2", posts[1].ID)
	require.Nil(t, posts[1].Code)
	require.Zero(t, posts[1].LikeCount)
	require.Equal(t, "", posts[1].Caption)
	require.Equal(t, []domain.Comment{}, posts[1].Comments)
}

func TestPostsOfUnknownUser(t *testing.T) {
	src, _ := newSource(t)

	posts, err := src.Posts(context.Background(), "nobody")
	require.NoError(t, err)
	require.Empty(t, posts)
}
