package legacy

import (
	"context"
	"fmt"
	"time"

	"github.com/orgball2608/insta-engagement-ingest/internal/repositories/post"
	"github.com/orgball2608/insta-engagement-ingest/internal/repositories/profile"
	"github.com/orgball2608/insta-engagement-ingest/pkg/logger"
	"go.uber.org/fx"
)

type MigratorOpts struct {
	fx.In

	Source      Source
	ProfileRepo profile.Repository
	PostRepo    post.Repository
	Logger      logger.Logger
}

// Migrator copies the relational store into the document store using the
// same upserts as live ingestion, so a pass can be repeated.
type Migrator struct {
	source   Source
	profiles profile.Repository
	posts    post.Repository
	logger   logger.Logger
	now      func() time.Time
}

func NewMigrator(opts MigratorOpts) *Migrator {
	return &Migrator{
		source:   opts.Source,
		profiles: opts.ProfileRepo,
		posts:    opts.PostRepo,
		logger:   opts.Logger.WithComponent("LegacyMigrator"),
		now:      time.Now,
	}
}

// Run performs one pass. A failing profile is counted and skipped; only a
// failure to list profiles aborts the pass.
func (m *Migrator) Run(ctx context.Context) (Counts, error) {
	counts := Counts{}

	profiles, err := m.source.Profiles(ctx)
	if err != nil {
		return counts, fmt.Errorf("failed to load legacy profiles: %w", err)
	}
	m.logger.Info("Migrating legacy profiles", "count", len(profiles))

	for _, p := range profiles {
		if ctx.Err() != nil {
			return counts, ctx.Err()
		}

		if p.FetchedAt.IsZero() {
			p.FetchedAt = m.now().UTC()
		}
		if err := m.profiles.Upsert(ctx, p); err != nil {
			counts.Failed++
			m.logger.Error("Failed to migrate profile", "username", p.Username, "error", err)
			continue
		}
		counts.Profiles++

		posts, err := m.source.Posts(ctx, p.Username)
		if err != nil {
			counts.Failed++
			m.logger.Error("Failed to load legacy posts", "username", p.Username, "error", err)
			continue
		}
		if err := m.posts.Upsert(ctx, p.Username, posts); err != nil {
			counts.Failed++
			m.logger.Error("Failed to migrate posts", "username", p.Username, "error", err)
			continue
		}
		counts.Posts += len(posts)

		for _, post := range posts {
			if err := m.posts.UpsertComments(ctx, post.ID, post.Comments); err != nil {
				counts.Failed++
				m.logger.Error("Failed to migrate comments", "post_id", post.ID, "error", err)
				continue
			}
			counts.Comments += len(post.Comments)
		}
	}

	m.logger.Info("Legacy migration finished",
		"profiles", counts.Profiles,
		"posts", counts.Posts,
		"comments", counts.Comments,
		"failed", counts.Failed)
	return counts, nil
}
