package legacypg

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/orgball2608/insta-engagement-ingest/internal/domain"
	"github.com/orgball2608/insta-engagement-ingest/internal/legacy"
	"github.com/orgball2608/insta-engagement-ingest/internal/repository"
)

func NewPgx(pg *pgxpool.Pool) *Pgx {
	return &Pgx{
		pg: pg,
	}
}

var _ legacy.Source = (*Pgx)(nil)

type Pgx struct {
	pg *pgxpool.Pool
}

type profileRow struct {
	Username        string
	FullName        *string
	FollowerCount   *int64
	FollowingCount  *int64
	MediaCount      *int64
	IsVerified      *bool
	IsPrivate       *bool
	Category        *string
	Biography       *string
	ExternalURL     *string
	ProfilePicURLHD *string
	AccountType     *string
	Status          *string
	UpdatedAt       *time.Time
}

func (p *Pgx) Profiles(ctx context.Context) ([]domain.Profile, error) {
	query, args, err := repository.SqBuilder.
		Select(
			"username", "full_name", "follower_count", "following_count", "media_count",
			"is_verified", "is_private", "category", "biography", "external_url",
			"profile_pic_url_hd", "account_type", "status", "updated_at",
		).
		From("instagram_profiles").
		OrderBy("username").
		ToSql()
	if err != nil {
		return nil, repository.ErrBadQuery
	}

	rows, err := p.pg.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query profiles: %w", err)
	}
	defer rows.Close()

	var profiles []domain.Profile
	for rows.Next() {
		r := profileRow{}
		err := rows.Scan(
			&r.Username, &r.FullName, &r.FollowerCount, &r.FollowingCount, &r.MediaCount,
			&r.IsVerified, &r.IsPrivate, &r.Category, &r.Biography, &r.ExternalURL,
			&r.ProfilePicURLHD, &r.AccountType, &r.Status, &r.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		profiles = append(profiles, r.toDomain())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read profiles: %w", err)
	}

	links, err := p.bioLinks(ctx)
	if err != nil {
		return nil, err
	}
	for i := range profiles {
		profiles[i].BioLinks = links[profiles[i].Username]
		if profiles[i].BioLinks == nil {
			profiles[i].BioLinks = []domain.BioLink{}
		}
	}

	return profiles, nil
}

func (r profileRow) toDomain() domain.Profile {
	profile := domain.Profile{
		Username:        r.Username,
		FullName:        r.FullName,
		FollowerCount:   r.FollowerCount,
		FollowingCount:  r.FollowingCount,
		MediaCount:      r.MediaCount,
		IsVerified:      r.IsVerified,
		IsPrivate:       r.IsPrivate,
		Category:        r.Category,
		Biography:       r.Biography,
		ExternalURL:     r.ExternalURL,
		ProfilePicURLHD: r.ProfilePicURLHD,
		AccountType:     domain.AccountTypePersonal,
		Status:          domain.StatusSuccess,
	}
	if r.AccountType != nil && *r.AccountType != "" {
		profile.AccountType = *r.AccountType
	}
	if r.Status != nil && *r.Status != "" {
		profile.Status = *r.Status
	}
	if r.UpdatedAt != nil {
		profile.FetchedAt = r.UpdatedAt.UTC()
	}
	return profile
}

// bioLinks loads every bio link, grouped by username in insertion order.
func (p *Pgx) bioLinks(ctx context.Context) (map[string][]domain.BioLink, error) {
	query, args, err := repository.SqBuilder.
		Select("username", "title", "url").
		From("bio_links").
		OrderBy("username", "id").
		ToSql()
	if err != nil {
		return nil, repository.ErrBadQuery
	}

	rows, err := p.pg.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query bio links: %w", err)
	}
	defer rows.Close()

	links := map[string][]domain.BioLink{}
	for rows.Next() {
		var username string
		var title, url *string
		if err := rows.Scan(&username, &title, &url); err != nil {
			return nil, fmt.Errorf("failed to scan bio link: %w", err)
		}
		links[username] = append(links[username], domain.BioLink{Title: deref(title), URL: deref(url)})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read bio links: %w", err)
	}
	return links, nil
}

func (p *Pgx) Posts(ctx context.Context, username string) ([]domain.Post, error) {
	query, args, err := repository.SqBuilder.
		Select("id", "code", "thumbnail_url", "like_count", "comment_count", "caption", "timestamp").
		From("instagram_posts").
		Where(sq.Eq{"username": username}).
		OrderBy("timestamp", "id").
		ToSql()
	if err != nil {
		return nil, repository.ErrBadQuery
	}

	rows, err := p.pg.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts of %s: %w", username, err)
	}
	defer rows.Close()

	var posts []domain.Post
	var ids []string
	for rows.Next() {
		var (
			post            domain.Post
			likes, comments *int64
			caption         *string
			timestamp       *time.Time
		)
		err := rows.Scan(&post.ID, &post.Code, &post.ThumbnailURL, &likes, &comments, &caption, &timestamp)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		post.Username = username
		post.LikeCount = derefInt(likes)
		post.CommentCount = derefInt(comments)
		post.Caption = deref(caption)
		if timestamp != nil {
			t := timestamp.UTC()
			post.Timestamp = &t
		}
		posts = append(posts, post)
		ids = append(ids, post.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read posts: %w", err)
	}
	if len(posts) == 0 {
		return posts, nil
	}

	byPost, err := p.comments(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range posts {
		posts[i].Comments = byPost[posts[i].ID]
		if posts[i].Comments == nil {
			posts[i].Comments = []domain.Comment{}
		}
	}
	return posts, nil
}

func (p *Pgx) comments(ctx context.Context, postIDs []string) (map[string][]domain.Comment, error) {
	query, args, err := repository.SqBuilder.
		Select("post_id", "username", "comment").
		From("instagram_comments").
		Where(sq.Eq{"post_id": postIDs}).
		OrderBy("post_id", "id").
		ToSql()
	if err != nil {
		return nil, repository.ErrBadQuery
	}

	rows, err := p.pg.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}
	defer rows.Close()

	out := map[string][]domain.Comment{}
	for rows.Next() {
		var postID string
		var user, text *string
		if err := rows.Scan(&postID, &user, &text); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		out[postID] = append(out[postID], domain.Comment{
			User: orDefault(user, domain.UnknownCommentUser),
			Text: orDefault(text, domain.UnknownCommentText),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read comments: %w", err)
	}
	return out, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt(n *int64) int64 {
	if n == nil {
		return 0
	}
	return *n
}

func orDefault(s *string, def string) string {
	if s == nil || *s == "" {
		return def
	}
	return *s
}
