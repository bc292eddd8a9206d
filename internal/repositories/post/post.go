package post

import (
	"context"
	"errors"

	"github.com/orgball2608/insta-engagement-ingest/internal/domain"
)

var ErrNotFound = errors.New("post not found")

//go:generate go run go.uber.org/mock/mockgen -source=post.go -destination=mocks/mock.go
type Repository interface {
	// Upsert replaces each post by id, or inserts it, tagging it with username.
	Upsert(ctx context.Context, username string, posts []domain.Post) error

	// UpsertComments overwrites only the comments of a post. A placeholder
	// post is created when the id is unknown.
	UpsertComments(ctx context.Context, postID string, comments []domain.Comment) error

	GetByID(ctx context.Context, postID string) (*domain.Post, error)

	// ListByUsername returns a user's posts ordered by timestamp.
	ListByUsername(ctx context.Context, username string, limit int64, descending bool) ([]domain.Post, error)

	EnsureIndexes(ctx context.Context) error
}
