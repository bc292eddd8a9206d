package instagram

import (
	"context"

	"github.com/orgball2608/insta-engagement-ingest/internal/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=instagram.go -destination=mocks/mock.go
type Client interface {
	// FetchProfile never fails: upstream faults come back as a failed FetchResult.
	FetchProfile(ctx context.Context, username string) domain.FetchResult

	FetchPosts(ctx context.Context, username string) ([]domain.Post, error)

	// FetchComments returns a post's comments in popularity order.
	FetchComments(ctx context.Context, postID string) ([]domain.Comment, error)
}
