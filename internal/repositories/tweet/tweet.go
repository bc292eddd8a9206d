package tweet

import (
	"context"

	"github.com/orgball2608/insta-engagement-ingest/internal/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=tweet.go -destination=mocks/mock.go
type Repository interface {
	// InsertMany inserts tweets into the author's collection without
	// stopping at duplicates. Duplicates are counted in the report.
	InsertMany(ctx context.Context, authorID string, tweets []domain.Tweet) (domain.InsertReport, error)

	// ListByAuthor returns the newest tweets first.
	ListByAuthor(ctx context.Context, authorID string, limit int64) ([]domain.Tweet, error)
}

// CollectionName is the per author collection tweets are stored in.
func CollectionName(authorID string) string {
	return "user_" + authorID + "_apiv2"
}
