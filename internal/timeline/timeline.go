package timeline

import (
	"context"

	"github.com/orgball2608/insta-engagement-ingest/internal/domain"
)

// Page size bounds accepted by the timeline endpoint.
const (
	MinPageSize = 5
	MaxPageSize = 100
)

//go:generate go run go.uber.org/mock/mockgen -source=timeline.go -destination=mocks/mock.go
type Client interface {
	// FetchTweets returns at most maxTweets of the author's tweets. When
	// pagination is cut short the tweets collected so far are returned
	// together with the error.
	FetchTweets(ctx context.Context, authorID string, maxTweets, pageSize int) ([]domain.Tweet, error)
}

func ClampPageSize(n int) int {
	return max(MinPageSize, min(MaxPageSize, n))
}
