package legacy

import (
	"context"

	"github.com/orgball2608/insta-engagement-ingest/internal/domain"
)

// Counts reports what one migration pass wrote to the document store.
type Counts struct {
	Profiles int
	Posts    int
	Comments int
	Failed   int
}

//go:generate go run go.uber.org/mock/mockgen -source=legacy.go -destination=mocks/mock.go
type Source interface {
	// Profiles returns every stored profile with its bio links.
	Profiles(ctx context.Context) ([]domain.Profile, error)

	// Posts returns a user's posts with their comments attached.
	Posts(ctx context.Context, username string) ([]domain.Post, error)
}
