package profile

import (
	"context"
	"errors"

	"github.com/orgball2608/insta-engagement-ingest/internal/domain"
)

var ErrNotFound = errors.New("profile not found")

type ListOptions struct {
	Offset     int64
	Limit      int64
	Descending bool
}

//go:generate go run go.uber.org/mock/mockgen -source=profile.go -destination=mocks/mock.go
type Repository interface {
	// Upsert replaces the stored profile with the same username, or inserts it.
	Upsert(ctx context.Context, profile domain.Profile) error

	GetByUsername(ctx context.Context, username string) (*domain.Profile, error)

	// List returns profiles ordered by follower count.
	List(ctx context.Context, opts ListOptions) ([]domain.Profile, error)

	// Search matches term case-insensitively anywhere in username or full name.
	Search(ctx context.Context, term string, limit int64) ([]domain.Profile, error)

	EnsureIndexes(ctx context.Context) error
}
