package profile

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/orgball2608/insta-engagement-ingest/internal/domain"
	"github.com/orgball2608/insta-engagement-ingest/pkg/config"
	"github.com/orgball2608/insta-engagement-ingest/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	collectionName = "profiles"
	opTimeout      = 10 * time.Second
)

type Mongo struct {
	coll   *mongo.Collection
	logger logger.Logger
}

func NewMongo(client *mongo.Client, cfg *config.Config, logger logger.Logger) *Mongo {
	return &Mongo{
		coll:   client.Database(cfg.Mongo.Name).Collection(collectionName),
		logger: logger.WithComponent("ProfileRepo"),
	}
}

var _ Repository = (*Mongo)(nil)

func (m *Mongo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	_, err := m.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "follower_count", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create profile indexes: %w", err)
	}
	return nil
}

// Upsert replaces the whole document, so fields missing from profile are
// cleared rather than kept from an older fetch.
func (m *Mongo) Upsert(ctx context.Context, profile domain.Profile) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if profile.BioLinks == nil {
		profile.BioLinks = []domain.BioLink{}
	}

	_, err := m.coll.ReplaceOne(ctx,
		bson.M{"username": profile.Username},
		profile,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert profile %s: %w", profile.Username, err)
	}

	m.logger.Debug("Profile upserted", "username", profile.Username)
	return nil
}

func (m *Mongo) GetByUsername(ctx context.Context, username string) (*domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var p domain.Profile
	err := m.coll.FindOne(ctx, bson.M{"username": username}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get profile %s: %w", username, err)
	}
	return &p, nil
}

func (m *Mongo) List(ctx context.Context, opts ListOptions) ([]domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	dir := 1
	if opts.Descending {
		dir = -1
	}

	findOpts := options.Find().
		SetSort(bson.D{{Key: "follower_count", Value: dir}, {Key: "username", Value: 1}}).
		SetSkip(max(opts.Offset, 0))
	if opts.Limit > 0 {
		findOpts.SetLimit(opts.Limit)
	}

	return m.find(ctx, bson.M{}, findOpts)
}

func (m *Mongo) Search(ctx context.Context, term string, limit int64) ([]domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}
	filter := bson.M{"$or": bson.A{
		bson.M{"username": pattern},
		bson.M{"full_name": pattern},
	}}

	findOpts := options.Find().SetSort(bson.D{{Key: "username", Value: 1}})
	if limit > 0 {
		findOpts.SetLimit(limit)
	}

	return m.find(ctx, filter, findOpts)
}

func (m *Mongo) find(ctx context.Context, filter any, opts *options.FindOptions) ([]domain.Profile, error) {
	cursor, err := m.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query profiles: %w", err)
	}
	defer cursor.Close(ctx)

	profiles := []domain.Profile{}
	if err := cursor.All(ctx, &profiles); err != nil {
		return nil, fmt.Errorf("failed to decode profiles: %w", err)
	}
	return profiles, nil
}
