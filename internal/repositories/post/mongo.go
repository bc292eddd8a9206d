package post

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/orgball2608/insta-engagement-ingest/internal/domain"
	"github.com/orgball2608/insta-engagement-ingest/pkg/config"
	"github.com/orgball2608/insta-engagement-ingest/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	collectionName = "posts"
	opTimeout      = 10 * time.Second
)

type Mongo struct {
	coll   *mongo.Collection
	logger logger.Logger
}

func NewMongo(client *mongo.Client, cfg *config.Config, logger logger.Logger) *Mongo {
	return &Mongo{
		coll:   client.Database(cfg.Mongo.Name).Collection(collectionName),
		logger: logger.WithComponent("PostRepo"),
	}
}

var _ Repository = (*Mongo)(nil)

func (m *Mongo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	_, err := m.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "username", Value: 1}, {Key: "timestamp", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create post indexes: %w", err)
	}
	return nil
}

// Upsert writes posts one by one. Each write is atomic on its own; an error
// part way through leaves the earlier posts stored.
func (m *Mongo) Upsert(ctx context.Context, username string, posts []domain.Post) error {
	for _, p := range posts {
		p.Username = username
		if p.Comments == nil {
			p.Comments = []domain.Comment{}
		}

		opCtx, cancel := context.WithTimeout(ctx, opTimeout)
		_, err := m.coll.ReplaceOne(opCtx,
			bson.M{"_id": p.ID},
			p,
			options.Replace().SetUpsert(true),
		)
		cancel()
		if err != nil {
			return fmt.Errorf("failed to upsert post %s: %w", p.ID, err)
		}
	}

	m.logger.Debug("Posts upserted", "username", username, "count", len(posts))
	return nil
}

func (m *Mongo) UpsertComments(ctx context.Context, postID string, comments []domain.Comment) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if comments == nil {
		comments = []domain.Comment{}
	}

	_, err := m.coll.UpdateOne(ctx,
		bson.M{"_id": postID},
		bson.M{"$set": bson.M{"comments": comments}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert comments of post %s: %w", postID, err)
	}
	return nil
}

func (m *Mongo) GetByID(ctx context.Context, postID string) (*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var p domain.Post
	if err := m.coll.FindOne(ctx, bson.M{"_id": postID}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get post %s: %w", postID, err)
	}
	return &p, nil
}

func (m *Mongo) ListByUsername(ctx context.Context, username string, limit int64, descending bool) ([]domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	dir := 1
	if descending {
		dir = -1
	}

	findOpts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: dir}, {Key: "_id", Value: 1}})
	if limit > 0 {
		findOpts.SetLimit(limit)
	}

	cursor, err := m.coll.Find(ctx, bson.M{"username": username}, findOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts of %s: %w", username, err)
	}
	defer cursor.Close(ctx)

	posts := []domain.Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, fmt.Errorf("failed to decode posts: %w", err)
	}
	return posts, nil
}
