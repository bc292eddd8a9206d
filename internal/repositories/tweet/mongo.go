package tweet

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
	duplicateKeyCode = 11000
	opTimeout        = 30 * time.Second
)

type Mongo struct {
	db     *mongo.Database
	logger logger.Logger
}

func NewMongo(client *mongo.Client, cfg *config.Config, logger logger.Logger) *Mongo {
	return &Mongo{
		db:     client.Database(cfg.Mongo.TwitterName),
		logger: logger.WithComponent("TweetRepo"),
	}
}

var _ Repository = (*Mongo)(nil)

func (m *Mongo) InsertMany(ctx context.Context, authorID string, tweets []domain.Tweet) (domain.InsertReport, error) {
	if len(tweets) == 0 {
		return domain.InsertReport{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	docs := make([]any, 0, len(tweets))
	for _, t := range tweets {
		docs = append(docs, t)
	}

	_, err := m.db.Collection(CollectionName(authorID)).InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	if err == nil {
		return domain.InsertReport{Inserted: len(tweets)}, nil
	}

	var bwe mongo.BulkWriteException
	if !errors.As(err, &bwe) {
		return domain.InsertReport{}, fmt.Errorf("failed to insert tweets for %s: %w", authorID, err)
	}

	report := domain.InsertReport{}
	others := 0
	for _, we := range bwe.WriteErrors {
		if we.Code == duplicateKeyCode {
			report.Duplicates++
		} else {
			others++
		}
	}
	report.Inserted = len(tweets) - report.Duplicates - others

	if others > 0 || bwe.WriteConcernError != nil {
		return report, fmt.Errorf("failed to insert %d tweets for %s: %w", others, authorID, err)
	}

	m.logger.Info("Skipped tweets already stored",
		"author_id", authorID,
		"inserted", report.Inserted,
		"duplicates", report.Duplicates)
	return report, nil
}

func (m *Mongo) ListByAuthor(ctx context.Context, authorID string, limit int64) ([]domain.Tweet, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	findOpts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	if limit > 0 {
		findOpts.SetLimit(limit)
	}

	cursor, err := m.db.Collection(CollectionName(authorID)).Find(ctx, bson.M{}, findOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to query tweets for %s: %w", authorID, err)
	}
	defer cursor.Close(ctx)

	tweets := []domain.Tweet{}
	if err := cursor.All(ctx, &tweets); err != nil {
		return nil, fmt.Errorf("failed to decode tweets: %w", err)
	}
	return tweets, nil
}
