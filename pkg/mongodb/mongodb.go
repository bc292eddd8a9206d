package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/orgball2608/insta-engagement-ingest/pkg/config"
	"github.com/orgball2608/insta-engagement-ingest/pkg/logger"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/fx"
)

// Opts holds dependencies for creating a mongo client.
type Opts struct {
	fx.In
	LC     fx.Lifecycle
	Logger logger.Logger
	Config *config.Config
}

// New creates the process wide mongo client and ties it to the fx lifecycle:
// pinged on start, disconnected on stop.
func New(opts Opts) (*mongo.Client, error) {
	timeout := opts.Config.Mongo.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	client, err := mongo.Connect(context.Background(),
		options.Client().
			ApplyURI(opts.Config.Mongo.URI).
			SetConnectTimeout(timeout).
			SetServerSelectionTimeout(timeout),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mongo client: %w", err)
	}

	opts.LC.Append(
		fx.Hook{
			OnStart: func(ctx context.Context) error {
				pingCtx, cancel := context.WithTimeout(ctx, timeout)
				defer cancel()

				if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
					return fmt.Errorf("failed to ping mongo: %w", err)
				}
				opts.Logger.Info("Connected to mongo", "database", opts.Config.Mongo.Name)
				return nil
			},
			OnStop: func(ctx context.Context) error {
				if err := client.Disconnect(ctx); err != nil {
					return fmt.Errorf("failed to disconnect mongo: %w", err)
				}
				opts.Logger.Info("Disconnected from mongo")
				return nil
			},
		},
	)

	return client, nil
}
