package legacypg

import (
	"github.com/orgball2608/insta-engagement-ingest/internal/legacy"
	"github.com/orgball2608/insta-engagement-ingest/pkg/pgx"
	"go.uber.org/fx"
)

var Module = fx.Module("legacy",
	fx.Provide(
		pgx.New,
		fx.Annotate(
			NewPgx,
			fx.As(new(legacy.Source)),
		),
		legacy.NewMigrator,
	),
)
