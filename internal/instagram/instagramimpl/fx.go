package instagramimpl

import (
	"github.com/orgball2608/insta-engagement-ingest/internal/instagram"
	"go.uber.org/fx"
)

var Module = fx.Module("instagram_client",
	fx.Provide(
		fx.Annotate(
			New,
			fx.As(new(instagram.Client)),
		),
	),
)
