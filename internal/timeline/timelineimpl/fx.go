package timelineimpl

import (
	"github.com/orgball2608/insta-engagement-ingest/internal/timeline"
	"go.uber.org/fx"
)

var Module = fx.Module("timeline_client",
	fx.Provide(
		fx.Annotate(
			New,
			fx.As(new(timeline.Client)),
		),
	),
)
