package profile

import (
	"go.uber.org/fx"
)

var Module = fx.Module("profile_repository",
	fx.Provide(
		NewMongo,
		fx.Annotate(
			func(repo *Mongo) Repository {
				return repo
			},
			fx.As(new(Repository)),
		),
	),
)
