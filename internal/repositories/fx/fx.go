package fx

import (
	"github.com/orgball2608/insta-engagement-ingest/internal/repositories/post"
	"github.com/orgball2608/insta-engagement-ingest/internal/repositories/profile"
	"github.com/orgball2608/insta-engagement-ingest/internal/repositories/tweet"
	"go.uber.org/fx"
)

var Module = fx.Options(
	profile.Module,
	post.Module,
	tweet.Module,
)
