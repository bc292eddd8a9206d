package instagramimpl

import (
	"context"

	"github.com/orgball2608/insta-engagement-ingest/internal/domain"
	"github.com/orgball2608/insta-engagement-ingest/internal/normalize"
)

func (c *InstaImpl) FetchPosts(ctx context.Context, username string) ([]domain.Post, error) {
	tree, err := c.get(ctx, "fetch posts", c.postsURL, map[string]string{
		"username_or_id_or_url": username,
	})
	if err != nil {
		return nil, err
	}

	items := normalize.Lookup(tree, "data", "items").Items()
	posts := make([]domain.Post, 0, len(items))
	for _, item := range items {
		post, ok := normalizePost(item, username)
		if !ok {
			c.logger.Warn("Skipping post without id", "username", username)
			continue
		}
		posts = append(posts, post)
	}
	return posts, nil
}

func normalizePost(item normalize.Value, username string) (domain.Post, bool) {
	id := item.Lookup("id").String("")
	if id == "" {
		return domain.Post{}, false
	}

	ts := item.Lookup("taken_at_timestamp").Time()
	if ts == nil {
		ts = item.Lookup("taken_at").Time()
	}

	return domain.Post{
		ID:           id,
		Username:     username,
		Code:         item.Lookup("code").StringPtr(),
		ThumbnailURL: item.Lookup("thumbnail_url").StringPtr(),
		LikeCount:    item.Lookup("like_count").Int(0),
		CommentCount: item.Lookup("comment_count").Int(0),
		Caption:      item.Lookup("caption", "text").String(""),
		Timestamp:    ts,
		Comments:     []domain.Comment{},
	}, true
}
