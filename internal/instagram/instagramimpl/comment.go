package instagramimpl

import (
	"context"

	"github.com/orgball2608/insta-engagement-ingest/internal/domain"
	"github.com/orgball2608/insta-engagement-ingest/internal/normalize"
)

func (c *InstaImpl) FetchComments(ctx context.Context, postID string) ([]domain.Comment, error) {
	tree, err := c.get(ctx, "fetch comments", c.commentsURL, map[string]string{
		"code_or_id_or_url": postID,
		"sort_by":           "popular",
	})
	if err != nil {
		return nil, err
	}

	items := normalize.Lookup(tree, "data", "items").Items()
	comments := make([]domain.Comment, 0, len(items))
	for _, item := range items {
		comments = append(comments, domain.Comment{
			User: item.Lookup("user", "username").String(domain.UnknownCommentUser),
			Text: item.Lookup("text").String(domain.UnknownCommentText),
		})
	}
	return comments, nil
}
