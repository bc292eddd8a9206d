package instagramimpl

import (
	"context"

	"github.com/Jeffail/gabs/v2"
	"github.com/orgball2608/insta-engagement-ingest/internal/domain"
	"github.com/orgball2608/insta-engagement-ingest/internal/metrics"
	"github.com/orgball2608/insta-engagement-ingest/internal/normalize"
	apperrors "github.com/orgball2608/insta-engagement-ingest/pkg/errors"
)

// FetchProfile fetches the profile, its posts and every post's comments.
// Only a profile failure turns into a failed result; a post list failure
// leaves the profile with no posts and a comment failure leaves that post
// with no comments.
func (c *InstaImpl) FetchProfile(ctx context.Context, username string) domain.FetchResult {
	tree, err := c.get(ctx, "fetch profile", c.profileURL, map[string]string{
		"username_or_id_or_url": username,
	})
	if err != nil {
		c.logger.Error("Failed to fetch profile",
			"username", username,
			"kind", apperrors.KindOf(err).String(),
			"status_code", apperrors.StatusCode(err),
			"error", err)
		return failure(username, err)
	}

	profile := normalizeProfile(tree, username)
	profile.FetchedAt = c.now().UTC()

	posts, err := c.FetchPosts(ctx, profile.Username)
	if err != nil {
		c.logger.Warn("Failed to fetch posts, keeping profile without posts",
			"username", profile.Username,
			"kind", apperrors.KindOf(err).String(),
			"error", err)
		posts = []domain.Post{}
	}

	for i := range posts {
		comments, err := c.FetchComments(ctx, posts[i].ID)
		if err != nil {
			c.logger.Warn("Failed to fetch comments, storing none for this post",
				"username", profile.Username,
				"post_id", posts[i].ID,
				"error", err)
			metrics.CommentFetchFailures.Inc()
			comments = []domain.Comment{}
		}
		posts[i].Comments = comments
	}

	c.logger.Info("Fetched profile",
		"username", profile.Username,
		"posts", len(posts))

	return domain.FetchResult{
		Status:   domain.StatusSuccess,
		Username: profile.Username,
		Profile:  &profile,
		Posts:    posts,
	}
}

func normalizeProfile(tree *gabs.Container, requested string) domain.Profile {
	data := normalize.Lookup(tree, "data")

	links := []domain.BioLink{}
	for _, item := range data.Lookup("bio_links").Items() {
		links = append(links, domain.BioLink{
			Title: item.Lookup("title").String(""),
			URL:   item.Lookup("url").String(""),
		})
	}

	return domain.Profile{
		Username:        data.Lookup("username").String(requested),
		FullName:        data.Lookup("full_name").StringPtr(),
		FollowerCount:   data.Lookup("follower_count").IntPtr(),
		FollowingCount:  data.Lookup("following_count").IntPtr(),
		MediaCount:      data.Lookup("media_count").IntPtr(),
		IsVerified:      data.Lookup("is_verified").BoolPtr(),
		IsPrivate:       data.Lookup("is_private").BoolPtr(),
		Category:        data.Lookup("category").StringPtr(),
		Biography:       data.Lookup("biography").StringPtr(),
		BioLinks:        links,
		ExternalURL:     data.Lookup("external_url").StringPtr(),
		ProfilePicURLHD: data.Lookup("profile_pic_url_hd").StringPtr(),
		AccountType:     domain.AccountTypeFor(data.Lookup("is_business").Bool(false)),
		Status:          domain.StatusSuccess,
	}
}
