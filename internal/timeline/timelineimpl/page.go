package timelineimpl

import (
	"github.com/Jeffail/gabs/v2"
	"github.com/orgball2608/insta-engagement-ingest/internal/domain"
	"github.com/orgball2608/insta-engagement-ingest/internal/normalize"
)

// includes holds one page's side-tables. It is rebuilt for every page.
type includes struct {
	users  map[string]normalize.Value
	media  map[string]normalize.Value
	tweets map[string]normalize.Value
}

func index(items []normalize.Value, key string) map[string]normalize.Value {
	m := make(map[string]normalize.Value, len(items))
	for _, item := range items {
		if id := item.Lookup(key).String(""); id != "" {
			m[id] = item
		}
	}
	return m
}

func newIncludes(page *gabs.Container) includes {
	return includes{
		users:  index(normalize.Lookup(page, "includes", "users").Items(), "id"),
		media:  index(normalize.Lookup(page, "includes", "media").Items(), "media_key"),
		tweets: index(normalize.Lookup(page, "includes", "tweets").Items(), "id"),
	}
}

func (i includes) user(id *string) (normalize.Value, bool) {
	if id == nil {
		return normalize.Value{}, false
	}
	v, ok := i.users[*id]
	return v, ok
}

func (i includes) mediaItem(key string) (normalize.Value, bool) {
	v, ok := i.media[key]
	return v, ok
}

func (i includes) tweet(id string) (normalize.Value, bool) {
	v, ok := i.tweets[id]
	return v, ok
}

func parsePage(page *gabs.Container) []domain.Tweet {
	inc := newIncludes(page)

	items := normalize.Lookup(page, "data").Items()
	out := make([]domain.Tweet, 0, len(items))
	for _, item := range items {
		if t, ok := normalizeTweet(item, inc); ok {
			out = append(out, t)
		}
	}
	return out
}

func normalizeTweet(item normalize.Value, inc includes) (domain.Tweet, bool) {
	id := item.Lookup("id").String("")
	if id == "" {
		return domain.Tweet{}, false
	}

	t := domain.Tweet{
		ID:              id,
		Text:            item.Lookup("text").StringPtr(),
		CreatedAt:       item.Lookup("created_at").Time(),
		AuthorID:        item.Lookup("author_id").StringPtr(),
		ConversationID:  item.Lookup("conversation_id").StringPtr(),
		Language:        item.Lookup("lang").StringPtr(),
		Source:          item.Lookup("source").StringPtr(),
		PublicMetrics:   item.Lookup("public_metrics").Map(),
		Entities:        item.Lookup("entities").Map(),
		InReplyToUserID: item.Lookup("in_reply_to_user_id").StringPtr(),
	}

	if author, ok := inc.user(t.AuthorID); ok {
		t.AuthorUsername = author.Lookup("username").StringPtr()
		t.AuthorName = author.Lookup("name").StringPtr()
		t.AuthorVerified = author.Lookup("verified").BoolPtr()
	}

	for _, ref := range item.Lookup("referenced_tweets").Items() {
		t.ReferencedTweets = append(t.ReferencedTweets, resolveReference(ref, inc))
	}

	for _, key := range item.Lookup("attachments", "media_keys").Items() {
		m, ok := inc.mediaItem(key.String(""))
		if !ok {
			continue
		}
		t.Attachments = append(t.Attachments, domain.Attachment{
			MediaKey:        key.String(""),
			Type:            m.Lookup("type").StringPtr(),
			URL:             m.Lookup("url").StringPtr(),
			PreviewImageURL: m.Lookup("preview_image_url").StringPtr(),
			PublicMetrics:   m.Lookup("public_metrics").Map(),
			DurationMS:      m.Lookup("duration_ms").IntPtr(),
			AltText:         m.Lookup("alt_text").StringPtr(),
		})
	}

	return t, true
}

func resolveReference(ref normalize.Value, inc includes) domain.ReferencedTweet {
	rt := domain.ReferencedTweet{
		Type: ref.Lookup("type").String(""),
		ID:   ref.Lookup("id").String(""),
	}

	target, ok := inc.tweet(rt.ID)
	if !ok {
		msg := domain.ReferencedTweetNotFound
		rt.Error = &msg
		return rt
	}

	rt.Text = target.Lookup("text").StringPtr()
	rt.AuthorID = target.Lookup("author_id").StringPtr()
	if author, ok := inc.user(rt.AuthorID); ok {
		rt.AuthorUsername = author.Lookup("username").StringPtr()
	}
	return rt
}
