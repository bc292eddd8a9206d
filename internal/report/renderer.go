package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/orgball2608/insta-engagement-ingest/internal/domain"
	"github.com/orgball2608/insta-engagement-ingest/pkg/formatter"
)

const (
	captionWidth = 80
	commentWidth = 60
	tweetWidth   = 60
	ruleWidth    = 80
)

// Renderer prints stored profiles and posts as terminal tables.
type Renderer struct {
	out io.Writer
}

func NewRenderer(out io.Writer) *Renderer {
	return &Renderer{out: out}
}

func (r *Renderer) newTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(r.out)
	return t
}

func (r *Renderer) printf(format string, args ...any) {
	fmt.Fprintf(r.out, format, args...)
}

func (r *Renderer) rule(ch string) {
	fmt.Fprintln(r.out, strings.Repeat(ch, ruleWidth))
}

func (r *Renderer) NotFound(username string) {
	r.printf("\nProfile not found: %s\n\n", username)
}

// Profile prints the profile card, bio, bio links and the given posts.
func (r *Renderer) Profile(p domain.Profile, posts []domain.Post) {
	r.printf("\n")
	r.rule("=")
	r.printf(" Instagram Profile: %s\n", p.Username)
	r.rule("=")

	t := r.newTable()
	t.AppendRows([]table.Row{
		{"Username", p.Username},
		{"Full Name", formatter.OptionalString(p.FullName)},
		{"Followers", formatter.FormatOptionalNumber(p.FollowerCount)},
		{"Following", formatter.FormatOptionalNumber(p.FollowingCount)},
		{"Posts", formatter.FormatOptionalNumber(p.MediaCount)},
		{"Verified", formatter.OptionalBool(p.IsVerified)},
		{"Account Type", p.AccountType},
		{"Private", formatter.OptionalBool(p.IsPrivate)},
		{"Category", formatter.OptionalString(p.Category)},
	})
	t.Render()

	if p.Biography != nil && *p.Biography != "" {
		r.printf("\nBio:\n%s\n", *p.Biography)
	}

	if len(p.BioLinks) > 0 {
		r.printf("\nBio Links:\n")
		t := r.newTable()
		t.AppendHeader(table.Row{"Title", "URL"})
		for _, link := range p.BioLinks {
			title := link.Title
			if title == "" {
				title = "Link"
			}
			t.AppendRow(table.Row{title, link.URL})
		}
		t.Render()
	}

	if len(posts) > 0 {
		r.printf("\nRecent Posts:\n")
		for _, post := range posts {
			r.post(post)
		}
	}

	r.rule("=")
}

func (r *Renderer) post(p domain.Post) {
	r.printf("\nPost ID: %s (Likes: %s, Comments: %s)\n",
		p.ID, formatter.FormatNumber(p.LikeCount), formatter.FormatNumber(p.CommentCount))

	if p.Caption != "" {
		r.printf("Caption: %s\n", text.WrapSoft(p.Caption, captionWidth))
	} else {
		r.printf("Caption: [No caption]\n")
	}
	r.printf("Timestamp: %s\n", formatter.OptionalTime(p.Timestamp))

	if len(p.Comments) == 0 {
		r.printf("\nNo comments\n")
	} else {
		r.printf("\nComments:\n")
		t := r.newTable()
		t.AppendHeader(table.Row{"Username", "Comment"})
		for _, c := range p.Comments {
			t.AppendRow(table.Row{c.User, text.WrapSoft(c.Text, commentWidth)})
		}
		t.Render()
	}

	r.rule("-")
}

func (r *Renderer) ProfileList(profiles []domain.Profile) {
	t := r.newTable()
	t.AppendHeader(table.Row{"Username", "Followers", "Following", "Posts"})
	for _, p := range profiles {
		t.AppendRow(table.Row{
			p.Username,
			formatter.FormatOptionalNumber(p.FollowerCount),
			formatter.FormatOptionalNumber(p.FollowingCount),
			formatter.FormatOptionalNumber(p.MediaCount),
		})
	}
	t.Render()
}

func (r *Renderer) SearchResults(term string, profiles []domain.Profile) {
	if len(profiles) == 0 {
		r.printf("No matching profiles found for %q.\n", term)
		return
	}

	t := r.newTable()
	t.AppendHeader(table.Row{"Username", "Full Name", "Followers"})
	for _, p := range profiles {
		t.AppendRow(table.Row{
			p.Username,
			formatter.OptionalString(p.FullName),
			formatter.FormatOptionalNumber(p.FollowerCount),
		})
	}
	t.Render()
}

func (r *Renderer) Tweets(authorID string, tweets []domain.Tweet) {
	if len(tweets) == 0 {
		r.printf("No stored tweets for author %s.\n", authorID)
		return
	}

	t := r.newTable()
	t.AppendHeader(table.Row{"ID", "Created", "Text", "Likes", "Retweets"})
	for _, tw := range tweets {
		t.AppendRow(table.Row{
			tw.ID,
			formatter.OptionalTime(tw.CreatedAt),
			formatter.Truncate(formatter.OptionalString(tw.Text), tweetWidth),
			metric(tw.PublicMetrics, "like_count"),
			metric(tw.PublicMetrics, "retweet_count"),
		})
	}
	t.Render()
}

// metric formats a public_metrics counter, which arrives as whatever number
// type the decoder produced.
func metric(m map[string]any, key string) string {
	switch v := m[key].(type) {
	case int64:
		return formatter.FormatNumber(v)
	case int32:
		return formatter.FormatNumber(int64(v))
	case int:
		return formatter.FormatNumber(int64(v))
	case float64:
		return formatter.FormatNumber(int64(v))
	default:
		return formatter.NotAvailable
	}
}
