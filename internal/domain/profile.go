package domain

import "time"

const (
	StatusSuccess = "success"
	StatusFailed  = "failed"

	AccountTypeBusiness = "Business"
	AccountTypePersonal = "Personal"
)

type BioLink struct {
	Title string `bson:"title" json:"title"`
	URL   string `bson:"url" json:"url"`
}

// Profile is stored whole on every successful fetch. Optional scalars are
// pointers so an absent source value is written as null.
type Profile struct {
	Username        string    `bson:"username" json:"username"`
	FullName        *string   `bson:"full_name" json:"full_name"`
	FollowerCount   *int64    `bson:"follower_count" json:"follower_count"`
	FollowingCount  *int64    `bson:"following_count" json:"following_count"`
	MediaCount      *int64    `bson:"media_count" json:"media_count"`
	IsVerified      *bool     `bson:"is_verified" json:"is_verified"`
	IsPrivate       *bool     `bson:"is_private" json:"is_private"`
	Category        *string   `bson:"category" json:"category"`
	Biography       *string   `bson:"biography" json:"biography"`
	BioLinks        []BioLink `bson:"bio_links" json:"bio_links"`
	ExternalURL     *string   `bson:"external_url" json:"external_url"`
	ProfilePicURLHD *string   `bson:"profile_pic_url_hd" json:"profile_pic_url_hd"`
	AccountType     string    `bson:"account_type" json:"account_type"`
	Status          string    `bson:"status" json:"status"`
	FetchedAt       time.Time `bson:"fetched_at" json:"fetched_at"`
}

// AccountTypeFor derives the account type from the source business flag.
func AccountTypeFor(isBusiness bool) string {
	if isBusiness {
		return AccountTypeBusiness
	}
	return AccountTypePersonal
}

// FetchResult is what the fetch client hands back for one username.
// Profile and Posts are only set when Status is StatusSuccess.
type FetchResult struct {
	Status     string
	Username   string
	Profile    *Profile
	Posts      []Post
	StatusCode *int
	Message    string
}

func (r FetchResult) Failed() bool {
	return r.Status != StatusSuccess
}
