package domain

import "time"

const (
	UnknownCommentUser = "Unknown"
	UnknownCommentText = "No text"
)

type Comment struct {
	User string `bson:"user" json:"user"`
	Text string `bson:"text" json:"text"`
}

type Post struct {
	ID           string     `bson:"_id" json:"id"`
	Username     string     `bson:"username" json:"username"`
	Code         *string    `bson:"code" json:"code"`
	ThumbnailURL *string    `bson:"thumbnail_url" json:"thumbnail_url"`
	LikeCount    int64      `bson:"like_count" json:"like_count"`
	CommentCount int64      `bson:"comment_count" json:"comment_count"`
	Caption      string     `bson:"caption" json:"caption"`
	Timestamp    *time.Time `bson:"timestamp" json:"timestamp"`
	Comments     []Comment  `bson:"comments" json:"comments"`
}
