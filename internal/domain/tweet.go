package domain

import "time"

// ReferencedTweetNotFound marks a reference whose target was not in the page includes.
const ReferencedTweetNotFound = "Referenced tweet details not found/included by API."

// Tweet has a fixed shape: every field is written, absent values as null.
type Tweet struct {
	ID               string            `bson:"_id" json:"_id"`
	Text             *string           `bson:"text" json:"text"`
	CreatedAt        *time.Time        `bson:"created_at" json:"created_at"`
	AuthorID         *string           `bson:"author_id" json:"author_id"`
	AuthorUsername   *string           `bson:"author_username" json:"author_username"`
	AuthorName       *string           `bson:"author_name" json:"author_name"`
	AuthorVerified   *bool             `bson:"author_verified" json:"author_verified"`
	ConversationID   *string           `bson:"conversation_id" json:"conversation_id"`
	Language         *string           `bson:"language" json:"language"`
	Source           *string           `bson:"source" json:"source"`
	PublicMetrics    map[string]any    `bson:"public_metrics" json:"public_metrics"`
	Entities         map[string]any    `bson:"entities" json:"entities"`
	InReplyToUserID  *string           `bson:"in_reply_to_user_id" json:"in_reply_to_user_id"`
	ReferencedTweets []ReferencedTweet `bson:"referenced_tweets" json:"referenced_tweets"`
	Attachments      []Attachment      `bson:"attachments" json:"attachments"`
}

type ReferencedTweet struct {
	Type           string  `bson:"type" json:"type"`
	ID             string  `bson:"id" json:"id"`
	Text           *string `bson:"text" json:"text"`
	AuthorID       *string `bson:"author_id" json:"author_id"`
	AuthorUsername *string `bson:"author_username" json:"author_username"`
	Error          *string `bson:"error" json:"error"`
}

type Attachment struct {
	MediaKey        string         `bson:"media_key" json:"media_key"`
	Type            *string        `bson:"type" json:"type"`
	URL             *string        `bson:"url" json:"url"`
	PreviewImageURL *string        `bson:"preview_image_url" json:"preview_image_url"`
	PublicMetrics   map[string]any `bson:"public_metrics" json:"public_metrics"`
	DurationMS      *int64         `bson:"duration_ms" json:"duration_ms"`
	AltText         *string        `bson:"alt_text" json:"alt_text"`
}

// InsertReport counts the outcome of an unordered bulk insert.
type InsertReport struct {
	Inserted   int
	Duplicates int
}
