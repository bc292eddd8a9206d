package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upLegacySchema, downLegacySchema)
}

func upLegacySchema(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
	CREATE TABLE IF NOT EXISTS instagram_profiles (
		username           VARCHAR(255) PRIMARY KEY,
		full_name          VARCHAR(255),
		follower_count     BIGINT,
		following_count    BIGINT,
		media_count        BIGINT,
		is_verified        BOOLEAN,
		is_private         BOOLEAN,
		category           VARCHAR(255),
		biography          TEXT,
		external_url       VARCHAR(512),
		profile_pic_url_hd VARCHAR(512),
		account_type       VARCHAR(50),
		status             VARCHAR(50),
		created_at         TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
		updated_at         TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS bio_links (
		id         SERIAL PRIMARY KEY,
		username   VARCHAR(255) REFERENCES instagram_profiles(username) ON DELETE CASCADE,
		title      VARCHAR(255),
		url        VARCHAR(512),
		created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_bio_links_username ON bio_links(username);

	CREATE TABLE IF NOT EXISTS instagram_posts (
		id            VARCHAR(255) PRIMARY KEY,
		username      VARCHAR(255) REFERENCES instagram_profiles(username) ON DELETE CASCADE,
		code          VARCHAR(255),
		thumbnail_url VARCHAR(512),
		like_count    BIGINT DEFAULT 0,
		comment_count BIGINT DEFAULT 0,
		caption       TEXT,
		timestamp     TIMESTAMP WITH TIME ZONE,
		created_at    TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_instagram_posts_username ON instagram_posts(username);

	CREATE TABLE IF NOT EXISTS instagram_comments (
		id         SERIAL PRIMARY KEY,
		post_id    VARCHAR(255) REFERENCES instagram_posts(id) ON DELETE CASCADE,
		username   VARCHAR(255),
		comment    TEXT,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_instagram_comments_post_id ON instagram_comments(post_id);
	`)
	return err
}

func downLegacySchema(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
	DROP TABLE IF EXISTS instagram_comments;
	DROP TABLE IF EXISTS instagram_posts;
	DROP TABLE IF EXISTS bio_links;
	DROP TABLE IF EXISTS instagram_profiles;
	`)
	return err
}
