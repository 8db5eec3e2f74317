package database

import (
	"context"
	"fmt"
)

// schemaStatements creates the blog tables when they do not exist yet.
// Order matters: categories before posts, posts before comments.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            TEXT PRIMARY KEY,
		email         TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		roles         TEXT[] NOT NULL DEFAULT '{user}',
		created_at    TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS categories (
		id         TEXT PRIMARY KEY,
		title      TEXT NOT NULL,
		slug       TEXT NOT NULL UNIQUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS posts (
		id          TEXT PRIMARY KEY,
		title       TEXT NOT NULL,
		content     TEXT NOT NULL,
		category_id TEXT NOT NULL REFERENCES categories(id),
		created_at  TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS comments (
		id         TEXT PRIMARY KEY,
		post_id    TEXT NOT NULL REFERENCES posts(id),
		author_id  TEXT REFERENCES users(id),
		nick       TEXT NOT NULL,
		email      TEXT NOT NULL,
		content    TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_posts_category ON posts(category_id)`,
	`CREATE INDEX IF NOT EXISTS idx_posts_updated ON posts(updated_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_comments_post ON comments(post_id, created_at DESC)`,
}

// EnsureSchema creates missing tables and indexes at startup
func (db *DB) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema bootstrap failed: %w", err)
		}
	}
	return nil
}
