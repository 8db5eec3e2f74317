package drafts

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/glebarez/go-sqlite"
)

// Draft is an unpublished post held locally
type Draft struct {
	ID         int64
	Title      string
	Content    string
	CategoryID string
	CreatedAt  time.Time
}

const schema = `
CREATE TABLE IF NOT EXISTS drafts (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL,
	content TEXT NOT NULL,
	category_id TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

// openStore opens (and if needed creates) the local drafts database
func openStore() (*sql.DB, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("cannot resolve home directory: %w", err)
	}

	dir := filepath.Join(home, ".bloghub")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("cannot create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dir, "drafts.db"))
	if err != nil {
		return nil, fmt.Errorf("cannot open drafts database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("cannot initialize drafts database: %w", err)
	}

	return db, nil
}

func insertDraft(db *sql.DB, title, content, categoryID string) (int64, error) {
	res, err := db.Exec(
		"INSERT INTO drafts (title, content, category_id) VALUES (?, ?, ?)",
		title, content, categoryID,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func listDrafts(db *sql.DB) ([]Draft, error) {
	rows, err := db.Query(
		"SELECT id, title, content, category_id, created_at FROM drafts ORDER BY created_at DESC",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var drafts []Draft
	for rows.Next() {
		var d Draft
		if err := rows.Scan(&d.ID, &d.Title, &d.Content, &d.CategoryID, &d.CreatedAt); err != nil {
			return nil, err
		}
		drafts = append(drafts, d)
	}
	return drafts, rows.Err()
}

func getDraft(db *sql.DB, id int64) (*Draft, error) {
	var d Draft
	err := db.QueryRow(
		"SELECT id, title, content, category_id, created_at FROM drafts WHERE id = ?", id,
	).Scan(&d.ID, &d.Title, &d.Content, &d.CategoryID, &d.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("draft %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func deleteDraft(db *sql.DB, id int64) error {
	_, err := db.Exec("DELETE FROM drafts WHERE id = ?", id)
	return err
}
