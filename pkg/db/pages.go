package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mpr1255/2025s1-mlci/models"
)

// RecordPage inserts or refreshes the index entry for an archived page.
func (db *DB) RecordPage(ctx context.Context, p models.Page) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO pages (url, file_path, title, site_name, language, content_hash, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET
			file_path = excluded.file_path,
			title = excluded.title,
			site_name = excluded.site_name,
			language = excluded.language,
			content_hash = excluded.content_hash,
			fetched_at = excluded.fetched_at
	`, p.URL, p.FilePath, NewNullString(p.Title), NewNullString(p.SiteName),
		NewNullString(p.Language), NewNullString(p.ContentHash), p.FetchedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to record page: %w", err)
	}
	return nil
}

// ListPages returns the page index, newest first.
func (db *DB) ListPages(ctx context.Context, limit int) ([]models.Page, error) {
	query := `
		SELECT url, file_path, title, site_name, language, content_hash, fetched_at
		FROM pages
		ORDER BY fetched_at DESC, url`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list pages: %w", err)
	}
	defer rows.Close()

	var pages []models.Page
	for rows.Next() {
		var (
			p                              models.Page
			title, site, lang, contentHash sql.NullString
		)
		if err := rows.Scan(&p.URL, &p.FilePath, &title, &site, &lang, &contentHash, &p.FetchedAt); err != nil {
			return nil, fmt.Errorf("failed to scan page: %w", err)
		}
		p.Title, p.SiteName, p.Language, p.ContentHash = title.String, site.String, lang.String, contentHash.String
		pages = append(pages, p)
	}
	return pages, rows.Err()
}
