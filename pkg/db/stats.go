package db

import (
	"context"
	"fmt"
)

// Count is a labelled tally.
type Count struct {
	Label string `json:"label" yaml:"label"`
	Count int    `json:"count" yaml:"count"`
}

// Stats summarises the store.
type Stats struct {
	Mensas     int     `json:"mensas" yaml:"mensas"`
	Items      int     `json:"items" yaml:"items"`
	Days       int     `json:"days" yaml:"days"`
	Pages      int     `json:"pages" yaml:"pages"`
	FirstDate  string  `json:"first_date,omitempty" yaml:"first_date,omitempty"`
	LastDate   string  `json:"last_date,omitempty" yaml:"last_date,omitempty"`
	ByCity     []Count `json:"by_city" yaml:"by_city"`
	ByCategory []Count `json:"by_category" yaml:"by_category"`
}

// Stats counts venues, items and days, with item counts per city and per
// category in descending order.
func (db *DB) Stats(ctx context.Context) (*Stats, error) {
	s := &Stats{ByCity: []Count{}, ByCategory: []Count{}}

	err := db.QueryRowContext(ctx, `
		SELECT (SELECT COUNT(*) FROM mensas),
		       (SELECT COUNT(*) FROM menu_items),
		       (SELECT COUNT(DISTINCT date) FROM menu_items),
		       (SELECT COUNT(*) FROM pages),
		       COALESCE((SELECT MIN(date) FROM menu_items), ''),
		       COALESCE((SELECT MAX(date) FROM menu_items), '')
	`).Scan(&s.Mensas, &s.Items, &s.Days, &s.Pages, &s.FirstDate, &s.LastDate)
	if err != nil {
		return nil, fmt.Errorf("failed to count rows: %w", err)
	}

	s.ByCity, err = db.counts(ctx, `
		SELECT m.city, COUNT(mi.id) AS n
		FROM mensas m JOIN menu_items mi ON mi.mensa_id = m.id
		GROUP BY m.city ORDER BY n DESC, m.city`)
	if err != nil {
		return nil, err
	}

	s.ByCategory, err = db.counts(ctx, `
		SELECT category, COUNT(*) AS n
		FROM menu_items
		GROUP BY category ORDER BY n DESC, category`)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (db *DB) counts(ctx context.Context, query string) ([]Count, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query counts: %w", err)
	}
	defer rows.Close()

	out := []Count{}
	for rows.Next() {
		var c Count
		if err := rows.Scan(&c.Label, &c.Count); err != nil {
			return nil, fmt.Errorf("failed to scan count: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
