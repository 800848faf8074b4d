package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mpr1255/2025s1-mlci/models"
)

// ErrNotFound is returned by lookups that match no row.
var ErrNotFound = errors.New("not found")

// Mensa is a stored venue with a summary of its menu rows.
type Mensa struct {
	ID         int64  `json:"id" yaml:"id"`
	City       string `json:"city" yaml:"city"`
	University string `json:"university" yaml:"university"`
	Name       string `json:"name" yaml:"name"`
	ItemCount  int    `json:"item_count" yaml:"item_count"`
	FirstDate  string `json:"first_date,omitempty" yaml:"first_date,omitempty"`
	LastDate   string `json:"last_date,omitempty" yaml:"last_date,omitempty"`
}

// Venue returns the venue identity of the row.
func (m Mensa) Venue() models.Venue {
	return models.Venue{City: m.City, Institution: m.University, Name: m.Name}
}

// MenuFilter narrows QueryMenuItems. Zero fields do not filter.
type MenuFilter struct {
	Date    string // YYYY-MM-DD
	City    string // case-insensitive
	Venue   string // case-insensitive substring of the venue name
	MensaID int64
	Limit   int
}

// UpsertMenu stores items in one transaction. Rows are keyed by venue, date
// and item key; a later write replaces the earlier one. It returns the
// number of items written.
func (db *DB) UpsertMenu(ctx context.Context, items []models.MenuItem) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	mensaIDs := make(map[models.Venue]int64)
	now := time.Now().UTC()
	written := 0

	for _, item := range items {
		v := item.Venue()
		mensaID, ok := mensaIDs[v]
		if !ok {
			mensaID, err = getOrCreateMensa(ctx, tx, v)
			if err != nil {
				return 0, err
			}
			mensaIDs[v] = mensaID
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO menu_items (mensa_id, date, category, item_name, item_key,
			                        price_students, price_staff, meal_id, source_html_file, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(mensa_id, date, item_key) DO UPDATE SET
				category = excluded.category,
				item_name = excluded.item_name,
				price_students = excluded.price_students,
				price_staff = excluded.price_staff,
				meal_id = excluded.meal_id,
				source_html_file = excluded.source_html_file,
				updated_at = excluded.updated_at
		`, mensaID, item.Date, item.Category, item.ItemName, item.Key(),
			nullFloat(item.PriceStudent), nullFloat(item.PriceStaff), nullString(item.ItemID),
			NewNullString(item.SourceRef), now)
		if err != nil {
			return 0, fmt.Errorf("failed to upsert menu item %q: %w", item.ItemName, err)
		}
		written++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit menu: %w", err)
	}
	return written, nil
}

func getOrCreateMensa(ctx context.Context, tx *sql.Tx, v models.Venue) (int64, error) {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO mensas (city, university, mensa_name) VALUES (?, ?, ?)
		ON CONFLICT(city, university, mensa_name) DO NOTHING
	`, v.City, v.Institution, v.Name)
	if err != nil {
		return 0, fmt.Errorf("failed to insert mensa: %w", err)
	}

	var id int64
	err = tx.QueryRowContext(ctx, `
		SELECT id FROM mensas WHERE city = ? AND university = ? AND mensa_name = ?
	`, v.City, v.Institution, v.Name).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to look up mensa: %w", err)
	}
	return id, nil
}

// QueryMenuItems returns stored items ordered by date, venue, category and
// insertion order.
func (db *DB) QueryMenuItems(ctx context.Context, f MenuFilter) ([]models.MenuItem, error) {
	var (
		where []string
		args  []any
	)
	if f.Date != "" {
		where = append(where, "mi.date = ?")
		args = append(args, f.Date)
	}
	if f.City != "" {
		where = append(where, "LOWER(m.city) = LOWER(?)")
		args = append(args, f.City)
	}
	if f.Venue != "" {
		where = append(where, "LOWER(m.mensa_name) LIKE '%' || LOWER(?) || '%'")
		args = append(args, f.Venue)
	}
	if f.MensaID > 0 {
		where = append(where, "m.id = ?")
		args = append(args, f.MensaID)
	}

	query := `
		SELECT m.city, m.university, m.mensa_name, mi.date, mi.category, mi.item_name,
		       mi.price_students, mi.price_staff, mi.meal_id, mi.source_html_file
		FROM menu_items mi
		JOIN mensas m ON m.id = mi.mensa_id`
	if len(where) > 0 {
		query += "\n\t\tWHERE " + strings.Join(where, " AND ")
	}
	query += "\n\t\tORDER BY mi.date, m.city, m.mensa_name, mi.category, mi.id"
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", f.Limit)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query menu items: %w", err)
	}
	defer rows.Close()

	items := []models.MenuItem{}
	for rows.Next() {
		var (
			it                models.MenuItem
			student, staff    sql.NullFloat64
			mealID, sourceRef sql.NullString
		)
		if err := rows.Scan(&it.VenueCity, &it.VenueInstitution, &it.VenueName, &it.Date,
			&it.Category, &it.ItemName, &student, &staff, &mealID, &sourceRef); err != nil {
			return nil, fmt.Errorf("failed to scan menu item: %w", err)
		}
		if student.Valid {
			it.PriceStudent = &student.Float64
		}
		if staff.Valid {
			it.PriceStaff = &staff.Float64
		}
		if mealID.Valid {
			it.ItemID = &mealID.String
		}
		it.SourceRef = sourceRef.String
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read menu items: %w", err)
	}
	return items, nil
}

const mensaSummaryQuery = `
	SELECT m.id, m.city, m.university, m.mensa_name,
	       COUNT(mi.id), COALESCE(MIN(mi.date), ''), COALESCE(MAX(mi.date), '')
	FROM mensas m
	LEFT JOIN menu_items mi ON mi.mensa_id = m.id`

// ListMensas returns every stored venue ordered by city and name.
func (db *DB) ListMensas(ctx context.Context) ([]Mensa, error) {
	rows, err := db.QueryContext(ctx, mensaSummaryQuery+`
	GROUP BY m.id
	ORDER BY m.city, m.university, m.mensa_name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list mensas: %w", err)
	}
	defer rows.Close()

	mensas := []Mensa{}
	for rows.Next() {
		var m Mensa
		if err := rows.Scan(&m.ID, &m.City, &m.University, &m.Name, &m.ItemCount, &m.FirstDate, &m.LastDate); err != nil {
			return nil, fmt.Errorf("failed to scan mensa: %w", err)
		}
		mensas = append(mensas, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read mensas: %w", err)
	}
	return mensas, nil
}

// GetMensa returns one venue by id, or ErrNotFound.
func (db *DB) GetMensa(ctx context.Context, id int64) (*Mensa, error) {
	var m Mensa
	err := db.QueryRowContext(ctx, mensaSummaryQuery+`
	WHERE m.id = ?
	GROUP BY m.id`, id).Scan(&m.ID, &m.City, &m.University, &m.Name, &m.ItemCount, &m.FirstDate, &m.LastDate)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get mensa: %w", err)
	}
	return &m, nil
}

// NewNullString creates a sql.NullString from a string value.
func NewNullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
