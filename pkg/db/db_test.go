package db

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mpr1255/2025s1-mlci/models"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	database, err := OpenMemory()
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })
	return database
}

func ptr[T any](v T) *T { return &v }

func item(city, inst, venue, date, category, name string, id *string, student *float64) models.MenuItem {
	return models.MenuItem{
		VenueCity:        city,
		VenueInstitution: inst,
		VenueName:        venue,
		Date:             date,
		Category:         category,
		ItemName:         name,
		ItemID:           id,
		PriceStudent:     student,
		SourceRef:        "data/" + city + "/" + date + ".html",
	}
}

func TestOpenCreatesSchemaOnDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "mensa.db")

	database, err := Open(path)
	require.NoError(t, err)
	require.Equal(t, path, database.Path())
	require.NoError(t, database.Close())

	// Reopening an initialised database keeps it usable.
	database, err = Open(path)
	require.NoError(t, err)
	defer database.Close()

	mensas, err := database.ListMensas(context.Background())
	require.NoError(t, err)
	require.Empty(t, mensas)
}

func TestUpsertMenuDeduplicates(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	first := []models.MenuItem{
		item("Mainz", "Uni Mainz", "Zentralmensa", "2025-09-08", "Suppen", "Tomatensuppe", ptr("1"), ptr(2.50)),
		item("Mainz", "Uni Mainz", "Zentralmensa", "2025-09-08", "Suppen", "Brot", nil, nil),
	}
	n, err := db.UpsertMenu(ctx, first)
	require.NoError(t, err)
	require.Equal(t, 2, n)

	second := []models.MenuItem{
		item("Mainz", "Uni Mainz", "Zentralmensa", "2025-09-08", "Suppen", "Tomatencremesuppe", ptr("1"), ptr(2.70)),
		item("Mainz", "Uni Mainz", "Zentralmensa", "2025-09-08", "Suppen", "Brot", nil, ptr(0.50)),
		item("Mainz", "Uni Mainz", "Zentralmensa", "2025-09-09", "Suppen", "Tomatensuppe", ptr("1"), ptr(2.50)),
	}
	_, err = db.UpsertMenu(ctx, second)
	require.NoError(t, err)

	items, err := db.QueryMenuItems(ctx, MenuFilter{Date: "2025-09-08"})
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, "Tomatencremesuppe", items[0].ItemName)
	require.Equal(t, 2.70, *items[0].PriceStudent)
	require.Equal(t, "1", *items[0].ItemID)
	require.Equal(t, "Brot", items[1].ItemName)
	require.Nil(t, items[1].ItemID)
	require.Equal(t, 0.50, *items[1].PriceStudent)
	require.Nil(t, items[1].PriceStaff)

	mensas, err := db.ListMensas(ctx)
	require.NoError(t, err)
	require.Len(t, mensas, 1)
	require.Equal(t, 3, mensas[0].ItemCount)
	require.Equal(t, "2025-09-08", mensas[0].FirstDate)
	require.Equal(t, "2025-09-09", mensas[0].LastDate)
}

func TestUpsertMenuEmpty(t *testing.T) {
	db := setupTestDB(t)
	n, err := db.UpsertMenu(context.Background(), nil)
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestQueryMenuItemsFilters(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	_, err := db.UpsertMenu(ctx, []models.MenuItem{
		item("Mainz", "Uni Mainz", "Zentralmensa", "2025-09-08", "Suppen", "A", ptr("1"), nil),
		item("Mainz", "Uni Mainz", "Mensa Georg Forster", "2025-09-08", "Hauptgerichte", "B", ptr("2"), nil),
		item("Amberg", "", "Amberg", "2025-09-09", "Hauptgerichte", "C", ptr("3"), nil),
	})
	require.NoError(t, err)

	tests := []struct {
		name   string
		filter MenuFilter
		want   []string
	}{
		{"all", MenuFilter{}, []string{"B", "A", "C"}},
		{"date", MenuFilter{Date: "2025-09-09"}, []string{"C"}},
		{"city case-insensitive", MenuFilter{City: "mainz"}, []string{"B", "A"}},
		{"venue substring", MenuFilter{Venue: "forster"}, []string{"B"}},
		{"limit", MenuFilter{Limit: 1}, []string{"B"}},
		{"no match", MenuFilter{City: "Berlin"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := db.QueryMenuItems(ctx, tt.filter)
			require.NoError(t, err)
			got := []string{}
			for _, it := range items {
				got = append(got, it.ItemName)
			}
			require.Equal(t, tt.want, got)
		})
	}
}

func TestGetMensa(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	_, err := db.UpsertMenu(ctx, []models.MenuItem{
		item("Amberg", "", "Amberg", "2025-09-09", "", "C", nil, nil),
	})
	require.NoError(t, err)

	mensas, err := db.ListMensas(ctx)
	require.NoError(t, err)
	require.Len(t, mensas, 1)

	m, err := db.GetMensa(ctx, mensas[0].ID)
	require.NoError(t, err)
	require.Equal(t, models.Venue{City: "Amberg", Name: "Amberg"}, m.Venue())

	items, err := db.QueryMenuItems(ctx, MenuFilter{MensaID: m.ID})
	require.NoError(t, err)
	require.Len(t, items, 1)

	_, err = db.GetMensa(ctx, 9999)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestStats(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	_, err := db.UpsertMenu(ctx, []models.MenuItem{
		item("Mainz", "Uni Mainz", "Zentralmensa", "2025-09-08", "Suppen", "A", ptr("1"), nil),
		item("Mainz", "Uni Mainz", "Zentralmensa", "2025-09-09", "Suppen", "B", ptr("2"), nil),
		item("Amberg", "", "Amberg", "2025-09-09", "Hauptgerichte", "C", ptr("3"), nil),
	})
	require.NoError(t, err)

	s, err := db.Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, s.Mensas)
	require.Equal(t, 3, s.Items)
	require.Equal(t, 2, s.Days)
	require.Equal(t, "2025-09-08", s.FirstDate)
	require.Equal(t, "2025-09-09", s.LastDate)
	require.Equal(t, []Count{{"Mainz", 2}, {"Amberg", 1}}, s.ByCity)
	require.Equal(t, []Count{{"Suppen", 2}, {"Hauptgerichte", 1}}, s.ByCategory)
}

func TestPages(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	pages, err := db.ListPages(ctx, 0)
	require.NoError(t, err)
	require.Empty(t, pages)

	page := models.Page{
		URL:       "https://www.mensaplan.de/amberg/mensa-amberg/index.html",
		FilePath:  "data/Amberg/Amberg/Amberg/2025-09-08.html",
		Title:     "Mensa Amberg",
		Language:  "de",
		FetchedAt: time.Date(2025, 9, 8, 10, 0, 0, 0, time.UTC),
	}
	require.NoError(t, db.RecordPage(ctx, page))

	page.Language = "en"
	page.FetchedAt = page.FetchedAt.Add(time.Hour)
	require.NoError(t, db.RecordPage(ctx, page))

	pages, err = db.ListPages(ctx, 0)
	require.NoError(t, err)
	require.Len(t, pages, 1)
	require.Equal(t, "Mensa Amberg", pages[0].Title)
	require.Equal(t, "en", pages[0].Language)
	require.True(t, pages[0].FetchedAt.Equal(page.FetchedAt))
}

func TestScrapeRuns(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	runID, err := db.StartRun(ctx, "https://www.mensaplan.de/index.html")
	require.NoError(t, err)
	require.Len(t, runID, 36)

	tally := RunTally{Requests: 10, Archived: 4, Skipped: 1, Failed: 2}
	require.NoError(t, db.FinishRun(ctx, runID, tally))
	require.ErrorIs(t, db.FinishRun(ctx, "missing", tally), ErrNotFound)

	runs, err := db.ListRuns(ctx, 5)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	require.Equal(t, tally, runs[0].RunTally)
	require.NotNil(t, runs[0].FinishedAt)
}
