package menus

import (
	"context"
	"fmt"
	"strconv"

	"github.com/mpr1255/2025s1-mlci/pkg/db"
	"github.com/mpr1255/2025s1-mlci/pkg/venue"
)

// RankMensas returns the mensas whose name, institution or city resembles
// query, best match first. An empty query returns mensas unchanged.
func RankMensas(mensas []db.Mensa, query string) []db.Mensa {
	if query == "" {
		return mensas
	}
	labels := make([]string, len(mensas))
	for i, m := range mensas {
		labels[i] = m.Name + " " + m.University + " " + m.City
	}
	matches := venue.Rank(query, labels, venue.DefaultThreshold)
	out := make([]db.Mensa, 0, len(matches))
	for _, match := range matches {
		out = append(out, mensas[match.Index])
	}
	return out
}

// ResolveMensaArg accepts either a numeric mensa id or a venue name, which
// is resolved to the best fuzzy match.
func ResolveMensaArg(ctx context.Context, arg string, database *db.DB) (*db.Mensa, error) {
	if id, err := strconv.ParseInt(arg, 10, 64); err == nil {
		return database.GetMensa(ctx, id)
	}

	mensas, err := database.ListMensas(ctx)
	if err != nil {
		return nil, err
	}
	ranked := RankMensas(mensas, arg)
	if len(ranked) == 0 {
		return nil, fmt.Errorf("no venue matches %q: %w", arg, db.ErrNotFound)
	}
	return &ranked[0], nil
}
