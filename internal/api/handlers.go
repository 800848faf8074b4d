package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mpr1255/2025s1-mlci/internal/common"
	"github.com/mpr1255/2025s1-mlci/internal/menus"
	"github.com/mpr1255/2025s1-mlci/models"
	"github.com/mpr1255/2025s1-mlci/pkg/db"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleMenus handles GET /api/menus?date=&city=&venue=&limit=
func (s *Server) handleMenus(w http.ResponseWriter, r *http.Request) {
	filter, ok := s.menuFilter(w, r)
	if !ok {
		return
	}
	s.writeMenus(w, r, filter)
}

// handleVenues handles GET /api/venues?q=
func (s *Server) handleVenues(w http.ResponseWriter, r *http.Request) {
	mensas, err := s.database.ListMensas(r.Context())
	if err != nil {
		s.log.Error("failed to list venues", "error", err)
		jsonError(w, "internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, menus.RankMensas(mensas, r.URL.Query().Get("q")))
}

func (s *Server) handleVenue(w http.ResponseWriter, r *http.Request) {
	m, ok := s.lookupMensa(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// handleVenueMenus handles GET /api/venues/{mensaID}/menus?date=
func (s *Server) handleVenueMenus(w http.ResponseWriter, r *http.Request) {
	m, ok := s.lookupMensa(w, r)
	if !ok {
		return
	}
	filter, ok := s.menuFilter(w, r)
	if !ok {
		return
	}
	filter.MensaID = m.ID
	s.writeMenus(w, r, filter)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.database.Stats(r.Context())
	if err != nil {
		s.log.Error("failed to compute stats", "error", err)
		jsonError(w, "internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// handleRuns handles GET /api/runs?limit=
func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			jsonError(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}
	runs, err := s.database.ListRuns(r.Context(), limit)
	if err != nil {
		s.log.Error("failed to list runs", "error", err)
		jsonError(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if runs == nil {
		runs = []db.ScrapeRun{}
	}
	writeJSON(w, http.StatusOK, runs)
}

func (s *Server) menuFilter(w http.ResponseWriter, r *http.Request) (db.MenuFilter, bool) {
	q := r.URL.Query()
	filter := db.MenuFilter{
		Date:  q.Get("date"),
		City:  q.Get("city"),
		Venue: q.Get("venue"),
	}
	if err := common.ValidateDate(filter.Date); err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return filter, false
	}
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			jsonError(w, "invalid limit", http.StatusBadRequest)
			return filter, false
		}
		filter.Limit = n
	}
	return filter, true
}

func (s *Server) writeMenus(w http.ResponseWriter, r *http.Request, filter db.MenuFilter) {
	items, err := s.database.QueryMenuItems(r.Context(), filter)
	if err != nil {
		s.log.Error("failed to query menus", "error", err)
		jsonError(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if items == nil {
		items = []models.MenuItem{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) lookupMensa(w http.ResponseWriter, r *http.Request) (*db.Mensa, bool) {
	raw := chi.URLParam(r, "mensaID")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		jsonError(w, "invalid venue id", http.StatusBadRequest)
		return nil, false
	}
	m, err := s.database.GetMensa(r.Context(), id)
	if errors.Is(err, db.ErrNotFound) {
		jsonError(w, "venue not found", http.StatusNotFound)
		return nil, false
	}
	if err != nil {
		s.log.Error("failed to get venue", "mensa_id", id, "error", err)
		jsonError(w, "internal server error", http.StatusInternalServerError)
		return nil, false
	}
	return m, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}
