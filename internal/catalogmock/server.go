// Package catalogmock serves a small, deterministic copy of the remote movie
// catalog API. The CLI can point at it for offline development and the
// client tests use it behind httptest.
package catalogmock

import (
	"encoding/json"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/moviekeeper/internal/client/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const pageSize = 20

// Server is an in-memory stand-in for the TMDB movie endpoints.
type Server struct {
	apiKey string
	byID   map[int64]models.Movie
	ranked []models.Movie
}

// New builds a catalog over movies. An empty apiKey accepts every request.
func New(movies []models.Movie, apiKey string) *Server {
	s := &Server{
		apiKey: apiKey,
		byID:   make(map[int64]models.Movie, len(movies)),
		ranked: make([]models.Movie, len(movies)),
	}
	copy(s.ranked, movies)
	sort.SliceStable(s.ranked, func(i, j int) bool {
		return s.ranked[i].VoteAverage > s.ranked[j].VoteAverage
	})
	for _, m := range movies {
		s.byID[m.ID] = m
	}
	return s
}

// Handler returns the chi router with the catalog routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requireAPIKey)

	r.Get("/movie/top_rated", s.handleTopRated)
	r.Get("/movie/{id}", s.handleDetail)
	r.Get("/search/movie", s.handleSearch)

	return r
}

func (s *Server) requireAPIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.apiKey != "" && r.URL.Query().Get("api_key") != s.apiKey {
			writeStatus(w, http.StatusUnauthorized, 7, "Invalid API key: You must be granted a valid key.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleTopRated(w http.ResponseWriter, r *http.Request) {
	page, ok := pageParam(r)
	if !ok {
		writeStatus(w, http.StatusBadRequest, 22, "Invalid page: Pages start at 1.")
		return
	}
	writeJSON(w, http.StatusOK, paginate(s.ranked, page))
}

func (s *Server) handleDetail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeStatus(w, http.StatusNotFound, 34, "The resource you requested could not be found.")
		return
	}
	m, ok := s.byID[id]
	if !ok {
		writeStatus(w, http.StatusNotFound, 34, "The resource you requested could not be found.")
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	page, ok := pageParam(r)
	if !ok {
		writeStatus(w, http.StatusBadRequest, 22, "Invalid page: Pages start at 1.")
		return
	}

	q := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("query")))
	var found []models.Movie
	if q != "" {
		for _, m := range s.ranked {
			if strings.Contains(strings.ToLower(m.Title), q) {
				found = append(found, summary(m))
			}
		}
	}
	writeJSON(w, http.StatusOK, paginate(found, page))
}

func pageParam(r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("page")
	if raw == "" {
		return 1, true
	}
	p, err := strconv.Atoi(raw)
	if err != nil || p < 1 {
		return 0, false
	}
	return p, true
}

func paginate(all []models.Movie, page int) models.MoviePage {
	total := len(all)
	res := models.MoviePage{
		Page:         page,
		Results:      []models.Movie{},
		TotalResults: total,
		TotalPages:   (total + pageSize - 1) / pageSize,
	}
	start := (page - 1) * pageSize
	if start >= total {
		return res
	}
	end := min(start+pageSize, total)
	for _, m := range all[start:end] {
		res.Results = append(res.Results, summary(m))
	}
	return res
}

// summary drops the fields only the detail endpoint returns.
func summary(m models.Movie) models.Movie {
	m.Runtime = 0
	m.Tagline = ""
	m.Genres = nil
	return m
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json;charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeStatus(w http.ResponseWriter, status, code int, msg string) {
	writeJSON(w, status, map[string]any{
		"success":        false,
		"status_code":    code,
		"status_message": msg,
	})
}
