package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"moviedash/internal/compare"
	"moviedash/internal/dataset"
	"moviedash/internal/ranking"
)

type RankResponse struct {
	MinRatings int                   `json:"min_ratings"`
	Genre      string                `json:"genre"`
	Year       string                `json:"year"`
	Results    []ranking.RankedMovie `json:"results"`
	LatencyMS  int64                 `json:"latency_ms"`
}

type SearchResult struct {
	MovieID int    `json:"movie_id"`
	Title   string `json:"title"`
}

type MovieResponse struct {
	dataset.Movie
	Summary compare.Summary `json:"summary"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !s.preflight(w, r, http.MethodGet) {
		return
	}
	status := map[string]any{"status": "ok"}
	if s.noData() {
		status["status"] = "degraded"
		status["error"] = s.loadErr.Error()
	} else {
		status["movies"] = len(s.store.Movies())
		status["ratings"] = len(s.store.Ratings())
	}
	s.writeJSON(w, http.StatusOK, status)
}

// requireData answers 503 when nothing was loaded.
func (s *Server) requireData(w http.ResponseWriter) bool {
	if s.noData() {
		s.writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "no data loaded"})
		return false
	}
	return true
}

func (s *Server) handleRank(w http.ResponseWriter, r *http.Request) {
	if !s.preflight(w, r, http.MethodGet) || !s.requireData(w) {
		return
	}
	start := time.Now()
	q, err := rankQuery(r)
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	results := ranking.Rank(s.store, q)
	if results == nil {
		results = []ranking.RankedMovie{}
	}
	s.writeJSON(w, http.StatusOK, RankResponse{
		MinRatings: q.MinRatings,
		Genre:      q.Genre,
		Year:       q.Year,
		Results:    results,
		LatencyMS:  time.Since(start).Milliseconds(),
	})
}

func (s *Server) handleRankCSV(w http.ResponseWriter, r *http.Request) {
	if !s.preflight(w, r, http.MethodGet) || !s.requireData(w) {
		return
	}
	q, err := rankQuery(r)
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	results := ranking.Rank(s.store, q)
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="top_movies.csv"`)
	if err := ranking.WriteCSV(w, results); err != nil {
		s.log.Error("write ranking csv: %v", err)
	}
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	if !s.preflight(w, r, http.MethodGet) || !s.requireData(w) {
		return
	}
	a, b := s.comparedTitles(r)
	res, err := compare.Compare(s.store, a, b)
	if err != nil {
		if errors.Is(err, compare.ErrNotFound) {
			s.writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
			return
		}
		s.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "compare failed"})
		return
	}
	s.writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleGenres(w http.ResponseWriter, r *http.Request) {
	if !s.preflight(w, r, http.MethodGet) || !s.requireData(w) {
		return
	}
	s.writeJSON(w, http.StatusOK, s.store.Genres())
}

func (s *Server) handleYears(w http.ResponseWriter, r *http.Request) {
	if !s.preflight(w, r, http.MethodGet) || !s.requireData(w) {
		return
	}
	s.writeJSON(w, http.StatusOK, s.store.Years())
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if !s.preflight(w, r, http.MethodGet) || !s.requireData(w) {
		return
	}
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "q required"})
		return
	}
	limit := 10
	if l := r.URL.Query().Get("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	movies := s.store.Search(query, limit)
	results := make([]SearchResult, 0, len(movies))
	for _, m := range movies {
		results = append(results, SearchResult{MovieID: m.MovieID, Title: m.Title})
	}
	s.writeJSON(w, http.StatusOK, results)
}

func (s *Server) handleMovie(w http.ResponseWriter, r *http.Request) {
	if !s.preflight(w, r, http.MethodGet) || !s.requireData(w) {
		return
	}
	parts := strings.Split(strings.TrimPrefix(r.URL.Path, "/movie/"), "/")
	if len(parts) == 0 || parts[0] == "" {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "movie id required"})
		return
	}
	id, err := strconv.Atoi(parts[0])
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid movie id"})
		return
	}

	movie, ok := s.store.MovieByID(id)
	if !ok {
		s.writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}
	s.writeJSON(w, http.StatusOK, MovieResponse{
		Movie:   movie,
		Summary: compare.Summarize(s.store.RatingsFor(id)),
	})
}
