package server

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"moviedash/internal/compare"
	"moviedash/internal/dataset"
	"moviedash/internal/logger"
	"moviedash/internal/ranking"
)

var errNoStore = errors.New("no data store configured")

//go:embed templates/*.html
var templateFS embed.FS

// Server serves the ranking and comparison pages over one shared store.
// A nil store means loading failed; every view then shows loadErr and
// nothing else.
type Server struct {
	store   *dataset.Store
	loadErr error
	log     *logger.Logger
	pages   *template.Template
}

func New(store *dataset.Store, loadErr error, lg *logger.Logger) *Server {
	if store == nil && loadErr == nil {
		loadErr = errNoStore
	}
	funcs := template.FuncMap{
		"stat": compare.FormatStat,
	}
	pages := template.Must(template.New("pages").Funcs(funcs).ParseFS(templateFS, "templates/*.html"))
	return &Server{
		store:   store,
		loadErr: loadErr,
		log:     lg,
		pages:   pages,
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/ranking", s.handleRankingPage)
	mux.HandleFunc("/compare", s.handleComparePage)
	mux.HandleFunc("/charts/", s.handleChart)

	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/api/rank", s.handleRank)
	mux.HandleFunc("/api/compare", s.handleCompare)
	mux.HandleFunc("/api/genres", s.handleGenres)
	mux.HandleFunc("/api/years", s.handleYears)
	mux.HandleFunc("/rank.csv", s.handleRankCSV)
	mux.HandleFunc("/search", s.handleSearch)
	mux.HandleFunc("/movie/", s.handleMovie)
	return mux
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	http.Redirect(w, r, "/ranking", http.StatusFound)
}

func (s *Server) noData() bool {
	return s.store == nil
}

// preflight sets CORS headers and answers OPTIONS. It reports whether the
// handler should continue.
func (s *Server) preflight(w http.ResponseWriter, r *http.Request, method string) bool {
	setCORS(w)
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return false
	}
	if r.Method != method && !(method == http.MethodGet && r.Method == http.MethodHead) {
		s.writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": method + " required"})
		return false
	}
	return true
}

// rankQuery reads min, genre and year from the URL. min is clamped to the
// slider range and defaults to ranking.DefaultMinRatings. A min that is not
// an integer is reported as an error together with the default query, so
// the HTML page can fall back while the JSON API rejects the request.
func rankQuery(r *http.Request) (ranking.Query, error) {
	q := r.URL.Query()
	minCount := ranking.DefaultMinRatings
	var err error
	if v := strings.TrimSpace(q.Get("min")); v != "" {
		parsed, perr := strconv.Atoi(v)
		if perr != nil {
			err = fmt.Errorf("invalid min %q: must be an integer", v)
		} else {
			minCount = parsed
		}
	}
	genre := q.Get("genre")
	if genre == "" {
		genre = ranking.All
	}
	year := q.Get("year")
	if year == "" {
		year = ranking.All
	}
	return ranking.Query{
		MinRatings: ranking.ClampMinRatings(minCount),
		Genre:      genre,
		Year:       year,
	}, err
}

// comparedTitles reads a and b from the URL, defaulting each to the first
// title of the movie table.
func (s *Server) comparedTitles(r *http.Request) (string, string) {
	a := r.URL.Query().Get("a")
	b := r.URL.Query().Get("b")
	if movies := s.store.Movies(); len(movies) > 0 {
		if a == "" {
			a = movies[0].Title
		}
		if b == "" {
			b = movies[0].Title
		}
	}
	return a, b
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.log.Error("json encode error: %v", err)
	}
}

func setCORS(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
}
