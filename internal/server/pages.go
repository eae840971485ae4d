package server

import (
	"bytes"
	"errors"
	"net/http"
	"strings"

	"moviedash/internal/charts"
	"moviedash/internal/compare"
	"moviedash/internal/dataset"
	"moviedash/internal/ranking"
)

type pageBase struct {
	Page  string
	Error string
}

type rankingPage struct {
	pageBase
	Query   ranking.Query
	Floor   int
	Ceiling int
	All     string
	Genres  []string
	Years   []string
	Results []ranking.RankedMovie
}

type comparePage struct {
	pageBase
	Titles []string
	A, B   string
	Result *compare.Result
}

func (s *Server) base(page string) pageBase {
	b := pageBase{Page: page}
	if s.noData() {
		b.Error = "Could not load the MovieLens data: " + s.loadErr.Error()
		if errors.Is(s.loadErr, dataset.ErrMissingFile) {
			b.Error = "Data file not found, please check the data path (" + s.loadErr.Error() + ")"
		}
	}
	return b
}

func (s *Server) handleRankingPage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "GET required", http.StatusMethodNotAllowed)
		return
	}
	data := rankingPage{
		pageBase: s.base("ranking"),
		Floor:    ranking.MinRatingsFloor,
		Ceiling:  ranking.MinRatingsCeiling,
		All:      ranking.All,
	}
	if !s.noData() {
		// The slider only submits integers; anything else renders the default.
		data.Query, _ = rankQuery(r)
		data.Genres = s.store.Genres()
		data.Years = s.store.Years()
		data.Results = ranking.Rank(s.store, data.Query)
	}
	s.render(w, http.StatusOK, "ranking.html", data)
}

func (s *Server) handleComparePage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "GET required", http.StatusMethodNotAllowed)
		return
	}
	data := comparePage{pageBase: s.base("compare")}
	status := http.StatusOK
	if !s.noData() {
		data.Titles = s.store.Titles()
		data.A, data.B = s.comparedTitles(r)
		res, err := compare.Compare(s.store, data.A, data.B)
		switch {
		case err == nil:
			data.Result = res
		case errors.Is(err, compare.ErrNotFound):
			status = http.StatusNotFound
			data.Error = err.Error()
		default:
			status = http.StatusInternalServerError
			data.Error = err.Error()
		}
	}
	s.render(w, status, "compare.html", data)
}

func (s *Server) render(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := s.pages.ExecuteTemplate(&buf, name, data); err != nil {
		s.log.Error("render %s: %v", name, err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

// handleChart serves /charts/{hist-a,hist-b,yearly-avg,yearly-count}.png
// for the titles in a and b.
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "GET required", http.StatusMethodNotAllowed)
		return
	}
	if s.noData() {
		http.Error(w, "no data loaded", http.StatusServiceUnavailable)
		return
	}
	name := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/charts/"), ".png")

	a, b := s.comparedTitles(r)
	res, err := compare.Compare(s.store, a, b)
	if err != nil {
		if errors.Is(err, compare.ErrNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, "compare failed", http.StatusInternalServerError)
		return
	}
	lineA := charts.Line{Name: res.A.Movie.Title, Points: res.A.Yearly}
	lineB := charts.Line{Name: res.B.Movie.Title, Points: res.B.Yearly}

	var buf bytes.Buffer
	switch name {
	case "hist-a":
		err = charts.Histogram(&buf, "Rating histogram: "+res.A.Movie.Title, res.A.Histogram)
	case "hist-b":
		err = charts.Histogram(&buf, "Rating histogram: "+res.B.Movie.Title, res.B.Histogram)
	case "yearly-avg":
		err = charts.YearlyAverage(&buf, "Average rating per year", lineA, lineB)
	case "yearly-count":
		err = charts.YearlyCount(&buf, "Ratings per year", lineA, lineB)
	default:
		http.NotFound(w, r)
		return
	}
	if errors.Is(err, charts.ErrNoData) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if err != nil {
		s.log.Error("render chart %s for %q / %q: %v", name, a, b, err)
		http.Error(w, "chart render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(buf.Bytes())
}
