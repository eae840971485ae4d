package dataset

import (
	"math"
	"sort"
	"strings"
)

// Store is the read-only in-memory copy of movies.csv and ratings.csv.
// It is built once and shared by pointer; nothing mutates it afterwards.
type Store struct {
	movies  []Movie
	ratings []Rating

	byID     map[int]int
	byMovie  map[int][]Rating
	titleIdx map[string]int
	genres   []string
	years    []string
	skipped  int
}

// NewStore indexes the given tables. The slices are owned by the store.
func NewStore(movies []Movie, ratings []Rating) *Store {
	s := &Store{
		movies:   movies,
		ratings:  ratings,
		byID:     make(map[int]int, len(movies)),
		byMovie:  make(map[int][]Rating),
		titleIdx: make(map[string]int, len(movies)),
	}

	genreSet := make(map[string]struct{})
	yearSet := make(map[string]struct{})
	for i, m := range movies {
		if _, ok := s.byID[m.MovieID]; !ok {
			s.byID[m.MovieID] = i
		}
		if _, ok := s.titleIdx[m.Title]; !ok {
			s.titleIdx[m.Title] = i
		}
		for _, g := range m.Genres {
			genreSet[g] = struct{}{}
		}
		if m.Year != "" {
			yearSet[m.Year] = struct{}{}
		}
	}
	for _, r := range ratings {
		s.byMovie[r.MovieID] = append(s.byMovie[r.MovieID], r)
	}
	s.genres = sortedKeys(genreSet)
	s.years = sortedKeys(yearSet)
	return s
}

func (s *Store) Movies() []Movie   { return s.movies }
func (s *Store) Ratings() []Rating { return s.ratings }

// Genres lists every genre label in ascending order.
func (s *Store) Genres() []string { return s.genres }

// Years lists every parsed release year in ascending order.
func (s *Store) Years() []string { return s.years }

// SkippedRows is the number of CSV rows dropped because they failed to parse.
func (s *Store) SkippedRows() int { return s.skipped }

func (s *Store) Titles() []string {
	out := make([]string, len(s.movies))
	for i, m := range s.movies {
		out[i] = m.Title
	}
	return out
}

func (s *Store) MovieByID(id int) (Movie, bool) {
	i, ok := s.byID[id]
	if !ok {
		return Movie{}, false
	}
	return s.movies[i], true
}

// MovieByTitle resolves an exact title. Duplicate titles resolve to the
// first movie in file order.
func (s *Store) MovieByTitle(title string) (Movie, bool) {
	i, ok := s.titleIdx[title]
	if !ok {
		return Movie{}, false
	}
	return s.movies[i], true
}

// RatingsFor returns the ratings of one movie in file order.
func (s *Store) RatingsFor(movieID int) []Rating {
	return s.byMovie[movieID]
}

// Search matches movies against a free-text query. A four-digit token in
// the query ("heat 1995", "heat (1995)") must equal the movie's release
// year; the remaining words must all appear in the title without its year
// suffix. Prefix matches and movies with more ratings rank first; equal
// scores keep file order.
func (s *Store) Search(query string, limit int) []Movie {
	words, year := splitSearchQuery(query)
	if (len(words) == 0 && year == "") || limit <= 0 {
		return nil
	}
	phrase := strings.Join(words, " ")

	type hit struct {
		movie Movie
		score float64
	}
	var hits []hit
	for _, m := range s.movies {
		if year != "" && m.Year != year {
			continue
		}
		title := strings.ToLower(stripYear(m.Title))
		score := 0.0
		for _, w := range words {
			if !strings.Contains(title, w) {
				score = -1
				break
			}
			score++
		}
		if score < 0 {
			continue
		}
		if phrase != "" && strings.HasPrefix(title, phrase) {
			score += 3
		}
		if year != "" {
			score += 2
		}
		score += 0.1 * math.Log1p(float64(len(s.byMovie[m.MovieID])))
		hits = append(hits, hit{movie: m, score: score})
	}
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].score > hits[j].score
	})
	if limit > len(hits) {
		limit = len(hits)
	}
	out := make([]Movie, limit)
	for i := range out {
		out[i] = hits[i].movie
	}
	return out
}

// splitSearchQuery lowercases the query, strips parentheses and pulls out
// the first four-digit token as a year.
func splitSearchQuery(query string) ([]string, string) {
	cleaned := strings.NewReplacer("(", " ", ")", " ").Replace(strings.ToLower(query))
	var words []string
	year := ""
	for _, tok := range strings.Fields(cleaned) {
		if year == "" && isYear(tok) {
			year = tok
			continue
		}
		words = append(words, tok)
	}
	return words, year
}

func isYear(tok string) bool {
	if len(tok) != 4 {
		return false
	}
	for _, c := range tok {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
