package ranking

import (
	"sort"

	"moviedash/internal/dataset"
)

const (
	// TopN is the length cap of a ranking.
	TopN = 10

	// All is the sentinel that disables the genre or year filter.
	All = "all"

	MinRatingsFloor   = 1
	MinRatingsCeiling = 1000
	DefaultMinRatings = 10
)

// RankedMovie is a movie with its rating aggregate.
type RankedMovie struct {
	MovieID    int              `json:"movie_id"`
	Title      string           `json:"title"`
	Genres     dataset.GenreSet `json:"genres"`
	Year       string           `json:"year,omitempty"`
	AvgRating  float64          `json:"avg_rating"`
	NumRatings int              `json:"num_ratings"`
}

// Query selects which aggregates survive. Empty Genre or Year behave like All.
type Query struct {
	MinRatings int
	Genre      string
	Year       string
}

// Aggregate groups ratings per movie and joins them with the movie table.
// Movies without ratings and ratings of unknown movies are dropped. The
// result is ordered by movie id.
func Aggregate(s *dataset.Store) []RankedMovie {
	type acc struct {
		sum   float64
		count int
	}
	sums := make(map[int]*acc)
	for _, r := range s.Ratings() {
		a, ok := sums[r.MovieID]
		if !ok {
			a = &acc{}
			sums[r.MovieID] = a
		}
		a.sum += r.Rating
		a.count++
	}

	ids := make([]int, 0, len(sums))
	for id := range sums {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	out := make([]RankedMovie, 0, len(ids))
	for _, id := range ids {
		m, ok := s.MovieByID(id)
		if !ok {
			continue
		}
		a := sums[id]
		out = append(out, RankedMovie{
			MovieID:    m.MovieID,
			Title:      m.Title,
			Genres:     m.Genres,
			Year:       m.Year,
			AvgRating:  a.sum / float64(a.count),
			NumRatings: a.count,
		})
	}
	return out
}

// Rank aggregates, filters, sorts by average rating (highest first, ties
// keep movie id order) and truncates to TopN.
func Rank(s *dataset.Store, q Query) []RankedMovie {
	return Top(Filter(Aggregate(s), q.Predicates()...), TopN)
}

// Top stable-sorts rows by average rating descending and keeps the first n.
// rows is sorted in place.
func Top(rows []RankedMovie, n int) []RankedMovie {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].AvgRating > rows[j].AvgRating
	})
	if n < len(rows) {
		rows = rows[:n]
	}
	return rows
}

// ClampMinRatings bounds a requested minimum rating count to the slider range.
func ClampMinRatings(n int) int {
	if n < MinRatingsFloor {
		return MinRatingsFloor
	}
	if n > MinRatingsCeiling {
		return MinRatingsCeiling
	}
	return n
}
