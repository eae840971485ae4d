package compare

import (
	"errors"
	"fmt"

	"moviedash/internal/dataset"
)

// ErrNotFound reports a title that matches no movie.
var ErrNotFound = errors.New("movie not found")

// Side is everything shown for one movie of a comparison.
type Side struct {
	Movie     dataset.Movie `json:"movie"`
	Summary   Summary       `json:"summary"`
	Histogram Histogram     `json:"histogram"`
	Yearly    []YearPoint   `json:"yearly"`
}

type Result struct {
	A Side `json:"a"`
	B Side `json:"b"`
}

// Compare resolves both titles and computes their statistics. The two
// yearly series are independent and may cover different years.
func Compare(s *dataset.Store, titleA, titleB string) (*Result, error) {
	a, err := Describe(s, titleA)
	if err != nil {
		return nil, err
	}
	b, err := Describe(s, titleB)
	if err != nil {
		return nil, err
	}
	return &Result{A: a, B: b}, nil
}

// Describe resolves one title by exact match and slices its ratings.
func Describe(s *dataset.Store, title string) (Side, error) {
	m, ok := s.MovieByTitle(title)
	if !ok {
		return Side{}, fmt.Errorf("%w: %q", ErrNotFound, title)
	}
	return DescribeMovie(s, m), nil
}

func DescribeMovie(s *dataset.Store, m dataset.Movie) Side {
	ratings := s.RatingsFor(m.MovieID)
	return Side{
		Movie:     m,
		Summary:   Summarize(ratings),
		Histogram: BuildHistogram(ratings),
		Yearly:    Yearly(ratings),
	}
}

// Sides returns A and B in display order.
func (r *Result) Sides() []Side {
	return []Side{r.A, r.B}
}

// HasYearly reports whether either movie has at least one yearly point.
func (r *Result) HasYearly() bool {
	return len(r.A.Yearly) > 0 || len(r.B.Yearly) > 0
}
