package dataset_test

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"moviedash/internal/compare"
	"moviedash/internal/dataset"
	"moviedash/internal/ranking"
)

func TestLoadRejectsOutOfRangeRatings(t *testing.T) {
	dir := t.TempDir()
	movies := "movieId,title,genres\n1,One (2000),Drama\n2,Two (2001),Drama\n3,Three (2002),Drama\n"
	ratings := "userId,movieId,rating,timestamp\n" +
		"1,1,NaN,1\n" +
		"2,1,5.0,1\n" +
		"1,2,4.0,1\n" +
		"1,3,4.5,1\n" +
		"1,2,7.0,1\n" +
		"3,2,0,1\n" +
		"4,3,+Inf,1\n"
	for name, content := range map[string]string{dataset.MoviesFile: movies, dataset.RatingsFile: ratings} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	s, err := dataset.Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.SkippedRows() != 4 {
		t.Errorf("SkippedRows = %d, want 4", s.SkippedRows())
	}
	if got := len(s.Ratings()); got != 3 {
		t.Fatalf("ratings = %d, want 3", got)
	}

	ranked := ranking.Rank(s, ranking.Query{MinRatings: 1})
	want := []struct {
		id  int
		avg float64
	}{{1, 5.0}, {3, 4.5}, {2, 4.0}}
	if len(ranked) != len(want) {
		t.Fatalf("ranked = %+v", ranked)
	}
	for i, w := range want {
		if ranked[i].MovieID != w.id || ranked[i].AvgRating != w.avg || ranked[i].NumRatings != 1 {
			t.Errorf("row %d = %+v, want movie %d avg %v", i, ranked[i], w.id, w.avg)
		}
	}

	for _, m := range s.Movies() {
		side := compare.DescribeMovie(s, m)
		if side.Histogram.Total() != side.Summary.Count {
			t.Errorf("%s: histogram total %d != count %d", m.Title, side.Histogram.Total(), side.Summary.Count)
		}
		if side.Summary.Mean == nil || math.IsNaN(*side.Summary.Mean) {
			t.Errorf("%s: mean = %v", m.Title, side.Summary.Mean)
		}
	}
}
