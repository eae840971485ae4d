package compare

import (
	"errors"
	"math"
	"testing"

	"moviedash/internal/dataset"
)

const (
	y2000 = 946684800  // 2000-01-01T00:00:00Z
	y2001 = 978307200  // 2001-01-01T00:00:00Z
	y2010 = 1262304000 // 2010-01-01T00:00:00Z
	y2011 = 1293840000 // 2011-01-01T00:00:00Z
)

func ratingsOf(movieID int, ts int64, values ...float64) []dataset.Rating {
	out := make([]dataset.Rating, len(values))
	for i, v := range values {
		out[i] = dataset.Rating{UserID: i + 1, MovieID: movieID, Rating: v, Timestamp: ts}
	}
	return out
}

func fixture() *dataset.Store {
	movies := []dataset.Movie{
		{MovieID: 1, Title: "Old Movie (1990)"},
		{MovieID: 2, Title: "New Movie (2009)"},
		{MovieID: 3, Title: "Lonely (2005)"},
		{MovieID: 4, Title: "Nobody Watched (2007)"},
		{MovieID: 5, Title: "Old Movie (1990)"},
	}
	var r []dataset.Rating
	r = append(r, ratingsOf(1, y2000, 5.0, 4.0)...)
	r = append(r, ratingsOf(1, y2001+60, 3.0)...)
	r = append(r, ratingsOf(2, y2010, 2.0, 2.5)...)
	r = append(r, ratingsOf(2, y2011-1, 4.5)...)
	r = append(r, ratingsOf(3, y2010, 3.5)...)
	r = append(r, ratingsOf(5, y2000, 1.0)...)
	return dataset.NewStore(movies, r)
}

func TestSummarize(t *testing.T) {
	s := Summarize(ratingsOf(1, 0, 5.0, 4.0, 3.0))
	if s.Count != 3 || s.Mean == nil || *s.Mean != 4.0 {
		t.Fatalf("summary = %+v", s)
	}
	if s.StdDev == nil || math.Abs(*s.StdDev-1.0) > 1e-12 {
		t.Fatalf("sample stddev = %v, want 1.0", s.StdDev)
	}

	one := Summarize(ratingsOf(1, 0, 3.5))
	if one.StdDev != nil {
		t.Fatalf("stddev for n=1 should be unset, got %v", *one.StdDev)
	}
	if FormatStat(one.StdDev) != "N/A" || FormatStat(one.Mean) != "3.50" {
		t.Fatalf("format = %s / %s", FormatStat(one.Mean), FormatStat(one.StdDev))
	}

	none := Summarize(nil)
	if none.Count != 0 || none.Mean != nil || none.StdDev != nil {
		t.Fatalf("empty summary = %+v", none)
	}
}

func TestHistogram(t *testing.T) {
	values := []float64{0.5, 1.0, 1.0, 2.5, 3.0, 4.5, 5.0, 5.0, 5.0}
	h := BuildHistogram(ratingsOf(1, 0, values...))
	if len(h) != HistogramBins {
		t.Fatalf("bins = %d", len(h))
	}
	want := []int{1, 2, 0, 0, 1, 1, 0, 0, 1, 3}
	for i, b := range h {
		if b.Count != want[i] {
			t.Errorf("bin %d [%v,%v) = %d, want %d", i, b.Lo, b.Hi, b.Count, want[i])
		}
	}
	if h[0].Lo != 0.5 || h[9].Hi != 5.5 {
		t.Errorf("span = [%v, %v]", h[0].Lo, h[9].Hi)
	}
	if h.Total() != len(values) {
		t.Errorf("total = %d, want %d", h.Total(), len(values))
	}

	outside := BuildHistogram(ratingsOf(1, 0, 0.0, 6.0, 5.5))
	if outside.Total() != 1 || outside[9].Count != 1 {
		t.Errorf("out-of-span handling = %+v", outside)
	}
}

func TestHistogramTotalsMatchCount(t *testing.T) {
	s := fixture()
	for _, m := range s.Movies() {
		side := DescribeMovie(s, m)
		if side.Histogram.Total() != side.Summary.Count {
			t.Errorf("%s: histogram total %d != count %d", m.Title, side.Histogram.Total(), side.Summary.Count)
		}
	}
}

func TestYearly(t *testing.T) {
	got := Yearly(fixture().RatingsFor(2))
	want := []YearPoint{{Year: 2010, Mean: 3.0, Count: 3}}
	if len(got) != 1 || got[0] != want[0] {
		t.Fatalf("Yearly = %+v, want %+v", got, want)
	}

	got = Yearly(fixture().RatingsFor(1))
	if len(got) != 2 || got[0].Year != 2000 || got[1].Year != 2001 {
		t.Fatalf("Yearly = %+v", got)
	}
	if got[0].Mean != 4.5 || got[0].Count != 2 || got[1].Count != 1 {
		t.Fatalf("Yearly values = %+v", got)
	}
}

func TestCompareDisjointYears(t *testing.T) {
	res, err := Compare(fixture(), "Old Movie (1990)", "New Movie (2009)")
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if res.A.Movie.MovieID != 1 {
		t.Errorf("duplicate title should resolve to first movie, got %d", res.A.Movie.MovieID)
	}
	years := map[int]bool{}
	for _, p := range res.A.Yearly {
		years[p.Year] = true
	}
	for _, p := range res.B.Yearly {
		if years[p.Year] {
			t.Errorf("year %d present in both series", p.Year)
		}
	}
	if len(res.A.Yearly) == 0 || len(res.B.Yearly) == 0 {
		t.Fatal("both series must be kept")
	}
}

func TestCompareSameTitle(t *testing.T) {
	res, err := Compare(fixture(), "Lonely (2005)", "Lonely (2005)")
	if err != nil {
		t.Fatal(err)
	}
	if res.A.Summary.Count != 1 || res.B.Summary.StdDev != nil {
		t.Fatalf("result = %+v", res)
	}
}

func TestCompareNoRatings(t *testing.T) {
	res, err := Compare(fixture(), "Nobody Watched (2007)", "Lonely (2005)")
	if err != nil {
		t.Fatal(err)
	}
	if res.A.Summary.Mean != nil || len(res.A.Yearly) != 0 || res.A.Histogram.Total() != 0 {
		t.Fatalf("side A = %+v", res.A)
	}
	if !res.HasYearly() {
		t.Error("HasYearly should hold while one side has ratings")
	}

	res, err = Compare(fixture(), "Nobody Watched (2007)", "Nobody Watched (2007)")
	if err != nil {
		t.Fatal(err)
	}
	if res.HasYearly() {
		t.Error("HasYearly should be false when neither side has ratings")
	}
}

func TestCompareNotFound(t *testing.T) {
	_, err := Compare(fixture(), "Old Movie (1990)", "Missing (1999)")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
