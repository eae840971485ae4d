package compare

import (
	"fmt"
	"math"
	"sort"
	"time"

	"moviedash/internal/dataset"
)

const (
	HistogramBins = 10
	HistogramMin  = 0.5
	HistogramMax  = 5.5
)

// Summary holds the descriptive statistics of one movie's ratings. Mean is
// nil without ratings and StdDev is nil with fewer than two.
type Summary struct {
	Count  int      `json:"count"`
	Mean   *float64 `json:"mean"`
	StdDev *float64 `json:"std_dev"`
}

// Bin is one histogram bucket covering [Lo, Hi), the last bucket also
// includes Hi.
type Bin struct {
	Lo    float64 `json:"lo"`
	Hi    float64 `json:"hi"`
	Count int     `json:"count"`
}

type Histogram []Bin

// YearPoint aggregates the ratings given in one calendar year.
type YearPoint struct {
	Year  int     `json:"year"`
	Mean  float64 `json:"mean"`
	Count int     `json:"count"`
}

func Summarize(ratings []dataset.Rating) Summary {
	s := Summary{Count: len(ratings)}
	if s.Count == 0 {
		return s
	}
	sum := 0.0
	for _, r := range ratings {
		sum += r.Rating
	}
	mean := sum / float64(s.Count)
	s.Mean = &mean
	if s.Count < 2 {
		return s
	}
	ss := 0.0
	for _, r := range ratings {
		d := r.Rating - mean
		ss += d * d
	}
	std := math.Sqrt(ss / float64(s.Count-1))
	s.StdDev = &std
	return s
}

// BuildHistogram counts ratings into HistogramBins equal-width bins spanning
// [HistogramMin, HistogramMax]. Values outside the span are ignored.
func BuildHistogram(ratings []dataset.Rating) Histogram {
	width := (HistogramMax - HistogramMin) / HistogramBins
	h := make(Histogram, HistogramBins)
	for i := range h {
		h[i].Lo = HistogramMin + float64(i)*width
		h[i].Hi = HistogramMin + float64(i+1)*width
	}
	for _, r := range ratings {
		v := r.Rating
		if v < HistogramMin || v > HistogramMax || math.IsNaN(v) {
			continue
		}
		i := int(math.Floor((v-HistogramMin)/width + 1e-9))
		if i >= HistogramBins {
			i = HistogramBins - 1
		}
		h[i].Count++
	}
	return h
}

func (h Histogram) Total() int {
	n := 0
	for _, b := range h {
		n += b.Count
	}
	return n
}

// Yearly groups ratings by the UTC calendar year of their timestamp. Years
// without ratings are absent.
func Yearly(ratings []dataset.Rating) []YearPoint {
	type acc struct {
		sum   float64
		count int
	}
	byYear := make(map[int]*acc)
	for _, r := range ratings {
		y := time.Unix(r.Timestamp, 0).UTC().Year()
		a, ok := byYear[y]
		if !ok {
			a = &acc{}
			byYear[y] = a
		}
		a.sum += r.Rating
		a.count++
	}
	out := make([]YearPoint, 0, len(byYear))
	for y, a := range byYear {
		out = append(out, YearPoint{Year: y, Mean: a.sum / float64(a.count), Count: a.count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}

// FormatStat renders a statistic with two decimals, or N/A when unset.
func FormatStat(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.2f", *v)
}
