package charts

import (
	"errors"
	"fmt"
	"io"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"moviedash/internal/compare"
)

const (
	Width  = 640
	Height = 400
)

// ErrNoData is returned when none of the series has a point to draw.
var ErrNoData = errors.New("no data to plot")

var palette = []drawing.Color{
	drawing.ColorFromHex("1f77b4"),
	drawing.ColorFromHex("ff7f0e"),
}

func lineStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeColor: col,
		StrokeWidth: 2,
		DotColor:    col,
		DotWidth:    3,
	}
}

func padding() chart.Style {
	return chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}}
}

// Histogram renders the rating distribution of one movie as a PNG bar chart.
func Histogram(w io.Writer, title string, h compare.Histogram) error {
	if len(h) == 0 {
		return ErrNoData
	}
	bars := make([]chart.Value, len(h))
	maxCount := 0
	for i, b := range h {
		bars[i] = chart.Value{
			Value: float64(b.Count),
			Label: fmt.Sprintf("%.1f", b.Lo),
			Style: chart.Style{FillColor: palette[0], StrokeColor: palette[0]},
		}
		if b.Count > maxCount {
			maxCount = b.Count
		}
	}
	if maxCount == 0 {
		maxCount = 1
	}

	bc := chart.BarChart{
		Title:      title,
		Background: padding(),
		Width:      Width,
		Height:     Height,
		BarWidth:   40,
		BarSpacing: 10,
		YAxis: chart.YAxis{
			Name:           "Count",
			Range:          &chart.ContinuousRange{Min: 0, Max: float64(maxCount)},
			ValueFormatter: intFormatter,
		},
		Bars: bars,
	}
	return bc.Render(chart.PNG, w)
}

// Line is one named yearly series of a dual-line chart.
type Line struct {
	Name   string
	Points []compare.YearPoint
}

// YearlyAverage plots the mean rating per year of each line.
func YearlyAverage(w io.Writer, title string, lines ...Line) error {
	return yearly(w, title, "Average rating", &chart.ContinuousRange{Min: 0, Max: 5.5}, lines, func(p compare.YearPoint) float64 {
		return p.Mean
	})
}

// YearlyCount plots the number of ratings per year of each line.
func YearlyCount(w io.Writer, title string, lines ...Line) error {
	maxCount := 1
	for _, l := range lines {
		for _, p := range l.Points {
			if p.Count > maxCount {
				maxCount = p.Count
			}
		}
	}
	yr := &chart.ContinuousRange{Min: 0, Max: math.Ceil(float64(maxCount) * 1.1)}
	return yearly(w, title, "Ratings", yr, lines, func(p compare.YearPoint) float64 {
		return float64(p.Count)
	})
}

// yearly draws every non-empty line with its own x extent; lines are not
// aligned to a common set of years.
func yearly(w io.Writer, title, yName string, yr *chart.ContinuousRange, lines []Line, value func(compare.YearPoint) float64) error {
	series := []chart.Series{}
	minYear, maxYear := math.MaxInt, math.MinInt
	for i, l := range lines {
		if len(l.Points) == 0 {
			continue
		}
		xs := make([]float64, len(l.Points))
		ys := make([]float64, len(l.Points))
		for j, p := range l.Points {
			xs[j] = float64(p.Year)
			ys[j] = value(p)
			if p.Year < minYear {
				minYear = p.Year
			}
			if p.Year > maxYear {
				maxYear = p.Year
			}
		}
		series = append(series, chart.ContinuousSeries{
			Name:    l.Name,
			XValues: xs,
			YValues: ys,
			Style:   lineStyle(palette[i%len(palette)]),
		})
	}
	if len(series) == 0 {
		return ErrNoData
	}

	lo, hi := minYear, maxYear
	if lo == hi {
		lo--
		hi++
	}

	ch := chart.Chart{
		Title:      title,
		Background: padding(),
		Width:      Width,
		Height:     Height,
		XAxis: chart.XAxis{
			Name:  "Year",
			Range: &chart.ContinuousRange{Min: float64(lo), Max: float64(hi)},
			Ticks: yearTicks(lo, hi),
		},
		YAxis: chart.YAxis{
			Name:  yName,
			Range: yr,
		},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	return ch.Render(chart.PNG, w)
}

// yearTicks labels whole years, thinning them out to at most a dozen ticks.
func yearTicks(lo, hi int) []chart.Tick {
	step := 1
	for (hi-lo)/step > 12 {
		step++
	}
	var ticks []chart.Tick
	for y := lo; y <= hi; y += step {
		ticks = append(ticks, chart.Tick{Value: float64(y), Label: fmt.Sprintf("%d", y)})
	}
	return ticks
}

func intFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return fmt.Sprintf("%d", int(math.Round(f)))
	}
	return fmt.Sprintf("%v", v)
}
