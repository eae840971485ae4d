// Command report prints the top rated movies, and optionally a two-movie
// comparison, as terminal tables.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"moviedash/internal/compare"
	"moviedash/internal/config"
	"moviedash/internal/dataset"
	"moviedash/internal/ranking"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}

	dataDir := flag.String("data", cfg.DataDir, "directory containing movies.csv and ratings.csv")
	minRatings := flag.Int("min", ranking.DefaultMinRatings, "minimum number of ratings (1-1000)")
	genre := flag.String("genre", ranking.All, "genre filter")
	year := flag.String("year", ranking.All, "release year filter")
	titleA := flag.String("a", "", "first movie title to compare")
	titleB := flag.String("b", "", "second movie title to compare")
	flag.Parse()

	store, err := dataset.NewLoader(*dataDir).Load()
	if err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}

	q := ranking.Query{
		MinRatings: ranking.ClampMinRatings(*minRatings),
		Genre:      *genre,
		Year:       *year,
	}
	printRanking(os.Stdout, ranking.Rank(store, q), q)

	if *titleA == "" || *titleB == "" {
		return
	}
	res, err := compare.Compare(store, *titleA, *titleB)
	if err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
	printComparison(os.Stdout, res)
}

func printRanking(w io.Writer, rows []ranking.RankedMovie, q ranking.Query) {
	color.New(color.FgYellow).Fprintf(w, "\nTop %d movies (min %d ratings, genre %s, year %s)\n",
		ranking.TopN, q.MinRatings, q.Genre, q.Year)
	if len(rows) == 0 {
		fmt.Fprintln(w, "No movies match the filters.")
		return
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Rank", "Title", "Genres", "Avg Rating", "Ratings"})
	for i, r := range rows {
		table.Append([]string{
			fmt.Sprintf("%d", i+1),
			r.Title,
			r.Genres.String(),
			fmt.Sprintf("%.2f", r.AvgRating),
			fmt.Sprintf("%d", r.NumRatings),
		})
	}
	table.Render()
}

func printComparison(w io.Writer, res *compare.Result) {
	color.New(color.FgYellow).Fprintln(w, "\nComparison")
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"", res.A.Movie.Title, res.B.Movie.Title})
	table.Append([]string{"Average rating", compare.FormatStat(res.A.Summary.Mean), compare.FormatStat(res.B.Summary.Mean)})
	table.Append([]string{"Ratings", fmt.Sprintf("%d", res.A.Summary.Count), fmt.Sprintf("%d", res.B.Summary.Count)})
	table.Append([]string{"Standard deviation", compare.FormatStat(res.A.Summary.StdDev), compare.FormatStat(res.B.Summary.StdDev)})
	for i := range res.A.Histogram {
		a, b := res.A.Histogram[i], res.B.Histogram[i]
		table.Append([]string{
			fmt.Sprintf("Rating %.1f-%.1f", a.Lo, a.Hi),
			fmt.Sprintf("%d", a.Count),
			fmt.Sprintf("%d", b.Count),
		})
	}
	table.Render()

	color.New(color.FgYellow).Fprintln(w, "\nRatings per year")
	years := tablewriter.NewWriter(w)
	years.SetHeader([]string{"Movie", "Year", "Avg Rating", "Ratings"})
	for _, side := range res.Sides() {
		for _, p := range side.Yearly {
			years.Append([]string{side.Movie.Title, fmt.Sprintf("%d", p.Year), fmt.Sprintf("%.2f", p.Mean), fmt.Sprintf("%d", p.Count)})
		}
	}
	years.Render()
}
