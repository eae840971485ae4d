package ranking

import (
	"io"

	"github.com/go-gota/gota/dataframe"
)

type exportRow struct {
	Rank       int     `dataframe:"rank"`
	MovieID    int     `dataframe:"movieId"`
	Title      string  `dataframe:"title"`
	Genres     string  `dataframe:"genres"`
	Year       string  `dataframe:"year"`
	AvgRating  float64 `dataframe:"avg_rating"`
	NumRatings int     `dataframe:"num_ratings"`
}

// Frame converts a ranking into a DataFrame with one row per movie.
func Frame(rows []RankedMovie) dataframe.DataFrame {
	out := make([]exportRow, len(rows))
	for i, r := range rows {
		out[i] = exportRow{
			Rank:       i + 1,
			MovieID:    r.MovieID,
			Title:      r.Title,
			Genres:     r.Genres.String(),
			Year:       r.Year,
			AvgRating:  r.AvgRating,
			NumRatings: r.NumRatings,
		}
	}
	return dataframe.LoadStructs(out)
}

// WriteCSV writes a ranking as CSV with a header row.
func WriteCSV(w io.Writer, rows []RankedMovie) error {
	if len(rows) == 0 {
		_, err := io.WriteString(w, "rank,movieId,title,genres,year,avg_rating,num_ratings\n")
		return err
	}
	df := Frame(rows)
	if df.Err != nil {
		return df.Err
	}
	return df.WriteCSV(w)
}
