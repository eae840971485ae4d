package dataset

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
)

const (
	MoviesFile  = "movies.csv"
	RatingsFile = "ratings.csv"

	MinRating = 0.5
	MaxRating = 5.0
)

// ErrMissingFile reports that an input table does not exist.
var ErrMissingFile = errors.New("data file missing")

// Load reads both tables from dir and indexes them.
func Load(dir string) (*Store, error) {
	moviesPath := filepath.Join(dir, MoviesFile)
	ratingsPath := filepath.Join(dir, RatingsFile)

	movies, skippedMovies, err := loadMoviesCSV(moviesPath)
	if err != nil {
		return nil, err
	}
	ratings, skippedRatings, err := loadRatingsCSV(ratingsPath)
	if err != nil {
		return nil, err
	}

	s := NewStore(movies, ratings)
	s.skipped = skippedMovies + skippedRatings
	return s, nil
}

// Loader memoizes Load for the lifetime of the process. The first call reads
// the files; every later call returns the same store or the same error.
type Loader struct {
	dir   string
	once  sync.Once
	store *Store
	err   error
}

func NewLoader(dir string) *Loader {
	return &Loader{dir: dir}
}

func (l *Loader) Dir() string { return l.dir }

func (l *Loader) Load() (*Store, error) {
	l.once.Do(func() {
		l.store, l.err = Load(l.dir)
	})
	return l.store, l.err
}

func openCSV(path string) (*os.File, *csv.Reader, map[string]int, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, nil, fmt.Errorf("%w: %s", ErrMissingFile, path)
		}
		return nil, nil, nil, err
	}

	reader := csv.NewReader(bufio.NewReader(file))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		file.Close()
		if err == io.EOF {
			return nil, nil, nil, fmt.Errorf("empty file %s", path)
		}
		return nil, nil, nil, fmt.Errorf("read header of %s: %w", path, err)
	}
	return file, reader, headerIndex(header), nil
}

func requireColumns(idx map[string]int, path string, cols ...string) error {
	for _, col := range cols {
		if _, ok := idx[col]; !ok {
			return fmt.Errorf("missing column %s in %s", col, path)
		}
	}
	return nil
}

func loadMoviesCSV(path string) ([]Movie, int, error) {
	file, reader, idx, err := openCSV(path)
	if err != nil {
		return nil, 0, err
	}
	defer file.Close()

	if err := requireColumns(idx, path, "movieId", "title", "genres"); err != nil {
		return nil, 0, err
	}

	var movies []Movie
	skipped := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("read %s: %w", path, err)
		}

		movieID, err := strconv.Atoi(field(row, idx, "movieId"))
		if err != nil {
			skipped++
			continue
		}
		title := field(row, idx, "title")
		movies = append(movies, Movie{
			MovieID: movieID,
			Title:   title,
			Genres:  ParseGenres(field(row, idx, "genres")),
			Year:    ParseYear(title),
		})
	}

	return movies, skipped, nil
}

func loadRatingsCSV(path string) ([]Rating, int, error) {
	file, reader, idx, err := openCSV(path)
	if err != nil {
		return nil, 0, err
	}
	defer file.Close()

	if err := requireColumns(idx, path, "userId", "movieId", "rating", "timestamp"); err != nil {
		return nil, 0, err
	}

	var ratings []Rating
	skipped := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("read %s: %w", path, err)
		}

		userID, err1 := strconv.Atoi(field(row, idx, "userId"))
		movieID, err2 := strconv.Atoi(field(row, idx, "movieId"))
		rating, err3 := strconv.ParseFloat(field(row, idx, "rating"), 64)
		ts, err4 := strconv.ParseInt(field(row, idx, "timestamp"), 10, 64)
		// The range check also rejects NaN and ±Inf.
		if err1 != nil || err2 != nil || err3 != nil || err4 != nil || !(rating >= MinRating && rating <= MaxRating) {
			skipped++
			continue
		}
		ratings = append(ratings, Rating{
			UserID:    userID,
			MovieID:   movieID,
			Rating:    rating,
			Timestamp: ts,
		})
	}

	return ratings, skipped, nil
}

func headerIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, col := range header {
		idx[strings.TrimSpace(strings.TrimPrefix(col, "\ufeff"))] = i
	}
	return idx
}

func field(row []string, idx map[string]int, col string) string {
	i, ok := idx[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
