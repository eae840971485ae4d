package dataset

import (
	"regexp"
	"sort"
	"strings"
)

var yearRe = regexp.MustCompile(`\((\d{4})\)`)

// Movie is one row of movies.csv. Year is empty when the title carries no
// "(YYYY)" marker.
type Movie struct {
	MovieID int      `json:"movie_id"`
	Title   string   `json:"title"`
	Genres  GenreSet `json:"genres"`
	Year    string   `json:"year,omitempty"`
}

// Rating is one row of ratings.csv.
type Rating struct {
	UserID    int
	MovieID   int
	Rating    float64
	Timestamp int64
}

// GenreSet keeps the labels of a movie in file order without duplicates.
type GenreSet []string

func ParseGenres(raw string) GenreSet {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return nil
	}
	parts := strings.Split(cleaned, "|")
	out := make(GenreSet, 0, len(parts))
	for _, part := range parts {
		p := strings.TrimSpace(part)
		if p == "" || out.Has(p) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func (g GenreSet) Has(label string) bool {
	for _, v := range g {
		if v == label {
			return true
		}
	}
	return false
}

func (g GenreSet) String() string {
	return strings.Join(g, "|")
}

// ParseYear returns the first four-digit year in parentheses, or "".
func ParseYear(title string) string {
	m := yearRe.FindStringSubmatch(title)
	if len(m) == 2 {
		return m[1]
	}
	return ""
}

func stripYear(title string) string {
	trimmed := strings.TrimSpace(title)
	if len(trimmed) >= 7 && strings.HasSuffix(trimmed, ")") {
		idx := strings.LastIndex(trimmed, "(")
		if idx > 0 {
			return strings.TrimSpace(trimmed[:idx])
		}
	}
	return trimmed
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
