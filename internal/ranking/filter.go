package ranking

// Predicate reports whether a ranked row should be kept.
type Predicate func(RankedMovie) bool

func MinRatings(n int) Predicate {
	return func(m RankedMovie) bool { return m.NumRatings >= n }
}

func InGenre(genre string) Predicate {
	return func(m RankedMovie) bool { return m.Genres.Has(genre) }
}

func ReleasedIn(year string) Predicate {
	return func(m RankedMovie) bool { return m.Year == year }
}

// Predicates builds the filter pipeline in order: rating count, genre, year.
func (q Query) Predicates() []Predicate {
	preds := []Predicate{MinRatings(q.MinRatings)}
	if !isAll(q.Genre) {
		preds = append(preds, InGenre(q.Genre))
	}
	if !isAll(q.Year) {
		preds = append(preds, ReleasedIn(q.Year))
	}
	return preds
}

// Filter applies each predicate in turn and returns the surviving rows in
// their original order.
func Filter(rows []RankedMovie, preds ...Predicate) []RankedMovie {
	for _, p := range preds {
		kept := rows[:0:0]
		for _, r := range rows {
			if p(r) {
				kept = append(kept, r)
			}
		}
		rows = kept
	}
	return rows
}

func isAll(v string) bool {
	return v == "" || v == All
}
