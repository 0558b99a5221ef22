package recs

import (
	"fmt"
	"sort"

	"movierec/internal/catalog"
	"movierec/pkg/apperr"
)

// DefaultTopK is how many similar titles are returned when the caller
// does not ask for a specific count.
const DefaultTopK = 6

type Recommendation struct {
	MovieID int     `json:"movie_id"`
	Title   string  `json:"title"`
	Score   float64 `json:"score"`
}

// Engine ranks catalog movies by precomputed similarity. It is a pure
// function of the immutable catalog, so it is safe for concurrent use.
type Engine struct {
	Catalog *catalog.Store
}

func NewEngine(store *catalog.Store) *Engine {
	return &Engine{Catalog: store}
}

// Recommend returns up to k movies most similar to the given title, best
// first. The queried movie is never part of its own result. Ties keep
// catalog order, so equal scores rank deterministically.
func (e *Engine) Recommend(title string, k int) ([]Recommendation, error) {
	_, row, ok := e.Catalog.ByTitle(title)
	if !ok {
		return nil, fmt.Errorf("%w: title %q not in catalog", apperr.ErrNotFound, title)
	}

	scores, err := e.Catalog.Row(row)
	if err != nil {
		return nil, err
	}

	type scored struct {
		idx   int
		score float64
	}
	pairs := make([]scored, 0, len(scores)-1)
	for i, s := range scores {
		if i == row {
			continue
		}
		pairs = append(pairs, scored{idx: i, score: s})
	}

	sort.SliceStable(pairs, func(i, j int) bool {
		return pairs[i].score > pairs[j].score
	})

	if k < 0 {
		k = 0
	}
	if k > len(pairs) {
		k = len(pairs)
	}

	movies := e.Catalog.Movies()
	out := make([]Recommendation, 0, k)
	for _, p := range pairs[:k] {
		m := movies[p.idx]
		out = append(out, Recommendation{MovieID: m.ID, Title: m.Title, Score: p.score})
	}
	return out, nil
}
