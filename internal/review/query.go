package review

import (
	"sort"
	"time"

	"github.com/hyperengineering/reviewlens/internal/sentiment"
	"github.com/hyperengineering/reviewlens/internal/store"
	"github.com/hyperengineering/reviewlens/internal/types"
)

// Filters narrows a read query. Empty fields mean the filter is not applied.
// Dates are calendar dates in YYYY-MM-DD form.
type Filters struct {
	Location  string
	StartDate string
	EndDate   string
}

// Engine answers read queries over the review store: filter, annotate with
// sentiment, sort by compound score descending.
type Engine struct {
	store    store.Store
	analyzer sentiment.Analyzer
}

// NewEngine creates an Engine over the given store and analyzer.
func NewEngine(s store.Store, a sentiment.Analyzer) *Engine {
	return &Engine{store: s, analyzer: a}
}

// Query returns the reviews matching f, each annotated with a sentiment
// score, ordered by compound score descending. Ties keep their store order
// (stable sort over load/append order).
//
// Filtering is fail-closed: a location outside the valid set, a date bound
// that does not parse, or a stored timestamp that does not parse all yield
// an empty result rather than an error. The result is never nil.
func (e *Engine) Query(f Filters) []types.Review {
	reviews := e.store.Snapshot()

	if f.Location != "" {
		if !types.IsValidLocation(f.Location) {
			return []types.Review{}
		}
		kept := make([]types.Review, 0, len(reviews))
		for _, r := range reviews {
			if r.Location == f.Location {
				kept = append(kept, r)
			}
		}
		reviews = kept
	}

	if f.StartDate != "" || f.EndDate != "" {
		kept, ok := filterByDate(reviews, f.StartDate, f.EndDate)
		if !ok {
			return []types.Review{}
		}
		reviews = kept
	}

	for i := range reviews {
		score := e.analyzer.Score(reviews[i].Body)
		reviews[i].Sentiment = &score
	}

	sort.SliceStable(reviews, func(i, j int) bool {
		return reviews[i].Sentiment.Compound > reviews[j].Sentiment.Compound
	})

	if reviews == nil {
		reviews = []types.Review{}
	}
	return reviews
}

// filterByDate keeps reviews whose timestamp falls within the inclusive
// [start 00:00:00, end 00:00:00] window. A one-sided window applies only
// that bound. Reports ok=false when any date or timestamp fails to parse.
func filterByDate(reviews []types.Review, startDate, endDate string) ([]types.Review, bool) {
	var start, end time.Time
	var err error

	if startDate != "" {
		start, err = time.Parse(types.DateLayout, startDate)
		if err != nil {
			return nil, false
		}
	}
	if endDate != "" {
		end, err = time.Parse(types.DateLayout, endDate)
		if err != nil {
			return nil, false
		}
	}

	kept := make([]types.Review, 0, len(reviews))
	for _, r := range reviews {
		ts, err := time.Parse(types.TimestampLayout, r.Timestamp)
		if err != nil {
			return nil, false
		}
		if startDate != "" && ts.Before(start) {
			continue
		}
		if endDate != "" && ts.After(end) {
			continue
		}
		kept = append(kept, r)
	}
	return kept, true
}
