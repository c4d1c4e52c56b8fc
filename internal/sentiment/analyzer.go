package sentiment

import "github.com/hyperengineering/reviewlens/internal/types"

// Analyzer defines the interface contract for sentiment scoring.
// Score must be a deterministic pure function of its input text so repeated
// reads of an unmodified review always produce the same scores.
type Analyzer interface {
	Score(text string) types.SentimentScore
	Name() string
}
