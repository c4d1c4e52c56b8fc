package sentiment

import (
	"github.com/jonreiter/govader"

	"github.com/hyperengineering/reviewlens/internal/types"
)

// VADER scores text with the VADER lexicon-and-rules model. The underlying
// analyzer is read-only after construction, so one instance may be shared
// across concurrent requests.
type VADER struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

// NewVADER creates a VADER analyzer with the default lexicon.
func NewVADER() *VADER {
	return &VADER{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// Score returns the polarity breakdown for text. Compound is in [-1, 1].
func (v *VADER) Score(text string) types.SentimentScore {
	s := v.analyzer.PolarityScores(text)
	return types.SentimentScore{
		Compound: s.Compound,
		Pos:      s.Positive,
		Neu:      s.Neutral,
		Neg:      s.Negative,
	}
}

// Name identifies the scoring model.
func (v *VADER) Name() string {
	return "vader"
}
