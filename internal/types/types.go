package types

// TimestampLayout is the textual form of review timestamps, both in the
// durable log and on the wire.
const TimestampLayout = "2006-01-02 15:04:05"

// DateLayout is the textual form of the start_date/end_date query bounds.
const DateLayout = "2006-01-02"

// Review is a single customer review. The JSON key names mirror the columns
// of the durable log so records round-trip through ingestion unchanged.
type Review struct {
	ID        string          `json:"ReviewId"`
	Body      string          `json:"ReviewBody"`
	Location  string          `json:"Location"`
	Timestamp string          `json:"Timestamp"`
	Sentiment *SentimentScore `json:"sentiment,omitempty"`
}

// SentimentScore is the derived polarity breakdown for a review body.
// It is computed on every read and never persisted.
type SentimentScore struct {
	Compound float64 `json:"compound"`
	Pos      float64 `json:"pos"`
	Neu      float64 `json:"neu"`
	Neg      float64 `json:"neg"`
}

// ValidLocations is the closed set of locations a review may carry.
// Both the read-side filter and write-side validation consume this one list.
var ValidLocations = []string{
	"Albuquerque, New Mexico",
	"Carlsbad, California",
	"Chula Vista, California",
	"Colorado Springs, Colorado",
	"Denver, Colorado",
	"El Cajon, California",
	"El Paso, Texas",
	"Escondido, California",
	"Fresno, California",
	"La Mesa, California",
	"Las Vegas, Nevada",
	"Los Angeles, California",
	"Oceanside, California",
	"Phoenix, Arizona",
	"Sacramento, California",
	"Salt Lake City, Utah",
	"San Diego, California",
	"Tucson, Arizona",
}

var validLocationSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(ValidLocations))
	for _, loc := range ValidLocations {
		set[loc] = struct{}{}
	}
	return set
}()

// IsValidLocation reports whether loc is a member of ValidLocations.
// Matching is exact and case-sensitive.
func IsValidLocation(loc string) bool {
	_, ok := validLocationSet[loc]
	return ok
}
