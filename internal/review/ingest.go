package review

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hyperengineering/reviewlens/internal/store"
	"github.com/hyperengineering/reviewlens/internal/types"
	"github.com/hyperengineering/reviewlens/internal/validation"
)

// ValidationError is a client-caused ingestion failure. Its message is safe
// to return verbatim in the response body.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Submission carries the client-supplied fields of a new review. Identity
// and timestamp are never client-supplied; the Ingestor generates both.
type Submission struct {
	Body     string
	Location string
}

// Ingestor validates submissions and appends the assembled reviews to the
// store.
type Ingestor struct {
	store store.Store
	now   func() time.Time
	newID func() string
}

// NewIngestor creates an Ingestor writing to s.
func NewIngestor(s store.Store) *Ingestor {
	return &Ingestor{
		store: s,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// Ingest validates sub, assembles a review with a fresh UUID and the current
// local timestamp, and appends it durably. Client-caused failures return a
// *ValidationError; anything else is a server-side failure. The returned
// review carries no sentiment: scoring is a read-time concern.
func (ing *Ingestor) Ingest(ctx context.Context, sub Submission) (*types.Review, error) {
	var missing validation.Collector
	missing.Add(validation.ValidateRequired("ReviewBody", sub.Body))
	missing.Add(validation.ValidateRequired("Location", sub.Location))
	if missing.HasErrors() {
		return nil, &ValidationError{
			Message: "Missing required fields: " + strings.Join(missing.Fields(), ", "),
		}
	}

	if err := validation.ValidateEnum("Location", sub.Location, types.ValidLocations); err != nil {
		return nil, &ValidationError{Message: "Invalid location"}
	}

	review := types.Review{
		ID:        ing.newID(),
		Body:      sub.Body,
		Location:  sub.Location,
		Timestamp: ing.now().Format(types.TimestampLayout),
	}

	if err := ing.store.Append(ctx, review); err != nil {
		return nil, fmt.Errorf("append review: %w", err)
	}
	return &review, nil
}
