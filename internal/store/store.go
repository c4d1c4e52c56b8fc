package store

import (
	"context"

	"github.com/hyperengineering/reviewlens/internal/types"
)

// Store defines the interface contract for review persistence.
//
// The record set is append-only: reviews are never mutated or removed.
// Snapshot returns the records in durable-log order (load order, then
// append order), and may race with a concurrent Append; callers tolerate
// seeing either the pre- or post-append state.
type Store interface {
	Snapshot() []types.Review
	Append(ctx context.Context, review types.Review) error
	Count() int
	Close() error
}
