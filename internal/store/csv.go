package store

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/hyperengineering/reviewlens/internal/types"
)

// header is the column order of the durable log. Rows round-trip through
// types.Review field by field in this order.
var header = []string{"ReviewId", "ReviewBody", "Location", "Timestamp"}

// CSVStore is a Store backed by a flat append-only CSV log.
//
// The whole log is read into memory at construction and kept there for the
// process lifetime. Append writes the row durably (flush + fsync) before the
// in-memory slice is touched, so a failed write never leaves partial state
// visible to readers. Appends are serialized behind the mutex; Snapshot takes
// a copy under a read lock.
type CSVStore struct {
	mu      sync.RWMutex
	path    string
	file    *os.File
	writer  *csv.Writer
	reviews []types.Review
	closed  bool
}

// NewCSVStore opens the log at path and loads every record, preserving file
// order. A missing, unreadable, or malformed log is a construction error:
// the process must not start serving over a log it cannot trust.
func NewCSVStore(path string) (*CSVStore, error) {
	reviews, err := loadAll(path)
	if err != nil {
		return nil, err
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log for append: %w", err)
	}

	return &CSVStore{
		path:    path,
		file:    f,
		writer:  csv.NewWriter(f),
		reviews: reviews,
	}, nil
}

func loadAll(path string) ([]types.Review, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)

	got, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read log header: %w", err)
	}
	if len(got) != len(header) {
		return nil, fmt.Errorf("log header has %d columns, want %d", len(got), len(header))
	}
	for i, name := range header {
		if got[i] != name {
			return nil, fmt.Errorf("log header column %d is %q, want %q", i, got[i], name)
		}
	}

	// The header fixes FieldsPerRecord, so short or long rows fail here.
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read log rows: %w", err)
	}

	reviews := make([]types.Review, len(rows))
	for i, row := range rows {
		reviews[i] = types.Review{
			ID:        row[0],
			Body:      row[1],
			Location:  row[2],
			Timestamp: row[3],
		}
	}
	return reviews, nil
}

// Snapshot returns a copy of the current record set in log order.
func (s *CSVStore) Snapshot() []types.Review {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]types.Review, len(s.reviews))
	copy(out, s.reviews)
	return out
}

// Count returns the number of records currently held.
func (s *CSVStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.reviews)
}

// Append writes review to the durable log, then adds it to the in-memory
// set. If the durable write fails the in-memory set is left untouched and
// the error is returned to the caller.
func (s *CSVStore) Append(ctx context.Context, review types.Review) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	row := []string{review.ID, review.Body, review.Location, review.Timestamp}
	if err := s.writer.Write(row); err != nil {
		return fmt.Errorf("write log row: %w", err)
	}
	s.writer.Flush()
	if err := s.writer.Error(); err != nil {
		return fmt.Errorf("flush log row: %w", err)
	}
	if err := s.file.Sync(); err != nil {
		return fmt.Errorf("sync log: %w", err)
	}

	s.reviews = append(s.reviews, review)
	return nil
}

// Close releases the append handle. Further appends return ErrClosed.
func (s *CSVStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	return s.file.Close()
}

// CreateCSV creates a fresh, empty log at path with the header row. It
// refuses to overwrite an existing file.
func CreateCSV(path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create log directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("create log: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		f.Close()
		return fmt.Errorf("write log header: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flush log header: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("sync log: %w", err)
	}
	return f.Close()
}
