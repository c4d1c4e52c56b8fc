package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/hyperengineering/reviewlens/internal/types"
)

func writeFixture(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "reviews.csv")
	content := ""
	for _, line := range lines {
		content += line + "\n"
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func validFixture(t *testing.T) string {
	t.Helper()
	return writeFixture(t,
		"ReviewId,ReviewBody,Location,Timestamp",
		`id-1,Loved it,"Denver, Colorado",2021-01-01 09:00:00`,
	)
}

func TestNewCSVStore_LoadsRowsInOrder(t *testing.T) {
	path := writeFixture(t,
		"ReviewId,ReviewBody,Location,Timestamp",
		`id-1,Loved it,"Denver, Colorado",2021-01-01 09:00:00`,
		`id-2,"Fine, I guess","San Diego, California",2021-01-02 10:00:00`,
		`id-3,Terrible,"Phoenix, Arizona",2021-01-03 11:00:00`,
	)

	s, err := NewCSVStore(path)
	if err != nil {
		t.Fatalf("NewCSVStore() error = %v", err)
	}
	defer s.Close()

	got := s.Snapshot()
	if len(got) != 3 {
		t.Fatalf("len(Snapshot()) = %d, want 3", len(got))
	}

	wantIDs := []string{"id-1", "id-2", "id-3"}
	for i, id := range wantIDs {
		if got[i].ID != id {
			t.Errorf("Snapshot()[%d].ID = %q, want %q", i, got[i].ID, id)
		}
	}

	if got[1].Body != "Fine, I guess" {
		t.Errorf("quoted body = %q, want %q", got[1].Body, "Fine, I guess")
	}
	if got[0].Location != "Denver, Colorado" {
		t.Errorf("quoted location = %q, want %q", got[0].Location, "Denver, Colorado")
	}
}

func TestNewCSVStore_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.csv")
	if _, err := NewCSVStore(path); err == nil {
		t.Fatal("NewCSVStore() = nil error for missing file")
	}
}

func TestNewCSVStore_BadHeader(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"wrong column name", "Id,ReviewBody,Location,Timestamp"},
		{"wrong column count", "ReviewId,ReviewBody,Location"},
		{"wrong order", "ReviewBody,ReviewId,Location,Timestamp"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFixture(t, tt.header)
			if _, err := NewCSVStore(path); err == nil {
				t.Errorf("NewCSVStore() = nil error for header %q", tt.header)
			}
		})
	}
}

func TestNewCSVStore_MalformedRow(t *testing.T) {
	path := writeFixture(t,
		"ReviewId,ReviewBody,Location,Timestamp",
		"id-1,only two fields",
	)
	if _, err := NewCSVStore(path); err == nil {
		t.Fatal("NewCSVStore() = nil error for short row")
	}
}

func TestNewCSVStore_EmptyLog(t *testing.T) {
	path := writeFixture(t, "ReviewId,ReviewBody,Location,Timestamp")

	s, err := NewCSVStore(path)
	if err != nil {
		t.Fatalf("NewCSVStore() error = %v", err)
	}
	defer s.Close()

	if got := s.Count(); got != 0 {
		t.Errorf("Count() = %d, want 0", got)
	}
	if got := s.Snapshot(); got == nil || len(got) != 0 {
		t.Errorf("Snapshot() = %v, want empty non-nil slice", got)
	}
}

func TestAppend_DurableThenVisible(t *testing.T) {
	path := writeFixture(t, "ReviewId,ReviewBody,Location,Timestamp")

	s, err := NewCSVStore(path)
	if err != nil {
		t.Fatalf("NewCSVStore() error = %v", err)
	}

	review := types.Review{
		ID:        "id-new",
		Body:      "Great, would return",
		Location:  "Fresno, California",
		Timestamp: "2021-02-01 12:00:00",
	}
	if err := s.Append(context.Background(), review); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	if got := s.Count(); got != 1 {
		t.Errorf("Count() = %d, want 1", got)
	}
	if got := s.Snapshot(); len(got) != 1 || got[0] != review {
		t.Errorf("Snapshot() = %+v, want [%+v]", got, review)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	// A fresh store over the same file must see the appended record.
	reopened, err := NewCSVStore(path)
	if err != nil {
		t.Fatalf("NewCSVStore() after append error = %v", err)
	}
	defer reopened.Close()

	got := reopened.Snapshot()
	if len(got) != 1 || got[0] != review {
		t.Errorf("reloaded Snapshot() = %+v, want [%+v]", got, review)
	}
}

func TestAppend_ClosedStoreLeavesMemoryUntouched(t *testing.T) {
	s, err := NewCSVStore(validFixture(t))
	if err != nil {
		t.Fatalf("NewCSVStore() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	err = s.Append(context.Background(), types.Review{ID: "id-x"})
	if err != ErrClosed {
		t.Fatalf("Append() after Close = %v, want ErrClosed", err)
	}
	if got := s.Count(); got != 1 {
		t.Errorf("Count() = %d after failed append, want 1", got)
	}
}

func TestAppend_CancelledContext(t *testing.T) {
	s, err := NewCSVStore(validFixture(t))
	if err != nil {
		t.Fatalf("NewCSVStore() error = %v", err)
	}
	defer s.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := s.Append(ctx, types.Review{ID: "id-x"}); err == nil {
		t.Fatal("Append() with cancelled context = nil error")
	}
	if got := s.Count(); got != 1 {
		t.Errorf("Count() = %d after cancelled append, want 1", got)
	}
}

func TestSnapshot_IsACopy(t *testing.T) {
	s, err := NewCSVStore(validFixture(t))
	if err != nil {
		t.Fatalf("NewCSVStore() error = %v", err)
	}
	defer s.Close()

	snap := s.Snapshot()
	snap[0].Body = "mutated"

	if got := s.Snapshot()[0].Body; got == "mutated" {
		t.Error("mutating a snapshot leaked into the store")
	}
}

func TestAppend_ConcurrentAppendsAllDurable(t *testing.T) {
	path := writeFixture(t, "ReviewId,ReviewBody,Location,Timestamp")

	s, err := NewCSVStore(path)
	if err != nil {
		t.Fatalf("NewCSVStore() error = %v", err)
	}

	const n = 25
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			review := types.Review{
				ID:        fmt.Sprintf("id-%d", i),
				Body:      "Concurrent append",
				Location:  "Tucson, Arizona",
				Timestamp: "2021-03-01 00:00:00",
			}
			if err := s.Append(context.Background(), review); err != nil {
				t.Errorf("Append(%d) error = %v", i, err)
			}
		}(i)
	}
	wg.Wait()

	if got := s.Count(); got != n {
		t.Errorf("Count() = %d, want %d", got, n)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	reopened, err := NewCSVStore(path)
	if err != nil {
		t.Fatalf("NewCSVStore() after concurrent appends error = %v", err)
	}
	defer reopened.Close()

	if got := reopened.Count(); got != n {
		t.Errorf("reloaded Count() = %d, want %d", got, n)
	}
}

func TestCreateCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "reviews.csv")

	if err := CreateCSV(path); err != nil {
		t.Fatalf("CreateCSV() error = %v", err)
	}

	s, err := NewCSVStore(path)
	if err != nil {
		t.Fatalf("NewCSVStore() over fresh log error = %v", err)
	}
	if got := s.Count(); got != 0 {
		t.Errorf("Count() = %d, want 0", got)
	}
	s.Close()

	if err := CreateCSV(path); err == nil {
		t.Fatal("CreateCSV() over existing file = nil error")
	}
}
