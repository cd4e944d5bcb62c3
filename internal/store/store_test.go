package store

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/mattn/go-sqlite3"

	"github.com/ademuri/spotify-eda/internal/cache"
)

func createTestDb(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "cache.db")

	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("New(%s) error: %v", dbPath, err)
	}

	return store
}

func TestGetMiss(t *testing.T) {
	s := createTestDb(t)
	defer s.Close()

	_, err := s.Get("absent")
	if !errors.Is(err, cache.ErrMiss) {
		t.Fatalf("Get(absent) error = %v, want ErrMiss", err)
	}
}

func TestSetAndGet(t *testing.T) {
	s := createTestDb(t)
	defer s.Close()

	if err := s.Set("k", []byte("first")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	// Replacing an entry is not an error.
	if err := s.Set("k", []byte("second")); err != nil {
		t.Fatalf("Set (replace): %v", err)
	}

	got, err := s.Get("k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != "second" {
		t.Errorf("Get(k) = %q, want %q", got, "second")
	}

	n, err := s.Len()
	if err != nil {
		t.Fatalf("Len: %v", err)
	}
	if n != 1 {
		t.Errorf("Len() = %d, want 1", n)
	}
}

func TestPersistsAcrossOpen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "cache.db")
	s, err := New(dbPath)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := s.Set("k", []byte("v")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	s.Close()

	reopened, err := New(dbPath)
	if err != nil {
		t.Fatalf("New (reopen): %v", err)
	}
	defer reopened.Close()
	got, err := reopened.Get("k")
	if err != nil {
		t.Fatalf("Get after reopen: %v", err)
	}
	if string(got) != "v" {
		t.Errorf("Get(k) = %q, want %q", got, "v")
	}
}

func TestPurge(t *testing.T) {
	s := createTestDb(t)
	defer s.Close()

	for _, k := range []string{"a", "b", "c"} {
		if err := s.Set(k, []byte(k)); err != nil {
			t.Fatalf("Set(%q): %v", k, err)
		}
	}
	removed, err := s.Purge()
	if err != nil {
		t.Fatalf("Purge: %v", err)
	}
	if removed != 3 {
		t.Errorf("Purge() removed %d, want 3", removed)
	}
	if _, err := s.Get("a"); !errors.Is(err, cache.ErrMiss) {
		t.Errorf("Get(a) after purge error = %v, want ErrMiss", err)
	}
}

func TestFetchThroughStore(t *testing.T) {
	s := createTestDb(t)
	defer s.Close()

	calls := 0
	compute := func() ([]byte, error) {
		calls++
		return []byte("computed"), nil
	}
	key := cache.Key("fingerprint", "genres", 15)
	for i := 0; i < 2; i++ {
		got, err := cache.Fetch(s, key, compute)
		if err != nil {
			t.Fatalf("Fetch: %v", err)
		}
		if string(got) != "computed" {
			t.Errorf("Fetch() = %q", got)
		}
	}
	if calls != 1 {
		t.Errorf("compute called %d times, want 1", calls)
	}
}

func TestIsBusy(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{sqlite3.Error{Code: sqlite3.ErrBusy}, true},
		{sqlite3.Error{Code: sqlite3.ErrLocked}, true},
		{sqlite3.Error{Code: sqlite3.ErrConstraint}, false},
		{errors.New("other"), false},
	}
	for _, tt := range tests {
		if got := isBusy(tt.err); got != tt.want {
			t.Errorf("isBusy(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}
