// Reelpick - Telegram Movie Recommendation Bot
// Copyright 2026 Reelpick Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelpick/reelpick

package store

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/reelpick/reelpick/internal/logging"
	"github.com/reelpick/reelpick/internal/models"
)

func testStore(t *testing.T) *MovieStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "movies.json")
	s := NewMovieStore(path, logging.NewTestLogger(io.Discard))
	if err := s.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return s
}

func movie(id int, genres ...int) models.Movie {
	return models.Movie{ID: id, Title: "m", GenreIDs: genres}
}

// --- Test: Load bootstrap ---

func TestMovieStoreLoadCreatesMissingFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "sub", "movies.json")
	s := NewMovieStore(path, logging.NewTestLogger(io.Discard))
	if err := s.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("store file not created: %v", err)
	}
	if string(data) != "[]" {
		t.Errorf("bootstrap file = %q, want empty array", data)
	}
}

func TestMovieStoreLoadSelfHealsCorruptFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "movies.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	s := NewMovieStore(path, logging.NewTestLogger(io.Discard))
	if err := s.Load(); err != nil {
		t.Fatalf("Load() error = %v, want self-heal", err)
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0 after reinit", s.Len())
	}
}

func TestMovieStoreLoadExisting(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "movies.json")
	s := NewMovieStore(path, logging.NewTestLogger(io.Discard))
	if err := s.Load(); err != nil {
		t.Fatal(err)
	}
	s.Upsert([]models.Movie{movie(1, 28), movie(2, 35)})

	// Fresh store instance over the same file
	s2 := NewMovieStore(path, logging.NewTestLogger(io.Discard))
	if err := s2.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s2.Len() != 2 {
		t.Errorf("Len() = %d, want 2 after reload", s2.Len())
	}
	// Dedup index rebuilt from disk
	if got := s2.Upsert([]models.Movie{movie(1, 28)}); got != 0 {
		t.Errorf("Upsert(existing) after reload = %d, want 0", got)
	}
}

// --- Test: Upsert ---

func TestMovieStoreUpsertDedup(t *testing.T) {
	t.Parallel()

	s := testStore(t)

	if got := s.Upsert([]models.Movie{movie(1, 28), movie(2, 28)}); got != 2 {
		t.Fatalf("first Upsert = %d, want 2", got)
	}
	if got := s.Upsert([]models.Movie{movie(1, 28), movie(3, 28)}); got != 1 {
		t.Fatalf("overlapping Upsert = %d, want 1", got)
	}
	if s.Len() != 3 {
		t.Errorf("Len() = %d, want 3", s.Len())
	}
}

func TestMovieStoreUpsertKeepsFirstSavedAt(t *testing.T) {
	t.Parallel()

	s := testStore(t)

	first := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	second := first.Add(48 * time.Hour)

	s.now = func() time.Time { return first }
	s.Upsert([]models.Movie{movie(1, 28)})

	s.now = func() time.Time { return second }
	s.Upsert([]models.Movie{movie(1, 28)}) // overlapping page re-delivers the movie

	got := s.FindEligible(28, nil)
	if len(got) != 1 {
		t.Fatalf("FindEligible = %d movies, want 1", len(got))
	}
	if !got[0].SavedAt.Equal(first) {
		t.Errorf("SavedAt = %v, want first insert time %v", got[0].SavedAt, first)
	}
}

func TestMovieStoreUpsertSkipsWriteWhenAllDuplicates(t *testing.T) {
	t.Parallel()

	s := testStore(t)
	s.Upsert([]models.Movie{movie(1, 28)})

	info, err := os.Stat(s.path)
	if err != nil {
		t.Fatal(err)
	}
	before := info.ModTime()

	// Make a no-op upsert land after a visible mtime gap.
	if err := os.Chtimes(s.path, before.Add(-time.Hour), before.Add(-time.Hour)); err != nil {
		t.Fatal(err)
	}

	if got := s.Upsert([]models.Movie{movie(1, 28)}); got != 0 {
		t.Fatalf("Upsert = %d, want 0", got)
	}

	info, err = os.Stat(s.path)
	if err != nil {
		t.Fatal(err)
	}
	if !info.ModTime().Equal(before.Add(-time.Hour)) {
		t.Error("store file was rewritten on a duplicate-only upsert")
	}
}

func TestMovieStoreUpsertPersists(t *testing.T) {
	t.Parallel()

	s := testStore(t)
	s.Upsert([]models.Movie{movie(7, 28, 12)})

	data, err := os.ReadFile(s.path)
	if err != nil {
		t.Fatal(err)
	}
	var onDisk []models.SavedMovie
	if err := json.Unmarshal(data, &onDisk); err != nil {
		t.Fatalf("persisted file unparsable: %v", err)
	}
	if len(onDisk) != 1 || onDisk[0].ID != 7 {
		t.Errorf("persisted = %+v, want single movie id 7", onDisk)
	}
}

// --- Test: FindEligible ---

func TestMovieStoreFindEligible(t *testing.T) {
	t.Parallel()

	s := testStore(t)
	s.Upsert([]models.Movie{
		movie(1, 28),     // action only
		movie(2, 28, 35), // action + comedy
		movie(3, 35),     // comedy only
		movie(4, 28),     // action, but already seen
		movie(5),         // no genres
	})

	got := s.FindEligible(28, map[int]struct{}{4: {}})

	if len(got) != 2 {
		t.Fatalf("FindEligible = %d movies, want 2", len(got))
	}
	// Insertion order preserved
	if got[0].ID != 1 || got[1].ID != 2 {
		t.Errorf("FindEligible ids = [%d %d], want [1 2]", got[0].ID, got[1].ID)
	}
}

func TestMovieStoreFindEligibleEmptyStore(t *testing.T) {
	t.Parallel()

	s := testStore(t)
	if got := s.FindEligible(28, nil); len(got) != 0 {
		t.Errorf("FindEligible on empty store = %d movies, want 0", len(got))
	}
}
