// Reelpick - Telegram Movie Recommendation Bot
// Copyright 2026 Reelpick Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelpick/reelpick

package store

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/reelpick/reelpick/internal/metrics"
	"github.com/reelpick/reelpick/internal/models"
)

// MovieStore is the durable, append-mostly collection of every movie ever
// fetched from the catalog, keyed by catalog id. Stored records are
// immutable: Upsert skips ids that already exist, so the first fetched copy
// (and its saved_at stamp) is the one that is kept forever.
//
// Safe for concurrent use.
type MovieStore struct {
	mu     sync.RWMutex
	path   string
	movies []models.SavedMovie
	ids    map[int]struct{}
	logger zerolog.Logger

	// now is swappable for tests.
	now func() time.Time
}

// NewMovieStore creates a movie store persisted at path. Call Load before use.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewMovieStore(path string, logger zerolog.Logger) *MovieStore {
	return &MovieStore{
		path:   path,
		ids:    make(map[int]struct{}),
		logger: logger.With().Str("component", "movie-store").Logger(),
		now:    time.Now,
	}
}

// Load reads the collection from disk. A missing or unparsable file is not
// fatal: the store initializes empty and persists immediately so the next
// write starts from a known-good file.
func (s *MovieStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var movies []models.SavedMovie
	missing, err := readCollection(s.path, &movies)
	switch {
	case missing:
		s.logger.Info().Str("path", s.path).Msg("movie store file not found, creating")
	case err != nil:
		s.logger.Warn().Err(err).Str("path", s.path).Msg("movie store unreadable, reinitializing empty")
	}

	if missing || err != nil {
		s.movies = nil
		s.ids = make(map[int]struct{})
		if err := writeCollection(s.path, []models.SavedMovie{}); err != nil {
			return err
		}
		metrics.StoredMovies.Set(0)
		return nil
	}

	s.movies = movies
	s.ids = make(map[int]struct{}, len(movies))
	for i := range movies {
		s.ids[movies[i].ID] = struct{}{}
	}
	metrics.StoredMovies.Set(float64(len(s.movies)))
	return nil
}

// Upsert inserts each movie that is not already stored, stamped with the
// current time, and returns the number actually inserted. Existing entries
// are never touched. The collection is persisted only when at least one
// movie was inserted; a persistence failure is logged and counted but not
// propagated (the in-memory state stays authoritative for this process).
func (s *MovieStore) Upsert(movies []models.Movie) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	inserted := 0
	savedAt := s.now()
	for i := range movies {
		if _, ok := s.ids[movies[i].ID]; ok {
			continue
		}
		s.movies = append(s.movies, models.SavedMovie{Movie: movies[i], SavedAt: savedAt})
		s.ids[movies[i].ID] = struct{}{}
		inserted++
	}

	if inserted == 0 {
		return 0
	}

	metrics.StoredMovies.Set(float64(len(s.movies)))
	if err := writeCollection(s.path, s.movies); err != nil {
		// Silent-data-loss risk: memory is now ahead of disk.
		metrics.PersistFailures.WithLabelValues("movies").Inc()
		s.logger.Error().Err(err).Str("path", s.path).Int("entries", len(s.movies)).
			Msg("PERSIST FAILED: movie store out of sync with disk")
		return inserted
	}

	s.logger.Debug().Int("inserted", inserted).Int("total", len(s.movies)).Msg("movies saved")
	return inserted
}

// FindEligible returns the stored movies that belong to genreID and whose
// id is not in excluded, in insertion order. The result is a copy; callers
// may shuffle it freely.
func (s *MovieStore) FindEligible(genreID int, excluded map[int]struct{}) []models.SavedMovie {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var eligible []models.SavedMovie
	for i := range s.movies {
		if !s.movies[i].HasGenre(genreID) {
			continue
		}
		if _, seen := excluded[s.movies[i].ID]; seen {
			continue
		}
		eligible = append(eligible, s.movies[i])
	}
	return eligible
}

// Len returns the number of stored movies.
func (s *MovieStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.movies)
}
