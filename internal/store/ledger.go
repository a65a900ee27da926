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

// Ledger is the durable record of which movies have been shown to which
// users. Entries are append-only and never deleted; the no-repeat guarantee
// of the recommendation picker rests entirely on this collection.
//
// Membership checks are linear scans, which is fine at the expected scale
// (a handful of users, a few thousand entries).
//
// Safe for concurrent use.
type Ledger struct {
	mu      sync.RWMutex
	path    string
	entries []models.Recommendation
	logger  zerolog.Logger

	// now is swappable for tests.
	now func() time.Time
}

// NewLedger creates a ledger persisted at path. Call Load before use.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewLedger(path string, logger zerolog.Logger) *Ledger {
	return &Ledger{
		path:   path,
		logger: logger.With().Str("component", "ledger").Logger(),
		now:    time.Now,
	}
}

// Load reads the ledger from disk with the same self-healing bootstrap as
// the movie store: missing or unparsable files initialize empty and are
// persisted immediately.
func (l *Ledger) Load() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	var entries []models.Recommendation
	missing, err := readCollection(l.path, &entries)
	switch {
	case missing:
		l.logger.Info().Str("path", l.path).Msg("ledger file not found, creating")
	case err != nil:
		l.logger.Warn().Err(err).Str("path", l.path).Msg("ledger unreadable, reinitializing empty")
	}

	if missing || err != nil {
		l.entries = nil
		if err := writeCollection(l.path, []models.Recommendation{}); err != nil {
			return err
		}
		metrics.LedgerEntries.Set(0)
		return nil
	}

	l.entries = entries
	metrics.LedgerEntries.Set(float64(len(l.entries)))
	return nil
}

// HasSeen reports whether a (movie, user) pair is already recorded.
func (l *Ledger) HasSeen(movieID int, userID int64) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()

	for i := range l.entries {
		if l.entries[i].MovieID == movieID && l.entries[i].UserID == userID {
			return true
		}
	}
	return false
}

// SeenIDs returns the set of movie ids already shown to userID. The set is
// rebuilt on every call; eligibility is always recomputed, never cached.
func (l *Ledger) SeenIDs(userID int64) map[int]struct{} {
	l.mu.RLock()
	defer l.mu.RUnlock()

	seen := make(map[int]struct{})
	for i := range l.entries {
		if l.entries[i].UserID == userID {
			seen[l.entries[i].MovieID] = struct{}{}
		}
	}
	return seen
}

// RecordBatch appends one entry per movie id against userID, stamped with
// the current time, then persists the whole ledger. A persistence failure
// is logged and counted but not propagated; the in-memory entries still
// count as shown, so a movie is never repeated within this process even
// when the disk write failed.
func (l *Ledger) RecordBatch(movieIDs []int, userID int64) {
	if len(movieIDs) == 0 {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	recordedAt := l.now()
	for _, id := range movieIDs {
		l.entries = append(l.entries, models.Recommendation{
			MovieID:       id,
			UserID:        userID,
			RecommendedAt: recordedAt,
		})
	}

	metrics.LedgerEntries.Set(float64(len(l.entries)))
	if err := writeCollection(l.path, l.entries); err != nil {
		// Silent-data-loss risk: a restart may re-recommend these movies.
		metrics.PersistFailures.WithLabelValues("ledger").Inc()
		l.logger.Error().Err(err).Str("path", l.path).Int("entries", len(l.entries)).
			Msg("PERSIST FAILED: ledger out of sync with disk")
		return
	}

	l.logger.Debug().Int("recorded", len(movieIDs)).Int64("user_id", userID).Msg("recommendations recorded")
}

// Len returns the number of ledger entries.
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}
