// Reelpick - Telegram Movie Recommendation Bot
// Copyright 2026 Reelpick Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelpick/reelpick

package recommend

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/reelpick/reelpick/internal/config"
	"github.com/reelpick/reelpick/internal/metrics"
	"github.com/reelpick/reelpick/internal/models"
)

// MovieSource is the slice of the movie store the picker needs.
type MovieSource interface {
	Upsert(movies []models.Movie) int
	FindEligible(genreID int, excluded map[int]struct{}) []models.SavedMovie
}

// History is the slice of the recommendation ledger the picker needs.
type History interface {
	SeenIDs(userID int64) map[int]struct{}
	RecordBatch(movieIDs []int, userID int64)
}

// Catalog fetches discovery pages from the upstream movie catalog.
type Catalog interface {
	MoviesByGenre(ctx context.Context, genreID, page int) ([]models.Movie, error)
}

// Picker selects random unseen movies for a user, replenishing the local
// pool from the catalog when it runs low.
//
// Pick calls are fully serialized by a single mutex. The batches are small
// and the slow path is bounded by the page cap, so serialization costs
// little and removes the race where two concurrent requests for the same
// user select overlapping movies before either records them.
type Picker struct {
	mu      sync.Mutex
	cfg     *config.RecommendConfig
	store   MovieSource
	history History
	catalog Catalog
	logger  zerolog.Logger

	// rng is swappable for tests.
	rng *rand.Rand
}

// NewPicker creates a picker over the given store, ledger, and catalog.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewPicker(cfg *config.RecommendConfig, store MovieSource, history History, catalog Catalog, logger zerolog.Logger) *Picker {
	return &Picker{
		cfg:     cfg,
		store:   store,
		history: history,
		catalog: catalog,
		logger:  logger.With().Str("component", "picker").Logger(),
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())), //nolint:gosec // shuffle, not crypto
	}
}

// Pick returns up to the configured batch size of random movies in genreID
// that userID has never been shown, and records them in the ledger before
// returning. An empty result with a nil error means the pool is genuinely
// exhausted for this user; an error means the catalog failed while the
// pool was too thin to serve from.
//
// Movies saved to the store during replenishment stay saved even when the
// request fails partway through.
func (p *Picker) Pick(ctx context.Context, genreID int, userID int64) ([]models.SavedMovie, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	logger := p.logger.With().
		Str("request_id", uuid.NewString()).
		Int("genre_id", genreID).
		Int64("user_id", userID).
		Logger()

	seen := p.history.SeenIDs(userID)
	eligible := p.store.FindEligible(genreID, seen)

	pages, err := p.replenish(ctx, genreID, seen, &eligible, logger)
	metrics.ReplenishmentPages.Observe(float64(pages))
	if err != nil {
		metrics.RecommendationRequests.WithLabelValues("error").Inc()
		return nil, err
	}

	if len(eligible) == 0 {
		logger.Info().Int("pages_fetched", pages).Msg("pool exhausted, nothing to recommend")
		metrics.RecommendationRequests.WithLabelValues("empty").Inc()
		return nil, nil
	}

	p.rng.Shuffle(len(eligible), func(i, j int) {
		eligible[i], eligible[j] = eligible[j], eligible[i]
	})

	k := p.cfg.BatchSize
	if k > len(eligible) {
		k = len(eligible)
	}
	picked := eligible[:k]

	ids := make([]int, k)
	for i := range picked {
		ids[i] = picked[i].ID
	}
	// Record before returning: once a movie leaves this method it counts
	// as shown, whatever happens to the delivery.
	p.history.RecordBatch(ids, userID)

	metrics.RecommendationRequests.WithLabelValues("served").Inc()
	metrics.RecommendationsServed.Add(float64(k))
	logger.Info().Ints("movie_ids", ids).Int("pages_fetched", pages).Msg("recommendations picked")
	return picked, nil
}

// replenish tops up the eligible pool from the catalog while it is below
// the low-water mark. Pages are fetched in ascending order starting at 1;
// fetching stops at the high-water mark, an empty page, or the page cap.
// Returns the number of pages fetched.
func (p *Picker) replenish(ctx context.Context, genreID int, seen map[int]struct{}, eligible *[]models.SavedMovie, logger zerolog.Logger) (int, error) {
	if len(*eligible) >= p.cfg.LowWater {
		return 0, nil
	}

	pages := 0
	for page := 1; page <= p.cfg.MaxPages && len(*eligible) < p.cfg.HighWater; page++ {
		movies, err := p.catalog.MoviesByGenre(ctx, genreID, page)
		if err != nil {
			logger.Error().Err(err).Int("page", page).Msg("replenishment failed")
			return pages, err
		}
		pages++

		if len(movies) == 0 {
			// Past the catalog's last page for this genre.
			break
		}

		inserted := p.store.Upsert(movies)
		*eligible = p.store.FindEligible(genreID, seen)
		logger.Debug().Int("page", page).Int("inserted", inserted).
			Int("eligible", len(*eligible)).Msg("pool replenished")
	}
	return pages, nil
}
