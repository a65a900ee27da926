// Reelpick - Telegram Movie Recommendation Bot
// Copyright 2026 Reelpick Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelpick/reelpick

package tmdb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/reelpick/reelpick/internal/config"
	"github.com/reelpick/reelpick/internal/metrics"
	"github.com/reelpick/reelpick/internal/models"
)

// ErrCatalogUnavailable wraps every transport, HTTP, and decode failure so
// callers can treat "the catalog is down" uniformly without inspecting the
// cause chain.
var ErrCatalogUnavailable = errors.New("catalog unavailable")

// maxErrorBodySize limits how much of a failed response body is read for
// error reporting, preventing unbounded allocation on large error pages.
const maxErrorBodySize = 64 * 1024 // 64KB

// Client is a TMDB REST API client for genre listing and movie discovery.
//
// All methods are safe for concurrent use. Requests share a client-side
// token-bucket rate limiter so concurrent detail fan-outs cannot burst past
// the configured budget.
type Client struct {
	cfg     *config.TMDBConfig
	client  *http.Client
	limiter *rate.Limiter
	logger  zerolog.Logger
}

// NewClient creates a TMDB client from the given configuration.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewClient(cfg *config.TMDBConfig, logger zerolog.Logger) *Client {
	return &Client{
		cfg:     cfg,
		client:  &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst),
		logger:  logger.With().Str("component", "tmdb").Logger(),
	}
}

// genreListResponse mirrors GET /genre/movie/list.
type genreListResponse struct {
	Genres []models.Genre `json:"genres"`
}

// discoverResponse mirrors GET /discover/movie.
type discoverResponse struct {
	Page       int            `json:"page"`
	Results    []models.Movie `json:"results"`
	TotalPages int            `json:"total_pages"`
}

// movieDetail mirrors the subset of GET /movie/{id} we care about. The
// discovery listing omits runtime, so every discovered movie costs one
// detail lookup.
type movieDetail struct {
	ID      int `json:"id"`
	Runtime int `json:"runtime"`
}

// Genres returns the full movie genre list in the configured language.
func (c *Client) Genres(ctx context.Context) ([]models.Genre, error) {
	params := url.Values{}
	var resp genreListResponse
	if err := c.get(ctx, "genres", "/genre/movie/list", params, &resp); err != nil {
		return nil, err
	}
	return resp.Genres, nil
}

// MoviesByGenre fetches one page of quality-filtered discovery results for
// genreID and enriches each movie with its runtime via concurrent detail
// lookups. The page is all-or-nothing: if any detail lookup fails, the
// whole page fails.
//
// Results are sorted by vote average descending and filtered to movies with
// at least the configured minimum vote count, so early pages carry the
// best-regarded titles.
func (c *Client) MoviesByGenre(ctx context.Context, genreID, page int) ([]models.Movie, error) {
	params := url.Values{}
	params.Set("with_genres", strconv.Itoa(genreID))
	params.Set("sort_by", "vote_average.desc")
	params.Set("vote_count.gte", strconv.Itoa(c.cfg.MinVoteCount))
	params.Set("page", strconv.Itoa(page))

	var resp discoverResponse
	if err := c.get(ctx, "discover", "/discover/movie", params, &resp); err != nil {
		return nil, err
	}
	if len(resp.Results) == 0 {
		return nil, nil
	}

	runtimes, err := c.fetchRuntimes(ctx, resp.Results)
	if err != nil {
		return nil, err
	}

	movies := make([]models.Movie, len(resp.Results))
	for i, m := range resp.Results {
		m.Runtime = runtimes[m.ID]
		movies[i] = m
	}

	metrics.CatalogPagesFetched.Inc()
	c.logger.Debug().Int("genre_id", genreID).Int("page", page).Int("movies", len(movies)).
		Msg("discovery page fetched")
	return movies, nil
}

// fetchRuntimes looks up the runtime for every movie concurrently and
// returns them keyed by movie id. The first failure cancels the remaining
// lookups and fails the batch.
func (c *Client) fetchRuntimes(ctx context.Context, movies []models.Movie) (map[int]int, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type result struct {
		id      int
		runtime int
		err     error
	}

	results := make(chan result, len(movies))
	for i := range movies {
		go func(id int) {
			var detail movieDetail
			err := c.get(ctx, "detail", "/movie/"+strconv.Itoa(id), url.Values{}, &detail)
			results <- result{id: id, runtime: detail.Runtime, err: err}
		}(movies[i].ID)
	}

	runtimes := make(map[int]int, len(movies))
	var firstErr error
	for range movies {
		r := <-results
		if r.err != nil {
			if firstErr == nil {
				firstErr = r.err
				cancel()
			}
			continue
		}
		runtimes[r.id] = r.runtime
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return runtimes, nil
}

// get executes a rate-limited GET against the TMDB API and decodes the JSON
// response into out. The api_key and language parameters are appended to
// every request.
func (c *Client) get(ctx context.Context, endpoint, path string, params url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: rate limiter: %w", ErrCatalogUnavailable, err)
	}

	params.Set("api_key", c.cfg.APIKey)
	params.Set("language", c.cfg.Language)
	reqURL := c.cfg.BaseURL + path + "?" + params.Encode()

	start := time.Now()
	err := c.doRequest(ctx, reqURL, out)
	metrics.CatalogRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.CatalogRequestsTotal.WithLabelValues(endpoint, "failure").Inc()
		c.logger.Warn().Err(err).Str("endpoint", endpoint).Msg("catalog request failed")
		return err
	}
	metrics.CatalogRequestsTotal.WithLabelValues(endpoint, "success").Inc()
	return nil
}

func (c *Client) doRequest(ctx context.Context, reqURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return fmt.Errorf("%w: create request: %w", ErrCatalogUnavailable, err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body := readBodyForError(resp.Body)
		return fmt.Errorf("%w: status %d: %s", ErrCatalogUnavailable, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %w", ErrCatalogUnavailable, err)
	}
	return nil
}

// readBodyForError reads at most maxErrorBodySize bytes of a failed
// response body for inclusion in the error message.
func readBodyForError(r io.Reader) []byte {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return []byte("(failed to read response body)")
	}
	if len(body) == maxErrorBodySize {
		return append(body, []byte("... (truncated)")...)
	}
	return body
}
