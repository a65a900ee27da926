// Reelpick - Telegram Movie Recommendation Bot
// Copyright 2026 Reelpick Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelpick/reelpick

package models

import "time"

// Genre is a TMDB-defined movie category with a stable integer id and a
// display name. The taxonomy is fetched once per process and held in memory
// as a name-to-id mapping by the bot gateway.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Movie is the canonical catalog record assembled from a TMDB discovery
// result merged with its detail lookup. The discovery summary carries the
// genre id list; the detail lookup carries runtime and the full field set.
type Movie struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	VoteAverage float64 `json:"vote_average"`
	ReleaseDate string  `json:"release_date"`
	PosterPath  string  `json:"poster_path"`
	Runtime     int     `json:"runtime"`
	GenreIDs    []int   `json:"genre_ids"`
}

// HasGenre reports whether the movie belongs to the given genre.
func (m *Movie) HasGenre(genreID int) bool {
	for _, id := range m.GenreIDs {
		if id == genreID {
			return true
		}
	}
	return false
}

// SavedMovie is a Movie as persisted in the local movie store, stamped with
// the time it was first fetched. Stored copies are immutable: a movie is
// written once and never updated, even if the catalog's data changes later.
type SavedMovie struct {
	Movie
	SavedAt time.Time `json:"saved_at"`
}

// Recommendation records that a movie was shown to a user. Entries are
// append-only; the recommendation picker guarantees it never writes a
// duplicate (movie, user) pair, but the type itself does not enforce it.
type Recommendation struct {
	MovieID       int       `json:"movie_id"`
	UserID        int64     `json:"user_id"`
	RecommendedAt time.Time `json:"recommended_at"`
}
