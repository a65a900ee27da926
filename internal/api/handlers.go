// Reelpick - Telegram Movie Recommendation Bot
// Copyright 2026 Reelpick Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelpick/reelpick

package api

import (
	"net/http"

	"github.com/goccy/go-json"
)

// apiResponse is the standardized wrapper for JSON endpoints.
type apiResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// statsData reports the sizes of the persisted collections and the genre
// cache. genres is zero until the first Telegram update triggers the lazy
// genre fetch.
type statsData struct {
	Movies          int `json:"movies"`
	Recommendations int `json:"recommendations"`
	Genres          int `json:"genres"`
}

func (rt *Router) writeJSON(w http.ResponseWriter, status int, resp apiResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		rt.logger.Error().Err(err).Msg("failed to encode response")
	}
}

// handleHealthz is the liveness probe: the process is up.
func (rt *Router) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	rt.writeJSON(w, http.StatusOK, apiResponse{
		Success: true,
		Data:    map[string]string{"status": "ok"},
	})
}

// handleReadyz is the readiness probe. The stores are loaded and Telegram
// is authenticated before this server starts, so serving at all means
// ready.
func (rt *Router) handleReadyz(w http.ResponseWriter, _ *http.Request) {
	rt.writeJSON(w, http.StatusOK, apiResponse{
		Success: true,
		Data:    map[string]string{"status": "ready"},
	})
}

func (rt *Router) handleStats(w http.ResponseWriter, _ *http.Request) {
	rt.writeJSON(w, http.StatusOK, apiResponse{
		Success: true,
		Data: statsData{
			Movies:          rt.movies.Len(),
			Recommendations: rt.ledger.Len(),
			Genres:          rt.genres.GenreCount(),
		},
	})
}
