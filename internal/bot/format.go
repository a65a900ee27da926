// Reelpick - Telegram Movie Recommendation Bot
// Copyright 2026 Reelpick Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelpick/reelpick

package bot

import (
	"fmt"

	"github.com/reelpick/reelpick/internal/models"
)

// formatCaption renders the Markdown caption for one recommended movie.
func formatCaption(m models.SavedMovie) string {
	overview := m.Overview
	if overview == "" {
		overview = "No description available"
	}
	return fmt.Sprintf("🎬 *%s*\n\n📝 %s\n⭐️ Rating: %.1f\n🕐 Runtime: %d min\n📅 Released: %s",
		m.Title, overview, m.VoteAverage, m.Runtime, m.ReleaseDate)
}

// posterURL builds the full poster image URL, or "" when the movie has no
// poster and a plain text message should be sent instead.
func posterURL(imageBaseURL, posterPath string) string {
	if posterPath == "" {
		return ""
	}
	return imageBaseURL + posterPath
}
