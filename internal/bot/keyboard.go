// Reelpick - Telegram Movie Recommendation Bot
// Copyright 2026 Reelpick Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelpick/reelpick

package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// genreKeyboard builds the one-time reply keyboard with one genre per row.
// The keyboard resizes to fit and disappears after a selection so the chat
// stays usable for free-form text.
func genreKeyboard(names []string) tgbotapi.ReplyKeyboardMarkup {
	rows := make([][]tgbotapi.KeyboardButton, len(names))
	for i, name := range names {
		rows[i] = tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(name))
	}

	keyboard := tgbotapi.NewReplyKeyboard(rows...)
	keyboard.OneTimeKeyboard = true
	keyboard.ResizeKeyboard = true
	return keyboard
}
