// Reelpick - Telegram Movie Recommendation Bot
// Copyright 2026 Reelpick Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelpick/reelpick

package bot

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/reelpick/reelpick/internal/config"
	"github.com/reelpick/reelpick/internal/logging"
	"github.com/reelpick/reelpick/internal/models"
)

type fakeSender struct {
	sent []tgbotapi.Chattable
	err  error
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.sent = append(f.sent, c)
	return tgbotapi.Message{}, f.err
}

type fakePicker struct {
	movies  []models.SavedMovie
	err     error
	genreID int
	userID  int64
	calls   int
}

func (f *fakePicker) Pick(_ context.Context, genreID int, userID int64) ([]models.SavedMovie, error) {
	f.calls++
	f.genreID = genreID
	f.userID = userID
	return f.movies, f.err
}

type fakeGenreLister struct {
	genres []models.Genre
	err    error
	calls  int
}

func (f *fakeGenreLister) Genres(_ context.Context) ([]models.Genre, error) {
	f.calls++
	return f.genres, f.err
}

func testGateway(picker Recommender, genres GenreLister, sender Sender) *Gateway {
	return &Gateway{
		sender:       sender,
		picker:       picker,
		genreLister:  genres,
		cfg:          &config.TelegramConfig{},
		imageBaseURL: "https://image.tmdb.org/t/p/w500",
		batchSize:    3,
		logger:       logging.NewTestLogger(io.Discard),
	}
}

func textUpdate(chatID int64, text string) tgbotapi.Update {
	return tgbotapi.Update{
		Message: &tgbotapi.Message{
			Text: text,
			Chat: &tgbotapi.Chat{ID: chatID},
		},
	}
}

var testGenres = []models.Genre{
	{ID: 28, Name: "Action"},
	{ID: 35, Name: "Comedy"},
}

// --- Test: formatting ---

func TestFormatCaption(t *testing.T) {
	t.Parallel()

	m := models.SavedMovie{Movie: models.Movie{
		Title:       "The Matrix",
		Overview:    "A hacker learns the truth.",
		VoteAverage: 8.2,
		Runtime:     136,
		ReleaseDate: "1999-03-31",
	}}

	got := formatCaption(m)
	for _, want := range []string{"*The Matrix*", "A hacker learns the truth.", "8.2", "136 min", "1999-03-31"} {
		if !strings.Contains(got, want) {
			t.Errorf("caption %q missing %q", got, want)
		}
	}
}

func TestFormatCaptionMissingOverview(t *testing.T) {
	t.Parallel()

	m := models.SavedMovie{Movie: models.Movie{Title: "Obscure"}}
	if got := formatCaption(m); !strings.Contains(got, "No description available") {
		t.Errorf("caption %q missing the overview fallback", got)
	}
}

func TestPosterURL(t *testing.T) {
	t.Parallel()

	if got := posterURL("https://img/w500", "/abc.jpg"); got != "https://img/w500/abc.jpg" {
		t.Errorf("posterURL = %q", got)
	}
	if got := posterURL("https://img/w500", ""); got != "" {
		t.Errorf("posterURL with no path = %q, want empty", got)
	}
}

// --- Test: keyboard ---

func TestGenreKeyboard(t *testing.T) {
	t.Parallel()

	kb := genreKeyboard([]string{"Action", "Comedy", "Drama"})
	if len(kb.Keyboard) != 3 {
		t.Fatalf("keyboard rows = %d, want 3 (one per genre)", len(kb.Keyboard))
	}
	if kb.Keyboard[0][0].Text != "Action" {
		t.Errorf("first button = %q, want Action", kb.Keyboard[0][0].Text)
	}
	if !kb.OneTimeKeyboard || !kb.ResizeKeyboard {
		t.Error("keyboard must be one-time and resized")
	}
}

// --- Test: update dispatch ---

func TestGatewayMenuOnUnknownText(t *testing.T) {
	t.Parallel()

	sender := &fakeSender{}
	picker := &fakePicker{}
	g := testGateway(picker, &fakeGenreLister{genres: testGenres}, sender)

	g.handleUpdate(context.Background(), textUpdate(5, "hello"))

	if picker.calls != 0 {
		t.Error("picker called for a non-genre message")
	}
	if len(sender.sent) != 1 {
		t.Fatalf("sent %d messages, want 1 menu", len(sender.sent))
	}
	msg, ok := sender.sent[0].(tgbotapi.MessageConfig)
	if !ok {
		t.Fatalf("sent %T, want MessageConfig", sender.sent[0])
	}
	if !strings.Contains(msg.Text, "3 movie recommendations") {
		t.Errorf("menu prompt = %q, want it to mention the batch size", msg.Text)
	}
	kb, ok := msg.ReplyMarkup.(tgbotapi.ReplyKeyboardMarkup)
	if !ok {
		t.Fatalf("reply markup is %T, want ReplyKeyboardMarkup", msg.ReplyMarkup)
	}
	if len(kb.Keyboard) != 2 {
		t.Errorf("keyboard rows = %d, want 2", len(kb.Keyboard))
	}
}

func TestGatewayGenreSelection(t *testing.T) {
	t.Parallel()

	sender := &fakeSender{}
	picker := &fakePicker{movies: []models.SavedMovie{
		{Movie: models.Movie{ID: 1, Title: "With Poster", PosterPath: "/p.jpg"}},
		{Movie: models.Movie{ID: 2, Title: "No Poster"}},
	}}
	g := testGateway(picker, &fakeGenreLister{genres: testGenres}, sender)

	g.handleUpdate(context.Background(), textUpdate(42, "Action"))

	if picker.calls != 1 || picker.genreID != 28 || picker.userID != 42 {
		t.Errorf("picker called with (genre=%d, user=%d) %d times, want (28, 42) once",
			picker.genreID, picker.userID, picker.calls)
	}
	if len(sender.sent) != 2 {
		t.Fatalf("sent %d messages, want 2", len(sender.sent))
	}

	photo, ok := sender.sent[0].(tgbotapi.PhotoConfig)
	if !ok {
		t.Fatalf("first send is %T, want PhotoConfig", sender.sent[0])
	}
	if !strings.Contains(photo.Caption, "With Poster") || photo.ParseMode != tgbotapi.ModeMarkdown {
		t.Errorf("photo caption = %q (mode %q)", photo.Caption, photo.ParseMode)
	}
	if url, ok := photo.File.(tgbotapi.FileURL); !ok || !strings.HasSuffix(string(url), "/p.jpg") {
		t.Errorf("photo file = %v, want poster URL", photo.File)
	}

	msg, ok := sender.sent[1].(tgbotapi.MessageConfig)
	if !ok {
		t.Fatalf("second send is %T, want MessageConfig fallback", sender.sent[1])
	}
	if !strings.Contains(msg.Text, "No Poster") {
		t.Errorf("fallback text = %q", msg.Text)
	}
}

func TestGatewayTrimsWhitespace(t *testing.T) {
	t.Parallel()

	sender := &fakeSender{}
	picker := &fakePicker{movies: []models.SavedMovie{{Movie: models.Movie{ID: 1, Title: "M"}}}}
	g := testGateway(picker, &fakeGenreLister{genres: testGenres}, sender)

	g.handleUpdate(context.Background(), textUpdate(1, "  Comedy "))

	if picker.calls != 1 || picker.genreID != 35 {
		t.Errorf("picker called with genre %d %d times, want 35 once", picker.genreID, picker.calls)
	}
}

func TestGatewayEmptyPool(t *testing.T) {
	t.Parallel()

	sender := &fakeSender{}
	g := testGateway(&fakePicker{}, &fakeGenreLister{genres: testGenres}, sender)

	g.handleUpdate(context.Background(), textUpdate(1, "Action"))

	if len(sender.sent) != 1 {
		t.Fatalf("sent %d messages, want 1", len(sender.sent))
	}
	msg := sender.sent[0].(tgbotapi.MessageConfig)
	if !strings.Contains(msg.Text, "no new Action movies") {
		t.Errorf("empty-pool reply = %q", msg.Text)
	}
}

func TestGatewayPickerFailure(t *testing.T) {
	t.Parallel()

	sender := &fakeSender{}
	picker := &fakePicker{err: errors.New("catalog down")}
	g := testGateway(picker, &fakeGenreLister{genres: testGenres}, sender)

	g.handleUpdate(context.Background(), textUpdate(1, "Action"))

	if len(sender.sent) != 1 {
		t.Fatalf("sent %d messages, want 1", len(sender.sent))
	}
	msg := sender.sent[0].(tgbotapi.MessageConfig)
	if msg.Text != errorReply {
		t.Errorf("failure reply = %q, want %q", msg.Text, errorReply)
	}
}

func TestGatewayGenreListCached(t *testing.T) {
	t.Parallel()

	lister := &fakeGenreLister{genres: testGenres}
	g := testGateway(&fakePicker{}, lister, &fakeSender{})

	g.handleUpdate(context.Background(), textUpdate(1, "hello"))
	g.handleUpdate(context.Background(), textUpdate(1, "hi again"))

	if lister.calls != 1 {
		t.Errorf("genre list fetched %d times, want 1 (cached)", lister.calls)
	}
}

func TestGatewayGenreListRetriedAfterFailure(t *testing.T) {
	t.Parallel()

	lister := &fakeGenreLister{err: errors.New("catalog down")}
	sender := &fakeSender{}
	g := testGateway(&fakePicker{}, lister, sender)

	g.handleUpdate(context.Background(), textUpdate(1, "hello"))
	if len(sender.sent) != 1 {
		t.Fatalf("sent %d messages, want 1 error reply", len(sender.sent))
	}
	if msg := sender.sent[0].(tgbotapi.MessageConfig); msg.Text != errorReply {
		t.Errorf("reply = %q, want %q", msg.Text, errorReply)
	}

	// Catalog recovers; the next update retries the fetch.
	lister.err = nil
	lister.genres = testGenres
	g.handleUpdate(context.Background(), textUpdate(1, "hello"))

	if lister.calls != 2 {
		t.Errorf("genre list fetched %d times, want 2", lister.calls)
	}
}

func TestGatewayIgnoresNonTextUpdates(t *testing.T) {
	t.Parallel()

	sender := &fakeSender{}
	g := testGateway(&fakePicker{}, &fakeGenreLister{genres: testGenres}, sender)

	g.handleUpdate(context.Background(), tgbotapi.Update{})
	g.handleUpdate(context.Background(), tgbotapi.Update{
		Message: &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: 1}},
	})

	if len(sender.sent) != 0 {
		t.Errorf("sent %d messages for non-text updates, want 0", len(sender.sent))
	}
}
