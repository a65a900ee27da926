// Reelpick - Telegram Movie Recommendation Bot
// Copyright 2026 Reelpick Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelpick/reelpick

package bot

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"github.com/reelpick/reelpick/internal/config"
	"github.com/reelpick/reelpick/internal/metrics"
	"github.com/reelpick/reelpick/internal/models"
)

const errorReply = "Oops! Something went wrong while fetching movies. Please try again."

// Sender is the slice of the Telegram Bot API the gateway sends through.
// *tgbotapi.BotAPI implements it; tests substitute a recorder.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Recommender picks a batch of unseen movies for a user.
type Recommender interface {
	Pick(ctx context.Context, genreID int, userID int64) ([]models.SavedMovie, error)
}

// GenreLister fetches the catalog's genre list.
type GenreLister interface {
	Genres(ctx context.Context) ([]models.Genre, error)
}

// Gateway is the Telegram long-polling loop. It implements suture.Service
// and is restarted by the supervisor if the update stream dies.
type Gateway struct {
	api          *tgbotapi.BotAPI
	sender       Sender
	picker       Recommender
	genreLister  GenreLister
	cfg          *config.TelegramConfig
	imageBaseURL string
	batchSize    int
	logger       zerolog.Logger

	// Genre cache, filled lazily on the first update.
	mu         sync.Mutex
	genreIDs   map[string]int
	genreNames []string
}

// NewGateway authenticates against the Telegram Bot API and returns a
// gateway ready to Serve.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewGateway(cfg *config.TelegramConfig, imageBaseURL string, batchSize int, picker Recommender, genres GenreLister, logger zerolog.Logger) (*Gateway, error) {
	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("telegram authentication failed: %w", err)
	}
	api.Debug = cfg.Debug

	logger = logger.With().Str("component", "bot").Logger()
	logger.Info().Str("account", api.Self.UserName).Msg("authenticated with Telegram")

	return &Gateway{
		api:          api,
		sender:       api,
		picker:       picker,
		genreLister:  genres,
		cfg:          cfg,
		imageBaseURL: imageBaseURL,
		batchSize:    batchSize,
		logger:       logger,
	}, nil
}

// String identifies the gateway in supervisor logs.
func (g *Gateway) String() string {
	return "telegram-gateway"
}

// Serve runs the long-polling update loop until ctx is cancelled.
func (g *Gateway) Serve(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = int(g.cfg.PollTimeout.Seconds())

	updates := g.api.GetUpdatesChan(u)
	defer g.api.StopReceivingUpdates()

	g.logger.Info().Msg("listening for updates")
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return errors.New("telegram update channel closed")
			}
			g.handleUpdate(ctx, update)
		}
	}
}

// handleUpdate dispatches a single update: an exact genre name triggers a
// recommendation batch, anything else re-presents the genre menu.
func (g *Gateway) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.Message == nil || update.Message.Text == "" {
		metrics.BotUpdatesTotal.WithLabelValues("ignored").Inc()
		return
	}

	chatID := update.Message.Chat.ID
	text := strings.TrimSpace(update.Message.Text)

	if err := g.ensureGenres(ctx); err != nil {
		g.logger.Error().Err(err).Msg("genre list unavailable")
		g.reply(tgbotapi.NewMessage(chatID, errorReply))
		return
	}

	if genreID, ok := g.lookupGenre(text); ok {
		metrics.BotUpdatesTotal.WithLabelValues("genre_selection").Inc()
		g.sendRecommendations(ctx, chatID, text, genreID)
		return
	}

	metrics.BotUpdatesTotal.WithLabelValues("menu").Inc()
	g.sendMenu(chatID)
}

// ensureGenres fills the genre cache on first use. Subsequent updates hit
// the cache; a failed fetch is retried on the next update.
func (g *Gateway) ensureGenres(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if len(g.genreIDs) > 0 {
		return nil
	}

	genres, err := g.genreLister.Genres(ctx)
	if err != nil {
		return err
	}
	if len(genres) == 0 {
		return errors.New("catalog returned no genres")
	}

	g.genreIDs = make(map[string]int, len(genres))
	g.genreNames = make([]string, 0, len(genres))
	for _, genre := range genres {
		g.genreIDs[genre.Name] = genre.ID
		g.genreNames = append(g.genreNames, genre.Name)
	}
	sort.Strings(g.genreNames)

	g.logger.Info().Int("genres", len(genres)).Msg("genre list loaded")
	return nil
}

// GenreCount reports how many genres are cached; zero until the first
// update triggers the lazy fetch.
func (g *Gateway) GenreCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.genreIDs)
}

func (g *Gateway) lookupGenre(name string) (int, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	id, ok := g.genreIDs[name]
	return id, ok
}

func (g *Gateway) menuNames() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.genreNames
}

// sendMenu presents the genre keyboard.
func (g *Gateway) sendMenu(chatID int64) {
	prompt := fmt.Sprintf("Which genre would you like %d movie recommendations from?", g.batchSize)
	msg := tgbotapi.NewMessage(chatID, prompt)
	msg.ReplyMarkup = genreKeyboard(g.menuNames())
	g.reply(msg)
}

// sendRecommendations picks a batch and delivers one poster photo with a
// Markdown caption per movie. Movies without a poster fall back to a plain
// text message with the same caption.
func (g *Gateway) sendRecommendations(ctx context.Context, chatID int64, genreName string, genreID int) {
	movies, err := g.picker.Pick(ctx, genreID, chatID)
	if err != nil {
		g.logger.Error().Err(err).Int64("chat_id", chatID).Str("genre", genreName).
			Msg("recommendation request failed")
		g.reply(tgbotapi.NewMessage(chatID, errorReply))
		return
	}

	if len(movies) == 0 {
		text := fmt.Sprintf("Sorry, no new %s movies to recommend right now.", genreName)
		g.reply(tgbotapi.NewMessage(chatID, text))
		return
	}

	for _, movie := range movies {
		caption := formatCaption(movie)
		if url := posterURL(g.imageBaseURL, movie.PosterPath); url != "" {
			photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileURL(url))
			photo.Caption = caption
			photo.ParseMode = tgbotapi.ModeMarkdown
			g.reply(photo)
			continue
		}
		msg := tgbotapi.NewMessage(chatID, caption)
		msg.ParseMode = tgbotapi.ModeMarkdown
		g.reply(msg)
	}
}

// reply sends a message and absorbs delivery failures; the picked movies
// are already in the ledger and a resend would double-spend the pool.
func (g *Gateway) reply(c tgbotapi.Chattable) {
	if _, err := g.sender.Send(c); err != nil {
		metrics.BotSendFailures.Inc()
		g.logger.Warn().Err(err).Msg("telegram send failed")
	}
}
