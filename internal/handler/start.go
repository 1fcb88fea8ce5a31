package handler

import (
	"context"
	"errors"
	"fmt"

	"nastaran/internal/domain"

	"go.uber.org/zap"
)

const helpText = `Here is what I can do:

/weather - weather for your location
/weather <city> - weather anywhere
/ideas create <text> - save an idea
/ideas list - show your ideas
/notes create <text> - save a note
/notes list - show recent notes
/inspirations - save images with captions
/help - this message

You can also use the keyboard below or just share your location 🌤`

// handleStart handles /start command
func (h *Handler) handleStart(ctx context.Context, u domain.Update) error {
	h.logger.Info("User started bot",
		zap.Int64("user_id", u.UserID),
		zap.String("username", u.From.Username),
	)

	firstName := u.From.FirstName
	if firstName == "" {
		firstName = "friend"
	}

	user, err := h.users.GetByTelegramID(ctx, u.UserID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		h.logger.Error("Failed to get user", zap.Error(err), zap.Int64("user_id", u.UserID))
		return h.send(ctx, u.ChatID, "⚠️ Something went wrong while setting up your account.", nil)
	}
	if user != nil {
		return h.send(ctx, u.ChatID, fmt.Sprintf("Welcome back, %s! 🎉", firstName), startMenuMarkup())
	}

	if _, err := h.users.Register(ctx, u.UserID, u.From.Username, firstName); err != nil {
		h.logger.Error("Failed to register user", zap.Error(err), zap.Int64("user_id", u.UserID))
		return h.send(ctx, u.ChatID, "⚠️ Something went wrong while setting up your account.", nil)
	}

	welcome := fmt.Sprintf("Hello %s! 👋\nI'm your personal bot.\n\n"+
		"You can get weather updates and keep ideas, notes and inspirations right here.\n"+
		"Use the keyboard below to get started:", firstName)
	return h.send(ctx, u.ChatID, welcome, startMenuMarkup())
}

// handleHelp lists the available commands
func (h *Handler) handleHelp(ctx context.Context, u domain.Update) error {
	return h.send(ctx, u.ChatID, helpText, startMenuMarkup())
}
