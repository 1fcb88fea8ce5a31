// Package bot decides, per inbound update, which single handler owns it.
package bot

import (
	"context"

	"nastaran/internal/domain"

	tele "gopkg.in/telebot.v3"
)

// CommandHandler executes exactly one command.
//
// Command returns the token it answers to, including the leading "/".
// Matching is case-insensitive and exact against the first word of the text.
// Handle is responsible for every user-facing reply, including apologies
// when a collaborator fails.
type CommandHandler interface {
	Command() string
	Handle(ctx context.Context, u domain.Update) error
}

// UpdateHandler processes a non-command update selected by its predicate.
//
// CanHandle must be fast and must not block. It is expected to have no side
// effects, with one exception: a handler gated by a single-use intent may
// consume that intent inside CanHandle. Evaluating the predicate and claiming
// the update then happen in one atomic step, so two racing updates can never
// both observe the intent. If that handler's Handle later fails, the intent
// is gone and the user has to start the flow again.
type UpdateHandler interface {
	CanHandle(u domain.Update) bool
	Handle(ctx context.Context, u domain.Update) error
}

// Sender delivers one best-effort text message to a chat
type Sender interface {
	Send(ctx context.Context, chatID int64, text string, markup *tele.ReplyMarkup) error
}
