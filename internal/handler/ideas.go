package handler

import (
	"context"
	"fmt"

	"nastaran/internal/domain"

	"go.uber.org/zap"
)

const (
	subCreate = "create"
	subList   = "list"

	unknownSubcommandText = "Unknown subcommand 😅"
	emptyContentText      = "You need to write something ✍️"
	genericErrorText      = "Something went wrong 😢 Try again later."
)

// handleIdeas handles "/ideas create <text>" and "/ideas list"
func (h *Handler) handleIdeas(ctx context.Context, u domain.Update) error {
	sub, content := splitSubcommand(u.Text)

	switch sub {
	case "":
		return h.send(ctx, u.ChatID, fmt.Sprintf("Use:\n%s create <text>\n\nOr:\n%s list 💡", CmdIdeas, CmdIdeas), nil)

	case subCreate:
		if content == "" {
			return h.send(ctx, u.ChatID, emptyContentText, nil)
		}
		if _, err := h.ideas.Add(ctx, u.UserID, content); err != nil {
			h.logger.Error("Failed to save idea", zap.Error(err), zap.Int64("user_id", u.UserID))
			return h.send(ctx, u.ChatID, genericErrorText, nil)
		}
		return h.send(ctx, u.ChatID, "💡 Idea saved!", nil)

	case subList:
		ideas, err := h.ideas.List(ctx, u.UserID)
		if err != nil {
			h.logger.Error("Failed to list ideas", zap.Error(err), zap.Int64("user_id", u.UserID))
			return h.send(ctx, u.ChatID, genericErrorText, nil)
		}
		if len(ideas) == 0 {
			return h.send(ctx, u.ChatID, "You haven’t saved any ideas yet 🤔", nil)
		}
		return h.send(ctx, u.ChatID, formatIdeas(ideas), nil)

	default:
		return h.send(ctx, u.ChatID, unknownSubcommandText, nil)
	}
}

// handleNotes handles "/notes create <text>" and "/notes list"
func (h *Handler) handleNotes(ctx context.Context, u domain.Update) error {
	sub, content := splitSubcommand(u.Text)

	switch sub {
	case "":
		return h.send(ctx, u.ChatID, fmt.Sprintf("Use:\n%s create <text>\n\nOr:\n%s list 📝", CmdNotes, CmdNotes), nil)

	case subCreate:
		if content == "" {
			return h.send(ctx, u.ChatID, "You need to write something for the note ✍️", nil)
		}
		note, err := h.notes.Add(ctx, u.UserID, content)
		if err != nil {
			h.logger.Error("Failed to save note", zap.Error(err), zap.Int64("user_id", u.UserID))
			return h.send(ctx, u.ChatID, genericErrorText, nil)
		}
		return h.send(ctx, u.ChatID, "📝 Note saved:\n\n"+note.Content, nil)

	case subList:
		notes, err := h.notes.ListRecent(ctx, u.UserID)
		if err != nil {
			h.logger.Error("Failed to list notes", zap.Error(err), zap.Int64("user_id", u.UserID))
			return h.send(ctx, u.ChatID, genericErrorText, nil)
		}
		if len(notes) == 0 {
			return h.send(ctx, u.ChatID, "You haven’t saved any notes yet 📔", nil)
		}
		return h.send(ctx, u.ChatID, formatNotes(notes), nil)

	default:
		return h.send(ctx, u.ChatID, "Unknown note command 😅", nil)
	}
}
