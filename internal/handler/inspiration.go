package handler

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"nastaran/internal/domain"

	"go.uber.org/zap"
)

const (
	inspirationErrorText    = "⚠️ Something went wrong. Please try again."
	inspirationNotFoundText = "⚠️ Inspiration not found."
)

// handleInspirations handles /inspirations command
func (h *Handler) handleInspirations(ctx context.Context, u domain.Update) error {
	return h.send(ctx, u.ChatID, "🎀 Inspirations\n\nSave images + captions for later inspiration.", inspirationsMenuMarkup())
}

func (h *Handler) canHandleInspirationCallback(u domain.Update) bool {
	return u.Callback != nil && strings.HasPrefix(u.Callback.Data, inspirationPrefix)
}

func (h *Handler) handleInspirationCallback(ctx context.Context, u domain.Update) error {
	cb := u.Callback
	h.answer(ctx, cb)

	action, arg := splitAction(cb.Data)
	if arg == "" && action != ActInspAdd && action != ActInspList && action != ActInspCancel {
		h.logger.Warn("Callback without target id", zap.Int64("user_id", u.UserID), zap.String("data", cb.Data))
		return nil
	}

	switch action {
	case ActInspAdd:
		h.edits.Clear(u.UserID)
		h.citySearch.Clear(u.UserID)
		h.intents.Enable(u.UserID)
		return h.send(ctx, u.ChatID, "📸 Send a photo with a caption.", nil)

	case ActInspList:
		page := 0
		if arg != "" {
			p, err := strconv.Atoi(arg)
			if err != nil || p < 0 {
				h.logger.Warn("Invalid page in callback", zap.Int64("user_id", u.UserID), zap.String("data", cb.Data))
				return nil
			}
			page = p
		}
		return h.listInspirations(ctx, u, page)

	case ActInspView:
		return h.viewInspiration(ctx, u, arg)

	case ActInspEdit:
		return h.startEdit(ctx, u, arg, domain.EditContent, "✏ Send the new caption.")

	case ActInspTags:
		return h.startEdit(ctx, u, arg, domain.EditTags, "🏷 Send tags separated by commas.")

	case ActInspLabel:
		return h.startEdit(ctx, u, arg, domain.EditLabel, "📂 Send the new label.")

	case ActInspFavorite:
		return h.toggleFavorite(ctx, u, arg)

	case ActInspDeleteConfirm:
		return h.send(ctx, u.ChatID, "Are you sure?", deleteConfirmMarkup(arg))

	case ActInspDelete:
		if err := h.inspirations.Delete(ctx, u.UserID, arg); err != nil {
			return h.replyInspirationError(ctx, u, "delete", err)
		}
		return h.send(ctx, u.ChatID, "🗑 Deleted.", nil)

	case ActInspCancel:
		h.intents.Clear(u.UserID)
		h.edits.Clear(u.UserID)
		return h.send(ctx, u.ChatID, "❌ Cancelled.", nil)
	}

	h.logger.Debug("Unknown inspiration action", zap.String("data", cb.Data))
	return nil
}

func (h *Handler) listInspirations(ctx context.Context, u domain.Update, page int) error {
	result, err := h.inspirations.Page(ctx, u.UserID, page)
	if err != nil {
		return h.replyInspirationError(ctx, u, "list", err)
	}

	if result.TotalCount == 0 {
		return h.send(ctx, u.ChatID, "You haven’t saved any inspirations yet 🎀", inspirationsMenuMarkup())
	}

	for _, insp := range result.Items {
		if err := h.msg.SendPhoto(ctx, u.ChatID, insp.ImageFileID, formatInspirationCaption(insp), listItemMarkup(insp.ID)); err != nil {
			h.logger.Warn("Failed to send inspiration",
				zap.Error(err),
				zap.Int64("chat_id", u.ChatID),
				zap.String("inspiration_id", insp.ID),
			)
		}
	}

	return h.send(ctx, u.ChatID, fmt.Sprintf("Page %d", page+1),
		paginationMarkup(page, result.HasPrev(), result.HasNext()))
}

func (h *Handler) viewInspiration(ctx context.Context, u domain.Update, id string) error {
	insp, err := h.inspirations.GetByID(ctx, u.UserID, id)
	if err != nil {
		return h.replyInspirationError(ctx, u, "view", err)
	}
	if err := h.msg.SendPhoto(ctx, u.ChatID, insp.ImageFileID, formatInspirationCaption(*insp), singleMarkup(insp.ID, insp.Favorite)); err != nil {
		h.logger.Warn("Failed to send inspiration", zap.Error(err), zap.Int64("chat_id", u.ChatID))
		return err
	}
	return nil
}

// startEdit arms the edit flow; the next text message from the user is the new value
func (h *Handler) startEdit(ctx context.Context, u domain.Update, id string, field domain.EditField, prompt string) error {
	h.citySearch.Clear(u.UserID)
	h.edits.Set(u.UserID, domain.EditContext{TargetID: id, Field: field})

	h.logger.Debug("Edit started",
		zap.Int64("user_id", u.UserID),
		zap.String("inspiration_id", id),
		zap.Stringer("field", field),
	)
	return h.send(ctx, u.ChatID, prompt, nil)
}

func (h *Handler) toggleFavorite(ctx context.Context, u domain.Update, id string) error {
	favorite, err := h.inspirations.ToggleFavorite(ctx, u.UserID, id)
	if err != nil {
		return h.replyInspirationError(ctx, u, "toggle favorite", err)
	}

	if u.Callback.MessageID == 0 {
		return nil
	}
	if err := h.msg.EditMarkup(ctx, u.ChatID, u.Callback.MessageID, singleMarkup(id, favorite)); err != nil {
		h.logger.Warn("Failed to refresh inspiration keyboard", zap.Error(err), zap.Int64("chat_id", u.ChatID))
		return err
	}
	return nil
}

func (h *Handler) canHandleInspirationCreate(u domain.Update) bool {
	return u.Kind() == domain.KindMedia &&
		strings.TrimSpace(u.Media.Caption) != "" &&
		h.intents.Consume(u.UserID)
}

func (h *Handler) handleInspirationCreate(ctx context.Context, u domain.Update) error {
	created, err := h.inspirations.Add(ctx, u.UserID, u.Media.Ref, u.Media.Caption)
	if err != nil {
		h.logger.Error("Failed to save inspiration", zap.Error(err), zap.Int64("user_id", u.UserID))
		return h.send(ctx, u.ChatID, "⚠️ Couldn't save the inspiration. Tap ➕ Add Inspiration to try again.", nil)
	}

	h.logger.Info("Inspiration saved",
		zap.Int64("user_id", u.UserID),
		zap.String("inspiration_id", created.ID),
	)
	return h.send(ctx, u.ChatID, "✅ Inspiration saved. You can enhance it:", enhanceMarkup(created.ID))
}

func (h *Handler) canHandleInspirationEdit(u domain.Update) bool {
	if u.Kind() != domain.KindText {
		return false
	}
	_, ok := h.edits.TryGet(u.UserID)
	return ok
}

// handleInspirationEdit takes the edit context before touching storage, so the
// context is gone whether or not the update succeeds
func (h *Handler) handleInspirationEdit(ctx context.Context, u domain.Update) error {
	ec, ok := h.edits.Take(u.UserID)
	if !ok {
		return nil
	}

	text := strings.TrimSpace(u.Text)
	var err error
	switch ec.Field {
	case domain.EditContent:
		err = h.inspirations.UpdateContent(ctx, u.UserID, ec.TargetID, text)
	case domain.EditTags:
		err = h.inspirations.UpdateTags(ctx, u.UserID, ec.TargetID, domain.ParseTags(text))
	case domain.EditLabel:
		err = h.inspirations.UpdateLabel(ctx, u.UserID, ec.TargetID, text)
	default:
		err = fmt.Errorf("unknown edit field %d: %w", ec.Field, domain.ErrInvalidInput)
	}
	if err != nil {
		return h.replyInspirationError(ctx, u, "edit "+ec.Field.String(), err)
	}

	return h.send(ctx, u.ChatID, "✅ Inspiration updated.", nil)
}

// replyInspirationError logs a failed operation and sends the matching apology
func (h *Handler) replyInspirationError(ctx context.Context, u domain.Update, op string, err error) error {
	text := inspirationErrorText
	switch {
	case errors.Is(err, domain.ErrNotFound):
		text = inspirationNotFoundText
		h.logger.Info("Inspiration not found", zap.String("op", op), zap.Int64("user_id", u.UserID))
	case errors.Is(err, domain.ErrInvalidInput):
		text = "⚠️ That doesn't look right. Please try again."
		h.logger.Info("Invalid inspiration input", zap.String("op", op), zap.Error(err), zap.Int64("user_id", u.UserID))
	default:
		h.logger.Error("Inspiration operation failed", zap.String("op", op), zap.Error(err), zap.Int64("user_id", u.UserID))
	}
	return h.send(ctx, u.ChatID, text, nil)
}
