package telegram

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// API is the part of *tele.Bot the messenger uses
type API interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
	EditReplyMarkup(msg tele.Editable, markup *tele.ReplyMarkup) (*tele.Message, error)
	Respond(c *tele.Callback, resp ...*tele.CallbackResponse) error
}

// Messenger delivers replies through the Telegram Bot API
type Messenger struct {
	api    API
	logger *zap.Logger
}

// NewMessenger creates a new messenger
func NewMessenger(api API, logger *zap.Logger) *Messenger {
	return &Messenger{api: api, logger: logger}
}

// Send sends a plain text message
func (m *Messenger) Send(ctx context.Context, chatID int64, text string, markup *tele.ReplyMarkup) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := m.api.Send(tele.ChatID(chatID), text, markup)
	return err
}

// SendMarkdown sends a message formatted with legacy Markdown
func (m *Messenger) SendMarkdown(ctx context.Context, chatID int64, text string, markup *tele.ReplyMarkup) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := m.api.Send(tele.ChatID(chatID), text, markup, tele.ModeMarkdown)
	return err
}

// SendPhoto re-sends a photo Telegram already stores, by file id
func (m *Messenger) SendPhoto(ctx context.Context, chatID int64, fileRef, caption string, markup *tele.ReplyMarkup) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	photo := &tele.Photo{File: tele.File{FileID: fileRef}, Caption: caption}
	_, err := m.api.Send(tele.ChatID(chatID), photo, markup)
	return err
}

// AnswerCallback acknowledges a button press, optionally with a toast
func (m *Messenger) AnswerCallback(ctx context.Context, callbackID, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return m.api.Respond(&tele.Callback{ID: callbackID}, &tele.CallbackResponse{Text: text})
}

// EditMarkup replaces the inline keyboard of a sent message.
// Telegram rejects edits that change nothing; that is reported as success.
func (m *Messenger) EditMarkup(ctx context.Context, chatID int64, messageID int, markup *tele.ReplyMarkup) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := tele.StoredMessage{MessageID: strconv.Itoa(messageID), ChatID: chatID}
	_, err := m.api.EditReplyMarkup(msg, markup)
	if isNotModified(err) {
		m.logger.Debug("Keyboard already up to date",
			zap.Int64("chat_id", chatID),
			zap.Int("message_id", messageID),
		)
		return nil
	}
	return err
}

func isNotModified(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, tele.ErrMessageNotModified) ||
		errors.Is(err, tele.ErrSameMessageContent) ||
		strings.Contains(err.Error(), "message is not modified")
}
