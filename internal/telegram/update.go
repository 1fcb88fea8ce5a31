// Package telegram adapts telebot to the bot dispatch engine.
package telegram

import (
	"strings"
	"unicode"

	"nastaran/internal/domain"

	tele "gopkg.in/telebot.v3"
)

// cleanCallbackData removes whitespace and unprintable characters from callback data
func cleanCallbackData(data string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, strings.TrimSpace(data))
}

// ToUpdate converts a telebot update into the transport-neutral update.
// Updates without a human sender come back with KindOther.
func ToUpdate(upd *tele.Update) domain.Update {
	if upd == nil {
		return domain.Update{}
	}

	if cb := upd.Callback; cb != nil {
		if cb.Sender == nil {
			return domain.Update{ID: upd.ID}
		}
		u := domain.Update{
			ID:     upd.ID,
			UserID: cb.Sender.ID,
			ChatID: cb.Sender.ID,
			From:   sender(cb.Sender),
			Callback: &domain.Callback{
				ID:   cb.ID,
				Data: cleanCallbackData(cb.Data),
			},
		}
		if cb.Message != nil {
			u.Callback.MessageID = cb.Message.ID
			if cb.Message.Chat != nil {
				u.ChatID = cb.Message.Chat.ID
			}
		}
		return u
	}

	m := upd.Message
	if m == nil || m.Sender == nil || m.Chat == nil {
		return domain.Update{ID: upd.ID}
	}

	u := domain.Update{
		ID:     upd.ID,
		UserID: m.Sender.ID,
		ChatID: m.Chat.ID,
		From:   sender(m.Sender),
	}

	switch {
	case m.Location != nil:
		u.Location = &domain.Location{
			Lat: float64(m.Location.Lat),
			Lon: float64(m.Location.Lng),
		}
	case m.Photo != nil:
		u.Media = &domain.Media{Ref: m.Photo.FileID, Caption: m.Caption}
	default:
		u.Text = m.Text
	}
	return u
}

func sender(user *tele.User) domain.Sender {
	return domain.Sender{Username: user.Username, FirstName: user.FirstName}
}
