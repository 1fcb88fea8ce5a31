package middleware

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	tele "gopkg.in/telebot.v3"
)

func newContext(t *testing.T, upd tele.Update) tele.Context {
	t.Helper()

	b, err := tele.NewBot(tele.Settings{Offline: true, Synchronous: true})
	require.NoError(t, err)
	return b.NewContext(upd)
}

func textUpdate(id int, text string) tele.Update {
	return tele.Update{ID: id, Message: &tele.Message{
		Sender: &tele.User{ID: 7},
		Chat:   &tele.Chat{ID: 70},
		Text:   text,
	}}
}

func TestRecover(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	mw := Recover(zap.New(core))

	t.Run("panic becomes error", func(t *testing.T) {
		h := mw(func(tele.Context) error { panic("boom") })

		err := h(newContext(t, textUpdate(9, "/start")))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "boom")
		assert.Equal(t, 1, logs.FilterMessage("Panic recovered").Len())
	})

	t.Run("errors pass through", func(t *testing.T) {
		want := errors.New("failed")
		h := mw(func(tele.Context) error { return want })

		assert.ErrorIs(t, h(newContext(t, textUpdate(10, "hi"))), want)
	})
}

func TestLogging(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	mw := Logging(zap.New(core))

	ok := mw(func(tele.Context) error { return nil })
	require.NoError(t, ok(newContext(t, textUpdate(1, "hi"))))

	want := errors.New("send failed")
	failing := mw(func(tele.Context) error { return want })
	assert.ErrorIs(t, failing(newContext(t, tele.Update{ID: 2, Callback: &tele.Callback{Sender: &tele.User{ID: 7}}})), want)

	entries := logs.All()
	require.Len(t, entries, 2)

	assert.Equal(t, "Update handled", entries[0].Message)
	assert.Equal(t, "text", entries[0].ContextMap()["kind"])
	assert.Equal(t, int64(7), entries[0].ContextMap()["user_id"])

	assert.Equal(t, "Update handled with error", entries[1].Message)
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, "callback", entries[1].ContextMap()["kind"])
}

func TestUpdateKind(t *testing.T) {
	user := &tele.User{ID: 7}
	chat := &tele.Chat{ID: 70}

	tests := []struct {
		name string
		upd  tele.Update
		want string
	}{
		{"callback", tele.Update{Callback: &tele.Callback{Sender: user}}, "callback"},
		{"location", tele.Update{Message: &tele.Message{Sender: user, Chat: chat, Location: &tele.Location{}}}, "location"},
		{"photo", tele.Update{Message: &tele.Message{Sender: user, Chat: chat, Photo: &tele.Photo{}}}, "media"},
		{"text", tele.Update{Message: &tele.Message{Sender: user, Chat: chat, Text: "hi"}}, "text"},
		{"text without sender", tele.Update{Message: &tele.Message{Chat: chat, Text: "hi"}}, "other"},
		{"empty message", tele.Update{Message: &tele.Message{Sender: user, Chat: chat}}, "other"},
		{"no message", tele.Update{}, "other"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, updateKind(tt.upd))
		})
	}
}
