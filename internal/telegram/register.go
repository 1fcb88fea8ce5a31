package telegram

import (
	"context"
	"time"

	"nastaran/internal/domain"

	tele "gopkg.in/telebot.v3"
)

// Dispatcher receives every converted update
type Dispatcher interface {
	Dispatch(ctx context.Context, u domain.Update) error
}

// Register binds the telebot endpoints to one handler that converts the
// update and hands it to the dispatcher. Each update gets its own deadline
// derived from parent, so cancelling parent aborts in-flight work.
// Middleware must be installed with b.Use before calling Register.
func Register(parent context.Context, b *tele.Bot, d Dispatcher, timeout time.Duration) {
	handle := func(c tele.Context) error {
		upd := c.Update()

		ctx, cancel := context.WithTimeout(parent, timeout)
		defer cancel()

		return d.Dispatch(ctx, ToUpdate(&upd))
	}

	for _, endpoint := range []string{tele.OnText, tele.OnCallback, tele.OnLocation, tele.OnMedia} {
		b.Handle(endpoint, handle)
	}
}
