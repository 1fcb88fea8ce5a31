package middleware

import (
	"time"

	"nastaran/internal/telegram"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Logging creates middleware that logs one line per processed update
func Logging(logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			start := time.Now()
			err := next(c)

			upd := c.Update()
			fields := []zap.Field{
				zap.Int("update_id", upd.ID),
				zap.String("kind", updateKind(upd)),
				zap.Duration("duration", time.Since(start)),
			}
			if sender := c.Sender(); sender != nil {
				fields = append(fields, zap.Int64("user_id", sender.ID))
			}

			if err != nil {
				logger.Warn("Update handled with error", append(fields, zap.Error(err))...)
				return err
			}
			logger.Debug("Update handled", fields...)
			return nil
		}
	}
}

// updateKind labels the update the same way the dispatcher classifies it
func updateKind(upd tele.Update) string {
	return telegram.ToUpdate(&upd).Kind().String()
}
