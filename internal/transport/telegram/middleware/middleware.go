package middleware

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	tele "gopkg.in/telebot.v4"
)

// Logger puts a fresh rqID into the telebot context and logs the request
// boundaries with it.
func Logger() tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			now := time.Now()

			rqID := uuid.NewString()
			c.Set("rqID", rqID)

			attrs := []any{slog.String("rqID", rqID)}
			if c.Chat() != nil {
				attrs = append(attrs, slog.Int64("chatID", c.Chat().ID))
			}
			if cb := c.Callback(); cb != nil {
				attrs = append(attrs, slog.String("callback", cb.Unique), slog.String("data", cb.Data))
			} else if c.Message() != nil {
				attrs = append(attrs, slog.String("text", c.Message().Text))
			}

			slog.Info("start request", attrs...)

			defer func() {
				slog.Info(
					"request finished",
					slog.String("rqID", rqID),
					slog.String("request duration", fmt.Sprintf("%.2fs", time.Since(now).Seconds())),
				)
			}()

			return next(c)
		}
	}
}
