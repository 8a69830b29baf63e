package middleware

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const HeaderRequestID = "X-Request-ID"

// RequestLogger はリクエストIDを振って1リクエスト1行でログに出す
func RequestLogger(log *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			reqID := c.Request().Header.Get(HeaderRequestID)
			if reqID == "" {
				reqID = uuid.NewString()
			}
			c.Response().Header().Set(HeaderRequestID, reqID)

			err := next(c)
			if err != nil {
				//echoのエラーハンドラでステータスを確定させる
				c.Error(err)
			}

			attrs := []any{
				"request_id", reqID,
				"method", c.Request().Method,
				"path", c.Path(),
				"status", c.Response().Status,
				"duration_ms", time.Since(start).Milliseconds(),
			}
			if uid, ok := UserIDFrom(c); ok {
				attrs = append(attrs, "user_id", uid)
			}

			switch {
			case c.Response().Status >= 500:
				log.Error("request", attrs...)
			default:
				log.Info("request", attrs...)
			}
			return nil
		}
	}
}
