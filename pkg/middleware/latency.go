package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
)

// Latency delays every request by d, so the mock backend behaves like a
// remote one. Zero disables it. A cancelled request stops waiting.
func Latency(d time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if d <= 0 {
			return next
		}
		return func(c echo.Context) error {
			t := time.NewTimer(d)
			defer t.Stop()
			select {
			case <-t.C:
			case <-c.Request().Context().Done():
				return c.Request().Context().Err()
			}
			return next(c)
		}
	}
}
