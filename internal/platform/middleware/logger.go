package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/acidni-llc/cdes-m/internal/platform/auth"
)

// Logger emits one structured line per request, tagged with the request id
// and the authenticated subject when one is present.
func Logger(logger zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()

			err := next(c)

			evt := logger.Info()
			if err != nil {
				evt = logger.Error().Err(err)
			}
			rid, _ := c.Get("request_id").(string)
			evt = evt.
				Str("request_id", rid).
				Str("method", req.Method).
				Str("path", req.URL.Path)
			if q := req.URL.RawQuery; q != "" {
				evt = evt.Str("query", q)
			}
			if user := auth.UserIDFromContext(req.Context()); user != "" {
				evt = evt.Str("user", user)
			}
			evt.
				Int("status", c.Response().Status).
				Int64("bytes_out", c.Response().Size).
				Dur("elapsed", time.Since(start)).
				Str("remote_ip", c.RealIP()).
				Msg("http request")

			return err
		}
	}
}
