package middleware

import (
	"fmt"
	"net/http"
	"runtime"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/acidni-llc/cdes-m/internal/platform/fhir"
)

// Recovery turns a handler panic into a logged 500 carrying a FHIR
// OperationOutcome body, keeping the error contract uniform across the
// /api/v1 and /fhir route groups.
func Recovery(logger zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				var stack [4096]byte
				n := runtime.Stack(stack[:], false)

				rid, _ := c.Get("request_id").(string)
				logger.Error().
					Str("request_id", rid).
					Str("panic", fmt.Sprintf("%v", r)).
					Str("stack", string(stack[:n])).
					Msg("panic recovered")

				if !c.Response().Committed {
					outcome := fhir.NewOperationOutcome(
						fhir.IssueSeverityFatal, fhir.IssueTypeException, "internal server error")
					err = c.JSON(http.StatusInternalServerError, outcome)
				}
			}()
			return next(c)
		}
	}
}
