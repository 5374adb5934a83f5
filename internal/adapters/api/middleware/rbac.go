package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireFlag allows the request when any of the given claim flags is set.
// It must run after Auth.
func RequireFlag(flags ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			for _, f := range flags {
				if on, _ := c.Get(f).(bool); on {
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusForbidden, "access forbidden")
		}
	}
}
