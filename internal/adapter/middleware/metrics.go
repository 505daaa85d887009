package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
)

// RequestObserver receives one call per served request.
type RequestObserver interface {
	RequestStarted()
	RequestFinished(method, path string, status int, took time.Duration)
}

// Metrics reports every request under its route template, not the raw URL.
func Metrics(obs RequestObserver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			obs.RequestStarted()

			err := next(c)
			if err != nil {
				c.Error(err)
			}
			path := c.Path()
			if path == "" {
				path = "unmatched"
			}
			obs.RequestFinished(c.Request().Method, path, c.Response().Status, time.Since(start))
			return nil
		}
	}
}
