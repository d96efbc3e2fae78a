package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/medsys/hospital/internal/platform/apierr"
)

// RequestTimeout sets a deadline on each request context so in-flight
// queries abort once it passes. The handler runs on the request goroutine;
// when it fails with the deadline error a 504 is written. A non-positive
// timeout disables it.
func RequestTimeout(timeout time.Duration) echo.MiddlewareFunc {
	if timeout <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	return echomw.ContextTimeoutWithConfig(echomw.ContextTimeoutConfig{
		Timeout:      timeout,
		ErrorHandler: timeoutError,
	})
}

func timeoutError(err error, c echo.Context) error {
	if !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	if c.Response().Committed {
		return nil
	}
	he := echo.NewHTTPError(http.StatusGatewayTimeout, "request processing exceeded the allowed time limit")
	return c.JSON(he.Code, apierr.NewBody(he))
}
