package middleware

import (
	"github.com/labstack/echo/v4"
)

// SecurityHeaders sets response headers suited to a JSON API that returns
// patient data.
func SecurityHeaders() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Response().Header()

			h.Set(echo.HeaderXContentTypeOptions, "nosniff")
			h.Set(echo.HeaderXFrameOptions, "DENY")
			h.Set(echo.HeaderContentSecurityPolicy, "default-src 'none'; frame-ancestors 'none'")
			h.Set(echo.HeaderStrictTransportSecurity, "max-age=31536000; includeSubDomains")
			h.Set(echo.HeaderReferrerPolicy, "no-referrer")

			// Patient records must not end up in shared caches.
			h.Set(echo.HeaderCacheControl, "no-store")

			return next(c)
		}
	}
}
