// Package apierr turns storage and validation failures into HTTP responses.
package apierr

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/medsys/hospital/internal/platform/db"
)

// FieldError describes one rejected input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is returned when a request body or parameter fails
// validation. It maps to 400.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Invalid builds a single-field ValidationError.
func Invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: fmt.Sprintf(format, args...)}}}
}

// Checker is implemented by entities with rules struct tags cannot express.
type Checker interface {
	Check() error
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func engine() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// Validate runs the `validate` struct tags on v and then its Check method,
// if any. Failures are reported as *ValidationError.
func Validate(v any) error {
	if err := engine().Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		out := &ValidationError{}
		for _, fe := range verrs {
			out.Fields = append(out.Fields, FieldError{Field: fe.Field(), Message: describe(fe)})
		}
		return out
	}
	if c, ok := v.(Checker); ok {
		return c.Check()
	}
	return nil
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min", "gte":
		return "must be at least " + fe.Param()
	case "max", "lte":
		return "must be at most " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "oneof":
		return "must be one of " + fe.Param()
	}
	return "failed " + fe.Tag() + " check"
}

// Bind decodes the request into v and validates it.
func Bind(c echo.Context, v any) error {
	if err := c.Bind(v); err != nil {
		var he *echo.HTTPError
		if errors.As(err, &he) {
			return echo.NewHTTPError(he.Code, fmt.Sprint(he.Message))
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return Validate(v)
}

// HTTP maps err to an *echo.HTTPError. Storage errors keep their message,
// anything unrecognised becomes an opaque 500 with err attached as Internal.
func HTTP(err error) *echo.HTTPError {
	if err == nil {
		return nil
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he
	}

	var ve *ValidationError
	switch {
	case errors.As(err, &ve):
		return echo.NewHTTPError(http.StatusBadRequest, ve)
	case errors.Is(err, db.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, db.ErrConflict):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, db.ErrInvalid):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return echo.NewHTTPError(http.StatusGatewayTimeout, "request processing exceeded the allowed time limit").SetInternal(err)
	}
	return echo.NewHTTPError(http.StatusInternalServerError, "internal server error").SetInternal(err)
}

// Body is the JSON error envelope.
type Body struct {
	Error   string       `json:"error"`
	Message string       `json:"message"`
	Details []FieldError `json:"details,omitempty"`
}

// Code returns the machine-readable error code for an HTTP status.
func Code(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "bad_request"
	case http.StatusUnauthorized:
		return "unauthorized"
	case http.StatusForbidden:
		return "forbidden"
	case http.StatusNotFound:
		return "not_found"
	case http.StatusMethodNotAllowed:
		return "method_not_allowed"
	case http.StatusConflict:
		return "conflict"
	case http.StatusRequestEntityTooLarge:
		return "payload_too_large"
	case http.StatusTooManyRequests:
		return "rate_limited"
	case http.StatusServiceUnavailable:
		return "unavailable"
	case http.StatusGatewayTimeout:
		return "timeout"
	}
	if status >= 500 {
		return "internal_error"
	}
	return "error"
}

// NewBody renders an *echo.HTTPError as the JSON envelope.
func NewBody(he *echo.HTTPError) Body {
	b := Body{Error: Code(he.Code)}
	switch m := he.Message.(type) {
	case *ValidationError:
		b.Error = "validation_error"
		b.Message = "validation failed"
		b.Details = m.Fields
	case string:
		b.Message = m
	case error:
		b.Message = m.Error()
	default:
		b.Message = fmt.Sprint(m)
	}
	if b.Message == "" {
		b.Message = http.StatusText(he.Code)
	}
	return b
}

// ErrorHandler returns the echo HTTPErrorHandler that writes every error as a
// JSON Body. Server errors are logged with their internal cause.
func ErrorHandler(logger zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		he := HTTP(err)
		if he.Code >= http.StatusInternalServerError {
			cause := err
			if he.Internal != nil {
				cause = he.Internal
			}
			rid, _ := c.Get("request_id").(string)
			logger.Error().Err(cause).
				Str("request_id", rid).
				Str("method", c.Request().Method).
				Str("path", c.Request().URL.Path).
				Int("status", he.Code).
				Msg("request failed")
		}

		var werr error
		if c.Request().Method == http.MethodHead {
			werr = c.NoContent(he.Code)
		} else {
			werr = c.JSON(he.Code, NewBody(he))
		}
		if werr != nil {
			logger.Error().Err(werr).Msg("write error response")
		}
	}
}
