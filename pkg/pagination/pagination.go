package pagination

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"sync/atomic"

	"github.com/labstack/echo/v4"
)

const (
	DefaultLimit    = 100
	DefaultMaxLimit = 1000
)

var maxLimit atomic.Int64

func init() {
	maxLimit.Store(DefaultMaxLimit)
}

// SetMaxLimit changes the page size cap applied by FromContext.
// Values <= 0 restore DefaultMaxLimit.
func SetMaxLimit(n int) {
	if n <= 0 {
		n = DefaultMaxLimit
	}
	maxLimit.Store(int64(n))
}

// MaxLimit returns the current page size cap.
func MaxLimit() int {
	return int(maxLimit.Load())
}

// Params holds pagination parameters extracted from a request.
type Params struct {
	Limit  int
	Offset int
}

// MaxOffset is the largest offset a client may request.
const MaxOffset = math.MaxInt32

// ParamError reports a malformed paging query parameter.
type ParamError struct {
	Param  string
	Reason string
}

func (e *ParamError) Error() string {
	return e.Param + " " + e.Reason
}

// FromContext extracts offset/limit query parameters from the echo context.
// Missing values fall back to offset 0 and DefaultLimit; a limit above the cap
// is clamped. Anything that is not a positive limit or a non-negative offset
// up to MaxOffset is a *ParamError.
func FromContext(c echo.Context) (Params, error) {
	p := Params{Limit: DefaultLimit}

	if raw := c.QueryParam("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			return Params{}, &ParamError{Param: "limit", Reason: "must be a positive integer"}
		}
		p.Limit = limit
	}
	if max := MaxLimit(); p.Limit > max {
		p.Limit = max
	}

	if raw := c.QueryParam("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 || offset > MaxOffset {
			return Params{}, &ParamError{Param: "offset", Reason: fmt.Sprintf("must be an integer between 0 and %d", MaxOffset)}
		}
		p.Offset = offset
	}

	return p, nil
}

// Response wraps a paginated API response.
type Response struct {
	Data       interface{} `json:"data"`
	Total      int         `json:"total"`
	Limit      int         `json:"limit"`
	Offset     int         `json:"offset"`
	HasMore    bool        `json:"has_more"`
	NextOffset *int        `json:"next_offset,omitempty"`
}

// NewResponse builds the list envelope. A nil slice is rendered as [].
func NewResponse(data interface{}, total int, p Params) *Response {
	resp := &Response{
		Data:    emptyIfNil(data),
		Total:   total,
		Limit:   p.Limit,
		Offset:  p.Offset,
		HasMore: p.HasNext(total),
	}
	if resp.HasMore {
		next := p.NextOffset()
		resp.NextOffset = &next
	}
	return resp
}

// HasNext returns true if there are more results after the current page.
func (p Params) HasNext(total int) bool {
	return total-p.Offset > p.Limit
}

// NextOffset returns the offset for the next page.
func (p Params) NextOffset() int {
	return p.Offset + p.Limit
}

func emptyIfNil(data interface{}) interface{} {
	if data == nil {
		return []struct{}{}
	}
	v := reflect.ValueOf(data)
	if v.Kind() == reflect.Slice && v.IsNil() {
		return reflect.MakeSlice(v.Type(), 0, 0).Interface()
	}
	return data
}
