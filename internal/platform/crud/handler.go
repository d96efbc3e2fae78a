package crud

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/medsys/hospital/internal/platform/apierr"
	"github.com/medsys/hospital/pkg/pagination"
)

// Handler serves the REST surface of one entity table.
type Handler[T any] struct {
	schema *Schema[T]
	store  Store[T]

	// BeforeSave runs after validation on create and update.
	BeforeSave func(ctx context.Context, v *T) error
}

func NewHandler[T any](schema *Schema[T], store Store[T]) *Handler[T] {
	return &Handler[T]{schema: schema, store: store}
}

// Register mounts list/get on read and create/update/delete on write.
func (h *Handler[T]) Register(read, write *echo.Group, path string) {
	read.GET(path, h.List)
	read.GET(path+"/:id", h.Get)
	write.POST(path, h.Create)
	write.PUT(path+"/:id", h.Update)
	write.DELETE(path+"/:id", h.Delete)
}

// RegisterNested mounts a list of the rows whose column equals the :id
// segment of path, e.g. /hospitals/:id/departments over hospital_id.
func (h *Handler[T]) RegisterNested(read *echo.Group, path, column string) {
	read.GET(path, h.ListBy(column))
}

// PathID parses a positive integer path parameter.
func PathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apierr.Invalid(name, "must be a positive integer")
	}
	return id, nil
}

// QueryFilter collects the allowed filter columns present in the query
// string. Integers are matched as ids, "null" as NULL, true/false as booleans.
func QueryFilter(c echo.Context, allowed []string) Filter {
	f := Filter{}
	for _, col := range allowed {
		raw := c.QueryParam(col)
		if raw == "" {
			continue
		}
		if raw == "null" {
			f[col] = nil
		} else if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
			f[col] = n
		} else if b, err := strconv.ParseBool(raw); err == nil {
			f[col] = b
		} else {
			f[col] = raw
		}
	}
	return f
}

func (h *Handler[T]) List(c echo.Context) error {
	return h.list(c, QueryFilter(c, h.schema.Filters))
}

// ListBy returns a handler listing rows whose column equals the :id param.
func (h *Handler[T]) ListBy(column string) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := PathID(c, "id")
		if err != nil {
			return apierr.HTTP(err)
		}
		f := QueryFilter(c, h.schema.Filters)
		f[column] = id
		return h.list(c, f)
	}
}

func (h *Handler[T]) list(c echo.Context, f Filter) error {
	p, err := pagination.FromContext(c)
	if err != nil {
		var pe *pagination.ParamError
		if errors.As(err, &pe) {
			return apierr.HTTP(apierr.Invalid(pe.Param, pe.Reason))
		}
		return apierr.HTTP(err)
	}
	items, total, err := h.store.List(c.Request().Context(), f, p.Limit, p.Offset)
	if err != nil {
		return apierr.HTTP(err)
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, p))
}

func (h *Handler[T]) Get(c echo.Context) error {
	id, err := PathID(c, "id")
	if err != nil {
		return apierr.HTTP(err)
	}
	v, err := h.store.Get(c.Request().Context(), id)
	if err != nil {
		return apierr.HTTP(err)
	}
	return c.JSON(http.StatusOK, v)
}

// bind decodes and validates the body, then drops whatever the client sent
// for managed columns.
func (h *Handler[T]) bind(c echo.Context) (*T, error) {
	v := new(T)
	if err := apierr.Bind(c, v); err != nil {
		return nil, err
	}
	if len(h.schema.Managed) > 0 {
		h.schema.Copy(v, new(T), h.schema.Managed)
	}
	return v, nil
}

func (h *Handler[T]) Create(c echo.Context) error {
	v, err := h.bind(c)
	if err != nil {
		return apierr.HTTP(err)
	}
	ctx := c.Request().Context()
	if h.BeforeSave != nil {
		if err := h.BeforeSave(ctx, v); err != nil {
			return apierr.HTTP(err)
		}
	}
	if err := h.store.Create(ctx, v); err != nil {
		return apierr.HTTP(err)
	}
	return c.JSON(http.StatusCreated, v)
}

func (h *Handler[T]) Update(c echo.Context) error {
	id, err := PathID(c, "id")
	if err != nil {
		return apierr.HTTP(err)
	}
	v, err := h.bind(c)
	if err != nil {
		return apierr.HTTP(err)
	}
	*h.schema.ID(v) = id

	ctx := c.Request().Context()
	if h.BeforeSave != nil {
		if err := h.BeforeSave(ctx, v); err != nil {
			return apierr.HTTP(err)
		}
	}
	if err := h.store.Patch(ctx, v, h.schema.ClientWritable(), nil); err != nil {
		return apierr.HTTP(err)
	}
	return c.JSON(http.StatusOK, v)
}

// Upsert inserts or updates by the schema's natural key and returns the id.
func (h *Handler[T]) Upsert(c echo.Context) error {
	v, err := h.bind(c)
	if err != nil {
		return apierr.HTTP(err)
	}
	ctx := c.Request().Context()
	if h.BeforeSave != nil {
		if err := h.BeforeSave(ctx, v); err != nil {
			return apierr.HTTP(err)
		}
	}
	if err := h.store.Upsert(ctx, v); err != nil {
		return apierr.HTTP(err)
	}
	return c.JSON(http.StatusOK, map[string]int64{"id": *h.schema.ID(v)})
}

func (h *Handler[T]) Delete(c echo.Context) error {
	id, err := PathID(c, "id")
	if err != nil {
		return apierr.HTTP(err)
	}
	if err := h.store.Delete(c.Request().Context(), id); err != nil {
		return apierr.HTTP(err)
	}
	return c.NoContent(http.StatusNoContent)
}
