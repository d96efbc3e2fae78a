package crud

import (
	"context"
	"errors"
	"fmt"

	"github.com/medsys/hospital/internal/platform/apierr"
	"github.com/medsys/hospital/internal/platform/db"
)

// Unlink removes the association rows matching f. Removing a link that does
// not exist is ErrNotFound.
func Unlink[T any](ctx context.Context, store Store[T], f Filter) error {
	n, err := store.DeleteWhere(ctx, f)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("unlink: %w", db.ErrNotFound)
	}
	return nil
}

// RequireRef fails with a ValidationError on field when id names no row in
// store. A nil id is accepted; nullable references are checked only when set.
func RequireRef[T any](ctx context.Context, store Store[T], field string, id *int64) error {
	if id == nil {
		return nil
	}
	if _, err := store.Get(ctx, *id); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return apierr.Invalid(field, "references a missing row %d", *id)
		}
		return err
	}
	return nil
}

// All pages through store until every row matching f has been read.
func All[T any](ctx context.Context, store Store[T], f Filter) ([]*T, error) {
	const page = 500
	var out []*T
	for offset := 0; ; offset += page {
		items, total, err := store.List(ctx, f, page, offset)
		if err != nil {
			return nil, err
		}
		out = append(out, items...)
		if offset+len(items) >= total || len(items) == 0 {
			return out, nil
		}
	}
}

// Resolve loads the row each link points at, in link order.
func Resolve[L, T any](ctx context.Context, links []*L, store Store[T], ref func(*L) int64) ([]*T, error) {
	out := make([]*T, 0, len(links))
	for _, l := range links {
		v, err := store.Get(ctx, ref(l))
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
