package crud_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/medsys/hospital/internal/platform/apierr"
	"github.com/medsys/hospital/internal/platform/crud"
	"github.com/medsys/hospital/internal/platform/crud/crudtest"
	"github.com/medsys/hospital/internal/platform/db"
)

func TestUnlink(t *testing.T) {
	ctx := context.Background()
	store := crudtest.New(wardSchema)
	store.Create(ctx, &ward{Title: "a", DepartmentID: ptr(1)})

	if err := crud.Unlink[ward](ctx, store, crud.Filter{"title": "a", "department_id": int64(1)}); err != nil {
		t.Fatalf("Unlink: %v", err)
	}
	if store.Len() != 0 {
		t.Error("expected the row to be removed")
	}
	err := crud.Unlink[ward](ctx, store, crud.Filter{"title": "a", "department_id": int64(1)})
	if !errors.Is(err, db.ErrNotFound) {
		t.Errorf("expected ErrNotFound for a missing link, got %v", err)
	}
}

func TestAll(t *testing.T) {
	ctx := context.Background()
	store := crudtest.New(wardSchema)
	for i := 0; i < 1203; i++ {
		store.Create(ctx, &ward{Title: fmt.Sprintf("w%d", i), DepartmentID: ptr(int64(i % 3))})
	}

	all, err := crud.All[ward](ctx, store, nil)
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(all) != 1203 {
		t.Errorf("expected 1203 rows, got %d", len(all))
	}

	some, _ := crud.All[ward](ctx, store, crud.Filter{"department_id": int64(0)})
	if len(some) != 401 {
		t.Errorf("expected 401 rows in department 0, got %d", len(some))
	}
}

func TestRequireRef(t *testing.T) {
	ctx := context.Background()
	store := crudtest.New(wardSchema)
	store.Create(ctx, &ward{Title: "a"})

	if err := crud.RequireRef[ward](ctx, store, "ward_id", nil); err != nil {
		t.Errorf("nil reference must pass, got %v", err)
	}
	if err := crud.RequireRef[ward](ctx, store, "ward_id", ptr(1)); err != nil {
		t.Errorf("existing reference must pass, got %v", err)
	}

	err := crud.RequireRef[ward](ctx, store, "ward_id", ptr(9))
	var ve *apierr.ValidationError
	if !errors.As(err, &ve) || ve.Fields[0].Field != "ward_id" {
		t.Errorf("expected ValidationError on ward_id, got %v", err)
	}

	store.Err = errors.New("connection lost")
	if err := crud.RequireRef[ward](ctx, store, "ward_id", ptr(1)); errors.As(err, &ve) {
		t.Error("storage failures must not be reported as validation errors")
	}
}

func TestResolve(t *testing.T) {
	ctx := context.Background()
	store := crudtest.New(wardSchema)
	store.Create(ctx, &ward{Title: "a"})
	store.Create(ctx, &ward{Title: "b"})

	refs := []*int64{ptr(2), ptr(1)}
	got, err := crud.Resolve(ctx, refs, crud.Store[ward](store), func(id *int64) int64 { return *id })
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(got) != 2 || got[0].Title != "b" || got[1].Title != "a" {
		t.Errorf("expected rows in link order, got %+v", got)
	}

	_, err = crud.Resolve(ctx, []*int64{ptr(7)}, crud.Store[ward](store), func(id *int64) int64 { return *id })
	if !errors.Is(err, db.ErrNotFound) {
		t.Errorf("expected ErrNotFound for a dangling link, got %v", err)
	}
}
