// Package crudtest provides an in-memory crud.Store for handler and service
// tests.
package crudtest

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/medsys/hospital/internal/platform/crud"
	"github.com/medsys/hospital/internal/platform/db"
)

// MemStore keeps rows in a map and enforces the schema's Unique and
// NaturalKey column sets the way the database constraints would.
type MemStore[T any] struct {
	mu     sync.Mutex
	schema *crud.Schema[T]
	rows   map[int64]*T
	nextID int64

	// Err, when set, is returned by every call.
	Err error
}

func New[T any](schema *crud.Schema[T]) *MemStore[T] {
	return &MemStore[T]{schema: schema, rows: make(map[int64]*T), nextID: 1}
}

// Len returns the number of stored rows.
func (m *MemStore[T]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}

func clone[T any](v *T) *T {
	c := *v
	return &c
}

// normalize dereferences pointers so *int64(5) and int64(5) compare equal
// and a nil pointer compares equal to nil.
func normalize(v any) any {
	rv := reflect.ValueOf(v)
	for rv.IsValid() && rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return nil
	}
	return rv.Interface()
}

func equal(a, b any) bool {
	a, b = normalize(a), normalize(b)
	if as, ok := a.(fmt.Stringer); ok {
		if bs, ok := b.(fmt.Stringer); ok {
			return as.String() == bs.String()
		}
	}
	return reflect.DeepEqual(a, b)
}

func (m *MemStore[T]) matches(v *T, f crud.Filter) (bool, error) {
	for col, want := range f {
		if !m.schema.HasColumn(col) {
			return false, fmt.Errorf("%w: unknown filter column %q", db.ErrInvalid, col)
		}
		if !equal(m.schema.Value(v, col), want) {
			return false, nil
		}
	}
	return true, nil
}

func (m *MemStore[T]) keySets() [][]string {
	sets := m.schema.Unique
	if len(m.schema.NaturalKey) > 0 {
		sets = append(append([][]string{}, sets...), m.schema.NaturalKey)
	}
	return sets
}

// conflict reports whether another row shares every column of a unique set
// with v. NULLs are treated as equal.
func (m *MemStore[T]) conflict(v *T, selfID int64) error {
	for _, set := range m.keySets() {
		for id, row := range m.rows {
			if id == selfID {
				continue
			}
			same := true
			for _, col := range set {
				if !equal(m.schema.Value(row, col), m.schema.Value(v, col)) {
					same = false
					break
				}
			}
			if same {
				return &db.ConstraintError{Kind: db.ErrConflict, Constraint: fmt.Sprintf("%s_%v_key", m.schema.Table, set)}
			}
		}
	}
	return nil
}

func (m *MemStore[T]) Get(ctx context.Context, id int64) (*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	v, ok := m.rows[id]
	if !ok {
		return nil, fmt.Errorf("get %s %d: %w", m.schema.Table, id, db.ErrNotFound)
	}
	return clone(v), nil
}

func (m *MemStore[T]) List(ctx context.Context, f crud.Filter, limit, offset int) ([]*T, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, 0, m.Err
	}

	ids := make([]int64, 0, len(m.rows))
	for id := range m.rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var matched []*T
	for _, id := range ids {
		ok, err := m.matches(m.rows[id], f)
		if err != nil {
			return nil, 0, err
		}
		if ok {
			matched = append(matched, m.rows[id])
		}
	}

	total := len(matched)
	items := []*T{}
	for i := offset; i < total && len(items) < limit; i++ {
		items = append(items, clone(matched[i]))
	}
	return items, total, nil
}

func (m *MemStore[T]) Create(ctx context.Context, v *T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	if err := m.conflict(v, 0); err != nil {
		return fmt.Errorf("create %s: %w", m.schema.Table, err)
	}
	*m.schema.ID(v) = m.nextID
	m.nextID++
	m.rows[*m.schema.ID(v)] = clone(v)
	return nil
}

func (m *MemStore[T]) Update(ctx context.Context, v *T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	id := *m.schema.ID(v)
	cur, ok := m.rows[id]
	if !ok {
		return fmt.Errorf("update %s %d: %w", m.schema.Table, id, db.ErrNotFound)
	}
	if err := m.conflict(v, id); err != nil {
		return fmt.Errorf("update %s %d: %w", m.schema.Table, id, err)
	}
	next := clone(cur)
	m.schema.Copy(next, v, m.schema.Writable)
	m.rows[id] = next
	m.schema.Copy(v, next, m.schema.Columns)
	return nil
}

func (m *MemStore[T]) Patch(ctx context.Context, v *T, cols []string, f crud.Filter) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	id := *m.schema.ID(v)
	cur, ok := m.rows[id]
	if !ok {
		return fmt.Errorf("update %s %d: %w", m.schema.Table, id, db.ErrNotFound)
	}
	match, err := m.matches(cur, f)
	if err != nil {
		return err
	}
	if !match {
		return fmt.Errorf("update %s %d: %w", m.schema.Table, id, db.ErrNotFound)
	}
	next := clone(cur)
	m.schema.Copy(next, v, cols)
	if err := m.conflict(next, id); err != nil {
		return fmt.Errorf("update %s %d: %w", m.schema.Table, id, err)
	}
	m.rows[id] = next
	m.schema.Copy(v, next, m.schema.Columns)
	return nil
}

func (m *MemStore[T]) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	if _, ok := m.rows[id]; !ok {
		return fmt.Errorf("delete %s %d: %w", m.schema.Table, id, db.ErrNotFound)
	}
	delete(m.rows, id)
	return nil
}

func (m *MemStore[T]) DeleteWhere(ctx context.Context, f crud.Filter) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return 0, m.Err
	}
	if len(f) == 0 {
		return 0, fmt.Errorf("%w: refusing to delete from %s without a filter", db.ErrInvalid, m.schema.Table)
	}
	var n int64
	for id, row := range m.rows {
		ok, err := m.matches(row, f)
		if err != nil {
			return 0, err
		}
		if ok {
			delete(m.rows, id)
			n++
		}
	}
	return n, nil
}

func (m *MemStore[T]) Upsert(ctx context.Context, v *T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	if len(m.schema.NaturalKey) == 0 {
		return fmt.Errorf("upsert %s: no natural key", m.schema.Table)
	}

	key := crud.Filter{}
	for _, col := range m.schema.NaturalKey {
		key[col] = m.schema.Value(v, col)
	}
	for id, row := range m.rows {
		ok, err := m.matches(row, key)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		next := clone(row)
		m.schema.Copy(next, v, m.schema.Mutable())
		m.rows[id] = next
		m.schema.Copy(v, next, m.schema.Columns)
		return nil
	}

	*m.schema.ID(v) = m.nextID
	m.nextID++
	m.rows[*m.schema.ID(v)] = clone(v)
	return nil
}
