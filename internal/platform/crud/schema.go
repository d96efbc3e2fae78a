// Package crud provides the generic store and HTTP handler shared by every
// entity table: get, paged list, create, update, delete and natural-key
// upsert over a single PostgreSQL table.
package crud

import (
	"fmt"
	"reflect"
)

// Filter restricts List and DeleteWhere to rows whose columns equal the given
// values. A nil value matches NULL.
type Filter map[string]any

// Schema describes how an entity type maps onto its table.
type Schema[T any] struct {
	Table string
	// Columns lists every selected column. Columns[0] must be "id" and map
	// to an int64 field.
	Columns []string
	// Fields returns pointers to the fields of v in Columns order.
	Fields func(v *T) []any
	// Writable are the columns stored on create and update.
	Writable []string
	// Managed are writable columns only services change. The generic handler
	// zeroes them on create, leaves them untouched on update and upsert
	// never overwrites them.
	Managed []string
	// NaturalKey is the conflict target for Upsert.
	NaturalKey []string
	// Unique lists column sets with a uniqueness constraint (link pairs,
	// natural keys). Only the in-memory store consults it.
	Unique [][]string
	// Filters are the columns List accepts as query filters.
	Filters []string
	// Touch sets updated_at = NOW() on update.
	Touch bool
}

// ID returns a pointer to the id field of v.
func (s *Schema[T]) ID(v *T) *int64 {
	return s.Fields(v)[0].(*int64)
}

// Mutable returns the writable columns outside the natural key and the
// managed set.
func (s *Schema[T]) Mutable() []string {
	return s.without(s.NaturalKey, s.Managed)
}

// ClientWritable returns the writable columns outside the managed set.
func (s *Schema[T]) ClientWritable() []string {
	return s.without(s.Managed)
}

func (s *Schema[T]) without(sets ...[]string) []string {
	skip := map[string]bool{}
	for _, set := range sets {
		for _, c := range set {
			skip[c] = true
		}
	}
	out := make([]string, 0, len(s.Writable))
	for _, c := range s.Writable {
		if !skip[c] {
			out = append(out, c)
		}
	}
	return out
}

func (s *Schema[T]) index(col string) int {
	for i, c := range s.Columns {
		if c == col {
			return i
		}
	}
	return -1
}

// HasColumn reports whether col is one of the selected columns.
func (s *Schema[T]) HasColumn(col string) bool {
	return s.index(col) >= 0
}

// Values returns the current values of cols on v, dereferencing the field
// pointers produced by Fields.
func (s *Schema[T]) Values(v *T, cols []string) []any {
	fields := s.Fields(v)
	out := make([]any, 0, len(cols))
	for _, c := range cols {
		i := s.index(c)
		if i < 0 {
			panic(fmt.Sprintf("crud: %s has no column %q", s.Table, c))
		}
		out = append(out, reflect.ValueOf(fields[i]).Elem().Interface())
	}
	return out
}

// Value returns the value of a single column on v.
func (s *Schema[T]) Value(v *T, col string) any {
	return s.Values(v, []string{col})[0]
}

// Copy assigns cols from src onto dst.
func (s *Schema[T]) Copy(dst, src *T, cols []string) {
	df, sf := s.Fields(dst), s.Fields(src)
	for _, c := range cols {
		i := s.index(c)
		if i < 0 {
			continue
		}
		reflect.ValueOf(df[i]).Elem().Set(reflect.ValueOf(sf[i]).Elem())
	}
}
