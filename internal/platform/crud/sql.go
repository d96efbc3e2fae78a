package crud

import (
	"fmt"
	"sort"
	"strings"

	"github.com/medsys/hospital/internal/platform/db"
)

func selectSQL[T any](s *Schema[T]) string {
	return `SELECT ` + strings.Join(s.Columns, ", ") + ` FROM ` + s.Table
}

func returning[T any](s *Schema[T]) string {
	return ` RETURNING ` + strings.Join(s.Columns, ", ")
}

func placeholders(from, n int) string {
	ph := make([]string, n)
	for i := range ph {
		ph[i] = fmt.Sprintf("$%d", from+i)
	}
	return strings.Join(ph, ", ")
}

// whereSQL renders f as a conjunction starting at placeholder $idx. Keys are
// emitted in sorted order so the statement text is stable.
func whereSQL[T any](s *Schema[T], f Filter, idx int) (string, []any, error) {
	if len(f) == 0 {
		return "", nil, nil
	}
	keys := make([]string, 0, len(f))
	for k := range f {
		if !s.HasColumn(k) {
			return "", nil, fmt.Errorf("%w: unknown filter column %q", db.ErrInvalid, k)
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var (
		clauses []string
		args    []any
	)
	for _, k := range keys {
		if f[k] == nil {
			clauses = append(clauses, k+" IS NULL")
			continue
		}
		clauses = append(clauses, fmt.Sprintf("%s = $%d", k, idx))
		args = append(args, f[k])
		idx++
	}
	return ` WHERE ` + strings.Join(clauses, " AND "), args, nil
}

// listSQL returns the page query, the count query and the shared arguments.
// The page query takes two more arguments: limit and offset.
func listSQL[T any](s *Schema[T], f Filter) (query, count string, args []any, err error) {
	where, args, err := whereSQL(s, f, 1)
	if err != nil {
		return "", "", nil, err
	}
	n := len(args)
	query = selectSQL(s) + where + fmt.Sprintf(` ORDER BY id LIMIT $%d OFFSET $%d`, n+1, n+2)
	count = `SELECT COUNT(*) FROM ` + s.Table + where
	return query, count, args, nil
}

func insertSQL[T any](s *Schema[T]) string {
	return `INSERT INTO ` + s.Table + ` (` + strings.Join(s.Writable, ", ") + `) VALUES (` +
		placeholders(1, len(s.Writable)) + `)` + returning(s)
}

func updateSQL[T any](s *Schema[T]) string {
	sets := make([]string, 0, len(s.Writable)+1)
	for i, c := range s.Writable {
		sets = append(sets, fmt.Sprintf("%s = $%d", c, i+1))
	}
	if s.Touch {
		sets = append(sets, "updated_at = NOW()")
	}
	return `UPDATE ` + s.Table + ` SET ` + strings.Join(sets, ", ") +
		fmt.Sprintf(` WHERE id = $%d`, len(s.Writable)+1) + returning(s)
}

// patchSQL updates cols of the row with the given id, placed after the column
// values, and only while the row still matches f. The returned arguments are
// those of f.
func patchSQL[T any](s *Schema[T], cols []string, f Filter) (string, []any, error) {
	sets := make([]string, 0, len(cols)+1)
	for i, c := range cols {
		sets = append(sets, fmt.Sprintf("%s = $%d", c, i+1))
	}
	if s.Touch {
		sets = append(sets, "updated_at = NOW()")
	}
	where, args, err := whereSQL(s, f, len(cols)+2)
	if err != nil {
		return "", nil, err
	}
	query := `UPDATE ` + s.Table + ` SET ` + strings.Join(sets, ", ") + fmt.Sprintf(` WHERE id = $%d`, len(cols)+1)
	if where != "" {
		query += ` AND ` + strings.TrimPrefix(where, ` WHERE `)
	}
	return query + returning(s), args, nil
}

// upsertSQL inserts the writable columns and on a natural-key collision
// overwrites the mutable ones. The key column is re-assigned when nothing is
// mutable so RETURNING still yields the existing row.
func upsertSQL[T any](s *Schema[T]) string {
	mutable := s.Mutable()
	if len(mutable) == 0 {
		mutable = s.NaturalKey[:1]
	}
	sets := make([]string, 0, len(mutable)+1)
	for _, c := range mutable {
		sets = append(sets, c+" = EXCLUDED."+c)
	}
	if s.Touch {
		sets = append(sets, "updated_at = NOW()")
	}
	return `INSERT INTO ` + s.Table + ` (` + strings.Join(s.Writable, ", ") + `) VALUES (` +
		placeholders(1, len(s.Writable)) + `) ON CONFLICT (` + strings.Join(s.NaturalKey, ", ") +
		`) DO UPDATE SET ` + strings.Join(sets, ", ") + returning(s)
}

func deleteSQL[T any](s *Schema[T]) string {
	return `DELETE FROM ` + s.Table + ` WHERE id = $1`
}

func deleteWhereSQL[T any](s *Schema[T], f Filter) (string, []any, error) {
	if len(f) == 0 {
		return "", nil, fmt.Errorf("%w: refusing to delete from %s without a filter", db.ErrInvalid, s.Table)
	}
	where, args, err := whereSQL(s, f, 1)
	if err != nil {
		return "", nil, err
	}
	return `DELETE FROM ` + s.Table + where, args, nil
}
