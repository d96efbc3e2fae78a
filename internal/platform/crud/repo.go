package crud

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/medsys/hospital/internal/platform/db"
)

// Store is the persistence interface every entity table satisfies.
type Store[T any] interface {
	Get(ctx context.Context, id int64) (*T, error)
	List(ctx context.Context, f Filter, limit, offset int) ([]*T, int, error)
	Create(ctx context.Context, v *T) error
	Update(ctx context.Context, v *T) error
	// Patch writes only cols of row v.ID and only while that row matches f.
	// It fails with ErrNotFound when no row qualifies.
	Patch(ctx context.Context, v *T, cols []string, f Filter) error
	Delete(ctx context.Context, id int64) error
	DeleteWhere(ctx context.Context, f Filter) (int64, error)
	Upsert(ctx context.Context, v *T) error
}

// Repo is the PostgreSQL Store. Statements run on the transaction or request
// connection carried by ctx, falling back to the pool.
type Repo[T any] struct {
	pool   *pgxpool.Pool
	schema *Schema[T]
}

func NewRepo[T any](pool *pgxpool.Pool, schema *Schema[T]) *Repo[T] {
	return &Repo[T]{pool: pool, schema: schema}
}

func (r *Repo[T]) conn(ctx context.Context) db.Querier {
	return db.Conn(ctx, r.pool)
}

func (r *Repo[T]) Get(ctx context.Context, id int64) (*T, error) {
	var v T
	err := r.conn(ctx).QueryRow(ctx, selectSQL(r.schema)+` WHERE id = $1`, id).Scan(r.schema.Fields(&v)...)
	if err != nil {
		return nil, fmt.Errorf("get %s %d: %w", r.schema.Table, id, db.MapError(err))
	}
	return &v, nil
}

func (r *Repo[T]) List(ctx context.Context, f Filter, limit, offset int) ([]*T, int, error) {
	query, count, args, err := listSQL(r.schema, f)
	if err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, count, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count %s: %w", r.schema.Table, db.MapError(err))
	}

	rows, err := r.conn(ctx).Query(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list %s: %w", r.schema.Table, db.MapError(err))
	}
	defer rows.Close()

	items := []*T{}
	for rows.Next() {
		var v T
		if err := rows.Scan(r.schema.Fields(&v)...); err != nil {
			return nil, 0, fmt.Errorf("scan %s: %w", r.schema.Table, err)
		}
		items = append(items, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate %s: %w", r.schema.Table, db.MapError(err))
	}
	return items, total, nil
}

func (r *Repo[T]) Create(ctx context.Context, v *T) error {
	err := r.conn(ctx).QueryRow(ctx, insertSQL(r.schema), r.schema.Values(v, r.schema.Writable)...).
		Scan(r.schema.Fields(v)...)
	if err != nil {
		return fmt.Errorf("create %s: %w", r.schema.Table, db.MapError(err))
	}
	return nil
}

func (r *Repo[T]) Update(ctx context.Context, v *T) error {
	args := append(r.schema.Values(v, r.schema.Writable), *r.schema.ID(v))
	if err := r.conn(ctx).QueryRow(ctx, updateSQL(r.schema), args...).Scan(r.schema.Fields(v)...); err != nil {
		return fmt.Errorf("update %s %d: %w", r.schema.Table, *r.schema.ID(v), db.MapError(err))
	}
	return nil
}

func (r *Repo[T]) Patch(ctx context.Context, v *T, cols []string, f Filter) error {
	query, where, err := patchSQL(r.schema, cols, f)
	if err != nil {
		return err
	}
	args := append(r.schema.Values(v, cols), *r.schema.ID(v))
	args = append(args, where...)
	if err := r.conn(ctx).QueryRow(ctx, query, args...).Scan(r.schema.Fields(v)...); err != nil {
		return fmt.Errorf("update %s %d: %w", r.schema.Table, *r.schema.ID(v), db.MapError(err))
	}
	return nil
}

func (r *Repo[T]) Delete(ctx context.Context, id int64) error {
	tag, err := r.conn(ctx).Exec(ctx, deleteSQL(r.schema), id)
	if err != nil {
		return fmt.Errorf("delete %s %d: %w", r.schema.Table, id, db.MapError(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete %s %d: %w", r.schema.Table, id, db.ErrNotFound)
	}
	return nil
}

func (r *Repo[T]) DeleteWhere(ctx context.Context, f Filter) (int64, error) {
	query, args, err := deleteWhereSQL(r.schema, f)
	if err != nil {
		return 0, err
	}
	tag, err := r.conn(ctx).Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete from %s: %w", r.schema.Table, db.MapError(err))
	}
	return tag.RowsAffected(), nil
}

func (r *Repo[T]) Upsert(ctx context.Context, v *T) error {
	if len(r.schema.NaturalKey) == 0 {
		return fmt.Errorf("upsert %s: no natural key", r.schema.Table)
	}
	err := r.conn(ctx).QueryRow(ctx, upsertSQL(r.schema), r.schema.Values(v, r.schema.Writable)...).
		Scan(r.schema.Fields(v)...)
	if err != nil {
		return fmt.Errorf("upsert %s: %w", r.schema.Table, db.MapError(err))
	}
	return nil
}
