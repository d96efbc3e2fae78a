package warehouse

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/medsys/hospital/internal/platform/crud"
	"github.com/medsys/hospital/internal/platform/db"
)

func NewStores(pool *pgxpool.Pool) Stores {
	return Stores{
		Types:        crud.NewRepo(pool, TypeSchema),
		MedicalItems: crud.NewRepo(pool, MedicalItemSchema),
		Compositions: crud.NewRepo(pool, CompositionSchema),
		Warehouses:   crud.NewRepo(pool, WarehouseSchema),
		Items:        &stockRepo{Repo: crud.NewRepo(pool, ItemSchema), pool: pool},
		Transitions:  crud.NewRepo(pool, TransitionSchema),
	}
}

type stockRepo struct {
	*crud.Repo[Item]
	pool *pgxpool.Pool
}

var itemColumns = strings.Join(ItemSchema.Columns, ", ")

func (r *stockRepo) Withdraw(ctx context.Context, warehouseID, itemID int64, qty float64) (*Item, error) {
	var it Item
	err := db.Conn(ctx, r.pool).QueryRow(ctx,
		`UPDATE warehouse_items SET quantity = quantity - $3, updated_at = NOW()
		 WHERE warehouse_id = $1 AND item_id = $2 AND quantity >= $3
		 RETURNING `+itemColumns,
		warehouseID, itemID, qty).Scan(ItemSchema.Fields(&it)...)
	if err != nil {
		return nil, fmt.Errorf("withdraw item %d from warehouse %d: %w", itemID, warehouseID, db.MapError(err))
	}
	return &it, nil
}

func (r *stockRepo) Deposit(ctx context.Context, warehouseID, itemID int64, qty float64) (*Item, error) {
	var it Item
	err := db.Conn(ctx, r.pool).QueryRow(ctx,
		`INSERT INTO warehouse_items (warehouse_id, item_id, quantity) VALUES ($1, $2, $3)
		 ON CONFLICT (warehouse_id, item_id)
		 DO UPDATE SET quantity = warehouse_items.quantity + EXCLUDED.quantity, updated_at = NOW()
		 RETURNING `+itemColumns,
		warehouseID, itemID, qty).Scan(ItemSchema.Fields(&it)...)
	if err != nil {
		return nil, fmt.Errorf("deposit item %d to warehouse %d: %w", itemID, warehouseID, db.MapError(err))
	}
	return &it, nil
}
