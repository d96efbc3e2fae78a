package warehouse

import (
	"context"

	"github.com/medsys/hospital/internal/platform/crud"
)

var TypeSchema = &crud.Schema[WarehouseType]{
	Table:   "warehouse_types",
	Columns: []string{"id", "purpose"},
	Fields: func(v *WarehouseType) []any {
		return []any{&v.ID, &v.Purpose}
	},
	Writable:   []string{"purpose"},
	NaturalKey: []string{"purpose"},
}

var MedicalItemSchema = &crud.Schema[MedicalItem]{
	Table:   "medical_items",
	Columns: []string{"id", "title", "medical_name", "unit", "capacity", "amount"},
	Fields: func(v *MedicalItem) []any {
		return []any{&v.ID, &v.Title, &v.MedicalName, &v.Unit, &v.Capacity, &v.Amount}
	},
	Writable: []string{"title", "medical_name", "unit", "capacity", "amount"},
	Filters:  []string{"title", "unit"},
}

var CompositionSchema = &crud.Schema[MedicalComposition]{
	Table:   "medical_compositions",
	Columns: []string{"id", "composite_item_id", "component_item_id", "quantity"},
	Fields: func(v *MedicalComposition) []any {
		return []any{&v.ID, &v.CompositeItemID, &v.ComponentItemID, &v.Quantity}
	},
	Writable: []string{"composite_item_id", "component_item_id", "quantity"},
	Unique:   [][]string{{"composite_item_id", "component_item_id"}},
	Filters:  []string{"composite_item_id", "component_item_id"},
}

var WarehouseSchema = &crud.Schema[Warehouse]{
	Table:   "warehouses",
	Columns: []string{"id", "warehouse_type_id", "hospital_id", "department_id"},
	Fields: func(v *Warehouse) []any {
		return []any{&v.ID, &v.WarehouseTypeID, &v.HospitalID, &v.DepartmentID}
	},
	Writable: []string{"warehouse_type_id", "hospital_id", "department_id"},
	Filters:  []string{"warehouse_type_id", "hospital_id", "department_id"},
}

var ItemSchema = &crud.Schema[Item]{
	Table:   "warehouse_items",
	Columns: []string{"id", "warehouse_id", "item_id", "quantity", "created_at", "updated_at"},
	Fields: func(v *Item) []any {
		return []any{&v.ID, &v.WarehouseID, &v.ItemID, &v.Quantity, &v.CreatedAt, &v.UpdatedAt}
	},
	Writable: []string{"warehouse_id", "item_id", "quantity"},
	Unique:   [][]string{{"warehouse_id", "item_id"}},
	Filters:  []string{"warehouse_id", "item_id"},
	Touch:    true,
}

var TransitionSchema = &crud.Schema[Transition]{
	Table: "warehouse_transitions",
	Columns: []string{
		"id", "source_warehouse_id", "target_warehouse_id", "item_id", "quantity",
		"staff_id", "target_staff_id", "created_at",
	},
	Fields: func(v *Transition) []any {
		return []any{
			&v.ID, &v.SourceWarehouseID, &v.TargetWarehouseID, &v.ItemID, &v.Quantity,
			&v.StaffID, &v.TargetStaffID, &v.CreatedAt,
		}
	},
	Writable: []string{"source_warehouse_id", "target_warehouse_id", "item_id", "quantity", "staff_id", "target_staff_id"},
	Filters:  []string{"source_warehouse_id", "target_warehouse_id", "item_id", "staff_id"},
}

// StockStore is the warehouse item store plus atomic quantity changes.
type StockStore interface {
	crud.Store[Item]
	// Withdraw takes qty of itemID out of a warehouse. It fails with
	// ErrNotFound when the warehouse holds less than qty.
	Withdraw(ctx context.Context, warehouseID, itemID int64, qty float64) (*Item, error)
	// Deposit adds qty of itemID to a warehouse, creating the row if absent.
	Deposit(ctx context.Context, warehouseID, itemID int64, qty float64) (*Item, error)
}

type Stores struct {
	Types        crud.Store[WarehouseType]
	MedicalItems crud.Store[MedicalItem]
	Compositions crud.Store[MedicalComposition]
	Warehouses   crud.Store[Warehouse]
	Items        StockStore
	Transitions  crud.Store[Transition]
}
