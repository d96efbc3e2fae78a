package warehouse

import (
	"time"

	"github.com/medsys/hospital/internal/platform/apierr"
)

type WarehouseType struct {
	ID      int64  `db:"id" json:"id"`
	Purpose string `db:"purpose" json:"purpose" validate:"required,max=255"`
}

// MedicalItem is a stock keeping unit: a drug, consumable or instrument.
// Capacity is the quantity of Unit in one package of Amount pieces.
type MedicalItem struct {
	ID          int64   `db:"id" json:"id"`
	Title       string  `db:"title" json:"title" validate:"required,max=255"`
	MedicalName *string `db:"medical_name" json:"medical_name,omitempty" validate:"omitempty,max=255"`
	Unit        string  `db:"unit" json:"unit" validate:"required,max=50"`
	Capacity    float64 `db:"capacity" json:"capacity" validate:"gte=0"`
	Amount      int     `db:"amount" json:"amount" validate:"gte=0"`
}

// MedicalComposition says a composite item contains Quantity of a component.
type MedicalComposition struct {
	ID              int64   `db:"id" json:"id"`
	CompositeItemID int64   `db:"composite_item_id" json:"composite_item_id" validate:"required,gt=0"`
	ComponentItemID int64   `db:"component_item_id" json:"component_item_id" validate:"required,gt=0"`
	Quantity        float64 `db:"quantity" json:"quantity" validate:"gt=0"`
}

func (m *MedicalComposition) Check() error {
	if m.CompositeItemID == m.ComponentItemID {
		return apierr.Invalid("component_item_id", "must differ from composite_item_id")
	}
	return nil
}

// Warehouse belongs to a hospital. One without a department is the hospital's
// central warehouse.
type Warehouse struct {
	ID              int64  `db:"id" json:"id"`
	WarehouseTypeID int64  `db:"warehouse_type_id" json:"warehouse_type_id" validate:"required,gt=0"`
	HospitalID      int64  `db:"hospital_id" json:"hospital_id" validate:"required,gt=0"`
	DepartmentID    *int64 `db:"department_id" json:"department_id,omitempty"`
}

func (w *Warehouse) Central() bool { return w.DepartmentID == nil }

// Item is the stock of one medical item in one warehouse.
type Item struct {
	ID          int64     `db:"id" json:"id"`
	WarehouseID int64     `db:"warehouse_id" json:"warehouse_id" validate:"required,gt=0"`
	ItemID      int64     `db:"item_id" json:"item_id" validate:"required,gt=0"`
	Quantity    float64   `db:"quantity" json:"quantity" validate:"gte=0"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// Transition is a movement of stock between two warehouses.
type Transition struct {
	ID                int64     `db:"id" json:"id"`
	SourceWarehouseID int64     `db:"source_warehouse_id" json:"source_warehouse_id" validate:"required,gt=0"`
	TargetWarehouseID int64     `db:"target_warehouse_id" json:"target_warehouse_id" validate:"required,gt=0"`
	ItemID            int64     `db:"item_id" json:"item_id" validate:"required,gt=0"`
	Quantity          float64   `db:"quantity" json:"quantity" validate:"gt=0"`
	StaffID           *int64    `db:"staff_id" json:"staff_id,omitempty"`
	TargetStaffID     *int64    `db:"target_staff_id" json:"target_staff_id,omitempty"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
}

func (t *Transition) Check() error {
	if t.SourceWarehouseID == t.TargetWarehouseID {
		return apierr.Invalid("target_warehouse_id", "must differ from source_warehouse_id")
	}
	return nil
}
