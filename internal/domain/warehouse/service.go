package warehouse

import (
	"context"
	"errors"
	"fmt"

	"github.com/medsys/hospital/internal/domain/facility"
	"github.com/medsys/hospital/internal/domain/staff"
	"github.com/medsys/hospital/internal/platform/apierr"
	"github.com/medsys/hospital/internal/platform/crud"
	"github.com/medsys/hospital/internal/platform/db"
)

type Service struct {
	st          Stores
	tx          db.TxRunner
	hospitals   crud.Store[facility.Hospital]
	departments crud.Store[facility.Department]
	staff       crud.Store[staff.Staff]
}

func NewService(st Stores, tx db.TxRunner, fac *facility.Service, members crud.Store[staff.Staff]) *Service {
	return &Service{
		st:          st,
		tx:          tx,
		hospitals:   fac.Hospitals(),
		departments: fac.Departments(),
		staff:       members,
	}
}

// MedicalItems exposes the item catalogue to prescriptions.
func (s *Service) MedicalItems() crud.Store[MedicalItem] {
	return s.st.MedicalItems
}

func (s *Service) checkComposition(ctx context.Context, m *MedicalComposition) error {
	if err := crud.RequireRef(ctx, s.st.MedicalItems, "composite_item_id", &m.CompositeItemID); err != nil {
		return err
	}
	return crud.RequireRef(ctx, s.st.MedicalItems, "component_item_id", &m.ComponentItemID)
}

func (s *Service) checkWarehouse(ctx context.Context, w *Warehouse) error {
	if err := crud.RequireRef(ctx, s.st.Types, "warehouse_type_id", &w.WarehouseTypeID); err != nil {
		return err
	}
	if err := crud.RequireRef(ctx, s.hospitals, "hospital_id", &w.HospitalID); err != nil {
		return err
	}
	if w.DepartmentID == nil {
		return nil
	}
	d, err := s.departments.Get(ctx, *w.DepartmentID)
	if errors.Is(err, db.ErrNotFound) {
		return apierr.Invalid("department_id", "references a missing row %d", *w.DepartmentID)
	}
	if err != nil {
		return err
	}
	if d.HospitalID != w.HospitalID {
		return apierr.Invalid("department_id", "belongs to hospital %d, not %d", d.HospitalID, w.HospitalID)
	}
	return nil
}

func (s *Service) checkItem(ctx context.Context, it *Item) error {
	if err := crud.RequireRef(ctx, s.st.Warehouses, "warehouse_id", &it.WarehouseID); err != nil {
		return err
	}
	return crud.RequireRef(ctx, s.st.MedicalItems, "item_id", &it.ItemID)
}

// HospitalWarehouses lists the warehouses of a hospital.
func (s *Service) HospitalWarehouses(ctx context.Context, hospitalID int64) ([]*Warehouse, error) {
	if _, err := s.hospitals.Get(ctx, hospitalID); err != nil {
		return nil, err
	}
	return crud.All(ctx, s.st.Warehouses, crud.Filter{"hospital_id": hospitalID})
}

// Transfer moves stock between two warehouses in one transaction: the
// source is debited, the target credited and the transition recorded.
func (s *Service) Transfer(ctx context.Context, t *Transition) error {
	if err := t.Check(); err != nil {
		return err
	}
	if err := crud.RequireRef(ctx, s.st.Warehouses, "source_warehouse_id", &t.SourceWarehouseID); err != nil {
		return err
	}
	if err := crud.RequireRef(ctx, s.st.Warehouses, "target_warehouse_id", &t.TargetWarehouseID); err != nil {
		return err
	}
	if err := crud.RequireRef(ctx, s.st.MedicalItems, "item_id", &t.ItemID); err != nil {
		return err
	}
	if err := crud.RequireRef(ctx, s.staff, "staff_id", t.StaffID); err != nil {
		return err
	}
	if err := crud.RequireRef(ctx, s.staff, "target_staff_id", t.TargetStaffID); err != nil {
		return err
	}

	return s.tx.InTx(ctx, func(ctx context.Context) error {
		if _, err := s.st.Items.Withdraw(ctx, t.SourceWarehouseID, t.ItemID, t.Quantity); err != nil {
			if errors.Is(err, db.ErrNotFound) {
				return apierr.Invalid("quantity", "warehouse %d holds less than %g of item %d",
					t.SourceWarehouseID, t.Quantity, t.ItemID)
			}
			return err
		}
		if _, err := s.st.Items.Deposit(ctx, t.TargetWarehouseID, t.ItemID, t.Quantity); err != nil {
			return err
		}
		if err := s.st.Transitions.Create(ctx, t); err != nil {
			return fmt.Errorf("record transition: %w", err)
		}
		return nil
	})
}
