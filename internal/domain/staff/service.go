package staff

import (
	"context"
	"fmt"

	"github.com/medsys/hospital/internal/domain/facility"
	"github.com/medsys/hospital/internal/platform/crud"
	"github.com/medsys/hospital/internal/platform/db"
)

type Service struct {
	st          Stores
	departments crud.Store[facility.Department]
	offices     crud.Store[facility.Office]
}

func NewService(st Stores, fac *facility.Service) *Service {
	return &Service{st: st, departments: fac.Departments(), offices: fac.Offices()}
}

// Specializations exposes the specialization store to the commission catalogue.
func (s *Service) Specializations() crud.Store[Specialization] {
	return s.st.Specializations
}

// Members exposes the staff store to packages that reference employees.
func (s *Service) Members() crud.Store[Staff] {
	return s.st.Staff
}

func (s *Service) checkStaff(ctx context.Context, m *Staff) error {
	if err := crud.RequireRef(ctx, s.st.Specializations, "specialization_id", m.SpecializationID); err != nil {
		return err
	}
	return crud.RequireRef(ctx, s.departments, "department_id", m.DepartmentID)
}

// DepartmentOf returns the department an employee is assigned to.
func (s *Service) DepartmentOf(ctx context.Context, staffID int64) (*facility.Department, error) {
	m, err := s.st.Staff.Get(ctx, staffID)
	if err != nil {
		return nil, err
	}
	if m.DepartmentID == nil {
		return nil, fmt.Errorf("staff %d has no department: %w", staffID, db.ErrNotFound)
	}
	return s.departments.Get(ctx, *m.DepartmentID)
}

// AssignOffice links an employee to an office. Linking the same pair twice
// is a Conflict.
func (s *Service) AssignOffice(ctx context.Context, officeID, staffID int64) (*OfficeStaff, error) {
	if _, err := s.offices.Get(ctx, officeID); err != nil {
		return nil, err
	}
	if _, err := s.st.Staff.Get(ctx, staffID); err != nil {
		return nil, err
	}
	link := &OfficeStaff{OfficeID: officeID, StaffID: staffID}
	if err := s.st.OfficeStaff.Create(ctx, link); err != nil {
		return nil, err
	}
	return link, nil
}

func (s *Service) RemoveFromOffice(ctx context.Context, officeID, staffID int64) error {
	return crud.Unlink(ctx, s.st.OfficeStaff, crud.Filter{"office_id": officeID, "staff_id": staffID})
}

// OfficeStaff lists the employees working in an office.
func (s *Service) OfficeStaff(ctx context.Context, officeID int64) ([]*Staff, error) {
	if _, err := s.offices.Get(ctx, officeID); err != nil {
		return nil, err
	}
	links, err := crud.All(ctx, s.st.OfficeStaff, crud.Filter{"office_id": officeID})
	if err != nil {
		return nil, err
	}
	return crud.Resolve(ctx, links, s.st.Staff, func(l *OfficeStaff) int64 { return l.StaffID })
}

// StaffOffices lists the offices an employee works in.
func (s *Service) StaffOffices(ctx context.Context, staffID int64) ([]*facility.Office, error) {
	if _, err := s.st.Staff.Get(ctx, staffID); err != nil {
		return nil, err
	}
	links, err := crud.All(ctx, s.st.OfficeStaff, crud.Filter{"staff_id": staffID})
	if err != nil {
		return nil, err
	}
	return crud.Resolve(ctx, links, s.offices, func(l *OfficeStaff) int64 { return l.OfficeID })
}
