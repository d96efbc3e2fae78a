package facility

import (
	"context"
	"errors"
	"fmt"

	"github.com/medsys/hospital/internal/platform/crud"
	"github.com/medsys/hospital/internal/platform/db"
)

type Service struct {
	st Stores
}

func NewService(st Stores) *Service {
	return &Service{st: st}
}

// Departments exposes the department store to packages that place staff.
func (s *Service) Departments() crud.Store[Department] {
	return s.st.Departments
}

// Offices exposes the office store to packages that link staff to offices.
func (s *Service) Offices() crud.Store[Office] {
	return s.st.Offices
}

// Hospitals exposes the hospital store to packages that own per-hospital rows.
func (s *Service) Hospitals() crud.Store[Hospital] {
	return s.st.Hospitals
}

func (s *Service) checkDepartment(ctx context.Context, d *Department) error {
	if err := crud.RequireRef(ctx, s.st.Hospitals, "hospital_id", &d.HospitalID); err != nil {
		return err
	}
	return crud.RequireRef(ctx, s.st.DepartmentTypes, "department_type_id", d.DepartmentTypeID)
}

func (s *Service) checkOffice(ctx context.Context, o *Office) error {
	if err := crud.RequireRef(ctx, s.st.Departments, "department_id", &o.DepartmentID); err != nil {
		return err
	}
	return crud.RequireRef(ctx, s.st.OfficeTypes, "office_type_id", o.OfficeTypeID)
}

func (s *Service) checkWard(ctx context.Context, w *Ward) error {
	if err := crud.RequireRef(ctx, s.st.Departments, "department_id", &w.DepartmentID); err != nil {
		return err
	}
	return crud.RequireRef(ctx, s.st.WardTypes, "ward_type_id", w.WardTypeID)
}

func (s *Service) checkWardPlace(ctx context.Context, p *WardPlace) error {
	return crud.RequireRef(ctx, s.st.Wards, "ward_id", &p.WardID)
}

// ensureNotPlaced fails with Conflict when the patient already occupies a
// place other than exceptID.
func (s *Service) ensureNotPlaced(ctx context.Context, patientID, exceptID int64) error {
	places, _, err := s.st.WardPlaces.List(ctx, crud.Filter{"patient_id": patientID}, 2, 0)
	if err != nil {
		return err
	}
	for _, p := range places {
		if p.ID != exceptID {
			return fmt.Errorf("patient %d already occupies ward place %d: %w", patientID, p.ID, db.ErrConflict)
		}
	}
	return nil
}

// AssignPlace puts a patient into a free ward place.
func (s *Service) AssignPlace(ctx context.Context, placeID, patientID int64) (*WardPlace, error) {
	place, err := s.st.WardPlaces.Get(ctx, placeID)
	if err != nil {
		return nil, err
	}
	if place.PatientID != nil {
		if *place.PatientID == patientID {
			return place, nil
		}
		return nil, fmt.Errorf("ward place %d is occupied by patient %d: %w", placeID, *place.PatientID, db.ErrConflict)
	}
	if err := s.ensureNotPlaced(ctx, patientID, placeID); err != nil {
		return nil, err
	}
	place.PatientID = &patientID
	err = s.st.WardPlaces.Patch(ctx, place, []string{"patient_id"}, crud.Filter{"patient_id": nil})
	if errors.Is(err, db.ErrNotFound) {
		return nil, fmt.Errorf("ward place %d was taken concurrently: %w", placeID, db.ErrConflict)
	}
	if err != nil {
		return nil, err
	}
	return place, nil
}

// ReleasePlace frees a ward place. Releasing a free place is a no-op.
func (s *Service) ReleasePlace(ctx context.Context, placeID int64) (*WardPlace, error) {
	place, err := s.st.WardPlaces.Get(ctx, placeID)
	if err != nil {
		return nil, err
	}
	if place.PatientID == nil {
		return place, nil
	}
	place.PatientID = nil
	if err := s.st.WardPlaces.Patch(ctx, place, []string{"patient_id"}, nil); err != nil {
		return nil, err
	}
	return place, nil
}

// FreePlaces lists the unoccupied places of a ward.
func (s *Service) FreePlaces(ctx context.Context, wardID int64) ([]*WardPlace, error) {
	if _, err := s.st.Wards.Get(ctx, wardID); err != nil {
		return nil, err
	}
	return crud.All(ctx, s.st.WardPlaces, crud.Filter{"ward_id": wardID, "patient_id": nil})
}
