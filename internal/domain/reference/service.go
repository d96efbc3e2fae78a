package reference

import (
	"context"

	"github.com/medsys/hospital/internal/domain/staff"
	"github.com/medsys/hospital/internal/platform/crud"
)

type Service struct {
	st              Stores
	specializations crud.Store[staff.Specialization]
}

func NewService(st Stores, specializations crud.Store[staff.Specialization]) *Service {
	return &Service{st: st, specializations: specializations}
}

func (s *Service) Doctors() crud.Store[Doctor]         { return s.st.Doctors }
func (s *Service) Diagnostics() crud.Store[Diagnostic] { return s.st.Diagnostics }
func (s *Service) Commissions() crud.Store[Commission] { return s.st.Commissions }

// UpsertDoctor creates the doctor or updates its expiry, keyed by name.
func (s *Service) UpsertDoctor(ctx context.Context, name string, expiresInDays int) (*Doctor, error) {
	d := &Doctor{Name: name, ExpiresInDays: expiresInDays}
	if err := s.st.Doctors.Upsert(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// UpsertDiagnostic creates the diagnostic or updates its expiry, keyed by name.
func (s *Service) UpsertDiagnostic(ctx context.Context, name string, expiresInDays int) (*Diagnostic, error) {
	d := &Diagnostic{Name: name, ExpiresInDays: expiresInDays}
	if err := s.st.Diagnostics.Upsert(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Service) AddSpecialization(ctx context.Context, commissionID, specializationID int64) (*CommissionSpecialization, error) {
	if _, err := s.st.Commissions.Get(ctx, commissionID); err != nil {
		return nil, err
	}
	if _, err := s.specializations.Get(ctx, specializationID); err != nil {
		return nil, err
	}
	link := &CommissionSpecialization{CommissionID: commissionID, SpecializationID: specializationID}
	if err := s.st.CommissionSpecializations.Create(ctx, link); err != nil {
		return nil, err
	}
	return link, nil
}

func (s *Service) RemoveSpecialization(ctx context.Context, commissionID, specializationID int64) error {
	return crud.Unlink(ctx, s.st.CommissionSpecializations,
		crud.Filter{"commission_id": commissionID, "specialization_id": specializationID})
}

// Specializations lists the specialists a commission consists of.
func (s *Service) Specializations(ctx context.Context, commissionID int64) ([]*staff.Specialization, error) {
	if _, err := s.st.Commissions.Get(ctx, commissionID); err != nil {
		return nil, err
	}
	links, err := crud.All(ctx, s.st.CommissionSpecializations, crud.Filter{"commission_id": commissionID})
	if err != nil {
		return nil, err
	}
	return crud.Resolve(ctx, links, s.specializations, func(l *CommissionSpecialization) int64 { return l.SpecializationID })
}

func (s *Service) AddDiagnostic(ctx context.Context, commissionID, diagnosticID int64) (*CommissionDiagnostic, error) {
	if _, err := s.st.Commissions.Get(ctx, commissionID); err != nil {
		return nil, err
	}
	if _, err := s.st.Diagnostics.Get(ctx, diagnosticID); err != nil {
		return nil, err
	}
	link := &CommissionDiagnostic{CommissionID: commissionID, DiagnosticID: diagnosticID}
	if err := s.st.CommissionDiagnostics.Create(ctx, link); err != nil {
		return nil, err
	}
	return link, nil
}

func (s *Service) RemoveDiagnostic(ctx context.Context, commissionID, diagnosticID int64) error {
	return crud.Unlink(ctx, s.st.CommissionDiagnostics,
		crud.Filter{"commission_id": commissionID, "diagnostic_id": diagnosticID})
}

// CommissionDiagnostics lists the examinations a commission requires.
func (s *Service) CommissionDiagnostics(ctx context.Context, commissionID int64) ([]*Diagnostic, error) {
	if _, err := s.st.Commissions.Get(ctx, commissionID); err != nil {
		return nil, err
	}
	links, err := crud.All(ctx, s.st.CommissionDiagnostics, crud.Filter{"commission_id": commissionID})
	if err != nil {
		return nil, err
	}
	return crud.Resolve(ctx, links, s.st.Diagnostics, func(l *CommissionDiagnostic) int64 { return l.DiagnosticID })
}
