package patient

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/medsys/hospital/internal/domain/reference"
	"github.com/medsys/hospital/internal/domain/staff"
	"github.com/medsys/hospital/internal/platform/crud"
	"github.com/medsys/hospital/internal/platform/db"
	"github.com/medsys/hospital/pkg/isodate"
)

type Service struct {
	st          Stores
	doctors     crud.Store[reference.Doctor]
	diagnostics crud.Store[reference.Diagnostic]
	commissions crud.Store[reference.Commission]
	staff       crud.Store[staff.Staff]
	tx          db.TxRunner

	today func() isodate.Date
}

func NewService(st Stores, tx db.TxRunner, ref *reference.Service, members crud.Store[staff.Staff]) *Service {
	return &Service{
		st:          st,
		tx:          tx,
		doctors:     ref.Doctors(),
		diagnostics: ref.Diagnostics(),
		commissions: ref.Commissions(),
		staff:       members,
		today:       isodate.Today,
	}
}

// Patients exposes the patient store to packages that reference patients.
func (s *Service) Patients() crud.Store[Patient] {
	return s.st.Patients
}

// CreatePatient registers a patient. A patient without documents gets one
// generated UUID as both first and last name. A missing birth date is today.
func (s *Service) CreatePatient(ctx context.Context, p *Patient) error {
	if p.WithoutDocuments {
		placeholder := uuid.NewString()
		p.FirstName, p.LastName = placeholder, placeholder
	}
	if p.BirthDate.IsZero() {
		p.BirthDate = s.today()
	}
	if err := p.Check(); err != nil {
		return err
	}
	if err := crud.RequireRef(ctx, s.staff, "therapist_id", p.TherapistID); err != nil {
		return err
	}
	return s.st.Patients.Create(ctx, p)
}

// UpdatePatient replaces the writable fields of p.ID. Names and birth date
// left empty keep their stored values when the patient has no documents.
func (s *Service) UpdatePatient(ctx context.Context, p *Patient) error {
	cur, err := s.st.Patients.Get(ctx, p.ID)
	if err != nil {
		return err
	}
	if p.WithoutDocuments && p.FirstName == "" && p.LastName == "" {
		p.FirstName, p.LastName = cur.FirstName, cur.LastName
	}
	if p.BirthDate.IsZero() {
		p.BirthDate = cur.BirthDate
	}
	if err := p.Check(); err != nil {
		return err
	}
	if err := crud.RequireRef(ctx, s.staff, "therapist_id", p.TherapistID); err != nil {
		return err
	}
	return s.st.Patients.Update(ctx, p)
}

// Detail assembles the patient card. When expired is set, only visits whose
// expiry state matches are included.
func (s *Service) Detail(ctx context.Context, id int64, expired *bool) (*Detail, error) {
	p, err := s.st.Patients.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	doctors, err := s.doctorVisits(ctx, id, expired)
	if err != nil {
		return nil, err
	}
	diagnostics, err := s.diagnosticVisits(ctx, id, expired)
	if err != nil {
		return nil, err
	}
	commissions, err := s.patientCommissions(ctx, id)
	if err != nil {
		return nil, err
	}
	return &Detail{Patient: p, Doctors: doctors, Diagnostics: diagnostics, Commissions: commissions}, nil
}

func (s *Service) DoctorVisits(ctx context.Context, patientID int64, expired *bool) ([]Visit, error) {
	if _, err := s.st.Patients.Get(ctx, patientID); err != nil {
		return nil, err
	}
	return s.doctorVisits(ctx, patientID, expired)
}

func (s *Service) DiagnosticVisits(ctx context.Context, patientID int64, expired *bool) ([]Visit, error) {
	if _, err := s.st.Patients.Get(ctx, patientID); err != nil {
		return nil, err
	}
	return s.diagnosticVisits(ctx, patientID, expired)
}

func (s *Service) Commissions(ctx context.Context, patientID int64) ([]*reference.Commission, error) {
	if _, err := s.st.Patients.Get(ctx, patientID); err != nil {
		return nil, err
	}
	return s.patientCommissions(ctx, patientID)
}

func (s *Service) doctorVisits(ctx context.Context, patientID int64, expired *bool) ([]Visit, error) {
	links, err := crud.All(ctx, s.st.Doctors, crud.Filter{"patient_id": patientID})
	if err != nil {
		return nil, err
	}
	today := s.today()
	visits := make([]Visit, 0, len(links))
	for _, l := range links {
		d, err := s.doctors.Get(ctx, l.DoctorID)
		if err != nil {
			return nil, err
		}
		visits = append(visits, newVisit(d.ID, d.Name, l.LastAt, d.ExpiresInDays, today))
	}
	return filterVisits(visits, expired), nil
}

func (s *Service) diagnosticVisits(ctx context.Context, patientID int64, expired *bool) ([]Visit, error) {
	links, err := crud.All(ctx, s.st.Diagnostics, crud.Filter{"patient_id": patientID})
	if err != nil {
		return nil, err
	}
	today := s.today()
	visits := make([]Visit, 0, len(links))
	for _, l := range links {
		d, err := s.diagnostics.Get(ctx, l.DiagnosticID)
		if err != nil {
			return nil, err
		}
		visits = append(visits, newVisit(d.ID, d.Name, l.LastAt, d.ExpiresInDays, today))
	}
	return filterVisits(visits, expired), nil
}

func (s *Service) patientCommissions(ctx context.Context, patientID int64) ([]*reference.Commission, error) {
	links, err := crud.All(ctx, s.st.Commissions, crud.Filter{"patient_id": patientID})
	if err != nil {
		return nil, err
	}
	return crud.Resolve(ctx, links, s.commissions, func(l *PatientCommission) int64 { return l.CommissionID })
}

// filterVisits orders visits newest first and keeps those matching expired.
func filterVisits(visits []Visit, expired *bool) []Visit {
	sort.SliceStable(visits, func(i, j int) bool {
		return visits[i].LastAt.After(visits[j].LastAt.Time)
	})
	if expired == nil {
		return visits
	}
	out := visits[:0]
	for _, v := range visits {
		if v.Expired == *expired {
			out = append(out, v)
		}
	}
	return out
}

func (s *Service) LinkDoctor(ctx context.Context, patientID, doctorID int64, lastAt isodate.Date) (*PatientDoctor, error) {
	if _, err := s.st.Patients.Get(ctx, patientID); err != nil {
		return nil, err
	}
	if _, err := s.doctors.Get(ctx, doctorID); err != nil {
		return nil, err
	}
	link := &PatientDoctor{PatientID: patientID, DoctorID: doctorID, LastAt: lastAt}
	if err := s.st.Doctors.Create(ctx, link); err != nil {
		return nil, err
	}
	return link, nil
}

// RecordDoctorVisit moves the last visit date of an existing link.
func (s *Service) RecordDoctorVisit(ctx context.Context, patientID, doctorID int64, lastAt isodate.Date) (*PatientDoctor, error) {
	links, _, err := s.st.Doctors.List(ctx, crud.Filter{"patient_id": patientID, "doctor_id": doctorID}, 1, 0)
	if err != nil {
		return nil, err
	}
	if len(links) == 0 {
		return nil, fmt.Errorf("patient %d is not linked to doctor %d: %w", patientID, doctorID, db.ErrNotFound)
	}
	link := links[0]
	link.LastAt = lastAt
	if err := s.st.Doctors.Update(ctx, link); err != nil {
		return nil, err
	}
	return link, nil
}

func (s *Service) UnlinkDoctor(ctx context.Context, patientID, doctorID int64) error {
	return crud.Unlink(ctx, s.st.Doctors, crud.Filter{"patient_id": patientID, "doctor_id": doctorID})
}

func (s *Service) LinkDiagnostic(ctx context.Context, patientID, diagnosticID int64, lastAt isodate.Date) (*PatientDiagnostic, error) {
	if _, err := s.st.Patients.Get(ctx, patientID); err != nil {
		return nil, err
	}
	if _, err := s.diagnostics.Get(ctx, diagnosticID); err != nil {
		return nil, err
	}
	link := &PatientDiagnostic{PatientID: patientID, DiagnosticID: diagnosticID, LastAt: lastAt}
	if err := s.st.Diagnostics.Create(ctx, link); err != nil {
		return nil, err
	}
	return link, nil
}

// RecordDiagnosticVisit moves the last examination date of an existing link.
func (s *Service) RecordDiagnosticVisit(ctx context.Context, patientID, diagnosticID int64, lastAt isodate.Date) (*PatientDiagnostic, error) {
	links, _, err := s.st.Diagnostics.List(ctx, crud.Filter{"patient_id": patientID, "diagnostic_id": diagnosticID}, 1, 0)
	if err != nil {
		return nil, err
	}
	if len(links) == 0 {
		return nil, fmt.Errorf("patient %d is not linked to diagnostic %d: %w", patientID, diagnosticID, db.ErrNotFound)
	}
	link := links[0]
	link.LastAt = lastAt
	if err := s.st.Diagnostics.Update(ctx, link); err != nil {
		return nil, err
	}
	return link, nil
}

func (s *Service) UnlinkDiagnostic(ctx context.Context, patientID, diagnosticID int64) error {
	return crud.Unlink(ctx, s.st.Diagnostics, crud.Filter{"patient_id": patientID, "diagnostic_id": diagnosticID})
}

// ReferToCommission links the patient to a commission and marks them as
// sent to committee.
func (s *Service) ReferToCommission(ctx context.Context, patientID, commissionID int64) (*PatientCommission, error) {
	p, err := s.st.Patients.Get(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if _, err := s.commissions.Get(ctx, commissionID); err != nil {
		return nil, err
	}
	link := &PatientCommission{PatientID: patientID, CommissionID: commissionID}
	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.st.Commissions.Create(ctx, link); err != nil {
			return err
		}
		if p.ToCommittee {
			return nil
		}
		p.ToCommittee = true
		return s.st.Patients.Update(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	return link, nil
}

func (s *Service) WithdrawFromCommission(ctx context.Context, patientID, commissionID int64) error {
	return crud.Unlink(ctx, s.st.Commissions, crud.Filter{"patient_id": patientID, "commission_id": commissionID})
}
