package clinical

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/medsys/hospital/internal/domain/patient"
	"github.com/medsys/hospital/internal/domain/staff"
	"github.com/medsys/hospital/internal/domain/warehouse"
	"github.com/medsys/hospital/internal/platform/apierr"
	"github.com/medsys/hospital/internal/platform/crud"
	"github.com/medsys/hospital/internal/platform/db"
)

type Service struct {
	st        Stores
	staff     crud.Store[staff.Staff]
	patients  crud.Store[patient.Patient]
	medicines crud.Store[warehouse.MedicalItem]

	bcryptCost int
	now        func() time.Time
}

func NewService(st Stores, members crud.Store[staff.Staff], patients crud.Store[patient.Patient], medicines crud.Store[warehouse.MedicalItem]) *Service {
	return &Service{
		st:         st,
		staff:      members,
		patients:   patients,
		medicines:  medicines,
		bcryptCost: bcrypt.DefaultCost,
		now:        time.Now,
	}
}

// contentHash is the hex SHA-256 over the signed fields of a record.
func contentHash(r *MedicalRecord) string {
	var b strings.Builder
	for _, part := range []string{
		strconv.FormatInt(r.StaffID, 10),
		strconv.FormatInt(r.PatientID, 10),
		deref(r.PatientClaims),
		r.SpecialistsNotes,
		deref(r.PatientInstructions),
	} {
		b.WriteString(strconv.Itoa(len(part)))
		b.WriteByte(':')
		b.WriteString(part)
	}
	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// CreateRecord signs and stores a medical record.
func (s *Service) CreateRecord(ctx context.Context, in *RecordInput) (*MedicalRecord, error) {
	if err := crud.RequireRef(ctx, s.staff, "staff_id", &in.StaffID); err != nil {
		return nil, err
	}
	if err := crud.RequireRef(ctx, s.patients, "patient_id", &in.PatientID); err != nil {
		return nil, err
	}

	if err := in.Check(); err != nil {
		return nil, err
	}
	secret, err := bcrypt.GenerateFromPassword([]byte(in.StaffSecret), s.bcryptCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, apierr.Invalid("staff_secret", "must be at most %d bytes", maxSecretBytes)
	}
	if err != nil {
		return nil, fmt.Errorf("hash staff secret: %w", err)
	}
	r := &MedicalRecord{
		StaffID:             in.StaffID,
		PatientID:           in.PatientID,
		PatientClaims:       in.PatientClaims,
		SpecialistsNotes:    in.SpecialistsNotes,
		PatientInstructions: in.PatientInstructions,
		StaffSecret:         string(secret),
	}
	r.HashSum = contentHash(r)
	if err := s.st.Records.Create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// VerifyRecord checks secret against the author's signature and recomputes
// the content digest.
func (s *Service) VerifyRecord(ctx context.Context, id int64, secret string) (*Verification, error) {
	r, err := s.st.Records.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &Verification{
		RecordID:       r.ID,
		SignatureValid: bcrypt.CompareHashAndPassword([]byte(r.StaffSecret), []byte(secret)) == nil,
		ContentIntact:  contentHash(r) == r.HashSum,
	}, nil
}

func (s *Service) checkDiagnosis(ctx context.Context, d *Diagnosis) error {
	if err := crud.RequireRef(ctx, s.st.Records, "record_id", &d.RecordID); err != nil {
		return err
	}
	return crud.RequireRef(ctx, s.st.Diseases, "disease_id", &d.DiseaseID)
}

func (s *Service) checkProcedureRecord(ctx context.Context, p *ProcedureRecord) error {
	if err := crud.RequireRef(ctx, s.st.Records, "record_id", &p.RecordID); err != nil {
		return err
	}
	return crud.RequireRef(ctx, s.st.Procedures, "procedure_id", &p.ProcedureID)
}

func (s *Service) checkAppointment(ctx context.Context, a *Appointment) error {
	if err := crud.RequireRef(ctx, s.staff, "staff_id", &a.StaffID); err != nil {
		return err
	}
	return crud.RequireRef(ctx, s.st.Records, "record_id", a.RecordID)
}

func (s *Service) checkPrescription(ctx context.Context, p *Prescription) error {
	if err := crud.RequireRef(ctx, s.st.Records, "record_id", &p.RecordID); err != nil {
		return err
	}
	return crud.RequireRef(ctx, s.medicines, "medicine_id", &p.MedicineID)
}

// StartAppointment stamps started_at. The appointment must still be valid.
func (s *Service) StartAppointment(ctx context.Context, id int64) (*Appointment, error) {
	a, err := s.st.Appointments.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.StartedAt != nil {
		return nil, fmt.Errorf("appointment %d already started: %w", id, db.ErrConflict)
	}
	now := s.now().UTC()
	if now.After(a.ValidUntil) {
		return nil, apierr.Invalid("valid_until", "appointment expired at %s", a.ValidUntil.Format(time.RFC3339))
	}
	a.StartedAt = &now
	err = s.st.Appointments.Patch(ctx, a, []string{"started_at"}, crud.Filter{"started_at": nil})
	if errors.Is(err, db.ErrNotFound) {
		return nil, fmt.Errorf("appointment %d already started: %w", id, db.ErrConflict)
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

// FinishAppointment stamps ended_at and marks the appointment as held.
func (s *Service) FinishAppointment(ctx context.Context, id int64) (*Appointment, error) {
	a, err := s.st.Appointments.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.StartedAt == nil {
		return nil, apierr.Invalid("started_at", "appointment %d has not started", id)
	}
	if a.EndedAt != nil {
		return nil, fmt.Errorf("appointment %d already finished: %w", id, db.ErrConflict)
	}
	now := s.now().UTC()
	a.EndedAt = &now
	a.TookPlace = true
	err = s.st.Appointments.Patch(ctx, a, []string{"ended_at", "took_place"}, crud.Filter{"ended_at": nil})
	if errors.Is(err, db.ErrNotFound) {
		return nil, fmt.Errorf("appointment %d already finished: %w", id, db.ErrConflict)
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}
