package clinical

import (
	"time"

	"github.com/medsys/hospital/internal/platform/apierr"
)

// Disease is an ICD catalogue entry.
type Disease struct {
	ID        int64     `db:"id" json:"id"`
	Code      string    `db:"code" json:"code" validate:"required,max=20"`
	Title     string    `db:"title" json:"title" validate:"required"`
	Source    int       `db:"source" json:"source" validate:"gte=0"`
	IsActual  bool      `db:"is_actual" json:"is_actual"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type Procedure struct {
	ID        int64     `db:"id" json:"id"`
	Title     string    `db:"title" json:"title" validate:"required,max=255"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// MedicalRecord is a signed note written by a staff member about a patient.
// StaffSecret holds the bcrypt hash of the author's secret and HashSum the
// SHA-256 of the content at signing time.
type MedicalRecord struct {
	ID                  int64     `db:"id" json:"id"`
	StaffID             int64     `db:"staff_id" json:"staff_id"`
	PatientID           int64     `db:"patient_id" json:"patient_id"`
	PatientClaims       *string   `db:"patient_claims" json:"patient_claims,omitempty"`
	SpecialistsNotes    string    `db:"specialists_notes" json:"specialists_notes"`
	PatientInstructions *string   `db:"patient_instructions" json:"patient_instructions,omitempty"`
	StaffSecret         string    `db:"staff_secret" json:"-"`
	HashSum             string    `db:"hash_sum" json:"hash_sum"`
	CreatedAt           time.Time `db:"created_at" json:"created_at"`
}

// RecordInput is the body of a new medical record.
type RecordInput struct {
	StaffID             int64   `json:"staff_id" validate:"required,gt=0"`
	PatientID           int64   `json:"patient_id" validate:"required,gt=0"`
	PatientClaims       *string `json:"patient_claims"`
	SpecialistsNotes    string  `json:"specialists_notes" validate:"required"`
	PatientInstructions *string `json:"patient_instructions"`
	StaffSecret         string  `json:"staff_secret" validate:"required,min=4"`
}

// maxSecretBytes is the longest input bcrypt accepts.
const maxSecretBytes = 72

func (in *RecordInput) Check() error {
	if len(in.StaffSecret) > maxSecretBytes {
		return apierr.Invalid("staff_secret", "must be at most %d bytes", maxSecretBytes)
	}
	return nil
}

// Verification reports whether a record's signature and content check out.
type Verification struct {
	RecordID       int64 `json:"record_id"`
	SignatureValid bool  `json:"signature_valid"`
	ContentIntact  bool  `json:"content_intact"`
}

type Diagnosis struct {
	ID        int64 `db:"id" json:"id"`
	RecordID  int64 `db:"record_id" json:"record_id" validate:"required,gt=0"`
	DiseaseID int64 `db:"disease_id" json:"disease_id" validate:"required,gt=0"`
}

// ProcedureRecord is a procedure performed under a medical record. Files
// holds references to attached results.
type ProcedureRecord struct {
	ID          int64     `db:"id" json:"id"`
	RecordID    int64     `db:"record_id" json:"record_id" validate:"required,gt=0"`
	ProcedureID int64     `db:"procedure_id" json:"procedure_id" validate:"required,gt=0"`
	Files       []string  `db:"files" json:"files"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

type Appointment struct {
	ID          int64      `db:"id" json:"id"`
	RecordID    *int64     `db:"record_id" json:"record_id,omitempty"`
	StaffID     int64      `db:"staff_id" json:"staff_id" validate:"required,gt=0"`
	ScheduledAt time.Time  `db:"scheduled_at" json:"scheduled_at" validate:"required"`
	ValidUntil  time.Time  `db:"valid_until" json:"valid_until" validate:"required"`
	TookPlace   bool       `db:"took_place" json:"took_place"`
	StartedAt   *time.Time `db:"started_at" json:"started_at,omitempty"`
	EndedAt     *time.Time `db:"ended_at" json:"ended_at,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
}

func (a *Appointment) Check() error {
	if a.ValidUntil.Before(a.ScheduledAt) {
		return apierr.Invalid("valid_until", "must not be before scheduled_at")
	}
	if a.StartedAt != nil && a.EndedAt != nil && a.EndedAt.Before(*a.StartedAt) {
		return apierr.Invalid("ended_at", "must not be before started_at")
	}
	return nil
}

type Prescription struct {
	ID                 int64  `db:"id" json:"id"`
	RecordID           int64  `db:"record_id" json:"record_id" validate:"required,gt=0"`
	MedicineID         int64  `db:"medicine_id" json:"medicine_id" validate:"required,gt=0"`
	MedicationSchedule string `db:"medication_schedule" json:"medication_schedule" validate:"required"`
}
