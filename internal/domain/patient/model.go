package patient

import (
	"time"

	"github.com/medsys/hospital/internal/domain/reference"
	"github.com/medsys/hospital/internal/platform/apierr"
	"github.com/medsys/hospital/pkg/isodate"
)

// Patient is a person registered at the hospital. A patient admitted
// without identity documents gets a generated placeholder name.
type Patient struct {
	ID               int64        `db:"id" json:"id"`
	FirstName        string       `db:"first_name" json:"first_name" validate:"max=255"`
	MiddleName       *string      `db:"middle_name" json:"middle_name" validate:"omitempty,max=255"`
	LastName         string       `db:"last_name" json:"last_name" validate:"max=255"`
	BirthDate        isodate.Date `db:"birth_date" json:"birth_date"`
	WithoutDocuments bool         `db:"without_documents" json:"without_documents"`
	ToCommittee      bool         `db:"to_committee" json:"to_committee"`
	ToInternat       bool         `db:"to_internat" json:"to_internat"`
	MedicalInsurance *string      `db:"medical_insurance" json:"medical_insurance,omitempty" validate:"omitempty,max=100"`
	PensionInsurance *string      `db:"pension_insurance" json:"pension_insurance,omitempty" validate:"omitempty,max=100"`
	Address          *string      `db:"address" json:"address,omitempty"`
	Passport         *string      `db:"passport" json:"passport,omitempty" validate:"omitempty,max=50"`
	Phone            *string      `db:"phone" json:"phone,omitempty" validate:"omitempty,max=50"`
	Email            *string      `db:"email" json:"email,omitempty" validate:"omitempty,email"`
	TherapistID      *int64       `db:"therapist_id" json:"therapist_id,omitempty"`
	CreatedAt        time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time    `db:"updated_at" json:"updated_at"`
}

func (p *Patient) Check() error {
	if !p.WithoutDocuments {
		if p.FirstName == "" {
			return apierr.Invalid("first_name", "is required unless without_documents is set")
		}
		if p.LastName == "" {
			return apierr.Invalid("last_name", "is required unless without_documents is set")
		}
	}
	if !p.BirthDate.IsZero() && p.BirthDate.After(isodate.Today().Time) {
		return apierr.Invalid("birth_date", "must not be in the future")
	}
	return nil
}

// PatientDoctor records the last visit of a patient to a kind of doctor.
type PatientDoctor struct {
	ID        int64        `db:"id" json:"id"`
	PatientID int64        `db:"patient_id" json:"patient_id"`
	DoctorID  int64        `db:"doctor_id" json:"doctor_id"`
	LastAt    isodate.Date `db:"last_at" json:"last_at"`
}

// PatientDiagnostic records the last time a patient passed a diagnostic.
type PatientDiagnostic struct {
	ID           int64        `db:"id" json:"id"`
	PatientID    int64        `db:"patient_id" json:"patient_id"`
	DiagnosticID int64        `db:"diagnostic_id" json:"diagnostic_id"`
	LastAt       isodate.Date `db:"last_at" json:"last_at"`
}

type PatientCommission struct {
	ID           int64 `db:"id" json:"id"`
	PatientID    int64 `db:"patient_id" json:"patient_id"`
	CommissionID int64 `db:"commission_id" json:"commission_id"`
}

// Visit is a linked doctor or diagnostic as shown on the patient card.
type Visit struct {
	ID        int64        `json:"id"`
	Name      string       `json:"name"`
	LastAt    isodate.Date `json:"last_at"`
	ExpiresAt isodate.Date `json:"expires_at"`
	Expired   bool         `json:"expired"`
}

func newVisit(id int64, name string, lastAt isodate.Date, expiresInDays int, today isodate.Date) Visit {
	expires := lastAt.AddDays(expiresInDays)
	return Visit{
		ID:        id,
		Name:      name,
		LastAt:    lastAt,
		ExpiresAt: expires,
		Expired:   expires.Before(today.Time),
	}
}

// Detail is the patient card: the patient with linked doctors, diagnostics
// and commissions.
type Detail struct {
	*Patient
	Doctors     []Visit                 `json:"doctors"`
	Diagnostics []Visit                 `json:"diagnostics"`
	Commissions []*reference.Commission `json:"commissions"`
}
