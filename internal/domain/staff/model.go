package staff

import (
	"time"

	"github.com/medsys/hospital/internal/platform/apierr"
	"github.com/medsys/hospital/pkg/isodate"
)

type Specialization struct {
	ID    int64  `db:"id" json:"id"`
	Title string `db:"title" json:"title" validate:"required,max=255"`
}

// Staff maps to the staff table. Date fields left empty are stored as NULL.
type Staff struct {
	ID               int64        `db:"id" json:"id"`
	SpecializationID *int64       `db:"specialization_id" json:"specialization_id,omitempty"`
	DepartmentID     *int64       `db:"department_id" json:"department_id,omitempty"`
	FirstName        string       `db:"first_name" json:"first_name" validate:"required,max=255"`
	LastName         string       `db:"last_name" json:"last_name" validate:"required,max=255"`
	MiddleName       *string      `db:"middle_name" json:"middle_name,omitempty" validate:"omitempty,max=255"`
	Email            *string      `db:"email" json:"email,omitempty" validate:"omitempty,email"`
	Phone            *string      `db:"phone" json:"phone,omitempty" validate:"omitempty,max=50"`
	Address          *string      `db:"address" json:"address,omitempty"`
	PersonalPhone    *string      `db:"personal_phone" json:"personal_phone,omitempty" validate:"omitempty,max=50"`
	TaxNumber        *string      `db:"tax_number" json:"tax_number,omitempty" validate:"omitempty,max=50"`
	BirthDate        isodate.Date `db:"birth_date" json:"birth_date"`
	MedicalInsurance *string      `db:"medical_insurance" json:"medical_insurance,omitempty" validate:"omitempty,max=100"`
	PensionInsurance *string      `db:"pension_insurance" json:"pension_insurance,omitempty" validate:"omitempty,max=100"`
	PassportSeries   *string      `db:"passport_series" json:"passport_series,omitempty" validate:"omitempty,max=20"`
	PassportNumber   *string      `db:"passport_number" json:"passport_number,omitempty" validate:"omitempty,max=20"`
	CurrentSalary    *float64     `db:"current_salary" json:"current_salary,omitempty" validate:"omitempty,gte=0"`
	EmployedAt       isodate.Date `db:"employed_at" json:"employed_at"`
	DismissedAt      isodate.Date `db:"dismissed_at" json:"dismissed_at"`
	Notes            *string      `db:"notes" json:"notes,omitempty"`
	CreatedAt        time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time    `db:"updated_at" json:"updated_at"`
}

func (s *Staff) Check() error {
	if !s.DismissedAt.IsZero() && !s.EmployedAt.IsZero() && s.DismissedAt.Before(s.EmployedAt.Time) {
		return apierr.Invalid("dismissed_at", "must not be before employed_at")
	}
	if !s.BirthDate.IsZero() && s.BirthDate.After(isodate.Today().Time) {
		return apierr.Invalid("birth_date", "must not be in the future")
	}
	return nil
}

// Active reports whether the employee has not been dismissed as of day.
func (s *Staff) Active(day isodate.Date) bool {
	return s.DismissedAt.IsZero() || s.DismissedAt.After(day.Time)
}

// OfficeStaff links an employee to an office they work in.
type OfficeStaff struct {
	ID       int64 `db:"id" json:"id"`
	OfficeID int64 `db:"office_id" json:"office_id"`
	StaffID  int64 `db:"staff_id" json:"staff_id"`
}
