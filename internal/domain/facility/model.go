package facility

import (
	"time"
)

// Hospital maps to the hospitals table.
type Hospital struct {
	ID        int64     `db:"id" json:"id"`
	Title     string    `db:"title" json:"title" validate:"required,max=255"`
	Address   string    `db:"address" json:"address" validate:"required"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Kind is a row of one of the classifier tables: department_types,
// office_types or ward_types.
type Kind struct {
	ID    int64  `db:"id" json:"id"`
	Title string `db:"title" json:"title" validate:"required,max=255"`
}

// Department maps to the hospital_departments table.
type Department struct {
	ID               int64     `db:"id" json:"id"`
	HospitalID       int64     `db:"hospital_id" json:"hospital_id" validate:"required,gt=0"`
	DepartmentTypeID *int64    `db:"department_type_id" json:"department_type_id,omitempty"`
	ChiefID          *int64    `db:"chief_id" json:"chief_id,omitempty"`
	Title            string    `db:"title" json:"title" validate:"required,max=255"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`
}

// Office maps to the department_offices table.
type Office struct {
	ID           int64  `db:"id" json:"id"`
	DepartmentID int64  `db:"department_id" json:"department_id" validate:"required,gt=0"`
	OfficeTypeID *int64 `db:"office_type_id" json:"office_type_id,omitempty"`
	Title        string `db:"title" json:"title" validate:"required,max=255"`
}

// Ward maps to the department_wards table.
type Ward struct {
	ID           int64  `db:"id" json:"id"`
	DepartmentID int64  `db:"department_id" json:"department_id" validate:"required,gt=0"`
	WardTypeID   *int64 `db:"ward_type_id" json:"ward_type_id,omitempty"`
	Title        string `db:"title" json:"title" validate:"required,max=255"`
}

// WardPlace is a bed in a ward, optionally occupied by a patient.
type WardPlace struct {
	ID        int64  `db:"id" json:"id"`
	WardID    int64  `db:"ward_id" json:"ward_id" validate:"required,gt=0"`
	Title     string `db:"title" json:"title" validate:"required,max=255"`
	PatientID *int64 `db:"patient_id" json:"patient_id,omitempty"`
}

// Occupied reports whether a patient is assigned to the place.
func (p *WardPlace) Occupied() bool {
	return p.PatientID != nil
}
