package facility

import (
	"github.com/medsys/hospital/internal/platform/crud"
)

var HospitalSchema = &crud.Schema[Hospital]{
	Table:   "hospitals",
	Columns: []string{"id", "title", "address", "created_at", "updated_at"},
	Fields: func(v *Hospital) []any {
		return []any{&v.ID, &v.Title, &v.Address, &v.CreatedAt, &v.UpdatedAt}
	},
	Writable: []string{"title", "address"},
	Filters:  []string{"title"},
	Touch:    true,
}

func kindSchema(table string) *crud.Schema[Kind] {
	return &crud.Schema[Kind]{
		Table:   table,
		Columns: []string{"id", "title"},
		Fields: func(v *Kind) []any {
			return []any{&v.ID, &v.Title}
		},
		Writable:   []string{"title"},
		NaturalKey: []string{"title"},
	}
}

var (
	DepartmentTypeSchema = kindSchema("department_types")
	OfficeTypeSchema     = kindSchema("office_types")
	WardTypeSchema       = kindSchema("ward_types")
)

var DepartmentSchema = &crud.Schema[Department]{
	Table:   "hospital_departments",
	Columns: []string{"id", "hospital_id", "department_type_id", "chief_id", "title", "created_at", "updated_at"},
	Fields: func(v *Department) []any {
		return []any{&v.ID, &v.HospitalID, &v.DepartmentTypeID, &v.ChiefID, &v.Title, &v.CreatedAt, &v.UpdatedAt}
	},
	Writable: []string{"hospital_id", "department_type_id", "chief_id", "title"},
	Unique:   [][]string{{"hospital_id", "title"}},
	Filters:  []string{"hospital_id", "department_type_id", "chief_id"},
	Touch:    true,
}

var OfficeSchema = &crud.Schema[Office]{
	Table:   "department_offices",
	Columns: []string{"id", "department_id", "office_type_id", "title"},
	Fields: func(v *Office) []any {
		return []any{&v.ID, &v.DepartmentID, &v.OfficeTypeID, &v.Title}
	},
	Writable: []string{"department_id", "office_type_id", "title"},
	Unique:   [][]string{{"department_id", "title"}},
	Filters:  []string{"department_id", "office_type_id"},
}

var WardSchema = &crud.Schema[Ward]{
	Table:   "department_wards",
	Columns: []string{"id", "department_id", "ward_type_id", "title"},
	Fields: func(v *Ward) []any {
		return []any{&v.ID, &v.DepartmentID, &v.WardTypeID, &v.Title}
	},
	Writable: []string{"department_id", "ward_type_id", "title"},
	Unique:   [][]string{{"department_id", "title"}},
	Filters:  []string{"department_id", "ward_type_id"},
}

var WardPlaceSchema = &crud.Schema[WardPlace]{
	Table:   "ward_places",
	Columns: []string{"id", "ward_id", "title", "patient_id"},
	Fields: func(v *WardPlace) []any {
		return []any{&v.ID, &v.WardID, &v.Title, &v.PatientID}
	},
	Writable: []string{"ward_id", "title", "patient_id"},
	Managed:  []string{"patient_id"},
	Unique:   [][]string{{"ward_id", "title"}},
	Filters:  []string{"ward_id", "patient_id"},
}

// Stores groups the persistence of every facility table.
type Stores struct {
	Hospitals       crud.Store[Hospital]
	DepartmentTypes crud.Store[Kind]
	OfficeTypes     crud.Store[Kind]
	WardTypes       crud.Store[Kind]
	Departments     crud.Store[Department]
	Offices         crud.Store[Office]
	Wards           crud.Store[Ward]
	WardPlaces      crud.Store[WardPlace]
}
