package staff

import (
	"github.com/medsys/hospital/internal/platform/crud"
)

var SpecializationSchema = &crud.Schema[Specialization]{
	Table:   "specializations",
	Columns: []string{"id", "title"},
	Fields: func(v *Specialization) []any {
		return []any{&v.ID, &v.Title}
	},
	Writable:   []string{"title"},
	NaturalKey: []string{"title"},
	Filters:    []string{"title"},
}

var StaffSchema = &crud.Schema[Staff]{
	Table: "staff",
	Columns: []string{
		"id", "specialization_id", "department_id", "first_name", "last_name", "middle_name",
		"email", "phone", "address", "personal_phone", "tax_number", "birth_date",
		"medical_insurance", "pension_insurance", "passport_series", "passport_number",
		"current_salary", "employed_at", "dismissed_at", "notes", "created_at", "updated_at",
	},
	Fields: func(v *Staff) []any {
		return []any{
			&v.ID, &v.SpecializationID, &v.DepartmentID, &v.FirstName, &v.LastName, &v.MiddleName,
			&v.Email, &v.Phone, &v.Address, &v.PersonalPhone, &v.TaxNumber, &v.BirthDate,
			&v.MedicalInsurance, &v.PensionInsurance, &v.PassportSeries, &v.PassportNumber,
			&v.CurrentSalary, &v.EmployedAt, &v.DismissedAt, &v.Notes, &v.CreatedAt, &v.UpdatedAt,
		}
	},
	Writable: []string{
		"specialization_id", "department_id", "first_name", "last_name", "middle_name",
		"email", "phone", "address", "personal_phone", "tax_number", "birth_date",
		"medical_insurance", "pension_insurance", "passport_series", "passport_number",
		"current_salary", "employed_at", "dismissed_at", "notes",
	},
	Filters: []string{"specialization_id", "department_id", "last_name"},
	Touch:   true,
}

var OfficeStaffSchema = &crud.Schema[OfficeStaff]{
	Table:   "office_staff",
	Columns: []string{"id", "office_id", "staff_id"},
	Fields: func(v *OfficeStaff) []any {
		return []any{&v.ID, &v.OfficeID, &v.StaffID}
	},
	Writable: []string{"office_id", "staff_id"},
	Unique:   [][]string{{"office_id", "staff_id"}},
	Filters:  []string{"office_id", "staff_id"},
}

type Stores struct {
	Specializations crud.Store[Specialization]
	Staff           crud.Store[Staff]
	OfficeStaff     crud.Store[OfficeStaff]
}
