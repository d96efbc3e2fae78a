package patient

import (
	"github.com/medsys/hospital/internal/platform/crud"
)

var PatientSchema = &crud.Schema[Patient]{
	Table: "patients",
	Columns: []string{
		"id", "first_name", "middle_name", "last_name", "birth_date", "without_documents",
		"to_committee", "to_internat", "medical_insurance", "pension_insurance", "address",
		"passport", "phone", "email", "therapist_id", "created_at", "updated_at",
	},
	Fields: func(v *Patient) []any {
		return []any{
			&v.ID, &v.FirstName, &v.MiddleName, &v.LastName, &v.BirthDate, &v.WithoutDocuments,
			&v.ToCommittee, &v.ToInternat, &v.MedicalInsurance, &v.PensionInsurance, &v.Address,
			&v.Passport, &v.Phone, &v.Email, &v.TherapistID, &v.CreatedAt, &v.UpdatedAt,
		}
	},
	Writable: []string{
		"first_name", "middle_name", "last_name", "birth_date", "without_documents",
		"to_committee", "to_internat", "medical_insurance", "pension_insurance", "address",
		"passport", "phone", "email", "therapist_id",
	},
	// patients_identity_key, NULLS NOT DISTINCT
	Unique:  [][]string{{"first_name", "last_name", "birth_date", "medical_insurance"}},
	Filters: []string{"last_name", "to_committee", "to_internat", "without_documents", "therapist_id"},
	Touch:   true,
}

var PatientDoctorSchema = &crud.Schema[PatientDoctor]{
	Table:   "patient_doctors",
	Columns: []string{"id", "patient_id", "doctor_id", "last_at"},
	Fields: func(v *PatientDoctor) []any {
		return []any{&v.ID, &v.PatientID, &v.DoctorID, &v.LastAt}
	},
	Writable: []string{"patient_id", "doctor_id", "last_at"},
	Unique:   [][]string{{"patient_id", "doctor_id"}},
	Filters:  []string{"patient_id", "doctor_id"},
}

var PatientDiagnosticSchema = &crud.Schema[PatientDiagnostic]{
	Table:   "patient_diagnostics",
	Columns: []string{"id", "patient_id", "diagnostic_id", "last_at"},
	Fields: func(v *PatientDiagnostic) []any {
		return []any{&v.ID, &v.PatientID, &v.DiagnosticID, &v.LastAt}
	},
	Writable: []string{"patient_id", "diagnostic_id", "last_at"},
	Unique:   [][]string{{"patient_id", "diagnostic_id"}},
	Filters:  []string{"patient_id", "diagnostic_id"},
}

var PatientCommissionSchema = &crud.Schema[PatientCommission]{
	Table:   "patient_commissions",
	Columns: []string{"id", "patient_id", "commission_id"},
	Fields: func(v *PatientCommission) []any {
		return []any{&v.ID, &v.PatientID, &v.CommissionID}
	},
	Writable: []string{"patient_id", "commission_id"},
	Unique:   [][]string{{"patient_id", "commission_id"}},
	Filters:  []string{"patient_id", "commission_id"},
}

type Stores struct {
	Patients    crud.Store[Patient]
	Doctors     crud.Store[PatientDoctor]
	Diagnostics crud.Store[PatientDiagnostic]
	Commissions crud.Store[PatientCommission]
}
