package clinical

import (
	"github.com/medsys/hospital/internal/platform/crud"
)

var DiseaseSchema = &crud.Schema[Disease]{
	Table:   "diseases",
	Columns: []string{"id", "code", "title", "source", "is_actual", "created_at"},
	Fields: func(v *Disease) []any {
		return []any{&v.ID, &v.Code, &v.Title, &v.Source, &v.IsActual, &v.CreatedAt}
	},
	Writable:   []string{"code", "title", "source", "is_actual"},
	NaturalKey: []string{"code"},
	Filters:    []string{"code", "source", "is_actual"},
}

var ProcedureSchema = &crud.Schema[Procedure]{
	Table:   "procedures",
	Columns: []string{"id", "title", "created_at"},
	Fields: func(v *Procedure) []any {
		return []any{&v.ID, &v.Title, &v.CreatedAt}
	},
	Writable: []string{"title"},
	Filters:  []string{"title"},
}

var RecordSchema = &crud.Schema[MedicalRecord]{
	Table: "medical_records",
	Columns: []string{
		"id", "staff_id", "patient_id", "patient_claims", "specialists_notes",
		"patient_instructions", "staff_secret", "hash_sum", "created_at",
	},
	Fields: func(v *MedicalRecord) []any {
		return []any{
			&v.ID, &v.StaffID, &v.PatientID, &v.PatientClaims, &v.SpecialistsNotes,
			&v.PatientInstructions, &v.StaffSecret, &v.HashSum, &v.CreatedAt,
		}
	},
	Writable: []string{
		"staff_id", "patient_id", "patient_claims", "specialists_notes",
		"patient_instructions", "staff_secret", "hash_sum",
	},
	Filters: []string{"staff_id", "patient_id"},
}

var DiagnosisSchema = &crud.Schema[Diagnosis]{
	Table:   "diagnoses",
	Columns: []string{"id", "record_id", "disease_id"},
	Fields: func(v *Diagnosis) []any {
		return []any{&v.ID, &v.RecordID, &v.DiseaseID}
	},
	Writable: []string{"record_id", "disease_id"},
	Unique:   [][]string{{"record_id", "disease_id"}},
	Filters:  []string{"record_id", "disease_id"},
}

var ProcedureRecordSchema = &crud.Schema[ProcedureRecord]{
	Table:   "procedure_records",
	Columns: []string{"id", "record_id", "procedure_id", "files", "created_at"},
	Fields: func(v *ProcedureRecord) []any {
		return []any{&v.ID, &v.RecordID, &v.ProcedureID, &v.Files, &v.CreatedAt}
	},
	Writable: []string{"record_id", "procedure_id", "files"},
	Filters:  []string{"record_id", "procedure_id"},
}

var AppointmentSchema = &crud.Schema[Appointment]{
	Table: "patient_appointments",
	Columns: []string{
		"id", "record_id", "staff_id", "scheduled_at", "valid_until", "took_place",
		"started_at", "ended_at", "created_at", "updated_at",
	},
	Fields: func(v *Appointment) []any {
		return []any{
			&v.ID, &v.RecordID, &v.StaffID, &v.ScheduledAt, &v.ValidUntil, &v.TookPlace,
			&v.StartedAt, &v.EndedAt, &v.CreatedAt, &v.UpdatedAt,
		}
	},
	Writable: []string{"record_id", "staff_id", "scheduled_at", "valid_until", "took_place", "started_at", "ended_at"},
	// Set by StartAppointment and FinishAppointment only.
	Managed: []string{"took_place", "started_at", "ended_at"},
	Filters: []string{"record_id", "staff_id", "took_place"},
	Touch:   true,
}

var PrescriptionSchema = &crud.Schema[Prescription]{
	Table:   "patient_prescriptions",
	Columns: []string{"id", "record_id", "medicine_id", "medication_schedule"},
	Fields: func(v *Prescription) []any {
		return []any{&v.ID, &v.RecordID, &v.MedicineID, &v.MedicationSchedule}
	},
	Writable: []string{"record_id", "medicine_id", "medication_schedule"},
	Filters:  []string{"record_id", "medicine_id"},
}

type Stores struct {
	Diseases         crud.Store[Disease]
	Procedures       crud.Store[Procedure]
	Records          crud.Store[MedicalRecord]
	Diagnoses        crud.Store[Diagnosis]
	ProcedureRecords crud.Store[ProcedureRecord]
	Appointments     crud.Store[Appointment]
	Prescriptions    crud.Store[Prescription]
}
