package clinical

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/medsys/hospital/internal/platform/crud"
)

func NewStores(pool *pgxpool.Pool) Stores {
	return Stores{
		Diseases:         crud.NewRepo(pool, DiseaseSchema),
		Procedures:       crud.NewRepo(pool, ProcedureSchema),
		Records:          crud.NewRepo(pool, RecordSchema),
		Diagnoses:        crud.NewRepo(pool, DiagnosisSchema),
		ProcedureRecords: crud.NewRepo(pool, ProcedureRecordSchema),
		Appointments:     crud.NewRepo(pool, AppointmentSchema),
		Prescriptions:    crud.NewRepo(pool, PrescriptionSchema),
	}
}
