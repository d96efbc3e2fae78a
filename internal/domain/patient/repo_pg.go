package patient

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/medsys/hospital/internal/platform/crud"
)

func NewStores(pool *pgxpool.Pool) Stores {
	return Stores{
		Patients:    crud.NewRepo(pool, PatientSchema),
		Doctors:     crud.NewRepo(pool, PatientDoctorSchema),
		Diagnostics: crud.NewRepo(pool, PatientDiagnosticSchema),
		Commissions: crud.NewRepo(pool, PatientCommissionSchema),
	}
}
