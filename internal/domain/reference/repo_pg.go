package reference

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/medsys/hospital/internal/platform/crud"
)

func NewStores(pool *pgxpool.Pool) Stores {
	return Stores{
		Doctors:                   crud.NewRepo(pool, DoctorSchema),
		Diagnostics:               crud.NewRepo(pool, DiagnosticSchema),
		Commissions:               crud.NewRepo(pool, CommissionSchema),
		CommissionSpecializations: crud.NewRepo(pool, CommissionSpecializationSchema),
		CommissionDiagnostics:     crud.NewRepo(pool, CommissionDiagnosticSchema),
	}
}
