package staff

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/medsys/hospital/internal/platform/crud"
)

func NewStores(pool *pgxpool.Pool) Stores {
	return Stores{
		Specializations: crud.NewRepo(pool, SpecializationSchema),
		Staff:           crud.NewRepo(pool, StaffSchema),
		OfficeStaff:     crud.NewRepo(pool, OfficeStaffSchema),
	}
}
