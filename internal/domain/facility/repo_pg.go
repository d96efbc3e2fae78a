package facility

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/medsys/hospital/internal/platform/crud"
)

func NewStores(pool *pgxpool.Pool) Stores {
	return Stores{
		Hospitals:       crud.NewRepo(pool, HospitalSchema),
		DepartmentTypes: crud.NewRepo(pool, DepartmentTypeSchema),
		OfficeTypes:     crud.NewRepo(pool, OfficeTypeSchema),
		WardTypes:       crud.NewRepo(pool, WardTypeSchema),
		Departments:     crud.NewRepo(pool, DepartmentSchema),
		Offices:         crud.NewRepo(pool, OfficeSchema),
		Wards:           crud.NewRepo(pool, WardSchema),
		WardPlaces:      crud.NewRepo(pool, WardPlaceSchema),
	}
}
