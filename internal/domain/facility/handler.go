package facility

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/medsys/hospital/internal/platform/apierr"
	"github.com/medsys/hospital/internal/platform/auth"
	"github.com/medsys/hospital/internal/platform/crud"
)

type Handler struct {
	svc *Service

	hospitals       *crud.Handler[Hospital]
	departmentTypes *crud.Handler[Kind]
	officeTypes     *crud.Handler[Kind]
	wardTypes       *crud.Handler[Kind]
	departments     *crud.Handler[Department]
	offices         *crud.Handler[Office]
	wards           *crud.Handler[Ward]
	places          *crud.Handler[WardPlace]
}

func NewHandler(svc *Service) *Handler {
	h := &Handler{
		svc:             svc,
		hospitals:       crud.NewHandler(HospitalSchema, svc.st.Hospitals),
		departmentTypes: crud.NewHandler(DepartmentTypeSchema, svc.st.DepartmentTypes),
		officeTypes:     crud.NewHandler(OfficeTypeSchema, svc.st.OfficeTypes),
		wardTypes:       crud.NewHandler(WardTypeSchema, svc.st.WardTypes),
		departments:     crud.NewHandler(DepartmentSchema, svc.st.Departments),
		offices:         crud.NewHandler(OfficeSchema, svc.st.Offices),
		wards:           crud.NewHandler(WardSchema, svc.st.Wards),
		places:          crud.NewHandler(WardPlaceSchema, svc.st.WardPlaces),
	}
	h.departments.BeforeSave = svc.checkDepartment
	h.offices.BeforeSave = svc.checkOffice
	h.wards.BeforeSave = svc.checkWard
	h.places.BeforeSave = svc.checkWardPlace
	return h
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	// Read endpoints – every clinical role
	read := api.Group("", auth.RequireRole(auth.ClinicalReaders...))
	// Write endpoints – admin only
	write := api.Group("", auth.RequireRole(auth.RoleAdmin))

	h.hospitals.Register(read, write, "/hospitals")
	h.departmentTypes.Register(read, write, "/department-types")
	h.officeTypes.Register(read, write, "/office-types")
	h.wardTypes.Register(read, write, "/ward-types")
	h.departments.Register(read, write, "/departments")
	h.offices.Register(read, write, "/offices")
	h.wards.Register(read, write, "/wards")
	h.places.Register(read, write, "/ward-places")

	h.departments.RegisterNested(read, "/hospitals/:id/departments", "hospital_id")
	h.offices.RegisterNested(read, "/departments/:id/offices", "department_id")
	h.wards.RegisterNested(read, "/departments/:id/wards", "department_id")
	h.places.RegisterNested(read, "/wards/:id/places", "ward_id")
	read.GET("/wards/:id/free-places", h.FreePlaces)

	// Bed assignment is done at admission by registrars and nurses.
	admission := api.Group("", auth.RequireRole(auth.RoleRegistrar, auth.RoleNurse))
	admission.POST("/ward-places/:id/patient", h.AssignPlace)
	admission.DELETE("/ward-places/:id/patient", h.ReleasePlace)
}

type assignRequest struct {
	PatientID int64 `json:"patient_id" validate:"required,gt=0"`
}

func (h *Handler) AssignPlace(c echo.Context) error {
	id, err := crud.PathID(c, "id")
	if err != nil {
		return apierr.HTTP(err)
	}
	var req assignRequest
	if err := apierr.Bind(c, &req); err != nil {
		return apierr.HTTP(err)
	}
	place, err := h.svc.AssignPlace(c.Request().Context(), id, req.PatientID)
	if err != nil {
		return apierr.HTTP(err)
	}
	return c.JSON(http.StatusOK, place)
}

func (h *Handler) ReleasePlace(c echo.Context) error {
	id, err := crud.PathID(c, "id")
	if err != nil {
		return apierr.HTTP(err)
	}
	place, err := h.svc.ReleasePlace(c.Request().Context(), id)
	if err != nil {
		return apierr.HTTP(err)
	}
	return c.JSON(http.StatusOK, place)
}

func (h *Handler) FreePlaces(c echo.Context) error {
	id, err := crud.PathID(c, "id")
	if err != nil {
		return apierr.HTTP(err)
	}
	places, err := h.svc.FreePlaces(c.Request().Context(), id)
	if err != nil {
		return apierr.HTTP(err)
	}
	if places == nil {
		places = []*WardPlace{}
	}
	return c.JSON(http.StatusOK, places)
}
