package staff

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/medsys/hospital/internal/platform/apierr"
	"github.com/medsys/hospital/internal/platform/auth"
	"github.com/medsys/hospital/internal/platform/crud"
)

type Handler struct {
	svc             *Service
	specializations *crud.Handler[Specialization]
	staff           *crud.Handler[Staff]
}

func NewHandler(svc *Service) *Handler {
	h := &Handler{
		svc:             svc,
		specializations: crud.NewHandler(SpecializationSchema, svc.st.Specializations),
		staff:           crud.NewHandler(StaffSchema, svc.st.Staff),
	}
	h.staff.BeforeSave = svc.checkStaff
	return h
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	read := api.Group("", auth.RequireRole(auth.ClinicalReaders...))
	write := api.Group("", auth.RequireRole(auth.RoleAdmin))

	h.specializations.Register(read, write, "/specializations")
	h.staff.Register(read, write, "/staff")
	h.staff.RegisterNested(read, "/departments/:id/staff", "department_id")
	h.staff.RegisterNested(read, "/specializations/:id/staff", "specialization_id")

	read.GET("/staff/:id/department", h.Department)
	read.GET("/staff/:id/offices", h.Offices)
	read.GET("/offices/:id/staff", h.OfficeStaff)
	write.POST("/offices/:id/staff/:staff_id", h.AssignOffice)
	write.DELETE("/offices/:id/staff/:staff_id", h.RemoveFromOffice)
}

func (h *Handler) Department(c echo.Context) error {
	id, err := crud.PathID(c, "id")
	if err != nil {
		return apierr.HTTP(err)
	}
	d, err := h.svc.DepartmentOf(c.Request().Context(), id)
	if err != nil {
		return apierr.HTTP(err)
	}
	return c.JSON(http.StatusOK, d)
}

func (h *Handler) Offices(c echo.Context) error {
	id, err := crud.PathID(c, "id")
	if err != nil {
		return apierr.HTTP(err)
	}
	offices, err := h.svc.StaffOffices(c.Request().Context(), id)
	if err != nil {
		return apierr.HTTP(err)
	}
	return c.JSON(http.StatusOK, offices)
}

func (h *Handler) OfficeStaff(c echo.Context) error {
	id, err := crud.PathID(c, "id")
	if err != nil {
		return apierr.HTTP(err)
	}
	members, err := h.svc.OfficeStaff(c.Request().Context(), id)
	if err != nil {
		return apierr.HTTP(err)
	}
	return c.JSON(http.StatusOK, members)
}

func linkIDs(c echo.Context) (officeID, staffID int64, err error) {
	if officeID, err = crud.PathID(c, "id"); err != nil {
		return 0, 0, err
	}
	staffID, err = crud.PathID(c, "staff_id")
	return officeID, staffID, err
}

func (h *Handler) AssignOffice(c echo.Context) error {
	officeID, staffID, err := linkIDs(c)
	if err != nil {
		return apierr.HTTP(err)
	}
	link, err := h.svc.AssignOffice(c.Request().Context(), officeID, staffID)
	if err != nil {
		return apierr.HTTP(err)
	}
	return c.JSON(http.StatusCreated, link)
}

func (h *Handler) RemoveFromOffice(c echo.Context) error {
	officeID, staffID, err := linkIDs(c)
	if err != nil {
		return apierr.HTTP(err)
	}
	if err := h.svc.RemoveFromOffice(c.Request().Context(), officeID, staffID); err != nil {
		return apierr.HTTP(err)
	}
	return c.NoContent(http.StatusNoContent)
}
