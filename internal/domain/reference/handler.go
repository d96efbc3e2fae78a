package reference

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/medsys/hospital/internal/platform/apierr"
	"github.com/medsys/hospital/internal/platform/auth"
	"github.com/medsys/hospital/internal/platform/crud"
)

type Handler struct {
	svc         *Service
	doctors     *crud.Handler[Doctor]
	diagnostics *crud.Handler[Diagnostic]
	commissions *crud.Handler[Commission]
}

func NewHandler(svc *Service) *Handler {
	return &Handler{
		svc:         svc,
		doctors:     crud.NewHandler(DoctorSchema, svc.st.Doctors),
		diagnostics: crud.NewHandler(DiagnosticSchema, svc.st.Diagnostics),
		commissions: crud.NewHandler(CommissionSchema, svc.st.Commissions),
	}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	read := api.Group("", auth.RequireRole(auth.ClinicalReaders...))
	// The catalogue is maintained by physicians.
	write := api.Group("", auth.RequireRole(auth.RolePhysician))

	h.doctors.Register(read, write, "/doctors")
	write.PUT("/doctors", h.doctors.Upsert)
	h.diagnostics.Register(read, write, "/diagnostics")
	write.PUT("/diagnostics", h.diagnostics.Upsert)
	h.commissions.Register(read, write, "/commissions")

	read.GET("/commissions/:id/specializations", h.ListSpecializations)
	write.POST("/commissions/:id/specializations/:specialization_id", h.AddSpecialization)
	write.DELETE("/commissions/:id/specializations/:specialization_id", h.RemoveSpecialization)
	read.GET("/commissions/:id/diagnostics", h.ListDiagnostics)
	write.POST("/commissions/:id/diagnostics/:diagnostic_id", h.AddDiagnostic)
	write.DELETE("/commissions/:id/diagnostics/:diagnostic_id", h.RemoveDiagnostic)
}

func linkIDs(c echo.Context, other string) (int64, int64, error) {
	id, err := crud.PathID(c, "id")
	if err != nil {
		return 0, 0, err
	}
	otherID, err := crud.PathID(c, other)
	return id, otherID, err
}

func (h *Handler) ListSpecializations(c echo.Context) error {
	id, err := crud.PathID(c, "id")
	if err != nil {
		return apierr.HTTP(err)
	}
	items, err := h.svc.Specializations(c.Request().Context(), id)
	if err != nil {
		return apierr.HTTP(err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) AddSpecialization(c echo.Context) error {
	id, specID, err := linkIDs(c, "specialization_id")
	if err != nil {
		return apierr.HTTP(err)
	}
	link, err := h.svc.AddSpecialization(c.Request().Context(), id, specID)
	if err != nil {
		return apierr.HTTP(err)
	}
	return c.JSON(http.StatusCreated, link)
}

func (h *Handler) RemoveSpecialization(c echo.Context) error {
	id, specID, err := linkIDs(c, "specialization_id")
	if err != nil {
		return apierr.HTTP(err)
	}
	if err := h.svc.RemoveSpecialization(c.Request().Context(), id, specID); err != nil {
		return apierr.HTTP(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) ListDiagnostics(c echo.Context) error {
	id, err := crud.PathID(c, "id")
	if err != nil {
		return apierr.HTTP(err)
	}
	items, err := h.svc.CommissionDiagnostics(c.Request().Context(), id)
	if err != nil {
		return apierr.HTTP(err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) AddDiagnostic(c echo.Context) error {
	id, diagID, err := linkIDs(c, "diagnostic_id")
	if err != nil {
		return apierr.HTTP(err)
	}
	link, err := h.svc.AddDiagnostic(c.Request().Context(), id, diagID)
	if err != nil {
		return apierr.HTTP(err)
	}
	return c.JSON(http.StatusCreated, link)
}

func (h *Handler) RemoveDiagnostic(c echo.Context) error {
	id, diagID, err := linkIDs(c, "diagnostic_id")
	if err != nil {
		return apierr.HTTP(err)
	}
	if err := h.svc.RemoveDiagnostic(c.Request().Context(), id, diagID); err != nil {
		return apierr.HTTP(err)
	}
	return c.NoContent(http.StatusNoContent)
}
