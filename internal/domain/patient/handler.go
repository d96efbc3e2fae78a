package patient

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/medsys/hospital/internal/platform/apierr"
	"github.com/medsys/hospital/internal/platform/auth"
	"github.com/medsys/hospital/internal/platform/crud"
	"github.com/medsys/hospital/pkg/isodate"
)

type Handler struct {
	svc      *Service
	patients *crud.Handler[Patient]
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc, patients: crud.NewHandler(PatientSchema, svc.st.Patients)}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	read := api.Group("", auth.RequireRole(auth.ClinicalReaders...))
	write := api.Group("", auth.RequireRole(auth.RoleRegistrar, auth.RolePhysician))

	read.GET("/patients", h.patients.List)
	read.GET("/patients/:id", h.Get)
	write.POST("/patients", h.Create)
	write.PUT("/patients", h.Create)
	write.PUT("/patients/:id", h.Update)
	write.DELETE("/patients/:id", h.patients.Delete)

	read.GET("/patients/:id/doctors", h.ListDoctors)
	write.POST("/patients/:id/doctors/:doctor_id", h.LinkDoctor)
	write.PUT("/patients/:id/doctors/:doctor_id", h.RecordDoctorVisit)
	write.DELETE("/patients/:id/doctors/:doctor_id", h.UnlinkDoctor)

	read.GET("/patients/:id/diagnostics", h.ListDiagnostics)
	write.POST("/patients/:id/diagnostics/:diagnostic_id", h.LinkDiagnostic)
	write.PUT("/patients/:id/diagnostics/:diagnostic_id", h.RecordDiagnosticVisit)
	write.DELETE("/patients/:id/diagnostics/:diagnostic_id", h.UnlinkDiagnostic)

	read.GET("/patients/:id/commissions", h.ListCommissions)
	write.POST("/patients/:id/commissions/:commission_id", h.ReferToCommission)
	write.DELETE("/patients/:id/commissions/:commission_id", h.WithdrawFromCommission)
}

// expiredParam parses the optional ?expired=true|false filter.
func expiredParam(c echo.Context) (*bool, error) {
	raw := c.QueryParam("expired")
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, apierr.Invalid("expired", "must be true or false")
	}
	return &v, nil
}

func linkIDs(c echo.Context, other string) (int64, int64, error) {
	id, err := crud.PathID(c, "id")
	if err != nil {
		return 0, 0, err
	}
	otherID, err := crud.PathID(c, other)
	return id, otherID, err
}

type visitRequest struct {
	LastAt isodate.Date `json:"last_at"`
}

func (r *visitRequest) Check() error {
	if r.LastAt.IsZero() {
		return apierr.Invalid("last_at", "is required")
	}
	return nil
}

func (h *Handler) Get(c echo.Context) error {
	id, err := crud.PathID(c, "id")
	if err != nil {
		return apierr.HTTP(err)
	}
	expired, err := expiredParam(c)
	if err != nil {
		return apierr.HTTP(err)
	}
	d, err := h.svc.Detail(c.Request().Context(), id, expired)
	if err != nil {
		return apierr.HTTP(err)
	}
	return c.JSON(http.StatusOK, d)
}

func (h *Handler) Create(c echo.Context) error {
	var p Patient
	if err := apierr.Bind(c, &p); err != nil {
		return apierr.HTTP(err)
	}
	if err := h.svc.CreatePatient(c.Request().Context(), &p); err != nil {
		return apierr.HTTP(err)
	}
	return c.JSON(http.StatusCreated, &p)
}

func (h *Handler) Update(c echo.Context) error {
	id, err := crud.PathID(c, "id")
	if err != nil {
		return apierr.HTTP(err)
	}
	var p Patient
	if err := apierr.Bind(c, &p); err != nil {
		return apierr.HTTP(err)
	}
	p.ID = id
	if err := h.svc.UpdatePatient(c.Request().Context(), &p); err != nil {
		return apierr.HTTP(err)
	}
	return c.JSON(http.StatusOK, &p)
}

func (h *Handler) ListDoctors(c echo.Context) error {
	id, err := crud.PathID(c, "id")
	if err != nil {
		return apierr.HTTP(err)
	}
	expired, err := expiredParam(c)
	if err != nil {
		return apierr.HTTP(err)
	}
	visits, err := h.svc.DoctorVisits(c.Request().Context(), id, expired)
	if err != nil {
		return apierr.HTTP(err)
	}
	return c.JSON(http.StatusOK, visits)
}

func (h *Handler) LinkDoctor(c echo.Context) error {
	id, doctorID, err := linkIDs(c, "doctor_id")
	if err != nil {
		return apierr.HTTP(err)
	}
	var req visitRequest
	if err := apierr.Bind(c, &req); err != nil {
		return apierr.HTTP(err)
	}
	link, err := h.svc.LinkDoctor(c.Request().Context(), id, doctorID, req.LastAt)
	if err != nil {
		return apierr.HTTP(err)
	}
	return c.JSON(http.StatusCreated, link)
}

func (h *Handler) RecordDoctorVisit(c echo.Context) error {
	id, doctorID, err := linkIDs(c, "doctor_id")
	if err != nil {
		return apierr.HTTP(err)
	}
	var req visitRequest
	if err := apierr.Bind(c, &req); err != nil {
		return apierr.HTTP(err)
	}
	link, err := h.svc.RecordDoctorVisit(c.Request().Context(), id, doctorID, req.LastAt)
	if err != nil {
		return apierr.HTTP(err)
	}
	return c.JSON(http.StatusOK, link)
}

func (h *Handler) UnlinkDoctor(c echo.Context) error {
	id, doctorID, err := linkIDs(c, "doctor_id")
	if err != nil {
		return apierr.HTTP(err)
	}
	if err := h.svc.UnlinkDoctor(c.Request().Context(), id, doctorID); err != nil {
		return apierr.HTTP(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) ListDiagnostics(c echo.Context) error {
	id, err := crud.PathID(c, "id")
	if err != nil {
		return apierr.HTTP(err)
	}
	expired, err := expiredParam(c)
	if err != nil {
		return apierr.HTTP(err)
	}
	visits, err := h.svc.DiagnosticVisits(c.Request().Context(), id, expired)
	if err != nil {
		return apierr.HTTP(err)
	}
	return c.JSON(http.StatusOK, visits)
}

func (h *Handler) LinkDiagnostic(c echo.Context) error {
	id, diagnosticID, err := linkIDs(c, "diagnostic_id")
	if err != nil {
		return apierr.HTTP(err)
	}
	var req visitRequest
	if err := apierr.Bind(c, &req); err != nil {
		return apierr.HTTP(err)
	}
	link, err := h.svc.LinkDiagnostic(c.Request().Context(), id, diagnosticID, req.LastAt)
	if err != nil {
		return apierr.HTTP(err)
	}
	return c.JSON(http.StatusCreated, link)
}

func (h *Handler) RecordDiagnosticVisit(c echo.Context) error {
	id, diagnosticID, err := linkIDs(c, "diagnostic_id")
	if err != nil {
		return apierr.HTTP(err)
	}
	var req visitRequest
	if err := apierr.Bind(c, &req); err != nil {
		return apierr.HTTP(err)
	}
	link, err := h.svc.RecordDiagnosticVisit(c.Request().Context(), id, diagnosticID, req.LastAt)
	if err != nil {
		return apierr.HTTP(err)
	}
	return c.JSON(http.StatusOK, link)
}

func (h *Handler) UnlinkDiagnostic(c echo.Context) error {
	id, diagnosticID, err := linkIDs(c, "diagnostic_id")
	if err != nil {
		return apierr.HTTP(err)
	}
	if err := h.svc.UnlinkDiagnostic(c.Request().Context(), id, diagnosticID); err != nil {
		return apierr.HTTP(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) ListCommissions(c echo.Context) error {
	id, err := crud.PathID(c, "id")
	if err != nil {
		return apierr.HTTP(err)
	}
	items, err := h.svc.Commissions(c.Request().Context(), id)
	if err != nil {
		return apierr.HTTP(err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) ReferToCommission(c echo.Context) error {
	id, commissionID, err := linkIDs(c, "commission_id")
	if err != nil {
		return apierr.HTTP(err)
	}
	link, err := h.svc.ReferToCommission(c.Request().Context(), id, commissionID)
	if err != nil {
		return apierr.HTTP(err)
	}
	return c.JSON(http.StatusCreated, link)
}

func (h *Handler) WithdrawFromCommission(c echo.Context) error {
	id, commissionID, err := linkIDs(c, "commission_id")
	if err != nil {
		return apierr.HTTP(err)
	}
	if err := h.svc.WithdrawFromCommission(c.Request().Context(), id, commissionID); err != nil {
		return apierr.HTTP(err)
	}
	return c.NoContent(http.StatusNoContent)
}
