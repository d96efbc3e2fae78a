package clinical

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/medsys/hospital/internal/platform/apierr"
	"github.com/medsys/hospital/internal/platform/auth"
	"github.com/medsys/hospital/internal/platform/crud"
)

type Handler struct {
	svc *Service

	diseases         *crud.Handler[Disease]
	procedures       *crud.Handler[Procedure]
	records          *crud.Handler[MedicalRecord]
	diagnoses        *crud.Handler[Diagnosis]
	procedureRecords *crud.Handler[ProcedureRecord]
	appointments     *crud.Handler[Appointment]
	prescriptions    *crud.Handler[Prescription]
}

func NewHandler(svc *Service) *Handler {
	h := &Handler{
		svc:              svc,
		diseases:         crud.NewHandler(DiseaseSchema, svc.st.Diseases),
		procedures:       crud.NewHandler(ProcedureSchema, svc.st.Procedures),
		records:          crud.NewHandler(RecordSchema, svc.st.Records),
		diagnoses:        crud.NewHandler(DiagnosisSchema, svc.st.Diagnoses),
		procedureRecords: crud.NewHandler(ProcedureRecordSchema, svc.st.ProcedureRecords),
		appointments:     crud.NewHandler(AppointmentSchema, svc.st.Appointments),
		prescriptions:    crud.NewHandler(PrescriptionSchema, svc.st.Prescriptions),
	}
	h.diagnoses.BeforeSave = svc.checkDiagnosis
	h.procedureRecords.BeforeSave = svc.checkProcedureRecord
	h.appointments.BeforeSave = svc.checkAppointment
	h.prescriptions.BeforeSave = svc.checkPrescription
	return h
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	read := api.Group("", auth.RequireRole(auth.ClinicalReaders...))
	write := api.Group("", auth.RequireRole(auth.RolePhysician))
	// Registrars book appointments on behalf of physicians.
	booking := api.Group("", auth.RequireRole(auth.RolePhysician, auth.RoleRegistrar))

	h.diseases.Register(read, write, "/diseases")
	write.PUT("/diseases", h.diseases.Upsert)
	h.procedures.Register(read, write, "/procedures")

	// Signed records are never updated in place.
	read.GET("/medical-records", h.records.List)
	read.GET("/medical-records/:id", h.records.Get)
	write.POST("/medical-records", h.CreateRecord)
	write.DELETE("/medical-records/:id", h.records.Delete)
	api.POST("/medical-records/:id/verify", h.VerifyRecord, auth.RequireRole(auth.RolePhysician, auth.RoleNurse))
	h.records.RegisterNested(read, "/patients/:id/medical-records", "patient_id")
	h.records.RegisterNested(read, "/staff/:id/medical-records", "staff_id")

	h.diagnoses.Register(read, write, "/diagnoses")
	h.diagnoses.RegisterNested(read, "/medical-records/:id/diagnoses", "record_id")
	h.procedureRecords.Register(read, write, "/procedure-records")
	h.procedureRecords.RegisterNested(read, "/medical-records/:id/procedure-records", "record_id")
	h.prescriptions.Register(read, write, "/prescriptions")
	h.prescriptions.RegisterNested(read, "/medical-records/:id/prescriptions", "record_id")

	h.appointments.Register(read, booking, "/appointments")
	h.appointments.RegisterNested(read, "/medical-records/:id/appointments", "record_id")
	h.appointments.RegisterNested(read, "/staff/:id/appointments", "staff_id")
	write.POST("/appointments/:id/start", h.StartAppointment)
	write.POST("/appointments/:id/finish", h.FinishAppointment)
}

func (h *Handler) CreateRecord(c echo.Context) error {
	var in RecordInput
	if err := apierr.Bind(c, &in); err != nil {
		return apierr.HTTP(err)
	}
	r, err := h.svc.CreateRecord(c.Request().Context(), &in)
	if err != nil {
		return apierr.HTTP(err)
	}
	return c.JSON(http.StatusCreated, r)
}

type verifyRequest struct {
	StaffSecret string `json:"staff_secret" validate:"required"`
}

func (h *Handler) VerifyRecord(c echo.Context) error {
	id, err := crud.PathID(c, "id")
	if err != nil {
		return apierr.HTTP(err)
	}
	var req verifyRequest
	if err := apierr.Bind(c, &req); err != nil {
		return apierr.HTTP(err)
	}
	v, err := h.svc.VerifyRecord(c.Request().Context(), id, req.StaffSecret)
	if err != nil {
		return apierr.HTTP(err)
	}
	return c.JSON(http.StatusOK, v)
}

func (h *Handler) StartAppointment(c echo.Context) error {
	id, err := crud.PathID(c, "id")
	if err != nil {
		return apierr.HTTP(err)
	}
	a, err := h.svc.StartAppointment(c.Request().Context(), id)
	if err != nil {
		return apierr.HTTP(err)
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) FinishAppointment(c echo.Context) error {
	id, err := crud.PathID(c, "id")
	if err != nil {
		return apierr.HTTP(err)
	}
	a, err := h.svc.FinishAppointment(c.Request().Context(), id)
	if err != nil {
		return apierr.HTTP(err)
	}
	return c.JSON(http.StatusOK, a)
}
