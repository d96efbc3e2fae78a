package clinical

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/medsys/hospital/internal/platform/apierr"
	"github.com/medsys/hospital/internal/platform/auth"
)

func serve(e *echo.Echo, method, target, body string, roles ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	req = req.WithContext(context.WithValue(req.Context(), auth.UserRolesKey, roles))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func newTestServer(t *testing.T) (*echo.Echo, *fixture) {
	f := newFixture(t)
	e := echo.New()
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		he := apierr.HTTP(err)
		c.JSON(he.Code, apierr.NewBody(he))
	}
	NewHandler(f.svc).RegisterRoutes(e.Group("/api/v1"))
	return e, f
}

func TestHandler_RecordLifecycle(t *testing.T) {
	e, _ := newTestServer(t)

	body := `{"staff_id":1,"patient_id":1,"specialists_notes":"flu","staff_secret":"pa55word"}`
	rec := serve(e, http.MethodPost, "/api/v1/medical-records", body, auth.RoleNurse)
	if rec.Code != http.StatusForbidden {
		t.Errorf("expected 403 for nurse, got %d", rec.Code)
	}
	rec = serve(e, http.MethodPost, "/api/v1/medical-records", body, auth.RolePhysician)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create record: %d %s", rec.Code, rec.Body.String())
	}
	if strings.Contains(rec.Body.String(), "staff_secret") || strings.Contains(rec.Body.String(), "pa55word") {
		t.Errorf("record response leaks the secret: %s", rec.Body.String())
	}

	rec = serve(e, http.MethodPost, "/api/v1/medical-records/1/verify", `{"staff_secret":"pa55word"}`, auth.RoleNurse)
	var v Verification
	json.Unmarshal(rec.Body.Bytes(), &v)
	if rec.Code != http.StatusOK || !v.SignatureValid || !v.ContentIntact {
		t.Errorf("verify: %d %s", rec.Code, rec.Body.String())
	}

	rec = serve(e, http.MethodPut, "/api/v1/medical-records/1", body, auth.RolePhysician)
	if rec.Code < http.StatusBadRequest {
		t.Errorf("expected records to be immutable, got %d", rec.Code)
	}

	rec = serve(e, http.MethodPost, "/api/v1/medical-records", `{"staff_id":1,"patient_id":1,"staff_secret":"pa55word"}`, auth.RolePhysician)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 without notes, got %d", rec.Code)
	}

	rec = serve(e, http.MethodGet, "/api/v1/patients/1/medical-records", "", auth.RoleRegistrar)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"total":1`) {
		t.Errorf("patient records: %d %s", rec.Code, rec.Body.String())
	}
}

func TestHandler_DiagnosesAndDiseases(t *testing.T) {
	e, f := newTestServer(t)
	f.record(t)

	rec := serve(e, http.MethodPut, "/api/v1/diseases", `{"code":"J10","title":"Influenza","source":10}`, auth.RolePhysician)
	if rec.Code != http.StatusOK {
		t.Fatalf("upsert disease: %d %s", rec.Code, rec.Body.String())
	}
	rec = serve(e, http.MethodPost, "/api/v1/diagnoses", `{"record_id":1,"disease_id":1}`, auth.RolePhysician)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create diagnosis: %d %s", rec.Code, rec.Body.String())
	}
	rec = serve(e, http.MethodPost, "/api/v1/diagnoses", `{"record_id":1,"disease_id":1}`, auth.RolePhysician)
	if rec.Code != http.StatusConflict {
		t.Errorf("expected 409 for duplicate diagnosis, got %d", rec.Code)
	}
	rec = serve(e, http.MethodPost, "/api/v1/diagnoses", `{"record_id":1,"disease_id":4}`, auth.RolePhysician)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for missing disease, got %d", rec.Code)
	}
	rec = serve(e, http.MethodGet, "/api/v1/medical-records/1/diagnoses", "", auth.RoleNurse)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"disease_id":1`) {
		t.Errorf("record diagnoses: %d %s", rec.Code, rec.Body.String())
	}
}

func TestHandler_Appointments(t *testing.T) {
	e, _ := newTestServer(t)

	rec := serve(e, http.MethodPost, "/api/v1/appointments",
		`{"staff_id":1,"scheduled_at":"2024-06-01T09:00:00Z","valid_until":"2024-06-01T12:00:00Z"}`, auth.RoleRegistrar)
	if rec.Code != http.StatusCreated {
		t.Fatalf("book: %d %s", rec.Code, rec.Body.String())
	}
	rec = serve(e, http.MethodPost, "/api/v1/appointments",
		`{"staff_id":1,"scheduled_at":"2024-06-01T09:00:00Z","valid_until":"2024-06-01T08:00:00Z"}`, auth.RoleRegistrar)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for a reversed window, got %d", rec.Code)
	}
	rec = serve(e, http.MethodPost, "/api/v1/appointments/1/start", "", auth.RolePhysician)
	if rec.Code != http.StatusOK {
		t.Errorf("start: %d %s", rec.Code, rec.Body.String())
	}
	rec = serve(e, http.MethodGet, "/api/v1/staff/1/appointments", "", auth.RoleNurse)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"total":1`) {
		t.Errorf("staff appointments: %d %s", rec.Code, rec.Body.String())
	}
}

func TestHandler_RecordSecretTooLong(t *testing.T) {
	e, f := newTestServer(t)

	body := `{"staff_id":1,"patient_id":1,"specialists_notes":"flu","staff_secret":"` + strings.Repeat("я", 40) + `"}`
	rec := serve(e, http.MethodPost, "/api/v1/medical-records", body, auth.RolePhysician)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for an 80-byte secret, got %d %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "staff_secret") {
		t.Errorf("expected staff_secret in the error details, got %s", rec.Body.String())
	}
	if n := f.st.Records.(interface{ Len() int }).Len(); n != 0 {
		t.Errorf("expected no stored record, got %d", n)
	}
}

func TestHandler_AppointmentStateIsServerSide(t *testing.T) {
	e, _ := newTestServer(t)

	rec := serve(e, http.MethodPost, "/api/v1/appointments",
		`{"staff_id":1,"scheduled_at":"2024-06-01T09:00:00Z","valid_until":"2024-06-01T12:00:00Z",`+
			`"took_place":true,"ended_at":"2024-06-01T09:30:00Z"}`, auth.RoleRegistrar)
	if rec.Code != http.StatusCreated {
		t.Fatalf("book: %d %s", rec.Code, rec.Body.String())
	}
	var booked Appointment
	json.Unmarshal(rec.Body.Bytes(), &booked)
	if booked.TookPlace || booked.EndedAt != nil || booked.StartedAt != nil {
		t.Fatalf("client-supplied appointment state must be ignored, got %+v", booked)
	}

	rec = serve(e, http.MethodPost, "/api/v1/appointments/1/finish", "", auth.RolePhysician)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 finishing an unstarted appointment, got %d", rec.Code)
	}
	rec = serve(e, http.MethodPost, "/api/v1/appointments/1/start", "", auth.RolePhysician)
	if rec.Code != http.StatusOK {
		t.Fatalf("start: %d %s", rec.Code, rec.Body.String())
	}

	rec = serve(e, http.MethodPut, "/api/v1/appointments/1",
		`{"staff_id":1,"scheduled_at":"2024-06-01T09:00:00Z","valid_until":"2024-06-01T13:00:00Z","took_place":true}`, auth.RoleRegistrar)
	if rec.Code != http.StatusOK {
		t.Fatalf("update: %d %s", rec.Code, rec.Body.String())
	}
	var updated Appointment
	json.Unmarshal(rec.Body.Bytes(), &updated)
	if updated.StartedAt == nil || updated.TookPlace || !updated.ValidUntil.Equal(testNow.Add(3*time.Hour)) {
		t.Errorf("update must keep server-managed state, got %+v", updated)
	}
}
