package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/medsys/hospital/internal/platform/auth"
)

const apiPrefix = "/api/v1/"

// auditedResources are the collections whose access is logged: patient
// identity and everything in the clinical record.
var auditedResources = map[string]bool{
	"patients":          true,
	"medical-records":   true,
	"diagnoses":         true,
	"procedure-records": true,
	"appointments":      true,
	"prescriptions":     true,
}

// AuditEntry captures who touched which patient data, when and how.
type AuditEntry struct {
	UserID     string
	UserRoles  []string
	Resource   string
	ResourceID int64
	PatientID  int64
	Action     string
	Method     string
	Path       string
	IPAddress  string
	UserAgent  string
	RequestID  string
	StatusCode int
	Timestamp  time.Time
}

// Audit logs an "access" event for every request to an audited resource
// after the handler has run. Entries go to the structured log only.
func Audit(logger zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			resource, id := splitResource(req.URL.Path)
			if !auditedResources[resource] {
				return next(c)
			}

			err := next(c)

			entry := AuditEntry{
				UserID:     auth.UserIDFromContext(req.Context()),
				UserRoles:  auth.RolesFromContext(req.Context()),
				Resource:   resource,
				ResourceID: id,
				PatientID:  extractPatientID(c, resource, id),
				Action:     httpMethodToAction(req.Method),
				Method:     req.Method,
				Path:       req.URL.Path,
				IPAddress:  c.RealIP(),
				UserAgent:  req.UserAgent(),
				StatusCode: c.Response().Status,
				Timestamp:  time.Now().UTC(),
			}
			entry.RequestID, _ = c.Get("request_id").(string)
			if err != nil {
				entry.StatusCode = http.StatusInternalServerError
				if he, ok := err.(*echo.HTTPError); ok {
					entry.StatusCode = he.Code
				}
			}

			evt := logger.Info().
				Str("type", "audit").
				Str("request_id", entry.RequestID).
				Str("user_id", entry.UserID).
				Strs("user_roles", entry.UserRoles).
				Str("resource", entry.Resource).
				Str("action", entry.Action).
				Str("method", entry.Method).
				Str("path", entry.Path).
				Str("remote_ip", entry.IPAddress).
				Str("user_agent", entry.UserAgent).
				Int("status", entry.StatusCode)
			if entry.ResourceID > 0 {
				evt = evt.Int64("resource_id", entry.ResourceID)
			}
			if entry.PatientID > 0 {
				evt = evt.Int64("patient_id", entry.PatientID)
			}
			evt.Msg("patient_data_access")

			return err
		}
	}
}

// splitResource returns the collection and, when present and numeric, the
// id segment of an /api/v1 path.
func splitResource(path string) (string, int64) {
	if !strings.HasPrefix(path, apiPrefix) {
		return "", 0
	}
	segments := strings.Split(strings.TrimPrefix(path, apiPrefix), "/")
	if len(segments) == 0 || segments[0] == "" {
		return "", 0
	}
	var id int64
	if len(segments) > 1 {
		if n, err := strconv.ParseInt(segments[1], 10, 64); err == nil && n > 0 {
			id = n
		}
	}
	return segments[0], id
}

func httpMethodToAction(method string) string {
	switch method {
	case http.MethodPost:
		return "create"
	case http.MethodPut, http.MethodPatch:
		return "update"
	case http.MethodDelete:
		return "delete"
	default:
		return "read"
	}
}

// extractPatientID finds the patient a request concerns: the id segment of
// /patients/<id> or a patient_id query parameter on other resources.
func extractPatientID(c echo.Context, resource string, id int64) int64 {
	if resource == "patients" && id > 0 {
		return id
	}
	if raw := c.QueryParam("patient_id"); raw != "" {
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil && n > 0 {
			return n
		}
	}
	return 0
}
