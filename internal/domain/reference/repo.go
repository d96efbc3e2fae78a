package reference

import (
	"github.com/medsys/hospital/internal/platform/crud"
)

var DoctorSchema = &crud.Schema[Doctor]{
	Table:   "doctors",
	Columns: []string{"id", "name", "expires_in_days"},
	Fields: func(v *Doctor) []any {
		return []any{&v.ID, &v.Name, &v.ExpiresInDays}
	},
	Writable:   []string{"name", "expires_in_days"},
	NaturalKey: []string{"name"},
	Filters:    []string{"name"},
}

var DiagnosticSchema = &crud.Schema[Diagnostic]{
	Table:   "diagnostics",
	Columns: []string{"id", "name", "expires_in_days"},
	Fields: func(v *Diagnostic) []any {
		return []any{&v.ID, &v.Name, &v.ExpiresInDays}
	},
	Writable:   []string{"name", "expires_in_days"},
	NaturalKey: []string{"name"},
	Filters:    []string{"name"},
}

var CommissionSchema = &crud.Schema[Commission]{
	Table:   "commissions",
	Columns: []string{"id", "title"},
	Fields: func(v *Commission) []any {
		return []any{&v.ID, &v.Title}
	},
	Writable:   []string{"title"},
	NaturalKey: []string{"title"},
	Filters:    []string{"title"},
}

var CommissionSpecializationSchema = &crud.Schema[CommissionSpecialization]{
	Table:   "commission_specializations",
	Columns: []string{"id", "commission_id", "specialization_id"},
	Fields: func(v *CommissionSpecialization) []any {
		return []any{&v.ID, &v.CommissionID, &v.SpecializationID}
	},
	Writable: []string{"commission_id", "specialization_id"},
	Unique:   [][]string{{"commission_id", "specialization_id"}},
	Filters:  []string{"commission_id", "specialization_id"},
}

var CommissionDiagnosticSchema = &crud.Schema[CommissionDiagnostic]{
	Table:   "commission_diagnostics",
	Columns: []string{"id", "commission_id", "diagnostic_id"},
	Fields: func(v *CommissionDiagnostic) []any {
		return []any{&v.ID, &v.CommissionID, &v.DiagnosticID}
	},
	Writable: []string{"commission_id", "diagnostic_id"},
	Unique:   [][]string{{"commission_id", "diagnostic_id"}},
	Filters:  []string{"commission_id", "diagnostic_id"},
}

type Stores struct {
	Doctors                   crud.Store[Doctor]
	Diagnostics               crud.Store[Diagnostic]
	Commissions               crud.Store[Commission]
	CommissionSpecializations crud.Store[CommissionSpecialization]
	CommissionDiagnostics     crud.Store[CommissionDiagnostic]
}
