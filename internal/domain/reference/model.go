package reference

// Doctor is a kind of specialist a patient must periodically visit.
// ExpiresInDays is how long a visit stays valid.
type Doctor struct {
	ID            int64  `db:"id" json:"id"`
	Name          string `db:"name" json:"name" validate:"required,max=255"`
	ExpiresInDays int    `db:"expires_in_days" json:"expires_in_days" validate:"gte=0"`
}

// Diagnostic is a periodic examination with a validity period.
type Diagnostic struct {
	ID            int64  `db:"id" json:"id"`
	Name          string `db:"name" json:"name" validate:"required,max=255"`
	ExpiresInDays int    `db:"expires_in_days" json:"expires_in_days" validate:"gte=0"`
}

// Commission is a medical board. It lists the specialists and diagnostics a
// patient referred to it has to pass.
type Commission struct {
	ID    int64  `db:"id" json:"id"`
	Title string `db:"title" json:"title" validate:"required,max=255"`
}

type CommissionSpecialization struct {
	ID               int64 `db:"id" json:"id"`
	CommissionID     int64 `db:"commission_id" json:"commission_id"`
	SpecializationID int64 `db:"specialization_id" json:"specialization_id"`
}

type CommissionDiagnostic struct {
	ID           int64 `db:"id" json:"id"`
	CommissionID int64 `db:"commission_id" json:"commission_id"`
	DiagnosticID int64 `db:"diagnostic_id" json:"diagnostic_id"`
}
