package db

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestMapError_Nil(t *testing.T) {
	if err := MapError(nil); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
}

func TestMapError_NoRows(t *testing.T) {
	err := MapError(fmt.Errorf("scan patient: %w", pgx.ErrNoRows))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestMapError_PgCodes(t *testing.T) {
	tests := []struct {
		code string
		want error
	}{
		{"23505", ErrConflict},
		{"23503", ErrConflict},
		{"23502", ErrInvalid},
		{"23514", ErrInvalid},
		{"22P02", ErrInvalid},
		{"22007", ErrInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			err := MapError(&pgconn.PgError{Code: tt.code, ConstraintName: "doctors_name_key"})
			if !errors.Is(err, tt.want) {
				t.Errorf("code %s: expected %v, got %v", tt.code, tt.want, err)
			}
		})
	}
}

func TestMapError_KeepsConstraintName(t *testing.T) {
	err := MapError(&pgconn.PgError{
		Code:           "23505",
		ConstraintName: "patient_doctors_patient_id_doctor_id_key",
		Detail:         "Key (patient_id, doctor_id)=(1, 2) already exists.",
	})

	var ce *ConstraintError
	if !errors.As(err, &ce) {
		t.Fatalf("expected *ConstraintError, got %T", err)
	}
	if ce.Constraint != "patient_doctors_patient_id_doctor_id_key" {
		t.Errorf("unexpected constraint: %s", ce.Constraint)
	}
	if !strings.Contains(err.Error(), "already exists") {
		t.Errorf("expected detail in message, got %q", err.Error())
	}
}

func TestMapError_Passthrough(t *testing.T) {
	orig := errors.New("connection reset")
	if err := MapError(orig); err != orig {
		t.Errorf("expected original error, got %v", err)
	}

	other := &pgconn.PgError{Code: "40001"}
	if err := MapError(other); err != other {
		t.Errorf("expected unmapped pg error to pass through, got %v", err)
	}
}
