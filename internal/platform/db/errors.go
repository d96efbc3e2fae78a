package db

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Storage-level outcomes shared by every repository.
var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
	ErrInvalid  = errors.New("invalid value")
)

// SQLSTATE codes translated by MapError.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeNotNullViolation    = "23502"
	codeCheckViolation      = "23514"
	codeInvalidText         = "22P02"
	codeInvalidDatetime     = "22007"
	codeDatetimeOverflow    = "22008"
)

// ConstraintError wraps a typed outcome with the constraint that produced it.
type ConstraintError struct {
	Kind       error
	Constraint string
	Detail     string
}

func (e *ConstraintError) Error() string {
	msg := e.Kind.Error()
	if e.Constraint != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Constraint)
	}
	if e.Detail != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Detail)
	}
	return msg
}

func (e *ConstraintError) Unwrap() error { return e.Kind }

// MapError translates driver errors into ErrNotFound, ErrConflict or
// ErrInvalid. Other errors are returned unchanged.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case codeUniqueViolation, codeForeignKeyViolation:
		return &ConstraintError{Kind: ErrConflict, Constraint: pgErr.ConstraintName, Detail: pgErr.Detail}
	case codeNotNullViolation:
		return &ConstraintError{Kind: ErrInvalid, Constraint: pgErr.ColumnName, Detail: pgErr.Message}
	case codeCheckViolation, codeInvalidText, codeInvalidDatetime, codeDatetimeOverflow:
		return &ConstraintError{Kind: ErrInvalid, Constraint: pgErr.ConstraintName, Detail: pgErr.Message}
	}
	return err
}
