package util

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestToDomainErrorPassesThroughDomainErrors(t *testing.T) {
	err := NewForbidden("nope")
	de := ToDomainError(err)
	if de.Code != "FORBIDDEN" || de.HTTPStatus != 403 {
		t.Errorf("unexpected mapping: %+v", de)
	}
}

func TestToDomainErrorMapsNoRowsToNotFound(t *testing.T) {
	de := ToDomainError(fmt.Errorf("lookup: %w", pgx.ErrNoRows))
	if de.Code != "NOT_FOUND" || de.HTTPStatus != 404 {
		t.Errorf("unexpected mapping: %+v", de)
	}
}

func TestToDomainErrorMapsUniqueViolationToValidation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}
	de := ToDomainError(fmt.Errorf("insert user: %w", pgErr))
	if de.Code != "VALIDATION_FAILED" || de.HTTPStatus != 400 {
		t.Errorf("unique violation should map to 400 validation, got %+v", de)
	}
}

func TestToDomainErrorHidesUnknownErrors(t *testing.T) {
	de := ToDomainError(errors.New("password hash for ADMIN01 is ..."))
	if de.Code != "INTERNAL_ERROR" || de.HTTPStatus != 500 {
		t.Errorf("unexpected mapping: %+v", de)
	}
	if de.Message != "internal server error" {
		t.Errorf("internal detail leaked: %q", de.Message)
	}
}
