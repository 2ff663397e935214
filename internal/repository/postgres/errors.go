package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	apperrors "github.com/jwalitptl/medidesk-api/pkg/errors"
)

const (
	codeUniqueViolation     pq.ErrorCode = "23505"
	codeForeignKeyViolation pq.ErrorCode = "23503"
	codeCheckViolation      pq.ErrorCode = "23514"
	codeNotNullViolation    pq.ErrorCode = "23502"
	codeInvalidDatetime     pq.ErrorCode = "22007"
	codeDatetimeOverflow    pq.ErrorCode = "22008"
	codeInvalidText         pq.ErrorCode = "22P02"
	codeNumericOverflow     pq.ErrorCode = "22003"
)

// Constraint names are fixed by the migrations.
var uniqueMessages = map[string]string{
	"uq_users_username":            "Username already exists",
	"uq_rooms_room_number":         "Room number already exists",
	"uq_ambulances_vehicle_number": "Vehicle number already exists",
}

var foreignKeyMessages = map[string]string{
	"fk_appointments_patient": "patient does not exist",
	"fk_appointments_doctor":  "doctor does not exist",
	"fk_invoices_patient":     "patient does not exist",
	"fk_rooms_patient":        "patient does not exist",
}

// mapWriteError converts constraint violations raised by INSERT or UPDATE.
func mapWriteError(err error, action string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case codeUniqueViolation:
			msg, ok := uniqueMessages[pqErr.Constraint]
			if !ok {
				msg = "record already exists"
			}
			return apperrors.Conflict(msg, err)
		case codeForeignKeyViolation:
			msg, ok := foreignKeyMessages[pqErr.Constraint]
			if !ok {
				msg = "referenced record does not exist"
			}
			return apperrors.Validation("%s", msg)
		case codeCheckViolation:
			return apperrors.Validation("invalid value (%s)", pqErr.Constraint)
		case codeNotNullViolation:
			return apperrors.Validation("%s is required", pqErr.Column)
		case codeInvalidDatetime, codeDatetimeOverflow, codeInvalidText:
			return apperrors.Validation("malformed value")
		case codeNumericOverflow:
			return apperrors.Validation("numeric value out of range")
		}
	}
	return fmt.Errorf("failed to %s: %w", action, err)
}

// mapDeleteError turns a foreign key violation into a conflict: the row is still referenced.
func mapDeleteError(err error, resource string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == codeForeignKeyViolation {
		return apperrors.Conflict(fmt.Sprintf("%s has dependent records", resource), err)
	}
	return fmt.Errorf("failed to delete %s: %w", resource, err)
}

func mapGetError(err error, resource string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.NotFound(resource, err)
	}
	return fmt.Errorf("failed to get %s: %w", resource, err)
}

func requireAffected(res sql.Result, resource string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return apperrors.NotFound(resource, nil)
	}
	return nil
}
