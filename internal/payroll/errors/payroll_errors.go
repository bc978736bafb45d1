package errors

import (
	"net/http"

	"timeclock/internal/shared/apperror"
)

var (
	// ErrUserNotFound is the typed replacement for the old "return null"
	// path: generation loops skip the user, direct callers get a 404.
	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"User not found for payroll calculation",
		http.StatusNotFound,
	)

	ErrInvalidWeekStart = apperror.New(
		apperror.CodeInvalidInput,
		"week_start must be a date formatted YYYY-MM-DD",
		http.StatusBadRequest,
	)
)
