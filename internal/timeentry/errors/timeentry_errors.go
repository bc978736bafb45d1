package errors

import (
	"net/http"

	"timeclock/internal/shared/apperror"
)

var (
	ErrAlreadyClockedIn = apperror.New(
		apperror.CodeConflict,
		"Already clocked in for today",
		http.StatusConflict,
	)

	ErrNoOpenEntry = apperror.New(
		apperror.CodeNotFound,
		"No clock-in found for today",
		http.StatusNotFound,
	)

	ErrAlreadyClockedOut = apperror.New(
		apperror.CodeConflict,
		"Already clocked out for today",
		http.StatusConflict,
	)

	ErrEntryNotFound = apperror.New(
		apperror.CodeNotFound,
		"Time entry not found",
		http.StatusNotFound,
	)

	ErrEntryLocked = apperror.New(
		apperror.CodeInvalidState,
		"Time entry is part of a generated payslip and can no longer change",
		http.StatusConflict,
	)

	ErrNotOvertimeRequest = apperror.New(
		apperror.CodeInvalidState,
		"Time entry has no overtime request",
		http.StatusConflict,
	)

	ErrInvalidEntryID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid time entry id",
		http.StatusBadRequest,
	)
)
