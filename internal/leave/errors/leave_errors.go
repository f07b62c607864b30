package leaveerrors

import (
	"fmt"
	"net/http"

	"leavehub/internal/shared/apperror"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidLeaveTypeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid leave type id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"Start date cannot be after end date",
		http.StatusBadRequest,
	)
	ErrPastDate = apperror.New(
		apperror.CodeInvalidInput,
		"Cannot apply for leave in the past",
		http.StatusBadRequest,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found or inactive",
		http.StatusNotFound,
	)
	ErrBeforeJoiningDate = apperror.New(
		apperror.CodeInvalidInput,
		"Cannot apply for leave before joining date",
		http.StatusBadRequest,
	)
	ErrHalfDayMultipleDays = apperror.New(
		apperror.CodeInvalidInput,
		"Half-day leave must be for a single day",
		http.StatusBadRequest,
	)
	ErrHalfDayNonWorkingDay = apperror.New(
		apperror.CodeInvalidInput,
		"Half-day leave must be on a working day (Mon-Fri)",
		http.StatusBadRequest,
	)
	ErrHalfDayOnHoliday = apperror.New(
		apperror.CodeInvalidInput,
		"Half-day leave cannot be on a public holiday",
		http.StatusBadRequest,
	)
	ErrHalfDaySessionRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Half-day session (AM or PM) is required",
		http.StatusBadRequest,
	)
	ErrLeaveOverlap = apperror.New(
		apperror.CodeConflict,
		"You have overlapping leave requests for these dates",
		http.StatusConflict,
	)
	ErrNoWorkingDays = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid date range or no working days selected",
		http.StatusBadRequest,
	)
	ErrMaternityFemaleOnly = apperror.New(
		apperror.CodeInvalidInput,
		"Maternity leave is available only to female employees",
		http.StatusBadRequest,
	)
	ErrPaternityMaleOnly = apperror.New(
		apperror.CodeInvalidInput,
		"Paternity leave is available only to male employees",
		http.StatusBadRequest,
	)
	ErrHalfDayNotAllowedForType = apperror.New(
		apperror.CodeInvalidInput,
		"Half-day is not allowed for Maternity/Paternity leave",
		http.StatusBadRequest,
	)
	ErrBalanceNotFound = apperror.New(
		apperror.CodeInvalidInput,
		"Leave balance not found for this leave type",
		http.StatusBadRequest,
	)
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"Leave request not found",
		http.StatusNotFound,
	)
	ErrRejectionReasonRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Rejection reason is required when rejecting a leave request",
		http.StatusBadRequest,
	)
	ErrRejectionReasonTooShort = apperror.New(
		apperror.CodeInvalidInput,
		"Rejection reason must be at least 10 characters",
		http.StatusBadRequest,
	)
	ErrViewOwnRequestsOnly = apperror.New(
		apperror.CodeForbidden,
		"You can only view your own leave requests",
		http.StatusForbidden,
	)
	ErrCancelOwnRequestsOnly = apperror.New(
		apperror.CodeForbidden,
		"You can only cancel your own leave requests",
		http.StatusForbidden,
	)
)

// InsufficientBalance reports the remaining allotment so the employee
// knows how much is actually left.
func InsufficientBalance(remaining decimal.Decimal, leaveTypeName string) *apperror.AppError {
	return apperror.New(
		apperror.CodeInvalidInput,
		fmt.Sprintf("Insufficient leave balance. You have %s days remaining for %s",
			remaining.String(), leaveTypeName),
		http.StatusBadRequest,
	)
}

// AlreadyProcessed signals a transition attempted after the request left
// the pending state.
func AlreadyProcessed(status string) *apperror.AppError {
	return apperror.New(
		apperror.CodeInvalidState,
		fmt.Sprintf("Leave request is already %s", status),
		http.StatusBadRequest,
	)
}

func CannotCancel(status string) *apperror.AppError {
	return apperror.New(
		apperror.CodeInvalidState,
		fmt.Sprintf("Cannot cancel %s leave request", status),
		http.StatusBadRequest,
	)
}
