package employeeerrors

import (
	"net/http"

	"leavehub/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrDuplicateEmail = apperror.New(
		apperror.CodeConflict,
		"Employee with this email already exists",
		http.StatusConflict,
	)
	ErrInvalidJoiningDate = apperror.New(
		apperror.CodeInvalidInput,
		"invalid joining_date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrJoiningDateInFuture = apperror.New(
		apperror.CodeInvalidInput,
		"Joining date cannot be in the future",
		http.StatusBadRequest,
	)
	ErrViewOwnProfileOnly = apperror.New(
		apperror.CodeForbidden,
		"You can only view your own profile",
		http.StatusForbidden,
	)
	ErrUpdateOwnProfileOnly = apperror.New(
		apperror.CodeForbidden,
		"You can only update your own profile",
		http.StatusForbidden,
	)
	ErrRoleChangeForbidden = apperror.New(
		apperror.CodeForbidden,
		"Only HR can change an employee's role",
		http.StatusForbidden,
	)
	ErrAlreadyInactive = apperror.New(
		apperror.CodeInvalidState,
		"Employee is already inactive",
		http.StatusBadRequest,
	)
)
