// Package apperror defines the error vocabulary services speak to
// handlers: a stable code, a user-facing message, and the HTTP status the
// message should travel with. Feature packages declare their sentinels in
// their own errors/ sub-package and compare with errors.Is.
package apperror

type AppError struct {
	Code       string
	Message    string
	HTTPStatus int
}

func (e *AppError) Error() string {
	return e.Message
}

func New(code, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}
