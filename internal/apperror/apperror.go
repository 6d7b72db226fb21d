package apperror

import (
	"errors"
	"net/http"
)

// AppError is the operational error type carried from services up to the HTTP
// layer. StatusCode drives the response; Status is "fail" for 4xx and "error"
// for everything else.
type AppError struct {
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
	Status     string `json:"status"`
}

func (e *AppError) Error() string {
	return e.Message
}

func New(message string, statusCode int) *AppError {
	status := "error"
	if statusCode >= 400 && statusCode < 500 {
		status = "fail"
	}
	return &AppError{
		Message:    message,
		StatusCode: statusCode,
		Status:     status,
	}
}

func BadRequest(message string) *AppError {
	return New(message, http.StatusBadRequest)
}

func Unauthorized(message string) *AppError {
	return New(message, http.StatusUnauthorized)
}

func Forbidden(message string) *AppError {
	return New(message, http.StatusForbidden)
}

func NotFound(message string) *AppError {
	return New(message, http.StatusNotFound)
}

func Conflict(message string) *AppError {
	return New(message, http.StatusConflict)
}

func Validation(message string) *AppError {
	return New(message, http.StatusUnprocessableEntity)
}

func Internal(message string) *AppError {
	return New(message, http.StatusInternalServerError)
}

func Unavailable(message string) *AppError {
	return New(message, http.StatusServiceUnavailable)
}

// From extracts the *AppError from err, or wraps it as a 500.
func From(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(err.Error())
}

// Is reports whether err is an AppError with the given status code.
func Is(err error, statusCode int) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.StatusCode == statusCode
}
