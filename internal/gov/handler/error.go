package handler

import (
	"errors"
	"net/http"

	"admingov/internal/gov/model"
	"admingov/internal/gov/service"
)

// Helper to map errors to HTTP status and body
func httpError(err error) (int, interface{}) {
	var code string
	var msg string
	var status int

	switch {
	case errors.Is(err, service.ErrForbidden):
		status = http.StatusForbidden
		code = "forbidden"
		msg = "Permission denied"
	case errors.Is(err, service.ErrConflict):
		status = http.StatusConflict
		code = "conflict"
		msg = "A pending request of this type already exists for the target"
	case errors.Is(err, service.ErrAlreadyProcessed):
		status = http.StatusConflict
		code = "already_processed"
		msg = "Request has already been processed"
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
		code = "not_found"
		msg = "Resource not found"
	case errors.Is(err, service.ErrValidation):
		status = http.StatusBadRequest
		code = "bad_request"
		msg = err.Error()
	case errors.Is(err, service.ErrUnauthorized):
		status = http.StatusUnauthorized
		code = "unauthorized"
		msg = "Unauthorized"
	default:
		status = http.StatusInternalServerError
		code = "internal_error"
		msg = err.Error()
	}

	return status, model.ErrorResponse{
		Error: model.ErrorDetail{Code: code, Message: msg},
	}
}
