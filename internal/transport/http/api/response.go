package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"hrms/internal/domain/apperror"
)

type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type Envelope struct {
	Success   bool   `json:"success"`
	Data      any    `json:"data,omitempty"`
	Meta      any    `json:"meta,omitempty"`
	Error     *Error `json:"error,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, payload Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Warn("write json failed", "err", err)
	}
}

func Success(w http.ResponseWriter, data any, requestID string) {
	WriteJSON(w, http.StatusOK, Envelope{Success: true, Data: data, RequestID: requestID})
}

func SuccessPage(w http.ResponseWriter, data, meta any, requestID string) {
	WriteJSON(w, http.StatusOK, Envelope{Success: true, Data: data, Meta: meta, RequestID: requestID})
}

func Created(w http.ResponseWriter, data any, requestID string) {
	WriteJSON(w, http.StatusCreated, Envelope{Success: true, Data: data, RequestID: requestID})
}

func Fail(w http.ResponseWriter, status int, code, message, requestID string) {
	WriteJSON(w, status, Envelope{Success: false, Error: &Error{Code: code, Message: message}, RequestID: requestID})
}

func FailWithDetails(w http.ResponseWriter, status int, code, message string, details any, requestID string) {
	WriteJSON(w, status, Envelope{Success: false, Error: &Error{Code: code, Message: message, Details: details}, RequestID: requestID})
}

// WriteError maps a domain error onto the wire exactly once, at the
// transport boundary. Unknown errors become an opaque 500.
func WriteError(w http.ResponseWriter, err error, requestID string) {
	if v, ok := apperror.AsValidation(err); ok {
		FailWithDetails(w, http.StatusBadRequest, "validation_error", "payload validation failed",
			map[string]any{"fields": v.Issues}, requestID)
		return
	}
	switch {
	case errors.Is(err, apperror.ErrAuthorization):
		Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
	case errors.Is(err, apperror.ErrPermissionDenied):
		Fail(w, http.StatusForbidden, "forbidden", "insufficient permissions", requestID)
	case errors.Is(err, apperror.ErrNotFound):
		Fail(w, http.StatusNotFound, "not_found", "resource not found", requestID)
	case errors.Is(err, apperror.ErrAlreadyFinalized):
		Fail(w, http.StatusConflict, "already_finalized", "movement is already finalized", requestID)
	case errors.Is(err, apperror.ErrInvalidStateTransition):
		Fail(w, http.StatusConflict, "invalid_state", "operation not allowed in the current state", requestID)
	case errors.Is(err, apperror.ErrDuplicateKey):
		Fail(w, http.StatusConflict, "duplicate", "a record with the same unique value already exists", requestID)
	case errors.Is(err, apperror.ErrStoreUnavailable):
		Fail(w, http.StatusServiceUnavailable, "store_unavailable", "storage is unavailable", requestID)
	default:
		slog.Error("unhandled error", "err", err, "requestId", requestID)
		Fail(w, http.StatusInternalServerError, "internal_error", "internal server error", requestID)
	}
}
