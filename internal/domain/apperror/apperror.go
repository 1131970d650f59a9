package apperror

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by every domain package. Handlers translate
// them to HTTP statuses exactly once, at the transport boundary.
var (
	ErrAuthorization          = errors.New("authorization required")
	ErrPermissionDenied       = errors.New("permission denied")
	ErrNotFound               = errors.New("not found")
	ErrAlreadyFinalized       = errors.New("already finalized")
	ErrInvalidStateTransition = errors.New("invalid state transition")
	ErrDuplicateKey           = errors.New("duplicate key")
	ErrStoreUnavailable       = errors.New("store unavailable")
)

type FieldIssue struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError carries field-level detail for malformed input.
type ValidationError struct {
	Issues []FieldIssue
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 1 {
		return fmt.Sprintf("validation failed: %s %s", e.Issues[0].Field, e.Issues[0].Reason)
	}
	return fmt.Sprintf("validation failed: %d issues", len(e.Issues))
}

func Validation(field, reason string) error {
	return &ValidationError{Issues: []FieldIssue{{Field: field, Reason: reason}}}
}

func ValidationIssues(issues []FieldIssue) error {
	if len(issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: issues}
}

func AsValidation(err error) (*ValidationError, bool) {
	var v *ValidationError
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}
