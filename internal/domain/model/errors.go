package model

import "errors"

var (
	ErrDeviceNotFound      = errors.New("device not found")
	ErrMeasurementNotFound = errors.New("measurement not found")
	ErrDuplicateDeviceName = errors.New("device name already exists")
	ErrInvalidDeviceID     = errors.New("invalid device ID")
	ErrInvalidDeviceType   = errors.New("invalid device type")
	ErrStorageUnavailable  = errors.New("storage unavailable")
	ErrDatabaseQuery       = errors.New("database query error")
)

// ValidationError describes one rejected input field, detected before the
// query ever reaches the persistence engine.
type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors struct {
	Errors []ValidationError
}

func (v *ValidationErrors) Error() string {
	if len(v.Errors) == 0 {
		return "validation failed"
	}

	return v.Errors[0].Message
}

func (v *ValidationErrors) Add(field, message string) {
	v.Errors = append(v.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

func (v *ValidationErrors) HasErrors() bool {
	return len(v.Errors) > 0
}

func NewValidationErrors() *ValidationErrors {
	return &ValidationErrors{
		Errors: make([]ValidationError, 0),
	}
}
