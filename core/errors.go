// Package core holds the seams shared by every feature package:
// config, validation, error types, db plumbing, file storage and mail.
package core

import "github.com/pkg/errors"

// FieldError ties a validation failure to the JSON field that caused it.
// The API error handler renders a set of them as a {field: message} body.
type FieldError struct {
	Field string
	Error string
}

// ValidationError carries form failures raised outside the struct
// validator, e.g. a submitted opening_id that matches no job opening.
// With no Fields it renders as a plain {"error": message} body.
type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{Err: err, Fields: flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

// shutdown marks an integrity problem the server cannot safely continue
// from; the API error handler answers 500 and signals a graceful stop.
type shutdown struct {
	message string
}

func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string {
	return s.message
}

func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}
