package apperrors

import "errors"

// Kind classifies an application error for the HTTP layer
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindReferentialIntegrity
	KindStore
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindReferentialIntegrity:
		return "referential_integrity"
	case KindStore:
		return "store"
	case KindValidation:
		return "validation"
	default:
		return "unknown"
	}
}

var (
	ErrResourceNotFound     = errors.New("resource not found")
	ErrReferentialIntegrity = errors.New("resource is still referenced")
	ErrStore                = errors.New("store failure")
	ErrValidationFailed     = errors.New("validation failed")
)

// Registrar-specific reasons returned to clients
var (
	ErrStudentNotFound = NewNotFoundError("Student not found")
	ErrFacultyInUse    = NewReferentialIntegrityError("Cannot delete faculty: they are assigned as an advisor or to a course.", nil)
	ErrCourseInUse     = NewReferentialIntegrityError("Cannot delete course: students are enrolled in it.", nil)
)

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Kind    Kind
	Err     error
	Message string
	// Cause is the underlying driver error, if any
	Cause error
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Cause != nil {
		return e.Cause.Error()
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap exposes both the kind sentinel and the driver cause to errors.Is/As.
func (e *CustomError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}
	return errs
}

// Is matches another CustomError of the same kind and message, so package
// level reasons like ErrFacultyInUse work with errors.Is even when a fresh
// copy carries a cause.
func (e *CustomError) Is(target error) bool {
	t, ok := target.(*CustomError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Message == t.Message
}

// WithCause returns a copy of e carrying cause
func (e *CustomError) WithCause(cause error) *CustomError {
	cp := *e
	cp.Cause = cause
	return &cp
}

func NewNotFoundError(message string) *CustomError {
	return &CustomError{Kind: KindNotFound, Err: ErrResourceNotFound, Message: message}
}

func NewReferentialIntegrityError(message string, cause error) *CustomError {
	return &CustomError{Kind: KindReferentialIntegrity, Err: ErrReferentialIntegrity, Message: message, Cause: cause}
}

// NewStoreError wraps an unexpected driver failure. The message names the
// operation; the raw error stays reachable through Cause.
func NewStoreError(message string, cause error) *CustomError {
	return &CustomError{Kind: KindStore, Err: ErrStore, Message: message, Cause: cause}
}

func NewValidationError(message string) *CustomError {
	return &CustomError{Kind: KindValidation, Err: ErrValidationFailed, Message: message}
}

// KindOf reports the Kind of the first CustomError in err's chain.
func KindOf(err error) Kind {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return KindUnknown
}

// CauseOf returns the driver cause carried by err, or err itself.
func CauseOf(err error) error {
	var ce *CustomError
	if errors.As(err, &ce) && ce.Cause != nil {
		return ce.Cause
	}
	return err
}
