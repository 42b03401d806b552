package dto

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// HandleValidationError converts a binding failure into an ErrorDetail.
// Validator errors list each offending field; decode errors are reported as
// an invalid request format.
func HandleValidationError(err error) *ErrorDetail {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		list := NewValidationErrors()
		for _, fe := range verrs {
			list.AddError(jsonFieldName(fe), formatValidationError(fe))
		}
		detail := NewErrorDetail(ErrorCodeValidationFailed, list.Errors[0].Message).
			WithDetails(list.Errors)
		if len(list.Errors) == 1 {
			detail.WithField(list.Errors[0].Field)
		}
		return detail
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return NewErrorDetail(ErrorCodeValidationFailed, typeErr.Field+" has the wrong type").
			WithField(typeErr.Field)
	}

	return NewErrorDetail(ErrorCodeValidationFailed, "Invalid request format").WithDetails(err.Error())
}

// jsonFieldName turns StudentRequest.CourseIDs[0] into courseIds[0]
func jsonFieldName(fe validator.FieldError) string {
	name := fe.Field()
	if name == "" {
		return name
	}
	switch {
	case strings.HasPrefix(name, "CourseIDs"):
		return "courseIds" + strings.TrimPrefix(name, "CourseIDs")
	case strings.HasPrefix(name, "FacultyID"):
		return "facultyId"
	case strings.HasPrefix(name, "AdvisorID"):
		return "advisorId"
	}
	return strings.ToLower(name[:1]) + name[1:]
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(fe validator.FieldError) string {
	field := jsonFieldName(fe)
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min":
		return field + " must be at least " + fe.Param()
	case "max":
		return field + " must be at most " + fe.Param() + " characters"
	case "gt":
		return field + " must be greater than " + fe.Param()
	default:
		return field + " validation failed: " + fe.Tag()
	}
}
