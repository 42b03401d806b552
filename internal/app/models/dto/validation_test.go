package dto

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bindingValidator() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	return v
}

func TestHandleValidationError_CourseIDs(t *testing.T) {
	name := "Ann"
	err := bindingValidator().Struct(StudentRequest{Name: &name, CourseIDs: []int64{1, 0}})
	require.Error(t, err)

	detail := HandleValidationError(err)

	assert.Equal(t, ErrorCodeValidationFailed, detail.Code)
	assert.Equal(t, "courseIds[1]", detail.Field)
	assert.Equal(t, "courseIds[1] must be greater than 0", detail.Message)
}

func TestHandleValidationError_NameTooLong(t *testing.T) {
	name := strings.Repeat("x", 256)
	err := bindingValidator().Struct(CreateFacultyRequest{Name: &name})
	require.Error(t, err)

	detail := HandleValidationError(err)

	assert.Equal(t, "name", detail.Field)
	assert.Equal(t, "name must be at most 255 characters", detail.Message)
}

func TestStudentRequest_AcceptsMissingFields(t *testing.T) {
	assert.NoError(t, bindingValidator().Struct(StudentRequest{}))
	assert.NoError(t, bindingValidator().Struct(CreateCourseRequest{}))
}

func TestHandleValidationError_DecodeErrors(t *testing.T) {
	var req StudentRequest
	err := json.Unmarshal([]byte(`{"courseIds":"1,2"}`), &req)
	require.Error(t, err)

	detail := HandleValidationError(err)
	assert.Equal(t, "courseIds", detail.Field)

	detail = HandleValidationError(errors.New("unexpected EOF"))
	assert.Equal(t, "Invalid request format", detail.Message)
	assert.Equal(t, "unexpected EOF", detail.Details)
}

func TestNewErrorResponse_CopiesMessage(t *testing.T) {
	resp := NewErrorResponse(NewErrorDetail(ErrorCodeResourceNotFound, "Student not found"))

	assert.False(t, resp.Success)
	assert.Equal(t, "Student not found", resp.Message)
	assert.Equal(t, ErrorSeverityError, resp.Error.Severity)
}
