package services

import (
	"fmt"

	"github.com/yigit/registrar/internal/pkg/apperrors"
	"github.com/yigit/registrar/internal/pkg/dberrors"
)

// Services defined in this package:
// - FacultyService: faculty listing, creation and guarded deletion
// - CourseService: course listing with faculty names, creation and guarded deletion
// - StudentService: student overview, edit view, and transactional create/replace

// asStoreError keeps classified errors as they are and wraps anything else as
// a store failure described by op. A missing required column stays a store
// failure but says so in the message.
func asStoreError(err error, op string) error {
	if apperrors.KindOf(err) != apperrors.KindUnknown {
		return err
	}
	if dberrors.IsNotNullViolation(err) {
		return apperrors.NewStoreError(op+": a required field is missing", err)
	}
	return apperrors.NewStoreError(op, err)
}

func validateID(id int64, what string) error {
	if id <= 0 {
		return apperrors.NewValidationError(fmt.Sprintf("invalid %s ID", what))
	}
	return nil
}
