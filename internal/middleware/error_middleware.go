package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/registrar/internal/app/models/dto"
	"github.com/yigit/registrar/internal/pkg/apperrors"
	"github.com/yigit/registrar/internal/pkg/logger"
)

// --- Central Error Handling Middleware/Function ---

// HandleAPIError maps an application error onto a status code and the
// standard error body. Unclassified errors are reported as store failures.
func HandleAPIError(c *gin.Context, err error) {
	var ce *apperrors.CustomError
	if !errors.As(err, &ce) {
		ce = apperrors.NewStoreError("Internal server error", err)
	}

	var (
		status int
		detail *dto.ErrorDetail
	)

	switch ce.Kind {
	case apperrors.KindNotFound:
		status = http.StatusNotFound
		detail = dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, ce.Error())
	case apperrors.KindReferentialIntegrity:
		status = http.StatusBadRequest
		detail = dto.NewErrorDetail(dto.ErrorCodeResourceInUse, ce.Error()).
			WithSeverity(dto.ErrorSeverityWarning)
	case apperrors.KindValidation:
		status = http.StatusBadRequest
		detail = dto.NewErrorDetail(dto.ErrorCodeValidationFailed, ce.Error())
	default:
		status = http.StatusInternalServerError
		detail = dto.NewErrorDetail(dto.ErrorCodeDatabaseError, ce.Error())
		if ce.Cause != nil {
			detail.WithDetails(ce.Cause.Error())
		}
		logger.Error().
			Err(apperrors.CauseOf(err)).
			Str("path", c.Request.URL.Path).
			Str("requestID", c.GetString(RequestIDKey)).
			Msg(ce.Error())
	}

	c.AbortWithStatusJSON(status, dto.NewErrorResponse(detail))
}

// RespondValidationError writes a 400 for a request that failed binding
func RespondValidationError(c *gin.Context, detail *dto.ErrorDetail) {
	c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
}
