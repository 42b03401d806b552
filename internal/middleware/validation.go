package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/registrar/internal/app/models/dto"
	"github.com/yigit/registrar/internal/pkg/helpers"
)

// BindJSON decodes and validates the request body into obj. On failure it
// writes the 400 response and returns false.
func BindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		RespondValidationError(c, dto.HandleValidationError(err))
		return false
	}
	return true
}

// BindID reads the :id path parameter. On failure it writes the 400
// response and returns false.
func BindID(c *gin.Context, what string) (int64, bool) {
	id, ok := helpers.ParseIDParam(c, "id")
	if !ok {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+what+" ID").
			WithField("id").
			WithDetails(what + " ID must be a positive number")
		RespondValidationError(c, detail)
		return 0, false
	}
	return id, true
}
