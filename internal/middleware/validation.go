package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/Atharvasurya/punjab-alumni-sih/internal/app/models"
	"github.com/Atharvasurya/punjab-alumni-sih/internal/app/models/dto"
)

// BindJSON binds the request body into obj. On failure it writes a 400 and
// returns false.
func BindJSON(c *gin.Context, obj interface{}, what string) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+what)
		if fieldErrs := fieldErrors(err); fieldErrs.HasErrors() {
			errorDetail = errorDetail.WithField(fieldErrs.Errors[0].Field).WithDetails(fieldErrs)
		} else {
			errorDetail = errorDetail.WithDetails(err.Error())
		}
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return false
	}
	return true
}

// fieldErrors lists one entry per field rejected by a binding rule. It is
// empty when err is not a validation failure, e.g. malformed JSON.
func fieldErrors(err error) *dto.ValidationErrors {
	out := dto.NewValidationErrors()
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return out
	}
	for _, fe := range verrs {
		msg := fmt.Sprintf("%s failed the %s rule", fe.Field(), fe.Tag())
		if fe.Param() != "" {
			msg = fmt.Sprintf("%s must satisfy %s=%s", fe.Field(), fe.Tag(), fe.Param())
		}
		out.AddError(fe.Field(), msg)
	}
	return out
}

// BindQuery binds query parameters into obj. On failure it writes a 400 and
// returns false.
func BindQuery(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid query parameters")
		errorDetail = errorDetail.WithDetails(err.Error())
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return false
	}
	return true
}

// BindPatch reads a merge-patch body. The body must be a JSON object.
func BindPatch(c *gin.Context) (models.Patch, bool) {
	var patch models.Patch
	if !BindJSON(c, &patch, "update body") {
		return nil, false
	}
	if patch == nil {
		patch = models.Patch{}
	}
	return patch, true
}
