// Package controllers handles HTTP request handling
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Atharvasurya/punjab-alumni-sih/internal/app/auth"
	"github.com/Atharvasurya/punjab-alumni-sih/internal/app/models/dto"
	"github.com/Atharvasurya/punjab-alumni-sih/internal/middleware"
)

// currentPrincipal returns the authenticated caller or writes a 401
func currentPrincipal(ctx *gin.Context) (*auth.Principal, bool) {
	principal, ok := middleware.GetPrincipal(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Unauthorized")
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return nil, false
	}
	return principal, true
}

func respond(ctx *gin.Context, status int, data interface{}) {
	ctx.JSON(status, dto.NewAPIResponse(data))
}
