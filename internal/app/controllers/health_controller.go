package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Atharvasurya/punjab-alumni-sih/internal/app/models/dto"
)

// HealthController reports liveness
type HealthController struct {
	storeDriver string
}

// NewHealthController creates a new HealthController
func NewHealthController(storeDriver string) *HealthController {
	return &HealthController{storeDriver: storeDriver}
}

// Check godoc
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.HealthResponse}
// @Router /health [get]
func (c *HealthController) Check(ctx *gin.Context) {
	respond(ctx, http.StatusOK, dto.HealthResponse{Status: "ok", Store: c.storeDriver})
}
