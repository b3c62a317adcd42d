package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Atharvasurya/punjab-alumni-sih/internal/app/models/dto"
	"github.com/Atharvasurya/punjab-alumni-sih/internal/app/services"
	"github.com/Atharvasurya/punjab-alumni-sih/internal/middleware"
)

// AdminController serves the administrative dashboard
type AdminController struct {
	adminService services.AdminService
}

// NewAdminController creates a new AdminController
func NewAdminController(adminService services.AdminService) *AdminController {
	return &AdminController{adminService: adminService}
}

// Analytics returns the dashboard counters
// @Summary Portal analytics
// @Tags admin
// @Produce json
// @Security CookieAuth
// @Success 200 {object} dto.APIResponse{data=models.Analytics}
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Router /admin/analytics [get]
func (c *AdminController) Analytics(ctx *gin.Context) {
	respond(ctx, http.StatusOK, c.adminService.Analytics())
}

// AuditLogs returns every audit entry
// @Summary Audit trail
// @Tags admin
// @Produce json
// @Security CookieAuth
// @Success 200 {object} dto.APIResponse{data=[]models.AuditLog}
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Router /admin/auditlogs [get]
func (c *AdminController) AuditLogs(ctx *gin.Context) {
	respond(ctx, http.StatusOK, c.adminService.AuditLogs())
}

// Export downloads alumni or students as CSV
// @Summary Export CSV
// @Tags admin
// @Produce text/csv
// @Security CookieAuth
// @Param type query string false "alumni (default) or students"
// @Success 200 {file} file "CSV attachment"
// @Failure 400 {object} dto.ErrorResponse "Invalid export type"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Router /admin/export [get]
func (c *AdminController) Export(ctx *gin.Context) {
	principal, ok := currentPrincipal(ctx)
	if !ok {
		return
	}
	var query dto.ExportQuery
	if !middleware.BindQuery(ctx, &query) {
		return
	}
	file, err := c.adminService.Export(ctx.Request.Context(), principal, query.Type)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", file.Filename))
	ctx.Data(http.StatusOK, "text/csv; charset=utf-8", file.Content)
}
