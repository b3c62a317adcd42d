package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Atharvasurya/punjab-alumni-sih/internal/app/models"
	"github.com/Atharvasurya/punjab-alumni-sih/internal/app/models/dto"
	"github.com/Atharvasurya/punjab-alumni-sih/internal/app/services"
	"github.com/Atharvasurya/punjab-alumni-sih/internal/middleware"
)

// OpportunityController handles opportunity postings
type OpportunityController struct {
	opportunityService services.OpportunityService
}

// NewOpportunityController creates a new OpportunityController
func NewOpportunityController(opportunityService services.OpportunityService) *OpportunityController {
	return &OpportunityController{opportunityService: opportunityService}
}

// List returns every opportunity
// @Summary List opportunities
// @Tags opportunities
// @Produce json
// @Security CookieAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Opportunity}
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /opportunities [get]
func (c *OpportunityController) List(ctx *gin.Context) {
	respond(ctx, http.StatusOK, c.opportunityService.List())
}

// Get returns one opportunity
// @Summary Get opportunity
// @Tags opportunities
// @Produce json
// @Security CookieAuth
// @Param id path string true "Opportunity ID"
// @Success 200 {object} dto.APIResponse{data=models.Opportunity}
// @Failure 404 {object} dto.ErrorResponse "Opportunity not found"
// @Router /opportunities/{id} [get]
func (c *OpportunityController) Get(ctx *gin.Context) {
	opportunity, err := c.opportunityService.Get(ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, opportunity)
}

// Create posts a new opportunity
// @Summary Post opportunity
// @Description The caller becomes the poster. The id is generated when omitted.
// @Tags opportunities
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param request body models.Opportunity true "Opportunity"
// @Success 201 {object} dto.APIResponse{data=models.Opportunity}
// @Failure 400 {object} dto.ErrorResponse "Invalid opportunity data"
// @Failure 409 {object} dto.ErrorResponse "Id already in use"
// @Router /opportunities [post]
func (c *OpportunityController) Create(ctx *gin.Context) {
	principal, ok := currentPrincipal(ctx)
	if !ok {
		return
	}
	var opportunity models.Opportunity
	if !middleware.BindJSON(ctx, &opportunity, "opportunity data") {
		return
	}
	created, err := c.opportunityService.Create(ctx.Request.Context(), principal, &opportunity)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, created)
}

// Update merge-patches an opportunity
// @Summary Update opportunity
// @Description The poster or an admin may update
// @Tags opportunities
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param id path string true "Opportunity ID"
// @Param request body object true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=models.Opportunity}
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Opportunity not found"
// @Router /opportunities/{id} [put]
func (c *OpportunityController) Update(ctx *gin.Context) {
	principal, ok := currentPrincipal(ctx)
	if !ok {
		return
	}
	patch, ok := middleware.BindPatch(ctx)
	if !ok {
		return
	}
	updated, err := c.opportunityService.Update(ctx.Request.Context(), principal, ctx.Param("id"), patch)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, updated)
}

// Delete removes an opportunity
// @Summary Delete opportunity
// @Description The poster or an admin may delete
// @Tags opportunities
// @Produce json
// @Security CookieAuth
// @Param id path string true "Opportunity ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Opportunity not found"
// @Router /opportunities/{id} [delete]
func (c *OpportunityController) Delete(ctx *gin.Context) {
	principal, ok := currentPrincipal(ctx)
	if !ok {
		return
	}
	if err := c.opportunityService.Delete(ctx.Request.Context(), principal, ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, dto.SuccessResponse{Message: "Opportunity deleted successfully"})
}

// Apply submits an application from the caller
// @Summary Apply to opportunity
// @Description Students and alumni only. Applying twice is rejected.
// @Tags opportunities
// @Produce json
// @Security CookieAuth
// @Param id path string true "Opportunity ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Opportunity not found"
// @Failure 409 {object} dto.ErrorResponse "Already applied"
// @Router /opportunities/{id}/apply [post]
func (c *OpportunityController) Apply(ctx *gin.Context) {
	principal, ok := currentPrincipal(ctx)
	if !ok {
		return
	}
	if err := c.opportunityService.Apply(ctx.Request.Context(), principal, ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, dto.SuccessResponse{Message: "Application submitted successfully"})
}

// SetApplicationStatus accepts or rejects an application
// @Summary Set application status
// @Description The poster or an admin may change the status
// @Tags opportunities
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param id path string true "Opportunity ID"
// @Param userId path string true "Applicant identity"
// @Param request body dto.ApplicationStatusRequest true "New status"
// @Success 200 {object} dto.APIResponse{data=models.Opportunity}
// @Failure 400 {object} dto.ErrorResponse "Invalid status"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Opportunity or application not found"
// @Router /opportunities/{id}/applications/{userId} [put]
func (c *OpportunityController) SetApplicationStatus(ctx *gin.Context) {
	principal, ok := currentPrincipal(ctx)
	if !ok {
		return
	}
	var req dto.ApplicationStatusRequest
	if !middleware.BindJSON(ctx, &req, "status") {
		return
	}
	updated, err := c.opportunityService.SetApplicationStatus(ctx.Request.Context(), principal, ctx.Param("id"), ctx.Param("userId"), req.Status)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, updated)
}
