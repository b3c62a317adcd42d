package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Atharvasurya/punjab-alumni-sih/internal/app/auth"
	"github.com/Atharvasurya/punjab-alumni-sih/internal/app/models"
	"github.com/Atharvasurya/punjab-alumni-sih/internal/app/models/dto"
	"github.com/Atharvasurya/punjab-alumni-sih/internal/app/services"
	"github.com/Atharvasurya/punjab-alumni-sih/internal/middleware"
)

// UserController serves the alumni directory and student records
type UserController struct {
	userService services.UserService
}

// NewUserController creates a new UserController
func NewUserController(userService services.UserService) *UserController {
	return &UserController{userService: userService}
}

// ListAlumni searches the alumni directory
// @Summary Search alumni
// @Description Lists alumni; every given filter must match. Text filters are case-insensitive substrings.
// @Tags alumni
// @Produce json
// @Security CookieAuth
// @Param q query string false "Matches name, company or any skill"
// @Param year query int false "Graduation year"
// @Param branch query string false "Branch"
// @Param company query string false "Current company"
// @Param skill query string false "Skill"
// @Success 200 {object} dto.APIResponse{data=[]models.User}
// @Failure 400 {object} dto.ErrorResponse "Invalid query parameters"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /alumni [get]
func (c *UserController) ListAlumni(ctx *gin.Context) {
	var query dto.AlumniQuery
	if !middleware.BindQuery(ctx, &query) {
		return
	}
	respond(ctx, http.StatusOK, c.userService.ListAlumni(query.Filter()))
}

// GetAlumni returns one alumnus
// @Summary Get alumni profile
// @Tags alumni
// @Produce json
// @Security CookieAuth
// @Param id path string true "Alumni ID"
// @Success 200 {object} dto.APIResponse{data=models.User}
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Alumni not found"
// @Router /alumni/{id} [get]
func (c *UserController) GetAlumni(ctx *gin.Context) {
	user, err := c.userService.GetAlumni(ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, user)
}

// CreateAlumni adds an alumni profile
// @Summary Create alumni profile
// @Description Admin only. The id is generated when omitted.
// @Tags alumni
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param request body models.User true "Alumni profile"
// @Success 201 {object} dto.APIResponse{data=models.User}
// @Failure 400 {object} dto.ErrorResponse "Invalid alumni data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 409 {object} dto.ErrorResponse "Id already in use"
// @Router /alumni [post]
func (c *UserController) CreateAlumni(ctx *gin.Context) {
	c.create(ctx, "alumni data", c.userService.CreateAlumni)
}

// CreateStudent adds a student record
// @Summary Create student record
// @Description Admin only. The id is generated when omitted.
// @Tags students
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param request body models.User true "Student record"
// @Success 201 {object} dto.APIResponse{data=models.User}
// @Failure 400 {object} dto.ErrorResponse "Invalid student data"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 409 {object} dto.ErrorResponse "Id already in use"
// @Router /students [post]
func (c *UserController) CreateStudent(ctx *gin.Context) {
	c.create(ctx, "student data", c.userService.CreateStudent)
}

// createUserFunc is the shape of the service create operations
type createUserFunc func(ctx context.Context, actor *auth.Principal, user *models.User) (*models.User, error)

func (c *UserController) create(ctx *gin.Context, what string, createFn createUserFunc) {
	principal, ok := currentPrincipal(ctx)
	if !ok {
		return
	}
	var user models.User
	if !middleware.BindJSON(ctx, &user, what) {
		return
	}
	created, err := createFn(ctx.Request.Context(), principal, &user)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, created)
}

// UpdateAlumni merge-patches an alumni profile
// @Summary Update alumni profile
// @Description The owner or an admin may update. Only the given top-level fields change; id, role and created_at are fixed.
// @Tags alumni
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param id path string true "Alumni ID"
// @Param request body object true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=models.User}
// @Failure 400 {object} dto.ErrorResponse "Invalid update body"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Alumni not found"
// @Router /alumni/{id} [put]
func (c *UserController) UpdateAlumni(ctx *gin.Context) {
	principal, ok := currentPrincipal(ctx)
	if !ok {
		return
	}
	patch, ok := middleware.BindPatch(ctx)
	if !ok {
		return
	}
	updated, err := c.userService.UpdateAlumni(ctx.Request.Context(), principal, ctx.Param("id"), patch)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, updated)
}

// DeleteAlumni removes an alumni profile
// @Summary Delete alumni profile
// @Description Admin only
// @Tags alumni
// @Produce json
// @Security CookieAuth
// @Param id path string true "Alumni ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Alumni not found"
// @Router /alumni/{id} [delete]
func (c *UserController) DeleteAlumni(ctx *gin.Context) {
	principal, ok := currentPrincipal(ctx)
	if !ok {
		return
	}
	if err := c.userService.DeleteAlumni(ctx.Request.Context(), principal, ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, dto.SuccessResponse{Message: "Alumni deleted successfully"})
}

// ListStudents lists every student
// @Summary List students
// @Tags students
// @Produce json
// @Security CookieAuth
// @Success 200 {object} dto.APIResponse{data=[]models.User}
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /students [get]
func (c *UserController) ListStudents(ctx *gin.Context) {
	respond(ctx, http.StatusOK, c.userService.ListStudents())
}

// GetStudent returns one student
// @Summary Get student record
// @Tags students
// @Produce json
// @Security CookieAuth
// @Param id path string true "Student ID"
// @Success 200 {object} dto.APIResponse{data=models.User}
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id} [get]
func (c *UserController) GetStudent(ctx *gin.Context) {
	user, err := c.userService.GetStudent(ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, user)
}
