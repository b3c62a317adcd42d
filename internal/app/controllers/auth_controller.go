package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Atharvasurya/punjab-alumni-sih/internal/app/models/dto"
	"github.com/Atharvasurya/punjab-alumni-sih/internal/app/services"
	"github.com/Atharvasurya/punjab-alumni-sih/internal/middleware"
)

// CookieConfig describes the session cookie
type CookieConfig struct {
	Name     string
	MaxAge   time.Duration
	HTTPOnly bool
	Secure   bool
}

// AuthController handles authentication related operations
type AuthController struct {
	authService services.AuthService
	auth        *middleware.AuthMiddleware
	cookie      CookieConfig
	logger      zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(authService services.AuthService, authMiddleware *middleware.AuthMiddleware, cookie CookieConfig, logger zerolog.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		auth:        authMiddleware,
		cookie:      cookie,
		logger:      logger,
	}
}

// Login handles user login
// @Summary Log in with a role account
// @Description Checks the credentials and sets the session cookie
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.APIResponse{data=dto.LoginResponse} "Login successful"
// @Failure 400 {object} dto.ErrorResponse "Username and password are required"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if !middleware.BindJSON(ctx, &req, "login request") {
		return
	}

	token, session, err := c.authService.Login(ctx.Request.Context(), req.Username, req.Password)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.setCookie(ctx, token, int(c.cookie.MaxAge.Seconds()))
	respond(ctx, http.StatusOK, dto.LoginResponse{
		OK:   true,
		Role: string(session.Role),
	})
}

// Logout handles user logout
// @Summary Log out
// @Description Revokes the current session and clears the cookie
// @Tags auth
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.LogoutResponse} "Logged out"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	if err := c.authService.Logout(ctx.Request.Context(), c.auth.SessionToken(ctx)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.setCookie(ctx, "", -1)
	respond(ctx, http.StatusOK, dto.LogoutResponse{
		OK:      true,
		Message: "Logged out successfully",
	})
}

// Me returns the current session
// @Summary Current session
// @Description Returns the role and username of the logged in caller
// @Tags auth
// @Produce json
// @Security CookieAuth
// @Success 200 {object} dto.APIResponse{data=dto.MeResponse}
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /auth/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	principal, ok := currentPrincipal(ctx)
	if !ok {
		return
	}
	resp := dto.MeResponse{
		Role:     string(principal.Role),
		Username: principal.Username,
	}
	if !principal.ExpiresAt.IsZero() {
		resp.ExpiresAt = principal.ExpiresAt.UTC().Format(time.RFC3339)
	}
	respond(ctx, http.StatusOK, resp)
}

func (c *AuthController) setCookie(ctx *gin.Context, value string, maxAge int) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(c.cookie.Name, value, maxAge, "/", "", c.cookie.Secure, c.cookie.HTTPOnly)
}
