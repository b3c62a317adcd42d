package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Atharvasurya/punjab-alumni-sih/internal/app/auth"
	"github.com/Atharvasurya/punjab-alumni-sih/internal/app/models"
	"github.com/Atharvasurya/punjab-alumni-sih/internal/app/models/dto"
)

const principalKey = "principal"

// AuthMiddleware authenticates requests from the session cookie
type AuthMiddleware struct {
	authz      *auth.AuthorizationService
	cookieName string
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(authz *auth.AuthorizationService, cookieName string) *AuthMiddleware {
	return &AuthMiddleware{
		authz:      authz,
		cookieName: cookieName,
	}
}

// SessionToken returns the session token of the request. The cookie is the
// normal carrier; a Bearer header is accepted for API clients and Swagger UI.
func (m *AuthMiddleware) SessionToken(c *gin.Context) string {
	if token, err := c.Cookie(m.cookieName); err == nil && token != "" {
		return token
	}
	if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return ""
}

// RequireRoles authenticates the request and admits it when the caller's role
// is in roles. No roles admits any authenticated caller.
func (m *AuthMiddleware) RequireRoles(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := m.SessionToken(c)
		if token == "" {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Unauthorized")
			errorDetail = errorDetail.WithDetails("Session cookie missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		principal, err := m.authz.RequireAuth(c.Request.Context(), token, roles...)
		if err != nil {
			HandleAPIError(c, err)
			c.Abort()
			return
		}

		c.Set(principalKey, principal)
		c.Next()
	}
}

// GetPrincipal returns the caller set by RequireRoles
func GetPrincipal(c *gin.Context) (*auth.Principal, bool) {
	v, exists := c.Get(principalKey)
	if !exists {
		return nil, false
	}
	p, ok := v.(*auth.Principal)
	return p, ok
}
