package auth

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/Atharvasurya/punjab-alumni-sih/internal/app/models"
	"github.com/Atharvasurya/punjab-alumni-sih/internal/pkg/apperrors"
	pkgauth "github.com/Atharvasurya/punjab-alumni-sih/internal/pkg/auth"
)

// Principal is the authenticated caller of a request.
type Principal struct {
	Role      models.Role `json:"role"`
	Username  string      `json:"username"`
	SessionID string      `json:"-"`
	ExpiresAt time.Time   `json:"-"`
}

// Identity is the value recorded as owner, sender or attendee for actions
// taken by the principal.
func (p *Principal) Identity() string {
	return p.Username
}

func (p *Principal) IsAdmin() bool {
	return p.Role == models.RoleAdmin
}

// SessionVerifier resolves a session token into a verified session.
type SessionVerifier interface {
	Verify(ctx context.Context, token string) (*pkgauth.Session, error)
}

// AuthorizationService decides who may call what
type AuthorizationService struct {
	sessions SessionVerifier
}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService(sessions SessionVerifier) *AuthorizationService {
	return &AuthorizationService{sessions: sessions}
}

// RequireAuth verifies token and checks the caller's role against allowed.
// An empty allow-list admits any authenticated role.
func (s *AuthorizationService) RequireAuth(ctx context.Context, token string, allowed ...models.Role) (*Principal, error) {
	session, err := s.sessions.Verify(ctx, token)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrUnauthenticated, apperrors.ErrTokenInvalid, apperrors.ErrTokenExpired, apperrors.ErrTokenRevoked) {
			return nil, fmt.Errorf("%w: %w", apperrors.ErrUnauthenticated, err)
		}
		return nil, err
	}

	principal := &Principal{
		Role:      session.Role,
		Username:  session.Username,
		SessionID: session.ID,
		ExpiresAt: session.ExpiresAt,
	}
	if !Allows(principal.Role, allowed...) {
		return nil, apperrors.NewForbiddenError(fmt.Sprintf("role %s is not allowed here", principal.Role))
	}
	return principal, nil
}

// Allows reports whether role passes the allow-list.
func Allows(role models.Role, allowed ...models.Role) bool {
	return len(allowed) == 0 || slices.Contains(allowed, role)
}

// CanModify reports whether the principal may change a record owned by owner.
func CanModify(p *Principal, owner string) bool {
	if p == nil {
		return false
	}
	return p.IsAdmin() || p.Identity() == owner
}

// RequireOwnerOrAdmin returns a permission error unless CanModify holds.
func RequireOwnerOrAdmin(p *Principal, owner string) error {
	if CanModify(p, owner) {
		return nil
	}
	return apperrors.NewForbiddenError("only the owner or an admin can modify this resource")
}

// IsAuthError reports whether err should be answered with 401 or 403.
func IsAuthError(err error) bool {
	return errors.Is(err, apperrors.ErrUnauthenticated) || errors.Is(err, apperrors.ErrPermissionDenied)
}
