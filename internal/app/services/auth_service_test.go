package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Atharvasurya/punjab-alumni-sih/internal/app/models"
	"github.com/Atharvasurya/punjab-alumni-sih/internal/pkg/apperrors"
	pkgauth "github.com/Atharvasurya/punjab-alumni-sih/internal/pkg/auth"
)

func newTestAuthService(t *testing.T) (AuthService, *pkgauth.SessionService) {
	t.Helper()
	creds, err := pkgauth.NewCredentials(map[string]string{
		"alumni": "alumni@123", "students": "students@123", "admin": "admin@123", "collage": "collage@123",
	})
	require.NoError(t, err)
	sessions := pkgauth.NewSessionService(pkgauth.SessionConfig{
		SecretKey: "test-secret", TTL: time.Hour, Issuer: "alumni-portal",
	}, pkgauth.NewMemorySessionStore())
	return NewAuthService(creds, sessions, zerolog.Nop()), sessions
}

func TestAuthService_Login(t *testing.T) {
	svc, sessions := newTestAuthService(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
		wantRole models.Role
	}{
		{"admin", "admin", "admin@123", nil, models.RoleAdmin},
		{"college", "collage", "collage@123", nil, models.RoleCollege},
		{"missing password", "admin", "", apperrors.ErrBadRequest, ""},
		{"missing username", "  ", "admin@123", apperrors.ErrBadRequest, ""},
		{"wrong password", "students", "nope", apperrors.ErrInvalidCredentials, ""},
		{"unknown account", "registrar", "registrar@123", apperrors.ErrInvalidCredentials, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, session, err := svc.Login(ctx, tt.username, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, token)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantRole, session.Role)

			verified, err := sessions.Verify(ctx, token)
			require.NoError(t, err)
			assert.Equal(t, tt.wantRole, verified.Role)
		})
	}
}

func TestAuthService_Logout(t *testing.T) {
	svc, sessions := newTestAuthService(t)
	ctx := context.Background()

	token, _, err := svc.Login(ctx, "alumni", "alumni@123")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, token))
	_, err = sessions.Verify(ctx, token)
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)

	assert.NoError(t, svc.Logout(ctx, ""))
}
