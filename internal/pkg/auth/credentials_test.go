package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Atharvasurya/punjab-alumni-sih/internal/app/models"
	"github.com/Atharvasurya/punjab-alumni-sih/internal/pkg/apperrors"
)

func TestCredentials_Authenticate(t *testing.T) {
	hashed, err := HashPassword("admin@123")
	require.NoError(t, err)

	creds, err := NewCredentials(map[string]string{
		"alumni":  "alumni@123",
		"admin":   hashed,
		"collage": "collage@123",
	})
	require.NoError(t, err)

	tests := []struct {
		name     string
		username string
		password string
		want     models.Role
		wantErr  bool
	}{
		{"plain secret", "alumni", "alumni@123", models.RoleAlumni, false},
		{"bcrypt secret", "admin", "admin@123", models.RoleAdmin, false},
		{"college spelling", "collage", "collage@123", models.RoleCollege, false},
		{"wrong password", "alumni", "alumni@124", "", true},
		{"unconfigured role", "students", "students@123", "", true},
		{"unknown user", "root", "admin@123", "", true},
		{"case sensitive username", "Admin", "admin@123", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			role, err := creds.Authenticate(tt.username, tt.password)
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
				assert.Empty(t, role)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, role)
		})
	}
}

func TestNewCredentials_Rejects(t *testing.T) {
	_, err := NewCredentials(map[string]string{"registrar": "x"})
	assert.Error(t, err)

	_, err = NewCredentials(map[string]string{"admin": ""})
	assert.Error(t, err)
}

func TestCheckPassword(t *testing.T) {
	hashed, err := HashPassword("s3cret")
	require.NoError(t, err)

	assert.True(t, CheckPassword(hashed, "s3cret"))
	assert.False(t, CheckPassword(hashed, "S3cret"))
	assert.True(t, isBcryptHash(hashed))
}
