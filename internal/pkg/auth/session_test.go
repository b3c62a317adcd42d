package auth

import (
	"context"
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Atharvasurya/punjab-alumni-sih/internal/app/models"
	"github.com/Atharvasurya/punjab-alumni-sih/internal/pkg/apperrors"
)

func newTestSessionService() *SessionService {
	return NewSessionService(SessionConfig{
		SecretKey: "test-secret",
		TTL:       time.Hour,
		Issuer:    "alumni-portal",
	}, NewMemorySessionStore())
}

func TestSession_IssueAndVerify(t *testing.T) {
	ctx := context.Background()
	s := newTestSessionService()

	token, issued, err := s.Issue(ctx, models.RoleCollege, "collage")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.NotEmpty(t, issued.ID)

	session, err := s.Verify(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, models.RoleCollege, session.Role)
	assert.Equal(t, "collage", session.Username)
	assert.Equal(t, issued.ID, session.ID)
	assert.WithinDuration(t, issued.ExpiresAt, session.ExpiresAt, time.Second)
}

func TestSession_Revoke(t *testing.T) {
	ctx := context.Background()
	s := newTestSessionService()

	token, _, err := s.Issue(ctx, models.RoleAdmin, "admin")
	require.NoError(t, err)

	require.NoError(t, s.Revoke(ctx, token))
	_, err = s.Verify(ctx, token)
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)

	assert.NoError(t, s.Revoke(ctx, "garbage"), "unparseable tokens are ignored")
}

func TestSession_Rejects(t *testing.T) {
	ctx := context.Background()
	s := newTestSessionService()

	token, _, err := s.Issue(ctx, models.RoleStudents, "students")
	require.NoError(t, err)

	t.Run("empty", func(t *testing.T) {
		_, err := s.Verify(ctx, "")
		assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
	})

	t.Run("plain role value", func(t *testing.T) {
		_, err := s.Verify(ctx, "admin")
		assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
	})

	t.Run("tampered", func(t *testing.T) {
		parts := strings.Split(token, ".")
		require.Len(t, parts, 3)
		payload, err := base64.RawURLEncoding.DecodeString(parts[1])
		require.NoError(t, err)
		payload = []byte(strings.Replace(string(payload), `"role":"students"`, `"role":"admin"`, 1))
		tampered := parts[0] + "." + base64.RawURLEncoding.EncodeToString(payload) + "." + parts[2]

		_, err = s.Verify(ctx, tampered)
		assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
	})

	t.Run("other secret", func(t *testing.T) {
		other := NewSessionService(SessionConfig{SecretKey: "other", TTL: time.Hour, Issuer: "alumni-portal"}, NewMemorySessionStore())
		_, err := other.Verify(ctx, token)
		assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
	})

	t.Run("expired", func(t *testing.T) {
		s.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		defer func() { s.now = time.Now }()
		_, err := s.Verify(ctx, token)
		assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
	})
}

func TestMemorySessionStore_Expiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemorySessionStore()
	now := time.Now()
	store.now = func() time.Time { return now }

	require.NoError(t, store.Put(ctx, "a", time.Minute))
	ok, err := store.Exists(ctx, "a")
	require.NoError(t, err)
	assert.True(t, ok)

	now = now.Add(2 * time.Minute)
	ok, err = store.Exists(ctx, "a")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Delete(ctx, "missing"))
}
