package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Atharvasurya/punjab-alumni-sih/internal/app/models"
	"github.com/Atharvasurya/punjab-alumni-sih/internal/pkg/apperrors"
)

// SessionConfig defines session token settings
type SessionConfig struct {
	SecretKey string
	TTL       time.Duration
	Issuer    string
}

// Claims defines session token content
type Claims struct {
	Role     models.Role `json:"role"`
	Username string      `json:"username"`
	jwt.RegisteredClaims
}

// Session is a verified login.
type Session struct {
	ID        string
	Role      models.Role
	Username  string
	ExpiresAt time.Time
}

// SessionService issues signed session tokens and tracks them server side so
// they can be revoked before they expire.
type SessionService struct {
	config SessionConfig
	store  SessionStore
	now    func() time.Time
}

// NewSessionService creates a new session service
func NewSessionService(config SessionConfig, store SessionStore) *SessionService {
	return &SessionService{
		config: config,
		store:  store,
		now:    time.Now,
	}
}

// TTL returns how long issued sessions live
func (s *SessionService) TTL() time.Duration {
	return s.config.TTL
}

// Issue creates a session for role and returns the signed token.
func (s *SessionService) Issue(ctx context.Context, role models.Role, username string) (string, *Session, error) {
	now := s.now()
	session := &Session{
		ID:        uuid.New().String(),
		Role:      role,
		Username:  username,
		ExpiresAt: now.Add(s.config.TTL),
	}

	claims := &Claims{
		Role:     role,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    s.config.Issuer,
			Subject:   username,
			ID:        session.ID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.SecretKey))
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign session token: %w", err)
	}

	if err := s.store.Put(ctx, session.ID, s.config.TTL); err != nil {
		return "", nil, fmt.Errorf("failed to store session: %w", err)
	}
	return signed, session, nil
}

// Verify checks the token signature, expiry and server-side record.
func (s *SessionService) Verify(ctx context.Context, tokenString string) (*Session, error) {
	claims, err := s.parse(tokenString)
	if err != nil {
		return nil, err
	}

	alive, err := s.store.Exists(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up session: %w", err)
	}
	if !alive {
		return nil, apperrors.ErrTokenRevoked
	}

	return &Session{
		ID:        claims.ID,
		Role:      claims.Role,
		Username:  claims.Username,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// Revoke deletes the server-side record behind token. Tokens that do not
// parse are ignored since they grant nothing.
func (s *SessionService) Revoke(ctx context.Context, tokenString string) error {
	claims, err := s.parse(tokenString)
	if err != nil {
		return nil
	}
	return s.store.Delete(ctx, claims.ID)
}

func (s *SessionService) parse(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, apperrors.ErrUnauthenticated
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.SecretKey), nil
	},
		jwt.WithIssuer(s.config.Issuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrTokenInvalid, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.ID == "" || !claims.Role.Valid() {
		return nil, apperrors.ErrTokenInvalid
	}
	return claims, nil
}
