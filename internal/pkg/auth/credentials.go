package auth

import (
	"fmt"

	"github.com/Atharvasurya/punjab-alumni-sih/internal/app/models"
	"github.com/Atharvasurya/punjab-alumni-sih/internal/pkg/apperrors"
)

// Credentials is the static login table. Each role has exactly one account
// whose username is the role name.
type Credentials struct {
	accounts map[models.Role]string
}

// NewCredentials builds the table from a role -> password map.
func NewCredentials(accounts map[string]string) (*Credentials, error) {
	c := &Credentials{accounts: make(map[models.Role]string, len(accounts))}
	for name, secret := range accounts {
		role, ok := models.ParseRole(name)
		if !ok {
			return nil, fmt.Errorf("unknown role %q in account table", name)
		}
		if secret == "" {
			return nil, fmt.Errorf("empty password for role %q", name)
		}
		c.accounts[role] = secret
	}
	return c, nil
}

// Authenticate returns the role whose account matches. Any mismatch, including
// an unknown username, yields ErrInvalidCredentials.
func (c *Credentials) Authenticate(username, password string) (models.Role, error) {
	role := models.Role(username)
	secret, ok := c.accounts[role]
	if !ok || !matchSecret(secret, password) {
		return "", apperrors.ErrInvalidCredentials
	}
	return role, nil
}
