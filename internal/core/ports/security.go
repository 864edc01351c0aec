package ports

import (
	"context"
	"time"

	"github.com/taskatlas/task-manager-api/internal/core/domain"
)

// PasswordHasher abstracts one-way credential hashing.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// TokenClaims is the identity a verified token asserts.
type TokenClaims struct {
	UserID    string
	Name      string
	Role      domain.Role
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenIssuer mints and verifies signed, time-bounded credential tokens.
type TokenIssuer interface {
	Issue(userID, name string, role domain.Role) (string, error)
	Parse(token string) (*TokenClaims, error)
}

// TokenRevoker tracks per-user revocation cut-offs. Tokens issued before the
// recorded instant are no longer accepted.
type TokenRevoker interface {
	Revoke(ctx context.Context, userID string, at time.Time) error
	RevokedAt(ctx context.Context, userID string) (time.Time, error)
}
