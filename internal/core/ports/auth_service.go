package ports

import (
	"context"

	"github.com/taskatlas/task-manager-api/internal/core/domain"
)

// RegisterInput carries a full user payload with a plaintext password.
// Role may be empty, in which case the service assigns the default.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

type AuthService interface {
	Login(ctx context.Context, name, password string) (string, *domain.User, error)
	ChangePassword(ctx context.Context, principalName, oldPassword, newPassword string) error
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	GuestToken(ctx context.Context) (string, string, error)
}
