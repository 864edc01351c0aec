package ports

import (
	"context"

	"github.com/taskatlas/task-manager-api/internal/core/domain"
)

// UserRepository defines the interface for user record persistence.
// Lookups return domain.ErrUserNotFound on a miss; Create returns
// domain.ErrUserExists when the name is already taken.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByName(ctx context.Context, name string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByRole(ctx context.Context, role domain.Role) ([]domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id string) error
}
