package ports

import (
	"context"

	"github.com/taskatlas/task-manager-api/internal/core/domain"
)

// UpdateUserInput is a full-record replacement payload. An empty Password
// keeps the stored hash; a non-empty one is re-hashed.
type UpdateUserInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

type UserService interface {
	Create(ctx context.Context, input RegisterInput) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByRole(ctx context.Context, role domain.Role) ([]domain.User, error)
	Update(ctx context.Context, id string, input UpdateUserInput) (*domain.User, error)
	UpdateEmail(ctx context.Context, id, email string) (*domain.User, error)
	UpdateName(ctx context.Context, id, name string) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
