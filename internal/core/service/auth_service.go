package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/taskatlas/task-manager-api/internal/core/domain"
	"github.com/taskatlas/task-manager-api/internal/core/ports"
)

// guestName is the pseudo-identity embedded in guest tokens. Guest users are
// never persisted.
const guestName = "guestUser"

// AuthService implements login, password rotation, registration and guest
// token issuance on top of injected collaborators.
type AuthService struct {
	repo    ports.UserRepository
	hasher  ports.PasswordHasher
	issuer  ports.TokenIssuer
	revoker ports.TokenRevoker
}

func NewAuthService(repo ports.UserRepository, hasher ports.PasswordHasher, issuer ports.TokenIssuer, revoker ports.TokenRevoker) *AuthService {
	return &AuthService{repo: repo, hasher: hasher, issuer: issuer, revoker: revoker}
}

// Login authenticates by name and plaintext password. A missing user and a
// password mismatch are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, name, password string) (string, *domain.User, error) {
	if name == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.issuer.Issue(user.ID, user.Name, user.Role)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

// ChangePassword rotates the principal's credential after re-verifying the
// old one, then records a revocation cut-off so tokens minted before the
// change stop working.
func (s *AuthService) ChangePassword(ctx context.Context, principalName, oldPassword, newPassword string) error {
	if oldPassword == "" || newPassword == "" {
		return domain.ErrMissingFields
	}

	user, err := s.repo.FindByName(ctx, principalName)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrInvalidCredentials
		}
		return err
	}

	if !s.hasher.Verify(oldPassword, user.PasswordHash) {
		return domain.ErrInvalidCredentials
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	user.PasswordHash = hash
	user.UpdatedAt = now
	if err := s.repo.Update(ctx, user); err != nil {
		return err
	}

	return s.revoker.Revoke(ctx, user.ID, now)
}

// Register hashes the candidate's password and persists a new record. The
// name uniqueness constraint lives in the store; a conflict surfaces as
// domain.ErrUserExists.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	user, err := newUser(s.hasher, input)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GuestToken mints a short-lived token for the fixed guest identity. The
// returned id is the same one embedded in the token.
func (s *AuthService) GuestToken(ctx context.Context) (string, string, error) {
	id := uuid.NewString()
	token, err := s.issuer.Issue(id, guestName, domain.RoleGuest)
	if err != nil {
		return "", "", err
	}
	return token, id, nil
}

// newUser builds a persistable User from a registration payload: generated
// UUID, hashed password, defaulted role.
func newUser(hasher ports.PasswordHasher, input ports.RegisterInput) (*domain.User, error) {
	if input.Name == "" || input.Password == "" {
		return nil, domain.ErrMissingFields
	}

	role := domain.RoleTeamMember
	if input.Role != "" {
		parsed, err := domain.ParseRole(input.Role)
		if err != nil {
			return nil, err
		}
		role = parsed
	}

	hash, err := hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &domain.User{
		ID:           uuid.NewString(),
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}
