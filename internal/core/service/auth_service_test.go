package service

import (
	"context"
	"testing"
	"time"

	"github.com/taskatlas/task-manager-api/internal/core/domain"
	"github.com/taskatlas/task-manager-api/internal/core/ports"
	"github.com/taskatlas/task-manager-api/internal/infrastructure/security"
)

type stubUserRepo struct {
	users map[string]*domain.User // keyed by id
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) error {
	for _, u := range r.users {
		if u.Name == user.Name {
			return domain.ErrUserExists
		}
	}
	r.users[user.ID] = cloneUser(user)
	return nil
}

func (r *stubUserRepo) FindByName(_ context.Context, name string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Name == name {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByRole(_ context.Context, role domain.Role) ([]domain.User, error) {
	out := []domain.User{}
	for _, u := range r.users {
		if u.Role == role {
			out = append(out, *cloneUser(u))
		}
	}
	return out, nil
}

func (r *stubUserRepo) List(_ context.Context) ([]domain.User, error) {
	out := []domain.User{}
	for _, u := range r.users {
		out = append(out, *cloneUser(u))
	}
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	r.users[user.ID] = cloneUser(user)
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

type stubRevoker struct {
	revoked map[string]time.Time
}

func newStubRevoker() *stubRevoker {
	return &stubRevoker{revoked: make(map[string]time.Time)}
}

func (r *stubRevoker) Revoke(_ context.Context, userID string, at time.Time) error {
	r.revoked[userID] = at
	return nil
}

func (r *stubRevoker) RevokedAt(_ context.Context, userID string) (time.Time, error) {
	return r.revoked[userID], nil
}

func newTestAuthService(repo ports.UserRepository, revoker ports.TokenRevoker) (*AuthService, *security.JWTIssuer) {
	hasher := security.NewBcryptHasher(4) // low cost keeps tests fast
	issuer := security.NewJWTIssuer("secret", time.Hour)
	return NewAuthService(repo, hasher, issuer, revoker), issuer
}

func TestAuthService_Register_HashesPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestAuthService(repo, newStubRevoker())

	user, err := svc.Register(context.Background(), ports.RegisterInput{Name: "alice", Password: "secret", Email: "alice@example.com", Role: "ADMIN"})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.ID == "" {
		t.Fatalf("expected generated id")
	}
	if user.PasswordHash == "secret" {
		t.Fatalf("expected password to be hashed")
	}
	if !security.NewBcryptHasher(4).Verify("secret", user.PasswordHash) {
		t.Fatalf("stored hash does not match password")
	}
	if user.Role != domain.RoleAdmin {
		t.Fatalf("unexpected role: %s", user.Role)
	}
}

func TestAuthService_Register_DefaultsRole(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestAuthService(repo, newStubRevoker())

	user, err := svc.Register(context.Background(), ports.RegisterInput{Name: "bob", Password: "pass"})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.Role != domain.RoleTeamMember {
		t.Fatalf("expected default role TEAM_MEMBER, got %s", user.Role)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestAuthService(repo, newStubRevoker())

	if _, err := svc.Register(context.Background(), ports.RegisterInput{Name: "", Password: "pass"}); err != domain.ErrMissingFields {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}
	if _, err := svc.Register(context.Background(), ports.RegisterInput{Name: "carol", Password: "pass", Role: "SUPERUSER"}); err != domain.ErrInvalidRole {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestAuthService(repo, newStubRevoker())

	if _, err := svc.Register(context.Background(), ports.RegisterInput{Name: "dave", Password: "pass"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), ports.RegisterInput{Name: "dave", Password: "other"}); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc, issuer := newTestAuthService(repo, newStubRevoker())

	registered, err := svc.Register(context.Background(), ports.RegisterInput{Name: "erin", Password: "s3cret", Role: "PROJECT_MANAGER"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "erin", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}
	if user.ID != registered.ID {
		t.Fatalf("unexpected user id: %s", user.ID)
	}

	claims, err := issuer.Parse(token)
	if err != nil {
		t.Fatalf("token invalid: %v", err)
	}
	if claims.UserID != registered.ID || claims.Name != "erin" || claims.Role != domain.RoleProjectManager {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestAuthService(repo, newStubRevoker())

	_, _ = svc.Register(context.Background(), ports.RegisterInput{Name: "frank", Password: "goodpass"})
	if _, _, err := svc.Login(context.Background(), "frank", "badpass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestAuthService(repo, newStubRevoker())

	// A missing user yields the same error as a bad password.
	if _, _, err := svc.Login(context.Background(), "ghost", "pass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_ChangePassword_Success(t *testing.T) {
	repo := newStubUserRepo()
	revoker := newStubRevoker()
	svc, _ := newTestAuthService(repo, revoker)

	registered, err := svc.Register(context.Background(), ports.RegisterInput{Name: "grace", Password: "oldpass"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if err := svc.ChangePassword(context.Background(), "grace", "oldpass", "newpass"); err != nil {
		t.Fatalf("change password failed: %v", err)
	}

	if _, _, err := svc.Login(context.Background(), "grace", "newpass"); err != nil {
		t.Fatalf("login with new password failed: %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "grace", "oldpass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected old password to be rejected, got %v", err)
	}
	if _, ok := revoker.revoked[registered.ID]; !ok {
		t.Fatalf("expected revocation cut-off to be recorded")
	}
}

func TestAuthService_ChangePassword_MissingFields(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestAuthService(repo, newStubRevoker())

	if err := svc.ChangePassword(context.Background(), "grace", "", "newpass"); err != domain.ErrMissingFields {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}
	if err := svc.ChangePassword(context.Background(), "grace", "oldpass", ""); err != domain.ErrMissingFields {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}
}

func TestAuthService_ChangePassword_WrongOldPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestAuthService(repo, newStubRevoker())

	_, _ = svc.Register(context.Background(), ports.RegisterInput{Name: "heidi", Password: "oldpass"})
	if err := svc.ChangePassword(context.Background(), "heidi", "wrongpass", "newpass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	// Stored hash must be unchanged.
	if _, _, err := svc.Login(context.Background(), "heidi", "oldpass"); err != nil {
		t.Fatalf("old password should still work: %v", err)
	}
}

func TestAuthService_ChangePassword_UnknownPrincipal(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestAuthService(repo, newStubRevoker())

	if err := svc.ChangePassword(context.Background(), "nobody", "old", "new"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_GuestToken(t *testing.T) {
	repo := newStubUserRepo()
	svc, issuer := newTestAuthService(repo, newStubRevoker())

	token, id, err := svc.GuestToken(context.Background())
	if err != nil {
		t.Fatalf("guest token failed: %v", err)
	}

	claims, err := issuer.Parse(token)
	if err != nil {
		t.Fatalf("token invalid: %v", err)
	}
	if claims.Role != domain.RoleGuest {
		t.Fatalf("expected GUEST role, got %s", claims.Role)
	}
	if claims.Name != "guestUser" {
		t.Fatalf("unexpected guest name: %s", claims.Name)
	}
	// The returned id and the id inside the token are the same value.
	if claims.UserID != id {
		t.Fatalf("token id %s does not match returned id %s", claims.UserID, id)
	}
	if len(repo.users) != 0 {
		t.Fatalf("guest token must not persist a user")
	}
}
