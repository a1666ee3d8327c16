package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/roleforge-api/internal/config"
	"github.com/spec-kit/roleforge-api/internal/domain"
	"github.com/spec-kit/roleforge-api/internal/repository"
	apperrors "github.com/spec-kit/roleforge-api/pkg/util"
)

// fakeUserRepository is an in-memory stand-in mirroring the store's contract:
// lookups miss with pgx.ErrNoRows and Create enforces uniqueness.
type fakeUserRepository struct {
	users  map[string]*domain.User
	nextID int
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: make(map[string]*domain.User)}
}

func (f *fakeUserRepository) Create(_ context.Context, user *domain.User) error {
	for _, u := range f.users {
		if u.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
		if u.Username == user.Username {
			return repository.ErrDuplicateUsername
		}
	}
	f.nextID++
	user.ID = fmt.Sprintf("user-%d", f.nextID)
	stored := *user
	f.users[user.ID] = &stored
	return nil
}

func (f *fakeUserRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepository) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepository) UpdatePasswordHash(_ context.Context, id, hash string) error {
	u, ok := f.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	u.PasswordHash = hash
	return nil
}

func (f *fakeUserRepository) UpdateProfile(_ context.Context, id string, upd domain.UserProfileUpdate) (*domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	if upd.Username != nil {
		u.Username = *upd.Username
	}
	if upd.FullName != nil {
		u.FullName = *upd.FullName
	}
	if upd.AvatarURL != nil {
		u.AvatarURL = *upd.AvatarURL
	}
	copied := *u
	return &copied, nil
}

func newTestAuthService() (*AuthService, *fakeUserRepository) {
	repo := newFakeUserRepository()
	svc := NewAuthService(config.AuthConfig{
		JWTSecret:             "test-secret",
		AccessTokenTTLMinutes: 30,
		RefreshTokenTTLDays:   7,
		BcryptCost:            4,
	}, repo)
	return svc, repo
}

func mustRegister(t *testing.T, svc *AuthService, email, username, password string) *domain.User {
	t.Helper()
	user, pair, err := svc.Register(context.Background(), RegisterInput{
		Email:    email,
		Username: username,
		Password: password,
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("expected both tokens issued on registration")
	}
	return user
}

func domainErrStatus(t *testing.T, err error) int {
	t.Helper()
	var de *apperrors.DomainError
	if !errors.As(err, &de) {
		t.Fatalf("expected DomainError, got %T: %v", err, err)
	}
	return de.HTTPStatus
}

func TestAuthServiceRegister(t *testing.T) {
	t.Run("assigns default role and hashes password", func(t *testing.T) {
		svc, repo := newTestAuthService()
		user := mustRegister(t, svc, "Ada@Example.com", "ada", "password123")

		if user.Role != domain.RoleUser {
			t.Errorf("Role = %q, want %q", user.Role, domain.RoleUser)
		}
		if user.Email != "ada@example.com" {
			t.Errorf("Email = %q, want lowercased", user.Email)
		}
		stored := repo.users[user.ID]
		if stored.PasswordHash == "password123" {
			t.Error("password stored in plaintext")
		}
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		svc, _ := newTestAuthService()
		mustRegister(t, svc, "ada@example.com", "ada", "password123")

		_, _, err := svc.Register(context.Background(), RegisterInput{
			Email:    "ada@example.com",
			Username: "ada2",
			Password: "password123",
		})
		if status := domainErrStatus(t, err); status != 409 {
			t.Errorf("status = %d, want 409", status)
		}
	})

	t.Run("duplicate username conflicts", func(t *testing.T) {
		svc, _ := newTestAuthService()
		mustRegister(t, svc, "ada@example.com", "ada", "password123")

		_, _, err := svc.Register(context.Background(), RegisterInput{
			Email:    "other@example.com",
			Username: "ada",
			Password: "password123",
		})
		if status := domainErrStatus(t, err); status != 409 {
			t.Errorf("status = %d, want 409", status)
		}
	})
}

func TestAuthServiceLogin(t *testing.T) {
	t.Run("valid credentials issue a pair", func(t *testing.T) {
		svc, _ := newTestAuthService()
		registered := mustRegister(t, svc, "ada@example.com", "ada", "password123")

		user, pair, err := svc.Login(context.Background(), "ada@example.com", "password123")
		if err != nil {
			t.Fatalf("Login: %v", err)
		}
		if user.ID != registered.ID {
			t.Errorf("ID = %q, want %q", user.ID, registered.ID)
		}
		if pair.ExpiresIn != 30*60 {
			t.Errorf("ExpiresIn = %d, want %d", pair.ExpiresIn, 30*60)
		}
	})

	t.Run("unknown email and wrong password are indistinguishable", func(t *testing.T) {
		svc, _ := newTestAuthService()
		mustRegister(t, svc, "ada@example.com", "ada", "password123")

		_, _, errUnknown := svc.Login(context.Background(), "nobody@example.com", "password123")
		_, _, errWrongPw := svc.Login(context.Background(), "ada@example.com", "wrong-password")

		if errUnknown == nil || errWrongPw == nil {
			t.Fatal("expected both logins to fail")
		}
		if errUnknown.Error() != errWrongPw.Error() {
			t.Errorf("messages differ: %q vs %q", errUnknown, errWrongPw)
		}
		if domainErrStatus(t, errUnknown) != 401 || domainErrStatus(t, errWrongPw) != 401 {
			t.Error("expected 401 for both failures")
		}
	})
}

func TestAuthServiceRefresh(t *testing.T) {
	t.Run("refresh token mints a new pair", func(t *testing.T) {
		svc, _ := newTestAuthService()
		_, pair, err := svc.Register(context.Background(), RegisterInput{
			Email:    "ada@example.com",
			Username: "ada",
			Password: "password123",
		})
		if err != nil {
			t.Fatalf("Register: %v", err)
		}

		next, err := svc.Refresh(context.Background(), pair.RefreshToken)
		if err != nil {
			t.Fatalf("Refresh: %v", err)
		}
		if next.AccessToken == "" || next.RefreshToken == "" {
			t.Fatal("expected a full pair from refresh")
		}
	})

	t.Run("access token rejected", func(t *testing.T) {
		svc, _ := newTestAuthService()
		_, pair, err := svc.Register(context.Background(), RegisterInput{
			Email:    "ada@example.com",
			Username: "ada",
			Password: "password123",
		})
		if err != nil {
			t.Fatalf("Register: %v", err)
		}

		_, err = svc.Refresh(context.Background(), pair.AccessToken)
		if status := domainErrStatus(t, err); status != 401 {
			t.Errorf("status = %d, want 401", status)
		}
	})

	t.Run("deleted user invalidates the token", func(t *testing.T) {
		svc, repo := newTestAuthService()
		user, pair, err := svc.Register(context.Background(), RegisterInput{
			Email:    "ada@example.com",
			Username: "ada",
			Password: "password123",
		})
		if err != nil {
			t.Fatalf("Register: %v", err)
		}

		delete(repo.users, user.ID)
		_, err = svc.Refresh(context.Background(), pair.RefreshToken)
		if status := domainErrStatus(t, err); status != 401 {
			t.Errorf("status = %d, want 401", status)
		}
	})
}

func TestAuthServiceChangePassword(t *testing.T) {
	t.Run("wrong current password rejected", func(t *testing.T) {
		svc, _ := newTestAuthService()
		user := mustRegister(t, svc, "ada@example.com", "ada", "password123")

		err := svc.ChangePassword(context.Background(), user.ID, "wrong", "newpassword1")
		if status := domainErrStatus(t, err); status != 401 {
			t.Errorf("status = %d, want 401", status)
		}
	})

	t.Run("old password stops working after change", func(t *testing.T) {
		svc, _ := newTestAuthService()
		user := mustRegister(t, svc, "ada@example.com", "ada", "password123")

		if err := svc.ChangePassword(context.Background(), user.ID, "password123", "newpassword1"); err != nil {
			t.Fatalf("ChangePassword: %v", err)
		}
		if _, _, err := svc.Login(context.Background(), "ada@example.com", "password123"); err == nil {
			t.Error("old password still accepted")
		}
		if _, _, err := svc.Login(context.Background(), "ada@example.com", "newpassword1"); err != nil {
			t.Errorf("new password rejected: %v", err)
		}
	})
}

func TestAuthServiceUpdateProfile(t *testing.T) {
	t.Run("taken username conflicts", func(t *testing.T) {
		svc, _ := newTestAuthService()
		mustRegister(t, svc, "ada@example.com", "ada", "password123")
		other := mustRegister(t, svc, "bob@example.com", "bob", "password123")

		taken := "ada"
		_, err := svc.UpdateProfile(context.Background(), other.ID, domain.UserProfileUpdate{Username: &taken})
		if status := domainErrStatus(t, err); status != 409 {
			t.Errorf("status = %d, want 409", status)
		}
	})

	t.Run("keeping own username is not a conflict", func(t *testing.T) {
		svc, _ := newTestAuthService()
		user := mustRegister(t, svc, "ada@example.com", "ada", "password123")

		same := "ada"
		name := "Ada Lovelace"
		updated, err := svc.UpdateProfile(context.Background(), user.ID, domain.UserProfileUpdate{Username: &same, FullName: &name})
		if err != nil {
			t.Fatalf("UpdateProfile: %v", err)
		}
		if updated.FullName != name {
			t.Errorf("FullName = %q, want %q", updated.FullName, name)
		}
	})
}
