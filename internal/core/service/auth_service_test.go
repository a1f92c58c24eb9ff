package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/parceldesk/shipment-api/internal/core/domain"
)

type stubAuthRepo struct {
	byEmail map[string]*domain.User
	nextID  int
}

func newStubAuthRepo() *stubAuthRepo {
	return &stubAuthRepo{byEmail: make(map[string]*domain.User)}
}

func (r *stubAuthRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, ok := r.byEmail[user.Email]; ok {
		return nil, domain.ErrUserExists
	}
	r.nextID++
	clone := *user
	clone.ID = fmt.Sprintf("user_%d", r.nextID)
	r.byEmail[user.Email] = &clone
	return &clone, nil
}

func (r *stubAuthRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func TestAuthService_Register_HashesPassword(t *testing.T) {
	repo := newStubAuthRepo()
	svc := NewAuthService(repo, "secret", 0)

	user, err := svc.Register(context.Background(), "asha@example.com", "pass123", "Asha", domain.RoleCustomer)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.PasswordHash == "pass123" {
		t.Fatal("password stored in plain text")
	}
	stored := repo.byEmail["asha@example.com"]
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestAuthService_Register_RejectsUnknownRole(t *testing.T) {
	svc := NewAuthService(newStubAuthRepo(), "secret", 0)

	if _, err := svc.Register(context.Background(), "a@b.com", "p", "", "superuser"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_IssuesTokenWithIdentityClaims(t *testing.T) {
	repo := newStubAuthRepo()
	svc := NewAuthService(repo, "secret", 0)

	registered, err := svc.Register(context.Background(), "raj@example.com", "hunter2", "Raj", domain.RolePartner)
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "raj@example.com", "hunter2")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if user.Role != domain.RolePartner {
		t.Errorf("expected role partner, got %s", user.Role)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token does not verify: %v", err)
	}
	if claims["user_id"] != registered.ID {
		t.Errorf("user_id claim: want %q, got %v", registered.ID, claims["user_id"])
	}
	if claims["role"] != domain.RolePartner {
		t.Errorf("role claim: want partner, got %v", claims["role"])
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := newStubAuthRepo()
	svc := NewAuthService(repo, "secret", 0)
	_, _ = svc.Register(context.Background(), "raj@example.com", "hunter2", "", domain.RoleCustomer)

	if _, _, err := svc.Login(context.Background(), "raj@example.com", "wrong"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	svc := NewAuthService(newStubAuthRepo(), "secret", 0)

	if _, _, err := svc.Login(context.Background(), "ghost@example.com", "p"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
