package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/brewline/cafe-pos/internal/core/domain"
)

func newTestAuthService() (*AuthService, *stubUserRepo, *stubLimiter) {
	repo := newStubUserRepo()
	limiter := newStubLimiter(3)
	return NewAuthService(repo, NewTokenService("secret", time.Hour), limiter, zerolog.Nop()), repo, limiter
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	svc, _, _ := newTestAuthService()
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice", "Alice@Example.com", "pass123")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.Role != domain.RoleUser {
		t.Errorf("expected role user, got %q", user.Role)
	}
	if user.Email != "alice@example.com" {
		t.Errorf("expected normalized email, got %q", user.Email)
	}
	if user.PasswordHash == "pass123" {
		t.Fatal("password stored in clear text")
	}

	token, logged, err := svc.Login(ctx, "alice", "pass123")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if token == "" || logged.ID != user.ID {
		t.Fatalf("unexpected login result: token=%q user=%v", token, logged)
	}
	id, err := svc.tokens.Validate(token)
	if err != nil {
		t.Fatalf("issued token does not validate: %v", err)
	}
	if id.UserID != user.ID || id.Role != domain.RoleUser {
		t.Errorf("unexpected identity %+v", id)
	}
}

func TestAuthService_RegisterValidation(t *testing.T) {
	svc, _, _ := newTestAuthService()
	ctx := context.Background()

	cases := []struct{ name, username, email, password string }{
		{"missing username", "", "a@b.com", "pass123"},
		{"bad email", "bob", "not-an-email", "pass123"},
		{"short password", "bob", "bob@example.com", "123"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tc.username, tc.email, tc.password)
			var ve *domain.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestAuthService_RegisterDuplicate(t *testing.T) {
	svc, _, _ := newTestAuthService()
	ctx := context.Background()
	if _, err := svc.Register(ctx, "alice", "alice@example.com", "pass123"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Register(ctx, "alice", "other@example.com", "pass123"); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_LoginThrottled(t *testing.T) {
	svc, _, limiter := newTestAuthService()
	ctx := context.Background()
	if _, err := svc.Register(ctx, "alice", "alice@example.com", "pass123"); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 3; i++ {
		if _, _, err := svc.Login(ctx, "alice", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Fatalf("attempt %d: expected ErrInvalidCredentials, got %v", i, err)
		}
	}
	if _, _, err := svc.Login(ctx, "alice", "pass123"); !errors.Is(err, domain.ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}

	delete(limiter.fails, "alice")
	if _, _, err := svc.Login(ctx, "alice", "pass123"); err != nil {
		t.Fatalf("expected login after window, got %v", err)
	}
}

func TestAuthService_LoginUnknownUserCountsAsFailure(t *testing.T) {
	svc, _, limiter := newTestAuthService()
	if _, _, err := svc.Login(context.Background(), "ghost", "whatever"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if limiter.fails["ghost"] != 1 {
		t.Errorf("expected one recorded failure, got %d", limiter.fails["ghost"])
	}
}

func TestAuthService_LoginLimiterDownStillAuthenticates(t *testing.T) {
	svc, _, limiter := newTestAuthService()
	ctx := context.Background()
	if _, err := svc.Register(ctx, "alice", "alice@example.com", "pass123"); err != nil {
		t.Fatal(err)
	}
	limiter.err = errStore
	if _, _, err := svc.Login(ctx, "alice", "pass123"); err != nil {
		t.Fatalf("expected login to succeed without limiter, got %v", err)
	}
}

func TestAuthService_LoginInactive(t *testing.T) {
	svc, repo, _ := newTestAuthService()
	ctx := context.Background()
	user, err := svc.Register(ctx, "alice", "alice@example.com", "pass123")
	if err != nil {
		t.Fatal(err)
	}
	_ = repo.SetActive(ctx, user.ID, false)
	if _, _, err := svc.Login(ctx, "alice", "pass123"); !errors.Is(err, domain.ErrUserInactive) {
		t.Fatalf("expected ErrUserInactive, got %v", err)
	}
}
