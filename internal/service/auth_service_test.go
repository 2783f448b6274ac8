package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"acadex/academy-ops/internal/domain"
)

const testJWTSecret = "test-secret-key"

func TestRegisterAndLogin(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), testJWTSecret, time.Hour)

	user, err := svc.Register(context.Background(), "Coach A", "coach.a@example.com", "s3cretpass", domain.RoleCoach, "Chennai")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.PasswordHash != "" {
		t.Error("registration response must not expose the password hash")
	}
	if user.Role != domain.RoleCoach {
		t.Errorf("role = %s, want COACH", user.Role)
	}

	token, loggedIn, err := svc.Login(context.Background(), "coach.a@example.com", "s3cretpass")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token == "" {
		t.Error("login must return a token")
	}
	if loggedIn.ID != user.ID {
		t.Error("login must return the registered user")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), testJWTSecret, time.Hour)

	if _, err := svc.Register(context.Background(), "Coach A", "coach.a@example.com", "s3cretpass", domain.RoleCoach, ""); err != nil {
		t.Fatalf("first register: %v", err)
	}

	_, err := svc.Register(context.Background(), "Imposter", "coach.a@example.com", "otherpass1", domain.RoleCoach, "")
	if !errors.Is(err, ErrUserAlreadyExists) {
		t.Fatalf("got %v, want ErrUserAlreadyExists", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), testJWTSecret, time.Hour)

	if _, err := svc.Register(context.Background(), "Coach A", "coach.a@example.com", "s3cretpass", domain.RoleCoach, ""); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, _, err := svc.Login(context.Background(), "coach.a@example.com", "wrongpass")
	if !errors.Is(err, ErrAuthenticationFailed) {
		t.Fatalf("got %v, want ErrAuthenticationFailed", err)
	}

	// Unknown email maps to the same failure, not a not-found leak.
	_, _, err = svc.Login(context.Background(), "nobody@example.com", "s3cretpass")
	if !errors.Is(err, ErrAuthenticationFailed) {
		t.Fatalf("got %v, want ErrAuthenticationFailed", err)
	}
}
