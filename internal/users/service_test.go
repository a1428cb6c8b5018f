package users

import (
	"context"
	"errors"
	"strings"
	"testing"

	"agroadvisor-backend/internal/apperr"
)

func register(t *testing.T, svc *Service, username, email string) User {
	t.Helper()
	user, err := svc.Register(context.Background(), RegisterInput{
		Email:    email,
		Username: username,
		Password: "sowing-season",
		FullName: "Test Farmer",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	return user
}

func TestRegisterAndAuthenticate(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	user := register(t, svc, "ramesh", "ramesh@example.com")

	if user.ID == "" {
		t.Fatalf("expected generated id")
	}
	if !user.IsActive {
		t.Fatalf("new accounts must be active")
	}
	if user.HashedPassword == "sowing-season" {
		t.Fatalf("password stored in plain text")
	}

	got, err := svc.Authenticate(context.Background(), "ramesh", "sowing-season")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if got.Username != "ramesh" {
		t.Fatalf("unexpected user %+v", got)
	}
}

func TestRegisterRejectsDuplicateUsername(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	register(t, svc, "ramesh", "ramesh@example.com")

	_, err := svc.Register(context.Background(), RegisterInput{
		Email:    "other@example.com",
		Username: "ramesh",
		Password: "sowing-season",
	})
	if !errors.Is(err, apperr.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if !strings.Contains(err.Error(), "username already registered") {
		t.Fatalf("unexpected message: %v", err)
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	register(t, svc, "ramesh", "ramesh@example.com")

	_, err := svc.Register(context.Background(), RegisterInput{
		Email:    "Ramesh@Example.com",
		Username: "suresh",
		Password: "sowing-season",
	})
	if !errors.Is(err, apperr.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for case-insensitive email clash, got %v", err)
	}
}

func TestRegisterPasswordBounds(t *testing.T) {
	svc := NewService(NewMemoryRepo())

	_, err := svc.Register(context.Background(), RegisterInput{
		Email: "a@example.com", Username: "short", Password: "abc",
	})
	if !errors.Is(err, apperr.ErrInvalidInput) {
		t.Fatalf("expected rejection of 3-char password, got %v", err)
	}

	_, err = svc.Register(context.Background(), RegisterInput{
		Email: "b@example.com", Username: "long", Password: strings.Repeat("x", 51),
	})
	if !errors.Is(err, apperr.ErrInvalidInput) {
		t.Fatalf("expected rejection of 51-char password, got %v", err)
	}
	if !strings.Contains(err.Error(), "password too long") {
		t.Fatalf("unexpected message: %v", err)
	}

	if _, err := svc.Register(context.Background(), RegisterInput{
		Email: "c@example.com", Username: "maxlen", Password: strings.Repeat("x", 50),
	}); err != nil {
		t.Fatalf("50-char password must pass: %v", err)
	}
}

func TestAuthenticateUniformFailure(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	register(t, svc, "ramesh", "ramesh@example.com")

	_, unknownErr := svc.Authenticate(context.Background(), "nobody", "sowing-season")
	_, wrongErr := svc.Authenticate(context.Background(), "ramesh", "wrong-password")

	if !errors.Is(unknownErr, apperr.ErrAuthentication) || !errors.Is(wrongErr, apperr.ErrAuthentication) {
		t.Fatalf("expected uniform ErrAuthentication, got %v / %v", unknownErr, wrongErr)
	}
	if unknownErr.Error() != wrongErr.Error() {
		t.Fatalf("failure messages must not reveal which factor failed")
	}
}

func TestAuthenticateRejectsInactiveAccount(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo)
	user := register(t, svc, "ramesh", "ramesh@example.com")

	user.IsActive = false
	if err := repo.Update(context.Background(), user); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	_, err := svc.Authenticate(context.Background(), "ramesh", "sowing-season")
	if !errors.Is(err, apperr.ErrAuthentication) {
		t.Fatalf("expected ErrAuthentication for inactive account, got %v", err)
	}
}

func TestChangePassword(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	register(t, svc, "ramesh", "ramesh@example.com")

	err := svc.ChangePassword(context.Background(), "ramesh", "wrong-old", "harvest-time")
	if !errors.Is(err, apperr.ErrInvalidInput) {
		t.Fatalf("expected rejection of wrong old password, got %v", err)
	}

	if err := svc.ChangePassword(context.Background(), "ramesh", "sowing-season", "harvest-time"); err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}
	if _, err := svc.Authenticate(context.Background(), "ramesh", "harvest-time"); err != nil {
		t.Fatalf("new password must work: %v", err)
	}
	if _, err := svc.Authenticate(context.Background(), "ramesh", "sowing-season"); !errors.Is(err, apperr.ErrAuthentication) {
		t.Fatalf("old password must stop working, got %v", err)
	}
}

func TestUpdateProfileEmailClash(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	register(t, svc, "ramesh", "ramesh@example.com")
	register(t, svc, "suresh", "suresh@example.com")

	email := "ramesh@example.com"
	_, err := svc.UpdateProfile(context.Background(), "suresh", ProfileUpdate{Email: &email})
	if !errors.Is(err, apperr.ErrInvalidInput) {
		t.Fatalf("expected clash rejection, got %v", err)
	}

	name := "Suresh Kumar"
	user, err := svc.UpdateProfile(context.Background(), "suresh", ProfileUpdate{FullName: &name})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if user.FullName != "Suresh Kumar" {
		t.Fatalf("full name not applied: %+v", user)
	}
}

func TestDeleteAccount(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	register(t, svc, "ramesh", "ramesh@example.com")

	if err := svc.Delete(context.Background(), "ramesh"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := svc.GetByUsername(context.Background(), "ramesh"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after deletion, got %v", err)
	}
}
