package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"agroadvisor-backend/internal/apperr"
	"agroadvisor-backend/internal/auth"
)

// bcrypt degrades silently past 72 bytes; the cap mirrors the frontend's.
const (
	minPasswordLen = 6
	maxPasswordLen = 50
)

type RegisterInput struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

type ProfileUpdate struct {
	Email    *string `json:"email"`
	FullName *string `json:"full_name"`
}

// Service owns account lifecycle: registration, credential checks, profile
// changes and deletion.
type Service struct {
	Repo Repo
	now  func() time.Time
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo, now: time.Now}
}

// Register creates an account after uniqueness and password checks.
func (s *Service) Register(ctx context.Context, input RegisterInput) (User, error) {
	input.Email = strings.TrimSpace(input.Email)
	input.Username = strings.TrimSpace(input.Username)
	input.FullName = strings.TrimSpace(input.FullName)

	if input.Username == "" {
		return User{}, fmt.Errorf("username is required: %w", apperr.ErrInvalidInput)
	}
	if input.Email == "" || !strings.Contains(input.Email, "@") {
		return User{}, fmt.Errorf("a valid email is required: %w", apperr.ErrInvalidInput)
	}
	if err := validatePassword(input.Password); err != nil {
		return User{}, err
	}

	if _, err := s.Repo.GetByUsername(ctx, input.Username); err == nil {
		return User{}, fmt.Errorf("username already registered: %w", apperr.ErrInvalidInput)
	} else if !errors.Is(err, ErrNotFound) {
		return User{}, err
	}
	if _, err := s.Repo.GetByEmail(ctx, input.Email); err == nil {
		return User{}, fmt.Errorf("email already registered: %w", apperr.ErrInvalidInput)
	} else if !errors.Is(err, ErrNotFound) {
		return User{}, err
	}

	hashed, err := auth.HashPassword(input.Password)
	if err != nil {
		return User{}, err
	}

	now := s.now().UTC()
	user := User{
		ID:             uuid.NewString(),
		Email:          input.Email,
		Username:       input.Username,
		FullName:       input.FullName,
		HashedPassword: hashed,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.Repo.Insert(ctx, user); err != nil {
		return User{}, err
	}
	return user, nil
}

// Authenticate checks the credentials. Unknown username, wrong password and
// deactivated accounts all report the same error so the response never
// reveals which factor failed.
func (s *Service) Authenticate(ctx context.Context, username, password string) (User, error) {
	user, err := s.Repo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, apperr.ErrAuthentication
		}
		return User{}, err
	}
	if !user.IsActive {
		return User{}, apperr.ErrAuthentication
	}
	if !auth.CheckPassword(user.HashedPassword, password) {
		return User{}, apperr.ErrAuthentication
	}
	return user, nil
}

func (s *Service) GetByUsername(ctx context.Context, username string) (User, error) {
	return s.Repo.GetByUsername(ctx, username)
}

// UpdateProfile applies partial profile changes. An email change to one that
// another account holds is rejected.
func (s *Service) UpdateProfile(ctx context.Context, username string, update ProfileUpdate) (User, error) {
	user, err := s.Repo.GetByUsername(ctx, username)
	if err != nil {
		return User{}, err
	}

	if update.Email != nil {
		email := strings.TrimSpace(*update.Email)
		if email == "" || !strings.Contains(email, "@") {
			return User{}, fmt.Errorf("a valid email is required: %w", apperr.ErrInvalidInput)
		}
		if !strings.EqualFold(email, user.Email) {
			if other, err := s.Repo.GetByEmail(ctx, email); err == nil && other.Username != username {
				return User{}, fmt.Errorf("email already registered: %w", apperr.ErrInvalidInput)
			} else if err != nil && !errors.Is(err, ErrNotFound) {
				return User{}, err
			}
			user.Email = email
		}
	}
	if update.FullName != nil {
		user.FullName = strings.TrimSpace(*update.FullName)
	}

	if err := s.Repo.Update(ctx, user); err != nil {
		return User{}, err
	}
	return user, nil
}

// ChangePassword swaps the password after verifying the old one.
func (s *Service) ChangePassword(ctx context.Context, username, oldPassword, newPassword string) error {
	user, err := s.Repo.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	if !auth.CheckPassword(user.HashedPassword, oldPassword) {
		return fmt.Errorf("incorrect old password: %w", apperr.ErrInvalidInput)
	}
	if err := validatePassword(newPassword); err != nil {
		return err
	}
	hashed, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	user.HashedPassword = hashed
	return s.Repo.Update(ctx, user)
}

// Delete removes the account and, via the schema's cascade, its history.
func (s *Service) Delete(ctx context.Context, username string) error {
	return s.Repo.Delete(ctx, username)
}

func validatePassword(password string) error {
	if len(password) < minPasswordLen {
		return fmt.Errorf("password must be at least %d characters: %w", minPasswordLen, apperr.ErrInvalidInput)
	}
	if len(password) > maxPasswordLen {
		return fmt.Errorf("password too long (max %d characters): %w", maxPasswordLen, apperr.ErrInvalidInput)
	}
	return nil
}
