package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/mo-shab/tutor/internal/domain"
	"github.com/mo-shab/tutor/internal/repository"
)

type AuthSvc struct{ users *repository.UserRepo }

func NewAuthSvc(r *repository.UserRepo) *AuthSvc {
	return &AuthSvc{users: r}
}

// Register creates a new account. Everyone starts as a student; tutor and
// admin roles are granted through moderation.
func (s *AuthSvc) Register(ctx context.Context, email, password, fullName string) (*domain.User, error) {
	if _, err := s.users.ByEmail(ctx, email); err == nil {
		return nil, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		FullName:     fullName,
		Role:         domain.RoleStudent,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrEmailTaken
		}
		return nil, err
	}
	return u, nil
}

// Login validates credentials. Deactivated accounts are rejected even with a
// correct password.
func (s *AuthSvc) Login(ctx context.Context, email, password string) (*domain.User, error) {
	u, err := s.users.ByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !u.IsActive {
		return nil, domain.ErrAccountDisabled
	}
	return u, nil
}

func (s *AuthSvc) CurrentUser(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.ByID(ctx, userID)
}
