package services

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/infobajajangola-cmd/casamentop/models"
	"github.com/infobajajangola-cmd/casamentop/repositories"
)

// AuthServiceError marks authentication failures.
type AuthServiceError string

func (e AuthServiceError) Error() string { return string(e) }

const (
	ErrInvalidCredentials AuthServiceError = "email ou palavra-passe incorretos"
	ErrPasswordTooShort   AuthServiceError = "a palavra-passe deve ter pelo menos 8 caracteres"
)

// IAuthService authenticates administrators.
type IAuthService interface {
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
	UpdatePassword(ctx context.Context, userID uint, current, newPassword string) error
}

type AuthService struct {
	repo repositories.IUserRepository
}

func NewAuthService() IAuthService {
	return &AuthService{repo: repositories.NewUserRepository()}
}

func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *AuthService) UpdatePassword(ctx context.Context, userID uint, current, newPassword string) error {
	if len(newPassword) < 8 {
		return ErrPasswordTooShort
	}
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)) != nil {
		return ErrInvalidCredentials
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.repo.UpdatePasswordHash(ctx, userID, string(hash))
}
