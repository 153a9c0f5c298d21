package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/terraincognita07/dailybrew/internal/models"
	"golang.org/x/crypto/bcrypt"
)

type UserRepository interface {
	List(ctx context.Context) ([]models.User, error)
	FindByID(ctx context.Context, userID uint) (models.User, bool, error)
	FindByNormalizedEmail(ctx context.Context, email string) (models.User, bool, error)
	UpdatePasswordHash(ctx context.Context, userID uint, passwordHash string) error
}

type UserService struct {
	users UserRepository
}

func NewUserService(users UserRepository) *UserService {
	return &UserService{users: users}
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func (service *UserService) List(ctx context.Context) ([]models.User, error) {
	return service.users.List(ctx)
}

func (service *UserService) FindByID(ctx context.Context, userID uint) (models.User, error) {
	user, found, err := service.users.FindByID(ctx, userID)
	if err != nil {
		return models.User{}, fmt.Errorf("load user %d: %w", userID, err)
	}
	if !found {
		return models.User{}, ErrUserNotFound
	}
	return user, nil
}

// Authenticate returns ErrInvalidCredentials for unknown emails, accounts
// without a password and wrong passwords alike.
func (service *UserService) Authenticate(ctx context.Context, email string, password string) (models.User, error) {
	user, found, err := service.users.FindByNormalizedEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return models.User{}, fmt.Errorf("load user by email: %w", err)
	}
	if !found || !user.CanLogin() {
		return models.User{}, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return models.User{}, ErrInvalidCredentials
	}
	return user, nil
}

func (service *UserService) SetPassword(ctx context.Context, email string, password string) (models.User, error) {
	if err := ValidatePasswordStrength(password); err != nil {
		return models.User{}, err
	}

	user, found, err := service.users.FindByNormalizedEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return models.User{}, fmt.Errorf("load user by email: %w", err)
	}
	if !found {
		return models.User{}, ErrUserNotFound
	}

	hash, err := HashPassword(password)
	if err != nil {
		return models.User{}, err
	}
	if err := service.users.UpdatePasswordHash(ctx, user.ID, hash); err != nil {
		return models.User{}, fmt.Errorf("update password for user %d: %w", user.ID, err)
	}
	user.PasswordHash = hash
	return user, nil
}
