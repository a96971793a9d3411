// Package services содержит бизнес-логику чтения учётных записей пользователей.
package services

import (
	"context"

	"github.com/magabrotheeeer/subscription-tracker/internal/apperr"
	"github.com/magabrotheeeer/subscription-tracker/internal/models"
)

// UserRepository описывает методы чтения пользователей из хранилища.
type UserRepository interface {
	// GetUserByID возвращает пользователя по ID, (nil, nil) — если не найден.
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	// ListUsers возвращает всех пользователей, новые — первыми.
	ListUsers(ctx context.Context) ([]*models.User, error)
}

// UserService отдаёт учётные записи без криптографических данных.
type UserService struct {
	repo UserRepository
}

// NewUserService создает новый экземпляр UserService.
func NewUserService(repo UserRepository) *UserService {
	return &UserService{repo: repo}
}

// Read возвращает пользователя по ID или NotFound.
func (s *UserService) Read(ctx context.Context, id string) (*models.User, error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound("user not found")
	}
	return user, nil
}

// List возвращает всех пользователей.
func (s *UserService) List(ctx context.Context) ([]*models.User, error) {
	return s.repo.ListUsers(ctx)
}
