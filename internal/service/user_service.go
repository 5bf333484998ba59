package service

import (
	"context"
	"net/mail"
	"strings"

	"shareit/internal/domain"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

var _ domain.UserService = (*UserService)(nil)

type UserService struct {
	users  domain.UserDirectory
	logger *zerolog.Logger
}

func NewUserService(users domain.UserDirectory, logger *zerolog.Logger) *UserService {
	return &UserService{
		users:  users,
		logger: logger,
	}
}

func (s *UserService) CreateUser(ctx context.Context, user *models.User) error {
	user.Name = strings.TrimSpace(user.Name)
	user.Email = strings.TrimSpace(user.Email)
	if user.Name == "" {
		return domain.Validationf("user name is required")
	}
	if user.Email == "" {
		return domain.Validationf("user email is required")
	}
	if _, err := mail.ParseAddress(user.Email); err != nil {
		return domain.Validationf("invalid email %q", user.Email)
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		return translateStoreError(err)
	}
	s.logger.Info().Int64("user_id", user.ID).Msg("user created")
	return nil
}

func (s *UserService) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		return nil, translateStoreError(err)
	}
	return user, nil
}
