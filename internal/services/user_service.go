package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-task-manager/internal/models"
)

type userServiceImpl struct {
	logger zerolog.Logger
	users  UserStore
}

func NewUserService(logger zerolog.Logger, users UserStore) UserService {
	return &userServiceImpl{
		logger: logger,
		users:  users,
	}
}

func (s *userServiceImpl) List(ctx context.Context) ([]*models.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to select users")
		return nil, err
	}

	for _, user := range users {
		user.Password = ""
	}
	s.logger.Debug().
		Int("count", len(users)).
		Msg("selected users")
	return users, nil
}
