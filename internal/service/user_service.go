package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"shareit/internal/domain"
	"shareit/internal/models"
)

type UserService struct {
	repo   domain.UserRepository
	logger zerolog.Logger
}

func NewUserService(repo domain.UserRepository, logger *zerolog.Logger) *UserService {
	return &UserService{
		repo:   repo,
		logger: logger.With().Str("component", "user-service").Logger(),
	}
}

func (s *UserService) Create(ctx context.Context, user *models.User) error {
	if err := checkUserFields(user); err != nil {
		return err
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return err
	}
	s.logger.Info().Int64("user_id", user.ID).Msg("user created")
	return nil
}

// Update merges the non-empty patch fields over the stored record. An
// empty string counts as absent, same as a missing field.
func (s *UserService) Update(ctx context.Context, id int64, patch models.UserPatch) (*models.User, error) {
	if !patch.HasName() && !patch.HasEmail() {
		return nil, domain.Validationf("name or email must be provided")
	}

	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.HasName() {
		user.Name = *patch.Name
	}
	if patch.HasEmail() {
		user.Email = *patch.Email
	}
	if err := checkUserFields(user); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	s.logger.Info().Int64("user_id", user.ID).Msg("user updated")
	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return s.repo.GetUserByID(ctx, id)
}

func (s *UserService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.DeleteUser(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("user_id", id).Msg("user deleted")
	return nil
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.repo.ListUsers(ctx)
}

func checkUserFields(user *models.User) error {
	if strings.TrimSpace(user.Name) == "" {
		return domain.Validationf("user name is required")
	}
	if strings.TrimSpace(user.Email) == "" {
		return domain.Validationf("user email is required")
	}
	if !strings.Contains(user.Email, "@") {
		return domain.Validationf("invalid user email: %s", user.Email)
	}
	return nil
}
