package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lead-import-api/internal/auth"
	"github.com/lead-import-api/internal/models"
	"github.com/lead-import-api/internal/repository"
	"github.com/lead-import-api/internal/validation"
	"github.com/rs/zerolog"
)

// userService is the concrete implementation of UserService
type userService struct {
	repos    *repository.Repositories
	strategy auth.Strategy
	log      zerolog.Logger
}

func newUserService(repos *repository.Repositories, strategy auth.Strategy, log zerolog.Logger) *userService {
	return &userService{
		repos:    repos,
		strategy: strategy,
		log:      log.With().Str("service", "user").Logger(),
	}
}

// Register creates a user after checking the name is free.
// The check and the insert are separate calls; the store's unique
// constraint, when present, settles concurrent registrations.
func (s *userService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	if errs := validation.ValidateRegistration(req); len(errs) > 0 {
		return nil, &models.ValidationError{Message: validation.Messages(errs)}
	}

	existing, err := s.repos.User.FindByName(ctx, req.UserName)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, &models.ConflictError{Message: "Username already exists"}
	}

	secret, err := s.strategy.PreparePassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:        uuid.New().String(),
		UserName:  req.UserName,
		Password:  secret,
		CreatedAt: models.NewTimestamp(time.Now()),
	}

	stored, err := s.repos.User.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("user_id", stored.ID).
		Str("user_name", stored.UserName).
		Str("password_strategy", s.strategy.Name()).
		Msg("User registered")

	return stored.Public(), nil
}

// Login returns the user matching the credentials or ErrInvalidCredentials
func (s *userService) Login(ctx context.Context, req *models.LoginRequest) (*models.User, error) {
	if errs := validation.ValidateLogin(req); len(errs) > 0 {
		return nil, &models.ValidationError{Message: "Username and password are required"}
	}

	user, err := s.strategy.Authenticate(ctx, s.repos.User, req.UserName, req.Password)
	if err != nil {
		return nil, err
	}
	if user == nil {
		s.log.Info().Str("user_name", req.UserName).Msg("Login rejected")
		return nil, models.ErrInvalidCredentials
	}

	return user.Public(), nil
}
