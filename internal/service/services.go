package service

import (
	"context"

	"github.com/lead-import-api/internal/auth"
	"github.com/lead-import-api/internal/config"
	"github.com/lead-import-api/internal/models"
	"github.com/lead-import-api/internal/repository"
	"github.com/lead-import-api/internal/storage"
	"github.com/rs/zerolog"
)

// ImportService defines the interface for lead import operations
type ImportService interface {
	ImportLeads(ctx context.Context, username string, upload *models.Upload) (*models.ImportResult, error)
}

// UserService defines the interface for account operations
type UserService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.User, error)
}

// LeadService defines the interface for lead queries
type LeadService interface {
	FindLeads(ctx context.Context, username string, filter models.LeadFilter) ([]models.Lead, error)
}

// Services holds all service interfaces
type Services struct {
	Import ImportService
	User   UserService
	Lead   LeadService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, uploads *storage.Store, strategy auth.Strategy, cfg *config.Config, log zerolog.Logger) *Services {
	return &Services{
		Import: newImportService(repos, uploads, cfg, log),
		User:   newUserService(repos, strategy, log),
		Lead:   newLeadService(repos, log),
	}
}

// resolveOwner looks up the user a request is scoped to
func resolveOwner(ctx context.Context, users repository.UserRepository, username string) (*models.User, error) {
	owner, err := users.FindByName(ctx, username)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, &models.NotFoundError{Resource: "User", Key: username}
	}
	return owner, nil
}
