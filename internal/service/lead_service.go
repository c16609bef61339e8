package service

import (
	"context"

	"github.com/lead-import-api/internal/models"
	"github.com/lead-import-api/internal/repository"
	"github.com/rs/zerolog"
)

// leadService is the concrete implementation of LeadService
type leadService struct {
	repos *repository.Repositories
	log   zerolog.Logger
}

func newLeadService(repos *repository.Repositories, log zerolog.Logger) *leadService {
	return &leadService{
		repos: repos,
		log:   log.With().Str("service", "lead").Logger(),
	}
}

// FindLeads returns the leads of username matching every entry of filter
func (s *leadService) FindLeads(ctx context.Context, username string, filter models.LeadFilter) ([]models.Lead, error) {
	owner, err := resolveOwner(ctx, s.repos.User, username)
	if err != nil {
		return nil, err
	}

	leads, err := s.repos.Lead.FindByOwner(ctx, owner.ID, filter)
	if err != nil {
		return nil, err
	}

	s.log.Debug().
		Str("user", username).
		Int("filters", len(filter)).
		Int("count", len(leads)).
		Msg("Leads fetched")

	return leads, nil
}
