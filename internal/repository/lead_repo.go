package repository

import (
	"context"

	"github.com/lead-import-api/internal/models"
	"github.com/lead-import-api/internal/supabase"
)

// leadRepo is the concrete implementation of LeadRepository
type leadRepo struct {
	store Store
}

// NewLeadRepo creates a new lead repository
func NewLeadRepo(store Store) LeadRepository {
	return &leadRepo{store: store}
}

// Create inserts a single lead. Failures are not retried.
func (r *leadRepo) Create(ctx context.Context, lead *models.Lead) error {
	if err := r.store.Insert(ctx, TableLeads, lead, nil); err != nil {
		return remoteError("insert lead", err)
	}
	return nil
}

// FindByOwner returns the leads of one user that match every filter entry, oldest first
func (r *leadRepo) FindByOwner(ctx context.Context, ownerID string, filter models.LeadFilter) ([]models.Lead, error) {
	q := supabase.NewQuery()
	for field, value := range filter {
		if value != "" {
			q.Eq(field, value)
		}
	}
	// Applied last so a filter entry can never widen the owner scope
	q.Eq("user_uuid", ownerID).Order("created_at", true)

	leads := make([]models.Lead, 0)
	if err := r.store.Select(ctx, TableLeads, q, &leads); err != nil {
		return nil, remoteError("find leads", err)
	}
	return leads, nil
}
