package repository

import (
	"context"
	"errors"
	"net/http"

	"github.com/lead-import-api/internal/models"
	"github.com/lead-import-api/internal/supabase"
)

// Remote table names
const (
	TableUsers = "Users"
	TableLeads = "Lead"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	FindByName(ctx context.Context, name string) (*models.User, error)
	FindByCredentials(ctx context.Context, name, password string) (*models.User, error)
	Create(ctx context.Context, user *models.User) (*models.User, error)
}

// LeadRepository defines the interface for lead data operations
type LeadRepository interface {
	Create(ctx context.Context, lead *models.Lead) error
	FindByOwner(ctx context.Context, ownerID string, filter models.LeadFilter) ([]models.Lead, error)
}

// Store is the subset of the REST client the repositories need
type Store interface {
	Select(ctx context.Context, table string, q *supabase.Query, dest interface{}) error
	Insert(ctx context.Context, table string, record interface{}, dest interface{}) error
}

// Repositories holds all repository interfaces
type Repositories struct {
	User UserRepository
	Lead LeadRepository
}

// New creates all repositories backed by the given store
func New(store Store) *Repositories {
	return &Repositories{
		User: NewUserRepo(store),
		Lead: NewLeadRepo(store),
	}
}

// remoteError converts a store failure into the domain taxonomy
func remoteError(op string, err error) error {
	var apiErr *supabase.APIError
	if errors.As(err, &apiErr) {
		return &models.RemoteError{Op: op, StatusCode: apiErr.StatusCode, Err: err}
	}
	return &models.RemoteError{Op: op, Err: err}
}

func isConflict(err error) bool {
	var apiErr *supabase.APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusConflict
}
